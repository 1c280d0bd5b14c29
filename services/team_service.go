package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/esports-scoreboard/live"
	"github.com/Dosada05/esports-scoreboard/models"
	"github.com/Dosada05/esports-scoreboard/repositories"
	"github.com/Dosada05/esports-scoreboard/storage"
)

var (
	ErrTeamCreationFailed = errors.New("failed to create team")
	ErrTeamUpdateFailed   = errors.New("failed to update team")
	ErrTeamDeleteFailed   = errors.New("failed to delete team")
)

type TeamService interface {
	// AddTeam creates the team and its zeroed score row in one transaction;
	// there is never a window where a team exists without a score row.
	AddTeam(ctx context.Context, matchID int, input CreateTeamInput) (*models.Team, error)

	// AddTeamFromLibrary pre-populates a team from a library template,
	// copying name, initial and logo reference.
	AddTeamFromLibrary(ctx context.Context, matchID, libraryEntryID int) (*models.Team, error)

	ListTeamsByMatch(ctx context.Context, matchID int) ([]*models.Team, error)
	UpdateTeam(ctx context.Context, teamID int, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, teamID int) error

	// CopyTeams duplicates every team of the source match into the
	// destination match with zeroed counters, all-or-nothing.
	CopyTeams(ctx context.Context, sourceMatchID, destinationMatchID int) error
}

type CreateTeamInput struct {
	Name    string `json:"name"`
	Initial string `json:"initial"`
}

type UpdateTeamInput struct {
	Name    *string `json:"name"`
	Initial *string `json:"initial"`
}

type teamService struct {
	db        *sql.DB
	teamRepo  repositories.TeamRepository
	scoreRepo repositories.ScoreRepository
	matchRepo repositories.MatchRepository
	libRepo   repositories.TeamLibraryRepository
	uploader  storage.FileUploader
	notifier  live.Notifier
}

func NewTeamService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	scoreRepo repositories.ScoreRepository,
	matchRepo repositories.MatchRepository,
	libRepo repositories.TeamLibraryRepository,
	uploader storage.FileUploader,
	notifier live.Notifier,
) TeamService {
	return &teamService{
		db:        db,
		teamRepo:  teamRepo,
		scoreRepo: scoreRepo,
		matchRepo: matchRepo,
		libRepo:   libRepo,
		uploader:  uploader,
		notifier:  notifier,
	}
}

func (s *teamService) AddTeam(ctx context.Context, matchID int, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if _, err := s.matchRepo.GetByID(ctx, nil, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to verify match %d: %w", matchID, err)
	}

	team := &models.Team{
		MatchID: matchID,
		Name:    name,
		Initial: strings.TrimSpace(input.Initial),
	}
	if err := s.createTeamWithScoreRow(ctx, team); err != nil {
		return nil, err
	}

	s.notifier.TeamsChanged(ctx, matchID)
	return team, nil
}

func (s *teamService) AddTeamFromLibrary(ctx context.Context, matchID, libraryEntryID int) (*models.Team, error) {
	if _, err := s.matchRepo.GetByID(ctx, nil, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to verify match %d: %w", matchID, err)
	}

	entry, err := s.libRepo.GetByID(ctx, nil, libraryEntryID)
	if err != nil {
		if errors.Is(err, repositories.ErrLibraryEntryNotFound) {
			return nil, ErrLibraryEntryNotFound
		}
		return nil, fmt.Errorf("failed to get library entry %d: %w", libraryEntryID, err)
	}

	team := &models.Team{
		MatchID: matchID,
		Name:    entry.Name,
		Initial: entry.Initial,
		LogoKey: entry.LogoKey,
	}
	if err := s.createTeamWithScoreRow(ctx, team); err != nil {
		return nil, err
	}

	s.notifier.TeamsChanged(ctx, matchID)
	return team, nil
}

// createTeamWithScoreRow runs the team insert and the zeroed score row insert
// in one transaction.
func (s *teamService) createTeamWithScoreRow(ctx context.Context, team *models.Team) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", ErrTeamCreationFailed, err)
	}
	defer tx.Rollback()

	if err := s.teamRepo.Create(ctx, tx, team); err != nil {
		return fmt.Errorf("%w: %w", ErrTeamCreationFailed, err)
	}
	if err := s.scoreRepo.CreateForTeam(ctx, tx, team.MatchID, team.ID); err != nil {
		return fmt.Errorf("%w: score row: %w", ErrTeamCreationFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTeamCreationFailed, err)
	}

	team.Score = &models.ScoreRow{MatchID: team.MatchID, TeamID: team.ID}
	populateTeamLogoURL(team, s.uploader)
	return nil
}

func (s *teamService) ListTeamsByMatch(ctx context.Context, matchID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByMatch(ctx, nil, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for match %d: %w", matchID, err)
	}

	scores, err := s.scoreRepo.ListByMatch(ctx, nil, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores for match %d: %w", matchID, err)
	}
	scoreByTeam := make(map[int]*models.ScoreRow, len(scores))
	for _, sc := range scores {
		scoreByTeam[sc.TeamID] = sc
	}

	for _, team := range teams {
		team.Score = scoreByTeam[team.ID]
		populateTeamLogoURL(team, s.uploader)
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, teamID int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = name
	}
	if input.Initial != nil {
		team.Initial = strings.TrimSpace(*input.Initial)
	}

	if err := s.teamRepo.Update(ctx, nil, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrTeamUpdateFailed, teamID, err)
	}

	populateTeamLogoURL(team, s.uploader)
	s.notifier.TeamsChanged(ctx, team.MatchID)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, teamID int) error {
	team, err := s.teamRepo.GetByID(ctx, nil, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %d before delete: %w", teamID, err)
	}

	if err := s.teamRepo.Delete(ctx, nil, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("%w (id: %d): %w", ErrTeamDeleteFailed, teamID, err)
	}

	s.notifier.TeamsChanged(ctx, team.MatchID)
	return nil
}

// CopyTeams wraps the whole copy in one transaction: a failure at any row
// rolls back every insert so far, leaving the destination match exactly as it
// was. Exactly one destination-match broadcast goes out on success, none on
// failure.
func (s *teamService) CopyTeams(ctx context.Context, sourceMatchID, destinationMatchID int) error {
	if sourceMatchID == destinationMatchID {
		return ErrCopySameMatch
	}

	for _, id := range []int{sourceMatchID, destinationMatchID} {
		if _, err := s.matchRepo.GetByID(ctx, nil, id); err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return fmt.Errorf("failed to verify match %d: %w", id, err)
		}
	}

	sourceTeams, err := s.teamRepo.ListByMatch(ctx, nil, sourceMatchID)
	if err != nil {
		return fmt.Errorf("failed to list teams of source match %d: %w", sourceMatchID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", ErrCopyTeamsAborted, err)
	}
	defer tx.Rollback()

	for _, src := range sourceTeams {
		copied := &models.Team{
			MatchID: destinationMatchID,
			Name:    src.Name,
			Initial: src.Initial,
			LogoKey: src.LogoKey,
		}
		if err := s.teamRepo.Create(ctx, tx, copied); err != nil {
			return fmt.Errorf("%w: team %q: %w", ErrCopyTeamsAborted, src.Name, err)
		}
		if err := s.scoreRepo.CreateForTeam(ctx, tx, destinationMatchID, copied.ID); err != nil {
			return fmt.Errorf("%w: score row for team %q: %w", ErrCopyTeamsAborted, src.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrCopyTeamsAborted, err)
	}

	s.notifier.TeamsChanged(ctx, destinationMatchID)
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/esports-scoreboard/models"
	"github.com/Dosada05/esports-scoreboard/repositories"
	"github.com/Dosada05/esports-scoreboard/storage"
)

// StandingsService exposes the two derived views. Both are recomputed from
// the store on every call; with no mutation in between, two calls return
// identical results. It also backs the live notifier's snapshot pushes.
type StandingsService interface {
	MatchView(ctx context.Context, matchID int) ([]*models.MatchStanding, error)
	GameView(ctx context.Context, gameID int) ([]*models.OverallStanding, error)
	GameIDForMatch(ctx context.Context, matchID int) (int, error)
}

type standingsService struct {
	standingsRepo repositories.StandingsRepository
	matchRepo     repositories.MatchRepository
	uploader      storage.FileUploader
}

func NewStandingsService(
	standingsRepo repositories.StandingsRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
) StandingsService {
	return &standingsService{
		standingsRepo: standingsRepo,
		matchRepo:     matchRepo,
		uploader:      uploader,
	}
}

func (s *standingsService) MatchView(ctx context.Context, matchID int) ([]*models.MatchStanding, error) {
	standings, err := s.standingsRepo.MatchView(ctx, nil, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute match view for match %d: %w", matchID, err)
	}
	for _, row := range standings {
		if row.LogoKey != nil && *row.LogoKey != "" && s.uploader != nil {
			url := s.uploader.GetPublicURL(*row.LogoKey)
			if url != "" {
				row.LogoURL = &url
			}
		}
	}
	return standings, nil
}

func (s *standingsService) GameView(ctx context.Context, gameID int) ([]*models.OverallStanding, error) {
	standings, err := s.standingsRepo.GameView(ctx, nil, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute game view for game %d: %w", gameID, err)
	}
	for _, row := range standings {
		if row.LogoKey != nil && *row.LogoKey != "" && s.uploader != nil {
			url := s.uploader.GetPublicURL(*row.LogoKey)
			if url != "" {
				row.LogoURL = &url
			}
		}
	}
	return standings, nil
}

func (s *standingsService) GameIDForMatch(ctx context.Context, matchID int) (int, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return 0, ErrMatchNotFound
		}
		return 0, fmt.Errorf("failed to resolve game for match %d: %w", matchID, err)
	}
	return match.GameID, nil
}

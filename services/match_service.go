package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/esports-scoreboard/live"
	"github.com/Dosada05/esports-scoreboard/models"
	"github.com/Dosada05/esports-scoreboard/repositories"
)

var (
	ErrMatchCreationFailed = errors.New("failed to create match")
	ErrMatchDeleteFailed   = errors.New("failed to delete match")
)

type MatchService interface {
	CreateMatch(ctx context.Context, gameID int, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatchesByGame(ctx context.Context, gameID int) ([]*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error
}

type CreateMatchInput struct {
	Name string `json:"name"`
}

type matchService struct {
	matchRepo repositories.MatchRepository
	gameRepo  repositories.GameRepository
	notifier  live.Notifier
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	gameRepo repositories.GameRepository,
	notifier live.Notifier,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		gameRepo:  gameRepo,
		notifier:  notifier,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, gameID int, input CreateMatchInput) (*models.Match, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMatchNameRequired
	}

	if _, err := s.gameRepo.GetByID(ctx, nil, gameID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to verify game %d: %w", gameID, err)
	}

	match := &models.Match{GameID: gameID, Name: name}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMatchCreationFailed, err)
	}
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by id %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) ListMatchesByGame(ctx context.Context, gameID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByGame(ctx, nil, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for game %d: %w", gameID, err)
	}
	if matches == nil {
		return []*models.Match{}, nil
	}
	return matches, nil
}

// DeleteMatch cascades to the match's teams and score rows, which changes the
// owning game's cumulative standings, so the game room gets a fresh view.
func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to get match %d before delete: %w", id, err)
	}

	if err := s.matchRepo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("%w (id: %d): %w", ErrMatchDeleteFailed, id, err)
	}

	s.notifier.GameUpdated(ctx, match.GameID)
	return nil
}

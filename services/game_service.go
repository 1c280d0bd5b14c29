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
	ErrGameCreationFailed = errors.New("failed to create game")
	ErrGameDeleteFailed   = errors.New("failed to delete game")
)

type GameService interface {
	CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error)
	GetGameByID(ctx context.Context, id int) (*models.Game, error)
	ListGames(ctx context.Context) ([]*models.Game, error)
	DeleteGame(ctx context.Context, id int) error
}

type CreateGameInput struct {
	Name string `json:"name"`
}

type gameService struct {
	gameRepo repositories.GameRepository
	notifier live.Notifier
}

func NewGameService(gameRepo repositories.GameRepository, notifier live.Notifier) GameService {
	return &gameService{
		gameRepo: gameRepo,
		notifier: notifier,
	}
}

func (s *gameService) CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGameNameRequired
	}

	game := &models.Game{Name: name}
	if err := s.gameRepo.Create(ctx, nil, game); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGameCreationFailed, err)
	}

	s.notifier.GamesChanged(ctx)
	return game, nil
}

func (s *gameService) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game by id %d: %w", id, err)
	}
	return game, nil
}

func (s *gameService) ListGames(ctx context.Context) ([]*models.Game, error) {
	games, err := s.gameRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	if games == nil {
		return []*models.Game{}, nil
	}
	return games, nil
}

// DeleteGame removes the game and everything under it (matches, teams, score
// rows) through database cascades, then tells all clients the list moved.
func (s *gameService) DeleteGame(ctx context.Context, id int) error {
	if err := s.gameRepo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("%w (id: %d): %w", ErrGameDeleteFailed, id, err)
	}

	s.notifier.GamesChanged(ctx)
	return nil
}

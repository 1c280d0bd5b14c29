package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/esports-scoreboard/live"
	"github.com/Dosada05/esports-scoreboard/models"
	"github.com/Dosada05/esports-scoreboard/repositories"
)

// ScoreService is the single writer of score rows. Every mutation is a
// relative update scoped by (match_id, team_id); on success, and only on
// success, the owning match's rooms get a fresh push.
type ScoreService interface {
	AddPoints(ctx context.Context, matchID, teamID, delta int) error
	AddEliminations(ctx context.Context, matchID, teamID, delta int) error
	SetEliminated(ctx context.Context, matchID, teamID int, eliminated bool) error
	GetScore(ctx context.Context, matchID, teamID int) (*models.ScoreRow, error)
	ListMatchScores(ctx context.Context, matchID int) ([]*models.ScoreRow, error)
}

type scoreService struct {
	scoreRepo repositories.ScoreRepository
	notifier  live.Notifier
}

func NewScoreService(scoreRepo repositories.ScoreRepository, notifier live.Notifier) ScoreService {
	return &scoreService{
		scoreRepo: scoreRepo,
		notifier:  notifier,
	}
}

// AddPoints applies a relative point adjustment. Negative deltas are allowed
// without a floor: operators use them to undo misclicks, and two concurrent
// adjustments must always compose to their sum.
func (s *scoreService) AddPoints(ctx context.Context, matchID, teamID, delta int) error {
	if err := s.scoreRepo.AddPoints(ctx, nil, matchID, teamID, delta); err != nil {
		if errors.Is(err, repositories.ErrScoreRowNotFound) {
			return ErrScoreRowNotFound
		}
		return fmt.Errorf("failed to add %d points for team %d in match %d: %w", delta, teamID, matchID, err)
	}

	s.notifier.MatchUpdated(ctx, matchID)
	return nil
}

func (s *scoreService) AddEliminations(ctx context.Context, matchID, teamID, delta int) error {
	if err := s.scoreRepo.AddEliminations(ctx, nil, matchID, teamID, delta); err != nil {
		if errors.Is(err, repositories.ErrScoreRowNotFound) {
			return ErrScoreRowNotFound
		}
		return fmt.Errorf("failed to add %d eliminations for team %d in match %d: %w", delta, teamID, matchID, err)
	}

	s.notifier.MatchUpdated(ctx, matchID)
	return nil
}

// SetEliminated flips the elimination flag only; the points and elimination
// counters are left untouched.
func (s *scoreService) SetEliminated(ctx context.Context, matchID, teamID int, eliminated bool) error {
	if err := s.scoreRepo.SetEliminated(ctx, nil, matchID, teamID, eliminated); err != nil {
		if errors.Is(err, repositories.ErrScoreRowNotFound) {
			return ErrScoreRowNotFound
		}
		return fmt.Errorf("failed to set eliminated=%t for team %d in match %d: %w", eliminated, teamID, matchID, err)
	}

	s.notifier.MatchUpdated(ctx, matchID)
	return nil
}

func (s *scoreService) GetScore(ctx context.Context, matchID, teamID int) (*models.ScoreRow, error) {
	score, err := s.scoreRepo.GetByMatchAndTeam(ctx, nil, matchID, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrScoreRowNotFound) {
			return nil, ErrScoreRowNotFound
		}
		return nil, fmt.Errorf("failed to get score for team %d in match %d: %w", teamID, matchID, err)
	}
	return score, nil
}

func (s *scoreService) ListMatchScores(ctx context.Context, matchID int) ([]*models.ScoreRow, error) {
	scores, err := s.scoreRepo.ListByMatch(ctx, nil, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores for match %d: %w", matchID, err)
	}
	if scores == nil {
		return []*models.ScoreRow{}, nil
	}
	return scores, nil
}

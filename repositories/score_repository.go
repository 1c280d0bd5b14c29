package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/esports-scoreboard/models"
)

var ErrScoreRowNotFound = errors.New("score row not found")

type ScoreRepository interface {
	// CreateForTeam inserts a zeroed counter row for a freshly created team.
	CreateForTeam(ctx context.Context, exec SQLExecutor, matchID, teamID int) error

	// AddPoints and AddEliminations apply relative updates
	// (column = column + delta) so concurrent adjustments compose instead of
	// overwriting each other.
	AddPoints(ctx context.Context, exec SQLExecutor, matchID, teamID, delta int) error
	AddEliminations(ctx context.Context, exec SQLExecutor, matchID, teamID, delta int) error

	SetEliminated(ctx context.Context, exec SQLExecutor, matchID, teamID int, eliminated bool) error
	GetByMatchAndTeam(ctx context.Context, exec SQLExecutor, matchID, teamID int) (*models.ScoreRow, error)
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.ScoreRow, error)
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresScoreRepository) CreateForTeam(ctx context.Context, exec SQLExecutor, matchID, teamID int) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO team_points (match_id, team_id) VALUES ($1, $2)`
	_, err := executor.ExecContext(ctx, query, matchID, teamID)
	return err
}

func (r *postgresScoreRepository) AddPoints(ctx context.Context, exec SQLExecutor, matchID, teamID, delta int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE team_points SET team_points = team_points + $1 WHERE match_id = $2 AND team_id = $3`
	result, err := executor.ExecContext(ctx, query, delta, matchID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScoreRowNotFound)
}

func (r *postgresScoreRepository) AddEliminations(ctx context.Context, exec SQLExecutor, matchID, teamID, delta int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE team_points SET team_elms = team_elms + $1 WHERE match_id = $2 AND team_id = $3`
	result, err := executor.ExecContext(ctx, query, delta, matchID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScoreRowNotFound)
}

func (r *postgresScoreRepository) SetEliminated(ctx context.Context, exec SQLExecutor, matchID, teamID int, eliminated bool) error {
	executor := r.getExecutor(exec)
	query := `UPDATE team_points SET is_eliminated = $1 WHERE match_id = $2 AND team_id = $3`
	result, err := executor.ExecContext(ctx, query, eliminated, matchID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScoreRowNotFound)
}

func (r *postgresScoreRepository) GetByMatchAndTeam(ctx context.Context, exec SQLExecutor, matchID, teamID int) (*models.ScoreRow, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, match_id, team_id, team_points, team_elms, is_eliminated
		FROM team_points
		WHERE match_id = $1 AND team_id = $2`

	var s models.ScoreRow
	err := executor.QueryRowContext(ctx, query, matchID, teamID).Scan(
		&s.ID, &s.MatchID, &s.TeamID, &s.Points, &s.Eliminations, &s.IsEliminated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreRowNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresScoreRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.ScoreRow, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, match_id, team_id, team_points, team_elms, is_eliminated
		FROM team_points
		WHERE match_id = $1
		ORDER BY team_id ASC`

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]*models.ScoreRow, 0)
	for rows.Next() {
		var s models.ScoreRow
		if err := rows.Scan(&s.ID, &s.MatchID, &s.TeamID, &s.Points, &s.Eliminations, &s.IsEliminated); err != nil {
			return nil, err
		}
		scores = append(scores, &s)
	}
	return scores, rows.Err()
}

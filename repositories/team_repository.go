package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/esports-scoreboard/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	// Create inserts the team row only. Callers are expected to insert the
	// matching score row through ScoreRepository.CreateForTeam inside the
	// same transaction; a team must never exist without its score row.
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Team, error)
	Update(ctx context.Context, exec SQLExecutor, team *models.Team) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO teams (match_id, name, initial, logo_key) VALUES ($1, $2, $3, $4) RETURNING id`
	return executor.QueryRowContext(ctx, query, team.MatchID, team.Name, team.Initial, team.LogoKey).Scan(&team.ID)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, match_id, name, initial, logo_key FROM teams WHERE id = $1`

	var t models.Team
	err := executor.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.MatchID, &t.Name, &t.Initial, &t.LogoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Team, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, match_id, name, initial, logo_key FROM teams WHERE match_id = $1 ORDER BY id ASC`

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.MatchID, &t.Name, &t.Initial, &t.LogoKey); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Update(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	query := `UPDATE teams SET name = $1, initial = $2, logo_key = $3 WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, team.Name, team.Initial, team.LogoKey, team.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

// Delete removes the team; its score row follows via ON DELETE CASCADE.
func (r *postgresTeamRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

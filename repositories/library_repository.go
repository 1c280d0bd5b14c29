package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/esports-scoreboard/models"
)

var (
	ErrLibraryEntryNotFound = errors.New("team library entry not found")
	ErrLibraryNameConflict  = errors.New("team library entry with this name already exists")
)

type TeamLibraryRepository interface {
	Create(ctx context.Context, exec SQLExecutor, entry *models.TeamLibraryEntry) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TeamLibraryEntry, error)
	Search(ctx context.Context, exec SQLExecutor, nameFilter string) ([]*models.TeamLibraryEntry, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresTeamLibraryRepository struct {
	db *sql.DB
}

func NewPostgresTeamLibraryRepository(db *sql.DB) TeamLibraryRepository {
	return &postgresTeamLibraryRepository{db: db}
}

func (r *postgresTeamLibraryRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamLibraryRepository) Create(ctx context.Context, exec SQLExecutor, entry *models.TeamLibraryEntry) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO team_library (name, initial, logo_key) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := executor.QueryRowContext(ctx, query, entry.Name, entry.Initial, entry.LogoKey).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return ErrLibraryNameConflict
	}
	return err
}

func (r *postgresTeamLibraryRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TeamLibraryEntry, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, name, initial, logo_key, created_at FROM team_library WHERE id = $1`

	var e models.TeamLibraryEntry
	err := executor.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Initial, &e.LogoKey, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLibraryEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Search lists entries whose name contains nameFilter (case-insensitive).
// An empty filter lists the whole library.
func (r *postgresTeamLibraryRepository) Search(ctx context.Context, exec SQLExecutor, nameFilter string) ([]*models.TeamLibraryEntry, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, initial, logo_key, created_at
		FROM team_library
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY name ASC`

	rows, err := executor.QueryContext(ctx, query, nameFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.TeamLibraryEntry, 0)
	for rows.Next() {
		var e models.TeamLibraryEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Initial, &e.LogoKey, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *postgresTeamLibraryRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM team_library WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrLibraryEntryNotFound)
}

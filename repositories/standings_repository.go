package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/esports-scoreboard/models"
)

// StandingsRepository holds the two read-only query shapes behind the live
// views. Both are pure functions of current table state; nothing is cached.
type StandingsRepository interface {
	// MatchView returns every team of a match joined to its score row,
	// ranked by combined total, then points, then eliminations. Teams equal
	// on all three keep insertion order.
	MatchView(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.MatchStanding, error)

	// GameView sums points and eliminations per team identity
	// (name/initial/logo) across every match of a game. Identity is by
	// display attributes because each match owns its own team rows.
	GameView(ctx context.Context, exec SQLExecutor, gameID int) ([]*models.OverallStanding, error)
}

type postgresStandingsRepository struct {
	db *sql.DB
}

func NewPostgresStandingsRepository(db *sql.DB) StandingsRepository {
	return &postgresStandingsRepository{db: db}
}

func (r *postgresStandingsRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingsRepository) MatchView(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.MatchStanding, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT t.id, t.name, t.initial, t.logo_key,
		       p.team_points, p.team_elms, p.is_eliminated
		FROM teams t
		JOIN team_points p ON p.team_id = t.id AND p.match_id = t.match_id
		WHERE t.match_id = $1
		ORDER BY (p.team_points + p.team_elms) DESC, p.team_points DESC, p.team_elms DESC, t.id ASC`

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.MatchStanding, 0)
	for rows.Next() {
		var s models.MatchStanding
		if err := rows.Scan(&s.TeamID, &s.Name, &s.Initial, &s.LogoKey,
			&s.Points, &s.Eliminations, &s.IsEliminated); err != nil {
			return nil, err
		}
		s.Total = s.Points + s.Eliminations
		standings = append(standings, &s)
	}
	return standings, rows.Err()
}

func (r *postgresStandingsRepository) GameView(ctx context.Context, exec SQLExecutor, gameID int) ([]*models.OverallStanding, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT t.name, t.initial, t.logo_key,
		       COALESCE(SUM(p.team_points), 0) AS total_points,
		       COALESCE(SUM(p.team_elms), 0) AS total_elms,
		       COALESCE(SUM(p.team_points + p.team_elms), 0) AS overall_total
		FROM teams t
		JOIN team_points p ON p.team_id = t.id AND p.match_id = t.match_id
		JOIN matches m ON m.id = t.match_id
		WHERE m.game_id = $1
		GROUP BY t.name, t.initial, t.logo_key
		ORDER BY overall_total DESC, total_points DESC, total_elms DESC`

	rows, err := executor.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.OverallStanding, 0)
	for rows.Next() {
		var s models.OverallStanding
		if err := rows.Scan(&s.Name, &s.Initial, &s.LogoKey,
			&s.TotalPoints, &s.TotalEliminations, &s.OverallTotal); err != nil {
			return nil, err
		}
		standings = append(standings, &s)
	}
	return standings, rows.Err()
}

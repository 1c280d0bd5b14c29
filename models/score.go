package models

// ScoreRow is the live counter row backing one team in one match.
// Exactly one row exists per (match_id, team_id); it is created in the same
// transaction as the team and only ever mutated through relative updates.
type ScoreRow struct {
	ID           int  `json:"id" db:"id"`
	MatchID      int  `json:"match_id" db:"match_id"`
	TeamID       int  `json:"team_id" db:"team_id"`
	Points       int  `json:"team_points" db:"team_points"`
	Eliminations int  `json:"team_elms" db:"team_elms"`
	IsEliminated bool `json:"is_eliminated" db:"is_eliminated"`
}

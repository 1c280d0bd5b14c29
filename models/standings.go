package models

// MatchStanding is one row of the ranked live view of a single match.
type MatchStanding struct {
	TeamID       int    `json:"team_id"`
	Name         string `json:"name"`
	Initial      string `json:"initial"`
	Points       int    `json:"team_points"`
	Eliminations int    `json:"team_elms"`
	Total        int    `json:"total"`
	IsEliminated bool   `json:"is_eliminated"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`
}

// OverallStanding is one row of the cumulative game view. Teams are grouped
// by display identity (name/initial/logo) because every match re-creates its
// own team rows.
type OverallStanding struct {
	Name              string `json:"name"`
	Initial           string `json:"initial"`
	TotalPoints       int    `json:"total_points"`
	TotalEliminations int    `json:"total_elms"`
	OverallTotal      int    `json:"overall_total"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`
}

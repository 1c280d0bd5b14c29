package models

type Team struct {
	ID      int    `json:"id" db:"id"`
	MatchID int    `json:"match_id" db:"match_id"`
	Name    string `json:"name" db:"name"`
	Initial string `json:"initial" db:"initial"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	Score *ScoreRow `json:"score,omitempty" db:"-"`
}

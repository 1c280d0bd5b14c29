package models

import "time"

// TeamLibraryEntry is a reusable team template. It is not tied to any match;
// adding it to a match copies name/initial/logo into a fresh Team row.
type TeamLibraryEntry struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Initial   string    `json:"initial" db:"initial"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}

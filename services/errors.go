package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	// Not found
	ErrGameNotFound         = errors.New("game not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrScoreRowNotFound     = errors.New("score row not found for this match and team")
	ErrLibraryEntryNotFound = errors.New("team library entry not found")

	// Validation / business rules
	ErrGameNameRequired    = errors.New("game name is required")
	ErrMatchNameRequired   = errors.New("match name is required")
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrLibraryNameRequired = errors.New("library entry name is required")
	ErrCopySameMatch       = errors.New("source and destination match must differ")

	// Conflicts
	ErrLibraryNameConflict = errors.New("library entry name is already in use")

	// ErrCopyTeamsAborted marks a rolled-back bulk copy: the destination
	// match is guaranteed unchanged.
	ErrCopyTeamsAborted = errors.New("copy teams transaction aborted")

	// ErrLogoStorageUnavailable is returned when a logo upload is requested
	// but object storage is not configured.
	ErrLogoStorageUnavailable = errors.New("logo storage is not configured")
)

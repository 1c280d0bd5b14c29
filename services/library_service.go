package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dosada05/esports-scoreboard/models"
	"github.com/Dosada05/esports-scoreboard/repositories"
	"github.com/Dosada05/esports-scoreboard/storage"
)

var ErrLibraryEntryCreationFailed = errors.New("failed to create team library entry")

// TeamLibraryService manages reusable team templates. Entries never
// participate in broadcasts: they only matter at the moment a team is
// pre-populated into a match.
type TeamLibraryService interface {
	CreateEntry(ctx context.Context, input CreateLibraryEntryInput) (*models.TeamLibraryEntry, error)
	SearchEntries(ctx context.Context, nameFilter string) ([]*models.TeamLibraryEntry, error)
	DeleteEntry(ctx context.Context, id int) error
}

type CreateLibraryEntryInput struct {
	Name    string
	Initial string

	// Logo is optional; when set, LogoContentType must be an image type.
	Logo            io.Reader
	LogoContentType string
}

type teamLibraryService struct {
	libRepo  repositories.TeamLibraryRepository
	uploader storage.FileUploader
}

func NewTeamLibraryService(libRepo repositories.TeamLibraryRepository, uploader storage.FileUploader) TeamLibraryService {
	return &teamLibraryService{
		libRepo:  libRepo,
		uploader: uploader,
	}
}

func (s *teamLibraryService) CreateEntry(ctx context.Context, input CreateLibraryEntryInput) (*models.TeamLibraryEntry, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrLibraryNameRequired
	}

	entry := &models.TeamLibraryEntry{
		Name:    name,
		Initial: strings.TrimSpace(input.Initial),
	}

	if input.Logo != nil {
		if s.uploader == nil {
			return nil, ErrLogoStorageUnavailable
		}
		ext, err := extensionFromContentType(input.LogoContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLibraryEntryCreationFailed, err)
		}
		key := fmt.Sprintf("team_logos/%d%s", time.Now().UnixNano(), ext)
		result, err := s.uploader.Upload(ctx, key, input.LogoContentType, input.Logo)
		if err != nil {
			return nil, fmt.Errorf("%w: logo upload: %w", ErrLibraryEntryCreationFailed, err)
		}
		entry.LogoKey = &result.Key
	}

	if err := s.libRepo.Create(ctx, nil, entry); err != nil {
		// The uploaded logo is orphaned on a conflict; clean it up
		// best-effort before surfacing the error.
		if entry.LogoKey != nil && s.uploader != nil {
			_ = s.uploader.Delete(ctx, *entry.LogoKey)
		}
		if errors.Is(err, repositories.ErrLibraryNameConflict) {
			return nil, ErrLibraryNameConflict
		}
		return nil, fmt.Errorf("%w: %w", ErrLibraryEntryCreationFailed, err)
	}

	populateLibraryEntryLogoURL(entry, s.uploader)
	return entry, nil
}

func (s *teamLibraryService) SearchEntries(ctx context.Context, nameFilter string) ([]*models.TeamLibraryEntry, error) {
	entries, err := s.libRepo.Search(ctx, nil, strings.TrimSpace(nameFilter))
	if err != nil {
		return nil, fmt.Errorf("failed to search team library: %w", err)
	}
	for _, entry := range entries {
		populateLibraryEntryLogoURL(entry, s.uploader)
	}
	return entries, nil
}

// DeleteEntry removes the template row only. The logo object stays in
// storage: teams created from the entry still reference its key.
func (s *teamLibraryService) DeleteEntry(ctx context.Context, id int) error {
	if err := s.libRepo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrLibraryEntryNotFound) {
			return ErrLibraryEntryNotFound
		}
		return fmt.Errorf("failed to delete library entry %d: %w", id, err)
	}
	return nil
}

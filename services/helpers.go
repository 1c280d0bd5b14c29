package services

import (
	"fmt"
	"strings"

	"github.com/Dosada05/esports-scoreboard/models"
	"github.com/Dosada05/esports-scoreboard/storage"
)

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

func populateLibraryEntryLogoURL(entry *models.TeamLibraryEntry, uploader storage.FileUploader) {
	if entry != nil && entry.LogoKey != nil && *entry.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*entry.LogoKey)
		if url != "" {
			entry.LogoURL = &url
		}
	}
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type %q", contentType)
	}
}

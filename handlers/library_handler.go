package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/esports-scoreboard/services"
)

type TeamLibraryHandler struct {
	libraryService services.TeamLibraryService
}

func NewTeamLibraryHandler(ls services.TeamLibraryService) *TeamLibraryHandler {
	return &TeamLibraryHandler{libraryService: ls}
}

// CreateEntry accepts a multipart form with "name", "initial" and an
// optional "logo" file.
func (h *TeamLibraryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	input := services.CreateLibraryEntryInput{
		Name:    r.FormValue("name"),
		Initial: r.FormValue("initial"),
	}

	file, header, err := r.FormFile("logo")
	switch {
	case err == nil:
		defer file.Close()
		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			badRequestResponse(w, r, errors.New("content-type header is required for logo"))
			return
		}
		input.Logo = file
		input.LogoContentType = contentType
	case errors.Is(err, http.ErrMissingFile):
		// Logo is optional.
	default:
		badRequestResponse(w, r, fmt.Errorf("failed to get logo file from form: %w", err))
		return
	}

	entry, err := h.libraryService.CreateEntry(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"entry": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamLibraryHandler) SearchEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.libraryService.SearchEntries(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"entries": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamLibraryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := getIDFromURL(r, "entryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.libraryService.DeleteEntry(r.Context(), entryID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

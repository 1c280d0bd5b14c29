package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/esports-scoreboard/services"
)

var errMissingDestinationMatch = errors.New("destination_match_id is required and must be positive")

type MatchHandler struct {
	matchService services.MatchService
	teamService  services.TeamService
}

func NewMatchHandler(ms services.MatchService, ts services.TeamService) *MatchHandler {
	return &MatchHandler{
		matchService: ms,
		teamService:  ts,
	}
}

func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type copyTeamsInput struct {
	DestinationMatchID int `json:"destination_match_id"`
}

// CopyTeams duplicates the source match's roster into the destination match
// with zeroed counters, atomically.
func (h *MatchHandler) CopyTeams(w http.ResponseWriter, r *http.Request) {
	sourceMatchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input copyTeamsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.DestinationMatchID <= 0 {
		badRequestResponse(w, r, errMissingDestinationMatch)
		return
	}

	if err := h.teamService.CopyTeams(r.Context(), sourceMatchID, input.DestinationMatchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"copied": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/esports-scoreboard/services"
)

type ScoreHandler struct {
	scoreService services.ScoreService
}

func NewScoreHandler(ss services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: ss}
}

type deltaInput struct {
	TeamID int  `json:"team_id"`
	Delta  *int `json:"delta"`
}

func (in *deltaInput) validate() error {
	if in.TeamID <= 0 {
		return errors.New("team_id is required and must be positive")
	}
	if in.Delta == nil {
		return errors.New("delta is required")
	}
	return nil
}

// AddPoints applies a relative point adjustment to one team of the match.
// The delta may be negative; on success subscribers of the match and its
// game receive fresh standings.
func (h *ScoreHandler) AddPoints(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input deltaInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := input.validate(); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scoreService.AddPoints(r.Context(), matchID, input.TeamID, *input.Delta); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) AddEliminations(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input deltaInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := input.validate(); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scoreService.AddEliminations(r.Context(), matchID, input.TeamID, *input.Delta); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type eliminateInput struct {
	TeamID     int  `json:"team_id"`
	Eliminated bool `json:"eliminated"`
}

// SetEliminated flips a team's eliminated flag. Counters are unaffected.
func (h *ScoreHandler) SetEliminated(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input eliminateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TeamID <= 0 {
		badRequestResponse(w, r, errors.New("team_id is required and must be positive"))
		return
	}

	if err := h.scoreService.SetEliminated(r.Context(), matchID, input.TeamID, input.Eliminated); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

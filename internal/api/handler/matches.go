package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/comeback-scout/internal/api/respond"
	"github.com/albapepper/comeback-scout/internal/simulator"
)

// CheckComebacksResponse reports how many alerts a trigger created.
type CheckComebacksResponse struct {
	AlertsCreated int `json:"alerts_created"`
}

// GetLiveMatches returns a freshly simulated batch of live matches.
// @Summary List live matches
// @Description Draws a new batch of simulated superteam matches with comeback probabilities. Every call is an independent draw.
// @Tags matches
// @Produce json
// @Success 200 {array} model.MatchSnapshot
// @Router /matches/live [get]
func (h *Handler) GetLiveMatches(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.matches.Generate())
}

// GetMatch looks up a match in a freshly drawn batch.
// @Summary Get one match
// @Description Draws a new batch and returns the match with the given id. Ids change on every draw, so earlier ids are normally not found.
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} model.MatchSnapshot
// @Failure 404 {object} respond.ErrorResponse
// @Router /matches/{id} [get]
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := h.matches.Find(chi.URLParam(r, "id"))
	if errors.Is(err, simulator.ErrMatchNotFound) {
		respond.WriteError(w, http.StatusNotFound, respond.CodeNotFound, "Match not found")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, match)
}

// CheckComebacks evaluates a fresh batch and persists alerts.
// @Summary Trigger alert evaluation
// @Description Draws a new batch and creates an alert for every comeback scenario above 60%, at most one per (match, team).
// @Tags matches
// @Produce json
// @Success 200 {object} handler.CheckComebacksResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /matches/check-comebacks [post]
func (h *Handler) CheckComebacks(w http.ResponseWriter, r *http.Request) {
	created, err := h.alerts.EvaluateAndAlert(r.Context(), h.matches.Generate())
	if err != nil {
		h.internalError(w, r, "Failed to evaluate comebacks", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, CheckComebacksResponse{AlertsCreated: created})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/comeback-scout/internal/alerts"
	"github.com/albapepper/comeback-scout/internal/api/respond"
)

// SuccessResponse acknowledges a mutation.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// GetAlerts returns stored comeback alerts, newest first.
// @Summary List alerts
// @Description Returns persisted comeback alerts ordered by creation time, newest first.
// @Tags alerts
// @Produce json
// @Success 200 {array} model.ComebackAlert
// @Failure 500 {object} respond.ErrorResponse
// @Router /alerts [get]
func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	list, err := h.alerts.ListAlerts(r.Context(), h.cfg.AlertsLimit)
	if err != nil {
		h.internalError(w, r, "Failed to list alerts", err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, list)
}

// MarkAlertRead flags an alert as read.
// @Summary Mark alert read
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} handler.SuccessResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /alerts/mark-read/{id} [post]
func (h *Handler) MarkAlertRead(w http.ResponseWriter, r *http.Request) {
	err := h.alerts.MarkRead(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, alerts.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, respond.CodeNotFound, "Alert not found")
	case err != nil:
		h.internalError(w, r, "Failed to mark alert read", err)
	default:
		respond.WriteJSONObject(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

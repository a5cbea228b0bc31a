package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/comeback-scout/internal/api/respond"
	"github.com/albapepper/comeback-scout/internal/cache"
)

// GetSuperteams returns the monitored superteam profiles.
// The roster is fixed for the process lifetime, so the encoded body is
// cached and served with an ETag.
// @Summary List monitored superteams
// @Tags superteams
// @Produce json
// @Success 200 {array} model.SuperteamProfile
// @Success 304
// @Router /superteams [get]
func (h *Handler) GetSuperteams(w http.ResponseWriter, r *http.Request) {
	ttl := cache.TTLReference
	data, etag, hit, err := h.cache.Fetch("superteams", ttl, func() ([]byte, error) {
		return json.Marshal(h.roster.Superteams)
	})
	if err != nil {
		h.internalError(w, r, "Failed to encode superteams", err)
		return
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, hit)
}

// GetSuperteam returns one monitored superteam by exact name.
// @Summary Get one superteam
// @Tags superteams
// @Produce json
// @Param name path string true "Team name"
// @Success 200 {object} model.SuperteamProfile
// @Failure 404 {object} respond.ErrorResponse
// @Router /superteams/{name} [get]
func (h *Handler) GetSuperteam(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		name = chi.URLParam(r, "name")
	}
	profile, ok := h.roster.Superteam(name)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, respond.CodeNotFound, "Superteam not found")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, profile)
}

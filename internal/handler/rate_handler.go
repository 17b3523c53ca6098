package handler

import (
	"net/http"

	"github.com/renoquote/backend/internal/model"
	"github.com/renoquote/backend/internal/service"
)

// RateHandler exposes the rate catalog read-only.
type RateHandler struct {
	svc service.RateService
}

// NewRateHandler creates a RateHandler.
func NewRateHandler(svc service.RateService) *RateHandler {
	return &RateHandler{svc: svc}
}

// List handles GET /api/rates.
func (h *RateHandler) List(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.ListRates(r.Context())
	if err != nil {
		writeServiceError(w, r, "rate_list", err)
		return
	}
	if rates == nil {
		rates = []*model.RateLine{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"rates": rates})
}

// Multipliers handles GET /api/multipliers.
func (h *RateHandler) Multipliers(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetMultipliers(r.Context())
	if err != nil {
		writeServiceError(w, r, "multipliers_get", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

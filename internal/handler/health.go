package handler

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	RateDrift int64  `json:"rate_drift"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var drift int64
	if h.drift != nil {
		drift = h.drift.Total()
	}

	if err := h.db.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:    "unhealthy",
			Message:   err.Error(),
			RateDrift: drift,
		})
		return
	}

	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:    "ok",
		Message:   "Quote pricing API",
		RateDrift: drift,
	})
}

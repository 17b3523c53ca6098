package handler

import (
	"net/http"

	"github.com/renoquote/backend/internal/repository"
)

// DriftStats exposes the running count of rate drift events.
type DriftStats interface {
	Total() int64
}

type Handler struct {
	db          repository.DB
	drift       DriftStats
	frontendURL string
}

func New(db repository.DB, drift DriftStats, frontendURL string) *Handler {
	return &Handler{db: db, drift: drift, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, Retry-After, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/renoquote/backend/internal/catalog"
	"github.com/renoquote/backend/internal/repository"
	"github.com/renoquote/backend/internal/service"
)

// maxBodyBytes caps request bodies; intake forms are small.
const maxBodyBytes = 64 << 10

// catalogRetryAfter is the Retry-After hint sent with catalog failures.
const catalogRetryAfter = "5"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeServiceError maps service-layer errors onto HTTP responses. op names
// the failed operation in logs and in the fallback error code.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid_form",
			"details": verr.Violations,
		})
	case errors.Is(err, service.ErrInvalidForm):
		writeError(w, http.StatusBadRequest, "invalid_form")
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		slog.ErrorContext(r.Context(), op+" failed", "error", err)
		w.Header().Set("Retry-After", catalogRetryAfter)
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		slog.ErrorContext(r.Context(), op+" failed", "error", err)
		writeError(w, http.StatusInternalServerError, op+"_failed")
	}
}

// decodeBody decodes a JSON request body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}

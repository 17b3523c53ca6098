package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/renoquote/backend/internal/export"
	"github.com/renoquote/backend/internal/model"
	"github.com/renoquote/backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// QuoteHandler serves quote calculation, submission and retrieval.
type QuoteHandler struct {
	svc service.QuoteService
}

// NewQuoteHandler creates a QuoteHandler.
func NewQuoteHandler(svc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{svc: svc}
}

// Calculate handles POST /api/quotes/calculate. Nothing is stored.
func (h *QuoteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var form model.QuoteFormData
	if !decodeBody(w, r, &form) {
		return
	}

	result, err := h.svc.Calculate(r.Context(), &form)
	if err != nil {
		writeServiceError(w, r, "calculate", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Submit handles POST /api/quotes.
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub model.QuoteSubmission
	if !decodeBody(w, r, &sub) {
		return
	}

	quote, err := h.svc.Submit(r.Context(), &sub)
	if err != nil {
		writeServiceError(w, r, "submit", err)
		return
	}
	writeJSON(w, http.StatusCreated, quote)
}

// Get handles GET /api/quotes/{id}.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// Export handles GET /api/quotes/{id}/export and returns an xlsx download.
func (h *QuoteHandler) Export(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.load(w, r)
	if !ok {
		return
	}

	data, err := export.GenerateQuoteExcel(quote)
	if err != nil {
		writeServiceError(w, r, "export", err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="quote-%s.xlsx"`, quote.ID))
	_, _ = w.Write(data)
}

// load resolves the {id} path value to a stored quote. Non-UUID ids are
// reported as not found without touching the database.
func (h *QuoteHandler) load(w http.ResponseWriter, r *http.Request) (*model.Quote, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}

	quote, err := h.svc.Get(r.Context(), id.String())
	if err != nil {
		writeServiceError(w, r, "quote_get", err)
		return nil, false
	}
	return quote, true
}

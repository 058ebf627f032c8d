package handlers

import (
	"net/http"

	"github.com/AnshRaj112/voxa-backend/internal/models"
	"github.com/AnshRaj112/voxa-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type JournalHandler struct {
	errorWriter
	svc *services.JournalService
}

func NewJournalHandler(svc *services.JournalService, production bool) *JournalHandler {
	return &JournalHandler{errorWriter: errorWriter{production: production}, svc: svc}
}

// List handles GET /api/journals
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	journals, page, err := h.svc.List(r.Context(), caller(r), models.JournalQuery{
		Page:      q.Get("page"),
		Limit:     q.Get("limit"),
		Mood:      q.Get("mood"),
		Sentiment: q.Get("sentiment"),
		Search:    q.Get("search"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: journals, Pagination: &page})
}

// Get handles GET /api/journals/{id}
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	j, err := h.svc.Get(r.Context(), caller(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: j})
}

// Create handles POST /api/journals
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateJournalInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	j, err := h.svc.Create(r.Context(), caller(r), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Response{Success: true, Data: j})
}

// Update handles PUT /api/journals/{id}
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateJournalInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	j, err := h.svc.Update(r.Context(), caller(r), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: j})
}

// Delete handles DELETE /api/journals/{id}
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Journal deleted successfully"})
}

// Stats handles GET /api/journals/stats/summary
func (h *JournalHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context(), caller(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: st})
}

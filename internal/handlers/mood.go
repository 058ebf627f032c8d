package handlers

import (
	"net/http"

	"github.com/AnshRaj112/voxa-backend/internal/models"
	"github.com/AnshRaj112/voxa-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type MoodHandler struct {
	errorWriter
	svc *services.MoodService
}

func NewMoodHandler(svc *services.MoodService, production bool) *MoodHandler {
	return &MoodHandler{errorWriter: errorWriter{production: production}, svc: svc}
}

// List handles GET /api/moods
func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	moods, page, err := h.svc.List(r.Context(), caller(r), models.MoodQuery{
		Page:      q.Get("page"),
		Limit:     q.Get("limit"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: moods, Pagination: &page})
}

// Today handles GET /api/moods/today. No entry today is a success with null data.
func (h *MoodHandler) Today(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Today(r.Context(), caller(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if m == nil {
		writeJSON(w, http.StatusOK, Response{Success: true, Data: nullData})
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: m})
}

// Create handles POST /api/moods
func (h *MoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateMoodInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	m, err := h.svc.Create(r.Context(), caller(r), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Response{Success: true, Data: m})
}

// Delete handles DELETE /api/moods/{id}
func (h *MoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), caller(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Mood entry deleted successfully"})
}

// Stats handles GET /api/moods/stats/summary
func (h *MoodHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context(), caller(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: st})
}

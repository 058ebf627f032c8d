package handlers

import (
	"errors"
	"net/http"

	"github.com/AnshRaj112/voxa-backend/internal/apperr"
	"github.com/AnshRaj112/voxa-backend/internal/services"
)

type AudioHandler struct {
	errorWriter
	svc *services.AudioService
}

func NewAudioHandler(svc *services.AudioService, production bool) *AudioHandler {
	return &AudioHandler{errorWriter: errorWriter{production: production}, svc: svc}
}

type uploadResult struct {
	URL string `json:"url"`
}

// Upload handles POST /api/uploads/audio (multipart field "audio").
func (h *AudioHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Allow some headroom for the multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxAudioSize+(1<<20))
	if err := r.ParseMultipartForm(services.MaxAudioSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.writeError(w, r, apperr.Validation("audio file must be at most 10MB"))
			return
		}
		h.writeError(w, r, apperr.Validation("Invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("audio")
	if err != nil {
		h.writeError(w, r, apperr.Validation("audio file is required"))
		return
	}
	defer file.Close()

	url, err := h.svc.Upload(r.Context(), caller(r), services.AudioUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Response{Success: true, Data: uploadResult{URL: url}})
}

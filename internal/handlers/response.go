package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/AnshRaj112/voxa-backend/internal/apperr"
	"github.com/AnshRaj112/voxa-backend/internal/auth"
	"github.com/AnshRaj112/voxa-backend/internal/middleware"
	"github.com/AnshRaj112/voxa-backend/internal/models"
)

const maxJSONBody = 1 << 20

// nullData renders as an explicit "data": null.
var nullData = json.RawMessage("null")

// Response is the envelope every endpoint returns.
type Response struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Stack      string             `json:"stack,omitempty"`
	Code       string             `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// errorWriter renders service errors. Outside production internal errors also carry
// the stack and error code.
type errorWriter struct {
	production bool
}

func (e errorWriter) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	body := Response{Success: false, Error: apperr.Message(err)}

	if kind == apperr.KindInternal {
		slog.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		if !e.production {
			body.Stack = string(debug.Stack())
			body.Code = kind.String()
		}
	}
	writeJSON(w, kind.Status(), body)
}

// decodeJSON reads a JSON body into dst. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// caller returns the identity attached by RequireAuth.
func caller(r *http.Request) string {
	id, _ := auth.FromContext(r.Context())
	return id.ID
}

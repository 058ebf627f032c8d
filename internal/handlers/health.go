package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AnshRaj112/voxa-backend/internal/auth"
)

type healthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// Health handles GET /health. Uptime is reported in seconds.
func Health(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(healthStatus{Status: "ok", Timestamp: now.UTC(), Uptime: now.Sub(started).Seconds()})
	}
}

// Me handles GET /api/me: the caller identity, or null for anonymous callers.
func Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, Response{Success: true, Data: nullData})
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: id})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, Response{Success: false, Error: fmt.Sprintf("Not Found - %s %s", r.Method, r.URL.Path)})
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Error: "Method Not Allowed"})
}

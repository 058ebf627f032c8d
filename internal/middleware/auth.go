package middleware

import (
	"log/slog"
	"net/http"

	"github.com/AnshRaj112/voxa-backend/internal/auth"
)

// RequireAuth rejects requests without a verifiable bearer token with a uniform 401.
// The reason is logged, never returned.
func RequireAuth(v auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeError(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
				return
			}
			id, err := v.Verify(r.Context(), token)
			if err != nil {
				slog.DebugContext(r.Context(), "token rejected", "error", err, "request_id", GetRequestID(r.Context()))
				writeError(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalAuth attaches the caller identity when a valid token is present and never blocks.
func OptionalAuth(v auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := auth.BearerToken(r.Header.Get("Authorization")); token != "" {
				if id, err := v.Verify(r.Context(), token); err == nil {
					r = r.WithContext(auth.WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

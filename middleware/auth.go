package middleware

import (
	"log/slog"
	"net/http"

	"Encore/services"
)

func unauthorized(w http.ResponseWriter, reason string) {
	slog.Debug("Rejecting unauthenticated request", "reason", reason)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized"}`))
}

// RequireAuth guards performer-only routes behind the session cookie.
func RequireAuth(performers *services.PerformerService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := services.GetSession(r)
			if err != nil {
				unauthorized(w, "no session found")
				return
			}

			performerID, ok := session.Values["performer_id"].(string)
			if !ok || performerID == "" {
				unauthorized(w, "performer not authenticated")
				return
			}

			// Verify the performer still exists
			exists, err := performers.Exists(performerID)
			if err != nil || !exists {
				unauthorized(w, "performer not found")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

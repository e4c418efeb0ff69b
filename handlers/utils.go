package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"Encore/models"
	"Encore/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var notFound *services.NotFoundError
	var rejected *services.RejectedError
	var invalid *services.InvalidTransitionError

	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &rejected):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		slog.Error("Unhandled service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

// GetCurrentPerformer resolves the session to a performer record.
func GetCurrentPerformer(r *http.Request) (*models.Performer, error) {
	session, err := services.GetSession(r)
	if err != nil {
		return nil, err
	}

	performerID, ok := session.Values["performer_id"].(string)
	if !ok || performerID == "" {
		return nil, errors.New("not authenticated")
	}

	return performerService.GetByID(performerID)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"Encore/models"
)

func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	performer, err := GetCurrentPerformer(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	settings, err := settingsService.GetSettings(performer.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	performer, err := GetCurrentPerformer(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var update models.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if update.MinimumTip != nil && *update.MinimumTip < 0 {
		badRequest(w, "minimum_tip cannot be negative")
		return
	}
	if update.MaxQueueSize != nil && *update.MaxQueueSize < 1 {
		badRequest(w, "max_queue_size must be at least 1")
		return
	}

	settings, err := settingsService.UpdateSettings(performer.ID, update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

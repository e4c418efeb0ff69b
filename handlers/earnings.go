package handlers

import (
	"net/http"
)

func EarningsHandler(w http.ResponseWriter, r *http.Request) {
	performer, err := GetCurrentPerformer(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	summary, err := earningsService.Summary(performer.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

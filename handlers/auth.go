package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Encore/services"
)

type registerBody struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	StageName string `json:"stage_name"`
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if body.Username == "" || body.Email == "" || body.Password == "" {
		badRequest(w, "username, email and password are required")
		return
	}

	performer, err := performerService.Register(body.Username, body.Email, body.Password, body.StageName)
	if err != nil {
		slog.Error("Error registering performer", "error", err, "username", body.Username)
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, performer)
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	performer, err := performerService.Authenticate(body.Username, body.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	session, err := services.GetSession(r)
	if err != nil {
		slog.Error("Error getting session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	session.Values["performer_id"] = performer.ID
	if err := services.SaveSession(w, r, session); err != nil {
		slog.Error("Error saving session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, performer)
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, err := services.GetSession(r)
	if err == nil {
		session.Options.MaxAge = -1
		delete(session.Values, "performer_id")
		_ = services.SaveSession(w, r, session)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

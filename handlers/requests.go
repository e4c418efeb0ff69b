package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"Encore/models"
	"Encore/services"

	"github.com/go-chi/chi/v5"
)

type submitRequestBody struct {
	RequesterID   string  `json:"requester_id"`
	RequesterName string  `json:"requester_name"`
	SongTitle     string  `json:"song_title"`
	Artist        string  `json:"artist"`
	TipAmount     float64 `json:"tip_amount"`
	Notes         string  `json:"notes"`
}

func SubmitRequestHandler(w http.ResponseWriter, r *http.Request) {
	performerID := chi.URLParam(r, "performerID")

	var body submitRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if body.RequesterID == "" || body.RequesterName == "" || body.SongTitle == "" {
		badRequest(w, "requester_id, requester_name and song_title are required")
		return
	}
	if body.TipAmount < 0 {
		badRequest(w, "tip_amount cannot be negative")
		return
	}

	request, err := queueService.Submit(services.SubmitInput{
		PerformerID:   performerID,
		RequesterID:   body.RequesterID,
		RequesterName: body.RequesterName,
		SongTitle:     body.SongTitle,
		Artist:        body.Artist,
		TipAmount:     body.TipAmount,
		Notes:         body.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

func QueueHandler(w http.ResponseWriter, r *http.Request) {
	performer, err := GetCurrentPerformer(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	queue, err := queueService.GetQueue(performer.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if queue == nil {
		queue = []*models.SongRequest{}
	}
	writeJSON(w, http.StatusOK, queue)
}

func ListRequestsHandler(w http.ResponseWriter, r *http.Request) {
	performer, err := GetCurrentPerformer(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	status := models.RequestStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		badRequest(w, "invalid status filter")
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err = strconv.Atoi(l)
		if err != nil || limit < 0 {
			badRequest(w, "invalid limit")
			return
		}
	}

	requests, err := queueService.ListRequests(performer.ID, status, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if requests == nil {
		requests = []*models.SongRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

// ownedRequest loads the request and confirms it belongs to the session
// performer; requests of other performers are indistinguishable from absent.
func ownedRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	performer, err := GetCurrentPerformer(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return "", false
	}

	requestID := chi.URLParam(r, "id")
	request, err := queueService.GetRequest(requestID)
	if err != nil {
		writeError(w, err)
		return "", false
	}
	if request.PerformerID != performer.ID {
		writeError(w, &services.NotFoundError{Resource: "song request", ID: requestID})
		return "", false
	}
	return requestID, true
}

func AcceptRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ownedRequest(w, r)
	if !ok {
		return
	}

	request, err := queueService.Accept(requestID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func DeclineRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ownedRequest(w, r)
	if !ok {
		return
	}

	// Reason is optional; an empty body declines without one
	var body struct {
		Reason string `json:"reason"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	request, err := queueService.Decline(requestID, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func CompleteRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ownedRequest(w, r)
	if !ok {
		return
	}

	request, err := queueService.MarkCompleted(requestID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ownedRequest(w, r)
	if !ok {
		return
	}

	var body struct {
		Status models.RequestStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if !body.Status.Valid() {
		badRequest(w, "invalid status")
		return
	}

	request, err := queueService.UpdateStatus(requestID, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func PlayNextHandler(w http.ResponseWriter, r *http.Request) {
	performer, err := GetCurrentPerformer(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	request, err := queueService.PlayNext(performer.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	// request is null when the queue had nothing eligible
	writeJSON(w, http.StatusOK, map[string]any{"playing": request})
}

func ReorderHandler(w http.ResponseWriter, r *http.Request) {
	performer, err := GetCurrentPerformer(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var body struct {
		RequestIDs []string `json:"request_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if len(body.RequestIDs) == 0 {
		badRequest(w, "request_ids is required")
		return
	}

	queue, err := queueService.Reorder(performer.ID, body.RequestIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queue)
}

func ClearQueueHandler(w http.ResponseWriter, r *http.Request) {
	performer, err := GetCurrentPerformer(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var body struct {
		MarkAsCompleted bool `json:"mark_as_completed"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	count, err := queueService.Clear(performer.ID, body.MarkAsCompleted)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"cleared": count})
}

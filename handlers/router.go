package handlers

import (
	"net/http"

	"Encore/middleware"
	"Encore/services"

	"github.com/go-chi/chi/v5"
)

var (
	queueService     *services.QueueService
	settingsService  *services.SettingsService
	earningsService  *services.EarningsService
	performerService *services.PerformerService
)

// NewRouter wires the services into the HTTP surface. Viewer submission is
// public; everything that works a performer's own queue sits behind session
// auth.
func NewRouter(queue *services.QueueService, settings *services.SettingsService, earnings *services.EarningsService, performers *services.PerformerService) *chi.Mux {
	queueService = queue
	settingsService = settings
	earningsService = earnings
	performerService = performers

	r := chi.NewRouter()
	r.Use(middleware.Logging)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	r.Post("/register", RegisterHandler)
	r.Post("/login", LoginHandler)
	r.Post("/logout", LogoutHandler)

	r.Post("/performers/{performerID}/requests", SubmitRequestHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(performers))

		r.Get("/requests", ListRequestsHandler)
		r.Get("/requests/queue", QueueHandler)
		r.Post("/requests/play-next", PlayNextHandler)
		r.Post("/requests/reorder", ReorderHandler)
		r.Post("/requests/clear", ClearQueueHandler)
		r.Post("/requests/{id}/accept", AcceptRequestHandler)
		r.Post("/requests/{id}/decline", DeclineRequestHandler)
		r.Post("/requests/{id}/complete", CompleteRequestHandler)
		r.Post("/requests/{id}/status", UpdateStatusHandler)

		r.Get("/settings", GetSettingsHandler)
		r.Patch("/settings", UpdateSettingsHandler)

		r.Get("/earnings", EarningsHandler)
	})

	return r
}

package routes

import (
	"net/http"
	"time"

	"github.com/AnshRaj112/voxa-backend/internal/auth"
	"github.com/AnshRaj112/voxa-backend/internal/handlers"
	"github.com/AnshRaj112/voxa-backend/internal/metrics"
	"github.com/AnshRaj112/voxa-backend/internal/middleware"
	"github.com/AnshRaj112/voxa-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// Deps is everything the router needs. Audio and Redis are optional.
type Deps struct {
	Production     bool
	AllowedOrigins []string
	AllowedHost    string
	Verifier       auth.Verifier

	Journals *services.JournalService
	Moods    *services.MoodService
	Goals    *services.GoalService
	Audio    *services.AudioService

	Redis   *redis.Client
	Done    <-chan struct{}
	Started time.Time
}

func Setup(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.Recoverer(d.Production))
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.CORS(d.AllowedOrigins))

	if d.Production {
		for _, mw := range middleware.ProductionSecurity(d.AllowedHost, d.Done) {
			r.Use(mw)
		}
	}
	if d.Redis != nil {
		r.Use(middleware.NewRateLimiter(d.Redis).Middleware)
	}

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", handlers.Health(d.Started))
	r.Handle("/metrics", metrics.Handler())

	r.With(middleware.OptionalAuth(d.Verifier)).Get("/api/me", handlers.Me)

	journals := handlers.NewJournalHandler(d.Journals, d.Production)
	moods := handlers.NewMoodHandler(d.Moods, d.Production)
	goals := handlers.NewGoalHandler(d.Goals, d.Production)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(d.Verifier))

		r.Route("/api/journals", func(r chi.Router) {
			r.Get("/", journals.List)
			r.Post("/", journals.Create)
			r.Get("/stats/summary", journals.Stats)
			r.Get("/{id}", journals.Get)
			r.Put("/{id}", journals.Update)
			r.Delete("/{id}", journals.Delete)
		})

		r.Route("/api/moods", func(r chi.Router) {
			r.Get("/", moods.List)
			r.Post("/", moods.Create)
			r.Get("/today", moods.Today)
			r.Get("/stats/summary", moods.Stats)
			r.Delete("/{id}", moods.Delete)
		})

		r.Route("/api/goals", func(r chi.Router) {
			r.Get("/", goals.List)
			r.Post("/", goals.Create)
			r.Get("/stats/summary", goals.Stats)
			r.Get("/{id}", goals.Get)
			r.Put("/{id}", goals.Update)
			r.Patch("/{id}/progress", goals.UpdateProgress)
			r.Delete("/{id}", goals.Delete)
		})

		if d.Audio != nil {
			r.Post("/api/uploads/audio", handlers.NewAudioHandler(d.Audio, d.Production).Upload)
		}
	})

	return r
}

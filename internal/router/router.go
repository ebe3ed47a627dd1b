package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/wandertrip/travel-roulette/internal/api/city"
	"github.com/wandertrip/travel-roulette/internal/api/guide"
)

// Config contains dependencies needed for the router setup.
type Config struct {
	GuideHandler   *guide.Handler
	CityHandler    *city.Handler
	MetricsHandler http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are applied before
// mounting this router in main.go. CORS pre-flight requests short-circuit
// here with a success status before any handler runs.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/cities", cfg.CityHandler.GetAllCities)
		r.Post("/guide", cfg.GuideHandler.GenerateGuide)
	})

	return r
}

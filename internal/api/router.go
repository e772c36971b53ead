package api

import (
	"net/http"
	"time"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP layer needs. Places, Details and
// Weather may be nil when the corresponding API key is not configured.
type Deps struct {
	Recommender *services.Recommender
	Places      ports.CandidateSource
	Details     ports.DetailsProvider
	Weather     ports.WeatherProvider
	Profiles    ports.ProfileRepository
	Trips       ports.TripRepository
	Favorites   ports.FavoriteRepository

	DefaultLocation domain.Coordinates

	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	SecureCookies     bool
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: !containsWildcard(d.CORSOrigins),
		MaxAge:           300,
	}))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	destHandler := &handlers.DestinationHandler{
		Places:          d.Places,
		DetailsSource:   d.Details,
		Weather:         d.Weather,
		DefaultLocation: d.DefaultLocation,
	}
	recHandler := &handlers.RecommendationHandler{
		Recommender:     d.Recommender,
		Profiles:        d.Profiles,
		DefaultLocation: d.DefaultLocation,
	}
	tripHandler := &handlers.TripHandler{Repo: d.Trips, DefaultLocation: d.DefaultLocation}
	favHandler := &handlers.FavoriteHandler{Repo: d.Favorites}

	r.Route("/api", func(r chi.Router) {
		if d.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(d.RateLimitRequests, d.RateLimitWindow))
		}
		r.Use(sessionMiddleware(d.SecureCookies))

		r.Get("/destinations", destHandler.List)
		r.Get("/destination-details/{xid}", destHandler.Details)

		r.Get("/personality-recommendations", recHandler.Recommend)
		r.Get("/profile", recHandler.Profile)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", tripHandler.List)
			r.Post("/", tripHandler.Save)
			r.Get("/itinerary", tripHandler.Itinerary)
			r.Delete("/{id}", tripHandler.Delete)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", favHandler.List)
			r.Post("/", favHandler.Add)
			r.Delete("/{xid}", favHandler.Remove)
		})
	})

	return r
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

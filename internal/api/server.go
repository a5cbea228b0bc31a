package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/comeback-scout/internal/alerts"
	"github.com/albapepper/comeback-scout/internal/api/handler"
	"github.com/albapepper/comeback-scout/internal/cache"
	"github.com/albapepper/comeback-scout/internal/config"
	"github.com/albapepper/comeback-scout/internal/roster"
	"github.com/albapepper/comeback-scout/internal/simulator"
)

// Deps are the services the router hands to its handlers.
type Deps struct {
	Matches *simulator.Generator
	Alerts  *alerts.Manager
	Roster  *roster.Roster
	Cache   *cache.Cache
	Logger  *slog.Logger
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps Deps, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := handler.New(deps.Matches, deps.Alerts, deps.Roster, deps.Cache, cfg, deps.Logger)

	// --- Routes ---

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Root)

		r.Post("/matches/check-comebacks", h.CheckComebacks)
		r.Get("/matches/live", h.GetLiveMatches)
		r.Get("/matches/{id}", h.GetMatch)

		r.Get("/alerts", h.GetAlerts)
		r.Post("/alerts/mark-read/{id}", h.MarkAlertRead)

		r.Get("/superteams", h.GetSuperteams)
		r.Get("/superteams/{name}", h.GetSuperteam)
	})

	return r
}

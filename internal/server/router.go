package server

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"wrestling-stats/internal/config"
	"wrestling-stats/internal/middleware"
)

func NewRouter(cfg *config.Config, stats *StatsServer, db *sql.DB, logger zerolog.Logger) http.Handler {
	return newRouter(cfg, stats, db, logger)
}

func newRouter(cfg *config.Config, stats *StatsServer, db Pinger, logger zerolog.Logger) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID(logger))
	r.Use(c.Handler)

	r.Get("/health", HealthHandler(db))

	r.Get("/matches-by-performer", stats.MatchesByPerformer)
	r.Get("/search-performers", stats.SearchPerformers)
	r.Get("/match-of-day", stats.MatchOfDay)
	r.Get("/calendar-shows", stats.CalendarShows)
	r.Get("/homepage-stats", stats.HomepageStats)
	r.Get("/match-filters", stats.MatchFilters)
	r.Get("/random-superstars", stats.RandomSuperstars)
	r.Post("/revalidate", stats.Revalidate)

	return r
}

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"wrestling-stats/internal/constants"
	"wrestling-stats/internal/domain"
	"wrestling-stats/internal/service"
)

// StatsServer exposes the services as JSON endpoints.
type StatsServer struct {
	matchFilter  *service.MatchFilterService
	search       *service.SearchService
	dailyPick    *service.DailyPickService
	catalog      *service.CatalogService
	revalidation *service.RevalidationService
}

func NewStatsServer(
	matchFilter *service.MatchFilterService,
	search *service.SearchService,
	dailyPick *service.DailyPickService,
	catalog *service.CatalogService,
	revalidation *service.RevalidationService,
) *StatsServer {
	return &StatsServer{
		matchFilter:  matchFilter,
		search:       search,
		dailyPick:    dailyPick,
		catalog:      catalog,
		revalidation: revalidation,
	}
}

func (s *StatsServer) MatchesByPerformer(w http.ResponseWriter, r *http.Request) {
	req, err := matchFilterRequest(r.URL.Query())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	page, err := s.matchFilter.FindMatches(r.Context(), req)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, page)
}

func (s *StatsServer) SearchPerformers(w http.ResponseWriter, r *http.Request) {
	p := newParams(r.URL.Query())
	limit := p.integer("limit")
	if p.err != nil {
		limit = 0
	}

	results := s.search.SearchPerformers(r.Context(), p.str("q"), limit)
	RespondJSON(w, http.StatusOK, map[string][]domain.SearchResult{"results": results})
}

func (s *StatsServer) MatchOfDay(w http.ResponseWriter, r *http.Request) {
	match, err := s.dailyPick.MatchOfDay(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to pick match of the day")
		match = nil
	}
	RespondJSON(w, http.StatusOK, map[string]*domain.FeaturedMatch{"match": match})
}

func (s *StatsServer) CalendarShows(w http.ResponseWriter, r *http.Request) {
	p := newParams(r.URL.Query())
	year, month := p.integer("year"), p.integer("month")
	seriesIDs := p.ids("showSeriesIds")
	if p.err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(p.err).Msg("ignoring malformed calendar parameters")
		year, month, seriesIDs = 0, 0, nil
	}

	RespondJSON(w, http.StatusOK, s.catalog.CalendarShows(r.Context(), year, month, seriesIDs))
}

func (s *StatsServer) HomepageStats(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, s.catalog.HomepageStats(r.Context()))
}

func (s *StatsServer) MatchFilters(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, s.catalog.MatchFilters(r.Context()))
}

func (s *StatsServer) RandomSuperstars(w http.ResponseWriter, r *http.Request) {
	p := newParams(r.URL.Query())
	count := p.integer("count")
	if p.err != nil {
		count = 0
	}

	superstars := s.catalog.RandomSuperstars(r.Context(), count)
	RespondJSON(w, http.StatusOK, map[string][]domain.Performer{"superstars": superstars})
}

func (s *StatsServer) Revalidate(w http.ResponseWriter, r *http.Request) {
	var signal service.Signal
	if err := DecodeJSON(w, r, &signal); err != nil {
		RespondError(w, r, domain.ErrValidation("invalid request body"))
		return
	}

	result, err := s.revalidation.Revalidate(r.Context(), r.URL.Query().Get("secret"), signal)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the store answers.
func HealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
		defer cancel()

		start := time.Now()
		if err := db.PingContext(ctx); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
			RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		RespondJSON(w, http.StatusOK, map[string]any{
			"status":     "healthy",
			"latency_ms": time.Since(start).Milliseconds(),
		})
	}
}

package service

import (
	"context"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wrestling-stats/internal/constants"
	"wrestling-stats/internal/domain"
	"wrestling-stats/internal/query"
	"wrestling-stats/internal/repository"
)

// CatalogService serves the read-only listings around the match history: the show
// calendar, site totals, filter options and the random roster strip. Store failures
// degrade to empty results.
type CatalogService struct {
	matches    repository.MatchReader
	shows      repository.ShowReader
	performers repository.PerformerReader
	stats      repository.StatsReader
	now        Clock
	logger     zerolog.Logger
}

func NewCatalogService(
	matches repository.MatchReader,
	shows repository.ShowReader,
	performers repository.PerformerReader,
	stats repository.StatsReader,
	now Clock,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		matches:    matches,
		shows:      shows,
		performers: performers,
		stats:      stats,
		now:        now,
		logger:     logger,
	}
}

type CalendarMonth struct {
	Shows      []domain.Show       `json:"shows"`
	ShowSeries []domain.ShowSeries `json:"showSeries"`
}

// CalendarShows lists the shows of one month, optionally restricted to some series,
// together with every show series. An unset year or a month outside 1–12 means the
// current month.
func (s *CatalogService) CalendarShows(ctx context.Context, year, month int, seriesIDs []int64) CalendarMonth {
	if year <= 0 || month < 1 || month > 12 {
		today := s.now()
		year, month = today.Year(), int(today.Month())
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	from, to, _ := DateRange(year, month)
	spec := query.New().Gte(domain.FieldDate, from).Lte(domain.FieldDate, to)
	if len(seriesIDs) > 0 {
		spec = spec.In(domain.FieldShowSeriesID, query.List(seriesIDs...))
	}
	spec = spec.OrderBy(domain.FieldDate, false).OrderBy(domain.FieldID, false)

	result := CalendarMonth{Shows: []domain.Show{}, ShowSeries: []domain.ShowSeries{}}

	var (
		shows  []domain.Show
		series []domain.ShowSeries
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shows, err = s.shows.ListShows(gCtx, spec)
		return err
	})
	g.Go(func() error {
		var err error
		series, err = s.shows.ListShowSeries(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("year", year).Int("month", month).Msg("failed to load calendar")
		return result
	}

	if shows != nil {
		result.Shows = shows
	}
	if series != nil {
		result.ShowSeries = series
	}
	return result
}

// HomepageStats counts the site's main tables concurrently. A failed count reads as 0.
func (s *CatalogService) HomepageStats(ctx context.Context) domain.HomepageStats {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var stats domain.HomepageStats

	// Failed counts are logged and left at zero; the group itself never fails.
	var g errgroup.Group
	count := func(name string, dst *int, fn func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := fn(ctx)
			if err != nil {
				s.logger.Warn().Err(err).Str("count", name).Msg("homepage count failed")
				return nil
			}
			*dst = n
			return nil
		})
	}
	table := func(name string) func(context.Context) (int, error) {
		return func(ctx context.Context) (int, error) {
			return s.stats.CountTable(ctx, name)
		}
	}
	matches := func(spec query.Spec) func(context.Context) (int, error) {
		return func(ctx context.Context) (int, error) {
			return s.matches.CountMatches(ctx, spec)
		}
	}

	count("superstars", &stats.Superstars, table(repository.TableSuperstars))
	count("matches", &stats.Matches, matches(query.New()))
	count("rated_matches", &stats.RatedMatches, matches(query.New().NotNull(domain.FieldRating)))
	count("shows", &stats.Shows, table(repository.TableShows))
	count("show_series", &stats.ShowSeries, table(repository.TableShowSeries))
	count("championships", &stats.Championships, table(repository.TableChampionships))
	count("segments", &stats.Segments, table(repository.TableSegments))
	_ = g.Wait()

	return stats
}

type MatchFilterOptions struct {
	MatchTypes []domain.MatchTypeUsage `json:"matchTypes"`
	ShowSeries []domain.ShowSeries     `json:"showSeries"`
}

// MatchFilters returns the options offered by the match history filters: match types
// by usage, most used first, and show series by name.
func (s *CatalogService) MatchFilters(ctx context.Context) MatchFilterOptions {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	result := MatchFilterOptions{MatchTypes: []domain.MatchTypeUsage{}, ShowSeries: []domain.ShowSeries{}}

	var (
		types  []domain.MatchTypeUsage
		series []domain.ShowSeries
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		types, err = s.matches.ListMatchTypeUsage(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		series, err = s.shows.ListShowSeries(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to load match filters")
		return result
	}

	if types != nil {
		result.MatchTypes = types
	}
	if series != nil {
		result.ShowSeries = series
	}
	return result
}

// RandomSuperstars returns up to count performers with a photo in random order.
func (s *CatalogService) RandomSuperstars(ctx context.Context, count int) []domain.Performer {
	if count <= 0 {
		count = constants.RandomSuperstarsDefault
	}
	count = min(count, constants.RandomSuperstarsMax)

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	performers, err := s.performers.ListWithPhoto(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list superstars")
		return []domain.Performer{}
	}

	rand.Shuffle(len(performers), func(i, j int) {
		performers[i], performers[j] = performers[j], performers[i]
	})
	if len(performers) > count {
		performers = performers[:count]
	}
	if performers == nil {
		return []domain.Performer{}
	}
	return performers
}

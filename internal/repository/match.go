package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"wrestling-stats/internal/db"
	"wrestling-stats/internal/domain"
	"wrestling-stats/internal/query"
)

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

var matchColumns = query.Columns{
	domain.FieldID:             "m.id",
	domain.FieldDate:           "m.date",
	domain.FieldRating:         "m.rating",
	domain.FieldResultType:     "m.result_type",
	domain.FieldTitleChange:    "m.title_change",
	domain.FieldShowID:         "m.show_id",
	domain.FieldMatchTypeID:    "m.match_type_id",
	domain.FieldChampionshipID: "m.championship_id",
	domain.FieldShowSeriesID:   "s.show_series_id",
	domain.FieldShowCountry:    "s.country",
	domain.FieldShowCity:       "s.city",
}

const matchFrom = `
FROM matches m
JOIN shows s ON s.id = m.show_id
LEFT JOIN show_series ss ON ss.id = s.show_series_id
LEFT JOIN match_types mt ON mt.id = m.match_type_id
LEFT JOIN championships c ON c.id = m.championship_id`

const matchSelect = `
SELECT m.id, m.slug, m.date, m.duration_seconds, m.rating, m.result_type, m.title_change, m.match_order,
       m.show_id, m.match_type_id, m.championship_id,
       s.name, s.slug, s.date, s.show_series_id, s.venue, s.city, s.country,
       ss.name, ss.slug, ss.logo_url,
       mt.name, mt.slug,
       c.name, c.slug` + matchFrom

func (r *MatchRepository) ListMatches(ctx context.Context, spec query.Spec) ([]domain.Match, error) {
	compiled, err := query.Compile(spec, matchColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, matchSelect+compiled.Clause(), compiled.Args...)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug().
		Int("predicates", len(spec.Predicates)).
		Int("rows", len(matches)).
		Msg("matches listed")

	return matches, nil
}

func (r *MatchRepository) CountMatches(ctx context.Context, spec query.Spec) (int, error) {
	compiled, err := query.Compile(spec.Unpaged(), matchColumns)
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+matchFrom+compiled.Clause(), compiled.Args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) ListMatchTypeUsage(ctx context.Context) ([]domain.MatchTypeUsage, error) {
	rows, err := r.queries.ListMatchTypeUsage(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.MatchTypeUsage, len(rows))
	for i, row := range rows {
		result[i] = domain.MatchTypeUsage{
			MatchType: domain.MatchType{
				ID:   row.ID,
				Name: row.Name,
				Slug: row.Slug,
			},
			Usage: int(row.Usage),
		}
	}
	return result, nil
}

func scanMatch(rows *sql.Rows) (domain.Match, error) {
	var (
		m              domain.Match
		show           domain.Show
		duration       sql.NullInt64
		rating         sql.NullFloat64
		matchTypeID    sql.NullInt64
		championshipID sql.NullInt64
		seriesID       sql.NullInt64
		seriesName     sql.NullString
		seriesSlug     sql.NullString
		seriesLogo     sql.NullString
		typeName       sql.NullString
		typeSlug       sql.NullString
		champName      sql.NullString
		champSlug      sql.NullString
	)

	err := rows.Scan(
		&m.ID, &m.Slug, &m.Date, &duration, &rating, &m.ResultType, &m.TitleChange, &m.MatchOrder,
		&m.ShowID, &matchTypeID, &championshipID,
		&show.Name, &show.Slug, &show.Date, &seriesID, &show.Venue, &show.City, &show.Country,
		&seriesName, &seriesSlug, &seriesLogo,
		&typeName, &typeSlug,
		&champName, &champSlug,
	)
	if err != nil {
		return domain.Match{}, err
	}

	if duration.Valid {
		d := int(duration.Int64)
		m.DurationSeconds = &d
	}
	if rating.Valid {
		m.Rating = &rating.Float64
	}

	show.ID = m.ShowID
	if seriesID.Valid {
		show.SeriesID = &seriesID.Int64
		show.Series = &domain.ShowSeries{
			ID:      seriesID.Int64,
			Name:    seriesName.String,
			Slug:    seriesSlug.String,
			LogoURL: seriesLogo.String,
		}
	}
	m.Show = &show

	if matchTypeID.Valid {
		m.MatchTypeID = &matchTypeID.Int64
		m.MatchType = &domain.MatchType{ID: matchTypeID.Int64, Name: typeName.String, Slug: typeSlug.String}
	}
	if championshipID.Valid {
		m.ChampionshipID = &championshipID.Int64
		m.Championship = &domain.Championship{ID: championshipID.Int64, Name: champName.String, Slug: champSlug.String}
	}

	return m, nil
}

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

type ShowRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewShowRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ShowRepository {
	return &ShowRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

var showColumns = query.Columns{
	domain.FieldID:           "s.id",
	domain.FieldName:         "s.name",
	domain.FieldDate:         "s.date",
	domain.FieldShowSeriesID: "s.show_series_id",
	domain.FieldShowCountry:  "s.country",
	domain.FieldShowCity:     "s.city",
}

func (r *ShowRepository) ListShows(ctx context.Context, spec query.Spec) ([]domain.Show, error) {
	compiled, err := query.Compile(spec, showColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT s.id, s.name, s.slug, s.date, s.show_series_id, s.venue, s.city, s.country,
       ss.name, ss.slug, ss.logo_url
FROM shows s
LEFT JOIN show_series ss ON ss.id = s.show_series_id`+compiled.Clause(), compiled.Args...)
	if err != nil {
		return nil, fmt.Errorf("query shows: %w", err)
	}
	defer rows.Close()

	var result []domain.Show
	for rows.Next() {
		var (
			s          domain.Show
			seriesID   sql.NullInt64
			seriesName sql.NullString
			seriesSlug sql.NullString
			seriesLogo sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Date, &seriesID, &s.Venue, &s.City, &s.Country,
			&seriesName, &seriesSlug, &seriesLogo); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		if seriesID.Valid {
			s.SeriesID = &seriesID.Int64
			s.Series = &domain.ShowSeries{
				ID:      seriesID.Int64,
				Name:    seriesName.String,
				Slug:    seriesSlug.String,
				LogoURL: seriesLogo.String,
			}
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug().Int("rows", len(result)).Msg("shows listed")
	return result, nil
}

func (r *ShowRepository) ListShowSeries(ctx context.Context) ([]domain.ShowSeries, error) {
	rows, err := r.queries.ListShowSeries(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ShowSeries, len(rows))
	for i, row := range rows {
		result[i] = domain.ShowSeries{
			ID:      row.ID,
			Name:    row.Name,
			Slug:    row.Slug,
			LogoURL: row.LogoUrl.String,
		}
	}
	return result, nil
}

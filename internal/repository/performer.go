package repository

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"wrestling-stats/internal/db"
	"wrestling-stats/internal/domain"
)

type PerformerRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewPerformerRepository(queries *db.Queries, logger zerolog.Logger) *PerformerRepository {
	return &PerformerRepository{
		queries: queries,
		logger:  logger,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func searchPattern(text string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
}

func (r *PerformerRepository) SearchByName(ctx context.Context, text string, limit int) ([]domain.Performer, error) {
	rows, err := r.queries.SearchSuperstarsByName(ctx, db.SearchParams{
		Pattern: searchPattern(text),
		Limit:   int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.Performer, len(rows))
	for i, row := range rows {
		result[i] = domain.Performer{
			ID:       row.ID,
			Name:     row.Name,
			Slug:     row.Slug,
			PhotoURL: row.PhotoUrl.String,
		}
	}
	return result, nil
}

func (r *PerformerRepository) SearchByAlias(ctx context.Context, text string, limit int) ([]domain.PerformerHit, error) {
	rows, err := r.queries.SearchSuperstarsByAlias(ctx, db.SearchParams{
		Pattern: searchPattern(text),
		Limit:   int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.PerformerHit, len(rows))
	for i, row := range rows {
		result[i] = domain.PerformerHit{
			Performer: domain.Performer{
				ID:       row.ID,
				Name:     row.Name,
				Slug:     row.Slug,
				PhotoURL: row.PhotoUrl.String,
			},
			Text: row.Alias,
		}
	}
	return result, nil
}

func (r *PerformerRepository) SearchByNickname(ctx context.Context, text string, limit int) ([]domain.PerformerHit, error) {
	rows, err := r.queries.SearchSuperstarsByNickname(ctx, db.SearchParams{
		Pattern: searchPattern(text),
		Limit:   int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.PerformerHit, len(rows))
	for i, row := range rows {
		result[i] = domain.PerformerHit{
			Performer: domain.Performer{
				ID:       row.ID,
				Name:     row.Name,
				Slug:     row.Slug,
				PhotoURL: row.PhotoUrl.String,
			},
			Text: row.Nickname,
		}
	}
	return result, nil
}

func (r *PerformerRepository) ListWithPhoto(ctx context.Context) ([]domain.Performer, error) {
	rows, err := r.queries.ListSuperstarsWithPhoto(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Performer, len(rows))
	for i, row := range rows {
		result[i] = domain.Performer{
			ID:       row.ID,
			Name:     row.Name,
			Slug:     row.Slug,
			PhotoURL: row.PhotoUrl.String,
		}
	}

	r.logger.Debug().Int("count", len(result)).Msg("performers with photo listed")
	return result, nil
}

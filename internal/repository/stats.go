package repository

import (
	"context"
	"fmt"

	"wrestling-stats/internal/db"
)

type StatsRepository struct {
	queries *db.Queries
}

func NewStatsRepository(queries *db.Queries) *StatsRepository {
	return &StatsRepository{queries: queries}
}

func (r *StatsRepository) CountTable(ctx context.Context, table string) (int, error) {
	var (
		count int64
		err   error
	)
	switch table {
	case TableSuperstars:
		count, err = r.queries.CountSuperstars(ctx)
	case TableShows:
		count, err = r.queries.CountShows(ctx)
	case TableShowSeries:
		count, err = r.queries.CountShowSeries(ctx)
	case TableChampionships:
		count, err = r.queries.CountChampionships(ctx)
	case TableSegments:
		count, err = r.queries.CountSegments(ctx)
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return int(count), nil
}

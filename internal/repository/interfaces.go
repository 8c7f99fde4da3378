package repository

import (
	"context"

	"wrestling-stats/internal/domain"
	"wrestling-stats/internal/query"
)

// MatchReader reads matches joined with their show, series, match type and
// championship.
type MatchReader interface {
	// ListMatches returns the matches selected by spec, honouring its order and range.
	ListMatches(ctx context.Context, spec query.Spec) ([]domain.Match, error)

	// CountMatches counts the matches satisfying spec's predicates.
	CountMatches(ctx context.Context, spec query.Spec) (int, error)

	// ListMatchTypeUsage returns every match type with the number of matches using it,
	// most used first.
	ListMatchTypeUsage(ctx context.Context) ([]domain.MatchTypeUsage, error)
}

// ParticipationReader reads the match ↔ performer links.
type ParticipationReader interface {
	// ListParticipations returns bare participation rows selected by spec.
	ListParticipations(ctx context.Context, spec query.Spec) ([]domain.Participation, error)

	// ListParticipants returns the participations of the given matches joined with
	// their performers.
	ListParticipants(ctx context.Context, matchIDs []int64) ([]domain.Participant, error)

	// ListManagers returns the manager links of the given matches.
	ListManagers(ctx context.Context, matchIDs []int64) ([]domain.ManagerLink, error)
}

// PerformerReader looks performers up by any of their names.
type PerformerReader interface {
	SearchByName(ctx context.Context, text string, limit int) ([]domain.Performer, error)
	SearchByAlias(ctx context.Context, text string, limit int) ([]domain.PerformerHit, error)
	SearchByNickname(ctx context.Context, text string, limit int) ([]domain.PerformerHit, error)

	// ListWithPhoto returns every performer that has a photo.
	ListWithPhoto(ctx context.Context) ([]domain.Performer, error)
}

type ShowReader interface {
	ListShows(ctx context.Context, spec query.Spec) ([]domain.Show, error)
	ListShowSeries(ctx context.Context) ([]domain.ShowSeries, error)
}

// Table names accepted by StatsReader.CountTable.
const (
	TableSuperstars    = "superstars"
	TableShows         = "shows"
	TableShowSeries    = "show_series"
	TableChampionships = "championships"
	TableSegments      = "segments"
)

type StatsReader interface {
	CountTable(ctx context.Context, table string) (int, error)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"wrestling-stats/internal/config"
	"wrestling-stats/internal/constants"
	"wrestling-stats/internal/domain"
	"wrestling-stats/internal/query"
	"wrestling-stats/internal/repository"
)

// Clock reports the current time in the configured daily-pick time zone.
type Clock func() time.Time

func NewClock(cfg *config.Config) Clock {
	loc := cfg.Location()
	return func() time.Time {
		return time.Now().In(loc)
	}
}

type DailyPickService struct {
	matches        repository.MatchReader
	participations repository.ParticipationReader
	now            Clock
	logger         zerolog.Logger
}

func NewDailyPickService(matches repository.MatchReader, participations repository.ParticipationReader, now Clock, logger zerolog.Logger) *DailyPickService {
	return &DailyPickService{matches: matches, participations: participations, now: now, logger: logger}
}

// MatchOfDay picks the featured match for the current calendar day.
func (s *DailyPickService) MatchOfDay(ctx context.Context) (*domain.FeaturedMatch, error) {
	return s.PickMatchOfDay(ctx, s.now())
}

// PickMatchOfDay selects one highly rated match for today. The same day always yields
// the same match while the table is unchanged. Championship matches rated 7 or more are
// preferred; without any, any match rated 6 or more qualifies. It returns nil when
// nothing qualifies.
//
// The count and the fetch are separate reads, so rows written between them can shift
// the pick.
func (s *DailyPickService) PickMatchOfDay(ctx context.Context, today time.Time) (*domain.FeaturedMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	seed := DailySeed(today)
	log := s.logger.With().Str("day", today.Format(time.DateOnly)).Int("seed", seed).Logger()

	tiers := []struct {
		name string
		spec query.Spec
	}{
		{"featured", query.New().Gte(domain.FieldRating, constants.FeaturedMinRating).NotNull(domain.FieldChampionshipID)},
		{"fallback", query.New().Gte(domain.FieldRating, constants.FallbackMinRating)},
	}

	for _, tier := range tiers {
		count, err := s.matches.CountMatches(ctx, tier.spec)
		if err != nil {
			return nil, fmt.Errorf("count %s matches: %w", tier.name, err)
		}
		if count == 0 {
			log.Debug().Str("tier", tier.name).Msg("no qualifying matches")
			continue
		}

		index := seed % count
		picked, err := s.matches.ListMatches(ctx, tier.spec.
			OrderBy(domain.FieldDate, true).
			OrderBy(domain.FieldID, true).
			Range(index, 1))
		if err != nil {
			return nil, fmt.Errorf("fetch %s match: %w", tier.name, err)
		}
		if len(picked) == 0 {
			log.Warn().Str("tier", tier.name).Int("index", index).Int("count", count).Msg("picked offset no longer exists")
			return nil, nil
		}

		participants, err := s.participations.ListParticipants(ctx, []int64{picked[0].ID})
		if err != nil {
			return nil, fmt.Errorf("fetch participants: %w", err)
		}

		log.Info().
			Str("tier", tier.name).
			Int("count", count).
			Int("index", index).
			Int64("match_id", picked[0].ID).
			Msg("match of the day picked")

		return &domain.FeaturedMatch{Match: picked[0], Teams: domain.GroupTeams(participants)}, nil
	}

	return nil, nil
}

// DailySeed is the sum of the date's year, month and day.
func DailySeed(day time.Time) int {
	return day.Year() + int(day.Month()) + day.Day()
}

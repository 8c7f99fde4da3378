package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wrestling-stats/internal/constants"
	"wrestling-stats/internal/domain"
	"wrestling-stats/internal/query"
	"wrestling-stats/internal/repository"
)

// MatchFilterRequest selects a slice of one performer's match history. Zero values mean
// "no filter".
type MatchFilterRequest struct {
	FocusID          int64
	Year             int
	Month            int // ignored unless Year is set
	OpponentID       int64
	TeammateID       int64
	ShowSeriesID     int64
	MatchTypeID      int64
	MinRating        *float64
	MaxRating        *float64
	Country          string
	City             string
	ChampionshipOnly bool
	Result           domain.MatchResult
	ResultType       string
	Page             int
	PageSize         int
}

type MatchPage struct {
	Matches    []domain.EnrichedMatch `json:"matches"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}

type MatchFilterService struct {
	matches        repository.MatchReader
	participations repository.ParticipationReader
	logger         zerolog.Logger
}

func NewMatchFilterService(matches repository.MatchReader, participations repository.ParticipationReader, logger zerolog.Logger) *MatchFilterService {
	return &MatchFilterService{matches: matches, participations: participations, logger: logger}
}

// FindMatches pages through the focus performer's matches. Team filters are resolved
// first as set operations over participations, the remaining filters are pushed to the
// store where possible, and show series / location filters run on the fetched page.
//
// Pagination happens before the in-memory filters, so a page can hold fewer than
// PageSize rows and Total counts only the store-side filters.
func (s *MatchFilterService) FindMatches(ctx context.Context, req MatchFilterRequest) (*MatchPage, error) {
	if req.FocusID == 0 {
		return nil, domain.ErrValidation("focusId is required")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	page, size := NormalizePage(req.Page, req.PageSize)
	result := &MatchPage{Matches: []domain.EnrichedMatch{}, Page: page, PageSize: size}

	log := s.logger.With().Int64("focus_id", req.FocusID).Logger()

	candidates, err := s.candidateMatchIDs(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve candidate matches")
		return result, nil
	}
	if len(candidates) == 0 {
		log.Debug().Msg("no candidate matches")
		return result, nil
	}

	if len(candidates) > constants.MatchCandidateCap {
		log.Warn().
			Int("candidates", len(candidates)).
			Int("cap", constants.MatchCandidateCap).
			Msg("candidate matches truncated")
		candidates = candidates[:constants.MatchCandidateCap]
	}

	spec := storeSpec(req, candidates).
		OrderBy(domain.FieldDate, true).
		OrderBy(domain.FieldID, true).
		Range((page-1)*size, size)

	var (
		matches []domain.Match
		total   int
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.matches.ListMatches(gCtx, spec)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.matches.CountMatches(gCtx, spec)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to fetch matches")
		return nil, domain.ErrInternal("failed to fetch matches", err)
	}

	post := postFilterSpec(req)
	kept := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		if query.Matches(post.Predicates, m.Field) {
			kept = append(kept, m)
		}
	}

	enriched, err := s.enrich(ctx, kept, req.FocusID)
	if err != nil {
		log.Error().Err(err).Msg("failed to enrich matches")
		return nil, domain.ErrInternal("failed to fetch matches", err)
	}

	result.Matches = enriched
	result.Total = total
	result.TotalPages = (total + size - 1) / size

	log.Info().
		Int("candidates", len(candidates)).
		Int("fetched", len(matches)).
		Int("returned", len(enriched)).
		Int("total", total).
		Msg("match history filtered")

	return result, nil
}

// candidateMatchIDs returns the focus performer's match ids, in participation order,
// narrowed by the opponent and teammate constraints.
func (s *MatchFilterService) candidateMatchIDs(ctx context.Context, req MatchFilterRequest) ([]int64, error) {
	spec := query.New().Eq(domain.FieldSuperstarID, req.FocusID)
	switch req.Result {
	case domain.ResultWin:
		spec = spec.Eq(domain.FieldIsWinner, true)
	case domain.ResultLoss:
		spec = spec.Eq(domain.FieldIsWinner, false)
	}

	ids, teams, err := s.teamsByMatch(ctx, spec.OrderBy(domain.FieldID, false))
	if err != nil {
		return nil, fmt.Errorf("focus participations: %w", err)
	}

	if req.OpponentID != 0 && len(ids) > 0 {
		ids, err = s.restrict(ctx, ids, teams, req.OpponentID, func(focusTeam, otherTeam int) bool {
			return focusTeam != otherTeam
		})
		if err != nil {
			return nil, fmt.Errorf("opponent participations: %w", err)
		}
	}

	if req.TeammateID != 0 && len(ids) > 0 {
		ids, err = s.restrict(ctx, ids, teams, req.TeammateID, func(focusTeam, otherTeam int) bool {
			return focusTeam == otherTeam
		})
		if err != nil {
			return nil, fmt.Errorf("teammate participations: %w", err)
		}
	}

	return ids, nil
}

// restrict keeps the ids where otherID also took part and keep accepts the pair of
// team numbers.
func (s *MatchFilterService) restrict(ctx context.Context, ids []int64, focusTeams map[int64]int, otherID int64, keep func(focusTeam, otherTeam int) bool) ([]int64, error) {
	_, otherTeams, err := s.teamsByMatch(ctx, query.New().Eq(domain.FieldSuperstarID, otherID))
	if err != nil {
		return nil, err
	}

	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		otherTeam, ok := otherTeams[id]
		if ok && keep(focusTeams[id], otherTeam) {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *MatchFilterService) teamsByMatch(ctx context.Context, spec query.Spec) ([]int64, map[int64]int, error) {
	rows, err := s.participations.ListParticipations(ctx, spec)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]int64, 0, len(rows))
	teams := make(map[int64]int, len(rows))
	for _, p := range rows {
		if _, seen := teams[p.MatchID]; seen {
			continue
		}
		teams[p.MatchID] = p.TeamNumber
		ids = append(ids, p.MatchID)
	}
	return ids, teams, nil
}

func (s *MatchFilterService) enrich(ctx context.Context, matches []domain.Match, focusID int64) ([]domain.EnrichedMatch, error) {
	if len(matches) == 0 {
		return []domain.EnrichedMatch{}, nil
	}

	ids := make([]int64, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}

	var (
		participants []domain.Participant
		managers     []domain.ManagerLink
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		participants, err = s.participations.ListParticipants(gCtx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		managers, err = s.participations.ListManagers(gCtx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	participantsByMatch := make(map[int64][]domain.Participant)
	for _, p := range participants {
		participantsByMatch[p.MatchID] = append(participantsByMatch[p.MatchID], p)
	}
	managersByMatch := make(map[int64][]domain.ManagerLink)
	for _, m := range managers {
		managersByMatch[m.MatchID] = append(managersByMatch[m.MatchID], m)
	}

	out := make([]domain.EnrichedMatch, len(matches))
	for i, m := range matches {
		out[i] = domain.Enrich(m, focusID, participantsByMatch[m.ID], managersByMatch[m.ID])
	}
	return out, nil
}

// storeSpec holds the filters the store can evaluate. A draw filter replaces any
// ResultType filter.
func storeSpec(req MatchFilterRequest, ids []int64) query.Spec {
	spec := query.New().In(domain.FieldID, query.List(ids...))

	if from, to, ok := DateRange(req.Year, req.Month); ok {
		spec = spec.Gte(domain.FieldDate, from).Lte(domain.FieldDate, to)
	}
	if req.MatchTypeID != 0 {
		spec = spec.Eq(domain.FieldMatchTypeID, req.MatchTypeID)
	}
	if req.ChampionshipOnly {
		spec = spec.NotNull(domain.FieldChampionshipID)
	}
	if req.MinRating != nil {
		spec = spec.Gte(domain.FieldRating, *req.MinRating)
	}
	if req.MaxRating != nil {
		spec = spec.Lte(domain.FieldRating, *req.MaxRating)
	}

	switch req.Result {
	case domain.ResultDraw:
		spec = spec.In(domain.FieldResultType, query.List(domain.DrawResultTypes...))
	case domain.ResultWin, domain.ResultLoss:
		spec = spec.NotIn(domain.FieldResultType, query.List(domain.DrawResultTypes...))
		if req.ResultType != "" {
			spec = spec.Eq(domain.FieldResultType, req.ResultType)
		}
	default:
		if req.ResultType != "" {
			spec = spec.Eq(domain.FieldResultType, req.ResultType)
		}
	}

	return spec
}

// postFilterSpec holds the filters applied to the fetched page in memory.
func postFilterSpec(req MatchFilterRequest) query.Spec {
	spec := query.New()
	if req.ShowSeriesID != 0 {
		spec = spec.Eq(domain.FieldShowSeriesID, req.ShowSeriesID)
	}
	if req.Country != "" {
		spec = spec.ILike(domain.FieldShowCountry, req.Country)
	}
	if req.City != "" {
		spec = spec.ILike(domain.FieldShowCity, req.City)
	}
	return spec
}

// NormalizePage applies the page defaults and clamps the page and page size.
func NormalizePage(page, size int) (int, int) {
	page = min(max(page, 1), constants.MaxMatchPage)
	if size <= 0 {
		size = constants.DefaultMatchPageSize
	}
	size = min(max(size, constants.MinMatchPageSize), constants.MaxMatchPageSize)
	return page, size
}

// DateRange returns the inclusive YYYY-MM-DD bounds of a year, or of one month of it
// when month is 1–12. ok is false when year is unset.
func DateRange(year, month int) (from, to string, ok bool) {
	if year <= 0 {
		return "", "", false
	}
	const layout = "2006-01-02"
	if month >= 1 && month <= 12 {
		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return first.Format(layout), last.Format(layout), true
	}
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return first.Format(layout), last.Format(layout), true
}

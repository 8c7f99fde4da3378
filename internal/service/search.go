package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wrestling-stats/internal/constants"
	"wrestling-stats/internal/domain"
	"wrestling-stats/internal/repository"
)

type SearchService struct {
	performers repository.PerformerReader
	logger     zerolog.Logger
}

func NewSearchService(performers repository.PerformerReader, logger zerolog.Logger) *SearchService {
	return &SearchService{performers: performers, logger: logger}
}

// SearchPerformers finds performers whose name, alias or nickname contains text. Name
// hits rank first, then alias hits, then nickname hits; a performer is listed once, at
// its best rank. Alias and nickname hits carry the text that matched in MatchedVia.
// Lookup failures yield an empty result.
func (s *SearchService) SearchPerformers(ctx context.Context, text string, limit int) []domain.SearchResult {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < constants.SearchMinQueryLength {
		return []domain.SearchResult{}
	}
	limit = clampSearchLimit(limit)

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var (
		byName     []domain.Performer
		byAlias    []domain.PerformerHit
		byNickname []domain.PerformerHit
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byName, err = s.performers.SearchByName(gCtx, text, limit)
		return err
	})
	g.Go(func() error {
		var err error
		byAlias, err = s.performers.SearchByAlias(gCtx, text, limit)
		return err
	})
	g.Go(func() error {
		var err error
		byNickname, err = s.performers.SearchByNickname(gCtx, text, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("query", text).Msg("performer search failed")
		return []domain.SearchResult{}
	}

	results := mergeSearchResults(byName, byAlias, byNickname, limit)

	s.logger.Debug().
		Str("query", text).
		Int("names", len(byName)).
		Int("aliases", len(byAlias)).
		Int("nicknames", len(byNickname)).
		Int("results", len(results)).
		Msg("performer search")

	return results
}

func mergeSearchResults(byName []domain.Performer, byAlias, byNickname []domain.PerformerHit, limit int) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, limit)
	seen := make(map[int64]struct{}, len(byName)+len(byAlias)+len(byNickname))

	add := func(p domain.Performer, via string) {
		if _, dup := seen[p.ID]; dup {
			return
		}
		seen[p.ID] = struct{}{}
		results = append(results, domain.SearchResult{
			ID:         p.ID,
			Name:       p.Name,
			Slug:       p.Slug,
			PhotoURL:   p.PhotoURL,
			MatchedVia: via,
		})
	}

	for _, p := range byName {
		add(p, "")
	}
	for _, h := range byAlias {
		add(h.Performer, h.Text)
	}
	for _, h := range byNickname {
		add(h.Performer, h.Text)
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func clampSearchLimit(limit int) int {
	if limit <= 0 {
		return constants.SearchDefaultLimit
	}
	return min(limit, constants.SearchMaxLimit)
}

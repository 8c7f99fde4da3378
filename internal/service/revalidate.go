package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"wrestling-stats/internal/api"
	"wrestling-stats/internal/config"
	"wrestling-stats/internal/constants"
	"wrestling-stats/internal/domain"
)

// Notifier delivers revalidation events to the frontend.
type Notifier interface {
	Enabled() bool
	Notify(ctx context.Context, event api.RevalidationEvent) (*api.WebhookResponse, error)
}

// Signal is the change notification sent by the database hook: the table that was
// written and, optionally, the row.
type Signal struct {
	Table  string          `json:"table"`
	Record json.RawMessage `json:"record,omitempty"`
}

type RevalidationResult struct {
	Revalidated bool     `json:"revalidated"`
	ID          string   `json:"id"`
	Tags        []string `json:"tags"`
	Forwarded   bool     `json:"forwarded"`
}

type RevalidationService struct {
	secret   string
	notifier Notifier
	logger   zerolog.Logger
}

func NewRevalidationService(cfg *config.Config, notifier Notifier, logger zerolog.Logger) *RevalidationService {
	return &RevalidationService{secret: cfg.RevalidateSecret, notifier: notifier, logger: logger}
}

// Revalidate checks the shared secret, resolves the cache tags touched by the signal and
// relays it to the frontend when a hook is configured. A relay failure is logged and
// reported through Forwarded; the signal is still accepted.
func (s *RevalidationService) Revalidate(ctx context.Context, secret string, signal Signal) (*RevalidationResult, error) {
	if s.secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(s.secret)) != 1 {
		return nil, domain.ErrUnauthorized("invalid secret")
	}
	if signal.Table == "" {
		return nil, domain.ErrValidation("table is required")
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, domain.ErrInternal("failed to create revalidation id", err)
	}

	tags := RevalidationTags(signal.Table, signal.Record)
	result := &RevalidationResult{Revalidated: true, ID: id, Tags: tags}

	log := s.logger.With().Str("revalidation_id", id).Str("table", signal.Table).Logger()

	if s.notifier == nil || !s.notifier.Enabled() {
		log.Info().Strs("tags", tags).Msg("revalidation accepted")
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	resp, err := s.notifier.Notify(ctx, api.RevalidationEvent{
		ID:     id,
		Table:  signal.Table,
		Record: signal.Record,
		Tags:   tags,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to forward revalidation")
		return result, nil
	}

	result.Forwarded = true
	log.Info().
		Strs("tags", tags).
		Bool("hook_revalidated", resp.Revalidated).
		Msg("revalidation forwarded")

	return result, nil
}

type tagRule struct {
	tags       []string
	slugPrefix string
}

var tagRules = map[string]tagRule{
	"superstars":          {tags: []string{"superstars", "random-superstars", "homepage-stats"}, slugPrefix: "superstar"},
	"superstar_aliases":   {tags: []string{"superstars", "search"}},
	"superstar_nicknames": {tags: []string{"superstars", "search"}},
	"matches":             {tags: []string{"matches", "match-of-day", "homepage-stats"}, slugPrefix: "match"},
	"match_participants":  {tags: []string{"matches", "match-of-day"}},
	"match_managers":      {tags: []string{"matches"}},
	"match_types":         {tags: []string{"match-types", "match-filters"}},
	"shows":               {tags: []string{"shows", "calendar", "homepage-stats"}, slugPrefix: "show"},
	"show_series":         {tags: []string{"show-series", "calendar", "match-filters", "homepage-stats"}, slugPrefix: "show-series"},
	"championships":       {tags: []string{"championships", "homepage-stats"}, slugPrefix: "championship"},
	"segments":            {tags: []string{"segments", "homepage-stats"}},
}

// RevalidationTags maps a written table, and the row's slug when it has one, to the
// cache tags the frontend must drop. Unknown tables map to their own name.
func RevalidationTags(table string, record json.RawMessage) []string {
	rule, ok := tagRules[table]
	if !ok {
		return []string{table}
	}

	tags := append([]string(nil), rule.tags...)
	if rule.slugPrefix != "" {
		if slug := recordSlug(record); slug != "" {
			tags = append(tags, rule.slugPrefix+":"+slug)
		}
	}
	return tags
}

func recordSlug(record json.RawMessage) string {
	if len(record) == 0 {
		return ""
	}
	var row struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(record, &row); err != nil {
		return ""
	}
	return row.Slug
}

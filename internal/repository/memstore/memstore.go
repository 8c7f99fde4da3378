// Package memstore is an in-memory implementation of every repository reader. It
// evaluates query specs with query.Apply, so filters behave like the SQLite readers.
package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"wrestling-stats/internal/domain"
	"wrestling-stats/internal/query"
	"wrestling-stats/internal/repository"
)

var (
	_ repository.MatchReader         = (*Store)(nil)
	_ repository.ParticipationReader = (*Store)(nil)
	_ repository.PerformerReader     = (*Store)(nil)
	_ repository.ShowReader          = (*Store)(nil)
	_ repository.StatsReader         = (*Store)(nil)
)

// Store holds rows in exported slices. Populate them before use; they are not guarded
// against concurrent writes.
type Store struct {
	Performers     []domain.Performer
	Aliases        []domain.Alias
	Nicknames      []domain.Nickname
	Series         []domain.ShowSeries
	Shows          []domain.Show
	Championships  []domain.Championship
	MatchTypes     []domain.MatchType
	Matches        []domain.Match
	Participations []domain.Participation
	Managers       []domain.ManagerLink
	Segments       []domain.Segment

	mu       sync.Mutex
	calls    map[string]int
	failures map[string]error
}

func New() *Store {
	return &Store{
		calls:    make(map[string]int),
		failures: make(map[string]error),
	}
}

// FailOn makes every later call to method return err.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

// Calls reports how many times method was invoked.
func (s *Store) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// TotalCalls reports how many reader calls were made in total.
func (s *Store) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *Store) record(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[method]++
	return s.failures[method]
}

func matchFields(m domain.Match) query.FieldFunc                 { return m.Field }
func participationFields(p domain.Participation) query.FieldFunc { return p.Field }
func showFields(s domain.Show) query.FieldFunc                   { return s.Field }

func (s *Store) ListMatches(ctx context.Context, spec query.Spec) ([]domain.Match, error) {
	if err := s.record("ListMatches"); err != nil {
		return nil, err
	}
	return query.Apply(s.joinedMatches(), spec, matchFields), nil
}

func (s *Store) CountMatches(ctx context.Context, spec query.Spec) (int, error) {
	if err := s.record("CountMatches"); err != nil {
		return 0, err
	}
	return len(query.Apply(s.joinedMatches(), spec.Unpaged(), matchFields)), nil
}

func (s *Store) ListMatchTypeUsage(ctx context.Context) ([]domain.MatchTypeUsage, error) {
	if err := s.record("ListMatchTypeUsage"); err != nil {
		return nil, err
	}
	usage := make(map[int64]int)
	for _, m := range s.Matches {
		if m.MatchTypeID != nil {
			usage[*m.MatchTypeID]++
		}
	}
	result := make([]domain.MatchTypeUsage, 0, len(s.MatchTypes))
	for _, mt := range s.MatchTypes {
		result = append(result, domain.MatchTypeUsage{MatchType: mt, Usage: usage[mt.ID]})
	}
	slices.SortStableFunc(result, func(a, b domain.MatchTypeUsage) int {
		if c := cmp.Compare(b.Usage, a.Usage); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return result, nil
}

func (s *Store) ListParticipations(ctx context.Context, spec query.Spec) ([]domain.Participation, error) {
	if err := s.record("ListParticipations"); err != nil {
		return nil, err
	}
	return query.Apply(s.Participations, spec, participationFields), nil
}

func (s *Store) ListParticipants(ctx context.Context, matchIDs []int64) ([]domain.Participant, error) {
	if err := s.record("ListParticipants"); err != nil {
		return nil, err
	}
	var result []domain.Participant
	for _, p := range s.Participations {
		if slices.Contains(matchIDs, p.MatchID) {
			result = append(result, domain.Participant{Participation: p, Performer: s.performer(p.PerformerID)})
		}
	}
	slices.SortStableFunc(result, func(a, b domain.Participant) int {
		return cmp.Or(
			cmp.Compare(a.MatchID, b.MatchID),
			cmp.Compare(a.TeamNumber, b.TeamNumber),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return result, nil
}

func (s *Store) ListManagers(ctx context.Context, matchIDs []int64) ([]domain.ManagerLink, error) {
	if err := s.record("ListManagers"); err != nil {
		return nil, err
	}
	var result []domain.ManagerLink
	for _, m := range s.Managers {
		if slices.Contains(matchIDs, m.MatchID) {
			m.Manager = s.performer(m.ManagerID)
			result = append(result, m)
		}
	}
	return result, nil
}

func (s *Store) SearchByName(ctx context.Context, text string, limit int) ([]domain.Performer, error) {
	if err := s.record("SearchByName"); err != nil {
		return nil, err
	}
	var result []domain.Performer
	for _, p := range s.Performers {
		if containsFold(p.Name, text) {
			result = append(result, p)
		}
	}
	slices.SortStableFunc(result, func(a, b domain.Performer) int { return cmp.Compare(a.Name, b.Name) })
	return truncate(result, limit), nil
}

func (s *Store) SearchByAlias(ctx context.Context, text string, limit int) ([]domain.PerformerHit, error) {
	if err := s.record("SearchByAlias"); err != nil {
		return nil, err
	}
	var result []domain.PerformerHit
	for _, a := range s.Aliases {
		if containsFold(a.Value, text) {
			result = append(result, domain.PerformerHit{Performer: s.performer(a.PerformerID), Text: a.Value})
		}
	}
	slices.SortStableFunc(result, func(a, b domain.PerformerHit) int { return cmp.Compare(a.Text, b.Text) })
	return truncate(result, limit), nil
}

func (s *Store) SearchByNickname(ctx context.Context, text string, limit int) ([]domain.PerformerHit, error) {
	if err := s.record("SearchByNickname"); err != nil {
		return nil, err
	}
	var result []domain.PerformerHit
	for _, n := range s.Nicknames {
		if containsFold(n.Value, text) {
			result = append(result, domain.PerformerHit{Performer: s.performer(n.PerformerID), Text: n.Value})
		}
	}
	slices.SortStableFunc(result, func(a, b domain.PerformerHit) int { return cmp.Compare(a.Text, b.Text) })
	return truncate(result, limit), nil
}

func (s *Store) ListWithPhoto(ctx context.Context) ([]domain.Performer, error) {
	if err := s.record("ListWithPhoto"); err != nil {
		return nil, err
	}
	var result []domain.Performer
	for _, p := range s.Performers {
		if p.PhotoURL != "" {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *Store) ListShows(ctx context.Context, spec query.Spec) ([]domain.Show, error) {
	if err := s.record("ListShows"); err != nil {
		return nil, err
	}
	shows := make([]domain.Show, len(s.Shows))
	for i, sh := range s.Shows {
		shows[i] = s.joinShow(sh)
	}
	return query.Apply(shows, spec, showFields), nil
}

func (s *Store) ListShowSeries(ctx context.Context) ([]domain.ShowSeries, error) {
	if err := s.record("ListShowSeries"); err != nil {
		return nil, err
	}
	result := slices.Clone(s.Series)
	slices.SortStableFunc(result, func(a, b domain.ShowSeries) int { return cmp.Compare(a.Name, b.Name) })
	return result, nil
}

func (s *Store) CountTable(ctx context.Context, table string) (int, error) {
	if err := s.record("CountTable:" + table); err != nil {
		return 0, err
	}
	switch table {
	case repository.TableSuperstars:
		return len(s.Performers), nil
	case repository.TableShows:
		return len(s.Shows), nil
	case repository.TableShowSeries:
		return len(s.Series), nil
	case repository.TableChampionships:
		return len(s.Championships), nil
	case repository.TableSegments:
		return len(s.Segments), nil
	}
	return 0, fmt.Errorf("unknown table %q", table)
}

func (s *Store) joinedMatches() []domain.Match {
	out := make([]domain.Match, len(s.Matches))
	for i, m := range s.Matches {
		if sh, ok := s.show(m.ShowID); ok {
			joined := s.joinShow(sh)
			m.Show = &joined
		}
		if m.MatchTypeID != nil {
			for _, mt := range s.MatchTypes {
				if mt.ID == *m.MatchTypeID {
					m.MatchType = &mt
					break
				}
			}
		}
		if m.ChampionshipID != nil {
			for _, c := range s.Championships {
				if c.ID == *m.ChampionshipID {
					m.Championship = &c
					break
				}
			}
		}
		out[i] = m
	}
	return out
}

func (s *Store) joinShow(sh domain.Show) domain.Show {
	if sh.SeriesID == nil {
		return sh
	}
	for _, ser := range s.Series {
		if ser.ID == *sh.SeriesID {
			sh.Series = &ser
			break
		}
	}
	return sh
}

func (s *Store) show(id int64) (domain.Show, bool) {
	for _, sh := range s.Shows {
		if sh.ID == id {
			return sh, true
		}
	}
	return domain.Show{}, false
}

func (s *Store) performer(id int64) domain.Performer {
	for _, p := range s.Performers {
		if p.ID == id {
			return p
		}
	}
	return domain.Performer{ID: id}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

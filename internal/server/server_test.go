package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrestling-stats/internal/api"
	"wrestling-stats/internal/config"
	"wrestling-stats/internal/constants"
	"wrestling-stats/internal/domain"
	"wrestling-stats/internal/repository/memstore"
	"wrestling-stats/internal/service"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

func ptr[T any](v T) *T { return &v }

// newStore holds seven performers named "Jo …", all in one singles match each against
// performer 8, the first of which is a rated title match.
func newStore() *memstore.Store {
	s := memstore.New()
	s.Series = []domain.ShowSeries{{ID: 1, Name: "Raw", Slug: "raw"}}
	s.Shows = []domain.Show{{ID: 1, Name: "Raw 1", Slug: "raw-1", Date: "2020-06-01", SeriesID: ptr(int64(1)), City: "Orlando", Country: "USA"}}
	s.Championships = []domain.Championship{{ID: 1, Name: "WWE Championship", Slug: "wwe"}}
	s.MatchTypes = []domain.MatchType{{ID: 1, Name: "Singles", Slug: "singles"}}
	s.Performers = append(s.Performers, domain.Performer{ID: 8, Name: "The Opponent", Slug: "opponent", PhotoURL: "opp.png"})
	for i := int64(1); i <= 7; i++ {
		s.Performers = append(s.Performers, domain.Performer{ID: i, Name: fmt.Sprintf("Jo %d", i), Slug: fmt.Sprintf("jo-%d", i)})
		s.Matches = append(s.Matches, domain.Match{ID: i, Slug: fmt.Sprintf("m%d", i), Date: "2020-06-01", ShowID: 1, ResultType: "pinfall", MatchTypeID: ptr(int64(1))})
		s.Participations = append(s.Participations,
			domain.Participation{ID: 2*i - 1, MatchID: i, PerformerID: i, TeamNumber: 1, IsWinner: true},
			domain.Participation{ID: 2 * i, MatchID: i, PerformerID: 8, TeamNumber: 2},
		)
	}
	s.Matches[0].Rating = ptr(8.0)
	s.Matches[0].ChampionshipID = ptr(int64(1))
	return s
}

type testEnv struct {
	store   *memstore.Store
	handler http.Handler
}

func newTestEnv(t *testing.T, pinger Pinger) *testEnv {
	t.Helper()

	store := newStore()
	cfg := &config.Config{
		CORSAllowedOrigins: []string{"https://example.com"},
		RevalidateSecret:   "s3cret",
	}
	logger := zerolog.Nop()
	clock := service.Clock(func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) })

	stats := NewStatsServer(
		service.NewMatchFilterService(store, store, logger),
		service.NewSearchService(store, logger),
		service.NewDailyPickService(store, store, clock, logger),
		service.NewCatalogService(store, store, store, store, clock, logger),
		service.NewRevalidationService(cfg, api.NewWebhookClient(cfg), logger),
	)
	return &testEnv{store: store, handler: newRouter(cfg, stats, pinger, logger)}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	RespondJSON(w, http.StatusNoContent, nil)
	assert.Empty(t, w.Body.String())
}

func TestRespondError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	tests := []struct {
		err        error
		wantStatus int
		wantBody   string
	}{
		{domain.ErrValidation("bad input"), http.StatusBadRequest, `{"error":"bad input"}`},
		{domain.ErrUnauthorized("invalid secret"), http.StatusUnauthorized, `{"error":"invalid secret"}`},
		{domain.ErrInternal("failed to fetch matches", errors.New("db gone")), http.StatusInternalServerError, `{"error":"failed to fetch matches"}`},
		{fmt.Errorf("wrapped: %w", domain.ErrValidation("deep")), http.StatusBadRequest, `{"error":"deep"}`},
		{assert.AnError, http.StatusInternalServerError, `{"error":"internal server error"}`},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		RespondError(w, r, tt.err)
		assert.Equal(t, tt.wantStatus, w.Code)
		assert.JSONEq(t, tt.wantBody, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	w := newTestEnv(t, fakePinger{}).do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	w = newTestEnv(t, fakePinger{err: errors.New("database is closed")}).do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode(t, w)
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "database is closed", body["error"])
}

func TestMatchesByPerformer(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	w := env.do(t, http.MethodGet, "/matches-by-performer?superstarId=1&year=2020&result=win&page=1&limit=50", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Matches []struct {
			ID          int64  `json:"id"`
			MatchResult string `json:"matchResult"`
			Opponents   []struct {
				Superstar struct {
					Name string `json:"name"`
				} `json:"superstar"`
			} `json:"opponents"`
		} `json:"matches"`
		Total      int `json:"total"`
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		TotalPages int `json:"totalPages"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
	require.Len(t, page.Matches, 1)
	assert.Equal(t, int64(1), page.Matches[0].ID)
	assert.Equal(t, "win", page.Matches[0].MatchResult)
	require.Len(t, page.Matches[0].Opponents, 1)
	assert.Equal(t, "The Opponent", page.Matches[0].Opponents[0].Superstar.Name)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, 1, page.TotalPages)
}

func TestMatchesByPerformer_BadRequests(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	tests := []struct {
		query   string
		wantErr string
	}{
		{"", "superstarId is required"},
		{"superstarId=abc", "superstarId must be a positive integer"},
		{"superstarId=1&opponentId=x", "opponentId must be a positive integer"},
		{"superstarId=1&year=2020&month=13", "month must be between 1 and 12"},
		{"superstarId=1&result=tie", "result must be one of win, loss, draw"},
		{"superstarId=1&minRating=high", "minRating must be a number"},
		{"superstarId=1&championshipOnly=yes", "championshipOnly must be true or false"},
		{"superstarId=1&page=two", "page must be an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/matches-by-performer?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantErr, decode(t, w)["error"])
		})
	}
	assert.Zero(t, env.store.TotalCalls())
}

func TestMatchesByPerformer_HugePage(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	w := env.do(t, http.MethodGet, "/matches-by-performer?superstarId=1&page="+strconv.Itoa(math.MaxInt), "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Empty(t, body["matches"])
	assert.EqualValues(t, constants.MaxMatchPage, body["page"])
	assert.EqualValues(t, 1, body["total"])
}

func TestMatchesByPerformer_EnrichmentFailure(t *testing.T) {
	env := newTestEnv(t, fakePinger{})
	env.store.FailOn("ListParticipants", errors.New("database is locked"))

	w := env.do(t, http.MethodGet, "/matches-by-performer?superstarId=1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to fetch matches", decode(t, w)["error"])
}

func TestMatchFilterRequest(t *testing.T) {
	req, err := matchFilterRequest(map[string][]string{
		"superstarId":      {"42"},
		"page":             {"2"},
		"limit":            {"25"},
		"year":             {"2020"},
		"month":            {"3"},
		"opponentId":       {"7"},
		"teammateId":       {"8"},
		"showSeriesId":     {"3"},
		"matchTypeId":      {"4"},
		"minRating":        {"6.5"},
		"maxRating":        {"9"},
		"country":          {" Japan "},
		"city":             {"Tokyo"},
		"championshipOnly": {"true"},
		"result":           {"draw"},
		"resultType":       {"no_contest"},
	})
	require.NoError(t, err)

	assert.Equal(t, service.MatchFilterRequest{
		FocusID:          42,
		Page:             2,
		PageSize:         25,
		Year:             2020,
		Month:            3,
		OpponentID:       7,
		TeammateID:       8,
		ShowSeriesID:     3,
		MatchTypeID:      4,
		MinRating:        ptr(6.5),
		MaxRating:        ptr(9.0),
		Country:          "Japan",
		City:             "Tokyo",
		ChampionshipOnly: true,
		Result:           domain.ResultDraw,
		ResultType:       "no_contest",
	}, req)
}

func TestSearchPerformers(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	w := env.do(t, http.MethodGet, "/search-performers?q=jo&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []domain.SearchResult `json:"results"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Results, 5)
	for _, r := range body.Results {
		assert.True(t, strings.HasPrefix(r.Name, "Jo "))
	}

	w = env.do(t, http.MethodGet, "/search-performers?q=j", "")
	assert.JSONEq(t, `{"results":[]}`, w.Body.String())
}

func TestMatchOfDay(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	w := env.do(t, http.MethodGet, "/match-of-day", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Match *struct {
			ID    int64 `json:"id"`
			Teams []struct {
				TeamNumber int  `json:"teamNumber"`
				IsWinner   bool `json:"isWinner"`
			} `json:"teams"`
		} `json:"match"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.NotNil(t, body.Match)
	assert.Equal(t, int64(1), body.Match.ID)
	require.Len(t, body.Match.Teams, 2)
	assert.True(t, body.Match.Teams[0].IsWinner)
}

func TestMatchOfDay_FailureIsNull(t *testing.T) {
	env := newTestEnv(t, fakePinger{})
	env.store.FailOn("CountMatches", errors.New("boom"))

	w := env.do(t, http.MethodGet, "/match-of-day", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"match":null}`, w.Body.String())
}

func TestCalendarShows(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	w := env.do(t, http.MethodGet, "/calendar-shows?year=2020&month=6&showSeriesIds=1,%202", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["shows"], 1)
	assert.Len(t, body["showSeries"], 1)

	// Malformed parameters fall back to the current month (January 2024): no shows.
	w = env.do(t, http.MethodGet, "/calendar-shows?year=abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["shows"])
}

func TestHomepageStats(t *testing.T) {
	w := newTestEnv(t, fakePinger{}).do(t, http.MethodGet, "/homepage-stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"superstars": 8,
		"matches": 7,
		"ratedMatches": 1,
		"shows": 1,
		"showSeries": 1,
		"championships": 1,
		"segments": 0
	}`, w.Body.String())
}

func TestMatchFilters(t *testing.T) {
	w := newTestEnv(t, fakePinger{}).do(t, http.MethodGet, "/match-filters", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"matchTypes": [{"id": 1, "name": "Singles", "slug": "singles", "usage": 7}],
		"showSeries": [{"id": 1, "name": "Raw", "slug": "raw"}]
	}`, w.Body.String())
}

func TestRandomSuperstars(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	w := env.do(t, http.MethodGet, "/random-superstars?count=3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Superstars []domain.Performer `json:"superstars"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Superstars, 1)
	assert.Equal(t, int64(8), body.Superstars[0].ID)
}

func TestRevalidate(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	w := env.do(t, http.MethodPost, "/revalidate?secret=s3cret", `{"table":"shows","record":{"slug":"raw-1"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["revalidated"])
	assert.Equal(t, false, body["forwarded"])
	assert.NotEmpty(t, body["id"])
	assert.Contains(t, body["tags"], "show:raw-1")

	w = env.do(t, http.MethodPost, "/revalidate?secret=nope", `{"table":"shows"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid secret", decode(t, w)["error"])

	w = env.do(t, http.MethodPost, "/revalidate?secret=s3cret", `{"record":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/revalidate?secret=s3cret", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", decode(t, w)["error"])

	w = env.do(t, http.MethodGet, "/revalidate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRevalidate_OversizedBody(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	padding := strings.Repeat("x", constants.MaxRequestBodyBytes)
	w := env.do(t, http.MethodPost, "/revalidate?secret=s3cret", `{"table":"shows","record":{"slug":"`+padding+`"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", decode(t, w)["error"])

	w = env.do(t, http.MethodPost, "/revalidate?secret=s3cret", `{"table":"shows","record":{"slug":"raw-1"}}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Middleware(t *testing.T) {
	env := newTestEnv(t, fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/homepage-stats", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = env.do(t, http.MethodGet, "/homepage-stats", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/homepage-stats", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

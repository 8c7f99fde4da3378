package server

import (
	"net/url"
	"strconv"
	"strings"

	"wrestling-stats/internal/domain"
	"wrestling-stats/internal/service"
)

// params reads typed query parameters, keeping the first malformed one as a validation
// error.
type params struct {
	values url.Values
	err    error
}

func newParams(values url.Values) *params {
	return &params{values: values}
}

func (p *params) fail(msg string) {
	if p.err == nil {
		p.err = domain.ErrValidation(msg)
	}
}

func (p *params) str(key string) string {
	return strings.TrimSpace(p.values.Get(key))
}

func (p *params) integer(key string) int {
	raw := p.str(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key + " must be an integer")
		return 0
	}
	return v
}

func (p *params) id(key string) int64 {
	raw := p.str(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		p.fail(key + " must be a positive integer")
		return 0
	}
	return v
}

func (p *params) number(key string) *float64 {
	raw := p.str(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key + " must be a number")
		return nil
	}
	return &v
}

func (p *params) flag(key string) bool {
	raw := p.str(key)
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key + " must be true or false")
		return false
	}
	return v
}

// ids parses a comma separated id list, skipping blanks.
func (p *params) ids(key string) []int64 {
	raw := p.str(key)
	if raw == "" {
		return nil
	}
	var out []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil || v <= 0 {
			p.fail(key + " must be a comma separated list of ids")
			return nil
		}
		out = append(out, v)
	}
	return out
}

func matchFilterRequest(values url.Values) (service.MatchFilterRequest, error) {
	p := newParams(values)

	if p.str("superstarId") == "" {
		return service.MatchFilterRequest{}, domain.ErrValidation("superstarId is required")
	}

	req := service.MatchFilterRequest{
		FocusID:          p.id("superstarId"),
		Page:             p.integer("page"),
		PageSize:         p.integer("limit"),
		Year:             p.integer("year"),
		Month:            p.integer("month"),
		OpponentID:       p.id("opponentId"),
		TeammateID:       p.id("teammateId"),
		ShowSeriesID:     p.id("showSeriesId"),
		MatchTypeID:      p.id("matchTypeId"),
		MinRating:        p.number("minRating"),
		MaxRating:        p.number("maxRating"),
		Country:          p.str("country"),
		City:             p.str("city"),
		ChampionshipOnly: p.flag("championshipOnly"),
		ResultType:       p.str("resultType"),
	}

	if req.Month != 0 && (req.Month < 1 || req.Month > 12) {
		p.fail("month must be between 1 and 12")
	}
	if raw := p.str("result"); raw != "" {
		result, ok := domain.ParseMatchResult(raw)
		if !ok {
			p.fail("result must be one of win, loss, draw")
		}
		req.Result = result
	}

	if p.err != nil {
		return service.MatchFilterRequest{}, p.err
	}
	return req, nil
}

package domain

import "sort"

type MatchResult string

const (
	ResultWin  MatchResult = "win"
	ResultLoss MatchResult = "loss"
	ResultDraw MatchResult = "draw"
)

func ParseMatchResult(s string) (MatchResult, bool) {
	switch MatchResult(s) {
	case ResultWin, ResultLoss, ResultDraw:
		return MatchResult(s), true
	}
	return "", false
}

// Result classifications that end a match without a winner.
const (
	ResultTypeNoContest     = "no_contest"
	ResultTypeTimeLimitDraw = "time_limit_draw"
)

// DrawResultTypes lists the classifications treated as a draw.
var DrawResultTypes = []string{ResultTypeNoContest, ResultTypeTimeLimitDraw}

func IsDrawResultType(resultType string) bool {
	return resultType == ResultTypeNoContest || resultType == ResultTypeTimeLimitDraw
}

// ClassifyResult derives win/loss/draw for one participation. Draw classifications
// override the winner flag.
func ClassifyResult(resultType string, isWinner bool) MatchResult {
	if IsDrawResultType(resultType) {
		return ResultDraw
	}
	if isWinner {
		return ResultWin
	}
	return ResultLoss
}

// EnrichedMatch is a match seen from one focus performer.
type EnrichedMatch struct {
	Match
	MatchResult MatchResult   `json:"matchResult"`
	TeamNumber  int           `json:"teamNumber"`
	Teammates   []Participant `json:"teammates"`
	Opponents   []Participant `json:"opponents"`
	Managers    []ManagerLink `json:"managers"`
}

// Enrich groups a match's participants and managers around focusID. participants and
// managers must all belong to m.
func Enrich(m Match, focusID int64, participants []Participant, managers []ManagerLink) EnrichedMatch {
	out := EnrichedMatch{
		Match:     m,
		Teammates: []Participant{},
		Opponents: []Participant{},
		Managers:  []ManagerLink{},
	}

	var focus *Participant
	for i := range participants {
		if participants[i].PerformerID == focusID {
			focus = &participants[i]
			break
		}
	}
	if focus == nil {
		out.MatchResult = ClassifyResult(m.ResultType, false)
		out.Opponents = append(out.Opponents, participants...)
		return out
	}

	out.TeamNumber = focus.TeamNumber
	out.MatchResult = ClassifyResult(m.ResultType, focus.IsWinner)

	for _, p := range participants {
		switch {
		case p.PerformerID == focusID:
		case p.TeamNumber == focus.TeamNumber:
			out.Teammates = append(out.Teammates, p)
		default:
			out.Opponents = append(out.Opponents, p)
		}
	}

	for _, mg := range managers {
		if mg.TeamNumber == focus.TeamNumber || (mg.ManagedID != nil && *mg.ManagedID == focusID) {
			out.Managers = append(out.Managers, mg)
		}
	}

	return out
}

type Team struct {
	TeamNumber   int           `json:"teamNumber"`
	IsWinner     bool          `json:"isWinner"`
	Participants []Participant `json:"participants"`
}

// FeaturedMatch is a match with every side laid out, used for the daily pick.
type FeaturedMatch struct {
	Match
	Teams []Team `json:"teams"`
}

// GroupTeams partitions participants by team number, ordered by team number.
func GroupTeams(participants []Participant) []Team {
	byTeam := make(map[int]*Team)
	var order []int
	for _, p := range participants {
		t, ok := byTeam[p.TeamNumber]
		if !ok {
			t = &Team{TeamNumber: p.TeamNumber}
			byTeam[p.TeamNumber] = t
			order = append(order, p.TeamNumber)
		}
		t.Participants = append(t.Participants, p)
		if p.IsWinner {
			t.IsWinner = true
		}
	}
	sort.Ints(order)

	teams := make([]Team, 0, len(order))
	for _, n := range order {
		teams = append(teams, *byTeam[n])
	}
	return teams
}

type SearchResult struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	PhotoURL   string `json:"photoUrl,omitempty"`
	MatchedVia string `json:"matchedVia,omitempty"`
}

type HomepageStats struct {
	Superstars    int `json:"superstars"`
	Matches       int `json:"matches"`
	RatedMatches  int `json:"ratedMatches"`
	Shows         int `json:"shows"`
	ShowSeries    int `json:"showSeries"`
	Championships int `json:"championships"`
	Segments      int `json:"segments"`
}

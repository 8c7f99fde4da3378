package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyResult(t *testing.T) {
	tests := []struct {
		resultType string
		isWinner   bool
		want       MatchResult
	}{
		{"pinfall", true, ResultWin},
		{"pinfall", false, ResultLoss},
		{"submission", true, ResultWin},
		{ResultTypeNoContest, true, ResultDraw},
		{ResultTypeNoContest, false, ResultDraw},
		{ResultTypeTimeLimitDraw, true, ResultDraw},
		{ResultTypeTimeLimitDraw, false, ResultDraw},
		{"", false, ResultLoss},
	}
	for _, tt := range tests {
		t.Run(tt.resultType, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyResult(tt.resultType, tt.isWinner))
		})
	}
}

func TestParseMatchResult(t *testing.T) {
	for _, s := range []string{"win", "loss", "draw"} {
		r, ok := ParseMatchResult(s)
		assert.True(t, ok)
		assert.Equal(t, MatchResult(s), r)
	}
	_, ok := ParseMatchResult("WIN")
	assert.False(t, ok)
	_, ok = ParseMatchResult("")
	assert.False(t, ok)
}

func participant(id, performer int64, team int, winner bool) Participant {
	return Participant{
		Participation: Participation{ID: id, MatchID: 1, PerformerID: performer, TeamNumber: team, IsWinner: winner},
		Performer:     Performer{ID: performer},
	}
}

func TestEnrich(t *testing.T) {
	m := Match{ID: 1, ResultType: "pinfall"}
	participants := []Participant{
		participant(1, 10, 1, true),
		participant(2, 11, 1, true),
		participant(3, 20, 2, false),
		participant(4, 21, 2, false),
	}
	managed := int64(10)
	managers := []ManagerLink{
		{ID: 1, MatchID: 1, ManagerID: 30, TeamNumber: 1},
		{ID: 2, MatchID: 1, ManagerID: 31, TeamNumber: 2},
		{ID: 3, MatchID: 1, ManagerID: 32, TeamNumber: 3, ManagedID: &managed},
	}

	t.Run("winner side", func(t *testing.T) {
		e := Enrich(m, 10, participants, managers)
		assert.Equal(t, ResultWin, e.MatchResult)
		assert.Equal(t, 1, e.TeamNumber)
		require.Len(t, e.Teammates, 1)
		assert.Equal(t, int64(11), e.Teammates[0].PerformerID)
		require.Len(t, e.Opponents, 2)
		assert.Equal(t, int64(20), e.Opponents[0].PerformerID)
		require.Len(t, e.Managers, 2)
		assert.Equal(t, int64(30), e.Managers[0].ManagerID)
		assert.Equal(t, int64(32), e.Managers[1].ManagerID)
	})

	t.Run("loser side", func(t *testing.T) {
		e := Enrich(m, 21, participants, managers)
		assert.Equal(t, ResultLoss, e.MatchResult)
		assert.Equal(t, 2, e.TeamNumber)
		require.Len(t, e.Teammates, 1)
		assert.Equal(t, int64(20), e.Teammates[0].PerformerID)
		assert.Len(t, e.Opponents, 2)
		require.Len(t, e.Managers, 1)
		assert.Equal(t, int64(31), e.Managers[0].ManagerID)
	})

	t.Run("draw overrides winner flag", func(t *testing.T) {
		e := Enrich(Match{ID: 1, ResultType: ResultTypeNoContest}, 10, participants, nil)
		assert.Equal(t, ResultDraw, e.MatchResult)
		assert.NotNil(t, e.Managers)
		assert.Empty(t, e.Managers)
	})

	t.Run("focus absent", func(t *testing.T) {
		e := Enrich(m, 99, participants, managers)
		assert.Equal(t, ResultLoss, e.MatchResult)
		assert.Empty(t, e.Teammates)
		assert.Len(t, e.Opponents, 4)
		assert.Empty(t, e.Managers)
	})

	t.Run("no participants yields empty groups", func(t *testing.T) {
		e := Enrich(m, 10, nil, nil)
		assert.NotNil(t, e.Teammates)
		assert.NotNil(t, e.Opponents)
		assert.NotNil(t, e.Managers)
	})
}

func TestGroupTeams(t *testing.T) {
	teams := GroupTeams([]Participant{
		participant(1, 20, 2, false),
		participant(2, 10, 1, true),
		participant(3, 21, 2, false),
		participant(4, 40, 3, false),
	})

	require.Len(t, teams, 3)
	assert.Equal(t, 1, teams[0].TeamNumber)
	assert.True(t, teams[0].IsWinner)
	assert.Len(t, teams[0].Participants, 1)
	assert.Equal(t, 2, teams[1].TeamNumber)
	assert.False(t, teams[1].IsWinner)
	assert.Len(t, teams[1].Participants, 2)
	assert.Equal(t, 3, teams[2].TeamNumber)

	assert.Empty(t, GroupTeams(nil))
}

func TestMatchField(t *testing.T) {
	series := int64(4)
	m := Match{ID: 3, Show: &Show{SeriesID: &series, City: "Tokyo", Country: "Japan"}}

	v, ok := m.Field(FieldShowSeriesID)
	assert.True(t, ok)
	assert.Equal(t, &series, v)

	v, ok = m.Field(FieldShowCity)
	assert.True(t, ok)
	assert.Equal(t, "Tokyo", v)

	v, ok = Match{}.Field(FieldShowCountry)
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = m.Field("unknown")
	assert.False(t, ok)
}

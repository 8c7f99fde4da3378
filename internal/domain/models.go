package domain

type Performer struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

type Alias struct {
	ID          int64  `json:"id"`
	PerformerID int64  `json:"superstarId"`
	Value       string `json:"alias"`
}

type Nickname struct {
	ID          int64  `json:"id"`
	PerformerID int64  `json:"superstarId"`
	Value       string `json:"nickname"`
}

// PerformerHit is a performer found through one of its alternate lookup keys.
type PerformerHit struct {
	Performer
	Text string
}

type ShowSeries struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type Show struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Slug     string      `json:"slug"`
	Date     string      `json:"date"` // YYYY-MM-DD
	SeriesID *int64      `json:"showSeriesId"`
	Venue    string      `json:"venue,omitempty"`
	City     string      `json:"city,omitempty"`
	Country  string      `json:"country,omitempty"`
	Series   *ShowSeries `json:"showSeries,omitempty"`
}

type Championship struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type MatchType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type MatchTypeUsage struct {
	MatchType
	Usage int `json:"usage"`
}

type Match struct {
	ID              int64    `json:"id"`
	Slug            string   `json:"slug"`
	Date            string   `json:"date"` // YYYY-MM-DD
	DurationSeconds *int     `json:"durationSeconds"`
	Rating          *float64 `json:"rating"`
	ResultType      string   `json:"resultType"`
	TitleChange     bool     `json:"titleChange"`
	MatchOrder      int      `json:"matchOrder"`
	ShowID          int64    `json:"showId"`
	MatchTypeID     *int64   `json:"matchTypeId"`
	ChampionshipID  *int64   `json:"championshipId"`

	Show         *Show         `json:"show,omitempty"`
	MatchType    *MatchType    `json:"matchType,omitempty"`
	Championship *Championship `json:"championship,omitempty"`
}

type Participation struct {
	ID          int64 `json:"id"`
	MatchID     int64 `json:"matchId"`
	PerformerID int64 `json:"superstarId"`
	TeamNumber  int   `json:"teamNumber"`
	IsWinner    bool  `json:"isWinner"`
}

// Participant is a participation joined with the performer it belongs to.
type Participant struct {
	Participation
	Performer Performer `json:"superstar"`
}

type ManagerLink struct {
	ID          int64     `json:"id"`
	MatchID     int64     `json:"matchId"`
	ManagerID   int64     `json:"managerId"`
	TeamNumber  int       `json:"teamNumber"`
	ManagedID   *int64    `json:"managedSuperstarId"`
	Manager     Performer `json:"manager"`
}

type Segment struct {
	ID          int64  `json:"id"`
	ShowID      int64  `json:"showId"`
	Title       string `json:"title"`
	SegmentType string `json:"segmentType"`
}

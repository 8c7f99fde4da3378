package domain

// Logical field names understood by query specifications. Repositories map them to
// columns; in-memory evaluation resolves them through the Field methods below.
const (
	FieldID             = "id"
	FieldDate           = "date"
	FieldName           = "name"
	FieldRating         = "rating"
	FieldResultType     = "result_type"
	FieldTitleChange    = "title_change"
	FieldShowID         = "show_id"
	FieldMatchTypeID    = "match_type_id"
	FieldChampionshipID = "championship_id"
	FieldShowSeriesID   = "show_series_id"
	FieldShowCountry    = "show_country"
	FieldShowCity       = "show_city"
	FieldMatchID        = "match_id"
	FieldSuperstarID    = "superstar_id"
	FieldTeamNumber     = "team_number"
	FieldIsWinner       = "is_winner"
	FieldPhotoURL       = "photo_url"
)

func (m Match) Field(name string) (any, bool) {
	switch name {
	case FieldID:
		return m.ID, true
	case FieldDate:
		return m.Date, true
	case FieldRating:
		return m.Rating, true
	case FieldResultType:
		return m.ResultType, true
	case FieldTitleChange:
		return m.TitleChange, true
	case FieldShowID:
		return m.ShowID, true
	case FieldMatchTypeID:
		return m.MatchTypeID, true
	case FieldChampionshipID:
		return m.ChampionshipID, true
	case FieldShowSeriesID:
		if m.Show == nil {
			return nil, true
		}
		return m.Show.SeriesID, true
	case FieldShowCountry:
		if m.Show == nil {
			return nil, true
		}
		return m.Show.Country, true
	case FieldShowCity:
		if m.Show == nil {
			return nil, true
		}
		return m.Show.City, true
	}
	return nil, false
}

func (p Participation) Field(name string) (any, bool) {
	switch name {
	case FieldID:
		return p.ID, true
	case FieldMatchID:
		return p.MatchID, true
	case FieldSuperstarID:
		return p.PerformerID, true
	case FieldTeamNumber:
		return p.TeamNumber, true
	case FieldIsWinner:
		return p.IsWinner, true
	}
	return nil, false
}

func (s Show) Field(name string) (any, bool) {
	switch name {
	case FieldID:
		return s.ID, true
	case FieldName:
		return s.Name, true
	case FieldDate:
		return s.Date, true
	case FieldShowSeriesID:
		return s.SeriesID, true
	case FieldShowCountry:
		return s.Country, true
	case FieldShowCity:
		return s.City, true
	}
	return nil, false
}

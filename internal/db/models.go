package db

import "database/sql"

type Superstar struct {
	ID       int64
	Name     string
	Slug     string
	PhotoUrl sql.NullString
}

type ShowSeries struct {
	ID      int64
	Name    string
	Slug    string
	LogoUrl sql.NullString
}

type SearchSuperstarsByAliasRow struct {
	ID       int64
	Name     string
	Slug     string
	PhotoUrl sql.NullString
	Alias    string
}

type SearchSuperstarsByNicknameRow struct {
	ID       int64
	Name     string
	Slug     string
	PhotoUrl sql.NullString
	Nickname string
}

type ListMatchTypeUsageRow struct {
	ID    int64
	Name  string
	Slug  string
	Usage int64
}

package db

import (
	"context"
)

const searchSuperstarsByName = `
SELECT id, name, slug, photo_url
FROM superstars
WHERE unicode_lower(name) LIKE ? ESCAPE '\'
ORDER BY name
LIMIT ?
`

type SearchParams struct {
	Pattern string
	Limit   int64
}

func (q *Queries) SearchSuperstarsByName(ctx context.Context, arg SearchParams) ([]Superstar, error) {
	rows, err := q.db.QueryContext(ctx, searchSuperstarsByName, arg.Pattern, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Superstar
	for rows.Next() {
		var i Superstar
		if err := rows.Scan(&i.ID, &i.Name, &i.Slug, &i.PhotoUrl); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const searchSuperstarsByAlias = `
SELECT s.id, s.name, s.slug, s.photo_url, a.alias
FROM superstar_aliases a
JOIN superstars s ON s.id = a.superstar_id
WHERE unicode_lower(a.alias) LIKE ? ESCAPE '\'
ORDER BY a.alias
LIMIT ?
`

func (q *Queries) SearchSuperstarsByAlias(ctx context.Context, arg SearchParams) ([]SearchSuperstarsByAliasRow, error) {
	rows, err := q.db.QueryContext(ctx, searchSuperstarsByAlias, arg.Pattern, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SearchSuperstarsByAliasRow
	for rows.Next() {
		var i SearchSuperstarsByAliasRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Slug, &i.PhotoUrl, &i.Alias); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const searchSuperstarsByNickname = `
SELECT s.id, s.name, s.slug, s.photo_url, n.nickname
FROM superstar_nicknames n
JOIN superstars s ON s.id = n.superstar_id
WHERE unicode_lower(n.nickname) LIKE ? ESCAPE '\'
ORDER BY n.nickname
LIMIT ?
`

func (q *Queries) SearchSuperstarsByNickname(ctx context.Context, arg SearchParams) ([]SearchSuperstarsByNicknameRow, error) {
	rows, err := q.db.QueryContext(ctx, searchSuperstarsByNickname, arg.Pattern, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SearchSuperstarsByNicknameRow
	for rows.Next() {
		var i SearchSuperstarsByNicknameRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Slug, &i.PhotoUrl, &i.Nickname); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listSuperstarsWithPhoto = `
SELECT id, name, slug, photo_url
FROM superstars
WHERE photo_url IS NOT NULL AND photo_url <> ''
ORDER BY id
`

func (q *Queries) ListSuperstarsWithPhoto(ctx context.Context) ([]Superstar, error) {
	rows, err := q.db.QueryContext(ctx, listSuperstarsWithPhoto)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Superstar
	for rows.Next() {
		var i Superstar
		if err := rows.Scan(&i.ID, &i.Name, &i.Slug, &i.PhotoUrl); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listShowSeries = `
SELECT id, name, slug, logo_url
FROM show_series
ORDER BY name
`

func (q *Queries) ListShowSeries(ctx context.Context) ([]ShowSeries, error) {
	rows, err := q.db.QueryContext(ctx, listShowSeries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ShowSeries
	for rows.Next() {
		var i ShowSeries
		if err := rows.Scan(&i.ID, &i.Name, &i.Slug, &i.LogoUrl); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listMatchTypeUsage = `
SELECT mt.id, mt.name, mt.slug, COUNT(m.id) AS usage
FROM match_types mt
LEFT JOIN matches m ON m.match_type_id = mt.id
GROUP BY mt.id, mt.name, mt.slug
ORDER BY usage DESC, mt.name ASC
`

func (q *Queries) ListMatchTypeUsage(ctx context.Context) ([]ListMatchTypeUsageRow, error) {
	rows, err := q.db.QueryContext(ctx, listMatchTypeUsage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListMatchTypeUsageRow
	for rows.Next() {
		var i ListMatchTypeUsageRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Slug, &i.Usage); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countSuperstars = `SELECT COUNT(*) FROM superstars`

func (q *Queries) CountSuperstars(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countSuperstars)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countShows = `SELECT COUNT(*) FROM shows`

func (q *Queries) CountShows(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countShows)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countShowSeries = `SELECT COUNT(*) FROM show_series`

func (q *Queries) CountShowSeries(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countShowSeries)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countChampionships = `SELECT COUNT(*) FROM championships`

func (q *Queries) CountChampionships(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countChampionships)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countSegments = `SELECT COUNT(*) FROM segments`

func (q *Queries) CountSegments(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countSegments)
	var count int64
	err := row.Scan(&count)
	return count, err
}

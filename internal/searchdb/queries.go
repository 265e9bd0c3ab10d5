package searchdb

import (
	"context"
	"strings"
)

// StationRow is one autocomplete result for /api/stops.
type StationRow struct {
	Name      string
	City      string
	Country   string
	Lat       float64
	Lon       float64
	StopIDs   []string
	Operators []string
}

// CityRow is one autocomplete result for /api/cities.
type CityRow struct {
	Name         string
	Country      string
	StationCount int
	StopIDs      []string
}

const searchStationsByPrefix = `
SELECT
    s.name,
    s.city,
    s.country,
    s.lat,
    s.lon,
    s.stop_ids,
    s.operators
FROM
    stations_fts
    JOIN stations s ON s.id = stations_fts.rowid
WHERE
    stations_fts MATCH ?
ORDER BY
    bm25(stations_fts),
    s.rank
LIMIT
    ?
`

// SearchStations runs a prefix-tolerant full-text search over station names
// and cities.
func (c *Client) SearchStations(ctx context.Context, query string, limit int) ([]StationRow, error) {
	match := ftsPrefixQuery(query)
	if match == "" {
		return nil, nil
	}

	rows, err := c.DB.QueryContext(ctx, searchStationsByPrefix, match, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below

	var items []StationRow
	for rows.Next() {
		var r StationRow
		var stopIDs, operators string
		if err := rows.Scan(&r.Name, &r.City, &r.Country, &r.Lat, &r.Lon, &stopIDs, &operators); err != nil {
			return nil, err
		}
		r.StopIDs = splitList(stopIDs)
		r.Operators = splitList(operators)
		items = append(items, r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}

const searchCitiesByPrefix = `
SELECT
    c.name,
    c.country,
    c.station_count,
    c.stop_ids
FROM
    cities_fts
    JOIN cities c ON c.id = cities_fts.rowid
WHERE
    cities_fts MATCH ?
ORDER BY
    bm25(cities_fts),
    c.name
LIMIT
    ?
`

// SearchCities runs a prefix-tolerant full-text search over city groups.
func (c *Client) SearchCities(ctx context.Context, query string, limit int) ([]CityRow, error) {
	match := ftsPrefixQuery(query)
	if match == "" {
		return nil, nil
	}

	rows, err := c.DB.QueryContext(ctx, searchCitiesByPrefix, match, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // closing is also checked explicitly below

	var items []CityRow
	for rows.Next() {
		var r CityRow
		var stopIDs string
		if err := rows.Scan(&r.Name, &r.Country, &r.StationCount, &stopIDs); err != nil {
			return nil, err
		}
		r.StopIDs = splitList(stopIDs)
		items = append(items, r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return items, rows.Err()
}

// ftsPrefixQuery quotes each user token and marks the last one as a prefix,
// so partial words match while FTS operators in the input stay inert.
func ftsPrefixQuery(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, ``) + `"`
	}
	quoted[len(quoted)-1] += "*"
	return strings.Join(quoted, " ")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}

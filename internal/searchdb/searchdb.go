// Package searchdb holds the SQLite autocomplete index behind /api/stops
// and /api/cities. The offline build writes it; the API opens it read-only.
//
// The FTS5 virtual tables are hand-written SQL: no query generator handles
// CREATE VIRTUAL TABLE ... USING fts5() syntax.
package searchdb

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // pure Go SQLite driver with FTS5 support

	"github.com/TrainNomad/raptor-backend/internal/artifact"
)

const schema = `
CREATE TABLE IF NOT EXISTS stations (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    city TEXT NOT NULL,
    country TEXT NOT NULL,
    lat REAL NOT NULL,
    lon REAL NOT NULL,
    stop_ids TEXT NOT NULL,
    operators TEXT NOT NULL,
    rank INTEGER NOT NULL
);

CREATE VIRTUAL TABLE IF NOT EXISTS stations_fts USING fts5(
    name, city,
    content='stations', content_rowid='id',
    tokenize='unicode61 remove_diacritics 2'
);

CREATE TABLE IF NOT EXISTS cities (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    country TEXT NOT NULL,
    station_count INTEGER NOT NULL,
    stop_ids TEXT NOT NULL
);

CREATE VIRTUAL TABLE IF NOT EXISTS cities_fts USING fts5(
    name,
    content='cities', content_rowid='id',
    tokenize='unicode61 remove_diacritics 2'
);
`

// Client wraps the autocomplete database.
type Client struct {
	DB *sql.DB
}

// Open opens an existing autocomplete database.
func Open(path string) (*Client, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening search db: %w", err)
	}
	return &Client{DB: db}, nil
}

// Create opens (or creates) the database at path and installs the schema.
func Create(path string) (*Client, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("creating search db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("installing search db schema: %w", err)
	}
	return &Client{DB: db}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// Populate fills the station and city tables from the station index. The
// station list is already sorted by operator presence, so the row id doubles
// as the rank used for tie-breaking.
func (c *Client) Populate(ctx context.Context, stations []artifact.Station) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // commit path returns first

	if _, err := tx.ExecContext(ctx, `DELETE FROM stations`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM stations_fts`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cities`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cities_fts`); err != nil {
		return err
	}

	type cityAgg struct {
		country  string
		stations int
		stopIDs  []string
	}
	cityByKey := map[string]*cityAgg{}

	for i, st := range stations {
		id := int64(i + 1)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO stations (id, name, city, country, lat, lon, stop_ids, operators, rank)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, st.DisplayName, st.City, st.Country, st.Lat, st.Lon,
			strings.Join(st.MemberStopIDs, ";"), strings.Join(st.Operators, ";"), i,
		)
		if err != nil {
			return fmt.Errorf("inserting station %q: %w", st.DisplayName, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO stations_fts (rowid, name, city) VALUES (?, ?, ?)`,
			id, st.DisplayName, st.City,
		)
		if err != nil {
			return fmt.Errorf("indexing station %q: %w", st.DisplayName, err)
		}

		if st.City == "" {
			continue
		}
		key := strings.ToLower(st.City) + "|" + st.Country
		agg := cityByKey[key]
		if agg == nil {
			agg = &cityAgg{country: st.Country}
			cityByKey[key] = agg
		}
		agg.stations++
		agg.stopIDs = append(agg.stopIDs, st.MemberStopIDs...)
	}

	keys := make([]string, 0, len(cityByKey))
	for key := range cityByKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	id := int64(0)
	for _, key := range keys {
		agg := cityByKey[key]
		if agg.stations < 2 {
			continue
		}
		id++
		name := strings.SplitN(key, "|", 2)[0]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cities (id, name, country, station_count, stop_ids) VALUES (?, ?, ?, ?, ?)`,
			id, name, agg.country, agg.stations, strings.Join(agg.stopIDs, ";"),
		); err != nil {
			return fmt.Errorf("inserting city %q: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cities_fts (rowid, name) VALUES (?, ?)`,
			id, name,
		); err != nil {
			return fmt.Errorf("indexing city %q: %w", name, err)
		}
	}

	return tx.Commit()
}

package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes every artifact of the bundle into dir, creating it if needed.
func Save(dir string, b *Bundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}

	files := []struct {
		name string
		data any
	}{
		{StopsFile, b.Stops},
		{RoutesInfoFile, b.RoutesInfo},
		{RoutesByStopFile, b.RoutesByStop},
		{RouteStopsFile, b.RouteStops},
		{RouteTripsFile, b.RouteTrips},
		{CalendarIndexFile, b.CalendarIndex},
		{TransferIndexFile, b.Transfers},
		{StationsFile, b.Stations},
		{MetaFile, b.Meta},
	}
	for _, f := range files {
		if err := writeJSON(filepath.Join(dir, f.name), f.data); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the full artifact set from dir. A missing or unreadable
// artifact is an error; the query engine cannot start without all of them.
func Load(dir string) (*Bundle, error) {
	b := &Bundle{}

	if err := readJSON(filepath.Join(dir, StopsFile), &b.Stops); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, RoutesInfoFile), &b.RoutesInfo); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, RoutesByStopFile), &b.RoutesByStop); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, RouteStopsFile), &b.RouteStops); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, RouteTripsFile), &b.RouteTrips); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, CalendarIndexFile), &b.CalendarIndex); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, TransferIndexFile), &b.Transfers); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, StationsFile), &b.Stations); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, MetaFile), &b.Meta); err != nil {
		return nil, err
	}

	return b, nil
}

func writeJSON(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	enc := json.NewEncoder(f)
	if err := enc.Encode(data); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening artifact %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("decoding artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}

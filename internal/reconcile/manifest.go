package reconcile

import (
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// ManifestStation is one row of the curated station manifest, built offline
// from the open-data operator-mapping CSV. StopIDs are operator-prefixed
// and separated by ';' in the file.
type ManifestStation struct {
	UIC     string  `csv:"uic"`
	Name    string  `csv:"name"`
	City    string  `csv:"city"`
	Country string  `csv:"country"`
	Lat     float64 `csv:"lat"`
	Lon     float64 `csv:"lon"`
	RawIDs  string  `csv:"stop_ids"`
}

// StopIDs splits the raw semicolon-separated member list.
func (m ManifestStation) StopIDs() []string {
	var out []string
	for _, id := range strings.Split(m.RawIDs, ";") {
		id = strings.TrimSpace(id)
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// LoadManifest reads the curated station manifest CSV. A missing manifest
// is not an error: reconciliation then relies on geography and names alone.
func LoadManifest(path string) ([]ManifestStation, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "opening station manifest")
	}
	defer f.Close()
	return ParseManifest(f)
}

// ParseManifest parses manifest rows from a reader.
func ParseManifest(r io.Reader) ([]ManifestStation, error) {
	var rows []ManifestStation
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "unmarshaling station manifest csv")
	}
	return rows, nil
}

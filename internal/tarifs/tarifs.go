// Package tarifs is the flat tariff product index: unit prices keyed by
// origin, destination, product, class and traveller profile. It is
// peripheral to the query engine and loaded read-only at startup.
package tarifs

import (
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

type tarifCSV struct {
	Origin      string  `csv:"origin"`
	Destination string  `csv:"destination"`
	Product     string  `csv:"product"`
	Class       string  `csv:"class"`
	Profile     string  `csv:"profile"`
	Price       float64 `csv:"price"`
	Currency    string  `csv:"currency"`
}

// Key identifies one tariff cell.
type Key struct {
	Origin      string
	Destination string
	Product     string
	Class       string
	Profile     string
}

// Price is one tariff cell value.
type Price struct {
	Amount   float64
	Currency string
}

// Index is the immutable product index.
type Index struct {
	prices map[Key]Price
}

// Load reads the tariff CSV. A missing file yields an empty index: tariff
// lookup then answers null prices rather than failing startup.
func Load(path string) (*Index, error) {
	idx := &Index{prices: map[Key]Price{}}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, errors.Wrap(err, "opening tarifs index")
	}
	defer f.Close()

	var rows []tarifCSV
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, errors.Wrap(err, "unmarshaling tarifs csv")
	}
	for _, r := range rows {
		idx.prices[normalizeKey(Key{r.Origin, r.Destination, r.Product, r.Class, r.Profile})] = Price{
			Amount:   r.Price,
			Currency: r.Currency,
		}
	}
	return idx, nil
}

// Lookup returns the price for a tariff cell, or false when the index holds
// no such cell.
func (idx *Index) Lookup(k Key) (Price, bool) {
	p, ok := idx.prices[normalizeKey(k)]
	return p, ok
}

// Len reports the number of indexed cells.
func (idx *Index) Len() int {
	return len(idx.prices)
}

func normalizeKey(k Key) Key {
	return Key{
		Origin:      strings.ToUpper(strings.TrimSpace(k.Origin)),
		Destination: strings.ToUpper(strings.TrimSpace(k.Destination)),
		Product:     strings.ToUpper(strings.TrimSpace(k.Product)),
		Class:       strings.ToUpper(strings.TrimSpace(k.Class)),
		Profile:     strings.ToUpper(strings.TrimSpace(k.Profile)),
	}
}

package models

import (
	"github.com/TrainNomad/raptor-backend/internal/tarifs"
)

// TarifsRequest is the POST /api/tarifs body: a batch of origin/destination
// pairs priced under one product, class and traveller profile.
type TarifsRequest struct {
	OD      []TarifsOD `json:"od"`
	Product string     `json:"product"`
	Class   string     `json:"class"`
	Profile string     `json:"profile"`
}

// TarifsOD is one origin/destination pair of a tariff batch.
type TarifsOD struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TarifModel is the priced result for one pair. Price is null when the index
// holds no cell for the pair.
type TarifModel struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Price    *float64 `json:"price"`
	Currency string   `json:"currency,omitempty"`
}

// NewTarifModels prices a tariff batch against the index.
func NewTarifModels(req TarifsRequest, idx *tarifs.Index) []TarifModel {
	out := make([]TarifModel, 0, len(req.OD))
	for _, od := range req.OD {
		m := TarifModel{From: od.From, To: od.To}
		p, ok := idx.Lookup(tarifs.Key{
			Origin:      od.From,
			Destination: od.To,
			Product:     req.Product,
			Class:       req.Class,
			Profile:     req.Profile,
		})
		if ok {
			amount := p.Amount
			m.Price = &amount
			m.Currency = p.Currency
		}
		out = append(out, m)
	}
	return out
}

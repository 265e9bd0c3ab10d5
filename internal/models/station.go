package models

import (
	"github.com/TrainNomad/raptor-backend/internal/searchdb"
)

// StationModel is one station autocomplete result.
type StationModel struct {
	Name      string   `json:"name"`
	City      string   `json:"city,omitempty"`
	Country   string   `json:"country,omitempty"`
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	StopIDs   []string `json:"stopIds"`
	Operators []string `json:"operators"`
}

// CityModel is one city-group autocomplete result.
type CityModel struct {
	Name         string   `json:"name"`
	Country      string   `json:"country,omitempty"`
	StationCount int      `json:"stationCount"`
	StopIDs      []string `json:"stopIds"`
}

// NewStationModels converts station search rows.
func NewStationModels(rows []searchdb.StationRow) []StationModel {
	out := make([]StationModel, 0, len(rows))
	for _, r := range rows {
		out = append(out, StationModel{
			Name:      r.Name,
			City:      r.City,
			Country:   r.Country,
			Lat:       r.Lat,
			Lon:       r.Lon,
			StopIDs:   r.StopIDs,
			Operators: r.Operators,
		})
	}
	return out
}

// NewCityModels converts city search rows.
func NewCityModels(rows []searchdb.CityRow) []CityModel {
	out := make([]CityModel, 0, len(rows))
	for _, r := range rows {
		out = append(out, CityModel{
			Name:         r.Name,
			Country:      r.Country,
			StationCount: r.StationCount,
			StopIDs:      r.StopIDs,
		})
	}
	return out
}

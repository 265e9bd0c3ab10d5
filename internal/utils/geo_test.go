package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name             string
		lat1, lon1       float64
		lat2, lon2       float64
		expectedMeters   float64
		toleranceMeters  float64
	}{
		{
			name: "Same point",
			lat1: 48.8443, lon1: 2.3744,
			lat2: 48.8443, lon2: 2.3744,
			expectedMeters: 0, toleranceMeters: 0.001,
		},
		{
			name: "Adjacent platforms",
			lat1: 48.8443, lon1: 2.3744,
			lat2: 48.8455, lon2: 2.3750,
			expectedMeters: 140, toleranceMeters: 15,
		},
		{
			name: "Paris to Lyon",
			lat1: 48.8443, lon1: 2.3744,
			lat2: 45.7605, lon2: 4.8596,
			expectedMeters: 391000, toleranceMeters: 2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expectedMeters, d, tt.toleranceMeters)
			assert.InDelta(t, d, Distance(tt.lat2, tt.lon2, tt.lat1, tt.lon1), 0.001, "distance is symmetric")
		})
	}
}

func TestCalculateBounds(t *testing.T) {
	bounds := CalculateBounds(48.8443, 2.3744, 300)

	assert.Less(t, bounds.MinLat, 48.8443)
	assert.Greater(t, bounds.MaxLat, 48.8443)
	assert.Less(t, bounds.MinLon, 2.3744)
	assert.Greater(t, bounds.MaxLon, 2.3744)

	// Every point within the radius must fall inside the box.
	corners := [][2]float64{
		{bounds.MinLat, 2.3744},
		{bounds.MaxLat, 2.3744},
		{48.8443, bounds.MinLon},
		{48.8443, bounds.MaxLon},
	}
	for _, c := range corners {
		assert.GreaterOrEqual(t, Distance(48.8443, 2.3744, c[0], c[1]), 299.0)
	}
}

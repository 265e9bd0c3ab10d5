package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeepRoute(t *testing.T) {
	tests := []struct {
		name      string
		operator  string
		routeType int
		shortName string
		keep      bool
	}{
		{
			name:      "SNCF rail kept",
			operator:  "SNCF",
			routeType: 2,
			shortName: "TGV",
			keep:      true,
		},
		{
			name:      "SNCF bus dropped",
			operator:  "SNCF",
			routeType: 3,
			shortName: "TGV",
			keep:      false,
		},
		{
			name:      "SNCF coach replacement dropped",
			operator:  "SNCF",
			routeType: 2,
			shortName: "CAR",
			keep:      false,
		},
		{
			name:      "SNCF shuttle dropped case-insensitively",
			operator:  "SNCF",
			routeType: 2,
			shortName: "navette",
			keep:      false,
		},
		{
			name:      "SNCF tram-train dropped",
			operator:  "SNCF",
			routeType: 0,
			shortName: "TRAMTRAIN",
			keep:      false,
		},
		{
			name:      "SNCB intercity kept",
			operator:  "SNCB",
			routeType: 2,
			shortName: "IC",
			keep:      true,
		},
		{
			name:      "SNCB nightjet kept",
			operator:  "SNCB",
			routeType: 2,
			shortName: "NJ",
			keep:      true,
		},
		{
			name:      "SNCB local dropped",
			operator:  "SNCB",
			routeType: 2,
			shortName: "L",
			keep:      false,
		},
		{
			name:      "Other operator bus dropped",
			operator:  "TI",
			routeType: 3,
			shortName: "FR",
			keep:      false,
		},
		{
			name:      "Other operator rail kept",
			operator:  "DB",
			routeType: 2,
			shortName: "ICE",
			keep:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keep, keepRoute(tt.operator, tt.routeType, tt.shortName))
		})
	}
}

package restapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrainNomad/raptor-backend/internal/models"
)

func TestSearchHandlerDirectJourney(t *testing.T) {
	api := newTestAPI(t)

	rec, env := serveRequest(t, api, http.MethodGet,
		"/api/search?from=SNCF:87686006&to=SNCF:87723197&time=07:00", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "OK", env.Text)
	assert.Equal(t, 2, env.Version)
	assert.Equal(t, testTime.UnixMilli(), env.CurrentTime)

	var journeys []models.JourneyModel
	decodeList(t, env, &journeys)
	require.Len(t, journeys, 1)

	j := journeys[0]
	assert.Equal(t, 7*3600, j.DepTime)
	assert.Equal(t, 9*3600, j.ArrTime)
	assert.Equal(t, 0, j.Transfers)
	assert.Equal(t, []string{"INOUI"}, j.TrainTypes)

	require.Len(t, j.Legs, 1)
	assert.Equal(t, "Paris Gare de Lyon", j.Legs[0].FromName)
	assert.Equal(t, "Lyon Part-Dieu", j.Legs[0].ToName)
	assert.Equal(t, "TGV", j.Legs[0].RouteName)
	assert.NotEmpty(t, j.Legs[0].Polyline)
}

func TestSearchHandlerResolvesStationNames(t *testing.T) {
	api := newTestAPI(t)

	rec, env := serveRequest(t, api, http.MethodGet,
		"/api/search?from=Paris+Gare+de+Lyon&to=Lyon+Part-Dieu&time=06:00", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var journeys []models.JourneyModel
	decodeList(t, env, &journeys)
	require.Len(t, journeys, 1)
	assert.Equal(t, "SNCF:87686006", journeys[0].Legs[0].FromID)
}

func TestSearchHandlerValidation(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		expectedText string
	}{
		{
			name:         "Missing from",
			target:       "/api/search?to=SNCF:87723197",
			expectedText: "from: is required",
		},
		{
			name:         "Missing both endpoints",
			target:       "/api/search",
			expectedText: "from: is required, to: is required",
		},
		{
			name:         "Bad time",
			target:       "/api/search?from=SNCF:87686006&to=SNCF:87723197&time=morning",
			expectedText: "time: must be HH:MM or HH:MM:SS",
		},
		{
			name:         "Limit out of range",
			target:       "/api/search?from=SNCF:87686006&to=SNCF:87723197&limit=0",
			expectedText: "limit: must be between 1 and 50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)

			rec, env := serveRequest(t, api, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 400, env.Code)
			assert.Equal(t, tt.expectedText, env.Text)
		})
	}
}

func TestSearchHandlerUnknownEndpointsYieldEmptyList(t *testing.T) {
	api := newTestAPI(t)

	rec, env := serveRequest(t, api, http.MethodGet,
		"/api/search?from=XX:nowhere&to=SNCF:87723197", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var journeys []models.JourneyModel
	decodeList(t, env, &journeys)
	assert.Empty(t, journeys)
}

func TestSearchHandlerEchoesCarte(t *testing.T) {
	api := newTestAPI(t)

	rec, env := serveRequest(t, api, http.MethodGet,
		"/api/search?from=SNCF:87686006&to=SNCF:87723197&carte=AVANTAGE", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Carte string `json:"carte"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "AVANTAGE", data.Carte)
}

func TestSearchHandlerAfterDepFilters(t *testing.T) {
	api := newTestAPI(t)

	// The only departure is 07:00 = 25200; after_dep at that second skips it.
	rec, env := serveRequest(t, api, http.MethodGet,
		"/api/search?from=SNCF:87686006&to=SNCF:87723197&after_dep=25200", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var journeys []models.JourneyModel
	decodeList(t, env, &journeys)
	assert.Empty(t, journeys)
}

func TestSearchHandlerTrainTypeFilter(t *testing.T) {
	api := newTestAPI(t)

	rec, env := serveRequest(t, api, http.MethodGet,
		"/api/search?from=SNCF:87686006&to=SNCF:87723197&train_types=TER", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var journeys []models.JourneyModel
	decodeList(t, env, &journeys)
	assert.Empty(t, journeys, "the only trip is INOUI")
}

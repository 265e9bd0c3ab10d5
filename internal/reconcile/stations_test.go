package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
	"github.com/TrainNomad/raptor-backend/internal/feed"
)

func findStation(t *testing.T, stations []artifact.Station, name string) artifact.Station {
	t.Helper()
	for _, s := range stations {
		if s.DisplayName == name {
			return s
		}
	}
	t.Fatalf("station %q not found", name)
	return artifact.Station{}
}

func TestBuildStationsManifestAssignsMembers(t *testing.T) {
	stops := map[string]artifact.Stop{
		"SNCF:87686006": {Name: "Paris Gare de Lyon", Operator: "SNCF", Lat: 48.844, Lon: 2.374},
		"TI:83001234":   {Name: "Paris Gare de Lyon", Operator: "TI", Lat: 48.845, Lon: 2.373},
	}
	manifest := []ManifestStation{
		{
			UIC:     "87686006",
			Name:    "Paris Gare de Lyon",
			City:    "Paris",
			Country: "FR",
			Lat:     48.8443,
			Lon:     2.3744,
			RawIDs:  "SNCF:87686006;TI:83001234;XX:unknown",
		},
	}

	stations := BuildStations(stops, nil, nil, manifest, nil)
	require.Len(t, stations, 1)

	st := stations[0]
	assert.Equal(t, "Paris Gare de Lyon", st.DisplayName)
	assert.Equal(t, "Paris", st.City)
	assert.Equal(t, "FR", st.Country)
	assert.Equal(t, []string{"SNCF:87686006", "TI:83001234"}, st.MemberStopIDs, "unknown manifest ids skipped")
	assert.Equal(t, []string{"SNCF", "TI"}, st.Operators)
	assert.InDelta(t, 48.8443, st.Lat, 1e-9, "manifest coords win over member mean")
}

func TestBuildStationsEurostarSlugJoinsManifestStation(t *testing.T) {
	stops := map[string]artifact.Stop{
		"SNCF:87271007": {Name: "Paris Nord", Operator: "SNCF"},
		"ES:paris_nord_3": {
			Name: "Paris Nord (Eurostar)", Operator: "ES",
		},
	}
	manifest := []ManifestStation{
		{Name: "Paris Nord", City: "Paris", Country: "FR", RawIDs: "SNCF:87271007"},
	}

	stations := BuildStations(stops, nil, nil, manifest, nil)
	require.Len(t, stations, 1)
	assert.ElementsMatch(t, []string{"ES:paris_nord_3", "SNCF:87271007"}, stations[0].MemberStopIDs)
}

func TestBuildStationsWhitelistRunsToFixpoint(t *testing.T) {
	stops := map[string]artifact.Stop{
		"SNCF:a": {Name: "Lille Europe", Operator: "SNCF"},
		"SNCF:b": {Name: "Lille Europe annexe", Operator: "SNCF"},
		"SNCF:c": {Name: "Lille Europe parvis", Operator: "SNCF"},
	}
	manifest := []ManifestStation{
		{Name: "Lille Europe", City: "Lille", Country: "FR", RawIDs: "SNCF:a"},
	}
	// b is only reachable through c: the chain needs a second pass.
	transfers := []feed.TransferPair{
		{From: "SNCF:c", To: "SNCF:b"},
		{From: "SNCF:a", To: "SNCF:c"},
	}

	stations := BuildStations(stops, nil, transfers, manifest, nil)
	require.Len(t, stations, 1)
	assert.ElementsMatch(t, []string{"SNCF:a", "SNCF:b", "SNCF:c"}, stations[0].MemberStopIDs)
}

func TestBuildStationsBlacklistBlocksWhitelistPair(t *testing.T) {
	stops := map[string]artifact.Stop{
		"SNCF:StopPoint:OCETrain TER-87113001": {Name: "Paris Est", Operator: "SNCF"},
		"ES:paris_nord_2":                      {Name: "Paris Nord", Operator: "ES"},
	}
	manifest := []ManifestStation{
		{Name: "Paris Est", City: "Paris", Country: "FR", RawIDs: "SNCF:StopPoint:OCETrain TER-87113001"},
	}
	transfers := []feed.TransferPair{
		{From: "SNCF:StopPoint:OCETrain TER-87113001", To: "ES:paris_nord_2"},
	}

	stations := BuildStations(stops, nil, transfers, manifest, nil)

	est := findStation(t, stations, "Paris Est")
	assert.Equal(t, []string{"SNCF:StopPoint:OCETrain TER-87113001"}, est.MemberStopIDs,
		"blacklisted pair must not pull paris_nord into Paris Est")
	require.Len(t, stations, 2, "the Eurostar stop forms its own orphan station")
}

func TestBlacklistMatchesIdentifiersAndNames(t *testing.T) {
	estByName := blacklistKey("SNCF:StopPoint:OCETrain TER-87113001", "Paris Est")
	nordBySlug := blacklistKey("ES:paris_nord_1", "")
	nordByName := blacklistKey("SNCF:StopPoint:OCETrain TER-87271007", "Paris Nord")
	lyon := blacklistKey("SNCF:87723197", "Lyon Part-Dieu")

	assert.True(t, blacklisted(estByName, nordBySlug), "name on one side, id slug on the other")
	assert.True(t, blacklisted(nordBySlug, estByName), "order-independent")
	assert.True(t, blacklisted(estByName, nordByName), "names on both sides")
	assert.False(t, blacklisted(estByName, lyon))
	assert.False(t, blacklisted(nordBySlug, nordByName), "both sides must match their fragment")
}

func TestBuildStationsParentFolding(t *testing.T) {
	stops := map[string]artifact.Stop{
		"SNCF:platform1": {Name: "Massy TGV", Operator: "SNCF"},
		"SNCF:platform2": {Name: "Massy TGV", Operator: "SNCF"},
	}
	parents := map[string]string{
		"SNCF:platform1": "SNCF:parent",
		"SNCF:platform2": "SNCF:parent",
	}

	stations := BuildStations(stops, parents, nil, nil, nil)
	require.Len(t, stations, 1)
	assert.ElementsMatch(t, []string{"SNCF:platform1", "SNCF:platform2"}, stations[0].MemberStopIDs)
}

func TestBuildStationsOrphanGroupingByName(t *testing.T) {
	stops := map[string]artifact.Stop{
		"SNCF:87123456-x": {Name: "Culmont-Chalindrey", Operator: "SNCF"},
		"TI:83999999":     {Name: "CULMONT CHALINDREY", Operator: "TI"},
		"DB:80111111":     {Name: "Berlin Hbf", Operator: "DB"},
	}

	stations := BuildStations(stops, nil, nil, nil, nil)
	require.Len(t, stations, 2)

	grouped := findStation(t, stations, "Berlin Hbf")
	assert.Equal(t, "DE", grouped.Country, "country inferred from UIC prefix")

	for _, s := range stations {
		if s.DisplayName != "Berlin Hbf" {
			assert.Len(t, s.MemberStopIDs, 2, "same normalized name grouped")
			assert.Equal(t, "FR", s.Country)
		}
	}
}

func TestBuildStationsFusesEurostarDuplicate(t *testing.T) {
	stops := map[string]artifact.Stop{
		"SNCF:87271007":   {Name: "Paris Nord", Operator: "SNCF"},
		"ES:gare-87271007": {Name: "Paris North", Operator: "ES"},
	}
	manifest := []ManifestStation{
		{Name: "Paris Nord", City: "Paris", Country: "FR", RawIDs: "SNCF:87271007"},
		{Name: "Paris North", City: "Paris", Country: "FR", RawIDs: "ES:gare-87271007"},
	}
	transfers := []feed.TransferPair{
		{From: "ES:gare-87271007", To: "SNCF:87271007"},
	}

	stations := BuildStations(stops, nil, transfers, manifest, nil)
	require.Len(t, stations, 1, "ES-only duplicate dropped")
	assert.Equal(t, "Paris Nord", stations[0].DisplayName)
	assert.ElementsMatch(t, []string{"ES:gare-87271007", "SNCF:87271007"}, stations[0].MemberStopIDs)
}

func TestStationsSortedByOperatorPresence(t *testing.T) {
	stops := map[string]artifact.Stop{
		"TI:83000001":   {Name: "Aosta", Operator: "TI"},
		"SNCF:87000001": {Name: "Zuydcoote", Operator: "SNCF"},
	}

	stations := BuildStations(stops, nil, nil, nil, nil)
	require.Len(t, stations, 2)
	// SNCF outranks TI despite the alphabetical order of names.
	assert.Equal(t, "Zuydcoote", stations[0].DisplayName)
	assert.Equal(t, "Aosta", stations[1].DisplayName)
}

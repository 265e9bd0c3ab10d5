package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrainNomad/raptor-backend/internal/appconf"
	"github.com/TrainNomad/raptor-backend/internal/artifact"
)

// writeFixtureArtifacts persists a minimal one-trip timetable and returns the
// data directory.
func writeFixtureArtifacts(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	bundle := &artifact.Bundle{
		Stops: map[string]artifact.Stop{
			"SNCF:stop-87686006": {Name: "Paris Gare de Lyon", Lat: 48.844, Lon: 2.374, Operator: "SNCF"},
			"SNCF:stop-87723197": {Name: "Lyon Part-Dieu", Lat: 45.760, Lon: 4.859, Operator: "SNCF"},
		},
		RoutesInfo: map[string]artifact.RouteInfo{
			"SNCF:route-1": {Short: "TGV 6601", Type: 2, Operator: "SNCF"},
		},
		RoutesByStop: map[string][]string{
			"SNCF:stop-87686006": {"SNCF:route-1"},
			"SNCF:stop-87723197": {"SNCF:route-1"},
		},
		RouteStops: map[string][]string{
			"SNCF:route-1": {"SNCF:stop-87686006", "SNCF:stop-87723197"},
		},
		RouteTrips: map[string][]artifact.Trip{
			"SNCF:route-1": {{
				TripID:             "SNCF:trip-1",
				ServiceID:          "SNCF:svc-1",
				Operator:           "SNCF",
				TrainType:          "INOUI",
				FirstDepartureTime: 7 * 3600,
				StopTimes: []artifact.StopTime{
					{StopID: "SNCF:stop-87686006", ArrivalTime: 7 * 3600, DepartureTime: 7 * 3600},
					{StopID: "SNCF:stop-87723197", ArrivalTime: 9 * 3600, DepartureTime: 9 * 3600},
				},
			}},
		},
		CalendarIndex: map[string][]string{
			"2025-01-10": {"SNCF:svc-1"},
		},
		Transfers: map[string][]artifact.TransferEntry{},
		Stations: []artifact.Station{
			{
				DisplayName:   "Paris Gare de Lyon",
				City:          "Paris",
				Country:       "FR",
				MemberStopIDs: []string{"SNCF:stop-87686006"},
				Operators:     []string{"SNCF"},
				Lat:           48.844,
				Lon:           2.374,
			},
		},
		Meta: artifact.Meta{
			SchemaVersion: artifact.SchemaVersion,
			Operators:     []string{"SNCF"},
			StopCount:     2,
			RouteCount:    1,
			TripCount:     1,
			StationCount:  1,
		},
	}
	require.NoError(t, artifact.Save(dir, bundle))
	return dir
}

func TestBuildApplication(t *testing.T) {
	cfg := appconf.Config{
		Port:      4000,
		Env:       appconf.Test,
		RateLimit: 100,
		DataPath:  writeFixtureArtifacts(t),
	}

	coreApp, err := BuildApplication(cfg)

	require.NoError(t, err, "BuildApplication should not return an error")
	assert.NotNil(t, coreApp, "Application should not be nil")
	assert.NotNil(t, coreApp.Logger, "Logger should be initialized")
	assert.NotNil(t, coreApp.Snapshot, "Snapshot should be initialized")
	assert.NotNil(t, coreApp.Tarifs, "Tariff index should be initialized")
	assert.Nil(t, coreApp.SearchDB, "SearchDB should be nil when not configured")
	assert.Equal(t, cfg, coreApp.Config, "Config should match input")
}

func TestBuildApplicationErrorHandling(t *testing.T) {
	t.Run("handles missing data path", func(t *testing.T) {
		cfg := appconf.Config{
			Port:      4000,
			Env:       appconf.Test,
			RateLimit: 100,
			DataPath:  "/nonexistent/path/to/data",
		}

		_, err := BuildApplication(cfg)
		assert.Error(t, err, "Should return error for missing artifacts")
		assert.Contains(t, err.Error(), "failed to load schedule artifacts")
	})
}

func TestCreateServer(t *testing.T) {
	cfg := appconf.Config{
		Port:      8080,
		Env:       appconf.Test,
		RateLimit: 100,
		DataPath:  writeFixtureArtifacts(t),
	}

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err, "BuildApplication should not fail")

	srv := CreateServer(coreApp, cfg)

	assert.NotNil(t, srv, "Server should not be nil")
	assert.Equal(t, ":8080", srv.Addr, "Server address should match port")
	assert.NotNil(t, srv.Handler, "Server handler should be set")
	assert.Equal(t, time.Minute, srv.IdleTimeout, "IdleTimeout should be 1 minute")
	assert.Equal(t, 5*time.Second, srv.ReadTimeout, "ReadTimeout should be 5 seconds")
	assert.Equal(t, 10*time.Second, srv.WriteTimeout, "WriteTimeout should be 10 seconds")
}

func TestCreateServerHandlerResponds(t *testing.T) {
	cfg := appconf.Config{
		Port:      8080,
		Env:       appconf.Test,
		RateLimit: 100,
		DataPath:  writeFixtureArtifacts(t),
	}

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err, "BuildApplication should not fail")

	srv := CreateServer(coreApp, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	w := httptest.NewRecorder()

	srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Handler should be configured and respond to requests")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"), "Request id should be assigned")
}

func TestServerShutsDownCleanly(t *testing.T) {
	cfg := appconf.Config{
		Port:      0,
		Env:       appconf.Test,
		RateLimit: 100,
		DataPath:  writeFixtureArtifacts(t),
	}

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err, "BuildApplication should not fail")

	srv := CreateServer(coreApp, cfg)

	done := make(chan error, 1)
	go func() {
		go func() {
			time.Sleep(50 * time.Millisecond)
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			done <- err
		} else {
			done <- nil
		}
	}()

	select {
	case err := <-done:
		assert.NoError(t, err, "Server should shutdown cleanly")
	case <-time.After(10 * time.Second):
		t.Fatal("Test timeout - server did not shutdown")
	}
}

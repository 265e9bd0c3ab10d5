package restapi

import (
	"net/http"

	"github.com/TrainNomad/raptor-backend/internal/engine"
	"github.com/TrainNomad/raptor-backend/internal/models"
)

// debugTripsHandler answers GET /api/debug/trips: the raw trips of one route,
// or of every route calling at one stop, optionally restricted to a date.
func (api *RestAPI) debugTripsHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	route := params.Get("route")
	stop := params.Get("stop")
	date := params.Get("date")

	if route == "" && stop == "" {
		fieldErrors := map[string][]string{
			"route": {"either route or stop is required"},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	var trips []engine.Journey
	if route != "" {
		trips = api.Snapshot.TripsForRoute(route, date)
	} else {
		for _, routeID := range api.Snapshot.Bundle.RoutesByStop[stop] {
			trips = append(trips, api.Snapshot.TripsForRoute(routeID, date)...)
		}
	}

	list := models.NewJourneyModels(trips, api.Snapshot)
	api.sendResponse(w, r, models.NewListResponse(list, api.Clock))
}

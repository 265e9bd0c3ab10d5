package restapi

import (
	"net/http"

	"github.com/TrainNomad/raptor-backend/internal/models"
	"github.com/TrainNomad/raptor-backend/internal/utils"
)

// searchStopsHandler answers GET /api/stops: prefix-tolerant full-text
// station autocomplete.
func (api *RestAPI) searchStopsHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	fieldErrors := map[string][]string{}

	query := params.Get("q")
	if query == "" {
		fieldErrors["q"] = append(fieldErrors["q"], "is required")
	}
	limit := utils.ParseIntParam(params, "limit", models.DefaultMaxCountForStops, fieldErrors)
	if limit < 1 || limit > models.MaxAllowedCount {
		fieldErrors["limit"] = append(fieldErrors["limit"], "must be between 1 and 50")
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if api.SearchDB == nil {
		api.sendResponse(w, r, models.NewListResponse([]models.StationModel{}, api.Clock))
		return
	}
	rows, err := api.SearchDB.SearchStations(r.Context(), query, limit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewListResponse(models.NewStationModels(rows), api.Clock))
}

// searchCitiesHandler answers GET /api/cities: autocomplete over city groups
// holding at least two stations.
func (api *RestAPI) searchCitiesHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	fieldErrors := map[string][]string{}

	query := params.Get("q")
	if query == "" {
		fieldErrors["q"] = append(fieldErrors["q"], "is required")
	}
	limit := utils.ParseIntParam(params, "limit", models.DefaultMaxCountForStops, fieldErrors)
	if limit < 1 || limit > models.MaxAllowedCount {
		fieldErrors["limit"] = append(fieldErrors["limit"], "must be between 1 and 50")
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if api.SearchDB == nil {
		api.sendResponse(w, r, models.NewListResponse([]models.CityModel{}, api.Clock))
		return
	}
	rows, err := api.SearchDB.SearchCities(r.Context(), query, limit)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewListResponse(models.NewCityModels(rows), api.Clock))
}

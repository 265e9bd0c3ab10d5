package restapi

import (
	"net/http"

	"github.com/TrainNomad/raptor-backend/internal/models"
	"github.com/TrainNomad/raptor-backend/internal/utils"
)

// exploreHandler answers GET /api/explore: the fastest journey to every stop
// reachable from the origins over a grid of departure hours.
func (api *RestAPI) exploreHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	fieldErrors := map[string][]string{}

	fromTokens := utils.ParseListParam(params, "from")
	if len(fromTokens) == 0 {
		fieldErrors["from"] = append(fieldErrors["from"], "is required")
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	results := api.Snapshot.Explore(api.resolveEndpoints(fromTokens), params.Get("date"))
	list := models.NewExploreModels(results, api.Snapshot)
	api.sendResponse(w, r, models.NewListResponse(list, api.Clock))
}

package restapi

import (
	"net/http"

	"github.com/TrainNomad/raptor-backend/internal/engine"
	"github.com/TrainNomad/raptor-backend/internal/models"
	"github.com/TrainNomad/raptor-backend/internal/utils"
)

// searchHandler answers GET /api/search. "from" and "to" accept comma lists
// of stop identifiers or station display names; unknown entries are dropped
// silently, and an all-unknown endpoint set yields an empty 200 result.
func (api *RestAPI) searchHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	fieldErrors := map[string][]string{}

	fromTokens := utils.ParseListParam(params, "from")
	toTokens := utils.ParseListParam(params, "to")
	if len(fromTokens) == 0 {
		fieldErrors["from"] = append(fieldErrors["from"], "is required")
	}
	if len(toTokens) == 0 {
		fieldErrors["to"] = append(fieldErrors["to"], "is required")
	}

	startTime := utils.ParseClockParam(params, "time", 0, fieldErrors)
	offset := utils.ParseIntParam(params, "offset", 0, fieldErrors)
	afterDep := utils.ParseIntParam(params, "after_dep", -1, fieldErrors)
	limit := utils.ParseIntParam(params, "limit", models.DefaultMaxCountForJourneys, fieldErrors)
	if limit < 1 || limit > models.MaxAllowedCount {
		fieldErrors["limit"] = append(fieldErrors["limit"], "must be between 1 and 50")
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	req := engine.SearchRequest{
		Origins:      api.resolveEndpoints(fromTokens),
		Destinations: api.resolveEndpoints(toTokens),
		StartTime:    startTime + offset,
		Date:         params.Get("date"),
		TrainTypes:   utils.ParseListParam(params, "train_types"),
		AfterDep:     afterDep,
	}

	journeys := api.Snapshot.Search(req)
	if len(journeys) > limit {
		journeys = journeys[:limit]
	}

	extras := map[string]interface{}{}
	if carte := params.Get("carte"); carte != "" {
		extras["carte"] = carte
	}
	list := models.NewJourneyModels(journeys, api.Snapshot)
	api.sendResponse(w, r, models.NewListResponseWithExtras(list, extras, api.Clock))
}

// resolveEndpoints maps each token to stop identifiers: a known stop id
// passes through, a station display name expands to its member stops, and
// anything else is dropped.
func (api *RestAPI) resolveEndpoints(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if api.Snapshot.KnownStop(tok) {
			out = append(out, tok)
			continue
		}
		out = append(out, api.Snapshot.StationStops(tok)...)
	}
	return out
}

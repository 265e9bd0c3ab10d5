package restapi

import (
	"encoding/json"
	"net/http"

	"github.com/TrainNomad/raptor-backend/internal/models"
)

// tarifsHandler answers POST /api/tarifs: batch unit-price lookup. Unknown
// pairs yield null prices, never errors.
func (api *RestAPI) tarifsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.TarifsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.errorResponse(w, r, http.StatusBadRequest, "body must be valid JSON")
		return
	}
	if len(req.OD) == 0 {
		api.errorResponse(w, r, http.StatusBadRequest, "od: must contain at least one pair")
		return
	}

	list := models.NewTarifModels(req, api.Tarifs)
	api.sendResponse(w, r, models.NewListResponse(list, api.Clock))
}

package restapi

import (
	"net/http"

	"github.com/TrainNomad/raptor-backend/internal/models"
)

// metaHandler answers GET /api/meta with the loaded build's metadata.
func (api *RestAPI) metaHandler(w http.ResponseWriter, r *http.Request) {
	entry := models.NewMetaModel(api.Snapshot.Bundle.Meta)
	api.sendResponse(w, r, models.NewEntryResponse(entry, api.Clock))
}

// healthHandler answers GET /healthz. It reports unhealthy until a snapshot
// is loaded.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if api.Snapshot == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`)) //nolint:errcheck
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}

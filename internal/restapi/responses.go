package restapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/TrainNomad/raptor-backend/internal/logging"
	"github.com/TrainNomad/raptor-backend/internal/models"
)

// sendResponse marshals the envelope and writes it with a JSON content type.
func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.Code)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.Logger, "failed to encode response", err, "path", r.URL.Path)
	}
}

// errorResponse writes a one-line JSON error in the standard envelope.
func (api *RestAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	api.sendResponse(w, r, models.NewResponse(status, nil, message, api.Clock))
}

// serverErrorResponse logs the error and answers 500 without leaking detail.
func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.Logger, "internal server error", err, "path", r.URL.Path, "method", r.Method)
	api.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
}

// validationErrorResponse collapses field errors into one 400 message line.
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	fields := make([]string, 0, len(fieldErrors))
	for name := range fieldErrors {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	var parts []string
	for _, name := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(fieldErrors[name], "; ")))
	}
	api.errorResponse(w, r, http.StatusBadRequest, strings.Join(parts, ", "))
}

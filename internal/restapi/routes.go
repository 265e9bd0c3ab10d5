package restapi

import (
	"net/http"
)

// withLimits chains rate limiting and compression in front of a handler.
func withLimits(api *RestAPI, finalHandler http.HandlerFunc) http.Handler {
	compressed := CompressionMiddleware(finalHandler)

	if api.rateLimiter != nil {
		return api.rateLimiter(compressed)
	}
	// Fallback for tests that don't use the NewRestAPI constructor.
	return compressed
}

// cached adds HTTP caching on top of the standard chain, for endpoints whose
// answers only change on a rebuild.
func cached(api *RestAPI, durationSeconds int, finalHandler http.HandlerFunc) http.Handler {
	return CacheControlMiddleware(durationSeconds, withLimits(api, finalHandler))
}

// SetRoutes registers all API endpoints with rate limiting and compression
// applied per route
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	// Health check endpoint - no rate limiting
	mux.HandleFunc("GET /healthz", api.healthHandler)
	mux.Handle("GET /metrics", MetricsHandler())

	mux.Handle("GET /api/search", withLimits(api, api.searchHandler))
	mux.Handle("GET /api/explore", withLimits(api, api.exploreHandler))
	mux.Handle("GET /api/stops", cached(api, 3600, api.searchStopsHandler))
	mux.Handle("GET /api/cities", cached(api, 3600, api.searchCitiesHandler))
	mux.Handle("GET /api/meta", cached(api, 3600, api.metaHandler))
	mux.Handle("GET /api/debug/trips", withLimits(api, api.debugTripsHandler))
	mux.Handle("POST /api/tarifs", withLimits(api, api.tarifsHandler))
}

// SetupAPIRoutes creates and configures the API router with the global
// middleware chain applied: request id -> metrics -> routes
func (api *RestAPI) SetupAPIRoutes() http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	return RequestIDMiddleware(MetricsMiddleware(mux))
}

package restapi

import (
	"fmt"
	"net/http"
)

// CacheControlMiddleware marks a route's JSON answers as cacheable for the
// given number of seconds. The endpoints whose payload only changes on an
// artifact rebuild (autocomplete, meta) sit behind it; a non-positive
// duration makes the route explicitly uncacheable instead.
func CacheControlMiddleware(durationSeconds int, next http.Handler) http.Handler {
	value := "no-cache, no-store, must-revalidate"
	if durationSeconds > 0 {
		value = fmt.Sprintf("public, max-age=%d", durationSeconds)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", value)
		next.ServeHTTP(w, r)
	})
}

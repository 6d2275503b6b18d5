package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyMiddleware rejects requests whose X-API-Key header does not match key.
// An empty key locks the routes entirely.
func APIKeyMiddleware(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-API-Key")
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				writeJSON(w, http.StatusUnauthorized, failure{Message: "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

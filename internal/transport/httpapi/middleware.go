package httpapi

import "net/http"

// requireAPIKey checks the X-API-KEY header against the configured
// shared secret. The secret is injected at process start; an empty
// secret disables the check for local development.
func requireAPIKey(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			key := req.Header.Get("X-API-KEY")
			if key == "" {
				writeJSON(w, http.StatusUnauthorized, envelope{
					Success: false,
					Message: "Access Denied: API Key required.",
				})
				return
			}
			if key != secret {
				writeJSON(w, http.StatusForbidden, envelope{
					Success: false,
					Message: "Access Denied: Invalid API Key.",
				})
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

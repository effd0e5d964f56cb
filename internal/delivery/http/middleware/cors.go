package middleware

import (
	"net/http"
	"slices"
	"strings"

	h "eventcoord/internal/delivery/http/helpers"
)

// Methods served by the router. Credentials are never allowed; tokens travel in Authorization.
var corsAllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}

const (
	corsAllowHeaders  = "Authorization, Content-Type, Accept, X-Request-Id"
	corsExposeHeaders = "X-Request-Id"
	corsMaxAge        = "600"
)

// CORS adds CORS headers for allowed origins. Preflights from other origins get 403 and
// preflights for a method the API does not serve get 405.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" {
			allowed[o] = struct{}{}
		}
	}
	methods := strings.Join(corsAllowMethods, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Origin")
			_, ok := allowed[origin]

			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
			if preflight {
				if !ok {
					h.WriteJSONError(w, r, http.StatusForbidden, h.ErrCodeForbidden, "origin not allowed")
					return
				}
				if !slices.Contains(corsAllowMethods, r.Header.Get("Access-Control-Request-Method")) {
					h.WriteJSONError(w, r, http.StatusMethodNotAllowed, h.ErrCodeBadRequest, "method not allowed")
					return
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
				w.Header().Set("Access-Control-Max-Age", corsMaxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Expose-Headers", corsExposeHeaders)
			}
			next.ServeHTTP(w, r)
		})
	}
}

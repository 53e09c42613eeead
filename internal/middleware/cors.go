package middleware

import (
	"net/http"
	"strings"
)

// allowedMethods is the API's whole method surface; nothing here serves
// PATCH or DELETE.
const allowedMethods = "GET, POST, PUT, OPTIONS"

// CORS grants cross-origin access to the configured origins and answers
// preflight requests directly. A "*" entry allows every origin, in which
// case no credentials grant is sent.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[strings.ToLower(origin)] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Add("Vary", "Origin")

			granted := false
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				granted = true
			} else if _, ok := allowed[strings.ToLower(origin)]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				granted = true
			}
			if granted {
				w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// Defaults cover the demo front-end: the API serves GET/POST/DELETE JSON
// endpoints and reads the request-id header for correlation.
var (
	defaultCORSMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	defaultCORSHeaders = []string{"Content-Type", "Authorization", RequestIDHeader}
)

// CORSConfig configures cross-origin access for browser clients of the
// activity API. Origins are matched exactly; there is no wildcard form.
type CORSConfig struct {
	AllowedOrigins   []string // empty disables CORS entirely
	AllowedMethods   []string // empty uses the service defaults
	AllowedHeaders   []string // empty uses the service defaults
	AllowCredentials bool
	MaxAge           int // preflight cache duration in seconds
}

// CORS returns middleware enforcing the configured origin allowlist.
// With no origins configured the middleware is inert, which is the
// same-origin deployment where the demo front-end is served by this
// process. A request from an unlisted origin is rejected with 403 before
// any handler runs; preflight OPTIONS requests are answered directly and
// never reach the mux.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = defaultCORSMethods
	}
	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = defaultCORSHeaders
	}
	methodList := strings.Join(methods, ", ")
	headerList := strings.Join(headers, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowed) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			origin := r.Header.Get("Origin")
			if origin == "" {
				// Same-origin request, nothing to negotiate.
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := allowed[origin]; !ok {
				http.Error(w, "Origin not allowed", http.StatusForbidden)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", methodList)
				h.Set("Access-Control-Allow-Headers", headerList)
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", maxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

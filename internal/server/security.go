package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the HTTP hardening applied to every endpoint.
type SecurityConfig struct {
	// EnableCORS enables cross-origin response headers.
	EnableCORS bool
	// AllowedOrigins lists the origins allowed by CORS. "*" matches any.
	AllowedOrigins []string
	// AllowedMethods lists the HTTP methods advertised in CORS responses.
	AllowedMethods []string
}

// DefaultSecurityConfig returns the configuration used by the metrics server:
// CORS open to any origin, read-only methods.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}
}

// SecurityMiddleware wraps a handler with standard security headers and CORS
// handling. OPTIONS preflight requests are answered directly with 204.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := matchOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// matchOrigin returns the CORS origin header value for the request origin.
// The wildcard matches even when the request carries no Origin header.
func matchOrigin(allowed []string, origin string) (string, bool) {
	for _, a := range allowed {
		if a == "*" {
			return "*", true
		}
		if origin != "" && a == origin {
			return a, true
		}
	}
	return "", false
}

package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/cors"
)

// withSecurityHeaders sets the static hardening headers on every response.
func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("X-Frame-Options", "DENY")
		header.Set("Referrer-Policy", "no-referrer")
		// media is embedded by the frontend from another origin
		header.Set("Cross-Origin-Resource-Policy", "cross-origin")
		next.ServeHTTP(w, r)
	})
}

// withCORS allows the configured origins, FrontendURL included.
func (h *Handler) withCORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{"Authorization", traceIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// withAttemptLimit counts requests per scope and client IP. Over the limit
// it answers 429 with Retry-After in whole seconds. A failing limiter lets
// the request through.
func (h *Handler) withAttemptLimit(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h.limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := scope + ":" + h.clientInfo(r).IPAddress
			allowed, retryAfter, err := h.limiter.Allow(r.Context(), key)
			if err != nil {
				h.logger.Warn().Err(err).Str("key", key).Msg("attempt limiter failed, request allowed")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				seconds := int((retryAfter + time.Second - 1) / time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
				writeError(w, r, ErrTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package stream

import (
	"net/http"
	"time"
)

// Option configures a Handler.
type Option func(*Handler)

// WithFrameInterval sets the pacing of the frame loop.
func WithFrameInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.interval = d
		}
	}
}

// WithWriteTimeout sets the per-message write deadline.
func WithWriteTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// WithAllowedOrigins restricts websocket upgrades to the given origins.
// A single "*" keeps the permissive default.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) {
		if len(origins) == 0 {
			return
		}
		for _, o := range origins {
			if o == "*" {
				return
			}
		}
		allowed := make(map[string]struct{}, len(origins))
		for _, o := range origins {
			allowed[o] = struct{}{}
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true // non-browser client
			}
			_, ok := allowed[origin]
			return ok
		}
	}
}

// Package chi implements a zerolog access-log middleware for chi routers.
package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/devportfolio/devportfolio/internal/logger"
)

// Config of the middleware.
type Config struct {
	// Config of the logger.
	Config logger.Log

	// CheckAliveURI for disabling logging of check alive http calls.
	CheckAliveURI string
}

// New creates a chi access logging middleware with the same fields as the
// fiber one.
func New(cfg Config) func(http.Handler) http.Handler {
	accessLogger := logger.NewAccessLogger(&cfg.Config)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			// do not log checkalive URI
			if cfg.Config.DisableCheckAlive && cfg.CheckAliveURI != "" && r.URL.Path == cfg.CheckAliveURI {
				return
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			event := accessLogger.Log().Str("IP", r.RemoteAddr).
				Int("status", status).
				Float64("X-Performance", time.Since(start).Seconds()).
				Str("URI", r.URL.RequestURI()).
				Str("method", r.Method).
				Str("host", r.Host).
				Int("bytes", ww.BytesWritten()).
				Str("X-Forwarded-For", r.Header.Get("X-Forwarded-For")).
				Str("User-Agent", r.UserAgent()).
				Str("Origin", r.Header.Get("Origin")).
				Str("Referer", r.Referer())

			if rid := middleware.GetReqID(r.Context()); rid != "" {
				event.Str("request_id", rid)
			}

			event.Send()
		})
	}
}

package gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// buildRouter constructs the chi mux with all routes wired.
func (g *Gateway) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(g.requestLogger)

	r.Get("/", handleIndex)
	r.Get("/health", g.handleHealth())
	r.Method(http.MethodGet, "/metrics", g.metrics.Handler())

	r.Group(func(r chi.Router) {
		if g.config.AuthToken != "" {
			r.Use(bearerAuth(g.config.AuthToken, g.metrics, g.logger))
		}
		r.Post("/api/message/send", g.handleSend())
	})

	return r
}

// requestLogger logs every request at debug level.
func (g *Gateway) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		g.logger.LogAttrs(r.Context(), slog.LevelDebug, "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

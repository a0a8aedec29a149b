package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clavis/keymapd/internal/logger"
)

// NewRouter builds the chi router exposing h's keymap inspection and
// edit endpoints under /api/v1/keymap.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ok(w, map[string]string{"service": "keymapd"})
	})

	r.Route("/api/v1/keymap", func(r chi.Router) {
		r.Get("/", h.GetKeymap)
		r.Post("/layers/{layer}/bindings/{position}", h.SetLayerBinding)
		r.Post("/save", h.SaveChanges)
		r.Post("/discard", h.DiscardChanges)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.Info("keymap api request completed",
			logger.RequestID(requestID),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

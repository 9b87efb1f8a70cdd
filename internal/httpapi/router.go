package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(handler *Handler, lg *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logRequests(lg))
	r.Use(middleware.Recoverer)

	r.Route("/carts", func(r chi.Router) {
		r.Post("/", handler.CreateCart)
		r.Route("/{ownerID}", func(r chi.Router) {
			r.Get("/", handler.GetCart)
			r.Delete("/", handler.DeleteCart)
			r.Post("/items", handler.AddItem)
			r.Delete("/items/{code}", handler.RemoveProduct)
			r.Delete("/positions/{position}", handler.RemoveAt)
		})
	})
	return r
}

// logRequests writes one access log line per request.
func logRequests(lg *zap.Logger) func(http.Handler) http.Handler {
	if lg == nil {
		lg = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			lg.Info("HTTP request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

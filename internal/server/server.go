// Package server exposes an exchange over HTTP/JSON.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rustyeddy/gbce/exchange"
)

type Server struct {
	ex     *exchange.Exchange
	calc   *exchange.Calculator
	window time.Duration
}

// New serves ex. window is the default volume-weighted price window when a
// request does not name one.
func New(ex *exchange.Exchange, window time.Duration) *Server {
	return &Server{ex: ex, calc: ex.Calculator(), window: window}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/stocks", func(r chi.Router) {
		r.Get("/", s.ListStocks)
		r.Post("/", s.AddStock)
		r.Route("/{symbol}", func(r chi.Router) {
			r.Get("/", s.GetStock)
			r.Get("/trades", s.ListTrades)
			r.Post("/trades", s.RecordTrade)
			r.Get("/yield", s.DividendYield)
			r.Get("/pe", s.PERatio)
			r.Get("/vwp", s.VolumeWeightedPrice)
			r.Get("/summary", s.Summary)
		})
	})
	r.Get("/trades", s.AllTrades)
	r.Get("/index", s.CompositeIndex)

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("http server listening", slog.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("requestID", middleware.GetReqID(r.Context())),
		)
	})
}

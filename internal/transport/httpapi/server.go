package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"bugtrack/internal/bootstrap/config"
	"bugtrack/internal/bootstrap/logging"
	"bugtrack/internal/errs"
	"bugtrack/internal/usecase/tracker"
)

// Server exposes the bug lifecycle over REST. Every handler catches
// its own errors at the boundary and converts them to a structured
// JSON response; nothing is allowed to crash the request process.
type Server struct {
	cfg config.ServerConfig
	svc *tracker.Service
}

func NewServer(cfg config.ServerConfig, svc *tracker.Service) *Server {
	return &Server{cfg: cfg, svc: svc}
}

// Handler builds the chi router with CORS, panic recovery, and the
// API-key check ahead of the bug routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	origins := make([]string, 0, 2)
	for _, part := range strings.Split(s.cfg.CORSOrigin, ",") {
		if origin := strings.TrimRight(strings.TrimSpace(part), "/"); origin != "" {
			origins = append(origins, origin)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-KEY"},
		MaxAge:         300,
	}))
	r.Use(recoverPanics)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Backend server is running!"))
	})

	r.Route("/api/bugs", func(r chi.Router) {
		r.Use(requireAPIKey(s.cfg.APIKey))
		r.Get("/", s.handleListBugs)
		r.Post("/", s.handleCreateBug)
		r.Get("/{id}", s.handleGetBug)
		r.Put("/{id}", s.handleUpdateBug)
		r.Delete("/{id}", s.handleDeleteBug)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, envelope{
			Success: false,
			Message: "Not Found - " + req.URL.Path,
		})
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "transport.httpapi"))

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return logCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info(logCtx, "api listening", slog.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errs.Wrap(err, "shutdown server")
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return errs.Wrap(err, "serve http")
		}
		return nil
	}
}

func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Error(req.Context(), "handler panic",
					slog.Any("panic", rec),
					slog.String("path", req.URL.Path),
				)
				writeUnexpectedError(w)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

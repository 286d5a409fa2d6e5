package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"blogstore/app/canister"
	"blogstore/app/middleware"
	"blogstore/app/repositories"
	"blogstore/app/services"
	"blogstore/config"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server hosts one canister behind the HTTP gateway.
type Server struct {
	cfg     config.Config
	logger  *slog.Logger
	db      *badger.DB
	runtime *Runtime
	http    *http.Server
}

// NewServer opens the checkpoint store, restores the last checkpoint and
// prepares the HTTP server.
func NewServer(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := repositories.OpenBadger(cfg.Storage.DataDir, cfg.Storage.InMemory)
	if err != nil {
		return nil, err
	}

	c := canister.New(canister.Options{
		Config:                  cfg.Store.Config,
		EnforceCommentOwnership: cfg.Store.EnforceCommentOwnership,
		Clock:                   services.SystemClock,
	})
	runtime := NewRuntime(c, repositories.NewBadgerCheckpoint(db), logger)
	if _, err := runtime.Recover(); err != nil {
		db.Close()
		return nil, err
	}

	s := &Server{cfg: cfg, logger: logger, db: db, runtime: runtime}
	s.http = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s, nil
}

// Handler builds the top-level router.
func (s *Server) Handler() http.Handler {
	gateway := NewGateway(s.runtime, s.cfg.Server.MaxBodyBytes, s.logger)

	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(s.logger))
	router.Use(middleware.Recoverer(s.logger))
	router.Use(middleware.CORS)
	router.Use(middleware.ContentTypeJSON)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	router.Handle("/rpc/{method}", NewRPCHandler(gateway)).Methods(http.MethodPost)
	router.PathPrefix("/").Handler(gateway)

	return router
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	var greeting string
	if err := s.runtime.Query(r.Context(), func(c *canister.Canister) {
		greeting = c.Greet("blogstore")
	}); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, `{"status":"ok","greeting":%q}`, greeting)
}

// Run serves until ctx is cancelled, then shuts down gracefully and closes
// the checkpoint store.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.db.Close()

	runtimeCtx, stopRuntime := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.runtime.Run(runtimeCtx)
	}()
	defer func() {
		stopRuntime()
		wg.Wait()
	}()

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("blogstore listening", "addr", ln.Addr().String())
		serveErr <- s.http.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// SPDX-License-Identifier: MIT

// Package api serves the config engine over HTTP. Routes mirror the CLI
// methods: list schemas, fetch one schema, read and write a server's config.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	xglog "github.com/ManuGH/gameconf/internal/log"
	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/ManuGH/gameconf/internal/store"
	"github.com/rs/zerolog"
)

// Config configures a Server.
type Config struct {
	ListenAddr string
	// Root confines every server_path; relative paths are resolved against it.
	Root    string
	Catalog *schema.Catalog
	Store   *store.Store

	// RateLimit is the number of API requests per RateWindow per client IP.
	// Zero disables limiting.
	RateLimit  int
	RateWindow time.Duration
}

// Server is the HTTP surface.
type Server struct {
	cfg        Config
	logger     zerolog.Logger
	httpServer *http.Server
}

// New validates cfg and builds the server.
func New(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("api: catalog is required")
	}
	if cfg.Root == "" {
		return nil, errors.New("api: root is required")
	}
	if cfg.Store == nil {
		cfg.Store = store.New(nil)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8090"
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}

	s := &Server{
		cfg:    cfg,
		logger: xglog.WithComponent("api"),
	}
	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.routes(),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return s, nil
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().
		Str(xglog.FieldEvent, "api.start").
		Str("addr", s.cfg.ListenAddr).
		Str("root", s.cfg.Root).
		Str(xglog.FieldDir, s.cfg.Catalog.Dir()).
		Msg("starting config api server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Str(xglog.FieldEvent, "api.shutdown").Msg("shutting down config api server")
	return s.httpServer.Shutdown(ctx)
}

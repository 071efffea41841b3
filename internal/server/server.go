// Package server provides the HTTP API for the website cloner: scraping,
// stored-record retrieval, clone generation, and screenshot file serving.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/website-cloner/internal/clone"
	"github.com/jonathan/website-cloner/internal/llm"
	"github.com/jonathan/website-cloner/internal/scrape"
	"github.com/jonathan/website-cloner/internal/server/ratelimit"
	"github.com/jonathan/website-cloner/internal/store"
)

// Config holds server configuration.
type Config struct {
	Port           int
	AllowedOrigin  string
	ScreenshotsDir string
	PublicPrefix   string
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	store      store.Repository
	scraper    *scrape.Orchestrator
	builder    *clone.Builder
	llmClient  llm.Client
	limiter    *ratelimit.Limiter
	validate   *validator.Validate
	logger     *zap.Logger
}

// New creates a new server instance wired to its collaborators.
func New(cfg Config, repo store.Repository, scraper *scrape.Orchestrator, builder *clone.Builder, llmClient llm.Client) *Server {
	s := &Server{
		store:     repo,
		scraper:   scraper,
		builder:   builder,
		llmClient: llmClient,
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		validate:  validator.New(),
		logger:    zap.L(),
	}

	r := chi.NewRouter()
	r.Use(s.withRequestID)
	r.Use(s.withLogging)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Group(func(r chi.Router) {
		r.Use(s.withRateLimit)
		r.Post("/webscrape", s.handleWebscrape)
		r.Post("/clone-website", s.handleCloneWebsite)
	})

	r.Get("/scraped-data", s.handleScrapedData)
	r.Get("/health", s.handleHealth)

	// Screenshots are served from disk under the same path prefix that
	// scrape summaries report.
	r.Handle(cfg.PublicPrefix+"/*", http.StripPrefix(cfg.PublicPrefix+"/",
		http.FileServer(http.Dir(cfg.ScreenshotsDir))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // scrape holds the request open for fetch + screenshot
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the configured router.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until an interrupt or
// termination signal arrives, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.limiter.Stop()

	if err := s.llmClient.Close(); err != nil {
		s.logger.Warn("closing model client", zap.Error(err))
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing store", zap.Error(err))
	}

	s.logger.Info("server stopped")
	return nil
}

// jsonResponse writes a JSON response with the given status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/neezar-abd/nzardev/internal/api"
	"github.com/neezar-abd/nzardev/internal/content"
	"github.com/neezar-abd/nzardev/internal/docstore"
	"github.com/neezar-abd/nzardev/internal/guestbook"
	"github.com/neezar-abd/nzardev/internal/mailer"
	"github.com/neezar-abd/nzardev/internal/mcpserver"
	"github.com/neezar-abd/nzardev/internal/pages"
	"github.com/neezar-abd/nzardev/internal/sse"
	"github.com/neezar-abd/nzardev/internal/storage"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_root", cfg.Content.Root),
		slog.String("docstore_path", cfg.Docstore.Path),
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure content directories exist.
	for _, dir := range []string{cfg.Content.Root, cfg.Content.AssetsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	// Initialize file store over the content root.
	files, err := storage.NewFS(cfg.Content.Root)
	if err != nil {
		return fmt.Errorf("init content store: %w", err)
	}

	// Initialize document store.
	docs, err := docstore.Open(cfg.Docstore.Path)
	if err != nil {
		return fmt.Errorf("init docstore: %w", err)
	}
	defer docs.Close()

	// Domain services.
	contentSvc := content.NewService(files, docs, logger)
	guestbookSvc := guestbook.NewService(docs, logger, cfg.App.Development())
	if m := mailer.New(cfg.SMTP, logger); m.Enabled() {
		guestbookSvc.SetNotifier(m)
	}
	pagesSvc, err := pages.NewService(cfg.Content.PagesDir)
	if err != nil {
		return fmt.Errorf("init pages: %w", err)
	}

	// Seed engagement counters for existing content.
	contentSvc.EnsureAllInitialized(ctx)

	if app.mcpMode {
		logger.Info("Starting MCP server on stdio")
		return mcpserver.New(contentSvc, guestbookSvc).ServeStdio()
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	apiRouter := api.NewRouter(api.RouterDeps{
		Content:    contentSvc,
		Guestbook:  guestbookSvc,
		Pages:      pagesSvc,
		Events:     broker,
		SSEHandler: broker,
		AssetsDir:  cfg.Content.AssetsDir,
		Gate: api.GateConfig{
			SiteOrigin:  cfg.Auth.SiteOrigin,
			GateToken:   cfg.Auth.GateToken,
			AdminToken:  cfg.Auth.AdminToken,
			Development: cfg.App.Development(),
			Disabled:    !cfg.Auth.Enabled(),
		},
		Ready: docs.Ping,
	})

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Mount("/", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the content root so counters follow files edited outside
	// the admin API.
	if cfg.Content.Watch {
		g.Go(func() error {
			err := contentSvc.Watch(gCtx, cfg.Content.Root, func(kind, slug string) {
				broker.PublishPostEvent(kind, slug)
			})
			if err != nil {
				logger.Warn("content watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

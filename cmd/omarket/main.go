// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/omarket-go/internal/ai"
	"github.com/olegiv/omarket-go/internal/cache"
	"github.com/olegiv/omarket-go/internal/config"
	"github.com/olegiv/omarket-go/internal/engine"
	"github.com/olegiv/omarket-go/internal/handler"
	"github.com/olegiv/omarket-go/internal/imaging"
	"github.com/olegiv/omarket-go/internal/middleware"
	"github.com/olegiv/omarket-go/internal/scheduler"
	"github.com/olegiv/omarket-go/internal/session"
	"github.com/olegiv/omarket-go/internal/store"
	"github.com/olegiv/omarket-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "omarket - Digital goods storefront\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OMARKET_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OMARKET_ADMIN_EMAIL      Store owner email (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OMARKET_DB_PATH          SQLite database path (default: ./data/omarket.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OMARKET_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OMARKET_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OMARKET_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OMARKET_OPENAI_API_KEY   OpenAI key for pitches and price suggestions (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OMARKET_DO_SEED          Seed the demo catalog on first run (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("omarket %s\n", version.Info{
			Version:   appVersion,
			GitCommit: appGitCommit,
			BuildTime: appBuildTime,
		})
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting omarket",
		"version", appVersion,
		"commit", appGitCommit,
		"env", cfg.Env,
	)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	ctx := context.Background()
	snaps := store.NewSnapshots(db)

	if cfg.DoSeed {
		if err := store.Seed(ctx, snaps); err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
	}

	eng, err := engine.New(ctx, snaps, engine.Options{
		AdminEmail: cfg.AdminEmail,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.DefaultTTL = time.Duration(cfg.CacheTTL) * time.Second
	cacheCfg.MaxItems = cfg.CacheMaxSize
	if cfg.UseRedisCache() {
		cacheCfg.Type = "redis"
		cacheCfg.RedisURL = cfg.RedisURL
		cacheCfg.Prefix = cfg.CachePrefix
	}
	appCache, err := cache.New(cacheCfg)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() { _ = appCache.Close() }()
	slog.Info("cache initialized", "type", cacheCfg.Type)

	generator := ai.New(ai.Options{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.AIModel,
		Cache:  appCache,
		Logger: logger,
	})
	if generator.Enabled() {
		slog.Info("AI generation enabled")
	} else {
		slog.Info("AI generation disabled, serving fallbacks")
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	maintenance := scheduler.New(db, logger)
	if err := maintenance.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer maintenance.Stop()

	h := handler.New(handler.Options{
		Engine:   eng,
		AI:       generator,
		Sessions: sessionManager,
		Images:   imaging.NewProcessor(cfg.UploadsDir),
		Cache:    appCache,
		Logger:   logger,
		Version:  appVersion,
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.RateLimitByIP(10, 30))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadUser(sessionManager, eng))

	h.Routes(r)

	// Processed project images
	uploadsDir, err := filepath.Abs(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("resolving uploads directory: %w", err)
	}
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opencourse/coursegen/internal/ai"
	"github.com/opencourse/coursegen/internal/generator"
	"github.com/opencourse/coursegen/internal/library"
	"github.com/opencourse/coursegen/internal/platform/cache"
	"github.com/opencourse/coursegen/internal/platform/config"
	"github.com/opencourse/coursegen/internal/platform/database"
	"github.com/opencourse/coursegen/internal/prompt"
	"github.com/opencourse/coursegen/internal/search"
	"github.com/opencourse/coursegen/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv, cleanup, err := buildServer(ctx, cfg)
	if err != nil {
		slog.Error("failed to build server", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:        addr,
		Handler:     srv.Handler(),
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: generation responses and websocket streams
		// outlive any sensible fixed deadline.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func setupLogging(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// buildServer wires the whole pipeline from configuration. The returned
// cleanup closes any connections that were opened.
func buildServer(ctx context.Context, cfg *config.Config) (*server.Server, func(), error) {
	var closers []func()
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	router := ai.NewRouter()
	var serverOpts []server.Option
	if cfg.AI.Groq.APIKey != "" {
		var opts []ai.OpenAIOption
		if cfg.AI.Groq.Model != "" {
			opts = append(opts, ai.WithDefaultModel(cfg.AI.Groq.Model))
		}
		groq := ai.NewGroqProvider(cfg.AI.Groq.APIKey, opts...)
		router.Register("groq", groq)
		serverOpts = append(serverOpts, server.WithReadyCheck("groq", groq))
	}
	if cfg.AI.Gemini.APIKey != "" {
		gemini := ai.NewGoogleProvider(cfg.AI.Gemini.APIKey)
		router.Register("gemini", gemini)
	}

	prompts, err := prompt.NewStore(cfg.PromptDir)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("loading prompts: %w", err)
	}

	genOpts := []generator.Option{
		generator.WithUsage(ai.NewInMemoryUsage()),
	}

	var searcher search.Searcher
	if cfg.HasSearch() {
		searcher = search.NewGoogleClient(cfg.Search.APIKey, cfg.Search.EngineID)
		genOpts = append(genOpts, generator.WithSearcher(searcher))
	}
	var videos search.VideoSearcher
	if cfg.HasVideoSearch() {
		videos = search.NewYouTubeClient(cfg.Search.APIKey)
	}

	if searcher != nil || videos != nil {
		var enricherOpts []search.EnricherOption
		if cfg.Cache.URL != "" {
			// Cache failures are not fatal: enrichment just loses memoization.
			c, err := cache.New(ctx, cfg.Cache.URL)
			if err != nil {
				slog.Warn("cache unavailable, continuing without it", "error", err)
			} else {
				closers = append(closers, func() { c.Close() })
				ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
				enricherOpts = append(enricherOpts, search.WithCache(c, ttl))
				serverOpts = append(serverOpts, server.WithReadyCheck("cache", c))
			}
		}
		genOpts = append(genOpts, generator.WithEnricher(search.NewEnricher(searcher, videos, enricherOpts...)))
	}

	files, err := library.NewFileStore(cfg.Library.Dir)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("opening library: %w", err)
	}

	var records library.Store = library.NewMemoryStore()
	if cfg.Database.URL != "" {
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		closers = append(closers, db.Close)
		serverOpts = append(serverOpts, server.WithReadyCheck("database", db))

		records, err = library.NewPostgresStore(db.Pool)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("creating record store: %w", err)
		}
	}

	gen := generator.New(router, prompts, genOpts...)
	lib := library.New(files, records)
	return server.New(gen, lib, cfg.Generation, serverOpts...), cleanup, nil
}

// Package main contains the entrypoint for the Zulip chatbot gateway.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rasben/openai-zulip/internal/ai"
	"github.com/rasben/openai-zulip/internal/bot"
	"github.com/rasben/openai-zulip/internal/config"
	"github.com/rasben/openai-zulip/internal/database"
	"github.com/rasben/openai-zulip/internal/logger"
	"github.com/rasben/openai-zulip/internal/scheduler"
	"github.com/rasben/openai-zulip/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all application components (config, logger, db, ai
// client, engine, webhook server, scheduler), serves until the context is
// cancelled, and returns an exit code.
func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	client, err := ai.NewClient(ctx, cfg.AI, log)
	if err != nil {
		log.Error("Failed to initialize AI client", "error", err)
		return 1
	}

	gate := bot.NewGate(store, cfg.Consent, log)
	engine := bot.NewEngine(store, client, gate, cfg, log)

	fleet := bot.DefaultFleet()
	srv := server.New(engine, fleet, log)

	sched, err := scheduler.New(cfg.Scheduler, store, log)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	if err := sched.Start(); err != nil {
		log.Error("Failed to start scheduler", "error", err)
		return 1
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting webhook server", "addr", cfg.Server.Addr, "bots", len(fleet))
		if serveErr := httpServer.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if stopErr := sched.Stop(); stopErr != nil {
			log.Error("Scheduler shutdown failed", "error", stopErr)
		}
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Gateway stopped due to error", "error", err)
		return 1
	}

	log.Info("Gateway stopped gracefully.")
	return 0
}

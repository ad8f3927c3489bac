// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Command portal serves only the public portal, e.g. from a jsondb snapshot
// while the admin server owns the primary kvdb file.
package main

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

	"github.com/quixsi/glossa/internal/config"
	"github.com/quixsi/glossa/internal/db/backend"
	"github.com/quixsi/glossa/internal/portal"
	"github.com/quixsi/glossa/internal/resolver"
	"github.com/quixsi/glossa/internal/telemetry"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load(os.Args[0], os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	logger := slog.New(jsonHandler)
	slog.SetDefault(logger)
	logger.Info("log level set to", "log level", cfg.LogLevel.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPAddr != "" {
		shutdown, err := telemetry.SetupOTLP(ctx, cfg.OTLPAddr)
		if err != nil {
			logger.Error("setup otlp", "error", err)
			os.Exit(1)
		}
		defer shutdown()
	}

	database, err := backend.Open(cfg.DB)
	if err != nil {
		logger.Error("could not open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	res := resolver.New(database.PostStore, database.TermStore)
	srv := &http.Server{
		Addr:    cfg.PortalAddr,
		Handler: portal.NewPortal(logger, res, database.SubscriberStore).Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("start and listen", "address", cfg.PortalAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("failed to run server", "error", err)
		return
	}
	logger.Info("shutdown")
}

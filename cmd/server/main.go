// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/quixsi/glossa/internal/config"
	"github.com/quixsi/glossa/internal/db/backend"
	"github.com/quixsi/glossa/internal/metrics"
	"github.com/quixsi/glossa/internal/portal"
	"github.com/quixsi/glossa/internal/resolver"
	"github.com/quixsi/glossa/internal/seed"
	"github.com/quixsi/glossa/internal/server"
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

	if err := run(cfg, logger); err != nil {
		logger.Error("shutdown with error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("otlp/gRPC", "address", cfg.OTLPAddr, "service", cfg.ServiceName)
	if cfg.OTLPAddr != "" {
		shutdown, err := telemetry.SetupOTLP(ctx, cfg.OTLPAddr)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	database, err := backend.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
	}()
	logger.Info("database opened", "backend", database.Scheme)

	if cfg.Seed != "" {
		data, err := seed.Load(cfg.Seed)
		if err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		res, err := seed.Apply(ctx, database.PostStore, database.TermStore, data)
		if err != nil {
			return fmt.Errorf("apply seed: %w", err)
		}
		logger.Info("seed applied", "file", cfg.Seed, "posts", res.Posts, "terms", res.Terms, "skipped", res.Skipped)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	posts := m.PostStore(database.PostStore)
	terms := m.TermStore(database.TermStore)
	subs := m.SubscriberStore(database.SubscriberStore)
	res := resolver.New(posts, terms, resolver.WithMetrics(m), resolver.WithLogger(logger.WithGroup("resolver")))

	admin := &http.Server{
		Addr: cfg.Addr,
		Handler: server.NewServer(
			cfg.ServiceName,
			gin.Accounts{cfg.AdminUser: cfg.AdminPassword},
			promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
			posts,
			terms,
			subs,
			res,
		),
	}
	public := &http.Server{
		Addr:    cfg.PortalAddr,
		Handler: portal.NewPortal(logger.WithGroup("portal"), res, subs).Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	for name, srv := range map[string]*http.Server{"admin": admin, "portal": public} {
		g.Go(func() error {
			logger.Info("start and listen", "server", name, "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return errors.Join(admin.Shutdown(shutdownCtx), public.Shutdown(shutdownCtx))
	})
	return g.Wait()
}

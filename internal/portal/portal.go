// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package portal is the public, read-only side of the blog plus the
// newsletter signup.
package portal

import (
	"log/slog"
	"net/http"

	sloghttp "github.com/samber/slog-http"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/resolver"
)

type Portal struct {
	logger   *slog.Logger
	resolver *resolver.Resolver
	sStore   db.SubscriberStore
	routes   map[string]http.Handler
}

func NewPortal(
	logger *slog.Logger,
	res *resolver.Resolver,
	sStore db.SubscriberStore,
) *Portal {
	return &Portal{
		logger:   logger,
		resolver: res,
		sStore:   sStore,
	}
}

// Handler returns the portal routes wrapped in the access log middleware.
func (p *Portal) Handler() http.Handler {
	mux := http.NewServeMux()

	loggerMW := sloghttp.NewWithConfig(
		p.logger, sloghttp.Config{
			DefaultLevel:     slog.LevelInfo,
			ClientErrorLevel: slog.LevelWarn,
			ServerErrorLevel: slog.LevelError,
			WithUserAgent:    true,
			WithSpanID:       true,
			WithTraceID:      true,
		},
	)

	p.routes = p.addRoutes()
	registerRoutes(mux, p.routes)

	return sloghttp.Recovery(loggerMW(mux))
}

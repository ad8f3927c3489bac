// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package server is the admin API of the CMS. Everything below /admin is
// protected by basic auth.
package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/resolver"
)

func NewServer(
	serviceName string,
	accounts gin.Accounts,
	metrics http.Handler,
	pStore db.PostStore,
	tStore db.TermStore,
	sStore db.SubscriberStore,
	res *resolver.Resolver,
) *Server {
	s := &Server{
		logger:      slog.Default().WithGroup("http"),
		serviceName: serviceName,
		accounts:    accounts,
		metrics:     metrics,
		pStore:      pStore,
		tStore:      tStore,
		sStore:      sStore,
		resolver:    res,
	}
	s.mux = s.routes()
	return s
}

type Server struct {
	serviceName string
	logger      *slog.Logger
	accounts    gin.Accounts
	metrics     http.Handler
	pStore      db.PostStore
	tStore      db.TermStore
	sStore      db.SubscriberStore
	resolver    *resolver.Resolver

	mux *gin.Engine
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	mux := gin.New()
	mux.Use(
		sloggin.NewWithConfig(s.logger,
			sloggin.Config{
				DefaultLevel:     slog.LevelInfo,
				ClientErrorLevel: slog.LevelWarn,
				ServerErrorLevel: slog.LevelError,
			},
		),
		gin.Recovery(), otelgin.Middleware(s.serviceName), slogAddTraceAttributes,
	)

	if s.metrics != nil {
		mux.GET("/metrics", gin.WrapH(s.metrics))
	}

	adminArea := mux.Group("/admin")
	adminArea.Use(gin.BasicAuth(s.accounts))

	posts := NewPostHandler(s.pStore)
	adminArea.GET("/posts", posts.List)
	adminArea.POST("/posts", posts.Create)
	adminArea.GET("/posts/:slug/:lang", posts.Get)
	adminArea.PUT("/posts/:slug/:lang", posts.Update)
	adminArea.DELETE("/posts/:slug/:lang", posts.Delete)

	terms := NewTermHandler(s.tStore)
	adminArea.GET("/glossary", terms.List)
	adminArea.POST("/glossary", terms.Create)
	adminArea.GET("/glossary/:slug/:lang", terms.Get)
	adminArea.PUT("/glossary/:slug/:lang", terms.Update)
	adminArea.DELETE("/glossary/:slug/:lang", terms.Delete)

	subscribers := NewSubscriberHandler(s.sStore)
	adminArea.GET("/subscribers", subscribers.List)
	adminArea.DELETE("/subscribers/:id", subscribers.Delete)

	translations := NewTranslationHandler(s.resolver)
	adminArea.GET("/translations", translations.Coverage)

	mux.NoRoute(notFound)
	return mux
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
}

func slogAddTraceAttributes(c *gin.Context) {
	sloggin.AddCustomAttributes(c,
		slog.String("trace-id", trace.SpanFromContext(c.Request.Context()).SpanContext().TraceID().String()),
	)
	sloggin.AddCustomAttributes(c,
		slog.String("span-id", trace.SpanFromContext(c.Request.Context()).SpanContext().SpanID().String()),
	)
	c.Next()
}

// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
	"github.com/quixsi/glossa/internal/resolver"
)

func NewSubscriberHandler(sStore db.SubscriberStore) *SubscriberHandler {
	return &SubscriberHandler{
		sStore: sStore,
		logger: slog.Default().WithGroup("http"),
	}
}

type SubscriberHandler struct {
	sStore db.SubscriberStore
	logger *slog.Logger
}

func (s *SubscriberHandler) List(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "SubscriberHandler.List")
	defer span.End()

	subs, err := s.sStore.ListSubscribers(ctx)
	if err != nil {
		abort(ctx, c, s.logger, span, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (s *SubscriberHandler) Delete(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "SubscriberHandler.Delete")
	defer span.End()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abort(ctx, c, s.logger, span, fmt.Errorf("%w: subscriber id: %v", model.ErrInvalidArgument, err))
		return
	}
	if err := s.sStore.DeleteSubscriber(ctx, id); err != nil {
		abort(ctx, c, s.logger, span, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func NewTranslationHandler(res *resolver.Resolver) *TranslationHandler {
	return &TranslationHandler{
		resolver: res,
		logger:   slog.Default().WithGroup("http"),
	}
}

// TranslationHandler reports which records still lack an Italian variant.
type TranslationHandler struct {
	resolver *resolver.Resolver
	logger   *slog.Logger
}

func (t *TranslationHandler) Coverage(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "TranslationHandler.Coverage")
	defer span.End()

	report, err := t.resolver.Coverage(ctx)
	if err != nil {
		abort(ctx, c, t.logger, span, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

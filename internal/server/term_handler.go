// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
)

func NewTermHandler(tStore db.TermStore) *TermHandler {
	return &TermHandler{
		tStore: tStore,
		logger: slog.Default().WithGroup("http"),
	}
}

type TermHandler struct {
	tStore db.TermStore
	logger *slog.Logger
}

func (t *TermHandler) List(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "TermHandler.List")
	defer span.End()

	terms, err := t.tStore.ListTerms(ctx)
	if err != nil {
		abort(ctx, c, t.logger, span, err)
		return
	}
	c.JSON(http.StatusOK, terms)
}

func (t *TermHandler) Get(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "TermHandler.Get")
	defer span.End()

	slug, lang, err := keyParams(c)
	if err != nil {
		abort(ctx, c, t.logger, span, err)
		return
	}
	term, err := t.tStore.GetTerm(ctx, slug, lang)
	if err != nil {
		abort(ctx, c, t.logger, span, err)
		return
	}
	c.JSON(http.StatusOK, term)
}

func (t *TermHandler) Create(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "TermHandler.Create")
	defer span.End()

	var term model.GlossaryTerm
	if err := c.ShouldBindJSON(&term); err != nil {
		abort(ctx, c, t.logger, span, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err))
		return
	}
	if err := t.tStore.CreateTerm(ctx, term); err != nil {
		abort(ctx, c, t.logger, span, err)
		return
	}
	c.Header("Location", "/admin/glossary/"+term.Key().String())
	c.JSON(http.StatusCreated, term)
}

func (t *TermHandler) Update(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "TermHandler.Update")
	defer span.End()

	slug, lang, err := keyParams(c)
	if err != nil {
		abort(ctx, c, t.logger, span, err)
		return
	}
	var term model.GlossaryTerm
	if err := c.ShouldBindJSON(&term); err != nil {
		abort(ctx, c, t.logger, span, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err))
		return
	}
	if err := t.tStore.UpdateTerm(ctx, slug, lang, term); err != nil {
		abort(ctx, c, t.logger, span, err)
		return
	}
	c.JSON(http.StatusOK, term)
}

func (t *TermHandler) Delete(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "TermHandler.Delete")
	defer span.End()

	slug, lang, err := keyParams(c)
	if err != nil {
		abort(ctx, c, t.logger, span, err)
		return
	}
	if err := t.tStore.DeleteTerm(ctx, slug, lang); err != nil {
		abort(ctx, c, t.logger, span, err)
		return
	}
	c.Status(http.StatusNoContent)
}

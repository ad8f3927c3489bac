// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
)

func NewPostHandler(pStore db.PostStore) *PostHandler {
	return &PostHandler{
		pStore: pStore,
		logger: slog.Default().WithGroup("http"),
	}
}

// PostHandler exposes posts in their flat document form.
type PostHandler struct {
	pStore db.PostStore
	logger *slog.Logger
}

func (p *PostHandler) List(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PostHandler.List")
	defer span.End()

	posts, err := p.pStore.ListPosts(ctx)
	if err != nil {
		abort(ctx, c, p.logger, span, err)
		return
	}
	docs := make([]model.PostDocument, 0, len(posts))
	for _, post := range posts {
		docs = append(docs, post.Document())
	}
	c.JSON(http.StatusOK, docs)
}

func (p *PostHandler) Get(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PostHandler.Get")
	defer span.End()

	slug, lang, err := keyParams(c)
	if err != nil {
		abort(ctx, c, p.logger, span, err)
		return
	}
	post, err := p.pStore.GetPost(ctx, slug, lang)
	if err != nil {
		abort(ctx, c, p.logger, span, err)
		return
	}
	c.JSON(http.StatusOK, post.Document())
}

func (p *PostHandler) Create(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PostHandler.Create")
	defer span.End()

	post, err := bindPost(c)
	if err != nil {
		abort(ctx, c, p.logger, span, err)
		return
	}
	span.SetAttributes(attribute.String("key", post.Key().String()))
	if err := p.pStore.CreatePost(ctx, post); err != nil {
		abort(ctx, c, p.logger, span, err)
		return
	}
	c.Header("Location", "/admin/posts/"+post.Key().String())
	c.JSON(http.StatusCreated, post.Document())
}

func (p *PostHandler) Update(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PostHandler.Update")
	defer span.End()

	slug, lang, err := keyParams(c)
	if err != nil {
		abort(ctx, c, p.logger, span, err)
		return
	}
	post, err := bindPost(c)
	if err != nil {
		abort(ctx, c, p.logger, span, err)
		return
	}
	if err := p.pStore.UpdatePost(ctx, slug, lang, post); err != nil {
		abort(ctx, c, p.logger, span, err)
		return
	}
	c.JSON(http.StatusOK, post.Document())
}

func (p *PostHandler) Delete(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "PostHandler.Delete")
	defer span.End()

	slug, lang, err := keyParams(c)
	if err != nil {
		abort(ctx, c, p.logger, span, err)
		return
	}
	if err := p.pStore.DeletePost(ctx, slug, lang); err != nil {
		abort(ctx, c, p.logger, span, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindPost(c *gin.Context) (model.Post, error) {
	var doc model.PostDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}
	return doc.Post()
}

// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/model"
	"github.com/quixsi/glossa/internal/parser/form"
	"github.com/quixsi/glossa/internal/server"
)

func (p *Portal) listPosts(w http.ResponseWriter, r *http.Request) {
	var span trace.Span
	ctx := r.Context()
	ctx, span = tracer.Start(ctx, "Portal.listPosts")
	defer span.End()

	lang, ok := p.language(w, r)
	if !ok {
		return
	}
	views, err := p.resolver.ListPosts(ctx, lang)
	if err != nil {
		p.fail(ctx, w, span, err)
		return
	}
	p.writeJSON(ctx, w, http.StatusOK, views)
}

func (p *Portal) getPost(w http.ResponseWriter, r *http.Request) {
	var span trace.Span
	ctx := r.Context()
	ctx, span = tracer.Start(ctx, "Portal.getPost", trace.WithAttributes(attribute.String("slug", r.PathValue("slug"))))
	defer span.End()

	lang, ok := p.language(w, r)
	if !ok {
		return
	}
	view, ok, err := p.resolver.ResolvePost(ctx, r.PathValue("slug"), lang)
	if err != nil {
		p.fail(ctx, w, span, err)
		return
	}
	if !ok {
		p.notFound(w, r)
		return
	}
	p.writeJSON(ctx, w, http.StatusOK, view)
}

func (p *Portal) listTerms(w http.ResponseWriter, r *http.Request) {
	var span trace.Span
	ctx := r.Context()
	ctx, span = tracer.Start(ctx, "Portal.listTerms")
	defer span.End()

	lang, ok := p.language(w, r)
	if !ok {
		return
	}
	views, err := p.resolver.ListTerms(ctx, lang)
	if err != nil {
		p.fail(ctx, w, span, err)
		return
	}
	p.writeJSON(ctx, w, http.StatusOK, views)
}

func (p *Portal) getTerm(w http.ResponseWriter, r *http.Request) {
	var span trace.Span
	ctx := r.Context()
	ctx, span = tracer.Start(ctx, "Portal.getTerm", trace.WithAttributes(attribute.String("slug", r.PathValue("slug"))))
	defer span.End()

	lang, ok := p.language(w, r)
	if !ok {
		return
	}
	view, ok, err := p.resolver.ResolveTerm(ctx, r.PathValue("slug"), lang)
	if err != nil {
		p.fail(ctx, w, span, err)
		return
	}
	if !ok {
		p.notFound(w, r)
		return
	}
	p.writeJSON(ctx, w, http.StatusOK, view)
}

func (p *Portal) subscribe(w http.ResponseWriter, r *http.Request) {
	var span trace.Span
	ctx := r.Context()
	ctx, span = tracer.Start(ctx, "Portal.subscribe")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		p.fail(ctx, w, span, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err))
		return
	}
	var sub model.Subscriber
	if err := form.Unmarshal(r.PostForm, &sub); err != nil {
		p.fail(ctx, w, span, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err))
		return
	}
	id, err := p.sStore.CreateSubscriber(ctx, &sub)
	if err != nil {
		p.fail(ctx, w, span, err)
		return
	}
	p.writeJSON(ctx, w, http.StatusCreated, map[string]string{"id": id.String()})
}

// language accepts only the display languages. Anything else is a page
// that does not exist.
func (p *Portal) language(w http.ResponseWriter, r *http.Request) (model.Language, bool) {
	lang := model.Language(r.PathValue("lang"))
	if !lang.IsSingle() {
		p.notFound(w, r)
		return "", false
	}
	return lang, true
}

func (p *Portal) notFound(w http.ResponseWriter, r *http.Request) {
	p.writeJSON(r.Context(), w, http.StatusNotFound, errorBody{Code: "PAGE_NOT_FOUND", Message: "Page not found"})
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (p *Portal) fail(ctx context.Context, w http.ResponseWriter, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	status, code := server.StatusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		p.logger.ErrorContext(ctx, "request failed", "error", err)
		msg = http.StatusText(status)
	}
	p.writeJSON(ctx, w, status, errorBody{Code: code, Message: msg})
}

func (p *Portal) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		p.logger.ErrorContext(ctx, "failed to write response", "error", err)
	}
}

// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package resolver picks the language variant of a record a reader sees.
//
// Posts and glossary terms deliberately differ. A bilingual post is shown in
// either language, with empty Italian fields falling back to English, while
// a single-language post is only shown in its own language. Glossary terms
// never fall back: a missing Italian variant is reported as absent.
//
// Absence is a normal result (ok == false). Errors are only returned when
// the underlying store fails.
package resolver

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/metrics"
	"github.com/quixsi/glossa/internal/model"
)

type Resolver struct {
	posts   db.PostStore
	terms   db.TermStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Resolver)

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

func New(posts db.PostStore, terms db.TermStore, opts ...Option) *Resolver {
	r := &Resolver{
		posts:  posts,
		terms:  terms,
		logger: slog.Default().WithGroup("resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolvePost returns the post with slug as seen by a reader of lang.
func (r *Resolver) ResolvePost(ctx context.Context, slug string, lang model.Language) (model.PostView, bool, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Resolver.ResolvePost", trace.WithAttributes(
		attribute.String("slug", slug),
		attribute.String("language", lang.String()),
	))
	defer span.End()

	post, ok, err := r.lookupPost(ctx, slug, lang)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.PostView{}, false, err
	}
	r.resolved("post", lang, ok)
	if !ok {
		return model.PostView{}, false, nil
	}

	view, _ := postView(post, lang)
	for _, rel := range post.RelatedPosts {
		related, ok, err := r.lookupPost(ctx, rel, lang)
		if err != nil {
			r.logger.WarnContext(ctx, "skip unreadable related post", "slug", slug, "related", rel, "error", err)
			continue
		}
		if !ok {
			continue
		}
		content, _ := related.Body.Localized(lang)
		view.Related = append(view.Related, model.Link{Slug: rel, Title: content.Title})
	}
	return view, true, nil
}

// lookupPost prefers a bilingual record, then the exact single-language one.
func (r *Resolver) lookupPost(ctx context.Context, slug string, lang model.Language) (model.Post, bool, error) {
	if !lang.IsSingle() {
		return model.Post{}, false, nil
	}
	for _, candidate := range []model.Language{model.LanguageBoth, lang} {
		post, err := r.posts.GetPost(ctx, slug, candidate)
		if err == nil {
			return post, true, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return model.Post{}, false, err
		}
	}
	return model.Post{}, false, nil
}

// ListPosts returns every post readable in lang, newest first.
func (r *Resolver) ListPosts(ctx context.Context, lang model.Language) ([]model.PostView, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Resolver.ListPosts", trace.WithAttributes(attribute.String("language", lang.String())))
	defer span.End()

	views := make([]model.PostView, 0)
	if !lang.IsSingle() {
		return views, nil
	}
	posts, err := r.posts.ListPosts(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	titles := make(map[string]string, len(posts))
	readable := make([]model.Post, 0, len(posts))
	for _, post := range posts {
		content, ok := post.Body.Localized(lang)
		if !ok {
			continue
		}
		titles[post.Slug] = content.Title
		readable = append(readable, post)
	}
	for _, post := range readable {
		view, _ := postView(post, lang)
		view.Related = links(post.RelatedPosts, titles)
		views = append(views, view)
	}
	span.SetAttributes(attribute.Int("count", len(views)))
	return views, nil
}

// ResolveTerm returns the exact (slug, lang) term. There is no fallback to
// the other language.
func (r *Resolver) ResolveTerm(ctx context.Context, slug string, lang model.Language) (model.TermView, bool, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Resolver.ResolveTerm", trace.WithAttributes(
		attribute.String("slug", slug),
		attribute.String("language", lang.String()),
	))
	defer span.End()

	term, ok, err := r.lookupTerm(ctx, slug, lang)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.TermView{}, false, err
	}
	r.resolved("glossary", lang, ok)
	if !ok {
		return model.TermView{}, false, nil
	}

	view := termView(term)
	for _, rel := range term.RelatedTerms {
		related, ok, err := r.lookupTerm(ctx, rel, lang)
		if err != nil {
			r.logger.WarnContext(ctx, "skip unreadable related term", "slug", slug, "related", rel, "error", err)
			continue
		}
		if !ok {
			continue
		}
		view.Related = append(view.Related, model.Link{Slug: rel, Title: related.Term})
	}
	return view, true, nil
}

func (r *Resolver) lookupTerm(ctx context.Context, slug string, lang model.Language) (model.GlossaryTerm, bool, error) {
	if !lang.IsSingle() {
		return model.GlossaryTerm{}, false, nil
	}
	term, err := r.terms.GetTerm(ctx, slug, lang)
	switch {
	case err == nil:
		return term, true, nil
	case errors.Is(err, model.ErrNotFound):
		return model.GlossaryTerm{}, false, nil
	default:
		return model.GlossaryTerm{}, false, err
	}
}

// ListTerms returns the terms written in lang, alphabetically.
func (r *Resolver) ListTerms(ctx context.Context, lang model.Language) ([]model.TermView, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Resolver.ListTerms", trace.WithAttributes(attribute.String("language", lang.String())))
	defer span.End()

	views := make([]model.TermView, 0)
	terms, err := r.terms.ListTerms(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	names := make(map[string]string)
	for _, term := range terms {
		if term.Language == lang {
			names[term.Slug] = term.Term
		}
	}
	for _, term := range terms {
		if term.Language != lang {
			continue
		}
		view := termView(term)
		view.Related = links(term.RelatedTerms, names)
		views = append(views, view)
	}
	return views, nil
}

func (r *Resolver) resolved(kind string, lang model.Language, found bool) {
	if r.metrics != nil {
		r.metrics.Resolved(kind, lang, found)
	}
}

func postView(post model.Post, lang model.Language) (model.PostView, bool) {
	content, ok := post.Body.Localized(lang)
	if !ok {
		return model.PostView{}, false
	}
	return model.PostView{
		Slug:       post.Slug,
		Language:   lang,
		Title:      content.Title,
		Excerpt:    content.Excerpt,
		Content:    content.Content,
		Tags:       nonNil(content.Tags),
		Date:       post.Date,
		Author:     post.Author,
		CoverImage: post.CoverImage,
		Related:    make([]model.Link, 0),
	}, true
}

func termView(term model.GlossaryTerm) model.TermView {
	return model.TermView{
		Slug:          term.Slug,
		Language:      term.Language,
		Term:          term.Term,
		Category:      term.Category,
		Pronunciation: term.Pronunciation,
		Definition:    term.Definition,
		Explanation:   term.Explanation,
		Examples:      nonNil(term.Examples),
		Etymology:     term.Etymology,
		Related:       make([]model.Link, 0),
	}
}

// links keeps the slugs present in titles, in their original order.
func links(slugs []string, titles map[string]string) []model.Link {
	res := make([]model.Link, 0, len(slugs))
	for _, slug := range slugs {
		if title, ok := titles[slug]; ok {
			res = append(res, model.Link{Slug: slug, Title: title})
		}
	}
	return res
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

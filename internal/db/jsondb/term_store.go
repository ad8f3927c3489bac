// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
)

func NewTermStore(filename string) (*TermStore, error) {
	store := &TermStore{
		filename: filename,
		terms:    make(map[string]model.GlossaryTerm),
	}
	if err := loadFromFile(filename, &store.terms); err != nil {
		return nil, err
	}
	if store.terms == nil {
		return nil, fmt.Errorf("%w: %s: not a term map", model.ErrCorruption, filename)
	}
	for k, term := range store.terms {
		if k != term.Key().String() {
			return nil, fmt.Errorf("%w: %s: term %s stored under %q", model.ErrCorruption, filename, term.Key(), k)
		}
	}
	return store, nil
}

type TermStore struct {
	mu sync.RWMutex

	filename string
	terms    map[string]model.GlossaryTerm
}

func (t *TermStore) ListTerms(ctx context.Context) ([]model.GlossaryTerm, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListTerms")
	defer span.End()

	span.AddEvent("RLock")
	t.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer t.mu.RUnlock()

	res := make([]model.GlossaryTerm, 0, len(t.terms))
	for _, term := range t.terms {
		res = append(res, term.Clone())
	}
	db.SortTerms(res)
	return res, nil
}

func (t *TermStore) GetTerm(ctx context.Context, slug string, lang model.Language) (model.GlossaryTerm, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetTerm", keyAttributes(slug, lang))
	defer span.End()

	span.AddEvent("RLock")
	t.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer t.mu.RUnlock()

	key := model.Key{Slug: slug, Language: lang}
	term, ok := t.terms[key.String()]
	if !ok {
		return model.GlossaryTerm{}, fail(span, fmt.Errorf("term %s: %w", key, model.ErrNotFound))
	}
	return term.Clone(), nil
}

func (t *TermStore) CreateTerm(ctx context.Context, term model.GlossaryTerm) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateTerm", keyAttributes(term.Slug, term.Language))
	defer span.End()

	if err := term.Validate(); err != nil {
		return fail(span, err)
	}

	span.AddEvent("Lock")
	t.mu.Lock()
	defer span.AddEvent("Unlock")
	defer t.mu.Unlock()

	key := term.Key().String()
	if _, ok := t.terms[key]; ok {
		return fail(span, fmt.Errorf("term %s: %w", term.Key(), model.ErrConflict))
	}
	t.terms[key] = term.Clone()
	if err := saveToFile(ctx, t.filename, t.terms); err != nil {
		delete(t.terms, key)
		return fail(span, err)
	}
	return nil
}

func (t *TermStore) UpdateTerm(ctx context.Context, slug string, lang model.Language, term model.GlossaryTerm) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "UpdateTerm", keyAttributes(slug, lang))
	defer span.End()

	if err := db.CheckKey(slug, lang, term.Key()); err != nil {
		return fail(span, err)
	}
	if err := term.Validate(); err != nil {
		return fail(span, err)
	}

	span.AddEvent("Lock")
	t.mu.Lock()
	defer span.AddEvent("Unlock")
	defer t.mu.Unlock()

	key := term.Key().String()
	prev, ok := t.terms[key]
	if !ok {
		return fail(span, fmt.Errorf("term %s: %w", term.Key(), model.ErrNotFound))
	}
	t.terms[key] = term.Clone()
	if err := saveToFile(ctx, t.filename, t.terms); err != nil {
		t.terms[key] = prev
		return fail(span, err)
	}
	return nil
}

func (t *TermStore) DeleteTerm(ctx context.Context, slug string, lang model.Language) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "DeleteTerm", keyAttributes(slug, lang))
	defer span.End()

	span.AddEvent("Lock")
	t.mu.Lock()
	defer span.AddEvent("Unlock")
	defer t.mu.Unlock()

	key := model.Key{Slug: slug, Language: lang}
	prev, ok := t.terms[key.String()]
	if !ok {
		return fail(span, fmt.Errorf("term %s: %w", key, model.ErrNotFound))
	}
	delete(t.terms, key.String())
	if err := saveToFile(ctx, t.filename, t.terms); err != nil {
		t.terms[key.String()] = prev
		return fail(span, err)
	}
	return nil
}

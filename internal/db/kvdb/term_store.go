// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
)

const bucketTerm = "glossary_store"

func NewTermStore(bdb *bolt.DB) (*TermStore, error) {
	return &TermStore{db: bdb}, bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketTerm))
		return err
	})
}

type TermStore struct {
	db *bolt.DB
}

func (t *TermStore) ListTerms(ctx context.Context) ([]model.GlossaryTerm, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListTerms")
	defer span.End()

	span.AddEvent("View bucket")
	terms := make([]model.GlossaryTerm, 0)
	err := t.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTerm)).ForEach(func(k, v []byte) error {
			var term model.GlossaryTerm
			if err := json.Unmarshal(v, &term); err != nil {
				return fmt.Errorf("%w: term %s: %v", model.ErrCorruption, k, err)
			}
			if term.Key().String() != string(k) {
				return fmt.Errorf("%w: term %s stored under %q", model.ErrCorruption, term.Key(), k)
			}
			terms = append(terms, term)
			return nil
		})
	})
	if err != nil {
		return nil, fail(span, err)
	}
	db.SortTerms(terms)
	span.SetAttributes(attribute.Int("count", len(terms)))
	return terms, nil
}

func (t *TermStore) GetTerm(ctx context.Context, slug string, lang model.Language) (model.GlossaryTerm, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetTerm", keyAttributes(slug, lang))
	defer span.End()

	key := model.Key{Slug: slug, Language: lang}
	var term model.GlossaryTerm
	err := t.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketTerm)).Get(key.Bytes())
		if res == nil {
			return fmt.Errorf("term %s: %w", key, model.ErrNotFound)
		}
		if err := json.Unmarshal(res, &term); err != nil {
			return fmt.Errorf("%w: term %s: %v", model.ErrCorruption, key, err)
		}
		if term.Key() != key {
			return fmt.Errorf("%w: term %s stored under %q", model.ErrCorruption, term.Key(), key)
		}
		return nil
	})
	if err != nil {
		return model.GlossaryTerm{}, fail(span, err)
	}
	return term, nil
}

func (t *TermStore) CreateTerm(ctx context.Context, term model.GlossaryTerm) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateTerm", keyAttributes(term.Slug, term.Language))
	defer span.End()

	if err := term.Validate(); err != nil {
		return fail(span, err)
	}
	j, err := json.Marshal(term)
	if err != nil {
		return fail(span, fmt.Errorf("convert term to json: %w", err))
	}

	span.AddEvent("Update bucket")
	return fail(span, t.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketTerm))
		key := term.Key()
		if bucket.Get(key.Bytes()) != nil {
			return fmt.Errorf("term %s: %w", key, model.ErrConflict)
		}
		return bucket.Put(key.Bytes(), j)
	}))
}

func (t *TermStore) UpdateTerm(ctx context.Context, slug string, lang model.Language, term model.GlossaryTerm) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "UpdateTerm", keyAttributes(slug, lang))
	defer span.End()

	if err := db.CheckKey(slug, lang, term.Key()); err != nil {
		return fail(span, err)
	}
	if err := term.Validate(); err != nil {
		return fail(span, err)
	}
	j, err := json.Marshal(term)
	if err != nil {
		return fail(span, fmt.Errorf("convert term to json: %w", err))
	}

	span.AddEvent("Update bucket")
	return fail(span, t.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketTerm))
		key := term.Key()
		if bucket.Get(key.Bytes()) == nil {
			return fmt.Errorf("term %s: %w", key, model.ErrNotFound)
		}
		return bucket.Put(key.Bytes(), j)
	}))
}

func (t *TermStore) DeleteTerm(ctx context.Context, slug string, lang model.Language) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "DeleteTerm", keyAttributes(slug, lang))
	defer span.End()

	key := model.Key{Slug: slug, Language: lang}
	span.AddEvent("Update bucket")
	return fail(span, t.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketTerm))
		if bucket.Get(key.Bytes()) == nil {
			return fmt.Errorf("term %s: %w", key, model.ErrNotFound)
		}
		return bucket.Delete(key.Bytes())
	}))
}

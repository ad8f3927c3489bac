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

// NewPostStore opens the post file. A file that does not parse, or whose
// entries are not stored under their own key, is refused.
func NewPostStore(filename string) (*PostStore, error) {
	store := &PostStore{
		filename: filename,
		posts:    make(map[string]model.Post),
	}
	if err := loadFromFile(filename, &store.posts); err != nil {
		return nil, err
	}
	if store.posts == nil {
		return nil, fmt.Errorf("%w: %s: not a post map", model.ErrCorruption, filename)
	}
	for k, post := range store.posts {
		if k != post.Key().String() {
			return nil, fmt.Errorf("%w: %s: post %s stored under %q", model.ErrCorruption, filename, post.Key(), k)
		}
	}
	return store, nil
}

// PostStore is a PostStore backed by a single JSON file. Writers are
// serialized by mu and the file is replaced atomically on every change.
type PostStore struct {
	mu sync.RWMutex

	filename string
	posts    map[string]model.Post
}

func (p *PostStore) ListPosts(ctx context.Context) ([]model.Post, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListPosts")
	defer span.End()

	span.AddEvent("RLock")
	p.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer p.mu.RUnlock()

	res := make([]model.Post, 0, len(p.posts))
	for _, post := range p.posts {
		res = append(res, post.Clone())
	}
	db.SortPosts(res)
	return res, nil
}

func (p *PostStore) GetPost(ctx context.Context, slug string, lang model.Language) (model.Post, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetPost", keyAttributes(slug, lang))
	defer span.End()

	span.AddEvent("RLock")
	p.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer p.mu.RUnlock()

	key := model.Key{Slug: slug, Language: lang}
	post, ok := p.posts[key.String()]
	if !ok {
		return model.Post{}, fail(span, fmt.Errorf("post %s: %w", key, model.ErrNotFound))
	}
	return post.Clone(), nil
}

func (p *PostStore) CreatePost(ctx context.Context, post model.Post) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreatePost", keyAttributes(post.Slug, post.Language()))
	defer span.End()

	if err := post.Validate(); err != nil {
		return fail(span, err)
	}

	span.AddEvent("Lock")
	p.mu.Lock()
	defer span.AddEvent("Unlock")
	defer p.mu.Unlock()

	span.AddEvent("check if post exists")
	for _, k := range db.PostConflicts(post.Slug, post.Language()) {
		if _, ok := p.posts[k.String()]; ok {
			return fail(span, fmt.Errorf("post %s: %w (occupied by %s)", post.Key(), model.ErrConflict, k))
		}
	}

	key := post.Key().String()
	p.posts[key] = post.Clone()
	if err := saveToFile(ctx, p.filename, p.posts); err != nil {
		delete(p.posts, key)
		return fail(span, err)
	}
	return nil
}

func (p *PostStore) UpdatePost(ctx context.Context, slug string, lang model.Language, post model.Post) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "UpdatePost", keyAttributes(slug, lang))
	defer span.End()

	if err := db.CheckKey(slug, lang, post.Key()); err != nil {
		return fail(span, err)
	}
	if err := post.Validate(); err != nil {
		return fail(span, err)
	}

	span.AddEvent("Lock")
	p.mu.Lock()
	defer span.AddEvent("Unlock")
	defer p.mu.Unlock()

	key := post.Key().String()
	prev, ok := p.posts[key]
	if !ok {
		return fail(span, fmt.Errorf("post %s: %w", post.Key(), model.ErrNotFound))
	}
	p.posts[key] = post.Clone()
	if err := saveToFile(ctx, p.filename, p.posts); err != nil {
		p.posts[key] = prev
		return fail(span, err)
	}
	return nil
}

func (p *PostStore) DeletePost(ctx context.Context, slug string, lang model.Language) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "DeletePost", keyAttributes(slug, lang))
	defer span.End()

	span.AddEvent("Lock")
	p.mu.Lock()
	defer span.AddEvent("Unlock")
	defer p.mu.Unlock()

	key := model.Key{Slug: slug, Language: lang}
	prev, ok := p.posts[key.String()]
	if !ok {
		return fail(span, fmt.Errorf("post %s: %w", key, model.ErrNotFound))
	}
	delete(p.posts, key.String())
	if err := saveToFile(ctx, p.filename, p.posts); err != nil {
		p.posts[key.String()] = prev
		return fail(span, err)
	}
	return nil
}

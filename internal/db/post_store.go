// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/quixsi/glossa/internal/model"
)

// PostStore persists blog posts keyed by slug and language. Every method
// returns copies, callers never hold references into the store.
type PostStore interface {
	// ListPosts returns all posts, newest date first.
	ListPosts(context.Context) ([]model.Post, error)
	// GetPost is an exact lookup without any language fallback.
	GetPost(ctx context.Context, slug string, lang model.Language) (model.Post, error)
	// CreatePost fails with model.ErrConflict when the key is taken or when
	// a bilingual and a single-language post would share the slug.
	CreatePost(context.Context, model.Post) error
	UpdatePost(ctx context.Context, slug string, lang model.Language, post model.Post) error
	DeletePost(ctx context.Context, slug string, lang model.Language) error
}

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

const bucketPost = "post_store"

func NewPostStore(bdb *bolt.DB) (*PostStore, error) {
	return &PostStore{db: bdb}, bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPost))
		return err
	})
}

// PostStore keeps one JSON document per post under the key "slug/lang".
// bbolt serializes write transactions, which gives single-writer semantics.
type PostStore struct {
	db *bolt.DB
}

func (p *PostStore) ListPosts(ctx context.Context) ([]model.Post, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListPosts")
	defer span.End()

	span.AddEvent("View bucket")
	posts := make([]model.Post, 0)
	err := p.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPost)).ForEach(func(k, v []byte) error {
			var post model.Post
			if err := json.Unmarshal(v, &post); err != nil {
				return fmt.Errorf("%w: post %s: %v", model.ErrCorruption, k, err)
			}
			if post.Key().String() != string(k) {
				return fmt.Errorf("%w: post %s stored under %q", model.ErrCorruption, post.Key(), k)
			}
			posts = append(posts, post)
			return nil
		})
	})
	if err != nil {
		return nil, fail(span, err)
	}
	db.SortPosts(posts)
	span.SetAttributes(attribute.Int("count", len(posts)))
	return posts, nil
}

func (p *PostStore) GetPost(ctx context.Context, slug string, lang model.Language) (model.Post, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetPost", keyAttributes(slug, lang))
	defer span.End()

	key := model.Key{Slug: slug, Language: lang}
	var post model.Post
	err := p.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketPost)).Get(key.Bytes())
		if res == nil {
			return fmt.Errorf("post %s: %w", key, model.ErrNotFound)
		}
		if err := json.Unmarshal(res, &post); err != nil {
			return fmt.Errorf("%w: post %s: %v", model.ErrCorruption, key, err)
		}
		if post.Key() != key {
			return fmt.Errorf("%w: post %s stored under %q", model.ErrCorruption, post.Key(), key)
		}
		return nil
	})
	if err != nil {
		return model.Post{}, fail(span, err)
	}
	return post, nil
}

func (p *PostStore) CreatePost(ctx context.Context, post model.Post) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreatePost", keyAttributes(post.Slug, post.Language()))
	defer span.End()

	if err := post.Validate(); err != nil {
		return fail(span, err)
	}
	j, err := json.Marshal(post)
	if err != nil {
		return fail(span, fmt.Errorf("convert post to json: %w", err))
	}

	span.AddEvent("Update bucket")
	return fail(span, p.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketPost))
		for _, k := range db.PostConflicts(post.Slug, post.Language()) {
			if bucket.Get(k.Bytes()) != nil {
				return fmt.Errorf("post %s: %w (occupied by %s)", post.Key(), model.ErrConflict, k)
			}
		}
		return bucket.Put(post.Key().Bytes(), j)
	}))
}

func (p *PostStore) UpdatePost(ctx context.Context, slug string, lang model.Language, post model.Post) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "UpdatePost", keyAttributes(slug, lang))
	defer span.End()

	if err := db.CheckKey(slug, lang, post.Key()); err != nil {
		return fail(span, err)
	}
	if err := post.Validate(); err != nil {
		return fail(span, err)
	}
	j, err := json.Marshal(post)
	if err != nil {
		return fail(span, fmt.Errorf("convert post to json: %w", err))
	}

	span.AddEvent("Update bucket")
	return fail(span, p.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketPost))
		key := post.Key()
		if bucket.Get(key.Bytes()) == nil {
			return fmt.Errorf("post %s: %w", key, model.ErrNotFound)
		}
		return bucket.Put(key.Bytes(), j)
	}))
}

func (p *PostStore) DeletePost(ctx context.Context, slug string, lang model.Language) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "DeletePost", keyAttributes(slug, lang))
	defer span.End()

	key := model.Key{Slug: slug, Language: lang}
	span.AddEvent("Update bucket")
	return fail(span, p.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketPost))
		if bucket.Get(key.Bytes()) == nil {
			return fmt.Errorf("post %s: %w", key, model.ErrNotFound)
		}
		return bucket.Delete(key.Bytes())
	}))
}

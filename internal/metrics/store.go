// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package metrics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
)

func (m *Metrics) PostStore(next db.PostStore) db.PostStore {
	return &postStore{next: next, m: m}
}

func (m *Metrics) TermStore(next db.TermStore) db.TermStore {
	return &termStore{next: next, m: m}
}

func (m *Metrics) SubscriberStore(next db.SubscriberStore) db.SubscriberStore {
	return &subscriberStore{next: next, m: m}
}

type postStore struct {
	next db.PostStore
	m    *Metrics
}

func (s *postStore) ListPosts(ctx context.Context) (posts []model.Post, err error) {
	defer func(start time.Time) { s.m.observe("post", "list", start, err) }(time.Now())
	return s.next.ListPosts(ctx)
}

func (s *postStore) GetPost(ctx context.Context, slug string, lang model.Language) (post model.Post, err error) {
	defer func(start time.Time) { s.m.observe("post", "get", start, err) }(time.Now())
	return s.next.GetPost(ctx, slug, lang)
}

func (s *postStore) CreatePost(ctx context.Context, post model.Post) (err error) {
	defer func(start time.Time) { s.m.observe("post", "create", start, err) }(time.Now())
	return s.next.CreatePost(ctx, post)
}

func (s *postStore) UpdatePost(ctx context.Context, slug string, lang model.Language, post model.Post) (err error) {
	defer func(start time.Time) { s.m.observe("post", "update", start, err) }(time.Now())
	return s.next.UpdatePost(ctx, slug, lang, post)
}

func (s *postStore) DeletePost(ctx context.Context, slug string, lang model.Language) (err error) {
	defer func(start time.Time) { s.m.observe("post", "delete", start, err) }(time.Now())
	return s.next.DeletePost(ctx, slug, lang)
}

type termStore struct {
	next db.TermStore
	m    *Metrics
}

func (s *termStore) ListTerms(ctx context.Context) (terms []model.GlossaryTerm, err error) {
	defer func(start time.Time) { s.m.observe("glossary", "list", start, err) }(time.Now())
	return s.next.ListTerms(ctx)
}

func (s *termStore) GetTerm(ctx context.Context, slug string, lang model.Language) (term model.GlossaryTerm, err error) {
	defer func(start time.Time) { s.m.observe("glossary", "get", start, err) }(time.Now())
	return s.next.GetTerm(ctx, slug, lang)
}

func (s *termStore) CreateTerm(ctx context.Context, term model.GlossaryTerm) (err error) {
	defer func(start time.Time) { s.m.observe("glossary", "create", start, err) }(time.Now())
	return s.next.CreateTerm(ctx, term)
}

func (s *termStore) UpdateTerm(ctx context.Context, slug string, lang model.Language, term model.GlossaryTerm) (err error) {
	defer func(start time.Time) { s.m.observe("glossary", "update", start, err) }(time.Now())
	return s.next.UpdateTerm(ctx, slug, lang, term)
}

func (s *termStore) DeleteTerm(ctx context.Context, slug string, lang model.Language) (err error) {
	defer func(start time.Time) { s.m.observe("glossary", "delete", start, err) }(time.Now())
	return s.next.DeleteTerm(ctx, slug, lang)
}

type subscriberStore struct {
	next db.SubscriberStore
	m    *Metrics
}

func (s *subscriberStore) CreateSubscriber(ctx context.Context, sub *model.Subscriber) (id uuid.UUID, err error) {
	defer func(start time.Time) { s.m.observe("subscriber", "create", start, err) }(time.Now())
	return s.next.CreateSubscriber(ctx, sub)
}

func (s *subscriberStore) DeleteSubscriber(ctx context.Context, id uuid.UUID) (err error) {
	defer func(start time.Time) { s.m.observe("subscriber", "delete", start, err) }(time.Now())
	return s.next.DeleteSubscriber(ctx, id)
}

func (s *subscriberStore) ListSubscribers(ctx context.Context) (subs []*model.Subscriber, err error) {
	defer func(start time.Time) { s.m.observe("subscriber", "list", start, err) }(time.Now())
	return s.next.ListSubscribers(ctx)
}

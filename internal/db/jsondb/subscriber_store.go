// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
)

// SubscriberStore is an implementation of the SubscriberStore interface
// that stores newsletter subscribers in a JSON file.
type SubscriberStore struct {
	filename    string
	mu          sync.RWMutex
	subscribers map[uuid.UUID]*model.Subscriber
}

func NewSubscriberStore(filename string) (*SubscriberStore, error) {
	store := &SubscriberStore{
		filename:    filename,
		subscribers: make(map[uuid.UUID]*model.Subscriber),
	}
	if err := loadFromFile(filename, &store.subscribers); err != nil {
		return nil, err
	}
	if store.subscribers == nil {
		return nil, fmt.Errorf("%w: %s: not a subscriber map", model.ErrCorruption, filename)
	}
	for id, sub := range store.subscribers {
		if sub == nil {
			return nil, fmt.Errorf("%w: %s: subscriber %s is null", model.ErrCorruption, filename, id)
		}
		if sub.ID != id {
			return nil, fmt.Errorf("%w: %s: subscriber %s stored under %s", model.ErrCorruption, filename, sub.ID, id)
		}
	}
	return store, nil
}

// CreateSubscriber adds a subscriber and stores it in the JSON file.
func (s *SubscriberStore) CreateSubscriber(ctx context.Context, sub *model.Subscriber) (uuid.UUID, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateSubscriber")
	defer span.End()

	if err := sub.Validate(); err != nil {
		return uuid.Nil, fail(span, err)
	}
	sub = sub.Clone()
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	span.AddEvent("Lock")
	s.mu.Lock()
	defer span.AddEvent("Unlock")
	defer s.mu.Unlock()

	span.AddEvent("check if subscriber exists")
	if _, ok := s.subscribers[sub.ID]; ok {
		return uuid.Nil, fail(span, fmt.Errorf("subscriber %s: %w", sub.ID, model.ErrConflict))
	}
	for _, existing := range s.subscribers {
		if existing.NormalizedEmail() == sub.NormalizedEmail() {
			return uuid.Nil, fail(span, fmt.Errorf("subscriber %q: %w", sub.Email, model.ErrConflict))
		}
	}
	if sub.CreatedAt == nil {
		now := time.Now().UTC()
		sub.CreatedAt = &now
	}
	s.subscribers[sub.ID] = sub

	span.AddEvent("save to file")
	if err := saveToFile(ctx, s.filename, s.subscribers); err != nil {
		delete(s.subscribers, sub.ID)
		return uuid.Nil, fail(span, err)
	}
	return sub.ID, nil
}

// DeleteSubscriber removes a subscriber from the store and JSON file.
func (s *SubscriberStore) DeleteSubscriber(ctx context.Context, id uuid.UUID) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "DeleteSubscriber")
	defer span.End()

	span.AddEvent("Lock")
	s.mu.Lock()
	defer span.AddEvent("Unlock")
	defer s.mu.Unlock()

	prev, ok := s.subscribers[id]
	if !ok {
		return fail(span, fmt.Errorf("subscriber %s: %w", id, model.ErrNotFound))
	}
	delete(s.subscribers, id)
	if err := saveToFile(ctx, s.filename, s.subscribers); err != nil {
		s.subscribers[id] = prev
		return fail(span, err)
	}
	return nil
}

// ListSubscribers returns all subscribers ordered by sign-up time.
func (s *SubscriberStore) ListSubscribers(ctx context.Context) ([]*model.Subscriber, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListSubscribers")
	defer span.End()

	span.AddEvent("RLock")
	s.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer s.mu.RUnlock()

	res := make([]*model.Subscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		res = append(res, sub.Clone())
	}
	db.SortSubscribers(res)
	return res, nil
}

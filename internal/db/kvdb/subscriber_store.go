// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
)

const (
	bucketSubscriber      = "subscriber_store"
	bucketSubscriberEmail = "subscriber_email_index"
)

func NewSubscriberStore(bdb *bolt.DB) (*SubscriberStore, error) {
	return &SubscriberStore{db: bdb}, bdb.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketSubscriber)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSubscriberEmail))
		return err
	})
}

// SubscriberStore keeps subscribers by id and a normalized email -> id index.
type SubscriberStore struct {
	db *bolt.DB
}

func (s *SubscriberStore) CreateSubscriber(ctx context.Context, sub *model.Subscriber) (uuid.UUID, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateSubscriber")
	defer span.End()

	if err := sub.Validate(); err != nil {
		return uuid.Nil, fail(span, err)
	}
	sub = sub.Clone()
	if sub.ID == uuid.Nil {
		span.AddEvent("uuid is nil, generate a new id")
		sub.ID = uuid.New()
	}
	if sub.CreatedAt == nil {
		now := time.Now().UTC()
		sub.CreatedAt = &now
	}

	j, err := json.Marshal(sub)
	if err != nil {
		return uuid.Nil, fail(span, err)
	}

	span.AddEvent("Update bucket")
	err = s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSubscriber))
		index := tx.Bucket([]byte(bucketSubscriberEmail))
		email := []byte(sub.NormalizedEmail())
		if bucket.Get(sub.ID[:]) != nil {
			return fmt.Errorf("subscriber %s: %w", sub.ID, model.ErrConflict)
		}
		if index.Get(email) != nil {
			return fmt.Errorf("subscriber %q: %w", sub.Email, model.ErrConflict)
		}
		if err := index.Put(email, sub.ID[:]); err != nil {
			return err
		}
		return bucket.Put(sub.ID[:], j)
	})
	if err != nil {
		return uuid.Nil, fail(span, err)
	}
	return sub.ID, nil
}

func (s *SubscriberStore) DeleteSubscriber(ctx context.Context, id uuid.UUID) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "DeleteSubscriber")
	defer span.End()

	span.AddEvent("Update bucket")
	return fail(span, s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSubscriber))
		res := bucket.Get(id[:])
		if res == nil {
			return fmt.Errorf("subscriber %s: %w", id, model.ErrNotFound)
		}
		sub := &model.Subscriber{}
		if err := json.Unmarshal(res, sub); err != nil {
			return fmt.Errorf("%w: subscriber %s: %v", model.ErrCorruption, id, err)
		}
		if err := tx.Bucket([]byte(bucketSubscriberEmail)).Delete([]byte(sub.NormalizedEmail())); err != nil {
			return err
		}
		return bucket.Delete(id[:])
	}))
}

func (s *SubscriberStore) ListSubscribers(ctx context.Context) ([]*model.Subscriber, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListSubscribers")
	defer span.End()

	span.AddEvent("View bucket")
	subs := make([]*model.Subscriber, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSubscriber)).ForEach(func(k, v []byte) error {
			sub := &model.Subscriber{}
			if err := json.Unmarshal(v, sub); err != nil {
				return fmt.Errorf("%w: subscriber %x: %v", model.ErrCorruption, k, err)
			}
			if !bytes.Equal(sub.ID[:], k) {
				return fmt.Errorf("%w: subscriber %s stored under %x", model.ErrCorruption, sub.ID, k)
			}
			subs = append(subs, sub)
			return nil
		})
	})
	if err != nil {
		return nil, fail(span, err)
	}
	db.SortSubscribers(subs)
	return subs, nil
}

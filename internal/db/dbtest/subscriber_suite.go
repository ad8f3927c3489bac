// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
)

// RunSubscriberStore runs the newsletter store suite. newStore must return an empty store.
func RunSubscriberStore(t *testing.T, newStore func(t *testing.T) db.SubscriberStore) {
	ctx := context.Background()

	t.Run("create assigns id and creation time", func(t *testing.T) {
		s := newStore(t)
		id, err := s.CreateSubscriber(ctx, &model.Subscriber{Email: "anna@example.com", Language: model.LanguageItalian})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		subs, err := s.ListSubscribers(ctx)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, id, subs[0].ID)
		assert.NotNil(t, subs[0].CreatedAt)
	})

	t.Run("email is unique regardless of case", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateSubscriber(ctx, &model.Subscriber{Email: "anna@example.com", Language: model.LanguageItalian})
		require.NoError(t, err)
		_, err = s.CreateSubscriber(ctx, &model.Subscriber{Email: "Anna@Example.com", Language: model.LanguageEnglish})
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("display name forms cannot bypass uniqueness", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateSubscriber(ctx, &model.Subscriber{Email: "ada@example.com", Language: model.LanguageEnglish})
		require.NoError(t, err)
		for _, email := range []string{"Ada <ada@example.com>", "<ada@example.com>", "Ada <ADA@example.com>"} {
			_, err = s.CreateSubscriber(ctx, &model.Subscriber{Email: email, Language: model.LanguageEnglish})
			assert.ErrorIs(t, err, model.ErrInvalidArgument, email)
		}

		subs, err := s.ListSubscribers(ctx)
		require.NoError(t, err)
		assert.Len(t, subs, 1)
	})

	t.Run("invalid subscribers are rejected", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateSubscriber(ctx, &model.Subscriber{Email: "not-an-email", Language: model.LanguageEnglish})
		assert.ErrorIs(t, err, model.ErrInvalidArgument)
		_, err = s.CreateSubscriber(ctx, &model.Subscriber{Email: "anna@example.com", Language: model.LanguageBoth})
		assert.ErrorIs(t, err, model.ErrInvalidArgument)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		id, err := s.CreateSubscriber(ctx, &model.Subscriber{Email: "anna@example.com", Language: model.LanguageItalian})
		require.NoError(t, err)

		require.NoError(t, s.DeleteSubscriber(ctx, id))
		assert.ErrorIs(t, s.DeleteSubscriber(ctx, id), model.ErrNotFound)

		_, err = s.CreateSubscriber(ctx, &model.Subscriber{Email: "anna@example.com", Language: model.LanguageItalian})
		assert.NoError(t, err, "email is free again after delete")
	})

	t.Run("list is ordered by sign-up", func(t *testing.T) {
		s := newStore(t)
		base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		emails := []string{"c@example.com", "a@example.com", "b@example.com"}
		offsets := []time.Duration{2 * time.Hour, 0, time.Hour}
		for i, email := range emails {
			createdAt := base.Add(offsets[i])
			_, err := s.CreateSubscriber(ctx, &model.Subscriber{Email: email, Language: model.LanguageEnglish, CreatedAt: &createdAt})
			require.NoError(t, err)
		}

		subs, err := s.ListSubscribers(ctx)
		require.NoError(t, err)
		require.Len(t, subs, 3)
		assert.Equal(t, "a@example.com", subs[0].Email)
		assert.Equal(t, "b@example.com", subs[1].Email)
		assert.Equal(t, "c@example.com", subs[2].Email)
	})
}

// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/db/dbtest"
	"github.com/quixsi/glossa/internal/model"
)

func openTestDB(t *testing.T) *bolt.DB {
	t.Helper()
	bdb, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { bdb.Close() })
	return bdb
}

func TestPostStore(t *testing.T) {
	dbtest.RunPostStore(t, func(t *testing.T) db.PostStore {
		s, err := NewPostStore(openTestDB(t))
		require.NoError(t, err)
		return s
	})
}

func TestTermStore(t *testing.T) {
	dbtest.RunTermStore(t, func(t *testing.T) db.TermStore {
		s, err := NewTermStore(openTestDB(t))
		require.NoError(t, err)
		return s
	})
}

func TestSubscriberStore(t *testing.T) {
	dbtest.RunSubscriberStore(t, func(t *testing.T) db.SubscriberStore {
		s, err := NewSubscriberStore(openTestDB(t))
		require.NoError(t, err)
		return s
	})
}

func TestCorruptRecordsFailClosed(t *testing.T) {
	ctx := context.Background()
	bdb := openTestDB(t)
	posts, err := NewPostStore(bdb)
	require.NoError(t, err)
	terms, err := NewTermStore(bdb)
	require.NoError(t, err)

	require.NoError(t, bdb.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketPost)).Put([]byte("broken/en"), []byte(`{"slug": "broken",`)); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketTerm)).Put([]byte("broken/en"), []byte(`not json`))
	}))

	_, err = posts.GetPost(ctx, "broken", model.LanguageEnglish)
	assert.ErrorIs(t, err, model.ErrCorruption)
	_, err = posts.ListPosts(ctx)
	assert.ErrorIs(t, err, model.ErrCorruption)

	_, err = terms.GetTerm(ctx, "broken", model.LanguageEnglish)
	assert.ErrorIs(t, err, model.ErrCorruption)
	_, err = terms.ListTerms(ctx)
	assert.ErrorIs(t, err, model.ErrCorruption)
}

func TestRecordUnderForeignKeyFailsClosed(t *testing.T) {
	ctx := context.Background()
	bdb := openTestDB(t)
	posts, err := NewPostStore(bdb)
	require.NoError(t, err)
	terms, err := NewTermStore(bdb)
	require.NoError(t, err)
	subs, err := NewSubscriberStore(bdb)
	require.NoError(t, err)

	post, err := json.Marshal(dbtest.NewPost("hello", model.LanguageEnglish, "Hello"))
	require.NoError(t, err)
	term, err := json.Marshal(dbtest.NewTerm("llm", model.LanguageItalian, "LLM"))
	require.NoError(t, err)
	sub, err := json.Marshal(&model.Subscriber{ID: uuid.New(), Email: "ada@example.com", Language: model.LanguageEnglish})
	require.NoError(t, err)
	otherID := uuid.New()

	require.NoError(t, bdb.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketPost)).Put([]byte("other/en"), post); err != nil {
			return err
		}
		if err := tx.Bucket([]byte(bucketTerm)).Put([]byte("llm/en"), term); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketSubscriber)).Put(otherID[:], sub)
	}))

	_, err = posts.GetPost(ctx, "other", model.LanguageEnglish)
	assert.ErrorIs(t, err, model.ErrCorruption)
	_, err = posts.ListPosts(ctx)
	assert.ErrorIs(t, err, model.ErrCorruption)

	_, err = terms.GetTerm(ctx, "llm", model.LanguageEnglish)
	assert.ErrorIs(t, err, model.ErrCorruption)
	_, err = terms.ListTerms(ctx)
	assert.ErrorIs(t, err, model.ErrCorruption)

	_, err = subs.ListSubscribers(ctx)
	assert.ErrorIs(t, err, model.ErrCorruption)
}

func TestRecordsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	bdb, err := bolt.Open(path, 0o600, nil)
	require.NoError(t, err)
	posts, err := NewPostStore(bdb)
	require.NoError(t, err)
	post := dbtest.NewBilingualPost("hello", "Hello", "Ciao")
	require.NoError(t, posts.CreatePost(ctx, post))
	require.NoError(t, bdb.Close())

	bdb, err = bolt.Open(path, 0o600, nil)
	require.NoError(t, err)
	defer bdb.Close()
	posts, err = NewPostStore(bdb)
	require.NoError(t, err)
	got, err := posts.GetPost(ctx, "hello", model.LanguageBoth)
	require.NoError(t, err)
	assert.Equal(t, post, got)
}

// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
)

// RunPostStore runs the post store suite. newStore must return an empty store.
func RunPostStore(t *testing.T, newStore func(t *testing.T) db.PostStore) {
	ctx := context.Background()
	en, it, both := model.LanguageEnglish, model.LanguageItalian, model.LanguageBoth

	t.Run("create then get returns the same record", func(t *testing.T) {
		s := newStore(t)
		for _, p := range []model.Post{NewPost("ai-ethics", en, "AI Ethics"), NewBilingualPost("hello", "Hello", "Ciao")} {
			require.NoError(t, s.CreatePost(ctx, p))
			got, err := s.GetPost(ctx, p.Slug, p.Language())
			require.NoError(t, err)
			assert.Equal(t, p, got)
		}
	})

	t.Run("duplicate key is a conflict", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreatePost(ctx, NewPost("ai-ethics", en, "AI Ethics")))
		err := s.CreatePost(ctx, NewPost("ai-ethics", en, "Other"))
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("bilingual and single-language posts cannot share a slug", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreatePost(ctx, NewBilingualPost("hello", "Hello", "Ciao")))
		assert.ErrorIs(t, s.CreatePost(ctx, NewPost("hello", en, "Hello")), model.ErrConflict)
		assert.ErrorIs(t, s.CreatePost(ctx, NewPost("hello", it, "Ciao")), model.ErrConflict)

		require.NoError(t, s.CreatePost(ctx, NewPost("solo", it, "Solo")))
		assert.ErrorIs(t, s.CreatePost(ctx, NewBilingualPost("solo", "Alone", "")), model.ErrConflict)
	})

	t.Run("english and italian siblings coexist", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreatePost(ctx, NewPost("ai-ethics", en, "AI Ethics")))
		require.NoError(t, s.CreatePost(ctx, NewPost("ai-ethics", it, "Etica AI")))

		posts, err := s.ListPosts(ctx)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("invalid records are rejected", func(t *testing.T) {
		s := newStore(t)
		noTitle := NewPost("no-title", en, "")
		assert.ErrorIs(t, s.CreatePost(ctx, noTitle), model.ErrInvalidArgument)

		badSlug := NewPost("Not A Slug", en, "Title")
		assert.ErrorIs(t, s.CreatePost(ctx, badSlug), model.ErrInvalidArgument)

		badDate := NewPost("bad-date", en, "Title")
		badDate.Date = "yesterday"
		assert.ErrorIs(t, s.CreatePost(ctx, badDate), model.ErrInvalidArgument)

		posts, err := s.ListPosts(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("update replaces the whole record", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreatePost(ctx, NewPost("ai-ethics", en, "AI Ethics")))

		updated := NewPost("ai-ethics", en, "AI Ethics, revised")
		updated.CoverImage = ""
		updated.RelatedPosts = []string{"hello"}
		require.NoError(t, s.UpdatePost(ctx, "ai-ethics", en, updated))

		got, err := s.GetPost(ctx, "ai-ethics", en)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("update of a missing key", func(t *testing.T) {
		s := newStore(t)
		err := s.UpdatePost(ctx, "ai-ethics", en, NewPost("ai-ethics", en, "AI Ethics"))
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("update cannot change the key", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreatePost(ctx, NewPost("ai-ethics", en, "AI Ethics")))
		assert.ErrorIs(t, s.UpdatePost(ctx, "ai-ethics", en, NewPost("renamed", en, "AI Ethics")), model.ErrInvalidArgument)
		assert.ErrorIs(t, s.UpdatePost(ctx, "ai-ethics", en, NewPost("ai-ethics", it, "Etica AI")), model.ErrInvalidArgument)
		assert.ErrorIs(t, s.UpdatePost(ctx, "ai-ethics", en, NewPost("ai-ethics", en, "")), model.ErrInvalidArgument)

		got, err := s.GetPost(ctx, "ai-ethics", en)
		require.NoError(t, err)
		assert.Equal(t, NewPost("ai-ethics", en, "AI Ethics"), got)
	})

	t.Run("delete removes exactly one variant", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreatePost(ctx, NewPost("ai-ethics", en, "AI Ethics")))
		require.NoError(t, s.CreatePost(ctx, NewPost("ai-ethics", it, "Etica AI")))

		require.NoError(t, s.DeletePost(ctx, "ai-ethics", en))
		_, err := s.GetPost(ctx, "ai-ethics", en)
		assert.ErrorIs(t, err, model.ErrNotFound)

		got, err := s.GetPost(ctx, "ai-ethics", it)
		require.NoError(t, err)
		assert.Equal(t, NewPost("ai-ethics", it, "Etica AI"), got)

		assert.ErrorIs(t, s.DeletePost(ctx, "ai-ethics", en), model.ErrNotFound)
	})

	t.Run("get has no language fallback", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreatePost(ctx, NewBilingualPost("hello", "Hello", "Ciao")))
		_, err := s.GetPost(ctx, "hello", it)
		assert.ErrorIs(t, err, model.ErrNotFound)
		_, err = s.GetPost(ctx, "hello", both)
		assert.NoError(t, err)
	})

	t.Run("list is newest first", func(t *testing.T) {
		s := newStore(t)
		for i, date := range []string{"2023-01-10", "2024-06-01", "2024-01-15T10:00:00Z"} {
			p := NewPost(fmt.Sprintf("post-%d", i), en, "Post")
			p.Date = date
			require.NoError(t, s.CreatePost(ctx, p))
		}
		posts, err := s.ListPosts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, "post-1", posts[0].Slug)
		assert.Equal(t, "post-2", posts[1].Slug)
		assert.Equal(t, "post-0", posts[2].Slug)
	})

	t.Run("reads return copies", func(t *testing.T) {
		s := newStore(t)
		p := NewPost("ai-ethics", en, "AI Ethics")
		require.NoError(t, s.CreatePost(ctx, p))

		got, err := s.GetPost(ctx, "ai-ethics", en)
		require.NoError(t, err)
		got.Body.(model.SingleLanguage).Content.Tags[0] = "mutated"

		listed, err := s.ListPosts(ctx)
		require.NoError(t, err)
		listed[0].Slug = "mutated"

		again, err := s.GetPost(ctx, "ai-ethics", en)
		require.NoError(t, err)
		assert.Equal(t, p, again)
	})

	t.Run("concurrent updates of one key", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreatePost(ctx, NewPost("ai-ethics", en, "AI Ethics")))

		a := NewPost("ai-ethics", en, "Version A")
		a.Body = model.SingleLanguage{Lang: en, Content: model.PostContent{Title: "Version A", Content: "aaaa", Tags: []string{"a"}}}
		b := NewPost("ai-ethics", en, "Version B")
		b.Body = model.SingleLanguage{Lang: en, Content: model.PostContent{Title: "Version B", Content: "bbbb", Tags: []string{"b", "b"}}}

		var g errgroup.Group
		for i := 0; i < 20; i++ {
			next := a
			if i%2 == 1 {
				next = b
			}
			g.Go(func() error {
				return s.UpdatePost(ctx, "ai-ethics", en, next)
			})
		}
		require.NoError(t, g.Wait())

		got, err := s.GetPost(ctx, "ai-ethics", en)
		require.NoError(t, err)
		if !assert.ObjectsAreEqual(a, got) && !assert.ObjectsAreEqual(b, got) {
			t.Fatalf("store holds neither payload: %+v", got)
		}
	})
}

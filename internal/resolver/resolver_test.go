// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package resolver

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/db/dbtest"
	"github.com/quixsi/glossa/internal/db/jsondb"
	"github.com/quixsi/glossa/internal/metrics"
	"github.com/quixsi/glossa/internal/model"
)

const (
	en   = model.LanguageEnglish
	it   = model.LanguageItalian
	both = model.LanguageBoth
)

func newStores(t *testing.T) (*jsondb.PostStore, *jsondb.TermStore) {
	t.Helper()
	dir := t.TempDir()
	posts, err := jsondb.NewPostStore(filepath.Join(dir, "posts.json"))
	require.NoError(t, err)
	terms, err := jsondb.NewTermStore(filepath.Join(dir, "glossary.json"))
	require.NoError(t, err)
	return posts, terms
}

func TestResolvePost(t *testing.T) {
	ctx := context.Background()
	posts, terms := newStores(t)
	r := New(posts, terms)

	english := dbtest.NewPost("ai-ethics", en, "AI Ethics")
	english.RelatedPosts = []string{"hello", "gone", "solo-it"}
	require.NoError(t, posts.CreatePost(ctx, english))
	require.NoError(t, posts.CreatePost(ctx, dbtest.NewPost("ai-ethics", it, "Etica dell'IA")))
	require.NoError(t, posts.CreatePost(ctx, dbtest.NewPost("solo-it", it, "Solo italiano")))
	require.NoError(t, posts.CreatePost(ctx, dbtest.NewBilingualPost("hello", "Hello", "Ciao")))

	t.Run("exact language variant", func(t *testing.T) {
		view, ok, err := r.ResolvePost(ctx, "ai-ethics", it)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Etica dell'IA", view.Title)
		assert.Equal(t, it, view.Language)
	})

	t.Run("related posts drop missing and foreign slugs", func(t *testing.T) {
		view, ok, err := r.ResolvePost(ctx, "ai-ethics", en)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []model.Link{{Slug: "hello", Title: "Hello"}}, view.Related)
	})

	t.Run("bilingual post falls back per field", func(t *testing.T) {
		view, ok, err := r.ResolvePost(ctx, "hello", it)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Ciao", view.Title)
		assert.Equal(t, "Excerpt", view.Excerpt)
		assert.Equal(t, "Content", view.Content)
		assert.Equal(t, []string{"news"}, view.Tags)
	})

	t.Run("single language post is not shown in the other language", func(t *testing.T) {
		_, ok, err := r.ResolvePost(ctx, "solo-it", en)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("both and unknown languages resolve to nothing", func(t *testing.T) {
		for _, lang := range []model.Language{both, "de", ""} {
			_, ok, err := r.ResolvePost(ctx, "hello", lang)
			require.NoError(t, err)
			assert.False(t, ok, lang)
		}
	})

	t.Run("missing slug", func(t *testing.T) {
		_, ok, err := r.ResolvePost(ctx, "nope", en)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()
	posts, terms := newStores(t)
	r := New(posts, terms)

	older := dbtest.NewPost("older", en, "Older")
	older.Date = "2023-12-24"
	older.RelatedPosts = []string{"hello", "solo-it"}
	require.NoError(t, posts.CreatePost(ctx, older))
	require.NoError(t, posts.CreatePost(ctx, dbtest.NewPost("solo-it", it, "Solo")))
	require.NoError(t, posts.CreatePost(ctx, dbtest.NewBilingualPost("hello", "Hello", "Ciao")))

	views, err := r.ListPosts(ctx, en)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "hello", views[0].Slug)
	assert.Equal(t, "older", views[1].Slug)
	assert.Equal(t, []model.Link{{Slug: "hello", Title: "Hello"}}, views[1].Related)

	views, err = r.ListPosts(ctx, it)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Ciao", views[0].Title)
	assert.Equal(t, "solo-it", views[1].Slug)

	views, err = r.ListPosts(ctx, both)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestResolveTermHasNoFallback(t *testing.T) {
	ctx := context.Background()
	posts, terms := newStores(t)
	m := metrics.New(prometheus.NewRegistry())
	r := New(posts, terms, WithMetrics(m))

	llm := dbtest.NewTerm("llm", en, "Large Language Model")
	llm.RelatedTerms = []string{"transformer", "token"}
	require.NoError(t, terms.CreateTerm(ctx, llm))
	require.NoError(t, terms.CreateTerm(ctx, dbtest.NewTerm("transformer", en, "Transformer")))
	require.NoError(t, terms.CreateTerm(ctx, dbtest.NewTerm("token", it, "Token")))

	view, ok, err := r.ResolveTerm(ctx, "llm", en)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Large Language Model", view.Term)
	assert.Equal(t, []model.Link{{Slug: "transformer", Title: "Transformer"}}, view.Related)

	_, ok, err = r.ResolveTerm(ctx, "llm", it)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("glossary", "en", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("glossary", "it", "absent")))

	list, err := r.ListTerms(ctx, it)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "token", list[0].Slug)
	assert.Empty(t, list[0].Related)
}

type brokenPosts struct{ db.PostStore }

func (brokenPosts) GetPost(context.Context, string, model.Language) (model.Post, error) {
	return model.Post{}, errors.New("disk on fire")
}

func TestResolvePostPropagatesStoreErrors(t *testing.T) {
	_, terms := newStores(t)
	r := New(brokenPosts{}, terms)

	_, ok, err := r.ResolvePost(context.Background(), "hello", en)
	assert.EqualError(t, err, "disk on fire")
	assert.False(t, ok)
}

// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package seed

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/db/jsondb"
	"github.com/quixsi/glossa/internal/model"
)

func newStores(t *testing.T) (db.PostStore, db.TermStore) {
	t.Helper()
	dir := t.TempDir()
	posts, err := jsondb.NewPostStore(filepath.Join(dir, "posts.json"))
	require.NoError(t, err)
	terms, err := jsondb.NewTermStore(filepath.Join(dir, "glossary.json"))
	require.NoError(t, err)
	return posts, terms
}

func TestLoadAndApply(t *testing.T) {
	ctx := context.Background()
	data, err := Load(filepath.Join("testdata", "seed.yaml"))
	require.NoError(t, err)
	require.Len(t, data.Posts, 3)
	require.Len(t, data.Glossary, 2)

	posts, terms := newStores(t)
	res, err := Apply(ctx, posts, terms, data)
	require.NoError(t, err)
	assert.Equal(t, Result{Posts: 3, Terms: 2}, res)

	welcome, err := posts.GetPost(ctx, "welcome", model.LanguageBoth)
	require.NoError(t, err)
	content, ok := welcome.Body.Localized(model.LanguageItalian)
	require.True(t, ok)
	assert.Equal(t, "Benvenuti", content.Title)
	assert.Equal(t, "Hello and welcome.", content.Content)

	// A second run only skips.
	res, err = Apply(ctx, posts, terms, data)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 5}, res)
}

func TestParseRejects(t *testing.T) {
	tt := []struct {
		name string
		in   string
	}{
		{name: "unknown key", in: "pages: []\n"},
		{name: "not yaml", in: "posts: [\n"},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in))
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	data, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, data.Posts)
}

func TestApplyStopsOnInvalidRecord(t *testing.T) {
	posts, terms := newStores(t)
	data, err := Parse(strings.NewReader(`
posts:
  - slug: Bad Slug
    language: en
    title: Bad
    content: Bad
    date: "2024-01-01"
`))
	require.NoError(t, err)

	_, err = Apply(context.Background(), posts, terms, data)
	assert.True(t, errors.Is(err, model.ErrInvalidArgument), err)
}

// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package resolver

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/glossa/internal/db/dbtest"
	"github.com/quixsi/glossa/internal/model"
)

func TestCoverage(t *testing.T) {
	ctx := context.Background()
	posts, terms := newStores(t)
	r := New(posts, terms)

	require.NoError(t, posts.CreatePost(ctx, dbtest.NewBilingualPost("hello", "Hello", "Ciao")))
	require.NoError(t, posts.CreatePost(ctx, dbtest.NewPost("ai-ethics", en, "AI Ethics")))
	require.NoError(t, posts.CreatePost(ctx, dbtest.NewPost("ai-ethics", it, "Etica")))
	require.NoError(t, posts.CreatePost(ctx, dbtest.NewPost("solo", it, "Solo")))
	require.NoError(t, terms.CreateTerm(ctx, dbtest.NewTerm("llm", en, "LLM")))

	got, err := r.Coverage(ctx)
	require.NoError(t, err)

	assert.Equal(t, []PostCoverage{
		{Slug: "ai-ethics", Languages: []model.Language{en, it}, Missing: []model.Language{}},
		{Slug: "hello", Languages: []model.Language{en, it}, Missing: []model.Language{}, Fallback: []string{"content", "excerpt", "tags"}},
		{Slug: "solo", Languages: []model.Language{it}, Missing: []model.Language{en}},
	}, got.Posts)
	assert.Equal(t, []TermCoverage{
		{Slug: "llm", Languages: []model.Language{en}, Missing: []model.Language{it}},
	}, got.Glossary)
}

func TestFallbackFieldsFullyTranslated(t *testing.T) {
	content := model.PostContent{Title: "T", Excerpt: "E", Content: "C", Tags: []string{"a"}}
	fields, err := fallbackFields(model.Bilingual{English: content, Italian: content})
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestFallbackFieldsMatchLocalized(t *testing.T) {
	tt := []struct {
		name    string
		italian model.PostContent
		want    []string
	}{
		{
			name:    "shorter italian tag list is shown as is",
			italian: model.PostContent{Title: "Titolo", Excerpt: "Estratto", Content: "Testo", Tags: []string{"x"}},
			want:    []string{},
		},
		{
			name:    "empty italian tag list falls back",
			italian: model.PostContent{Title: "Titolo", Excerpt: "Estratto", Content: "Testo", Tags: []string{}},
			want:    []string{"tags"},
		},
		{
			name:    "empty italian strings fall back",
			italian: model.PostContent{Tags: []string{"x"}},
			want:    []string{"content", "excerpt", "title"},
		},
	}

	english := model.PostContent{Title: "Title", Excerpt: "Excerpt", Content: "Body", Tags: []string{"a", "b"}}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			body := model.Bilingual{English: english, Italian: tc.italian}
			fields, err := fallbackFields(body)
			require.NoError(t, err)
			assert.Equal(t, tc.want, fields)

			shown, ok := body.Localized(it)
			require.True(t, ok)
			fallsBack := map[string]bool{
				"title":   shown.Title == english.Title,
				"excerpt": shown.Excerpt == english.Excerpt,
				"content": shown.Content == english.Content,
				"tags":    assert.ObjectsAreEqual(shown.Tags, english.Tags),
			}
			for field, fromEnglish := range fallsBack {
				assert.Equal(t, fromEnglish, slices.Contains(fields, field), field)
			}
		})
	}
}

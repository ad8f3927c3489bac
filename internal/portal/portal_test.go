// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package portal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/glossa/internal/db/dbtest"
	"github.com/quixsi/glossa/internal/db/jsondb"
	"github.com/quixsi/glossa/internal/model"
	"github.com/quixsi/glossa/internal/resolver"
)

func newTestPortal(t *testing.T) (http.Handler, *jsondb.SubscriberStore) {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	posts, err := jsondb.NewPostStore(filepath.Join(dir, "posts.json"))
	require.NoError(t, err)
	terms, err := jsondb.NewTermStore(filepath.Join(dir, "glossary.json"))
	require.NoError(t, err)
	subs, err := jsondb.NewSubscriberStore(filepath.Join(dir, "subscribers.json"))
	require.NoError(t, err)

	ethics := dbtest.NewPost("ai-ethics", model.LanguageEnglish, "AI Ethics")
	ethics.RelatedPosts = []string{"welcome"}
	require.NoError(t, posts.CreatePost(ctx, ethics))
	require.NoError(t, posts.CreatePost(ctx, dbtest.NewBilingualPost("welcome", "Welcome", "Benvenuti")))
	require.NoError(t, terms.CreateTerm(ctx, dbtest.NewTerm("llm", model.LanguageEnglish, "LLM")))

	p := NewPortal(slog.Default(), resolver.New(posts, terms), subs)
	return p.Handler(), subs
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPosts(t *testing.T) {
	h, _ := newTestPortal(t)

	w := get(t, h, "/en/posts/ai-ethics")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var view model.PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "AI Ethics", view.Title)
	assert.Equal(t, []model.Link{{Slug: "welcome", Title: "Welcome"}}, view.Related)

	w = get(t, h, "/it/posts/ai-ethics")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(t, h, "/it/posts/welcome")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Benvenuti", view.Title)
	assert.Equal(t, "Content", view.Content)

	w = get(t, h, "/it/posts")
	require.Equal(t, http.StatusOK, w.Code)
	var views []model.PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "welcome", views[0].Slug)
}

func TestGlossary(t *testing.T) {
	h, _ := newTestPortal(t)

	w := get(t, h, "/en/glossary/llm")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"term":"LLM"`)

	w = get(t, h, "/it/glossary/llm")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(t, h, "/it/glossary")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUnknownPaths(t *testing.T) {
	h, _ := newTestPortal(t)
	for _, path := range []string{"/both/posts", "/de/glossary/llm", "/", "/en/unknown"} {
		w := get(t, h, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"code":"PAGE_NOT_FOUND","message":"Page not found"}`, w.Body.String(), path)
	}
}

func TestNewsletter(t *testing.T) {
	h, subs := newTestPortal(t)
	post := func(values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/newsletter", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	w := post(url.Values{"email": {"ada@example.com"}, "language": {"it"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = post(url.Values{"email": {"ADA@example.com"}, "language": {"en"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(url.Values{"email": {"not an address"}, "language": {"en"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(url.Values{"email": {"bob@example.com"}, "language": {"both"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	list, err := subs.ListSubscribers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.LanguageItalian, list[0].Language)
}

// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package backend

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/glossa/internal/db/dbtest"
	"github.com/quixsi/glossa/internal/model"
)

func TestCopyJSONDBIntoKVDB(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src, err := Open("jsondb://" + filepath.Join(dir, "json"))
	require.NoError(t, err)
	defer src.Close()
	require.NoError(t, src.CreatePost(ctx, dbtest.NewPost("ai-ethics", model.LanguageEnglish, "AI Ethics")))
	require.NoError(t, src.CreatePost(ctx, dbtest.NewBilingualPost("hello", "Hello", "Ciao")))
	require.NoError(t, src.CreateTerm(ctx, dbtest.NewTerm("llm", model.LanguageItalian, "LLM")))
	id, err := src.CreateSubscriber(ctx, &model.Subscriber{Email: "ada@example.com", Language: model.LanguageEnglish})
	require.NoError(t, err)

	dst, err := Open("kvdb://" + filepath.Join(dir, "glossa.db"))
	require.NoError(t, err)
	defer dst.Close()

	stats, err := Copy(ctx, slog.Default(), dst, src)
	require.NoError(t, err)
	assert.Equal(t, CopyStats{Posts: 2, Terms: 1, Subscribers: 1}, stats)

	srcPosts, err := src.ListPosts(ctx)
	require.NoError(t, err)
	dstPosts, err := dst.ListPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, srcPosts, dstPosts)

	subs, err := dst.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, id, subs[0].ID)

	stats, err = Copy(ctx, slog.Default(), dst, src)
	require.NoError(t, err)
	assert.Equal(t, CopyStats{Skipped: 4}, stats)
}

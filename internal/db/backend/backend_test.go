// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/glossa/internal/model"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tt := []struct {
		name    string
		dsn     string
		scheme  string
		wantErr bool
	}{
		{name: "kvdb", dsn: "kvdb://" + filepath.Join(dir, "glossa.db"), scheme: "kvdb"},
		{name: "jsondb", dsn: "jsondb://" + filepath.Join(dir, "json"), scheme: "jsondb"},
		{name: "unknown scheme", dsn: "mysql://localhost/glossa", wantErr: true},
		{name: "missing path", dsn: "kvdb://", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Open(tc.dsn)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer d.Close()
			assert.Equal(t, tc.scheme, d.Scheme)

			posts, err := d.ListPosts(context.Background())
			require.NoError(t, err)
			assert.Empty(t, posts)
		})
	}
}

func TestOpenJSONDBRefusesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glossary.json"), []byte(`{"ai/en": `), 0o644))

	_, err := Open("jsondb://" + dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrCorruption))
}

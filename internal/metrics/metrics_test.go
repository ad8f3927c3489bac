// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package metrics

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/glossa/internal/db/dbtest"
	"github.com/quixsi/glossa/internal/db/jsondb"
	"github.com/quixsi/glossa/internal/model"
)

func TestResult(t *testing.T) {
	tt := []struct {
		err  error
		want string
	}{
		{err: nil, want: "ok"},
		{err: fmt.Errorf("post x/en: %w", model.ErrNotFound), want: "not_found"},
		{err: model.ErrConflict, want: "conflict"},
		{err: model.ErrInvalidArgument, want: "invalid_argument"},
		{err: model.ErrCorruption, want: "corruption"},
		{err: fmt.Errorf("disk full"), want: "error"},
	}
	for _, tc := range tt {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, Result(tc.err))
		})
	}
}

func TestInstrumentedTermStore(t *testing.T) {
	ctx := context.Background()
	m := New(prometheus.NewRegistry())
	inner, err := jsondb.NewTermStore(filepath.Join(t.TempDir(), "glossary.json"))
	require.NoError(t, err)
	s := m.TermStore(inner)

	require.NoError(t, s.CreateTerm(ctx, dbtest.NewTerm("llm", model.LanguageEnglish, "LLM")))
	assert.ErrorIs(t, s.CreateTerm(ctx, dbtest.NewTerm("llm", model.LanguageEnglish, "LLM")), model.ErrConflict)
	_, err = s.GetTerm(ctx, "llm", model.LanguageItalian)
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("glossary", "create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("glossary", "create", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("glossary", "get", "not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.StoreLatency))
}

func TestResolved(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Resolved("post", model.LanguageItalian, true)
	m.Resolved("post", model.LanguageItalian, false)
	m.Resolved("post", model.LanguageItalian, false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("post", "it", "found")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("post", "it", "absent")))
}

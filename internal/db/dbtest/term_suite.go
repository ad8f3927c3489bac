// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
)

// RunTermStore runs the glossary store suite. newStore must return an empty store.
func RunTermStore(t *testing.T, newStore func(t *testing.T) db.TermStore) {
	ctx := context.Background()
	en, it := model.LanguageEnglish, model.LanguageItalian

	t.Run("create then get returns the same record", func(t *testing.T) {
		s := newStore(t)
		term := NewTerm("neural-network", en, "Neural Network")
		term.Pronunciation = "/ˈnjʊərəl/"
		term.RelatedTerms = []string{"deep-learning", "does-not-exist"}
		term.Etymology = "From Greek neuron"
		require.NoError(t, s.CreateTerm(ctx, term))

		got, err := s.GetTerm(ctx, "neural-network", en)
		require.NoError(t, err)
		assert.Equal(t, term, got)
	})

	t.Run("duplicate key is a conflict", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateTerm(ctx, NewTerm("llm", en, "LLM")))
		assert.ErrorIs(t, s.CreateTerm(ctx, NewTerm("llm", en, "Large Language Model")), model.ErrConflict)
		assert.NoError(t, s.CreateTerm(ctx, NewTerm("llm", it, "LLM")))
	})

	t.Run("invalid records are rejected", func(t *testing.T) {
		s := newStore(t)
		both := NewTerm("llm", model.LanguageBoth, "LLM")
		assert.ErrorIs(t, s.CreateTerm(ctx, both), model.ErrInvalidArgument)

		noDefinition := NewTerm("llm", en, "LLM")
		noDefinition.Definition = ""
		assert.ErrorIs(t, s.CreateTerm(ctx, noDefinition), model.ErrInvalidArgument)
	})

	t.Run("update", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateTerm(ctx, NewTerm("llm", en, "LLM")))

		updated := NewTerm("llm", en, "Large Language Model")
		updated.Examples = nil
		require.NoError(t, s.UpdateTerm(ctx, "llm", en, updated))
		got, err := s.GetTerm(ctx, "llm", en)
		require.NoError(t, err)
		assert.Equal(t, updated, got)

		assert.ErrorIs(t, s.UpdateTerm(ctx, "llm", it, NewTerm("llm", it, "LLM")), model.ErrNotFound)
		assert.ErrorIs(t, s.UpdateTerm(ctx, "llm", en, NewTerm("llm", it, "LLM")), model.ErrInvalidArgument)
		assert.ErrorIs(t, s.UpdateTerm(ctx, "llm", en, NewTerm("gpt", en, "GPT")), model.ErrInvalidArgument)
	})

	t.Run("deleting one language keeps the other", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateTerm(ctx, NewTerm("ai-ethics", en, "AI Ethics")))
		require.NoError(t, s.CreateTerm(ctx, NewTerm("ai-ethics", it, "Etica AI")))

		require.NoError(t, s.DeleteTerm(ctx, "ai-ethics", en))
		_, err := s.GetTerm(ctx, "ai-ethics", en)
		assert.ErrorIs(t, err, model.ErrNotFound)

		got, err := s.GetTerm(ctx, "ai-ethics", it)
		require.NoError(t, err)
		assert.Equal(t, NewTerm("ai-ethics", it, "Etica AI"), got)

		assert.ErrorIs(t, s.DeleteTerm(ctx, "ai-ethics", en), model.ErrNotFound)
	})

	t.Run("list is alphabetical by term", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateTerm(ctx, NewTerm("transformer", en, "Transformer")))
		require.NoError(t, s.CreateTerm(ctx, NewTerm("attention", en, "attention")))
		require.NoError(t, s.CreateTerm(ctx, NewTerm("bias", en, "Bias")))

		terms, err := s.ListTerms(ctx)
		require.NoError(t, err)
		var got []string
		for _, term := range terms {
			got = append(got, term.Term)
		}
		assert.Equal(t, []string{"attention", "Bias", "Transformer"}, got)
	})

	t.Run("reads return copies", func(t *testing.T) {
		s := newStore(t)
		term := NewTerm("llm", en, "LLM")
		require.NoError(t, s.CreateTerm(ctx, term))

		got, err := s.GetTerm(ctx, "llm", en)
		require.NoError(t, err)
		got.Examples[0] = "mutated"

		again, err := s.GetTerm(ctx, "llm", en)
		require.NoError(t, err)
		assert.Equal(t, term, again)
	})

	t.Run("concurrent updates of one key", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateTerm(ctx, NewTerm("llm", en, "LLM")))
		a := NewTerm("llm", en, "Version A")
		b := NewTerm("llm", en, "Version B")
		b.Examples = []string{"b1", "b2", "b3"}

		var g errgroup.Group
		for i := 0; i < 20; i++ {
			next := a
			if i%2 == 1 {
				next = b
			}
			g.Go(func() error {
				return s.UpdateTerm(ctx, "llm", en, next)
			})
		}
		require.NoError(t, g.Wait())

		got, err := s.GetTerm(ctx, "llm", en)
		require.NoError(t, err)
		if !assert.ObjectsAreEqual(a, got) && !assert.ObjectsAreEqual(b, got) {
			t.Fatalf("store holds neither payload: %+v", got)
		}
	})
}

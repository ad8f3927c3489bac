// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/quixsi/glossa/internal/model"
)

type TermStore interface {
	// ListTerms returns every language variant, ordered by display term.
	ListTerms(context.Context) ([]model.GlossaryTerm, error)
	GetTerm(ctx context.Context, slug string, lang model.Language) (model.GlossaryTerm, error)
	CreateTerm(context.Context, model.GlossaryTerm) error
	UpdateTerm(ctx context.Context, slug string, lang model.Language, term model.GlossaryTerm) error
	DeleteTerm(ctx context.Context, slug string, lang model.Language) error
}

// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package seed loads initial posts and glossary terms from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"

	"github.com/quixsi/glossa/internal/db"
	"github.com/quixsi/glossa/internal/model"
)

var tracer = otel.GetTracerProvider().Tracer("github.com/quixsi/glossa/internal/seed")

// Data is the content of a seed file.
type Data struct {
	Posts    []model.PostDocument `yaml:"posts"`
	Glossary []model.GlossaryTerm `yaml:"glossary"`
}

// Load reads the seed file at path.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*Data, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var data Data
	if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}
	return &data, nil
}

// Result counts what Apply did.
type Result struct {
	Posts   int
	Terms   int
	Skipped int
}

// Apply creates every record of data. Records whose key is already taken
// are skipped, so seeding an existing database is a no-op. Any other error
// stops the run.
func Apply(ctx context.Context, posts db.PostStore, terms db.TermStore, data *Data) (Result, error) {
	ctx, span := tracer.Start(ctx, "seed.Apply")
	defer span.End()

	var res Result
	for i, doc := range data.Posts {
		post, err := doc.Post()
		if err != nil {
			return res, fmt.Errorf("post #%d: %w", i, err)
		}
		switch err := posts.CreatePost(ctx, post); {
		case err == nil:
			res.Posts++
		case errors.Is(err, model.ErrConflict):
			slog.DebugContext(ctx, "seed: post exists", "key", post.Key().String())
			res.Skipped++
		default:
			return res, fmt.Errorf("post #%d: %w", i, err)
		}
	}
	for i, term := range data.Glossary {
		switch err := terms.CreateTerm(ctx, term); {
		case err == nil:
			res.Terms++
		case errors.Is(err, model.ErrConflict):
			slog.DebugContext(ctx, "seed: term exists", "key", term.Key().String())
			res.Skipped++
		default:
			return res, fmt.Errorf("term #%d: %w", i, err)
		}
	}
	span.SetAttributes(
		attribute.Int("posts", res.Posts),
		attribute.Int("terms", res.Terms),
		attribute.Int("skipped", res.Skipped),
	)
	return res, nil
}

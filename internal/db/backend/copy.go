// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quixsi/glossa/internal/model"
)

// CopyStats counts the records Copy created and skipped.
type CopyStats struct {
	Posts       int
	Terms       int
	Subscribers int
	Skipped     int
}

// Copy creates every record of src in dst. Records that already exist in
// dst are logged and skipped. Subscribers keep their id and sign-up time.
func Copy(ctx context.Context, logger *slog.Logger, dst, src *Database) (CopyStats, error) {
	var stats CopyStats
	skip := func(kind, key string, err error) error {
		if !errors.Is(err, model.ErrConflict) {
			return fmt.Errorf("copy %s %s: %w", kind, key, err)
		}
		logger.WarnContext(ctx, "skip existing record", "kind", kind, "key", key)
		stats.Skipped++
		return nil
	}

	posts, err := src.ListPosts(ctx)
	if err != nil {
		return stats, fmt.Errorf("list posts: %w", err)
	}
	for _, p := range posts {
		if err := dst.CreatePost(ctx, p); err != nil {
			if err := skip("post", p.Key().String(), err); err != nil {
				return stats, err
			}
			continue
		}
		stats.Posts++
	}

	terms, err := src.ListTerms(ctx)
	if err != nil {
		return stats, fmt.Errorf("list glossary: %w", err)
	}
	for _, t := range terms {
		if err := dst.CreateTerm(ctx, t); err != nil {
			if err := skip("term", t.Key().String(), err); err != nil {
				return stats, err
			}
			continue
		}
		stats.Terms++
	}

	subs, err := src.ListSubscribers(ctx)
	if err != nil {
		return stats, fmt.Errorf("list subscribers: %w", err)
	}
	for _, s := range subs {
		if _, err := dst.CreateSubscriber(ctx, s); err != nil {
			if err := skip("subscriber", s.ID.String(), err); err != nil {
				return stats, err
			}
			continue
		}
		stats.Subscribers++
	}
	return stats, nil
}

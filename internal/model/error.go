// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record exists at the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a create would occupy an existing key, or
	// when a bilingual post and a single-language post would share a slug.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidArgument is returned for malformed records and key mismatches.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCorruption is returned when the persisted form cannot be parsed.
	ErrCorruption = errors.New("persisted data corrupted")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/model"
)

// saveToFile replaces filename with the JSON encoding of v. The data is
// written to a temporary file in the same directory and renamed over the
// target, so readers of the file never observe a partial write.
func saveToFile(ctx context.Context, filename string, v any) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "SaveToFile")
	defer span.End()

	fileData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fail(span, err)
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(span, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".*.tmp")
	if err != nil {
		return fail(span, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(fileData); err != nil {
		tmp.Close()
		return fail(span, fmt.Errorf("write %s: %w", tmp.Name(), err))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fail(span, fmt.Errorf("sync %s: %w", tmp.Name(), err))
	}
	if err := tmp.Close(); err != nil {
		return fail(span, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fail(span, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fail(span, fmt.Errorf("replace %s: %w", filename, err))
	}
	return nil
}

// loadFromFile decodes filename into v. A missing file leaves v untouched;
// an unparsable one is reported as model.ErrCorruption.
func loadFromFile(filename string, v any) error {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		// File does not exist, nothing to load
		return nil
	}

	fileData, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(fileData, v); err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrCorruption, filename, err)
	}
	return nil
}

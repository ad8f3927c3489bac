// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/model"
)

var tracer = otel.GetTracerProvider().Tracer("github.com/quixsi/glossa/internal/db/jsondb")

func keyAttributes(slug string, lang model.Language) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String("slug", slug),
		attribute.String("language", lang.String()),
	)
}

func fail(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

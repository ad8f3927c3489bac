// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/glossa/internal/model"
)

// StatusFor maps a store error to its HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, model.ErrInvalidArgument):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

// abort records err on span and writes the JSON error response. Server
// errors are logged, their message is not sent to the client.
func abort(ctx context.Context, c *gin.Context, logger *slog.Logger, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	status, code := StatusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request failed", "error", err)
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": msg})
}

// keyParams reads the :slug and :lang path parameters.
func keyParams(c *gin.Context) (string, model.Language, error) {
	lang, err := model.ParseLanguage(c.Param("lang"))
	if err != nil {
		return "", "", err
	}
	return c.Param("slug"), lang, nil
}

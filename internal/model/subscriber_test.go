// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriberJSONKeys(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(&Subscriber{ID: uuid.New(), CreatedAt: &createdAt, Email: "ada@example.com", Language: LanguageEnglish})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "createdAt")
	assert.NotContains(t, fields, "created_at")
}

func TestSubscriberValidate(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{email: "ada@example.com", valid: true},
		{email: "Ada@Example.com", valid: true},
		{email: "not-an-email"},
		{email: "Ada <ada@example.com>"},
		{email: "<ada@example.com>"},
		{email: `"Ada" <ada@example.com>`},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := (&Subscriber{Email: tt.email, Language: LanguageItalian}).Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

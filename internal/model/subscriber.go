// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subscriber is a newsletter recipient.
type Subscriber struct {
	ID        uuid.UUID  `json:"id" form:"-"`
	CreatedAt *time.Time `json:"createdAt" form:"-"`
	Email     string     `json:"email" form:"email"`
	Language  Language   `json:"language" form:"language"`
}

// NormalizedEmail is the form used for uniqueness checks.
func (s *Subscriber) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(s.Email))
}

func (s *Subscriber) Validate() error {
	addr, err := mail.ParseAddress(s.Email)
	if err != nil {
		return invalidf("email %q: %v", s.Email, err)
	}
	// A display name or angle brackets would make one mailbox look like
	// several distinct emails.
	if addr.Address != strings.TrimSpace(s.Email) {
		return invalidf("email %q: only a bare address is accepted", s.Email)
	}
	if !s.Language.IsSingle() {
		return invalidf("subscriber language must be %q or %q, got %q", LanguageEnglish, LanguageItalian, s.Language)
	}
	return nil
}

func (s *Subscriber) Clone() *Subscriber {
	c := *s
	if s.CreatedAt != nil {
		t := *s.CreatedAt
		c.CreatedAt = &t
	}
	return &c
}

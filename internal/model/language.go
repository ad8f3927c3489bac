// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"fmt"
	"regexp"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageItalian Language = "it"
	// LanguageBoth marks a post carrying both payloads inline.
	LanguageBoth Language = "both"
)

// DisplayLanguages are the languages a reader can request.
var DisplayLanguages = []Language{LanguageEnglish, LanguageItalian}

func ParseLanguage(s string) (Language, error) {
	switch l := Language(s); l {
	case LanguageEnglish, LanguageItalian, LanguageBoth:
		return l, nil
	}
	return "", invalidf("unknown language %q", s)
}

// IsSingle reports whether l names exactly one display language.
func (l Language) IsSingle() bool {
	return l == LanguageEnglish || l == LanguageItalian
}

func (l Language) String() string { return string(l) }

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return invalidf("slug %q is not url-safe", slug)
	}
	return nil
}

// Key addresses exactly one record inside a store.
type Key struct {
	Slug     string
	Language Language
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Slug, k.Language)
}

// Bytes is the storage key. Slugs never contain '/', so the encoding is unambiguous.
func (k Key) Bytes() []byte {
	return []byte(k.String())
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

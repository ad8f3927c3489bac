// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

// GlossaryTerm is one language variant of a dictionary entry. Variants of
// the same slug are independent records.
type GlossaryTerm struct {
	Slug          string   `json:"slug" yaml:"slug"`
	Language      Language `json:"language" yaml:"language"`
	Term          string   `json:"term" yaml:"term"`
	Category      string   `json:"category" yaml:"category"`
	Pronunciation string   `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
	Definition    string   `json:"definition" yaml:"definition"`
	Explanation   string   `json:"explanation" yaml:"explanation"`
	Examples      []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	RelatedTerms  []string `json:"relatedTerms,omitempty" yaml:"relatedTerms,omitempty"`
	Etymology     string   `json:"etymology,omitempty" yaml:"etymology,omitempty"`
}

func (t GlossaryTerm) Key() Key {
	return Key{Slug: t.Slug, Language: t.Language}
}

func (t GlossaryTerm) Clone() GlossaryTerm {
	t.Examples = cloneStrings(t.Examples)
	t.RelatedTerms = cloneStrings(t.RelatedTerms)
	return t
}

func (t GlossaryTerm) Validate() error {
	if err := ValidateSlug(t.Slug); err != nil {
		return err
	}
	if !t.Language.IsSingle() {
		return invalidf("term %q: language must be %q or %q, got %q", t.Slug, LanguageEnglish, LanguageItalian, t.Language)
	}
	if t.Term == "" {
		return invalidf("term %q: term is required", t.Slug)
	}
	if t.Definition == "" {
		return invalidf("term %q: definition is required", t.Slug)
	}
	return nil
}

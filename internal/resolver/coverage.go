// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jeremywohl/flatten/v2"

	"github.com/quixsi/glossa/internal/model"
)

// PostCoverage describes in which languages a post slug can be read.
type PostCoverage struct {
	Slug      string           `json:"slug"`
	Languages []model.Language `json:"languages"`
	Missing   []model.Language `json:"missing"`
	// Fallback lists the Italian fields of a bilingual post that are shown
	// in English.
	Fallback []string `json:"fallback,omitempty"`
}

// TermCoverage describes which language variants of a glossary slug exist.
type TermCoverage struct {
	Slug      string           `json:"slug"`
	Languages []model.Language `json:"languages"`
	Missing   []model.Language `json:"missing"`
}

type Coverage struct {
	Posts    []PostCoverage `json:"posts"`
	Glossary []TermCoverage `json:"glossary"`
}

// Coverage reports the translation state of every slug, ordered by slug.
func (r *Resolver) Coverage(ctx context.Context) (Coverage, error) {
	ctx, span := tracer.Start(ctx, "Resolver.Coverage")
	defer span.End()

	posts, err := r.posts.ListPosts(ctx)
	if err != nil {
		return Coverage{}, err
	}
	terms, err := r.terms.ListTerms(ctx)
	if err != nil {
		return Coverage{}, err
	}

	postsBySlug := map[string]*PostCoverage{}
	for _, post := range posts {
		pc, ok := postsBySlug[post.Slug]
		if !ok {
			pc = &PostCoverage{Slug: post.Slug}
			postsBySlug[post.Slug] = pc
		}
		switch body := post.Body.(type) {
		case model.Bilingual:
			pc.Languages = append(pc.Languages, model.DisplayLanguages...)
			fields, err := fallbackFields(body)
			if err != nil {
				return Coverage{}, fmt.Errorf("post %q: %w", post.Key(), err)
			}
			pc.Fallback = fields
		default:
			pc.Languages = append(pc.Languages, body.Language())
		}
	}

	termsBySlug := map[string]*TermCoverage{}
	for _, term := range terms {
		tc, ok := termsBySlug[term.Slug]
		if !ok {
			tc = &TermCoverage{Slug: term.Slug}
			termsBySlug[term.Slug] = tc
		}
		tc.Languages = append(tc.Languages, term.Language)
	}

	res := Coverage{
		Posts:    make([]PostCoverage, 0, len(postsBySlug)),
		Glossary: make([]TermCoverage, 0, len(termsBySlug)),
	}
	for _, pc := range postsBySlug {
		pc.Languages, pc.Missing = split(pc.Languages)
		res.Posts = append(res.Posts, *pc)
	}
	for _, tc := range termsBySlug {
		tc.Languages, tc.Missing = split(tc.Languages)
		res.Glossary = append(res.Glossary, *tc)
	}
	sort.Slice(res.Posts, func(i, j int) bool { return res.Posts[i].Slug < res.Posts[j].Slug })
	sort.Slice(res.Glossary, func(i, j int) bool { return res.Glossary[i].Slug < res.Glossary[j].Slug })
	return res, nil
}

// split partitions the display languages into present and missing ones.
func split(present []model.Language) (have, missing []model.Language) {
	have, missing = []model.Language{}, []model.Language{}
	for _, lang := range model.DisplayLanguages {
		if slices.Contains(present, lang) {
			have = append(have, lang)
		} else {
			missing = append(missing, lang)
		}
	}
	return have, missing
}

// fallbackFields returns the top level fields a reader of the Italian
// version sees in English. A field is replaced as a whole: a string when
// the Italian one is empty, a list when the Italian one has no elements.
func fallbackFields(b model.Bilingual) ([]string, error) {
	en, err := flattenContent(b.English)
	if err != nil {
		return nil, err
	}
	it, err := flattenContent(b.Italian)
	if err != nil {
		return nil, err
	}

	enFields, itFields := fieldsSet(en), fieldsSet(it)
	fields := make([]string, 0, len(enFields))
	for field := range enFields {
		if !itFields[field] {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields, nil
}

// fieldsSet groups flattened keys by top level field. A field counts as set
// when it is a non-empty string or a list with at least one element.
func fieldsSet(flat map[string]any) map[string]bool {
	set := map[string]bool{}
	for key, value := range flat {
		field, rest, nested := strings.Cut(key, ".")
		if nested && rest != "" {
			set[field] = true
			continue
		}
		if !isEmpty(value) {
			set[field] = true
		}
	}
	return set
}

func flattenContent(c model.PostContent) (map[string]any, error) {
	out, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	flattened, err := flatten.FlattenString(string(out), "", flatten.DotStyle)
	if err != nil {
		return nil, err
	}
	result := map[string]any{}
	if err := json.Unmarshal([]byte(flattened), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func isEmpty(v any) bool {
	s, ok := v.(string)
	return v == nil || (ok && s == "")
}

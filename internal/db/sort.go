// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package db

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quixsi/glossa/internal/model"
)

// SortPosts orders posts newest first. Ties are broken by key so listings
// are stable across backends.
func SortPosts(posts []model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, tj := posts[i].PublishedAt(), posts[j].PublishedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return posts[i].Key().String() < posts[j].Key().String()
	})
}

// SortTerms orders terms alphabetically by display term.
func SortTerms(terms []model.GlossaryTerm) {
	sort.SliceStable(terms, func(i, j int) bool {
		ti, tj := strings.ToLower(terms[i].Term), strings.ToLower(terms[j].Term)
		if ti != tj {
			return ti < tj
		}
		return terms[i].Key().String() < terms[j].Key().String()
	})
}

// SortSubscribers orders subscribers by sign-up time.
func SortSubscribers(subs []*model.Subscriber) {
	sort.SliceStable(subs, func(i, j int) bool {
		ci, cj := subs[i].CreatedAt, subs[j].CreatedAt
		if ci == nil || cj == nil {
			return cj != nil
		}
		if !ci.Equal(*cj) {
			return ci.Before(*cj)
		}
		return subs[i].ID.String() < subs[j].ID.String()
	})
}

// PostConflicts returns the keys that must be free before post can be created.
func PostConflicts(slug string, lang model.Language) []model.Key {
	if lang == model.LanguageBoth {
		return []model.Key{
			{Slug: slug, Language: model.LanguageBoth},
			{Slug: slug, Language: model.LanguageEnglish},
			{Slug: slug, Language: model.LanguageItalian},
		}
	}
	return []model.Key{
		{Slug: slug, Language: lang},
		{Slug: slug, Language: model.LanguageBoth},
	}
}

// CheckKey verifies that a record addressed by (slug, lang) actually carries that key.
func CheckKey(slug string, lang model.Language, got model.Key) error {
	if got.Slug != slug || got.Language != lang {
		return fmt.Errorf("%w: record key %s does not match %s/%s", model.ErrInvalidArgument, got, slug, lang)
	}
	return nil
}

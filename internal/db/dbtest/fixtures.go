// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package dbtest holds the behaviour every store backend has to provide.
// Backends run the suites from their own tests.
package dbtest

import (
	"github.com/quixsi/glossa/internal/model"
)

// NewPost returns a valid single-language post.
func NewPost(slug string, lang model.Language, title string) model.Post {
	return model.Post{
		Slug:       slug,
		Date:       "2024-03-01",
		Author:     model.Author{Name: "Giulia Rossi", Avatar: "/avatars/giulia.png"},
		CoverImage: "https://images.example.com/" + slug + ".jpg",
		Body: model.SingleLanguage{
			Lang: lang,
			Content: model.PostContent{
				Title:   title,
				Excerpt: "Excerpt of " + title,
				Content: "# " + title + "\n\nBody.",
				Tags:    []string{"ai", "ethics"},
			},
		},
	}
}

// NewBilingualPost returns a valid post carrying both languages.
func NewBilingualPost(slug, title, titleIt string) model.Post {
	return model.Post{
		Slug:   slug,
		Date:   "2024-03-02",
		Author: model.Author{Name: "Marco Bianchi", Avatar: "/avatars/marco.png"},
		Body: model.Bilingual{
			English: model.PostContent{
				Title:   title,
				Excerpt: "Excerpt",
				Content: "Content",
				Tags:    []string{"news"},
			},
			Italian: model.PostContent{
				Title: titleIt,
			},
		},
	}
}

// NewTerm returns a valid glossary term.
func NewTerm(slug string, lang model.Language, term string) model.GlossaryTerm {
	return model.GlossaryTerm{
		Slug:        slug,
		Language:    lang,
		Term:        term,
		Category:    "fundamentals",
		Definition:  "Definition of " + term,
		Explanation: "Longer **markdown** explanation of " + term,
		Examples:    []string{"first example"},
	}
}

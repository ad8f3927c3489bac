// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

// Link points at a related record that resolved in the reader's language.
type Link struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// PostView is a post as shown to a reader of Language.
type PostView struct {
	Slug       string   `json:"slug"`
	Language   Language `json:"language"`
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Date       string   `json:"date"`
	Author     Author   `json:"author"`
	CoverImage string   `json:"coverImage"`
	Related    []Link   `json:"related"`
}

// TermView is a glossary term as shown to a reader of Language.
type TermView struct {
	Slug          string   `json:"slug"`
	Language      Language `json:"language"`
	Term          string   `json:"term"`
	Category      string   `json:"category"`
	Pronunciation string   `json:"pronunciation,omitempty"`
	Definition    string   `json:"definition"`
	Explanation   string   `json:"explanation"`
	Examples      []string `json:"examples"`
	Etymology     string   `json:"etymology,omitempty"`
	Related       []Link   `json:"related"`
}

// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"encoding/json"
	"time"
)

type Author struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// PostContent is the language specific part of a post.
type PostContent struct {
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

func (c PostContent) clone() PostContent {
	c.Tags = cloneStrings(c.Tags)
	return c
}

// PostBody is either SingleLanguage or Bilingual.
type PostBody interface {
	Language() Language
	// Localized returns the content a reader of lang sees and whether the
	// body can be shown in lang at all.
	Localized(lang Language) (PostContent, bool)
	cloneBody() PostBody
}

// SingleLanguage is a post written in exactly one language. It is never
// shown to readers of the other language.
type SingleLanguage struct {
	Lang    Language
	Content PostContent
}

func (s SingleLanguage) Language() Language { return s.Lang }

func (s SingleLanguage) Localized(lang Language) (PostContent, bool) {
	if lang != s.Lang {
		return PostContent{}, false
	}
	return s.Content.clone(), true
}

func (s SingleLanguage) cloneBody() PostBody {
	s.Content = s.Content.clone()
	return s
}

// Bilingual is a post carrying both payloads. English is the primary
// payload, Italian fields left empty fall back to it.
type Bilingual struct {
	English PostContent
	Italian PostContent
}

func (b Bilingual) Language() Language { return LanguageBoth }

func (b Bilingual) Localized(lang Language) (PostContent, bool) {
	switch lang {
	case LanguageEnglish:
		return b.English.clone(), true
	case LanguageItalian:
		c := b.English.clone()
		if b.Italian.Title != "" {
			c.Title = b.Italian.Title
		}
		if b.Italian.Excerpt != "" {
			c.Excerpt = b.Italian.Excerpt
		}
		if b.Italian.Content != "" {
			c.Content = b.Italian.Content
		}
		if len(b.Italian.Tags) > 0 {
			c.Tags = cloneStrings(b.Italian.Tags)
		}
		return c, true
	}
	return PostContent{}, false
}

func (b Bilingual) cloneBody() PostBody {
	b.English = b.English.clone()
	b.Italian = b.Italian.clone()
	return b
}

type Post struct {
	Slug         string
	Date         string
	Author       Author
	CoverImage   string
	RelatedPosts []string
	Body         PostBody
}

func (p Post) Language() Language {
	if p.Body == nil {
		return ""
	}
	return p.Body.Language()
}

func (p Post) Key() Key {
	return Key{Slug: p.Slug, Language: p.Language()}
}

// Clone returns a deep copy of p.
func (p Post) Clone() Post {
	p.RelatedPosts = cloneStrings(p.RelatedPosts)
	if p.Body != nil {
		p.Body = p.Body.cloneBody()
	}
	return p
}

// PublishedAt parses Date. Invalid dates yield the zero time.
func (p Post) PublishedAt() time.Time {
	t, _ := parseDate(p.Date)
	return t
}

func (p Post) Validate() error {
	if err := ValidateSlug(p.Slug); err != nil {
		return err
	}
	if _, err := parseDate(p.Date); err != nil {
		return invalidf("post %q: date %q is not ISO 8601", p.Slug, p.Date)
	}

	var primary PostContent
	switch b := p.Body.(type) {
	case SingleLanguage:
		if !b.Lang.IsSingle() {
			return invalidf("post %q: single language body with language %q", p.Slug, b.Lang)
		}
		primary = b.Content
	case Bilingual:
		primary = b.English
	default:
		return invalidf("post %q: missing body", p.Slug)
	}
	if primary.Title == "" {
		return invalidf("post %q: title is required", p.Slug)
	}
	if primary.Content == "" {
		return invalidf("post %q: content is required", p.Slug)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// PostDocument is the flat wire form of a post. The *It shadow fields are
// only valid when Language is LanguageBoth.
type PostDocument struct {
	Slug         string   `json:"slug" yaml:"slug"`
	Language     Language `json:"language" yaml:"language"`
	Title        string   `json:"title" yaml:"title"`
	TitleIt      string   `json:"titleIt,omitempty" yaml:"titleIt,omitempty"`
	Excerpt      string   `json:"excerpt" yaml:"excerpt"`
	ExcerptIt    string   `json:"excerptIt,omitempty" yaml:"excerptIt,omitempty"`
	Content      string   `json:"content" yaml:"content"`
	ContentIt    string   `json:"contentIt,omitempty" yaml:"contentIt,omitempty"`
	Date         string   `json:"date" yaml:"date"`
	Author       Author   `json:"author" yaml:"author"`
	CoverImage   string   `json:"coverImage" yaml:"coverImage"`
	Tags         []string `json:"tags" yaml:"tags"`
	TagsIt       []string `json:"tagsIt,omitempty" yaml:"tagsIt,omitempty"`
	RelatedPosts []string `json:"relatedPosts,omitempty" yaml:"relatedPosts,omitempty"`
}

func (p Post) Document() PostDocument {
	p = p.Clone()
	d := PostDocument{
		Slug:         p.Slug,
		Language:     p.Language(),
		Date:         p.Date,
		Author:       p.Author,
		CoverImage:   p.CoverImage,
		RelatedPosts: p.RelatedPosts,
	}
	var primary PostContent
	switch b := p.Body.(type) {
	case SingleLanguage:
		primary = b.Content
	case Bilingual:
		primary = b.English
		d.TitleIt = b.Italian.Title
		d.ExcerptIt = b.Italian.Excerpt
		d.ContentIt = b.Italian.Content
		d.TagsIt = b.Italian.Tags
	}
	d.Title = primary.Title
	d.Excerpt = primary.Excerpt
	d.Content = primary.Content
	d.Tags = primary.Tags
	return d
}

// Post converts the wire form into a post. It does not run Validate.
func (d PostDocument) Post() (Post, error) {
	p := Post{
		Slug:         d.Slug,
		Date:         d.Date,
		Author:       d.Author,
		CoverImage:   d.CoverImage,
		RelatedPosts: cloneStrings(d.RelatedPosts),
	}
	primary := PostContent{
		Title:   d.Title,
		Excerpt: d.Excerpt,
		Content: d.Content,
		Tags:    cloneStrings(d.Tags),
	}
	switch d.Language {
	case LanguageBoth:
		p.Body = Bilingual{
			English: primary,
			Italian: PostContent{
				Title:   d.TitleIt,
				Excerpt: d.ExcerptIt,
				Content: d.ContentIt,
				Tags:    cloneStrings(d.TagsIt),
			},
		}
	case LanguageEnglish, LanguageItalian:
		if d.TitleIt != "" || d.ExcerptIt != "" || d.ContentIt != "" || len(d.TagsIt) > 0 {
			return Post{}, invalidf("post %q: shadow fields require language %q", d.Slug, LanguageBoth)
		}
		p.Body = SingleLanguage{Lang: d.Language, Content: primary}
	default:
		return Post{}, invalidf("post %q: unknown language %q", d.Slug, d.Language)
	}
	return p, nil
}

func (p Post) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Document())
}

func (p *Post) UnmarshalJSON(data []byte) error {
	var d PostDocument
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	post, err := d.Post()
	if err != nil {
		return err
	}
	*p = post
	return nil
}

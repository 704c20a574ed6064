package newsparse

import (
	"context"
	"time"
)

// ItemType identifies the kind of a ContentItem.
type ItemType string

// Content item types.
const (
	ItemText  ItemType = "text"
	ItemImage ItemType = "image"
	ItemVideo ItemType = "video"
	ItemAudio ItemType = "audio"
	ItemEmbed ItemType = "embed"
)

// ContentItem is one unit of an article body: a text paragraph or a
// reference to embedded media.
type ContentItem struct {
	Type ItemType `json:"type"`

	// Text holds the normalized paragraph text, or the caption/alt text
	// of a media item.
	Text string `json:"text,omitempty"`

	// Src is the resolved URL of a media item.
	Src string `json:"src,omitempty"`
	Alt string `json:"alt,omitempty"`

	// Level is 1-6 when the paragraph came from a heading element.
	Level int `json:"level,omitempty"`

	// HTML is the outer HTML of the source node, used for rich rendering.
	HTML string `json:"-"`
}

// IsMedia reports whether the item references embedded media.
func (i ContentItem) IsMedia() bool {
	return i.Type != ItemText
}

// Comment is a reader comment attached to an article.
type Comment struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`

	// Date is a canonical date, DateNotFound, or empty when the page
	// carries no date for the comment.
	Date string `json:"date,omitempty"`
}

// Article is the structured record extracted from one document.
type Article struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Site string `json:"site"`

	AboveTitle string        `json:"aboveTitle,omitempty"`
	Title      string        `json:"title"`
	Subtitle   string        `json:"subtitle,omitempty"`
	Summary    string        `json:"summary,omitempty"`
	Content    []ContentItem `json:"content"`
	Tags       []string      `json:"tags,omitempty"`

	RawCategory string   `json:"rawCategory,omitempty"`
	Category    Category `json:"category"`

	// Date is the canonical publish date in the source calendar, or
	// DateNotFound.
	Date string `json:"date"`

	// PublishedAt is Date converted to the Gregorian calendar. Zero when
	// the date is unknown.
	PublishedAt time.Time `json:"publishedAt,omitzero"`

	Comments []Comment `json:"comments,omitempty"`

	// Suspect is set when a field the adapter expects was not found but
	// the record was still produced.
	Suspect bool `json:"suspect,omitempty"`

	ContentHash string    `json:"contentHash"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// Text returns the text paragraphs of the article body joined by newlines.
func (a *Article) Text() string {
	var n int
	for _, item := range a.Content {
		if item.Type == ItemText {
			n += len(item.Text) + 1
		}
	}
	b := make([]byte, 0, n)
	for _, item := range a.Content {
		if item.Type != ItemText {
			continue
		}
		if len(b) > 0 {
			b = append(b, '\n')
		}
		b = append(b, item.Text...)
	}
	return string(b)
}

// Validate returns an error if the article lacks the fields every record
// must carry.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.Category.Major == "" {
		return Errorf(EINVALID, "article major category required")
	}
	return nil
}

// ArticleExtractor maps one fetched document to one Article.
type ArticleExtractor interface {
	// Extract parses html fetched from rawURL and returns the record.
	// Returns ENOTARTICLE when the URL or document is not an article page
	// and EMISSING when a mandatory field is absent.
	Extract(ctx context.Context, rawURL string, html string) (*Article, error)
}

// ArticleWriter persists or emits extracted articles.
type ArticleWriter interface {
	WriteArticle(ctx context.Context, article *Article) error
}

// ArticleStore is an ArticleWriter with atomic batch semantics:
// WriteArticle writes to a pending location, Commit makes the batch
// permanent and Abort discards it.
type ArticleStore interface {
	ArticleWriter
	Commit() error
	Abort() error
}

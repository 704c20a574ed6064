package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/newsparse"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements newsparse.ContentExtractor at compile time.
var _ newsparse.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*newsparse.ExtractResult, error) {
	return e.ExtractURL(rawHTML, nil)
}

// ExtractURL is Extract with the page URL, used to resolve relative links.
func (e *Extractor) ExtractURL(rawHTML string, u *url.URL) (*newsparse.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsparse.Errorf(newsparse.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}

	return &newsparse.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Excerpt:     article.Excerpt,
	}, nil
}

package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/newsparse"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements newsparse.ContentExtractor at compile time.
var _ newsparse.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	// Language rejects pages in other languages when set (e.g. "fa").
	Language string
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*newsparse.ExtractResult, error) {
	return e.extract(rawHTML, nil)
}

// ExtractURL is Extract with the page URL, used to resolve relative links
// and read the site name.
func (e *Extractor) ExtractURL(rawHTML string, u *url.URL) (*newsparse.ExtractResult, error) {
	return e.extract(rawHTML, u)
}

func (e *Extractor) extract(rawHTML string, u *url.URL) (*newsparse.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsparse.Errorf(newsparse.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		OriginalURL:    u,
		TargetLanguage: e.Language,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &newsparse.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Excerpt:     result.Metadata.Description,
		Date:        result.Metadata.Date,
		Tags:        result.Metadata.Tags,
		Categories:  result.Metadata.Categories,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

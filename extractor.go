package newsparse

import "time"

// ExtractResult holds the main content found by a ContentExtractor.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// Excerpt is the lead paragraph or meta description, if any.
	Excerpt string

	// Date is the publish time found in page metadata; zero when absent.
	Date time.Time

	Tags       []string
	Categories []string
}

// ContentExtractor finds the main content of pages without a site adapter
// by removing boilerplate.
type ContentExtractor interface {
	// Extract processes raw HTML and returns the main content.
	// The title comes from page metadata (meta tags, JSON+LD, etc.).
	// The content HTML has boilerplate removed but preserves structure.
	Extract(html string) (*ExtractResult, error)
}

package newsparse

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	// Used to render article bodies for the markdown writer.
	Convert(html string) (string, error)
}

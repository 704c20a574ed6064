package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/newsparse"
)

// Ensure Converter implements newsparse.Converter at compile time.
var _ newsparse.Converter = (*Converter)(nil)

// Directional marks survive in Persian copy-paste and break Markdown
// syntax when they sit between a marker and its text.
var bidiMarks = strings.NewReplacer(
	"\u200e", "", "\u200f", "",
	"\u202a", "", "\u202b", "", "\u202c", "", "\u202d", "", "\u202e", "",
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Converter renders article bodies as Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an article body into Markdown. Directional marks are
// dropped and paragraph gaps collapse to one blank line.
func (c *Converter) Convert(html string) (string, error) {
	html = bidiMarks.Replace(html)
	if strings.TrimSpace(html) == "" {
		return "", newsparse.Errorf(newsparse.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", newsparse.Errorf(newsparse.EINTERNAL, "convert html: %v", err)
	}

	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result), nil
}

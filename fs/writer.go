// Package fs writes extracted articles as markdown files.
package fs

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/newsparse"
	"gopkg.in/yaml.v3"
)

// URLToPath converts an article URL to a relative file path under the
// site directory.
// Example: https://www.irna.ir/news/123/title → irna/news/123/title.md
func URLToPath(site, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if site == "" {
		site = strings.TrimPrefix(u.Hostname(), "www.")
	}

	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return filepath.Join(site, "index.md"), nil
	}

	path = strings.TrimPrefix(path, "/")
	if strings.HasSuffix(path, "/") {
		return filepath.Join(site, path+"index.md"), nil
	}

	// Query strings identify articles on some sites.
	if u.RawQuery != "" {
		path += "_" + strings.NewReplacer("=", "-", "&", "_").Replace(u.RawQuery)
	}
	return filepath.Join(site, path+".md"), nil
}

type frontMatter struct {
	ID          string   `yaml:"id"`
	Source      string   `yaml:"source"`
	Site        string   `yaml:"site"`
	Title       string   `yaml:"title"`
	AboveTitle  string   `yaml:"above_title,omitempty"`
	Subtitle    string   `yaml:"subtitle,omitempty"`
	Summary     string   `yaml:"summary,omitempty"`
	Date        string   `yaml:"date"`
	Published   string   `yaml:"published,omitempty"`
	Category    []string `yaml:"category,flow"`
	RawCategory string   `yaml:"raw_category,omitempty"`
	Tags        []string `yaml:"tags,omitempty,flow"`
	Comments    int      `yaml:"comments,omitempty"`
	Suspect     bool     `yaml:"suspect,omitempty"`
	Hash        string   `yaml:"hash"`
	Extracted   string   `yaml:"extracted"`
}

// FormatArticle formats an article body with YAML frontmatter.
func FormatArticle(a *newsparse.Article, body string) (string, error) {
	fm := frontMatter{
		ID:          a.ID,
		Source:      a.URL,
		Site:        a.Site,
		Title:       a.Title,
		AboveTitle:  a.AboveTitle,
		Subtitle:    a.Subtitle,
		Summary:     a.Summary,
		Date:        a.Date,
		Category:    categoryPath(a.Category),
		RawCategory: a.RawCategory,
		Tags:        a.Tags,
		Comments:    len(a.Comments),
		Suspect:     a.Suspect,
		Hash:        a.ContentHash,
		Extracted:   a.ExtractedAt.Format("2006-01-02"),
	}
	if !a.PublishedAt.IsZero() {
		fm.Published = a.PublishedAt.Format("2006-01-02")
	}

	data, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}

func categoryPath(c newsparse.Category) []string {
	out := []string{string(c.Major)}
	for _, t := range []newsparse.Topic{c.Minor, c.Subminor} {
		if t != "" {
			out = append(out, string(t))
		}
	}
	return out
}

// ArticleHTML renders the article body as HTML: text items as paragraphs
// or headings, media items as images and links.
func ArticleHTML(a *newsparse.Article) string {
	var b strings.Builder
	for _, item := range a.Content {
		switch item.Type {
		case newsparse.ItemText:
			if item.HTML != "" {
				b.WriteString(item.HTML)
				break
			}
			tag := "p"
			if item.Level > 0 {
				tag = fmt.Sprintf("h%d", item.Level)
			}
			fmt.Fprintf(&b, "<%s>%s</%s>", tag, html.EscapeString(item.Text), tag)
		case newsparse.ItemImage:
			fmt.Fprintf(&b, `<p><img src="%s" alt="%s"></p>`, html.EscapeString(item.Src), html.EscapeString(item.Alt))
		default:
			label := item.Text
			if label == "" {
				label = string(item.Type)
			}
			fmt.Fprintf(&b, `<p><a href="%s">%s</a></p>`, html.EscapeString(item.Src), html.EscapeString(label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Ensure Writer implements newsparse.ArticleWriter at compile time.
var _ newsparse.ArticleWriter = (*Writer)(nil)

// Writer writes articles as markdown files to a directory.
type Writer struct {
	baseDir string
	conv    newsparse.Converter
}

// NewWriter creates a new Writer that writes to the given base directory.
// Bodies are rendered with conv; a nil conv writes plain paragraphs.
func NewWriter(baseDir string, conv newsparse.Converter) *Writer {
	return &Writer{baseDir: baseDir, conv: conv}
}

// WriteArticle writes an article to disk as a markdown file.
func (w *Writer) WriteArticle(ctx context.Context, a *newsparse.Article) error {
	if err := a.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(a.Site, a.URL)
	if err != nil {
		return err
	}

	body, err := w.body(a)
	if err != nil {
		return err
	}
	content, err := FormatArticle(a, body)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

func (w *Writer) body(a *newsparse.Article) (string, error) {
	if len(a.Content) == 0 {
		return "", nil
	}
	if w.conv == nil {
		return strings.ReplaceAll(a.Text(), "\n", "\n\n") + "\n", nil
	}
	md, err := w.conv.Convert(ArticleHTML(a))
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", a.URL, err)
	}
	return md + "\n", nil
}

// Ensure BatchWriter implements newsparse.ArticleStore at compile time.
var _ newsparse.ArticleStore = (*BatchWriter)(nil)

// BatchWriter writes articles into baseDir/name.tmp and moves the
// directory to baseDir/name atomically on Commit.
type BatchWriter struct {
	baseDir string
	name    string
	w       *Writer
}

// NewBatchWriter creates a new BatchWriter.
func NewBatchWriter(baseDir, name string, conv newsparse.Converter) *BatchWriter {
	b := &BatchWriter{baseDir: baseDir, name: name}
	b.w = NewWriter(b.tempDir(), conv)
	return b
}

func (b *BatchWriter) tempDir() string {
	return filepath.Join(b.baseDir, b.name+".tmp")
}

func (b *BatchWriter) finalDir() string {
	return filepath.Join(b.baseDir, b.name)
}

// WriteArticle writes the article to the temporary directory.
func (b *BatchWriter) WriteArticle(ctx context.Context, a *newsparse.Article) error {
	return b.w.WriteArticle(ctx, a)
}

// Commit replaces the final directory with the temporary one.
func (b *BatchWriter) Commit() error {
	if err := os.RemoveAll(b.finalDir()); err != nil {
		return err
	}
	return os.Rename(b.tempDir(), b.finalDir())
}

// Abort discards the temporary directory.
func (b *BatchWriter) Abort() error {
	return os.RemoveAll(b.tempDir())
}

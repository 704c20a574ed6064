package goquery

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/google/uuid"
)

// Ensure GenericExtractor implements newsparse.ArticleExtractor at compile time.
var _ newsparse.ArticleExtractor = (*GenericExtractor)(nil)

// GenericSite is the Site of records produced without an adapter.
const GenericSite = "generic"

// GenericExtractor builds records for hosts without an adapter from the
// output of boilerplate-removal extractors. Extractors are tried in order
// until one yields content.
type GenericExtractor struct {
	extractors []newsparse.ContentExtractor
	mapper     newsparse.CategoryMapper
	logger     *slog.Logger
	now        func() time.Time
}

// GenericOption configures a GenericExtractor.
type GenericOption func(*GenericExtractor)

// WithGenericLogger sets the logger for extractor failures.
func WithGenericLogger(l *slog.Logger) GenericOption {
	return func(g *GenericExtractor) {
		g.logger = l
	}
}

// WithGenericClock sets the time source for Article.ExtractedAt.
func WithGenericClock(now func() time.Time) GenericOption {
	return func(g *GenericExtractor) {
		g.now = now
	}
}

// NewGenericExtractor creates a GenericExtractor over extractors.
func NewGenericExtractor(extractors []newsparse.ContentExtractor, opts ...GenericOption) *GenericExtractor {
	g := &GenericExtractor{
		extractors: extractors,
		mapper: newsparse.CategoryMapper{
			Default: newsparse.Category{Major: newsparse.MajorNews, Minor: newsparse.TopicUndefined},
		},
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// urlExtractor is implemented by extractors that resolve relative links.
type urlExtractor interface {
	ExtractURL(html string, u *url.URL) (*newsparse.ExtractResult, error)
}

// Extract runs the extractors over rawHTML. The URL goes through the
// default rules only: tracking parameters are dropped and never-article
// paths are rejected.
func (g *GenericExtractor) Extract(ctx context.Context, rawURL string, rawHTML string) (*newsparse.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return nil, newsparse.Errorf(newsparse.ENOTARTICLE, "invalid URL %q", rawURL)
	}
	rules := newsparse.URLRules{Host: u.Hostname()}
	normalized, err := rules.Normalize(rawURL)
	if err != nil {
		return nil, err
	}
	u, _ = url.Parse(normalized)

	res := g.run(rawHTML, u)
	if res == nil {
		return nil, newsparse.Errorf(newsparse.EMISSING, "content not found on %s", normalized)
	}

	doc, err := NewDocument(res.ContentHTML, u, nil)
	if err != nil {
		return nil, err
	}
	article := &newsparse.Article{
		URL:     normalized,
		Site:    GenericSite,
		Title:   newsparse.NormalizeText(res.Title),
		Summary: newsparse.NormalizeText(res.Excerpt),
		Content: ExtractContent(ContentSpec{Main: Query("body>*")}, doc),
		Tags:    res.Tags,
	}
	if article.Title == "" {
		return nil, newsparse.Errorf(newsparse.EMISSING, "title not found on %s", normalized)
	}

	article.RawCategory = strings.Join(res.Categories, "/")
	article.Category = g.mapper.MapCategory(article.RawCategory)

	article.Date = newsparse.DateNotFound
	if !res.Date.IsZero() {
		d := res.Date.UTC()
		article.Date = newsparse.Date{Year: d.Year(), Month: int(d.Month()), Day: d.Day(), Calendar: newsparse.CalendarGregorian}.String()
		article.PublishedAt = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		article.Suspect = true
	}

	article.ID = uuid.NewString()
	article.ContentHash = contentHash(article)
	article.ExtractedAt = g.now()
	return article, nil
}

func (g *GenericExtractor) run(rawHTML string, u *url.URL) *newsparse.ExtractResult {
	for _, x := range g.extractors {
		var res *newsparse.ExtractResult
		var err error
		if ux, ok := x.(urlExtractor); ok {
			res, err = ux.ExtractURL(rawHTML, u)
		} else {
			res, err = x.Extract(rawHTML)
		}
		if err != nil {
			g.logger.Warn("content extraction failed", "url", u.String(), "err", err)
			continue
		}
		if res != nil && strings.TrimSpace(res.ContentHTML) != "" {
			return res
		}
	}
	return nil
}

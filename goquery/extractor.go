package goquery

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/newsparse"
	"github.com/google/uuid"
)

// Ensure Extractor implements newsparse.ArticleExtractor at compile time.
var _ newsparse.ArticleExtractor = (*Extractor)(nil)

// Extractor runs site adapters over fetched documents.
type Extractor struct {
	registry     *Registry
	requester    newsparse.Requester
	converter    newsparse.DateConverter
	fallback     newsparse.ArticleExtractor
	logger       *slog.Logger
	skipComments bool
	now          func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRequester sets the transport used by remote comment strategies.
// Without it, adapters that fetch comments remotely yield no comments.
func WithRequester(r newsparse.Requester) Option {
	return func(e *Extractor) {
		e.requester = r
	}
}

// WithDateConverter sets the converter that fills Article.PublishedAt.
// Defaults to an empty newsparse.CalendarConverters, which only handles
// Gregorian dates.
func WithDateConverter(c newsparse.DateConverter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// WithFallback sets the extractor used for hosts without an adapter.
func WithFallback(f newsparse.ArticleExtractor) Option {
	return func(e *Extractor) {
		e.fallback = f
	}
}

// WithLogger sets the logger for recoverable problems.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// WithoutComments disables comment retrieval.
func WithoutComments() Option {
	return func(e *Extractor) {
		e.skipComments = true
	}
}

// WithClock sets the time source for Article.ExtractedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor over the adapters in registry.
func NewExtractor(registry *Registry, opts ...Option) *Extractor {
	e := &Extractor{
		registry:  registry,
		converter: newsparse.CalendarConverters{},
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract finds the adapter for rawURL and runs it over rawHTML.
func (e *Extractor) Extract(ctx context.Context, rawURL string, rawHTML string) (*newsparse.Article, error) {
	a, ok := e.registry.Lookup(rawURL)
	if !ok {
		if e.fallback != nil {
			return e.fallback.Extract(ctx, rawURL, rawHTML)
		}
		return nil, newsparse.Errorf(newsparse.ENOTARTICLE, "no adapter for %s", rawURL)
	}
	return e.ExtractWith(ctx, a, rawURL, rawHTML)
}

// ExtractWith runs adapter a over rawHTML fetched from rawURL.
// URL rejection short-circuits before the document is parsed.
func (e *Extractor) ExtractWith(ctx context.Context, a Adapter, rawURL string, rawHTML string) (*newsparse.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, err := a.URL.Normalize(rawURL)
	if err != nil {
		return nil, err
	}
	if a.URL.IgnoresContent(normalized) {
		return nil, newsparse.Errorf(newsparse.ENOTARTICLE, "content ignored on %s", normalized)
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return nil, newsparse.Errorf(newsparse.ENOTARTICLE, "invalid URL: %v", err)
	}

	doc, err := NewDocument(rawHTML, u, a.ArticleRoot)
	if err != nil {
		return nil, err
	}
	if !doc.HasArticle() && !a.AcceptNoTitle {
		return nil, newsparse.Errorf(newsparse.ENOTARTICLE, "no article root on %s", normalized)
	}
	sc := doc.Scope()

	article := &newsparse.Article{
		URL:        normalized,
		Site:       a.Name,
		AboveTitle: Text(Resolve(a.AboveTitle, sc)),
		Title:      Text(Resolve(a.Title, sc)),
		Subtitle:   Text(Resolve(a.Subtitle, sc)),
		Summary:    Text(Resolve(a.Summary, sc)),
	}
	if article.Title == "" && !a.AcceptNoTitle {
		return nil, newsparse.Errorf(newsparse.EMISSING, "title not found on %s", normalized)
	}

	article.Content = ExtractContent(a.Content, doc)
	if len(article.Content) == 0 && !a.AcceptNoContent {
		return nil, newsparse.Errorf(newsparse.EMISSING, "content not found on %s", normalized)
	}

	article.Tags = extractTags(Resolve(a.Tags, sc))

	article.RawCategory = categoryText(a.Category, sc)
	article.Category = a.Category.Mapper.MapCategory(article.RawCategory)

	e.applyDate(article, ExtractDate(a.Date, sc))

	if !e.skipComments {
		article.Comments = e.comments(ctx, a.Comments, u, sc)
	}

	article.ID = uuid.NewString()
	article.ContentHash = contentHash(article)
	article.ExtractedAt = e.now()
	return article, nil
}

func (e *Extractor) applyDate(article *newsparse.Article, res DateResult) {
	article.Date = res.Value
	if res.Suspect {
		article.Suspect = true
		e.logger.Warn("date not found", "url", article.URL, "missing", res.Missing)
	}
	if !res.Found {
		return
	}
	t, err := e.converter.ToGregorian(res.Date)
	if err != nil {
		e.logger.Warn("date conversion failed", "url", article.URL, "date", res.Value, "err", err)
		return
	}
	article.PublishedAt = t
}

// comments prefers the remote strategy when the adapter has one. Remote
// failures keep whatever was collected before the failure.
func (e *Extractor) comments(ctx context.Context, spec CommentSpec, u *url.URL, sc Scope) []newsparse.Comment {
	if spec.Fetch == nil {
		return ExtractComments(spec, sc)
	}
	if e.requester == nil {
		e.logger.Debug("remote comments skipped", "url", u.String())
		return nil
	}
	comments, err := spec.Fetch.FetchComments(ctx, u, e.requester)
	if err != nil {
		e.logger.Warn("comment retrieval failed", "url", u.String(), "collected", len(comments), "err", err)
	}
	return comments
}

func extractTags(sel *goquery.Selection) []string {
	seen := make(map[string]bool)
	var tags []string
	sel.Each(func(_ int, s *goquery.Selection) {
		tag := strings.TrimSpace(strings.TrimPrefix(newsparse.NormalizeText(s.Text()), "#"))
		tag = strings.ReplaceAll(tag, "_", " ")
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	})
	return tags
}

func categoryText(spec CategorySpec, sc Scope) string {
	sep := spec.Separator
	if sep == "" {
		sep = "/"
	}
	var parts []string
	Resolve(spec.Selector, sc).Each(func(_ int, s *goquery.Selection) {
		if t := newsparse.NormalizeText(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, sep)
}

func contentHash(a *newsparse.Article) string {
	h := xxhash.New()
	_, _ = h.WriteString(a.Title)
	_, _ = h.WriteString("\n")
	_, _ = h.WriteString(a.Text())
	return fmt.Sprintf("%016x", h.Sum64())
}

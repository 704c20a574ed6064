package mock

import (
	"context"

	"github.com/fwojciec/newsparse"
)

var _ newsparse.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of newsparse.ArticleExtractor.
type ArticleExtractor struct {
	ExtractFn func(ctx context.Context, rawURL string, html string) (*newsparse.Article, error)
}

func (e *ArticleExtractor) Extract(ctx context.Context, rawURL string, html string) (*newsparse.Article, error) {
	return e.ExtractFn(ctx, rawURL, html)
}

var _ newsparse.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of newsparse.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*newsparse.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*newsparse.ExtractResult, error) {
	return e.ExtractFn(html)
}

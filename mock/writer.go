package mock

import (
	"context"

	"github.com/fwojciec/newsparse"
)

var _ newsparse.ArticleWriter = (*ArticleWriter)(nil)

// ArticleWriter is a mock implementation of newsparse.ArticleWriter.
type ArticleWriter struct {
	WriteArticleFn func(ctx context.Context, article *newsparse.Article) error
}

func (w *ArticleWriter) WriteArticle(ctx context.Context, article *newsparse.Article) error {
	return w.WriteArticleFn(ctx, article)
}

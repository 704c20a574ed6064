package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsparse"
)

// Ensure LoggingExtractor implements newsparse.ArticleExtractor.
var _ newsparse.ArticleExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an ArticleExtractor with logging. Rejections are
// logged with their code at Info; other failures at Warn.
type LoggingExtractor struct {
	next   newsparse.ArticleExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next newsparse.ArticleExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(ctx context.Context, rawURL string, html string) (a *newsparse.Article, err error) {
	defer func(begin time.Time) {
		if err != nil {
			level := slog.LevelWarn
			if code := newsparse.ErrorCode(err); code == newsparse.ENOTARTICLE || code == newsparse.EMISSING {
				level = slog.LevelInfo
			}
			e.logger.Log(ctx, level, "extract",
				"url", rawURL,
				"code", newsparse.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		e.logger.Info("extract",
			"url", rawURL,
			"site", a.Site,
			"items", len(a.Content),
			"comments", len(a.Comments),
			"date", a.Date,
			"suspect", a.Suspect,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(ctx, rawURL, html)
}

// Package slog provides logging decorators for the newsparse interfaces.
// Each decorator logs one line per operation after it completes.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsparse"
)

// Ensure LoggingFetcher implements newsparse.Fetcher.
var _ newsparse.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   newsparse.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next newsparse.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingRequester implements newsparse.Requester.
var _ newsparse.Requester = (*LoggingRequester)(nil)

// LoggingRequester wraps a Requester with logging.
type LoggingRequester struct {
	next   newsparse.Requester
	logger *slog.Logger
}

// NewLoggingRequester creates a new LoggingRequester.
func NewLoggingRequester(next newsparse.Requester, logger *slog.Logger) *LoggingRequester {
	return &LoggingRequester{next: next, logger: logger}
}

// Do delegates to the wrapped requester and logs the exchange.
func (r *LoggingRequester) Do(ctx context.Context, req *newsparse.Request) (res *newsparse.Response, err error) {
	defer func(begin time.Time) {
		var status, size int
		if res != nil {
			status, size = res.StatusCode, len(res.Body)
		}
		r.logger.Debug("request",
			"method", req.Method,
			"url", req.URL,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Do(ctx, req)
}

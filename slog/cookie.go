package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsparse"
)

// Ensure LoggingCookieSource implements newsparse.CookieSource.
var _ newsparse.CookieSource = (*LoggingCookieSource)(nil)

// LoggingCookieSource wraps a CookieSource with logging. Cookie values are
// never logged.
type LoggingCookieSource struct {
	next   newsparse.CookieSource
	logger *slog.Logger
}

// NewLoggingCookieSource creates a new LoggingCookieSource.
func NewLoggingCookieSource(next newsparse.CookieSource, logger *slog.Logger) *LoggingCookieSource {
	return &LoggingCookieSource{next: next, logger: logger}
}

// Cookies delegates to the wrapped source and logs the cookie names.
func (s *LoggingCookieSource) Cookies(ctx context.Context, siteURL string) (cookies []newsparse.Cookie, err error) {
	defer func(begin time.Time) {
		names := make([]string, 0, len(cookies))
		for _, c := range cookies {
			names = append(names, c.Name)
		}
		s.logger.Info("session cookies",
			"url", siteURL,
			"names", names,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Cookies(ctx, siteURL)
}

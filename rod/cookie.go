package rod

import (
	"context"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultChallengeTimeout bounds how long a bot challenge may take to set
// its cookies.
const DefaultChallengeTimeout = 30 * time.Second

var _ newsparse.CookieSource = (*CookieSource)(nil)

// CookieSource opens a site in the browser, lets its bot challenge run and
// returns the cookies the browser ends up holding.
type CookieSource struct {
	manager  *BrowserManager
	timeout  time.Duration
	interval time.Duration
}

// CookieSourceOption configures a CookieSource.
type CookieSourceOption func(*CookieSource)

// WithChallengeTimeout sets how long to wait for cookies to appear.
func WithChallengeTimeout(d time.Duration) CookieSourceOption {
	return func(c *CookieSource) {
		c.timeout = d
	}
}

// WithPollInterval sets how often the browser cookie jar is checked.
func WithPollInterval(d time.Duration) CookieSourceOption {
	return func(c *CookieSource) {
		c.interval = d
	}
}

// NewCookieSource creates a CookieSource using the browser of bm.
func NewCookieSource(bm *BrowserManager, opts ...CookieSourceOption) *CookieSource {
	c := &CookieSource{
		manager:  bm,
		timeout:  DefaultChallengeTimeout,
		interval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cookies loads siteURL and polls until the page holds at least one cookie.
// A challenge that never sets a cookie ends with ENOTFOUND.
func (c *CookieSource) Cookies(ctx context.Context, siteURL string) ([]newsparse.Cookie, error) {
	if c.manager.Closed() {
		return nil, newsparse.Errorf(newsparse.EINVALID, "browser is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	page, err := openPage(ctx, c.manager, siteURL)
	if err != nil {
		return nil, err
	}
	defer page.Close()
	defer c.manager.IncrementPageCount()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		raw, err := page.Cookies([]string{siteURL})
		if err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			return convertCookies(raw), nil
		}
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return nil, newsparse.Errorf(newsparse.ENOTFOUND, "no cookies set by %s", siteURL)
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func convertCookies(raw []*proto.NetworkCookie) []newsparse.Cookie {
	cookies := make([]newsparse.Cookie, 0, len(raw))
	for _, rc := range raw {
		c := newsparse.Cookie{
			Name:   rc.Name,
			Value:  rc.Value,
			Domain: rc.Domain,
			Path:   rc.Path,
		}
		// Session cookies report -1.
		if rc.Expires > 0 {
			c.Expires = rc.Expires.Time()
		}
		cookies = append(cookies, c)
	}
	return cookies
}

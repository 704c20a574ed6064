package newsparse

import (
	"context"
	"time"
)

// Cookie is a session cookie acquired for a site.
type Cookie struct {
	Name    string
	Value   string
	Domain  string
	Path    string
	Expires time.Time
}

// Expired reports whether the cookie is past its expiry at now. Cookies
// without an expiry never expire.
func (c Cookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !now.Before(c.Expires)
}

// CookieSource acquires the cookies a challenge-protected site requires
// before it serves article pages.
type CookieSource interface {
	Cookies(ctx context.Context, siteURL string) ([]Cookie, error)
}

// CookieStore caches acquired cookies per site.
type CookieStore interface {
	// FindCookies returns unexpired cookies stored for site.
	FindCookies(ctx context.Context, site string) ([]Cookie, error)

	// SaveCookies replaces the cookies stored for site.
	SaveCookies(ctx context.Context, site string, cookies []Cookie) error
}

// CachedCookieSource serves cookies from a store and falls back to the
// source when the store has none.
type CachedCookieSource struct {
	Site   string
	Store  CookieStore
	Source CookieSource
}

// Cookies returns stored cookies for the site or acquires and stores new
// ones.
func (c *CachedCookieSource) Cookies(ctx context.Context, siteURL string) ([]Cookie, error) {
	cookies, err := c.Store.FindCookies(ctx, c.Site)
	if err != nil {
		return nil, err
	}
	if len(cookies) > 0 {
		return cookies, nil
	}

	cookies, err = c.Source.Cookies(ctx, siteURL)
	if err != nil {
		return nil, err
	}
	if err := c.Store.SaveCookies(ctx, c.Site, cookies); err != nil {
		return nil, err
	}
	return cookies, nil
}

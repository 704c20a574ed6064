package mock

import (
	"context"

	"github.com/fwojciec/newsparse"
)

var _ newsparse.CookieSource = (*CookieSource)(nil)

// CookieSource is a mock implementation of newsparse.CookieSource.
type CookieSource struct {
	CookiesFn func(ctx context.Context, siteURL string) ([]newsparse.Cookie, error)
}

func (s *CookieSource) Cookies(ctx context.Context, siteURL string) ([]newsparse.Cookie, error) {
	return s.CookiesFn(ctx, siteURL)
}

var _ newsparse.CookieStore = (*CookieStore)(nil)

// CookieStore is a mock implementation of newsparse.CookieStore.
type CookieStore struct {
	FindCookiesFn func(ctx context.Context, site string) ([]newsparse.Cookie, error)
	SaveCookiesFn func(ctx context.Context, site string, cookies []newsparse.Cookie) error
}

func (s *CookieStore) FindCookies(ctx context.Context, site string) ([]newsparse.Cookie, error) {
	return s.FindCookiesFn(ctx, site)
}

func (s *CookieStore) SaveCookies(ctx context.Context, site string, cookies []newsparse.Cookie) error {
	return s.SaveCookiesFn(ctx, site, cookies)
}

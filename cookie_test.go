package newsparse_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookie_Expired(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, newsparse.Cookie{}.Expired(now))
	assert.False(t, newsparse.Cookie{Expires: now.Add(time.Second)}.Expired(now))
	assert.True(t, newsparse.Cookie{Expires: now}.Expired(now))
	assert.True(t, newsparse.Cookie{Expires: now.Add(-time.Hour)}.Expired(now))
}

func TestCachedCookieSource_Cookies(t *testing.T) {
	t.Parallel()

	t.Run("stored cookies skip the source", func(t *testing.T) {
		t.Parallel()

		stored := []newsparse.Cookie{{Name: "s", Value: "1"}}
		c := &newsparse.CachedCookieSource{
			Site: "irna",
			Store: &mock.CookieStore{
				FindCookiesFn: func(_ context.Context, site string) ([]newsparse.Cookie, error) {
					assert.Equal(t, "irna", site)
					return stored, nil
				},
			},
			Source: &mock.CookieSource{
				CookiesFn: func(context.Context, string) ([]newsparse.Cookie, error) {
					t.Fatal("source should not be called")
					return nil, nil
				},
			},
		}

		got, err := c.Cookies(context.Background(), "https://www.irna.ir/")

		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("acquired cookies are saved", func(t *testing.T) {
		t.Parallel()

		acquired := []newsparse.Cookie{{Name: "challenge", Value: "ok"}}
		var saved []newsparse.Cookie
		c := &newsparse.CachedCookieSource{
			Site: "imna",
			Store: &mock.CookieStore{
				FindCookiesFn: func(context.Context, string) ([]newsparse.Cookie, error) { return nil, nil },
				SaveCookiesFn: func(_ context.Context, site string, cookies []newsparse.Cookie) error {
					assert.Equal(t, "imna", site)
					saved = cookies
					return nil
				},
			},
			Source: &mock.CookieSource{
				CookiesFn: func(_ context.Context, siteURL string) ([]newsparse.Cookie, error) {
					assert.Equal(t, "https://www.imna.ir/", siteURL)
					return acquired, nil
				},
			},
		}

		got, err := c.Cookies(context.Background(), "https://www.imna.ir/")

		require.NoError(t, err)
		assert.Equal(t, acquired, got)
		assert.Equal(t, acquired, saved)
	})

	t.Run("source failure is returned", func(t *testing.T) {
		t.Parallel()

		c := &newsparse.CachedCookieSource{
			Site: "alef",
			Store: &mock.CookieStore{
				FindCookiesFn: func(context.Context, string) ([]newsparse.Cookie, error) { return nil, nil },
			},
			Source: &mock.CookieSource{
				CookiesFn: func(context.Context, string) ([]newsparse.Cookie, error) {
					return nil, errors.New("challenge failed")
				},
			},
		}

		_, err := c.Cookies(context.Background(), "https://www.alef.ir/")

		assert.EqualError(t, err, "challenge failed")
	})
}

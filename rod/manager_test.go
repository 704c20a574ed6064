//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_Recycling(t *testing.T) {
	t.Parallel()

	t.Run("recycles after max pages", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
		require.NoError(t, err)
		defer manager.Close()

		before := manager.Browser()
		manager.IncrementPageCount()
		manager.IncrementPageCount()

		assert.NotSame(t, before, manager.Browser())
	})

	t.Run("keeps the browser below max pages", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
		require.NoError(t, err)
		defer manager.Close()

		before := manager.Browser()
		manager.IncrementPageCount()

		assert.Same(t, before, manager.Browser())
	})
}

func TestBrowserManager_Close(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	fetcher, err := rod.NewFetcher(rod.WithManager(manager))
	require.NoError(t, err)

	assert.False(t, manager.Closed())
	require.NoError(t, manager.Close())
	assert.True(t, manager.Closed())
	assert.NoError(t, manager.Close())

	_, err = fetcher.Fetch(context.Background(), "https://www.irna.ir/news/1")
	assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
}

func TestBrowserManager_WithBrowserUserAgent(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var agents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		agents = append(agents, r.UserAgent())
		mu.Unlock()
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>خبر</body></html>"))
	}))
	defer srv.Close()

	const ua = "newsparse-test/1.0"
	manager, err := rod.NewBrowserManager(rod.WithBrowserUserAgent(ua))
	require.NoError(t, err)
	defer manager.Close()
	assert.Equal(t, ua, manager.UserAgent())

	fetcher, err := rod.NewFetcher(rod.WithManager(manager))
	require.NoError(t, err)

	_, err = fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, agents)
	assert.Equal(t, ua, agents[0])
}

func TestBrowserManager_WithBrowserProxy(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var hosts []string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hosts = append(hosts, r.Host)
		mu.Unlock()
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>via proxy</h1></body></html>"))
	}))
	defer proxy.Close()

	manager, err := rod.NewBrowserManager(rod.WithBrowserProxy(strings.TrimPrefix(proxy.URL, "http://")))
	require.NoError(t, err)
	defer manager.Close()
	fetcher, err := rod.NewFetcher(rod.WithManager(manager))
	require.NoError(t, err)

	html, err := fetcher.Fetch(context.Background(), "http://news.example/news/1")

	require.NoError(t, err)
	assert.Contains(t, html, "via proxy")
	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, hosts, "news.example")
}

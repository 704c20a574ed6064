package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/bloom"
	main "github.com/fwojciec/newsparse/cmd/newsparse"
	"github.com/fwojciec/newsparse/goquery"
	"github.com/fwojciec/newsparse/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageHTML = `<html><body><article>
<h1>افزایش قیمت نان</h1>
<span class="date">۱۴۰۲/۰۵/۱۲</span>
<div class="body"><p>قیمت نان از امروز افزایش یافت.</p></div>
</article></body></html>`

func testAdapter(name, host string) goquery.Adapter {
	return goquery.Adapter{
		Name:        name,
		URL:         newsparse.URLRules{Host: host, ValidPathItems: []string{"news"}},
		ArticleRoot: goquery.Query("article"),
		Title:       goquery.Query("h1"),
		Content:     goquery.ContentSpec{Main: goquery.Query(".body > p")},
		Date:        goquery.DateSpec{Container: goquery.Query(".date"), Delimiter: "/"},
		Category: goquery.CategorySpec{Mapper: newsparse.CategoryMapper{
			Default: newsparse.Category{Major: newsparse.MajorNews, Minor: newsparse.TopicEconomics},
		}},
	}
}

type extractFixture struct {
	deps    *main.Dependencies
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	mu      sync.Mutex
	fetched []string
}

func newExtractFixture(adapters ...goquery.Adapter) *extractFixture {
	f := &extractFixture{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	registry := goquery.NewRegistry(adapters...)
	f.deps = &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    f.stdout,
		Stderr:    f.stderr,
		Registry:  registry,
		Extractor: goquery.NewExtractor(registry),
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				f.mu.Lock()
				defer f.mu.Unlock()
				f.fetched = append(f.fetched, url)
				return pageHTML, nil
			},
		},
		Seen: bloom.NewFilter(1000, 0.001),
	}
	return f
}

func decodeArticles(t *testing.T, out string) []newsparse.Article {
	t.Helper()
	var articles []newsparse.Article
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var a newsparse.Article
		require.NoError(t, dec.Decode(&a))
		articles = append(articles, a)
	}
	return articles
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints one json record per article", func(t *testing.T) {
		t.Parallel()

		f := newExtractFixture(testAdapter("hamshahri", "www.hamshahri.ir"))
		cmd := &main.ExtractCmd{URLs: []string{"https://www.hamshahri.ir/news/77/nan"}, Concurrency: 1, Format: "json"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		articles := decodeArticles(t, f.stdout.String())
		require.Len(t, articles, 1)
		assert.Equal(t, "https://www.hamshahri.ir/news/77", articles[0].URL)
		assert.Equal(t, "افزایش قیمت نان", articles[0].Title)
		assert.Equal(t, "1402-05-12", articles[0].Date)
		assert.Equal(t, []string{"https://www.hamshahri.ir/news/77"}, f.fetched)
		assert.Contains(t, f.stderr.String(), "extracted 1, skipped 0, failed 0")
	})

	t.Run("duplicate urls are fetched once", func(t *testing.T) {
		t.Parallel()

		f := newExtractFixture(testAdapter("hamshahri", "www.hamshahri.ir"))
		cmd := &main.ExtractCmd{URLs: []string{
			"https://www.hamshahri.ir/news/77/nan",
			"https://www.hamshahri.ir/news/77?utm_source=x",
		}, Concurrency: 2, Format: "json"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.Len(t, decodeArticles(t, f.stdout.String()), 1)
		assert.Len(t, f.fetched, 1)
		assert.Contains(t, f.stderr.String(), "skipped 1")
	})

	t.Run("history skips urls extracted before and records new ones", func(t *testing.T) {
		t.Parallel()

		f := newExtractFixture(testAdapter("hamshahri", "www.hamshahri.ir"))
		f.deps.History = bloom.NewFilter(1000, 0.001)
		f.deps.History.Add("https://www.hamshahri.ir/news/1")
		cmd := &main.ExtractCmd{URLs: []string{
			"https://www.hamshahri.ir/news/1",
			"https://www.hamshahri.ir/news/2",
		}, Concurrency: 1, Format: "json"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://www.hamshahri.ir/news/2"}, f.fetched)
		assert.True(t, f.deps.History.Test("https://www.hamshahri.ir/news/2"))
	})

	t.Run("rejected and failed urls are reported without stopping the batch", func(t *testing.T) {
		t.Parallel()

		f := newExtractFixture(testAdapter("hamshahri", "www.hamshahri.ir"))
		f.deps.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if strings.HasSuffix(url, "/500") {
					return "", errors.New("connection reset")
				}
				return pageHTML, nil
			},
		}
		cmd := &main.ExtractCmd{URLs: []string{
			"https://www.hamshahri.ir/news",
			"https://other.ir/news/1",
			"https://www.hamshahri.ir/news/500",
			"https://www.hamshahri.ir/news/9",
		}, Concurrency: 1, Format: "json"}

		err := cmd.Run(f.deps)

		require.Error(t, err)
		assert.Contains(t, newsparse.ErrorMessage(err), "3 of 4 URLs failed")
		assert.Len(t, decodeArticles(t, f.stdout.String()), 1)
		assert.Contains(t, f.stderr.String(), "error: https://www.hamshahri.ir/news: path /news is a listing page")
		assert.Contains(t, f.stderr.String(), "error: https://other.ir/news/1: no adapter for https://other.ir/news/1")
		assert.Contains(t, f.stderr.String(), "error: https://www.hamshahri.ir/news/500: connection reset")
	})

	t.Run("generic flag passes unknown hosts to the extractor", func(t *testing.T) {
		t.Parallel()

		f := newExtractFixture()
		f.deps.Extractor = &mock.ArticleExtractor{
			ExtractFn: func(_ context.Context, rawURL string, _ string) (*newsparse.Article, error) {
				return &newsparse.Article{URL: rawURL, Site: "generic", Category: newsparse.Category{Major: newsparse.MajorNews}}, nil
			},
		}
		cmd := &main.ExtractCmd{URLs: []string{"https://blog.example/post/1"}, Generic: true, Concurrency: 1, Format: "json"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		articles := decodeArticles(t, f.stdout.String())
		require.Len(t, articles, 1)
		assert.Equal(t, "generic", articles[0].Site)
	})

	t.Run("markdown format renders front matter", func(t *testing.T) {
		t.Parallel()

		f := newExtractFixture(testAdapter("hamshahri", "www.hamshahri.ir"))
		f.deps.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				assert.Contains(t, html, "قیمت نان از امروز افزایش یافت.")
				return "قیمت نان از امروز افزایش یافت.", nil
			},
		}
		cmd := &main.ExtractCmd{URLs: []string{"https://www.hamshahri.ir/news/77"}, Concurrency: 1, Format: "markdown"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		out := f.stdout.String()
		assert.True(t, strings.HasPrefix(out, "---\n"), out)
		assert.Contains(t, out, "افزایش قیمت نان")
		assert.Contains(t, out, "قیمت نان از امروز افزایش یافت.")
	})

	t.Run("out directory receives markdown files", func(t *testing.T) {
		t.Parallel()

		f := newExtractFixture(testAdapter("hamshahri", "www.hamshahri.ir"))
		dir := t.TempDir()
		cmd := &main.ExtractCmd{URLs: []string{"https://www.hamshahri.ir/news/77"}, Out: dir, Name: "batch", Concurrency: 1}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.Empty(t, f.stdout.String())
		content, err := os.ReadFile(filepath.Join(dir, "batch", "hamshahri", "news", "77.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "افزایش قیمت نان")
		assert.NoDirExists(t, filepath.Join(dir, "batch.tmp"))
	})

	t.Run("nothing extracted leaves no output directory", func(t *testing.T) {
		t.Parallel()

		f := newExtractFixture(testAdapter("hamshahri", "www.hamshahri.ir"))
		dir := t.TempDir()
		cmd := &main.ExtractCmd{URLs: []string{"https://other.ir/news/1"}, Out: dir, Name: "batch", Concurrency: 1}

		err := cmd.Run(f.deps)

		require.Error(t, err)
		assert.NoDirExists(t, filepath.Join(dir, "batch"))
		assert.NoDirExists(t, filepath.Join(dir, "batch.tmp"))
	})

	t.Run("session cookie is acquired once per site", func(t *testing.T) {
		t.Parallel()

		adapter := testAdapter("irna", "www.irna.ir")
		adapter.NeedsSessionCookie = true
		f := newExtractFixture(adapter)

		var mu sync.Mutex
		acquired := 0
		var installed []newsparse.Cookie
		f.deps.Sessions = &main.Sessions{
			Source: &mock.CookieSource{
				CookiesFn: func(_ context.Context, siteURL string) ([]newsparse.Cookie, error) {
					assert.Equal(t, "https://www.irna.ir/", siteURL)
					mu.Lock()
					defer mu.Unlock()
					acquired++
					return []newsparse.Cookie{{Name: "challenge", Value: "ok"}}, nil
				},
			},
			Jar: jarFunc(func(siteURL string, cookies []newsparse.Cookie) error {
				mu.Lock()
				defer mu.Unlock()
				installed = append(installed, cookies...)
				return nil
			}),
		}
		cmd := &main.ExtractCmd{URLs: []string{
			"https://www.irna.ir/news/1",
			"https://www.irna.ir/news/2",
			"https://www.irna.ir/news/3",
		}, Concurrency: 3, Format: "json"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.Equal(t, 1, acquired)
		assert.Equal(t, []newsparse.Cookie{{Name: "challenge", Value: "ok"}}, installed)
		assert.Len(t, decodeArticles(t, f.stdout.String()), 3)
	})

	t.Run("session cookie without a source fails the url", func(t *testing.T) {
		t.Parallel()

		adapter := testAdapter("irna", "www.irna.ir")
		adapter.NeedsSessionCookie = true
		f := newExtractFixture(adapter)
		cmd := &main.ExtractCmd{URLs: []string{"https://www.irna.ir/news/1"}, Concurrency: 1}

		err := cmd.Run(f.deps)

		require.Error(t, err)
		assert.Contains(t, f.stderr.String(), "needs a session cookie")
		assert.Empty(t, f.fetched)
	})

	t.Run("javascript sites use the browser fetcher", func(t *testing.T) {
		t.Parallel()

		adapter := testAdapter("spa", "www.spa.ir")
		adapter.JSRendered = true
		f := newExtractFixture(adapter)
		browserCalls := 0
		f.deps.Browser = &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				browserCalls++
				return pageHTML, nil
			},
		}
		cmd := &main.ExtractCmd{URLs: []string{"https://www.spa.ir/news/5"}, Concurrency: 1, Format: "json"}

		err := cmd.Run(f.deps)

		require.NoError(t, err)
		assert.Equal(t, 1, browserCalls)
		assert.Empty(t, f.fetched)
	})

	t.Run("no urls", func(t *testing.T) {
		t.Parallel()

		f := newExtractFixture()

		err := (&main.ExtractCmd{}).Run(f.deps)

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})
}

type jarFunc func(siteURL string, cookies []newsparse.Cookie) error

func (f jarFunc) SetCookies(siteURL string, cookies []newsparse.Cookie) error {
	return f(siteURL, cookies)
}

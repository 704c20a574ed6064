package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/newsparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const localAdapter = `name: local
url:
  host: 127.0.0.1
  valid_path_items: [news]
article_root: article
title: h1
content:
  main: .body > p
date:
  selector: .date
  delimiter: /
category:
  selector:
    query: .breadcrumb li
    doc: true
  default:
    major: News
    text_type: Formal
  rules:
    - first: [ورزش]
      minor: Sport
`

const localPage = `<html><body>
<ul class="breadcrumb"><li>ورزش</li><li>کشتی</li></ul>
<article>
<h1>قهرمانی تیم کشتی</h1>
<span class="date">۱۴۰۲/۰۶/۰۱</span>
<div class="body"><p>تیم ملی کشتی قهرمان شد.</p></div>
</article>
</body></html>`

func writeLocalConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.yaml"), []byte(localAdapter), 0644))
	config := "rate_limit: 100\nadapters:\n  - local.yaml\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0644))
	return path
}

func newsServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/news/1":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, localPage)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts through a config adapter", func(t *testing.T) {
		t.Parallel()

		srv := newsServer(t)
		config := writeLocalConfig(t)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{
			"--config", config, "extract", "--no-comments", srv.URL + "/news/1/slug",
		}, stdout, stderr)

		require.NoError(t, err, stderr.String())
		articles := decodeArticles(t, stdout.String())
		require.Len(t, articles, 1)
		assert.Equal(t, srv.URL+"/news/1", articles[0].URL)
		assert.Equal(t, "local", articles[0].Site)
		assert.Equal(t, "قهرمانی تیم کشتی", articles[0].Title)
		assert.Equal(t, "1402-06-01", articles[0].Date)
		assert.Equal(t, newsparse.TopicSport, articles[0].Category.Minor)
		assert.Equal(t, 2023, articles[0].PublishedAt.Year())
	})

	t.Run("missing page counts as failure", func(t *testing.T) {
		t.Parallel()

		srv := newsServer(t)
		config := writeLocalConfig(t)
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{
			"--config", config, "extract", srv.URL + "/news/404",
		}, stdout, stderr)

		require.Error(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "extracted 0, skipped 0, failed 1")
	})

	t.Run("history file skips urls on the next run", func(t *testing.T) {
		t.Parallel()

		srv := newsServer(t)
		config := writeLocalConfig(t)
		history := filepath.Join(t.TempDir(), "seen.bloom")
		args := []string{"--config", config, "extract", "--history", history, srv.URL + "/news/1"}

		stdout := &bytes.Buffer{}
		require.NoError(t, newTestMain(t).Run(context.Background(), args, stdout, &bytes.Buffer{}))
		assert.Len(t, decodeArticles(t, stdout.String()), 1)
		assert.FileExists(t, history)

		stdout.Reset()
		stderr := &bytes.Buffer{}
		require.NoError(t, newTestMain(t).Run(context.Background(), args, stdout, stderr))
		assert.Empty(t, strings.TrimSpace(stdout.String()))
		assert.Contains(t, stderr.String(), "skipped 1")
	})
}

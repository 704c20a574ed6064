package yaml_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
	"github.com/fwojciec/newsparse/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adapterYAML = `
name: shahrvand
url:
  host: www.shahrvand.ir
  invalid_start_paths: [/video]
  valid_path_items: [news]
article_root: article.news
above_title: .rutitr
title: h1
summary: .lead
tags: .tags a
content:
  main: .body > p
  ignore_classes: [ads]
  ignore_patterns: ['^تبلیغ']
date:
  selector: .date
  delimiter: /
category:
  selector:
    query: .breadcrumb a
    doc: true
    start: 1
  default:
    major: News
    text_type: Formal
  rules:
    - first: [ورزش]
      second: [فوتبال]
      minor: Sport
      subminor: Football
    - province: true
      minor: Local
comments:
  container: .comment
  author: .name
  text: [.body, p]
  date:
    selector: .when
    delimiter: "-"
    accept_no_date: true
---
name: dideban
url:
  host: dideban.ir
  remove_www: true
title: h1.title
`

const shahrvandHTML = `<html><body>
<nav class="breadcrumb"><a>خانه</a><a>ورزش</a><a>فوتبال ملی</a></nav>
<article class="news">
	<div class="rutitr">گزارش</div>
	<h1>پیروزی تیم ملی</h1>
	<p class="lead">خلاصه</p>
	<span class="date">۱۴۰۲/۰۵/۱۲</span>
	<div class="body">
		<p>متن اول</p>
		<p class="ads">آگهی</p>
		<p>تبلیغ ویژه</p>
		<p>متن دوم</p>
	</div>
	<div class="tags"><a>فوتبال</a></div>
	<div class="comment"><span class="name">رضا</span><p>عالی بود</p><span class="when">1402-05-13</span></div>
</article>
</body></html>`

func TestReadAdapters(t *testing.T) {
	t.Parallel()

	t.Run("decodes every document", func(t *testing.T) {
		t.Parallel()

		adapters, err := yaml.ReadAdapters(strings.NewReader(adapterYAML))

		require.NoError(t, err)
		require.Len(t, adapters, 2)
		assert.Equal(t, "shahrvand", adapters[0].Name)
		assert.Equal(t, "dideban", adapters[1].Name)
		assert.True(t, adapters[1].URL.RemoveWWW)
	})

	t.Run("decoded adapter extracts an article", func(t *testing.T) {
		t.Parallel()

		adapters, err := yaml.ReadAdapters(strings.NewReader(adapterYAML))
		require.NoError(t, err)
		e := goquery.NewExtractor(goquery.NewRegistry(adapters...))

		a, err := e.Extract(context.Background(), "https://www.shahrvand.ir/fa/news/5012/title", shahrvandHTML)

		require.NoError(t, err)
		assert.Equal(t, "https://www.shahrvand.ir/news/5012", a.URL)
		assert.Equal(t, "گزارش", a.AboveTitle)
		assert.Equal(t, "پیروزی تیم ملی", a.Title)
		assert.Equal(t, "متن اول\nمتن دوم", a.Text())
		assert.Equal(t, "1402-05-12", a.Date)
		assert.Equal(t, []string{"فوتبال"}, a.Tags)
		assert.Equal(t, newsparse.Category{
			Major:    newsparse.MajorNews,
			Minor:    newsparse.TopicSport,
			Subminor: newsparse.TopicFootball,
			TextType: newsparse.TextFormal,
		}, a.Category)
		require.Len(t, a.Comments, 1)
		assert.Equal(t, newsparse.Comment{Text: "عالی بود", Author: "رضا", Date: "1402-05-13"}, a.Comments[0])
	})

	t.Run("decoded url rules reject listings", func(t *testing.T) {
		t.Parallel()

		adapters, err := yaml.ReadAdapters(strings.NewReader(adapterYAML))
		require.NoError(t, err)

		_, err = adapters[0].URL.Normalize("https://www.shahrvand.ir/video/12")

		assert.Equal(t, newsparse.ENOTARTICLE, newsparse.ErrorCode(err))
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ReadAdapters(strings.NewReader("name: x\nurl: {host: x.ir}\ntitle: h1\nbody: p\n"))

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})

	t.Run("host is required", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ReadAdapters(strings.NewReader("name: x\ntitle: h1\n"))

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})

	t.Run("title is required unless accepted", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ReadAdapters(strings.NewReader("name: x\nurl: {host: x.ir}\n"))
		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))

		adapters, err := yaml.ReadAdapters(strings.NewReader("name: x\nurl: {host: x.ir}\naccept_no_title: true\n"))
		require.NoError(t, err)
		assert.True(t, adapters[0].AcceptNoTitle)
	})

	t.Run("invalid pattern is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ReadAdapters(strings.NewReader("name: x\nurl: {host: x.ir}\ntitle: h1\ncontent: {ignore_patterns: ['(']}\n"))

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})
}

func TestLoadAdapters(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sites.yaml")
	require.NoError(t, os.WriteFile(path, []byte(adapterYAML), 0o644))

	adapters, err := yaml.LoadAdapters(path)

	require.NoError(t, err)
	assert.Len(t, adapters, 2)
}

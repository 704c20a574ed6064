package gofeed_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/gofeed"
	"github.com/fwojciec/newsparse/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commentRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
<title>دیدگاه‌ها برای: قانون جدید</title>
<item>
	<title>توسط: مریم</title>
	<dc:creator><![CDATA[مریم]]></dc:creator>
	<pubDate>Thu, 03 Aug 2023 10:00:00 +0000</pubDate>
	<description><![CDATA[<p>بسیار  مفید بود</p>]]></description>
</item>
<item>
	<title>توسط: علي</title>
	<dc:creator><![CDATA[علي]]></dc:creator>
	<pubDate>Fri, 04 Aug 2023 11:30:00 +0000</pubDate>
	<description>سوال داشتم</description>
</item>
<item>
	<title>خالی</title>
	<description><![CDATA[<p> </p>]]></description>
</item>
</channel>
</rss>`

const emptyRSS = `<?xml version="1.0"?><rss version="2.0"><channel><title>x</title></channel></rss>`

func articleURL(t *testing.T) *url.URL {
	t.Helper()
	u, err := url.Parse("https://ekhtebar.ir/new-law/?utm_source=x")
	require.NoError(t, err)
	return u
}

func TestCommentFeed_FetchComments(t *testing.T) {
	t.Parallel()

	t.Run("reads the wordpress comment feed", func(t *testing.T) {
		t.Parallel()

		r := &mock.Requester{
			DoFn: func(_ context.Context, req *newsparse.Request) (*newsparse.Response, error) {
				assert.Equal(t, "https://ekhtebar.ir/new-law/feed/", req.URL)
				return &newsparse.Response{StatusCode: 200, Body: []byte(commentRSS)}, nil
			},
		}

		got, err := (&gofeed.CommentFeed{}).FetchComments(context.Background(), articleURL(t), r)

		require.NoError(t, err)
		assert.Equal(t, []newsparse.Comment{
			{Text: "بسیار مفید بود", Author: "مریم", Date: "2023-08-03"},
			{Text: "سوال داشتم", Author: "علی", Date: "2023-08-04"},
		}, got)
	})

	t.Run("custom feed url", func(t *testing.T) {
		t.Parallel()

		r := &mock.Requester{
			DoFn: func(_ context.Context, req *newsparse.Request) (*newsparse.Response, error) {
				assert.Equal(t, "https://ekhtebar.ir/comments/feed", req.URL)
				return &newsparse.Response{StatusCode: 200, Body: []byte(emptyRSS)}, nil
			},
		}
		feed := &gofeed.CommentFeed{FeedURL: func(u *url.URL) string { return "https://" + u.Host + "/comments/feed" }}

		got, err := feed.FetchComments(context.Background(), articleURL(t), r)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("paginates until a missing page", func(t *testing.T) {
		t.Parallel()

		var requested []string
		r := &mock.Requester{
			DoFn: func(_ context.Context, req *newsparse.Request) (*newsparse.Response, error) {
				requested = append(requested, req.URL)
				if len(requested) > 2 {
					return nil, newsparse.Errorf(newsparse.ENOTFOUND, "not found")
				}
				return &newsparse.Response{StatusCode: 200, Body: []byte(commentRSS)}, nil
			},
		}
		feed := &gofeed.CommentFeed{PageParam: "paged"}

		got, err := feed.FetchComments(context.Background(), articleURL(t), r)

		require.NoError(t, err)
		assert.Len(t, got, 4)
		assert.Equal(t, []string{
			"https://ekhtebar.ir/new-law/feed/",
			"https://ekhtebar.ir/new-law/feed/?paged=2",
			"https://ekhtebar.ir/new-law/feed/?paged=3",
		}, requested)
	})

	t.Run("transport failure keeps earlier pages", func(t *testing.T) {
		t.Parallel()

		calls := 0
		r := &mock.Requester{
			DoFn: func(context.Context, *newsparse.Request) (*newsparse.Response, error) {
				calls++
				if calls == 2 {
					return nil, errors.New("connection reset")
				}
				return &newsparse.Response{StatusCode: 200, Body: []byte(commentRSS)}, nil
			},
		}
		feed := &gofeed.CommentFeed{PageParam: "paged"}

		got, err := feed.FetchComments(context.Background(), articleURL(t), r)

		assert.EqualError(t, err, "connection reset")
		assert.Len(t, got, 2)
	})

	t.Run("malformed feed", func(t *testing.T) {
		t.Parallel()

		r := &mock.Requester{
			DoFn: func(context.Context, *newsparse.Request) (*newsparse.Response, error) {
				return &newsparse.Response{StatusCode: 200, Body: []byte("<html>not a feed</html>")}, nil
			},
		}

		_, err := (&gofeed.CommentFeed{}).FetchComments(context.Background(), articleURL(t), r)

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})
}

func TestWordPressFeedURL(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://ekhtebar.ir/a/b#respond")
	require.NoError(t, err)

	assert.Equal(t, "https://ekhtebar.ir/a/b/feed/", gofeed.WordPressFeedURL(u))
}

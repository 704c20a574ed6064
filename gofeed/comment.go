// Package gofeed retrieves article comments published as RSS or Atom
// comment feeds, as WordPress and similar engines do.
package gofeed

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
	"github.com/mmcdole/gofeed"
)

var _ newsparse.CommentFetcher = (*CommentFeed)(nil)

// CommentFeed is a remote comment strategy reading an article's comment
// feed through the shared Requester.
type CommentFeed struct {
	// FeedURL derives the feed address from the article URL. Defaults to
	// WordPressFeedURL.
	FeedURL func(u *url.URL) string

	// PageParam, when set, paginates the feed with ?PageParam=N starting
	// at 2 until a page comes back empty or missing, or MaxPages is reached.
	PageParam string
	MaxPages  int
}

// WordPressFeedURL appends "feed/" to the article path.
func WordPressFeedURL(u *url.URL) string {
	f := *u
	f.RawQuery = ""
	f.Fragment = ""
	f.Path = strings.TrimSuffix(f.Path, "/") + "/feed/"
	return f.String()
}

// FetchComments reads the feed and turns each item into a comment in
// feed order.
func (c *CommentFeed) FetchComments(ctx context.Context, u *url.URL, r newsparse.Requester) ([]newsparse.Comment, error) {
	feedURL := c.FeedURL
	if feedURL == nil {
		feedURL = WordPressFeedURL
	}
	base := feedURL(u)

	if c.PageParam == "" {
		page, err := c.fetchPage(ctx, r, base)
		if err != nil {
			return nil, err
		}
		return page.Comments, nil
	}

	return newsparse.Paginate(ctx, c.MaxPages, func(ctx context.Context, n int) (*newsparse.CommentPage, error) {
		if n == 0 {
			return c.fetchPage(ctx, r, base)
		}
		page, err := c.fetchPage(ctx, r, withParam(base, c.PageParam, strconv.Itoa(n+1)))
		// Engines answer 404 past the last page.
		if newsparse.ErrorCode(err) == newsparse.ENOTFOUND {
			return nil, nil
		}
		return page, err
	})
}

func (c *CommentFeed) fetchPage(ctx context.Context, r newsparse.Requester, feedURL string) (*newsparse.CommentPage, error) {
	resp, err := r.Do(ctx, &newsparse.Request{Method: "GET", URL: feedURL})
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().ParseString(string(resp.Body))
	if err != nil {
		return nil, newsparse.Errorf(newsparse.EINVALID, "parsing comment feed %s: %v", feedURL, err)
	}

	comments := FeedComments(feed)
	return &newsparse.CommentPage{Comments: comments, HasNext: len(comments) > 0}, nil
}

// FeedComments converts feed items to comments. Items without text are
// skipped.
func FeedComments(feed *gofeed.Feed) []newsparse.Comment {
	comments := make([]newsparse.Comment, 0, len(feed.Items))
	for _, item := range feed.Items {
		body := item.Content
		if body == "" {
			body = item.Description
		}
		text := plainText(body)
		if text == "" {
			continue
		}
		comments = append(comments, newsparse.Comment{
			Text:   text,
			Author: author(item),
			Date:   itemDate(item),
		})
	}
	return comments
}

// author prefers the structured author, then Dublin Core creator.
func author(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return newsparse.NormalizeText(item.Author.Name)
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return newsparse.NormalizeText(a.Name)
		}
	}
	if item.DublinCoreExt != nil {
		for _, creator := range item.DublinCoreExt.Creator {
			if creator != "" {
				return newsparse.NormalizeText(creator)
			}
		}
	}
	return ""
}

func itemDate(item *gofeed.Item) string {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.Format("2006-01-02")
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.Format("2006-01-02")
	}
	return ""
}

// plainText drops markup from an item body.
func plainText(markup string) string {
	if !strings.Contains(markup, "<") {
		return newsparse.NormalizeText(markup)
	}
	doc, err := gq.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return newsparse.NormalizeText(markup)
	}
	return newsparse.NormalizeText(doc.Text())
}

func withParam(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

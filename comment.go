package newsparse

import (
	"context"
	"net/url"
)

// DefaultMaxCommentPages caps remote comment pagination when the caller
// passes a non-positive limit.
const DefaultMaxCommentPages = 50

// CommentPage is one page returned by a remote comment endpoint.
type CommentPage struct {
	Comments []Comment

	// HasNext is the server-reported continuation flag.
	HasNext bool
}

// PageFetcher fetches the comment page with the given zero-based index.
type PageFetcher func(ctx context.Context, page int) (*CommentPage, error)

// Paginate fetches pages sequentially until the continuation flag is false,
// maxPages pages were fetched or a fetch fails. Comments accumulate in page
// order. On failure the comments collected so far are returned together
// with the error.
func Paginate(ctx context.Context, maxPages int, fetch PageFetcher) ([]Comment, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxCommentPages
	}

	var comments []Comment
	for page := 0; page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return comments, err
		}
		p, err := fetch(ctx, page)
		if err != nil {
			return comments, err
		}
		if p == nil {
			break
		}
		comments = append(comments, p.Comments...)
		if !p.HasNext {
			break
		}
	}
	return comments, nil
}

// CommentFetcher retrieves the comments of an article from a remote
// endpoint. Implementations return the comments retrieved before a
// failure along with the error.
type CommentFetcher interface {
	FetchComments(ctx context.Context, u *url.URL, r Requester) ([]Comment, error)
}

// CommentFetcherFunc adapts a function to CommentFetcher.
type CommentFetcherFunc func(ctx context.Context, u *url.URL, r Requester) ([]Comment, error)

// FetchComments calls f.
func (f CommentFetcherFunc) FetchComments(ctx context.Context, u *url.URL, r Requester) ([]Comment, error) {
	return f(ctx, u, r)
}

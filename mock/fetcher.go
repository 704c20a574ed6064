package mock

import (
	"context"

	"github.com/fwojciec/newsparse"
)

var _ newsparse.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of newsparse.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ newsparse.Requester = (*Requester)(nil)

// Requester is a mock implementation of newsparse.Requester.
type Requester struct {
	DoFn func(ctx context.Context, req *newsparse.Request) (*newsparse.Response, error)
}

func (r *Requester) Do(ctx context.Context, req *newsparse.Request) (*newsparse.Response, error) {
	return r.DoFn(ctx, req)
}

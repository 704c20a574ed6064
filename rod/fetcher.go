package rod

import (
	"context"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds one page load.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements newsparse.Fetcher at compile time.
var _ newsparse.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML for adapters marked JSRendered.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	settle  time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettle waits d after the load event for late scripts.
func WithSettle(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithManager shares an existing BrowserManager, typically with a
// CookieSource. Closing the Fetcher closes the manager.
func WithManager(bm *BrowserManager) FetcherOption {
	return func(f *Fetcher) {
		f.manager = bm
	}
}

// NewFetcher creates a Fetcher. Without WithManager it launches its own
// headless Chrome. Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}
	if f.manager == nil {
		bm, err := NewBrowserManager()
		if err != nil {
			return nil, err
		}
		f.manager = bm
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.manager.Closed() {
		return "", newsparse.Errorf(newsparse.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := openPage(ctx, f.manager, url)
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	if f.settle > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.settle):
		}
	}

	return page.HTML()
}

// Close releases browser resources. It is safe to call more than once.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// openPage creates a page bound to ctx, navigates to url and waits for
// the load event.
func openPage(ctx context.Context, bm *BrowserManager, url string) (*rod.Page, error) {
	page, err := bm.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	page = page.Context(ctx)

	if ua := bm.UserAgent(); ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			_ = page.Close()
			return nil, err
		}
	}
	if err := page.Navigate(url); err != nil {
		_ = page.Close()
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, err
	}
	return page, nil
}

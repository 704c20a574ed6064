package newsparse

import (
	"context"
	"net/url"
)

// Fetcher retrieves the HTML of a page.
// The HTTP implementation returns the server response; the browser
// implementation returns the rendered DOM for JavaScript-heavy sites.
type Fetcher interface {
	// Fetch retrieves the page and returns its HTML decoded to UTF-8.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Request is an HTTP exchange issued by a remote comment strategy.
type Request struct {
	Method string
	URL    string

	// Header values are set on the outgoing request.
	Header map[string]string

	// Form is sent url-encoded when set.
	Form url.Values

	// JSON is marshaled as the body when set and Form is nil.
	JSON any
}

// Response is the result of a Request.
type Response struct {
	StatusCode int
	Body       []byte
}

// Requester performs ad-hoc HTTP requests on behalf of adapters.
// Implementations share the process-wide transport configuration and
// return an error for non-2xx responses.
type Requester interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

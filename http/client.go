// Package http provides the HTTP transport: a newsparse.Fetcher for static
// pages and a newsparse.Requester for remote comment endpoints, sharing one
// configured client.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/fwojciec/newsparse"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent when no user agent is configured. Several sites
// reject the Go default.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// maxBodySize caps response bodies.
const maxBodySize = 20 << 20

// Ensure Client implements newsparse.Fetcher and newsparse.Requester at
// compile time.
var (
	_ newsparse.Fetcher   = (*Client)(nil)
	_ newsparse.Requester = (*Client)(nil)
)

// Client retrieves pages and performs comment API requests. It does not
// execute JavaScript; use rod.Fetcher for rendered pages.
type Client struct {
	client      *http.Client
	timeout     time.Duration
	proxy       *url.URL
	insecure    bool
	userAgent   string
	limiter     newsparse.DomainLimiter
	retryDelays []time.Duration
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithProxy routes every request through the proxy at u.
func WithProxy(u *url.URL) Option {
	return func(c *Client) {
		c.proxy = u
	}
}

// WithInsecureTLS disables certificate verification. Some news sites
// serve broken certificate chains.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.insecure = true
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLimiter sets the per-domain rate limiter.
func WithLimiter(l newsparse.DomainLimiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithRetryDelays sets the delays between attempts. Nil disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.retryDelays = delays
	}
}

// WithLogger sets the logger for retries.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a new Client with a cookie jar scoped by public
// suffix.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		retryDelays: DefaultRetryDelays(),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if c.proxy != nil {
		transport.Proxy = http.ProxyURL(c.proxy)
	}
	if c.insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in
	}

	// cookiejar.New never returns an error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	c.client = &http.Client{
		Timeout:   c.timeout,
		Transport: transport,
		Jar:       jar,
	}
	return c
}

// SetCookies stores session cookies for the site at siteURL. Later
// requests to the site send them.
func (c *Client) SetCookies(siteURL string, cookies []newsparse.Cookie) error {
	u, err := url.Parse(siteURL)
	if err != nil {
		return newsparse.Errorf(newsparse.EINVALID, "invalid URL %q", siteURL)
	}
	hc := make([]*http.Cookie, 0, len(cookies))
	for _, ck := range cookies {
		hc = append(hc, &http.Cookie{
			Name:    ck.Name,
			Value:   ck.Value,
			Domain:  ck.Domain,
			Path:    ck.Path,
			Expires: ck.Expires,
		})
	}
	c.client.Jar.SetCookies(u, hc)
	return nil
}

// Fetch retrieves the page at rawURL and decodes it to UTF-8 using the
// declared charset.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	var body string
	err := c.retry(ctx, rawURL, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "text/html,application/xhtml+xml")

		resp, err := c.do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		r, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"))
		if errors.Is(err, io.EOF) {
			body = ""
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", rawURL, err)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		body = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return body, nil
}

// Do performs req. Form takes precedence over JSON as the body.
func (c *Client) Do(ctx context.Context, req *newsparse.Request) (*newsparse.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var payload []byte
	var contentType string
	switch {
	case req.Form != nil:
		payload = []byte(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.JSON != nil:
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, newsparse.Errorf(newsparse.EINVALID, "marshal request body: %v", err)
		}
		payload = data
		contentType = "application/json"
	}

	var res *newsparse.Response
	err := c.retry(ctx, req.URL, func() error {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		hreq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
		if err != nil {
			return err
		}
		if contentType != "" {
			hreq.Header.Set("Content-Type", contentType)
		}
		for k, v := range req.Header {
			hreq.Header.Set(k, v)
		}

		resp, err := c.do(hreq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return err
		}
		res = &newsparse.Response{StatusCode: resp.StatusCode, Body: data}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// do sends req after the rate limiter allows it. Non-2xx responses are
// closed and returned as *StatusError.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context(), req.URL.Hostname()); err != nil {
			return nil, err
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: req.URL.String()}
	}
	return resp, nil
}

func (c *Client) retry(ctx context.Context, rawURL string, fn func() error) error {
	err := withRetry(ctx, rawURL, c.retryDelays, c.logger, fn)
	if err == nil {
		return nil
	}
	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return newsparse.Errorf(newsparse.ENOTFOUND, "%s", se.Error())
	}
	return err
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/fs"
	"golang.org/x/sync/errgroup"
)

// errSeen marks a URL extracted by an earlier run or earlier in this one.
var errSeen = errors.New("already extracted")

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if len(c.URLs) == 0 {
		return newsparse.Errorf(newsparse.EINVALID, "no URLs given")
	}

	var store newsparse.ArticleStore
	if c.Out != "" {
		store = fs.NewBatchWriter(c.Out, c.Name, deps.Converter)
	}

	var (
		mu        sync.Mutex
		extracted int
		skipped   int
		failed    int
		writeErr  error
	)

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(max(c.Concurrency, 1))
	for _, rawURL := range c.URLs {
		g.Go(func() error {
			a, err := c.extractOne(ctx, deps, rawURL)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, errSeen):
				skipped++
				return nil
			case err != nil:
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failed++
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", rawURL, message(err))
				return nil
			}

			if store != nil {
				err = store.WriteArticle(ctx, a)
			} else {
				err = c.print(deps.Stdout, deps.Converter, a)
			}
			if err != nil {
				writeErr = err
				return err
			}
			if deps.History != nil {
				deps.History.Add(rawURL)
				deps.History.Add(a.URL)
			}
			extracted++
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = writeErr
	}

	if store != nil {
		if err != nil || extracted == 0 {
			_ = store.Abort()
		} else if cerr := store.Commit(); cerr != nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stderr, "extracted %d, skipped %d, failed %d\n", extracted, skipped, failed)
	if failed > 0 {
		return newsparse.Errorf(newsparse.EINTERNAL, "%d of %d URLs failed", failed, len(c.URLs))
	}
	return nil
}

// extractOne runs the fetch and extraction pipeline for one URL.
func (c *ExtractCmd) extractOne(ctx context.Context, deps *Dependencies, rawURL string) (*newsparse.Article, error) {
	target := rawURL
	fetcher := deps.Fetcher

	adapter, ok := deps.Registry.Lookup(rawURL)
	if ok {
		normalized, err := adapter.URL.Normalize(rawURL)
		if err != nil {
			return nil, err
		}
		if adapter.URL.IgnoresContent(normalized) {
			return nil, newsparse.Errorf(newsparse.ENOTARTICLE, "content ignored on %s", normalized)
		}
		target = normalized
	} else if !c.Generic {
		return nil, newsparse.Errorf(newsparse.ENOTARTICLE, "no adapter for %s", rawURL)
	}

	if deps.History != nil && deps.History.Test(target) {
		return nil, errSeen
	}
	if deps.Seen != nil && deps.Seen.Seen(target) {
		return nil, errSeen
	}

	if ok && adapter.NeedsSessionCookie {
		if err := deps.Sessions.Ensure(ctx, adapter, target); err != nil {
			return nil, fmt.Errorf("session cookie: %w", err)
		}
	}
	if ok && adapter.JSRendered {
		if deps.Browser == nil {
			return nil, newsparse.Errorf(newsparse.EINVALID, "%s needs a browser", adapter.Name)
		}
		fetcher = deps.Browser
	}

	html, err := fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	return deps.Extractor.Extract(ctx, target, html)
}

func (c *ExtractCmd) print(w io.Writer, conv newsparse.Converter, a *newsparse.Article) error {
	if c.Format != "markdown" {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(a)
	}

	var body string
	switch {
	case len(a.Content) == 0:
	case conv == nil:
		body = a.Text() + "\n"
	default:
		md, err := conv.Convert(fs.ArticleHTML(a))
		if err != nil {
			return err
		}
		body = md + "\n"
	}
	out, err := fs.FormatArticle(a, body)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// message renders err for the terminal: the message of an application
// error, the full chain otherwise.
func message(err error) string {
	var e *newsparse.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

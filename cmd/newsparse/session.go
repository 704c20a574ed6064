package main

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
	"golang.org/x/sync/singleflight"
)

// CookieJar installs acquired cookies into the transport.
type CookieJar interface {
	SetCookies(siteURL string, cookies []newsparse.Cookie) error
}

// Sessions acquires the session cookie of each site at most once per run
// and installs it into the transport cookie jar.
type Sessions struct {
	Source newsparse.CookieSource

	// Store caches cookies across runs. Optional.
	Store newsparse.CookieStore

	Jar CookieJar

	group singleflight.Group
	mu    sync.Mutex
	ready map[string]bool
}

// Ensure makes sure the transport holds a session cookie for the site of
// adapter a. Concurrent calls for one site share a single acquisition.
func (s *Sessions) Ensure(ctx context.Context, a goquery.Adapter, target string) error {
	if s == nil || s.Source == nil {
		return newsparse.Errorf(newsparse.EINVALID, "%s needs a session cookie but no browser is available", a.Name)
	}
	siteURL, err := siteRoot(target)
	if err != nil {
		return err
	}

	s.mu.Lock()
	done := s.ready[a.Name]
	s.mu.Unlock()
	if done {
		return nil
	}

	_, err, _ = s.group.Do(a.Name, func() (any, error) {
		s.mu.Lock()
		done := s.ready[a.Name]
		s.mu.Unlock()
		if done {
			return nil, nil
		}

		var source newsparse.CookieSource = s.Source
		if s.Store != nil {
			source = &newsparse.CachedCookieSource{Site: a.Name, Store: s.Store, Source: s.Source}
		}
		cookies, err := source.Cookies(ctx, siteURL)
		if err != nil {
			return nil, err
		}
		if err := s.Jar.SetCookies(siteURL, cookies); err != nil {
			return nil, err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.ready == nil {
			s.ready = make(map[string]bool)
		}
		s.ready[a.Name] = true
		return nil, nil
	})
	return err
}

func siteRoot(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", newsparse.Errorf(newsparse.EINVALID, "invalid URL %q", target)
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}).String(), nil
}

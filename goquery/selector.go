// Package goquery implements the extraction engine on top of goquery:
// selector resolution, content, date and comment extraction, adapter
// composition and the orchestrating Extractor.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
)

// Scope is what a selector is resolved against.
type Scope struct {
	// Article is the article root, or the full document when the adapter
	// has no root selector.
	Article *goquery.Selection

	// Full is the whole parsed page.
	Full *goquery.Selection

	// URL is the normalized request URL.
	URL *url.URL
}

// Selector describes how to find nodes in a document.
type Selector interface {
	resolve(sc Scope) *goquery.Selection
}

// Resolve evaluates sel in sc. It never fails: a nil selector, no match or
// a panicking callback all yield an empty selection.
func Resolve(sel Selector, sc Scope) *goquery.Selection {
	if sel == nil || sc.Full == nil {
		return empty(sc)
	}
	if sc.Article == nil {
		sc.Article = sc.Full
	}
	res := sel.resolve(sc)
	if res == nil {
		return empty(sc)
	}
	return res
}

func empty(sc Scope) *goquery.Selection {
	if sc.Full != nil {
		return sc.Full.Slice(0, 0)
	}
	return &goquery.Selection{}
}

// Query is a CSS query run against the article root.
type Query string

func (q Query) resolve(sc Scope) *goquery.Selection {
	if q == "" {
		return empty(sc)
	}
	return sc.Article.Find(string(q))
}

// DocQuery is a CSS query run against the full document.
type DocQuery string

func (q DocQuery) resolve(sc Scope) *goquery.Selection {
	if q == "" {
		return empty(sc)
	}
	return sc.Full.Find(string(q))
}

// Slice runs Query and keeps the matches in [Start, Last). Last 0 keeps
// everything after Start; negative bounds count from the end.
type Slice struct {
	Query string
	Start int
	Last  int

	// Doc runs the query against the full document.
	Doc bool
}

func (s Slice) resolve(sc Scope) *goquery.Selection {
	root := sc.Article
	if s.Doc {
		root = sc.Full
	}
	res := root.Find(s.Query)
	n := res.Length()

	start, last := s.Start, s.Last
	if start < 0 {
		start += n
	}
	if last <= 0 {
		last += n
	}
	start = max(0, min(start, n))
	last = max(start, min(last, n))
	return res.Slice(start, last)
}

// Func computes the nodes from the article root, the full document and the
// request URL. It may return nil.
type Func func(article, full *goquery.Selection, u *url.URL) *goquery.Selection

func (f Func) resolve(sc Scope) (res *goquery.Selection) {
	if f == nil {
		return empty(sc)
	}
	defer func() {
		if recover() != nil {
			res = empty(sc)
		}
	}()
	return f(sc.Article, sc.Full, sc.URL)
}

// FirstOf resolves each selector in turn and returns the first non-empty
// result.
type FirstOf []Selector

func (f FirstOf) resolve(sc Scope) *goquery.Selection {
	for _, sel := range f {
		if res := Resolve(sel, sc); res.Length() > 0 {
			return res
		}
	}
	return empty(sc)
}

// ParseFragment parses a markup fragment, such as HTML stored in an
// attribute, and returns its top-level nodes.
func ParseFragment(markup string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return &goquery.Selection{}
	}
	return doc.Find("body").Children()
}

// Text returns the normalized text of the first node of sel.
func Text(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return newsparse.NormalizeText(sel.First().Text())
}

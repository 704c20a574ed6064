package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
	"golang.org/x/net/html"
)

// Document is one parsed page with its resolved article root.
type Document struct {
	url     *url.URL
	full    *goquery.Selection
	article *goquery.Selection
	order   map[*html.Node]int
}

// NewDocument parses rawHTML fetched from u and resolves root against the
// full page. A nil root makes the whole page the article root.
func NewDocument(rawHTML string, u *url.URL, root Selector) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, newsparse.Errorf(newsparse.EINVALID, "failed to parse HTML: %v", err)
	}

	d := &Document{url: u, full: doc.Selection, order: documentOrder(doc.Selection)}
	if root == nil {
		d.article = doc.Selection
	} else if res := Resolve(root, Scope{Article: doc.Selection, Full: doc.Selection, URL: u}); res.Length() > 0 {
		d.article = res
	}
	return d, nil
}

// HasArticle reports whether the article root was found.
func (d *Document) HasArticle() bool {
	return d.article != nil
}

// Scope returns the resolution scope of the document. When the article
// root was not found the full page stands in for it.
func (d *Document) Scope() Scope {
	article := d.article
	if article == nil {
		article = d.full
	}
	return Scope{Article: article, Full: d.full, URL: d.url}
}

// position returns the index of n in a depth-first walk of the page.
// Nodes synthesized by callbacks are not part of the page.
func (d *Document) position(n *html.Node) (int, bool) {
	i, ok := d.order[n]
	return i, ok
}

func documentOrder(full *goquery.Selection) map[*html.Node]int {
	order := make(map[*html.Node]int)
	var i int
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		order[n] = i
		i++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range full.Nodes {
		walk(n)
	}
	return order
}

package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
	"golang.org/x/net/html"
)

// CommentSpec selects comments from the page or fetches them remotely.
// Field selectors resolve with the comment node as the article root.
type CommentSpec struct {
	Container Selector
	Author    Selector
	Text      Selector
	Date      DateSpec

	// Replies selects the direct replies of a comment. They are placed
	// right after their parent.
	Replies Selector

	// Fetch retrieves comments from a remote endpoint instead of the
	// page.
	Fetch newsparse.CommentFetcher
}

// ExtractComments scrapes comments in document order.
func ExtractComments(spec CommentSpec, sc Scope) []newsparse.Comment {
	if spec.Container == nil {
		return nil
	}

	seen := make(map[*html.Node]bool)
	var comments []newsparse.Comment
	Resolve(spec.Container, sc).Each(func(_ int, node *goquery.Selection) {
		if seen[node.Get(0)] {
			return
		}
		seen[node.Get(0)] = true

		nodeScope := Scope{Article: node, Full: sc.Full, URL: sc.URL}
		var replies *goquery.Selection
		if spec.Replies != nil {
			replies = Resolve(spec.Replies, nodeScope)
		}
		if c, ok := readComment(spec, nodeScope, replies); ok {
			comments = append(comments, c)
		}
		if replies == nil {
			return
		}
		replies.Each(func(_ int, reply *goquery.Selection) {
			if seen[reply.Get(0)] {
				return
			}
			seen[reply.Get(0)] = true
			if c, ok := readComment(spec, Scope{Article: reply, Full: sc.Full, URL: sc.URL}, nil); ok {
				comments = append(comments, c)
			}
		})
	})
	return comments
}

// readComment reads one comment. Text inside replies is left to the
// replies themselves.
func readComment(spec CommentSpec, sc Scope, replies *goquery.Selection) (newsparse.Comment, bool) {
	textSel := sc.Article
	if spec.Text != nil {
		textSel = Resolve(spec.Text, sc)
	}
	if replies != nil && replies.Length() > 0 {
		textSel = textSel.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return !insideAny(s.Get(0), replies.Nodes)
		})
	}
	text := joinText(textSel)
	if text == "" {
		return newsparse.Comment{}, false
	}

	c := newsparse.Comment{
		Text:   text,
		Author: Text(Resolve(spec.Author, sc)),
	}
	if spec.Date.Container != nil {
		if res := ExtractDate(spec.Date, sc); !res.Missing {
			c.Date = res.Value
		}
	}
	return c, true
}

// joinText joins the normalized text of every node with newlines.
func joinText(sel *goquery.Selection) string {
	var out string
	sel.Each(func(_ int, s *goquery.Selection) {
		t := newsparse.NormalizeText(s.Text())
		if t == "" {
			return
		}
		if out != "" {
			out += "\n"
		}
		out += t
	})
	return out
}

// insideAny reports whether n is one of nodes or a descendant of one.
func insideAny(n *html.Node, nodes []*html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		for _, r := range nodes {
			if p == r {
				return true
			}
		}
	}
	return false
}

package goquery

import (
	"bytes"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
	"golang.org/x/net/html"
)

// ContentSpec describes where an article body lives and what to drop.
type ContentSpec struct {
	Main        Selector
	Alternative Selector

	// TextNode selects containers whose bare text runs (text and inline
	// elements that are direct children) become text items of their own.
	TextNode Selector

	// Merge emits Alternative after Main instead of using it only as a
	// fallback when Main matches nothing.
	Merge bool

	// IgnoreClasses drop nodes carrying any of the classes on themselves
	// or an ancestor. A leading "." is accepted.
	IgnoreClasses []string

	// IgnoreTexts drop items whose text contains any of the substrings.
	IgnoreTexts []string

	// IgnorePatterns drop items whose text matches any of the patterns.
	IgnorePatterns []*regexp.Regexp

	// IgnoreTextNode suppresses individual text runs of a TextNode
	// container, given the run text, its index and the number of runs.
	IgnoreTextNode func(text string, index, count int) bool
}

var mediaTags = map[string]newsparse.ItemType{
	"img":    newsparse.ItemImage,
	"video":  newsparse.ItemVideo,
	"audio":  newsparse.ItemAudio,
	"iframe": newsparse.ItemEmbed,
	"embed":  newsparse.ItemEmbed,
}

var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"button": true, "form": true, "input": true, "select": true,
	"textarea": true, "svg": true, "head": true, "meta": true,
	"link": true, "source": true, "track": true, "object": true,
}

var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true,
	"big": true, "cite": true, "code": true, "data": true, "del": true,
	"dfn": true, "em": true, "font": true, "i": true, "ins": true,
	"kbd": true, "label": true, "mark": true, "nobr": true, "picture": true,
	"q": true, "s": true, "samp": true, "small": true, "span": true,
	"strike": true, "strong": true, "sub": true, "sup": true, "time": true,
	"tt": true, "u": true, "var": true, "wbr": true,
}

var headingLevels = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}

// ExtractContent returns the body items of d in document order. Main
// groups precede Alternative groups.
func ExtractContent(spec ContentSpec, d *Document) []newsparse.ContentItem {
	sc := d.Scope()

	main := Resolve(spec.Main, sc)
	var groups []*goquery.Selection
	switch {
	case spec.Merge:
		groups = []*goquery.Selection{main, Resolve(spec.Alternative, sc)}
	case main.Length() > 0:
		groups = []*goquery.Selection{main}
	default:
		groups = []*goquery.Selection{Resolve(spec.Alternative, sc)}
	}

	x := &contentExtractor{
		spec:    spec,
		doc:     d,
		classes: make(map[string]bool),
		emitted: make(map[*html.Node]bool),
	}
	for _, c := range spec.IgnoreClasses {
		c = strings.TrimPrefix(strings.TrimSpace(c), ".")
		if c != "" {
			x.classes[c] = true
		}
	}

	var containers []*html.Node
	if spec.TextNode != nil {
		containers = Resolve(spec.TextNode, sc).Nodes
	}

	var items []newsparse.ContentItem
	for i, g := range groups {
		var runs []candidate
		if i == 0 {
			runs = x.textRuns(containers)
		}
		for _, c := range x.candidates(g, runs) {
			items = append(items, x.emit(c)...)
		}
	}
	return items
}

type candidate struct {
	order int
	node  *html.Node
	run   []*html.Node
}

type contentExtractor struct {
	spec    ContentSpec
	doc     *Document
	classes map[string]bool
	emitted map[*html.Node]bool
}

// textRuns collects the inline runs of every container, applying
// IgnoreTextNode per container.
func (x *contentExtractor) textRuns(containers []*html.Node) []candidate {
	var out []candidate
	for _, c := range containers {
		if x.excluded(c) {
			continue
		}
		var runs [][]*html.Node
		var cur []*html.Node
		for n := c.FirstChild; n != nil; n = n.NextSibling {
			if isInline(n) {
				cur = append(cur, n)
				continue
			}
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
		}
		if len(cur) > 0 {
			runs = append(runs, cur)
		}

		var texts []string
		var kept [][]*html.Node
		for _, run := range runs {
			if t := x.runText(run); t != "" {
				texts = append(texts, t)
				kept = append(kept, run)
			}
		}
		for i, run := range kept {
			if x.spec.IgnoreTextNode != nil && x.spec.IgnoreTextNode(texts[i], i, len(kept)) {
				for _, n := range run {
					x.emitted[n] = true
				}
				continue
			}
			out = append(out, candidate{order: x.position(run[0], 0), run: run})
		}
	}
	return out
}

func (x *contentExtractor) runText(run []*html.Node) string {
	w := &walker{x: x}
	for _, n := range run {
		w.walk(n)
	}
	w.flush()
	var parts []string
	for _, item := range w.items {
		if item.Type == newsparse.ItemText {
			parts = append(parts, item.Text)
		}
	}
	return strings.Join(parts, " ")
}

// candidates returns the group nodes and runs in document order, without
// nodes nested in other candidates or already emitted.
func (x *contentExtractor) candidates(g *goquery.Selection, runs []candidate) []candidate {
	inGroup := make(map[*html.Node]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		inGroup[n] = true
	}
	inRun := make(map[*html.Node]bool)
	for _, r := range runs {
		for _, n := range r.run {
			inRun[n] = true
		}
	}

	out := append([]candidate(nil), runs...)
	for i, n := range g.Nodes {
		if inRun[n] || x.emitted[n] || x.coveredBy(n, inGroup) {
			continue
		}
		out = append(out, candidate{order: x.position(n, i), node: n})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].order < out[j].order })
	return out
}

func (x *contentExtractor) position(n *html.Node, fallback int) int {
	if i, ok := x.doc.position(n); ok {
		return i
	}
	return math.MaxInt32 + fallback
}

// coveredBy reports whether an ancestor of n is in set or was emitted.
func (x *contentExtractor) coveredBy(n *html.Node, set map[*html.Node]bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if set[p] || x.emitted[p] {
			return true
		}
	}
	return false
}

func (x *contentExtractor) emit(c candidate) []newsparse.ContentItem {
	w := &walker{x: x}
	if c.run != nil {
		// A group node holding the container already carried the run.
		if x.coveredBy(c.run[0], nil) {
			return nil
		}
		for _, n := range c.run {
			w.walk(n)
			x.emitted[n] = true
		}
		w.flush()
		return w.items
	}

	if x.excluded(c.node) {
		return nil
	}
	if !hasBlockDescendant(c.node) && x.ignoredText(newsparse.NormalizeText(nodeText(c.node))) {
		return nil
	}
	w.walk(c.node)
	w.flush()
	x.emitted[c.node] = true
	return w.items
}

// excluded reports whether n or an ancestor carries an ignored class.
func (x *contentExtractor) excluded(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if x.hasIgnoredClass(n) {
			return true
		}
	}
	return false
}

func (x *contentExtractor) hasIgnoredClass(n *html.Node) bool {
	if n.Type != html.ElementNode || len(x.classes) == 0 {
		return false
	}
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if x.classes[c] {
				return true
			}
		}
	}
	return false
}

func (x *contentExtractor) ignoredText(text string) bool {
	if text == "" {
		return false
	}
	for _, s := range x.spec.IgnoreTexts {
		if s != "" && strings.Contains(text, s) {
			return true
		}
	}
	for _, re := range x.spec.IgnorePatterns {
		if re != nil && re.MatchString(text) {
			return true
		}
	}
	return false
}

func (x *contentExtractor) resolveURL(ref string) string {
	return absURL(x.doc.url, ref)
}

// walker flattens a subtree into content items, buffering inline text
// until a block boundary or a media element.
type walker struct {
	x     *contentExtractor
	items []newsparse.ContentItem
	buf   strings.Builder
	level int
}

func (w *walker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.buf.WriteString(n.Data)
		return
	case html.DocumentNode:
		w.children(n)
		return
	case html.ElementNode:
	default:
		return
	}

	if w.x.hasIgnoredClass(n) || skipTags[n.Data] {
		return
	}
	if n.Data == "br" || n.Data == "hr" {
		w.flush()
		return
	}
	if typ, ok := mediaTags[n.Data]; ok {
		w.flush()
		w.media(n, typ)
		return
	}
	if inlineTags[n.Data] {
		w.children(n)
		return
	}

	w.flush()
	prev := w.level
	if lvl, ok := headingLevels[n.Data]; ok {
		w.level = lvl
	}
	w.children(n)
	w.flush()
	w.level = prev
}

func (w *walker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *walker) flush() {
	text := newsparse.NormalizeText(w.buf.String())
	w.buf.Reset()
	if text == "" || w.x.ignoredText(text) {
		return
	}
	tag := "p"
	if w.level > 0 {
		tag = fmt.Sprintf("h%d", w.level)
	}
	w.items = append(w.items, newsparse.ContentItem{
		Type:  newsparse.ItemText,
		Text:  text,
		Level: w.level,
		HTML:  "<" + tag + ">" + html.EscapeString(text) + "</" + tag + ">",
	})
}

func (w *walker) media(n *html.Node, typ newsparse.ItemType) {
	src := mediaSource(n)
	if src == "" || strings.HasPrefix(src, "data:") {
		return
	}
	alt := strings.TrimSpace(attr(n, "alt"))
	if alt == "" {
		alt = strings.TrimSpace(attr(n, "title"))
	}
	w.items = append(w.items, newsparse.ContentItem{
		Type: typ,
		Src:  w.x.resolveURL(src),
		Alt:  newsparse.NormalizeText(alt),
		HTML: renderNode(n),
	})
}

func mediaSource(n *html.Node) string {
	for _, key := range []string{"src", "data-src", "data-original", "data-lazy-src"} {
		if v := strings.TrimSpace(attr(n, key)); v != "" {
			return v
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "source" {
			if v := strings.TrimSpace(attr(c, "src")); v != "" {
				return v
			}
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isInline(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
		return inlineTags[n.Data]
	}
	return false
}

func hasBlockDescendant(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if _, media := mediaTags[c.Data]; media {
			return true
		}
		if !inlineTags[c.Data] && !skipTags[c.Data] && c.Data != "br" {
			return true
		}
		if hasBlockDescendant(c) {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && skipTags[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func renderNode(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// absURL resolves ref against base, returning ref unchanged when either
// does not parse.
func absURL(base *url.URL, ref string) string {
	if base == nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

package goquery

import (
	"github.com/fwojciec/newsparse"
)

// CategorySpec locates the breadcrumb nodes and maps their joined text.
type CategorySpec struct {
	Selector Selector

	// Separator joins node texts into the raw category. Default "/".
	Separator string

	Mapper newsparse.CategoryMapper
}

// Adapter is the declarative configuration of one site.
type Adapter struct {
	// Name identifies the site (e.g. "farsnews").
	Name string

	URL newsparse.URLRules

	// ArticleRoot narrows Query selectors to the article subtree.
	// A page without it is not an article unless AcceptNoTitle is set.
	ArticleRoot Selector

	AboveTitle Selector
	Title      Selector
	Subtitle   Selector
	Summary    Selector
	Content    ContentSpec
	Tags       Selector
	Date       DateSpec
	Category   CategorySpec
	Comments   CommentSpec

	AcceptNoTitle   bool
	AcceptNoContent bool

	// NeedsSessionCookie makes callers acquire a session cookie through a
	// newsparse.CookieSource before fetching.
	NeedsSessionCookie bool

	// JSRendered makes callers fetch the page with a browser.
	JSRendered bool
}

// Merge overlays override on base field by field: set fields replace,
// slices concatenate (base first) and flags are or-ed. Category rules of
// the override come first so they take precedence.
func Merge(base, override Adapter) Adapter {
	out := base
	setString(&out.Name, override.Name)
	out.URL = mergeURL(base.URL, override.URL)
	setSelector(&out.ArticleRoot, override.ArticleRoot)
	setSelector(&out.AboveTitle, override.AboveTitle)
	setSelector(&out.Title, override.Title)
	setSelector(&out.Subtitle, override.Subtitle)
	setSelector(&out.Summary, override.Summary)
	out.Content = mergeContent(base.Content, override.Content)
	setSelector(&out.Tags, override.Tags)
	out.Date = mergeDate(base.Date, override.Date)
	out.Category = mergeCategory(base.Category, override.Category)
	out.Comments = mergeComments(base.Comments, override.Comments)
	out.AcceptNoTitle = base.AcceptNoTitle || override.AcceptNoTitle
	out.AcceptNoContent = base.AcceptNoContent || override.AcceptNoContent
	out.NeedsSessionCookie = base.NeedsSessionCookie || override.NeedsSessionCookie
	out.JSRendered = base.JSRendered || override.JSRendered
	return out
}

func mergeURL(base, o newsparse.URLRules) newsparse.URLRules {
	out := base
	setString(&out.Host, o.Host)
	setString(&out.CanonicalHost, o.CanonicalHost)
	setString(&out.Scheme, o.Scheme)
	setString(&out.BasePath, o.BasePath)
	out.RemoveWWW = base.RemoveWWW || o.RemoveWWW
	out.InvalidStartPaths = concat(base.InvalidStartPaths, o.InvalidStartPaths)
	out.ValidPathItems = concat(base.ValidPathItems, o.ValidPathItems)
	out.ValidDomains = concat(base.ValidDomains, o.ValidDomains)
	out.IgnoreContentOnPath = concat(base.IgnoreContentOnPath, o.IgnoreContentOnPath)
	if o.PathCheckIndex != 0 {
		out.PathCheckIndex = o.PathCheckIndex
	}
	if o.Rewrite != nil {
		out.Rewrite = o.Rewrite
	}
	return out
}

func mergeContent(base, o ContentSpec) ContentSpec {
	out := base
	setSelector(&out.Main, o.Main)
	setSelector(&out.Alternative, o.Alternative)
	setSelector(&out.TextNode, o.TextNode)
	out.Merge = base.Merge || o.Merge
	out.IgnoreClasses = concat(base.IgnoreClasses, o.IgnoreClasses)
	out.IgnoreTexts = concat(base.IgnoreTexts, o.IgnoreTexts)
	out.IgnorePatterns = concat(base.IgnorePatterns, o.IgnorePatterns)
	if o.IgnoreTextNode != nil {
		out.IgnoreTextNode = o.IgnoreTextNode
	}
	return out
}

func mergeDate(base, o DateSpec) DateSpec {
	out := base
	setSelector(&out.Container, o.Container)
	setString(&out.Attr, o.Attr)
	setString(&out.Delimiter, o.Delimiter)
	if o.DelimiterPattern != nil {
		out.DelimiterPattern = o.DelimiterPattern
	}
	if o.Splitter != nil {
		out.Splitter = o.Splitter
	}
	if o.Fallback != nil {
		out.Fallback = o.Fallback
	}
	out.AcceptNoDate = base.AcceptNoDate || o.AcceptNoDate
	return out
}

func mergeCategory(base, o CategorySpec) CategorySpec {
	out := base
	setSelector(&out.Selector, o.Selector)
	setString(&out.Separator, o.Separator)

	m := &out.Mapper
	om := o.Mapper
	m.RootLabels = concat(base.Mapper.RootLabels, om.RootLabels)
	m.StripPrefixes = concat(base.Mapper.StripPrefixes, om.StripPrefixes)
	m.Rules = concat(om.Rules, base.Mapper.Rules)
	m.Refinements = concat(om.Refinements, base.Mapper.Refinements)
	if om.Normalize != nil {
		m.Normalize = om.Normalize
	}
	if om.Map != nil {
		m.Map = om.Map
	}
	if om.Default != (newsparse.Category{}) {
		m.Default = om.Default
	}
	return out
}

func mergeComments(base, o CommentSpec) CommentSpec {
	out := base
	setSelector(&out.Container, o.Container)
	setSelector(&out.Author, o.Author)
	setSelector(&out.Text, o.Text)
	setSelector(&out.Replies, o.Replies)
	out.Date = mergeDate(base.Date, o.Date)
	if o.Fetch != nil {
		out.Fetch = o.Fetch
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setSelector(dst *Selector, v Selector) {
	if v != nil {
		*dst = v
	}
}

func concat[T any](a, b []T) []T {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

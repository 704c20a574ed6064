package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
	"gopkg.in/yaml.v3"
)

// AdapterDef is the YAML form of a goquery.Adapter. Only literal
// selectors and rule tables can be expressed; sites needing callbacks are
// written in Go.
type AdapterDef struct {
	Name string `yaml:"name"`
	URL  URLDef `yaml:"url"`

	ArticleRoot *SelectorDef `yaml:"article_root"`
	AboveTitle  *SelectorDef `yaml:"above_title"`
	Title       *SelectorDef `yaml:"title"`
	Subtitle    *SelectorDef `yaml:"subtitle"`
	Summary     *SelectorDef `yaml:"summary"`
	Tags        *SelectorDef `yaml:"tags"`

	Content  ContentDef  `yaml:"content"`
	Date     DateDef     `yaml:"date"`
	Category CategoryDef `yaml:"category"`
	Comments CommentDef  `yaml:"comments"`

	AcceptNoTitle      bool `yaml:"accept_no_title"`
	AcceptNoContent    bool `yaml:"accept_no_content"`
	NeedsSessionCookie bool `yaml:"needs_session_cookie"`
	JSRendered         bool `yaml:"js_rendered"`
}

// URLDef mirrors newsparse.URLRules without the rewrite hook.
type URLDef struct {
	Host                string   `yaml:"host"`
	CanonicalHost       string   `yaml:"canonical_host"`
	Scheme              string   `yaml:"scheme"`
	RemoveWWW           bool     `yaml:"remove_www"`
	BasePath            string   `yaml:"base_path"`
	InvalidStartPaths   []string `yaml:"invalid_start_paths"`
	ValidPathItems      []string `yaml:"valid_path_items"`
	PathCheckIndex      int      `yaml:"path_check_index"`
	ValidDomains        []string `yaml:"valid_domains"`
	IgnoreContentOnPath []string `yaml:"ignore_content_on_path"`
}

// SelectorDef is a selector written as a plain CSS string (article
// scoped), a mapping with query/doc/start/last, or a sequence tried in
// order.
type SelectorDef struct {
	sel goquery.Selector
}

type sliceDef struct {
	Query string `yaml:"query"`
	Doc   bool   `yaml:"doc"`
	Start int    `yaml:"start"`
	Last  int    `yaml:"last"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *SelectorDef) UnmarshalYAML(node *yaml.Node) error {
	sel, err := decodeSelector(node)
	if err != nil {
		return err
	}
	s.sel = sel
	return nil
}

// Selector returns the decoded selector, nil for an absent definition.
func (s *SelectorDef) Selector() goquery.Selector {
	if s == nil {
		return nil
	}
	return s.sel
}

func decodeSelector(node *yaml.Node) (goquery.Selector, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return nil, nil
		}
		return goquery.Query(node.Value), nil
	case yaml.MappingNode:
		var d sliceDef
		if err := node.Decode(&d); err != nil {
			return nil, err
		}
		if d.Query == "" {
			return nil, fmt.Errorf("line %d: selector query required", node.Line)
		}
		if d.Start == 0 && d.Last == 0 {
			if d.Doc {
				return goquery.DocQuery(d.Query), nil
			}
			return goquery.Query(d.Query), nil
		}
		return goquery.Slice{Query: d.Query, Doc: d.Doc, Start: d.Start, Last: d.Last}, nil
	case yaml.SequenceNode:
		var sels goquery.FirstOf
		for _, n := range node.Content {
			sel, err := decodeSelector(n)
			if err != nil {
				return nil, err
			}
			if sel != nil {
				sels = append(sels, sel)
			}
		}
		return sels, nil
	}
	return nil, fmt.Errorf("line %d: selector must be a string, mapping or list", node.Line)
}

// ContentDef mirrors goquery.ContentSpec.
type ContentDef struct {
	Main           *SelectorDef `yaml:"main"`
	Alternative    *SelectorDef `yaml:"alternative"`
	TextNode       *SelectorDef `yaml:"text_node"`
	Merge          bool         `yaml:"merge"`
	IgnoreClasses  []string     `yaml:"ignore_classes"`
	IgnoreTexts    []string     `yaml:"ignore_texts"`
	IgnorePatterns []string     `yaml:"ignore_patterns"`
}

// DateDef mirrors goquery.DateSpec without callbacks.
type DateDef struct {
	Selector         *SelectorDef `yaml:"selector"`
	Attr             string       `yaml:"attr"`
	Delimiter        string       `yaml:"delimiter"`
	DelimiterPattern string       `yaml:"delimiter_pattern"`
	AcceptNoDate     bool         `yaml:"accept_no_date"`
}

// CommentDef mirrors the DOM part of goquery.CommentSpec.
type CommentDef struct {
	Container *SelectorDef `yaml:"container"`
	Author    *SelectorDef `yaml:"author"`
	Text      *SelectorDef `yaml:"text"`
	Replies   *SelectorDef `yaml:"replies"`
	Date      DateDef      `yaml:"date"`
}

// CategoryDef mirrors goquery.CategorySpec and its mapper.
type CategoryDef struct {
	Selector      *SelectorDef `yaml:"selector"`
	Separator     string       `yaml:"separator"`
	RootLabels    []string     `yaml:"root_labels"`
	StripPrefixes []string     `yaml:"strip_prefixes"`
	Default       CategoryVal  `yaml:"default"`
	Rules         []RuleDef    `yaml:"rules"`
}

// CategoryVal is a category in YAML form.
type CategoryVal struct {
	Major    string `yaml:"major"`
	Minor    string `yaml:"minor"`
	Subminor string `yaml:"subminor"`
	TextType string `yaml:"text_type"`
}

func (v CategoryVal) category() newsparse.Category {
	return newsparse.Category{
		Major:    newsparse.Major(v.Major),
		Minor:    newsparse.Topic(v.Minor),
		Subminor: newsparse.Topic(v.Subminor),
		TextType: newsparse.TextType(v.TextType),
	}
}

// RuleDef is one category rule. All given conditions must hold; each
// list matches when any of its entries does.
type RuleDef struct {
	First          []string `yaml:"first"`
	FirstContains  []string `yaml:"first_contains"`
	Second         []string `yaml:"second"`
	SecondContains []string `yaml:"second_contains"`
	Raw            []string `yaml:"raw"`
	RawContains    []string `yaml:"raw_contains"`
	Province       bool     `yaml:"province"`

	Category CategoryVal `yaml:",inline"`
}

func (r RuleDef) predicate() newsparse.CategoryPredicate {
	var preds []newsparse.CategoryPredicate
	add := func(vals []string, p func(...string) newsparse.CategoryPredicate) {
		if len(vals) > 0 {
			preds = append(preds, p(vals...))
		}
	}
	add(r.First, newsparse.FirstHasPrefix)
	add(r.FirstContains, newsparse.FirstContains)
	add(r.Second, newsparse.SecondHasPrefix)
	add(r.SecondContains, newsparse.SecondContains)
	add(r.Raw, newsparse.RawHasPrefix)
	add(r.RawContains, newsparse.RawContains)
	if r.Province {
		preds = append(preds, newsparse.FirstIsProvince())
	}
	if len(preds) == 0 {
		return newsparse.Always()
	}
	return newsparse.And(preds...)
}

// ReadAdapters decodes a stream of YAML documents separated by "---",
// one adapter per document. Unknown keys are rejected.
func ReadAdapters(r io.Reader) ([]goquery.Adapter, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var adapters []goquery.Adapter
	for {
		var def AdapterDef
		err := dec.Decode(&def)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newsparse.Errorf(newsparse.EINVALID, "adapters: %v", err)
		}

		a, err := def.Adapter()
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}

// LoadAdapters reads adapter definitions from the file at path.
func LoadAdapters(path string) ([]goquery.Adapter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	adapters, err := ReadAdapters(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return adapters, nil
}

// Adapter builds the goquery adapter.
func (d AdapterDef) Adapter() (goquery.Adapter, error) {
	if d.Name == "" {
		return goquery.Adapter{}, newsparse.Errorf(newsparse.EINVALID, "adapter name required")
	}
	if d.URL.Host == "" {
		return goquery.Adapter{}, newsparse.Errorf(newsparse.EINVALID, "adapter %s: url.host required", d.Name)
	}
	if d.Title == nil && !d.AcceptNoTitle {
		return goquery.Adapter{}, newsparse.Errorf(newsparse.EINVALID, "adapter %s: title selector required", d.Name)
	}

	patterns, err := compileAll(d.Content.IgnorePatterns)
	if err != nil {
		return goquery.Adapter{}, newsparse.Errorf(newsparse.EINVALID, "adapter %s: %v", d.Name, err)
	}
	date, err := d.Date.spec()
	if err != nil {
		return goquery.Adapter{}, newsparse.Errorf(newsparse.EINVALID, "adapter %s: %v", d.Name, err)
	}
	commentDate, err := d.Comments.Date.spec()
	if err != nil {
		return goquery.Adapter{}, newsparse.Errorf(newsparse.EINVALID, "adapter %s: %v", d.Name, err)
	}

	rules := make([]newsparse.CategoryRule, 0, len(d.Category.Rules))
	for _, r := range d.Category.Rules {
		rules = append(rules, newsparse.CategoryRule{Match: r.predicate(), Category: r.Category.category()})
	}

	return goquery.Adapter{
		Name: d.Name,
		URL: newsparse.URLRules{
			Host:                d.URL.Host,
			CanonicalHost:       d.URL.CanonicalHost,
			Scheme:              d.URL.Scheme,
			RemoveWWW:           d.URL.RemoveWWW,
			BasePath:            d.URL.BasePath,
			InvalidStartPaths:   d.URL.InvalidStartPaths,
			ValidPathItems:      d.URL.ValidPathItems,
			PathCheckIndex:      d.URL.PathCheckIndex,
			ValidDomains:        d.URL.ValidDomains,
			IgnoreContentOnPath: d.URL.IgnoreContentOnPath,
		},
		ArticleRoot: d.ArticleRoot.Selector(),
		AboveTitle:  d.AboveTitle.Selector(),
		Title:       d.Title.Selector(),
		Subtitle:    d.Subtitle.Selector(),
		Summary:     d.Summary.Selector(),
		Tags:        d.Tags.Selector(),
		Content: goquery.ContentSpec{
			Main:           d.Content.Main.Selector(),
			Alternative:    d.Content.Alternative.Selector(),
			TextNode:       d.Content.TextNode.Selector(),
			Merge:          d.Content.Merge,
			IgnoreClasses:  d.Content.IgnoreClasses,
			IgnoreTexts:    d.Content.IgnoreTexts,
			IgnorePatterns: patterns,
		},
		Date: date,
		Category: goquery.CategorySpec{
			Selector:  d.Category.Selector.Selector(),
			Separator: d.Category.Separator,
			Mapper: newsparse.CategoryMapper{
				RootLabels:    d.Category.RootLabels,
				StripPrefixes: d.Category.StripPrefixes,
				Rules:         rules,
				Default:       d.Category.Default.category(),
			},
		},
		Comments: goquery.CommentSpec{
			Container: d.Comments.Container.Selector(),
			Author:    d.Comments.Author.Selector(),
			Text:      d.Comments.Text.Selector(),
			Replies:   d.Comments.Replies.Selector(),
			Date:      commentDate,
		},
		AcceptNoTitle:      d.AcceptNoTitle,
		AcceptNoContent:    d.AcceptNoContent,
		NeedsSessionCookie: d.NeedsSessionCookie,
		JSRendered:         d.JSRendered,
	}, nil
}

func (d DateDef) spec() (goquery.DateSpec, error) {
	spec := goquery.DateSpec{
		Container:    d.Selector.Selector(),
		Attr:         d.Attr,
		Delimiter:    d.Delimiter,
		AcceptNoDate: d.AcceptNoDate,
	}
	if d.DelimiterPattern != "" {
		re, err := regexp.Compile(d.DelimiterPattern)
		if err != nil {
			return spec, fmt.Errorf("delimiter_pattern: %w", err)
		}
		spec.DelimiterPattern = re
	}
	return spec, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	var out []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("ignore_patterns: %w", err)
		}
		out = append(out, re)
	}
	return out, nil
}

package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
)

// DateParser recognizes dates the delimiter splitter cannot, such as
// relative expressions ("۲ ساعت پیش").
type DateParser interface {
	ParseDate(text string) (newsparse.Date, bool)
}

// DateSpec describes where the publish date is and how to read it.
type DateSpec struct {
	Container Selector

	// Attr reads the date from an attribute instead of the node text.
	Attr string

	// Delimiter separates the date components.
	Delimiter string

	// DelimiterPattern replaces Delimiter with a regular expression.
	DelimiterPattern *regexp.Regexp

	// Splitter turns the container node into a date string, replacing the
	// delimiter-based splitter. It receives the full document to tell page
	// layouts apart.
	Splitter func(node, full *goquery.Selection) string

	// Fallback is consulted when the splitter yields no date.
	Fallback DateParser

	// AcceptNoDate marks a missing date as expected.
	AcceptNoDate bool
}

// DateResult is the outcome of date extraction.
type DateResult struct {
	// Value is the canonical date or newsparse.DateNotFound.
	Value string

	// Date is set when Found.
	Date  newsparse.Date
	Found bool

	// Missing is set when no container node matched.
	Missing bool

	// Suspect is set when the date was not found and the DateSpec does
	// not accept that.
	Suspect bool
}

// ExtractDate resolves the container in sc and reads its first node.
// It never fails: problems yield newsparse.DateNotFound.
func ExtractDate(spec DateSpec, sc Scope) DateResult {
	res := DateResult{Value: newsparse.DateNotFound}

	node := Resolve(spec.Container, sc).First()
	if node.Length() == 0 {
		res.Missing = true
		res.Suspect = !spec.AcceptNoDate
		return res
	}

	if d, ok := readDate(spec, node, sc.Full); ok {
		res.Value, res.Date, res.Found = d.String(), d, true
		return res
	}
	res.Suspect = !spec.AcceptNoDate
	return res
}

func readDate(spec DateSpec, node, full *goquery.Selection) (d newsparse.Date, ok bool) {
	defer func() {
		if recover() != nil {
			d, ok = newsparse.Date{}, false
		}
	}()

	text := node.Text()
	if spec.Attr != "" {
		text, _ = node.Attr(spec.Attr)
	}

	if spec.Splitter != nil {
		if d, ok := newsparse.ParseDate(spec.Splitter(node, full), "-"); ok {
			return d, true
		}
	} else {
		raw, delim := text, spec.Delimiter
		if spec.DelimiterPattern != nil {
			raw = spec.DelimiterPattern.ReplaceAllString(raw, "\x00")
			delim = "\x00"
		}
		if d, ok := newsparse.ParseDate(raw, delim); ok {
			return d, true
		}
	}

	if spec.Fallback != nil {
		if text = strings.TrimSpace(text); text != "" {
			return spec.Fallback.ParseDate(newsparse.NormalizeText(text))
		}
	}
	return newsparse.Date{}, false
}

// SplitDate is a Splitter reading the node text (or attr when set) with
// the given delimiter.
func SplitDate(attr, delim string) func(node, full *goquery.Selection) string {
	return func(node, _ *goquery.Selection) string {
		text := node.Text()
		if attr != "" {
			text, _ = node.Attr(attr)
		}
		return newsparse.ExtractDate(text, delim)
	}
}

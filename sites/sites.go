// Package sites holds the adapters of the supported news sites and forums.
//
// Each adapter is plain data for the goquery engine. Families of sites
// built on the same CMS share a base adapter and override it with
// goquery.Merge.
package sites

import (
	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
)

// All returns every built-in adapter.
func All() []goquery.Adapter {
	return []goquery.Adapter{
		Alef(),
		Ekhtebar(),
		Euronews(),
		Farsnews(),
		Hamshahrionline(),
		Imna(),
		Irna(),
		Isna(),
		Khabaronline(),
		Majidonline(),
		Mehrnews(),
		Persiantools(),
		Tarafdari(),
		Varzesh3(),
		Zoomit(),
	}
}

// NewRegistry returns a registry holding All adapters.
func NewRegistry() *goquery.Registry {
	return goquery.NewRegistry(All()...)
}

// formal is the default category of news sites.
var formal = newsparse.Category{Major: newsparse.MajorNews, TextType: newsparse.TextFormal}

// news builds a rule mapping matching paths to a news category.
func news(match newsparse.CategoryPredicate, minor, subminor newsparse.Topic) newsparse.CategoryRule {
	return newsparse.CategoryRule{
		Match:    match,
		Category: newsparse.Category{Major: newsparse.MajorNews, Minor: minor, Subminor: subminor},
	}
}

// refine builds a second-pass rule adding topic as subminor, or as minor
// when the first pass found nothing.
func refine(match newsparse.CategoryPredicate, topic newsparse.Topic) newsparse.Refinement {
	return newsparse.Refinement{Match: match, Minor: topic, Subminor: topic}
}

// refineOr is refine with a different minor topic for the empty case.
func refineOr(match newsparse.CategoryPredicate, minor, subminor newsparse.Topic) newsparse.Refinement {
	return newsparse.Refinement{Match: match, Minor: minor, Subminor: subminor}
}

// force builds a refinement overwriting both topics.
func force(match newsparse.CategoryPredicate, minor, subminor newsparse.Topic) newsparse.Refinement {
	return newsparse.Refinement{Match: match, ForceMinor: minor, ForceSubminor: subminor}
}

var (
	rawHas    = newsparse.RawHasPrefix
	rawIn     = newsparse.RawContains
	firstHas  = newsparse.FirstHasPrefix
	firstIn   = newsparse.FirstContains
	secondHas = newsparse.SecondHasPrefix
	secondIn  = newsparse.SecondContains
	and       = newsparse.And
	or        = newsparse.Or
)

package newsparse

import (
	"strings"
)

// Major is the top-level kind of a source.
type Major string

// Major categories.
const (
	MajorNews   Major = "News"
	MajorForum  Major = "Forum"
	MajorWeblog Major = "Weblog"
	MajorDoc    Major = "Doc"
	MajorQA     Major = "QA"
)

// Topic is a minor or subminor category. Both levels share one vocabulary:
// a topic that is a minor category on one site can refine another topic on
// a different site.
type Topic string

// Topics.
const (
	TopicUndefined   Topic = "Undefined"
	TopicGeneric     Topic = "Generic"
	TopicPolitical   Topic = "Political"
	TopicSocial      Topic = "Social"
	TopicEconomics   Topic = "Economics"
	TopicCulture     Topic = "Culture"
	TopicSport       Topic = "Sport"
	TopicHealth      Topic = "Health"
	TopicEducation   Topic = "Education"
	TopicUniversity  Topic = "University"
	TopicScienceTech Topic = "ScienceTech"
	TopicIT          Topic = "IT"
	TopicICT         Topic = "ICT"
	TopicMultimedia  Topic = "Multimedia"
	TopicLocal       Topic = "Local"
	TopicLaw         Topic = "Law"
	TopicLifeStyle   Topic = "LifeStyle"
	TopicReligious   Topic = "Religious"
	TopicHistorical  Topic = "Historical"
	TopicLiterature  Topic = "Literature"
	TopicTourism     Topic = "Tourism"
	TopicDefence     Topic = "Defence"
	TopicTalk        Topic = "Talk"
	TopicFun         Topic = "Fun"
	TopicCooking     Topic = "Cooking"
	TopicDiscussion  Topic = "Discussion"
	TopicGame        Topic = "Game"

	TopicIntl        Topic = "Intl"
	TopicCinema      Topic = "Cinema"
	TopicTheatre     Topic = "Theatre"
	TopicTV          Topic = "TV"
	TopicMusic       Topic = "Music"
	TopicBook        Topic = "Book"
	TopicArt         Topic = "Art"
	TopicRadio       Topic = "Radio"
	TopicAccident    Topic = "Accident"
	TopicFootball    Topic = "Football"
	TopicWrestling   Topic = "Wrestling"
	TopicBall        Topic = "Ball"
	TopicCar         Topic = "Car"
	TopicMartial     Topic = "Martial"
	TopicEnergy      Topic = "Energy"
	TopicAgriculture Topic = "Agriculture"
	TopicMobile      Topic = "Mobile"
	TopicSoftware    Topic = "Software"
	TopicHardware    Topic = "Hardware"
	TopicSecurity    Topic = "Security"
	TopicRobotic     Topic = "Robotic"
	TopicCosmos      Topic = "Cosmos"
)

// TextType describes the register of the text.
type TextType string

// Text types.
const (
	TextFormal   TextType = "Formal"
	TextInformal TextType = "Informal"
)

// Category is the structured taxonomy tag of an article.
type Category struct {
	Major    Major    `json:"major"`
	Minor    Topic    `json:"minor,omitempty"`
	Subminor Topic    `json:"subminor,omitempty"`
	TextType TextType `json:"textType,omitempty"`
}

// over returns c with empty fields taken from base.
func (c Category) over(base Category) Category {
	if c.Major == "" {
		c.Major = base.Major
	}
	if c.Minor == "" {
		c.Minor = base.Minor
	}
	if c.Subminor == "" {
		c.Subminor = base.Subminor
	}
	if c.TextType == "" {
		c.TextType = base.TextType
	}
	return c
}

// CategoryPath is a normalized category string split into tokens.
type CategoryPath struct {
	Raw    string
	First  string
	Second string
}

// SplitCategory tokenizes a normalized category string on "/".
// Missing tokens are empty strings.
func SplitCategory(normalized string) CategoryPath {
	p := CategoryPath{Raw: normalized}
	parts := strings.Split(normalized, "/")
	if len(parts) > 0 {
		p.First = parts[0]
	}
	if len(parts) > 1 {
		p.Second = parts[1]
	}
	return p
}

// CategoryPredicate tests a tokenized category path.
type CategoryPredicate func(p CategoryPath) bool

// CategoryRule maps category paths matching a predicate to a partial
// Category. Empty fields of the result are filled from the mapper default.
type CategoryRule struct {
	Match    CategoryPredicate
	Category Category
}

// Refinement is a second-pass rule that only adds detail to the first-pass
// result: Subminor fills an empty subminor when the first pass already set
// a minor topic, Minor is used otherwise. A refinement with ForceMinor set overwrites minor and
// subminor regardless of the first pass.
type Refinement struct {
	Match    CategoryPredicate
	Minor    Topic
	Subminor Topic

	ForceMinor    Topic
	ForceSubminor Topic
}

// CategoryMapper turns a raw breadcrumb/category string into a Category
// through a normalize, tokenize and rule-dispatch pipeline.
type CategoryMapper struct {
	// RootLabels are dropped when they appear as the leading segment
	// (e.g. "Home", "خانه").
	RootLabels []string

	// StripPrefixes are removed from the start of the normalized string.
	StripPrefixes []string

	// Normalize replaces the default normalization stage.
	Normalize func(raw string) string

	// Rules are evaluated in order; the first match wins.
	Rules []CategoryRule

	// Refinements run after Rules against the same path.
	Refinements []Refinement

	// Default is returned when nothing matches and provides the base for
	// partial rule results.
	Default Category

	// Map replaces tokenization and rule dispatch entirely.
	Map func(p CategoryPath) Category
}

// DefaultRootLabels are breadcrumb root segments stripped by default.
var DefaultRootLabels = []string{"Home", "home", "خانه", "صفحه اصلی", "صفحه نخست", "اصلی"}

// MapCategory runs the mapping pipeline. The result always carries a Major.
func (m *CategoryMapper) MapCategory(raw string) Category {
	def := m.Default
	if def.Major == "" {
		def.Major = MajorNews
	}

	normalized := m.normalize(raw)
	if normalized == "" {
		return def
	}
	p := SplitCategory(normalized)

	if m.Map != nil {
		return m.Map(p).over(def)
	}

	result := def
	for _, rule := range m.Rules {
		if rule.Match != nil && rule.Match(p) {
			result = rule.Category.over(def)
			break
		}
	}

	for _, r := range m.Refinements {
		if r.Match == nil || !r.Match(p) {
			continue
		}
		switch {
		case r.ForceMinor != "":
			result.Minor = r.ForceMinor
			result.Subminor = r.ForceSubminor
		case result.Minor != "":
			if result.Subminor == "" {
				result.Subminor = r.Subminor
			}
		default:
			result.Minor = r.Minor
		}
		break
	}

	return result
}

func (m *CategoryMapper) normalize(raw string) string {
	if m.Normalize != nil {
		return m.Normalize(raw)
	}
	return NormalizeCategory(raw, m.RootLabels, m.StripPrefixes)
}

// NormalizeCategory trims every "/"-separated segment, collapses inner
// whitespace, drops empty segments and a leading root label, then strips
// the first matching prefix. Root labels default to DefaultRootLabels when
// rootLabels is nil.
func NormalizeCategory(raw string, rootLabels, stripPrefixes []string) string {
	if rootLabels == nil {
		rootLabels = DefaultRootLabels
	}

	var segments []string
	for _, seg := range strings.Split(raw, "/") {
		seg = strings.Join(strings.Fields(seg), " ")
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) > 0 && containsString(rootLabels, segments[0]) {
		segments = segments[1:]
	}

	normalized := strings.Join(segments, "/")
	for _, prefix := range stripPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			normalized = strings.TrimSpace(strings.TrimPrefix(normalized, prefix))
			normalized = strings.TrimPrefix(normalized, "/")
			break
		}
	}
	return normalized
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// RawHasPrefix matches when the whole path starts with any prefix.
func RawHasPrefix(prefixes ...string) CategoryPredicate {
	return func(p CategoryPath) bool { return hasAnyPrefix(p.Raw, prefixes) }
}

// RawContains matches when the whole path contains any substring.
func RawContains(subs ...string) CategoryPredicate {
	return func(p CategoryPath) bool { return containsAny(p.Raw, subs) }
}

// FirstHasPrefix matches when the first token starts with any prefix.
func FirstHasPrefix(prefixes ...string) CategoryPredicate {
	return func(p CategoryPath) bool { return hasAnyPrefix(p.First, prefixes) }
}

// FirstContains matches when the first token contains any substring.
func FirstContains(subs ...string) CategoryPredicate {
	return func(p CategoryPath) bool { return containsAny(p.First, subs) }
}

// SecondHasPrefix matches when the second token starts with any prefix.
func SecondHasPrefix(prefixes ...string) CategoryPredicate {
	return func(p CategoryPath) bool { return hasAnyPrefix(p.Second, prefixes) }
}

// SecondContains matches when the second token contains any substring.
func SecondContains(subs ...string) CategoryPredicate {
	return func(p CategoryPath) bool { return containsAny(p.Second, subs) }
}

// And matches when every predicate matches.
func And(preds ...CategoryPredicate) CategoryPredicate {
	return func(p CategoryPath) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches.
func Or(preds ...CategoryPredicate) CategoryPredicate {
	return func(p CategoryPath) bool {
		for _, pred := range preds {
			if pred(p) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(pred CategoryPredicate) CategoryPredicate {
	return func(p CategoryPath) bool { return !pred(p) }
}

// Always matches every path. Useful as the last rule of a table.
func Always() CategoryPredicate {
	return func(CategoryPath) bool { return true }
}

func hasAnyPrefix(s string, prefixes []string) bool {
	if s == "" {
		return false
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	if s == "" {
		return false
	}
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Package dateparser reads free-form and relative dates ("۲ ساعت پیش",
// "3 days ago") with go-dateparser.
package dateparser

import (
	"strings"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
	dps "github.com/markusmobius/go-dateparser"
)

// Ensure Parser implements goquery.DateParser at compile time.
var _ goquery.DateParser = (*Parser)(nil)

// DefaultLanguages are tried in order when none are configured.
var DefaultLanguages = []string{"fa", "en", "ar"}

// Parser resolves dates relative to the current time. Results are in the
// Gregorian calendar.
type Parser struct {
	languages []string
	now       func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithLanguages sets the languages passed to go-dateparser.
func WithLanguages(langs ...string) Option {
	return func(p *Parser) {
		p.languages = langs
	}
}

// WithClock sets the reference time for relative expressions.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		languages: DefaultLanguages,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseDate parses text. Persian and Arabic digits are accepted.
func (p *Parser) ParseDate(text string) (newsparse.Date, bool) {
	text = strings.TrimSpace(newsparse.NormalizeDigits(text))
	if text == "" {
		return newsparse.Date{}, false
	}

	cfg := &dps.Configuration{
		CurrentTime: p.now(),
		Languages:   p.languages,
	}
	dt, err := dps.Parse(cfg, text)
	if err != nil || dt.Time.IsZero() {
		return newsparse.Date{}, false
	}

	t := dt.Time
	d := newsparse.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), Calendar: newsparse.CalendarGregorian}
	return d, d.Valid()
}

// Package hijri converts lunar Hijri dates with the Umm al-Qura table of
// go-hijri.
package hijri

import (
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/hablullah/go-hijri"
)

// Ensure Converter implements newsparse.DateConverter at compile time.
var _ newsparse.DateConverter = (*Converter)(nil)

// Converter converts Hijri dates to Gregorian midnight UTC.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// ToGregorian converts a Hijri date. Dates outside the Umm al-Qura table
// are reported as invalid.
func (c *Converter) ToGregorian(d newsparse.Date) (t time.Time, err error) {
	if d.Calendar != newsparse.CalendarHijri {
		return time.Time{}, newsparse.Errorf(newsparse.EINVALID, "not a hijri date: %s (%s)", d, d.Calendar)
	}
	if !d.Valid() {
		return time.Time{}, newsparse.Errorf(newsparse.EINVALID, "invalid hijri date %s", d)
	}

	// The table lookup panics out of range.
	defer func() {
		if r := recover(); r != nil {
			t, err = time.Time{}, newsparse.Errorf(newsparse.EINVALID, "hijri date %s out of range", d)
		}
	}()

	g := hijri.UmmAlQuraDate{Year: int64(d.Year), Month: int64(d.Month), Day: int64(d.Day)}.ToGregorian()
	return time.Date(g.Year(), g.Month(), g.Day(), 0, 0, 0, 0, time.UTC), nil
}

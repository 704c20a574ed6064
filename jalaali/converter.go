// Package jalaali converts Jalali (Solar Hijri) dates using go-jalaali.
package jalaali

import (
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/jalaali/go-jalaali"
)

// Ensure Converter implements newsparse.DateConverter at compile time.
var _ newsparse.DateConverter = (*Converter)(nil)

// Converter converts Jalali dates to Gregorian midnight in Location.
type Converter struct {
	// Location defaults to Asia/Tehran, falling back to UTC when the
	// zone database is unavailable.
	Location *time.Location
}

// NewConverter creates a Converter for the Tehran time zone.
func NewConverter() *Converter {
	loc, err := time.LoadLocation("Asia/Tehran")
	if err != nil {
		loc = time.UTC
	}
	return &Converter{Location: loc}
}

// ToGregorian converts a Jalali date.
func (c *Converter) ToGregorian(d newsparse.Date) (time.Time, error) {
	if d.Calendar != newsparse.CalendarJalali {
		return time.Time{}, newsparse.Errorf(newsparse.EINVALID, "not a jalali date: %s (%s)", d, d.Calendar)
	}
	if !jalaali.IsValidDate(d.Year, d.Month, d.Day) {
		return time.Time{}, newsparse.Errorf(newsparse.EINVALID, "invalid jalali date %s", d)
	}
	y, m, day, err := jalaali.ToGregorian(d.Year, jalaali.Month(d.Month), d.Day)
	if err != nil {
		return time.Time{}, newsparse.Errorf(newsparse.EINVALID, "convert %s: %v", d, err)
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(y, m, day, 0, 0, 0, 0, loc), nil
}

package dateparser_test

import (
	"testing"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/dateparser"
	"github.com/stretchr/testify/assert"
)

func TestParser_ParseDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	p := dateparser.NewParser(dateparser.WithLanguages("en"), dateparser.WithClock(func() time.Time { return now }))

	t.Run("relative expression", func(t *testing.T) {
		t.Parallel()

		got, ok := p.ParseDate("2 days ago")

		assert.True(t, ok)
		assert.Equal(t, newsparse.Date{Year: 2024, Month: 3, Day: 8, Calendar: newsparse.CalendarGregorian}, got)
	})

	t.Run("absolute expression", func(t *testing.T) {
		t.Parallel()

		got, ok := p.ParseDate("5 January 2023")

		assert.True(t, ok)
		assert.Equal(t, "2023-01-05", got.String())
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()

		_, ok := p.ParseDate("   ")

		assert.False(t, ok)
	})

	t.Run("unparseable text", func(t *testing.T) {
		t.Parallel()

		_, ok := p.ParseDate("not a date at all")

		assert.False(t, ok)
	})
}

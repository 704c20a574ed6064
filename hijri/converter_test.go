package hijri_test

import (
	"testing"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/hijri"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_ToGregorian(t *testing.T) {
	t.Parallel()

	conv := hijri.NewConverter()

	t.Run("converts first of muharram 1445", func(t *testing.T) {
		t.Parallel()

		got, err := conv.ToGregorian(newsparse.Date{Year: 1445, Month: 1, Day: 1, Calendar: newsparse.CalendarHijri})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, time.July, 19, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("rejects out of range year", func(t *testing.T) {
		t.Parallel()

		_, err := conv.ToGregorian(newsparse.Date{Year: 9000, Month: 1, Day: 1, Calendar: newsparse.CalendarHijri})

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})

	t.Run("rejects other calendars", func(t *testing.T) {
		t.Parallel()

		_, err := conv.ToGregorian(newsparse.Date{Year: 1402, Month: 1, Day: 1, Calendar: newsparse.CalendarJalali})

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})
}

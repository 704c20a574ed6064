package newsparse_test

import (
	"testing"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		delim string
		want  string
	}{
		{"persian digits with dash", "۱۴۰۲-۰۵-۱۲", "-", "1402-05-12"},
		{"slash separated with time", "1402/05/12 - 10:20", "/", "1402-05-12"},
		{"time after dash separator", "1402/5/3 - 10:20", "-", "1402-05-03"},
		{"jalali month name", "شنبه ۱۲ مرداد ۱۴۰۲ - ۱۰:۲۰", "-", "1402-05-12"},
		{"hour word separator", "۲۸ اسفند ۱۴۰۱ ساعت ۲۳:۱۰", "ساعت", "1401-12-28"},
		{"persian comma separator", "دوشنبه ۳ مهر ۱۴۰۲، ۱۲:۳۰", "،", "1402-07-03"},
		{"iso timestamp", "2023-08-03T10:00:00+03:30", "-", "2023-08-03"},
		{"english month name", "3 August 2023", " ", "2023-08-03"},
		{"transliterated gregorian month", "۳ اوت ۲۰۲۳", " ", "2023-08-03"},
		{"arabic digits", "٢٠٢٣/٠٨/٠٣", "/", "2023-08-03"},
		{"year last numeric", "03.08.2023", ".", "2023-08-03"},
		{"malformed", "not a date", "-", newsparse.DateNotFound},
		{"empty", "", "-", newsparse.DateNotFound},
		{"month out of range", "1402-13-01", "-", newsparse.DateNotFound},
		{"day out of range", "1402-08-31", "-", newsparse.DateNotFound},
		{"invalid gregorian day", "2023-02-30", "-", newsparse.DateNotFound},
		{"no four digit year", "12-05-02", "-", newsparse.DateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, newsparse.ExtractDate(tt.text, tt.delim))
		})
	}
}

func TestParseDate_Calendar(t *testing.T) {
	t.Parallel()

	d, ok := newsparse.ParseDate("۱۴۰۲/۰۵/۱۲", "/")
	require.True(t, ok)
	assert.Equal(t, newsparse.CalendarJalali, d.Calendar)

	d, ok = newsparse.ParseDate("2023-08-03", "-")
	require.True(t, ok)
	assert.Equal(t, newsparse.CalendarGregorian, d.Calendar)

	d, ok = newsparse.ParseDate("۱۸ محرم ۱۴۴۵", " ")
	require.True(t, ok)
	assert.Equal(t, newsparse.CalendarHijri, d.Calendar)
	assert.Equal(t, "1445-01-18", d.String())
}

func TestParseCanonicalDate(t *testing.T) {
	t.Parallel()

	d, ok := newsparse.ParseCanonicalDate("1402-05-12")
	require.True(t, ok)
	assert.Equal(t, newsparse.Date{Year: 1402, Month: 5, Day: 12, Calendar: newsparse.CalendarJalali}, d)

	_, ok = newsparse.ParseCanonicalDate(newsparse.DateNotFound)
	assert.False(t, ok)

	_, ok = newsparse.ParseCanonicalDate("05-12")
	assert.False(t, ok)
}

func TestCalendarConverters(t *testing.T) {
	t.Parallel()

	t.Run("gregorian needs no converter", func(t *testing.T) {
		t.Parallel()

		got, err := newsparse.CalendarConverters{}.ToGregorian(newsparse.Date{Year: 2023, Month: 8, Day: 3, Calendar: newsparse.CalendarGregorian})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, 8, 3, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("missing converter is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := newsparse.CalendarConverters{}.ToGregorian(newsparse.Date{Year: 1402, Month: 5, Day: 12, Calendar: newsparse.CalendarJalali})

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})
}

func TestNormalizeDigits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0123456789 0123456789", newsparse.NormalizeDigits("۰۱۲۳۴۵۶۷۸۹ ٠١٢٣٤٥٦٧٨٩"))
}

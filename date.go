package newsparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DateNotFound is the sentinel stored when a publish date cannot be found
// or parsed. It never collides with a canonical date.
const DateNotFound = "DATE NOT FOUND"

// Calendar identifies the calendar a Date is expressed in.
type Calendar string

// Calendars.
const (
	CalendarJalali    Calendar = "jalali"
	CalendarGregorian Calendar = "gregorian"
	CalendarHijri     Calendar = "hijri"
)

// Date is a calendar date in its source calendar.
type Date struct {
	Year     int
	Month    int
	Day      int
	Calendar Calendar
}

// String returns the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Valid reports whether the components form a plausible date.
func (d Date) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	switch d.Calendar {
	case CalendarGregorian:
		t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
		return t.Day() == d.Day
	case CalendarHijri:
		return d.Day <= 30
	default:
		if d.Month <= 6 {
			return d.Day <= 31
		}
		return d.Day <= 30
	}
}

// DateConverter converts a source-calendar date to a Gregorian time.
type DateConverter interface {
	ToGregorian(d Date) (time.Time, error)
}

// CalendarConverters dispatches conversion by calendar. Gregorian dates are
// converted directly.
type CalendarConverters map[Calendar]DateConverter

// ToGregorian converts d with the converter registered for its calendar.
func (c CalendarConverters) ToGregorian(d Date) (time.Time, error) {
	if d.Calendar == CalendarGregorian {
		if !d.Valid() {
			return time.Time{}, Errorf(EINVALID, "invalid date %s", d)
		}
		return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC), nil
	}
	conv, ok := c[d.Calendar]
	if !ok {
		return time.Time{}, Errorf(EINVALID, "no converter for %s calendar", d.Calendar)
	}
	return conv.ToGregorian(d)
}

var digitReplacer = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// NormalizeDigits replaces Persian and Arabic-Indic digits with ASCII.
func NormalizeDigits(s string) string {
	return digitReplacer.Replace(s)
}

type monthName struct {
	month    int
	calendar Calendar
}

var monthNames = map[string]monthName{}

func init() {
	add := func(cal Calendar, names ...[]string) {
		for i, variants := range names {
			for _, v := range variants {
				monthNames[v] = monthName{month: i + 1, calendar: cal}
			}
		}
	}

	add(CalendarJalali,
		[]string{"فروردین"},
		[]string{"اردیبهشت", "ارديبهشت"},
		[]string{"خرداد"},
		[]string{"تیر", "تير"},
		[]string{"مرداد", "امرداد"},
		[]string{"شهریور", "شهريور"},
		[]string{"مهر"},
		[]string{"آبان", "ابان"},
		[]string{"آذر", "اذر"},
		[]string{"دی", "دي"},
		[]string{"بهمن"},
		[]string{"اسفند"},
	)
	add(CalendarGregorian,
		[]string{"ژانویه", "ژانویهٔ", "january", "jan"},
		[]string{"فوریه", "فبریه", "february", "feb"},
		[]string{"مارس", "march", "mar"},
		[]string{"آوریل", "آپریل", "april", "apr"},
		[]string{"مه", "می", "may"},
		[]string{"ژوئن", "جون", "june", "jun"},
		[]string{"ژوئیه", "جولای", "july", "jul"},
		[]string{"اوت", "آگوست", "اگوست", "august", "aug"},
		[]string{"سپتامبر", "september", "sep", "sept"},
		[]string{"اکتبر", "october", "oct"},
		[]string{"نوامبر", "november", "nov"},
		[]string{"دسامبر", "december", "dec"},
	)
	add(CalendarHijri,
		[]string{"محرم"},
		[]string{"صفر"},
		[]string{"ربیع‌الاول", "ربیع الاول", "ربيع الأول"},
		[]string{"ربیع‌الثانی", "ربیع الثانی", "ربيع الثاني"},
		[]string{"جمادی‌الاول", "جمادی الاول", "جمادى الأولى"},
		[]string{"جمادی‌الثانی", "جمادی الثانی", "جمادى الآخرة"},
		[]string{"رجب"},
		[]string{"شعبان"},
		[]string{"رمضان"},
		[]string{"شوال"},
		[]string{"ذی‌القعده", "ذی القعده", "ذو القعدة"},
		[]string{"ذی‌الحجه", "ذی الحجه", "ذو الحجة"},
	)
}

// ExtractDate parses text into a canonical date string, or returns
// DateNotFound. delim separates the date components (e.g. "-", "/");
// it may also be a word that separates the date from trailing noise
// (e.g. "ساعت").
func ExtractDate(text, delim string) string {
	d, ok := ParseDate(text, delim)
	if !ok {
		return DateNotFound
	}
	return d.String()
}

var numberRe = regexp.MustCompile(`\d+`)

// ParseDate parses text the way ExtractDate does and returns the date with
// its detected calendar.
func ParseDate(text, delim string) (Date, bool) {
	text = strings.TrimSpace(NormalizeDigits(text))
	if text == "" {
		return Date{}, false
	}

	var parts []string
	if delim != "" {
		parts = strings.Split(text, delim)
	} else {
		parts = []string{text}
	}

	if len(parts) >= 3 {
		if d, ok := fromParts(parts[0], parts[1], parts[2]); ok {
			return d, true
		}
	}
	for _, part := range parts {
		if d, ok := scanTokens(tokenize(part)); ok {
			return d, true
		}
	}
	return scanTokens(tokenize(text))
}

// ParseCanonicalDate parses a YYYY-MM-DD string, inferring the calendar
// from the year: years before 1700 are Jalali.
func ParseCanonicalDate(s string) (Date, bool) {
	if s == "" || s == DateNotFound {
		return Date{}, false
	}
	nums := numberRe.FindAllString(NormalizeDigits(s), 3)
	if len(nums) != 3 || len(nums[0]) != 4 {
		return Date{}, false
	}
	d := Date{Year: atoi(nums[0]), Month: atoi(nums[1]), Day: atoi(nums[2])}
	d.Calendar = calendarForYear(d.Year)
	return d, d.Valid()
}

// fromParts treats three delimiter-separated parts as ordered components:
// the last number of the first part, a number or month name in the second
// part and the first number of the third part.
func fromParts(a, b, c string) (Date, bool) {
	an := numberRe.FindAllString(a, -1)
	cn := numberRe.FindAllString(c, 1)
	if len(an) == 0 || len(cn) == 0 {
		return Date{}, false
	}
	first, last := an[len(an)-1], cn[0]

	mid := strings.TrimSpace(b)
	month, cal, ok := monthComponent(mid)
	if !ok {
		return Date{}, false
	}
	return assemble(first, month, last, cal)
}

func monthComponent(tok string) (int, Calendar, bool) {
	if isNumber(tok) {
		return atoi(tok), "", true
	}
	if mn, ok := monthNames[strings.ToLower(tok)]; ok {
		return mn.month, mn.calendar, true
	}
	return 0, "", false
}

// assemble orders components around the four-digit year, which is either
// first (Y M D) or last (D M Y).
func assemble(first string, month int, last string, cal Calendar) (Date, bool) {
	var d Date
	switch {
	case len(first) == 4:
		d = Date{Year: atoi(first), Month: month, Day: atoi(last)}
	case len(last) == 4:
		d = Date{Year: atoi(last), Month: month, Day: atoi(first)}
	default:
		return Date{}, false
	}
	if cal == "" {
		cal = calendarForYear(d.Year)
	}
	d.Calendar = cal
	return d, d.Valid()
}

func calendarForYear(year int) Calendar {
	if year < 1700 {
		return CalendarJalali
	}
	return CalendarGregorian
}

// tokenize splits s on whitespace and common date separators, joining
// multi-word month names into one token.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("/-.,،|", r)
	})
	var tokens []string
	for i := 0; i < len(fields); i++ {
		if i+1 < len(fields) {
			pair := fields[i] + " " + fields[i+1]
			if _, ok := monthNames[pair]; ok {
				tokens = append(tokens, pair)
				i++
				continue
			}
		}
		tokens = append(tokens, fields[i])
	}
	return tokens
}

// scanTokens looks for the first run of three tokens forming a date.
func scanTokens(tokens []string) (Date, bool) {
	for i := 0; i+2 < len(tokens); i++ {
		if !isNumber(tokens[i]) || !isNumber(tokens[i+2]) {
			continue
		}
		month, cal, ok := monthComponent(tokens[i+1])
		if !ok {
			continue
		}
		if d, ok := assemble(tokens[i], month, tokens[i+2], cal); ok {
			return d, true
		}
	}
	return Date{}, false
}

func isNumber(s string) bool {
	if s == "" || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Package normalize turns raw text fields of a citizen report into canonical
// values. Every function is pure and safe for concurrent use.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	minYear = 2000

	CountryCode       = "57"
	CountryCodeMarker = "+" + CountryCode
)

var (
	dateShape = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	timeShape = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

	controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	whitespace   = regexp.MustCompile(`[\s\p{Zs}\x{FEFF}]+`)

	htmlEntities = strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
		"&", "&amp;",
	)
)

// ComposeTimestamp joins a DD/MM/YYYY date and an HH:MM time into an instant
// in now's location. The year may not exceed the year after now.
// Calendar-impossible dates such as 31/04 or 29/02 on a common year are
// rejected instead of rolling over into the next month.
func ComposeTimestamp(dateText, timeText string, now time.Time) (time.Time, bool) {
	dm := dateShape.FindStringSubmatch(dateText)
	if dm == nil {
		return time.Time{}, false
	}
	tm := timeShape.FindStringSubmatch(timeText)
	if tm == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(dm[1])
	month, _ := strconv.Atoi(dm[2])
	year, _ := strconv.Atoi(dm[3])
	hour, _ := strconv.Atoi(tm[1])
	minute, _ := strconv.Atoi(tm[2])

	if day < 1 || day > 31 ||
		month < 1 || month > 12 ||
		year < minYear || year > now.Year()+1 ||
		hour < 0 || hour > 23 ||
		minute < 0 || minute > 59 {
		return time.Time{}, false
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, 0, 0, now.Location())

	// time.Date normalizes out-of-range values, so re-derive and compare.
	if ts.Day() != day || int(ts.Month()) != month || ts.Year() != year ||
		ts.Hour() != hour || ts.Minute() != minute {
		return time.Time{}, false
	}

	return ts, true
}

// DayStart is the first instant of a DD/MM/YYYY date.
func DayStart(dateText string, now time.Time) (time.Time, bool) {
	return ComposeTimestamp(dateText, "00:00", now)
}

// DayEnd is the last representable instant of a DD/MM/YYYY date.
func DayEnd(dateText string, now time.Time) (time.Time, bool) {
	ts, ok := ComposeTimestamp(dateText, "23:59", now)
	if !ok {
		return time.Time{}, false
	}
	return ts.Add(time.Minute - time.Nanosecond), true
}

// SanitizeText trims, HTML-escapes < > " ' &, drops ASCII control characters
// and collapses whitespace runs. It is not idempotent: a second pass escapes
// the ampersands of the first, so apply it once per field.
func SanitizeText(raw string) string {
	if raw == "" {
		return raw
	}
	out := strings.TrimSpace(raw)
	out = htmlEntities.Replace(out)
	out = controlChars.ReplaceAllString(out, "")
	return whitespace.ReplaceAllString(out, " ")
}

// StripWhitespace removes every whitespace character.
func StripWhitespace(raw string) string {
	return whitespace.ReplaceAllString(raw, "")
}

// NormalizePhone prefixes Colombian numbers with +57 when it can tell they
// are missing it. Anything it does not recognise is returned with
// whitespace removed.
func NormalizePhone(raw string) string {
	phone := StripWhitespace(raw)

	switch {
	case strings.HasPrefix(phone, CountryCodeMarker):
		return phone
	case strings.HasPrefix(phone, CountryCode) && len(phone) == 12:
		return "+" + phone
	case len(phone) == 10:
		return CountryCodeMarker + phone
	}
	return phone
}

package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timeSeparators are the period separators accepted in legacy combined time
// strings like "08:00 às 17:30".
var timeSeparators = []string{" às ", " as ", " AS ", " ÀS ", "–", "—", " a ", "-", "/"}

var (
	reClock   = regexp.MustCompile(`^(\d{1,2}):?(\d{0,2})$`)
	reCompact = regexp.MustCompile(`^(\d{2})(\d{2})$`)
	reDigits  = regexp.MustCompile(`^\d{1,2}$`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// TimeToken normalizes a single time token to "HH:MM" when possible.
// Accepted forms: "8:30", "08:30", "8h30", "0830", "8". Returns "" when the
// token cannot be interpreted.
func TimeToken(tok string) string {
	s := strings.TrimSpace(tok)
	if s == "" {
		return ""
	}
	s = strings.NewReplacer("h", ":", "H", ":", ".", ":").Replace(s)
	s = reSpaces.ReplaceAllString(s, "")

	if m := reClock.FindStringSubmatch(s); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm := 0
		if m[2] != "" {
			mm, _ = strconv.Atoi(m[2])
		}
		if hh >= 0 && hh <= 23 && mm >= 0 && mm <= 59 {
			return fmt.Sprintf("%02d:%02d", hh, mm)
		}
		if hh >= 0 && hh <= 23 {
			return fmt.Sprintf("%02d:00", hh)
		}
	}
	if m := reCompact.FindStringSubmatch(s); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if hh <= 23 && mm <= 59 {
			return fmt.Sprintf("%02d:%02d", hh, mm)
		}
	}
	if reDigits.MatchString(s) {
		hh, _ := strconv.Atoi(s)
		if hh <= 23 {
			return fmt.Sprintf("%02d:00", hh)
		}
	}
	return ""
}

// TimeRange splits a combined period string into normalized start/end tokens.
// When no separator is found the whole string is treated as the start token.
func TimeRange(s string) (start, end string) {
	text := strings.TrimSpace(s)
	if text == "" {
		return "", ""
	}
	for _, sep := range timeSeparators {
		if idx := strings.Index(text, sep); idx >= 0 {
			return TimeToken(text[:idx]), TimeToken(text[idx+len(sep):])
		}
	}
	return TimeToken(text), ""
}

// CombineTime renders a start/end pair back into the display form used in
// the activity table.
func CombineTime(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		return start + " às " + end
	case start != "":
		return start
	default:
		return end
	}
}

var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02-01-2006",
	time.RFC3339,
}

// DateBR formats a date string as DD/MM/YYYY, accepting the ISO and BR forms
// the payloads carry. Unparseable input is returned unchanged so the caller
// never loses data over formatting.
func DateBR(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("02/01/2006")
		}
	}
	// unix timestamps, seconds or millis
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && len(s) >= 10 && len(s) <= 13 {
		if len(s) == 13 {
			n /= 1000
		}
		return time.Unix(n, 0).UTC().Format("02/01/2006")
	}
	return raw
}

// UpperSafe uppercases for display without touching runes Go cannot case-map.
func UpperSafe(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

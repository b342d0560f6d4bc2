package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var timePattern = regexp.MustCompile(`(\d{1,2})[:h]?(\d{2})?`)

// weekday names without accents, so "terça" and "terca" both match
var weekdays = []struct {
	name string
	day  time.Weekday
}{
	{"domingo", time.Sunday},
	{"segunda", time.Monday},
	{"terca", time.Tuesday},
	{"quarta", time.Wednesday},
	{"quinta", time.Thursday},
	{"sexta", time.Friday},
	{"sabado", time.Saturday},
}

// fold lowercases s and strips diacritics.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// ParseDateInput understands "hoje", "amanhã" and weekday names. A weekday
// always means its next occurrence after today, never today itself.
func ParseDateInput(input string, now time.Time) (time.Time, bool) {
	s := fold(input)
	today := timezone.StartOfDay(now)

	switch {
	case strings.Contains(s, "amanha"):
		return today.AddDate(0, 0, 1), true
	case strings.Contains(s, "hoje"):
		return today, true
	}

	for _, wd := range weekdays {
		if !strings.Contains(s, wd.name) {
			continue
		}
		delta := (int(wd.day) - int(today.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return today.AddDate(0, 0, delta), true
	}

	return time.Time{}, false
}

// ParseTimeInput extracts the first time-like token ("14:30", "9h", "15")
// and returns it as HH:mm.
func ParseTimeInput(input string) (string, bool) {
	m := timePattern.FindStringSubmatch(input)
	if m == nil {
		return "", false
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	tod, err := domain.ParseTimeOfDay(fmt.Sprintf("%02d:%02d", hour, minute))
	if err != nil {
		return "", false
	}
	return tod.String(), true
}

// FormatDateBR renders a YYYY-MM-DD date as dd/mm/yyyy.
func FormatDateBR(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

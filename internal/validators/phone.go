package validators

import (
	"strings"
	"unicode"
)

// MinPhoneDigits is the shortest number (area code + local) accepted for booking.
const MinPhoneDigits = 10

// NormalizePhone keeps only the digits; this is the storage form.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaskPhone renders "(11) 9999-8888" for landlines and "(11) 99999-8888"
// for mobiles. Numbers too short to fill the mask come back as plain digits;
// extra trailing digits are kept after the mask.
func MaskPhone(phone string) string {
	d := NormalizePhone(phone)

	switch {
	case len(d) < MinPhoneDigits:
		return d
	case len(d) == MinPhoneDigits:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:10]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:11] + d[11:]
	}
}

func IsValidPhone(phone string) bool {
	return len(NormalizePhone(phone)) >= MinPhoneDigits
}

// IsValidName requires at least two visible characters.
func IsValidName(name string) bool {
	n := 0
	for _, r := range strings.TrimSpace(name) {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n >= 2
}

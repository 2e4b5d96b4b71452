package deck

import "strings"

// DateSortKey converts a DD/MM/YY date string to its YYMMDD form, which
// sorts chronologically as a string or integer. Inputs that are not
// three slash-separated parts are returned unchanged; callers detect
// malformed dates by checking the key is not six digits.
func DateSortKey(date string) string {
	parts := strings.Split(date, "/")
	if len(parts) == 3 {
		return parts[2] + parts[1] + parts[0]
	}
	return date
}

// DateKey returns the YYMMDD sort key for a DD/MM/YY date and reports
// whether the date parsed. Malformed dates produce no key.
func DateKey(date string) (string, bool) {
	key := DateSortKey(date)
	if !isDigits(key) {
		return "", false
	}
	return key, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func dateKeyInt(date string) (int, bool) {
	key := DateSortKey(date)
	if !isDigits(key) {
		return 0, false
	}
	n := 0
	for _, r := range key {
		n = n*10 + int(r-'0')
	}
	return n, true
}

// DateInRange reports whether a DD/MM/YY date falls inside the
// inclusive [from, to] range. Malformed dates fail open: an unparseable
// deck date is always in range, and an unparseable bound does not
// constrain. Upstream date strings are not validated independently, so
// a bad date must never blank out a report.
func DateInRange(date, from, to string) bool {
	key, ok := dateKeyInt(date)
	if !ok {
		return true
	}
	if from != "" {
		if fromKey, ok := dateKeyInt(from); ok && key < fromKey {
			return false
		}
	}
	if to != "" {
		if toKey, ok := dateKeyInt(to); ok && key > toKey {
			return false
		}
	}
	return true
}

package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reDigits = regexp.MustCompile(`^[0-9]{1,9}$`)
	// Brand names come from the catalog; only reject control characters and
	// path separators smuggled through the URL.
	reBrand = regexp.MustCompile(`^[^\x00-\x1f/\\]{1,60}$`)
)

// ProductID parses a positive catalog id.
func ProductID(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !reDigits.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Index parses a zero-based cart position. Range is checked by the cart.
func Index(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !reDigits.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// Brand validates a brand path segment.
func Brand(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reBrand.MatchString(s)
}

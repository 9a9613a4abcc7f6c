package sanitizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultMinLen = 1
	DefaultMaxLen = 200

	ReviewMinLen = 5
	ReviewMaxLen = 200
)

// Applied in order on every pass. Tag openers go before the bracket strip so
// they still match while their '<' is present.
var denylist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)<iframe`),
	regexp.MustCompile(`[<>]`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)eval\(`),
}

// Sanitize removes denylisted patterns and trims surrounding whitespace.
// Removing one pattern can splice a new one together ("javajavascript:script:"),
// so passes repeat until nothing changes; that makes Sanitize idempotent.
func Sanitize(input string) string {
	s := input
	for {
		next := s
		for _, re := range denylist {
			next = re.ReplaceAllString(next, "")
		}
		next = strings.TrimSpace(next)
		if next == s {
			return next
		}
		s = next
	}
}

// Validate sanitizes text and reports whether the result has between min
// and max characters (inclusive).
func Validate(text string, min, max int) bool {
	if text == "" {
		return false
	}
	n := utf8.RuneCountInString(Sanitize(text))
	return n >= min && n <= max
}

func ValidateDefault(text string) bool {
	return Validate(text, DefaultMinLen, DefaultMaxLen)
}

// ValidateReview applies the review submission bounds.
func ValidateReview(text string) bool {
	return Validate(text, ReviewMinLen, ReviewMaxLen)
}

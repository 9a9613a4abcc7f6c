// Package normalize canonicalizes Arabic text so substring search ignores
// diacritics, letter variants and case.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// harakat covers fathatan through sukun (U+064B..U+0652).
var harakat = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x064B, Hi: 0x0652, Stride: 1}},
}

func unifyLetter(r rune) rune {
	switch r {
	case 'أ', 'إ', 'آ':
		return 'ا'
	case 'ة':
		return 'ه'
	case 'ى':
		return 'ي'
	}
	return r
}

// Chains and casers keep internal buffers, so each call builds its own.
func pipeline() transform.Transformer {
	return transform.Chain(
		runes.Map(unifyLetter),
		runes.Remove(runes.In(harakat)),
		cases.Lower(language.Und),
	)
}

// Normalize unifies alef variants to bare alef, taa marbuta to haa and
// alef maqsura to yaa, strips harakat, lowercases and trims.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	out, _, err := transform.String(pipeline(), text)
	if err != nil {
		// Only reachable on invalid UTF-8 that the transformers refuse;
		// fall back to the plain folding steps.
		out = strings.ToLower(strings.Map(func(r rune) rune {
			if unicode.Is(harakat, r) {
				return -1
			}
			return unifyLetter(r)
		}, text))
	}
	return strings.TrimSpace(out)
}

// Contains reports whether the normalized haystack contains the already
// normalized needle.
func Contains(haystack, normalizedNeedle string) bool {
	return strings.Contains(Normalize(haystack), normalizedNeedle)
}

// Package sanitizer strips dangerous markup and script patterns from
// visitor-supplied text and enforces length bounds.
//
// It is a denylist over known-dangerous substrings, not an HTML parser.
// Rendering must still insert user text as text nodes only; this package is
// the second line of defense. Functions never return errors: invalid input
// sanitizes to the empty string.
package sanitizer

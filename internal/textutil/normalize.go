package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// parenPattern matches a parenthetical group, e.g. "(Live)" or "(feat. X)".
var parenPattern = regexp.MustCompile(`\([^)]*\)`)

// Normalize canonicalizes text for identity comparison: NFC fold, lower-case,
// parenthetical groups removed, "&" replaced with "and", "/" with a space,
// remaining punctuation replaced with spaces, and whitespace collapsed.
// Empty input yields the empty string. The function is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	text = strings.ToLower(text)
	text = parenPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "&", "and")
	text = strings.ReplaceAll(text, "/", " ")

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', unicode.IsSpace(r):
			builder.WriteRune(r)
		default:
			builder.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(builder.String()), " ")
}

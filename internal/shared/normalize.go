package shared

import (
	"regexp"
	"strings"
)

var (
	bracketedRe = regexp.MustCompile(`[\(\[].*?[\)\]]`)
	symbolRe    = regexp.MustCompile(`[^\p{L}\p{N}\s\p{Z}]`)
)

// NormalizeTitle turns a video title into a search query.
//
// Parenthesized and bracketed annotations are removed first ("(Official Video)", "[4K]"),
// then every rune that is not a letter, digit or whitespace (Unicode separators included),
// then surrounding whitespace.
// The result may be empty.
func NormalizeTitle(title string) string {
	title = bracketedRe.ReplaceAllString(title, "")
	title = symbolRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

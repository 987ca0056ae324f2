package stringsutil

import (
	"strings"
	"unicode"
)

// ParagraphSeparator is the blank-line boundary between paragraphs.
const ParagraphSeparator = "\n\n"

func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s != "" {
			result = append(result, s)
		}
	}

	return result
}

// SplitParagraphs splits text on blank lines and strips trailing whitespace
// from each piece. Leading and internal whitespace is kept, and empty pieces
// are returned as-is so positions stay stable.
func SplitParagraphs(text string) []string {
	parts := strings.Split(text, ParagraphSeparator)
	for i, p := range parts {
		parts[i] = strings.TrimRightFunc(p, IsSpace)
	}
	return parts
}

// IsSpace reports whether r is whitespace. Unlike unicode.IsSpace it also
// accepts the information separators U+001C..U+001F.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// FlattenNewlines replaces every newline with a single space.
func FlattenNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// Package summary derives the one-line listing summary shown on job cards.
package summary

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLen is the excerpt bound used by FirstSentence.
const DefaultMaxLen = 180

// ellipsis is appended to truncated excerpts and counts as one character.
const ellipsis = "…"

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// StripHTML turns rich-text HTML into a single line of plain text.
// Tag-like substrings are replaced by a space, whitespace runs collapse to one
// space, and the result is trimmed. Entities are left as written.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}
	text := tagPattern.ReplaceAllString(html, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// FirstSentence is FirstSentenceN with DefaultMaxLen.
func FirstSentence(text string) string {
	return FirstSentenceN(text, DefaultMaxLen)
}

// FirstSentenceN returns text up to and including its first period when that
// period sits before maxLen. Otherwise text longer than maxLen is cut to
// maxLen-1 characters plus an ellipsis, and shorter text is returned as is.
// Lengths are counted in runes, so a character outside the Basic Multilingual
// Plane (an emoji, say) counts once where a UTF-16 count would see two. A
// non-positive maxLen means DefaultMaxLen.
func FirstSentenceN(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	if dot := strings.IndexByte(text, '.'); dot != -1 {
		if utf8.RuneCountInString(text[:dot]) < maxLen {
			return text[:dot+1]
		}
	}

	if utf8.RuneCountInString(text) > maxLen {
		runes := []rune(text)
		return string(runes[:maxLen-1]) + ellipsis
	}
	return text
}

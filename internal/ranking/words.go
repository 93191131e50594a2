package ranking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// containsWord reports whether word occurs in text without letters or digits on either side.
// Both arguments must already be lower-cased. A '.' or '/' between word characters
// joins them, so "js" is not found inside "node.js".
func containsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for offset := 0; offset <= len(text)-len(word); {
		idx := strings.Index(text[offset:], word)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(word)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, size := utf8.DecodeLastRuneInString(text[:i])
	if isJoiner(r) && i > size {
		r, _ = utf8.DecodeLastRuneInString(text[:i-size])
	}
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, size := utf8.DecodeRuneInString(text[i:])
	if isJoiner(r) && i+size < len(text) {
		r, _ = utf8.DecodeRuneInString(text[i+size:])
	}
	return !isWordRune(r)
}

func isJoiner(r rune) bool {
	return r == '.' || r == '/'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

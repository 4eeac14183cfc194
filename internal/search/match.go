package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) into a string.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Find returns the first occurrence of pattern in name as a byte span into
// name. An empty pattern matches at [0, 0).
//
// Case-insensitive matching compares whole runes under Unicode simple case
// folding, so multi-byte characters are never split and the span always
// indexes the original name, even where folded forms differ in byte length.
func Find(name, pattern string, caseSensitive bool) (Span, bool) {
	if pattern == "" {
		return Span{}, true
	}

	if caseSensitive {
		i := strings.Index(name, pattern)
		if i < 0 {
			return Span{}, false
		}
		return Span{Start: i, End: i + len(pattern)}, true
	}

	for i := 0; i < len(name); {
		if n, ok := foldPrefix(name[i:], pattern); ok {
			return Span{Start: i, End: i + n}, true
		}
		_, size := utf8.DecodeRuneInString(name[i:])
		i += size
	}
	return Span{}, false
}

// foldPrefix reports whether s starts with pattern under case folding and
// how many bytes of s the match consumed.
func foldPrefix(s, pattern string) (int, bool) {
	consumed := 0
	for pattern != "" {
		if s == "" {
			return 0, false
		}
		sr, ssize := utf8.DecodeRuneInString(s)
		pr, psize := utf8.DecodeRuneInString(pattern)
		if !equalFoldRune(sr, pr) {
			return 0, false
		}
		s = s[ssize:]
		pattern = pattern[psize:]
		consumed += ssize
	}
	return consumed, true
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	// Walk a's fold orbit; it is short and always cycles back to a.
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

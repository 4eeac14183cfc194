package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		pattern       string
		caseSensitive bool
		want          Span
		found         bool
	}{
		{"simple", "hello.txt", "lo", true, Span{3, 5}, true},
		{"first occurrence wins", "abab", "ab", true, Span{0, 2}, true},
		{"whole name", "main.go", "main.go", true, Span{0, 7}, true},
		{"no match", "main.go", "rs", true, Span{}, false},
		{"case mismatch when sensitive", "README.md", "readme", true, Span{}, false},
		{"case folded when insensitive", "README.md", "readme", false, Span{0, 6}, true},
		{"pattern longer than name", "a", "abc", false, Span{}, false},
		{"multibyte name", "Ärger.txt", "ä", false, Span{0, 2}, true},
		{"multibyte after ascii", "naïve", "ÏV", false, Span{2, 5}, true},
		{"kelvin sign folds to k", "\u212Aey", "key", false, Span{0, 5}, true},
		{"empty pattern", "anything", "", false, Span{0, 0}, true},
		{"empty name", "", "x", false, Span{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Find(tt.input, tt.pattern, tt.caseSensitive)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindReturnsSmallestIndex(t *testing.T) {
	names := []string{"banana", "mississippi", "aaaa", "src/lib.rs", "x.tar.gz", "日本語のファイル"}
	for _, name := range names {
		// Every substring of name must be found at its first occurrence.
		for i := 0; i < len(name); i++ {
			for j := i + 1; j <= len(name); j++ {
				pattern := name[i:j]
				if !utf8Valid(pattern) {
					continue
				}
				span, found := Find(name, pattern, true)
				if assert.True(t, found, "%q in %q", pattern, name) {
					assert.Equal(t, pattern, name[span.Start:span.End])
					assert.Equal(t, strings.Index(name, pattern), span.Start)
				}
			}
		}
	}
}

func TestFindCaseInsensitiveOffsetsIndexOriginal(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"MakeFile", "makefile"},
		{"docs/Guide.MD", "guide.md"},
		{"ÉCOLE-notes", "école"},
		{"Photo_2024.JPG", "2024.jpg"},
	}

	for _, tt := range tests {
		for _, name := range []string{tt.name, strings.ToUpper(tt.name), strings.ToLower(tt.name)} {
			for _, pattern := range []string{tt.pattern, strings.ToUpper(tt.pattern)} {
				span, found := Find(name, pattern, false)
				if assert.True(t, found, "%q in %q", pattern, name) {
					assert.True(t, strings.EqualFold(pattern, name[span.Start:span.End]),
						"span %v of %q does not fold to %q", span, name, pattern)
				}
			}
		}
	}
}

func TestFindNoOccurrence(t *testing.T) {
	for _, caseSensitive := range []bool{true, false} {
		_, found := Find("config.yaml", "json", caseSensitive)
		assert.False(t, found)
	}
}

func TestSpanLen(t *testing.T) {
	assert.Equal(t, 3, Span{Start: 2, End: 5}.Len())
	assert.Equal(t, 0, Span{}.Len())
}

func utf8Valid(s string) bool {
	return strings.ToValidUTF8(s, "") == s
}

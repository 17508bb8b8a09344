package toki

import (
	"strings"
	"unicode/utf8"
)

// Span locates a token or error in source text: a byte offset plus the
// rendered length of the lexeme, in characters.
type Span struct {
	Pos int
	Len int
}

// extractLine returns the source line containing byte offset ix, the
// 1-based line number, and the character index of ix within that line.
// The start and end of the source act as implicit line boundaries.
func extractLine(src string, ix int) (line string, lineNo, charIx int) {
	if ix > len(src) {
		ix = len(src)
	}
	before := src[:ix]

	start := strings.LastIndexByte(before, '\n') + 1
	end := strings.IndexByte(src[ix:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += ix
	}

	lineNo = strings.Count(before, "\n") + 1
	charIx = utf8.RuneCountInString(src[start:ix])
	return src[start:end], lineNo, charIx
}

// splitSpan cuts line at character (not byte) boundaries around the span,
// clamping to the line's end so a span pointing past it stays renderable.
func splitSpan(line string, charIx, length int) (before, span, after string) {
	runes := []rune(line)
	if charIx > len(runes) {
		charIx = len(runes)
	}
	end := charIx + length
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[:charIx]), string(runes[charIx:end]), string(runes[end:])
}

// reporter.go — user-facing diagnostics for lex and parse failures.
//
// Report turns the structured *LexError/*ParseError values into a
// readable message showing the offending source line with the bad span
// colorized and a caret run underneath:
//
//	Error: Expected Semicolon 2:14:
//
//	        x = foo + bar
//	                  ^^^
//
// Errors that did not come from the lexer or parser pass through
// unchanged. ANSI styling is gated behind EnableColor so tests and logs
// compare plain bytes.
package toki

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// EnableColor turns on ANSI styling in rendered diagnostics.
var EnableColor = false

const (
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[91m"
	ansiReset = "\x1b[0m"
)

func bold(s string) string {
	if !EnableColor {
		return s
	}
	return ansiBold + s + ansiReset
}

func red(s string) string {
	if !EnableColor {
		return s
	}
	return ansiRed + s + ansiReset
}

// Report renders a lex or parse failure against the source it came from.
// A nil error stays nil and unrecognized errors are returned as-is, so
// callers can wrap any front-end result in it.
func Report(err error, src string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return errors.New(renderParseError(pe, src))
	}
	var le *LexError
	if errors.As(err, &le) {
		return errors.New(renderDiagnostic(src, le.Msg(), le.Pos, 1))
	}
	return err
}

func renderParseError(e *ParseError, src string) string {
	if e.Kind == ErrUnexpectedEnd {
		// No token to point at; the input simply stopped.
		return e.Msg()
	}
	pos, length := e.Pos, e.Len
	if e.Kind == ErrLex {
		pos, length = e.Lex.Pos, 1
	}
	return renderDiagnostic(src, e.Msg(), pos, length)
}

func renderDiagnostic(src, msg string, pos, length int) string {
	line, lineNo, charIx := extractLine(src, pos)
	header := bold(fmt.Sprintf("Error: %s %d:%d:", msg, lineNo, pos))
	return fmt.Sprintf("\n%s\n\n\t%s\n\t%s\n\n",
		header,
		highlightSpan(line, charIx, length),
		underlineSpan(line, charIx, length))
}

func highlightSpan(line string, charIx, length int) string {
	before, span, after := splitSpan(line, charIx, length)
	return before + red(span) + after
}

func underlineSpan(line string, charIx, length int) string {
	before, span, after := splitSpan(line, charIx, length)
	return strings.Repeat(" ", utf8.RuneCountInString(before)) +
		red(strings.Repeat("^", utf8.RuneCountInString(span))) +
		strings.Repeat(" ", utf8.RuneCountInString(after))
}

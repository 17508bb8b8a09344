// reporter_test.go
package toki

import (
	"errors"
	"strings"
	"testing"
)

func Test_ExtractLine_Boundaries(t *testing.T) {
	src := "abc\ndef\nghi"
	// A newline offset belongs to the line it terminates; an offset one
	// past the end of input lands at the end of the last line.
	cases := []struct {
		ix     int
		line   string
		lineNo int
		charIx int
	}{
		{0, "abc", 1, 0},
		{2, "abc", 1, 2},
		{3, "abc", 1, 3},
		{4, "def", 2, 0},
		{10, "ghi", 3, 2},
		{11, "ghi", 3, 3},
	}
	for _, tc := range cases {
		line, lineNo, charIx := extractLine(src, tc.ix)
		if line != tc.line || lineNo != tc.lineNo || charIx != tc.charIx {
			t.Fatalf("extractLine(%d): want (%q, %d, %d), got (%q, %d, %d)",
				tc.ix, tc.line, tc.lineNo, tc.charIx, line, lineNo, charIx)
		}
	}
}

func Test_ExtractLine_Multibyte(t *testing.T) {
	src := "éé = @"
	// '@' sits at byte 7 but at character index 5 of the line.
	line, lineNo, charIx := extractLine(src, 7)
	if line != src || lineNo != 1 || charIx != 5 {
		t.Fatalf("got (%q, %d, %d)", line, lineNo, charIx)
	}
}

func Test_Reporter_Caret_Placement(t *testing.T) {
	src := "a b;"
	_, perr := Parse(src)
	if perr == nil {
		t.Fatal("want parse error")
	}
	got := Report(perr, src).Error()
	want := "\nError: Unexpected Statement (Previous Statement May Be Missing A Semicolon) 1:2:\n\n\ta b;\n\t  ^ \n\n"
	if got != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}

func Test_Reporter_Span_Covers_Token_Length(t *testing.T) {
	src := "x = foo bar;"
	_, perr := Parse(src)
	got := Report(perr, src).Error()
	if !strings.Contains(got, "\t        ^^^ \n") {
		t.Fatalf("want three carets under bar:\n%q", got)
	}
}

func Test_Reporter_Lex_Error(t *testing.T) {
	src := `x = "abc`
	_, perr := Parse(src)
	got := Report(perr, src).Error()
	if !strings.Contains(got, "Error: Unterminated String Literal 1:4:") {
		t.Fatalf("header missing:\n%q", got)
	}
	if !strings.Contains(got, "\t    ^   \n") {
		t.Fatalf("caret should sit under the opening quote:\n%q", got)
	}
}

func Test_Reporter_Multibyte_Alignment(t *testing.T) {
	src := "éé = @"
	_, perr := Parse(src)
	got := Report(perr, src).Error()
	// Carets count characters, not bytes.
	if !strings.Contains(got, "\t     ^\n") {
		t.Fatalf("caret misaligned:\n%q", got)
	}
}

func Test_Reporter_Unexpected_End_Has_No_Snippet(t *testing.T) {
	src := "x = 1"
	_, perr := Parse(src)
	got := Report(perr, src).Error()
	if got != "Reached Unexpected End Of Input" {
		t.Fatalf("got %q", got)
	}
}

func Test_Reporter_Passes_Through_Foreign_Errors(t *testing.T) {
	boom := errors.New("boom")
	if Report(boom, "x") != boom {
		t.Fatal("foreign errors must pass through unchanged")
	}
	if Report(nil, "x") != nil {
		t.Fatal("nil must stay nil")
	}
}

func Test_Reporter_Color_Codes(t *testing.T) {
	EnableColor = true
	defer func() { EnableColor = false }()

	src := "a b;"
	_, perr := Parse(src)
	got := Report(perr, src).Error()
	if !strings.Contains(got, "\x1b[1m") || !strings.Contains(got, "\x1b[91m") {
		t.Fatalf("want bold header and red span:\n%q", got)
	}
	if !strings.Contains(got, "\x1b[91mb\x1b[0m") {
		t.Fatalf("offending token should be wrapped in red:\n%q", got)
	}
}

func Test_Reporter_Caret_Clamped_To_Line_End(t *testing.T) {
	// A span running past its line is clamped at the line's end.
	got := renderDiagnostic("x =", "Test", 2, 5)
	if !strings.Contains(got, "\t  ^\n") {
		t.Fatalf("span should clamp to one caret:\n%q", got)
	}
}

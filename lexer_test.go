// lexer_test.go
package toki

import (
	"errors"
	"reflect"
	"testing"
)

func toks(t *testing.T, src string) []SpannedToken {
	t.Helper()
	ts, err := NewLexer(src).Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []SpannedToken) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Tok.Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Tok.Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []SpannedToken {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func wantLexErr(t *testing.T, src string, kind LexErrKind, pos int) {
	t.Helper()
	_, err := NewLexer(src).Scan()
	var le *LexError
	if !errors.As(err, &le) {
		t.Fatalf("source %q: want *LexError, got %v", src, err)
	}
	if le.Kind != kind || le.Pos != pos {
		t.Fatalf("source %q: want kind=%d pos=%d, got kind=%d pos=%d", src, kind, pos, le.Kind, le.Pos)
	}
}

func Test_Lexer_Punctuation_And_Operators(t *testing.T) {
	wantTypes(t, `( ) : ; , . -> + += - -= * *= / /= ! != = ==`, []TokenType{
		LPAREN, RPAREN, COLON, SEMICOLON, COMMA, PERIOD, ARROW,
		ADD, ADD_EQ, SUB, SUB_EQ, MUL, MUL_EQ, DIV, DIV_EQ,
		BANG, BANG_EQ, EQ, DOUBLE_EQ,
	})
}

func Test_Lexer_Keywords(t *testing.T) {
	wantTypes(t, `and or not mut return if else def struct andor`, []TokenType{
		AND, OR, NOT, MUT, RETURN, IF, ELSE, DEF, STRUCT, IDENT,
	})
}

func Test_Lexer_Literals(t *testing.T) {
	got := wantTypes(t, `x1 "hey" 42`, []TokenType{IDENT, STRING, INTEGER})
	if got[0].Tok.Text != "x1" {
		t.Fatalf("ident text: %q", got[0].Tok.Text)
	}
	if got[1].Tok.Text != "hey" {
		t.Fatalf("string text: %q", got[1].Tok.Text)
	}
	if got[2].Tok.Int != 42 {
		t.Fatalf("int value: %d", got[2].Tok.Int)
	}
}

// The scanner takes the maximal digit/underscore run as one lexeme, so an
// underscored literal fails the 32-bit parse rather than splitting.
func Test_Lexer_Underscored_Int_Is_Invalid(t *testing.T) {
	wantLexErr(t, "x = 1_000;", LexBadIntLiteral, 4)
}

func Test_Lexer_Token_Offsets(t *testing.T) {
	got := wantTypes(t, `x = "ab" + 7`, []TokenType{IDENT, EQ, STRING, ADD, INTEGER})
	wantPos := []int{0, 2, 4, 9, 11}
	for i, w := range wantPos {
		if got[i].Pos != w {
			t.Fatalf("token %d: want pos %d, got %d", i, w, got[i].Pos)
		}
	}
}

// A line indented one level followed by a line back at zero: the dedent
// fires before the second line's first token, without consuming it.
func Test_Lexer_Indent_Then_Dedent(t *testing.T) {
	got := wantTypes(t, "    a\nb", []TokenType{INDENT, IDENT, NEWLINE, DEDENT, IDENT})
	if got[3].Pos != got[4].Pos {
		t.Fatalf("dedent should sit at the unconsumed char: %d vs %d", got[3].Pos, got[4].Pos)
	}
}

func Test_Lexer_Multi_Level_Dedent_To_Zero(t *testing.T) {
	src := "a:\n    b:\n        c\nd"
	wantTypes(t, src, []TokenType{
		IDENT, COLON, NEWLINE,
		INDENT, IDENT, COLON, NEWLINE,
		INDENT, IDENT, NEWLINE,
		DEDENT, DEDENT, IDENT,
	})
}

func Test_Lexer_Dedent_To_Intermediate_Level(t *testing.T) {
	src := "a:\n    b:\n        c\n    d\n"
	wantTypes(t, src, []TokenType{
		IDENT, COLON, NEWLINE,
		INDENT, IDENT, COLON, NEWLINE,
		INDENT, IDENT, NEWLINE,
		DEDENT, IDENT, NEWLINE,
		DEDENT,
	})
}

// The forced dedent may fire on consecutive Next calls without any
// forward progress through the input.
func Test_Lexer_Forced_Dedent_No_Progress(t *testing.T) {
	l := NewLexer("a:\n    b:\n        c\nd")
	var prev SpannedToken
	dedents := 0
	for {
		st, err := l.Next()
		if err != nil {
			t.Fatalf("Next error: %v", err)
		}
		if st.Tok.Type == DEDENT {
			dedents++
			if dedents == 2 && st.Pos != prev.Pos {
				t.Fatalf("consecutive dedents should share position: %d vs %d", prev.Pos, st.Pos)
			}
		}
		if st.Tok.Type == EOF {
			break
		}
		prev = st
	}
	if dedents != 2 {
		t.Fatalf("want 2 dedents, got %d", dedents)
	}
}

// Open levels are closed one DEDENT per call at end of input.
func Test_Lexer_EOF_Flushes_Open_Levels(t *testing.T) {
	src := "a:\n    b:\n        c"
	got := toks(t, src)
	n := len(got)
	wantTail := []TokenType{IDENT, DEDENT, DEDENT, EOF}
	for i, w := range wantTail {
		if tt := got[n-4+i].Tok.Type; tt != w {
			t.Fatalf("tail token %d: want %v, got %v", i, w, tt)
		}
	}
	for _, st := range got[n-3:] {
		if st.Pos != len(src) {
			t.Fatalf("flush tokens should sit at end of input, got %d", st.Pos)
		}
	}
}

// The running indent/dedent balance tracks the lexer's level and never
// goes negative.
func Test_Lexer_Indent_Balance_Invariant(t *testing.T) {
	src := "a:\n    b:\n        c\n    d\ne:\n    f\n"
	l := NewLexer(src)
	balance := 0
	for {
		st, err := l.Next()
		if err != nil {
			t.Fatalf("Next error: %v", err)
		}
		switch st.Tok.Type {
		case INDENT:
			balance++
		case DEDENT:
			balance--
		}
		if balance < 0 {
			t.Fatalf("balance went negative at pos %d", st.Pos)
		}
		if balance != l.IndentLevel() {
			t.Fatalf("balance %d != level %d at pos %d", balance, l.IndentLevel(), st.Pos)
		}
		if st.Tok.Type == EOF {
			break
		}
	}
	if balance != 0 {
		t.Fatalf("final balance %d", balance)
	}
}

func Test_Lexer_Leading_Indent_At_Start_Of_Input(t *testing.T) {
	wantTypes(t, "    a", []TokenType{INDENT, IDENT, DEDENT})
}

func Test_Lexer_Interior_Spaces_Are_Not_Indentation(t *testing.T) {
	wantTypes(t, "a   :      b", []TokenType{IDENT, COLON, IDENT})
}

func Test_Lexer_Unterminated_String(t *testing.T) {
	wantLexErr(t, `x = "abc`, LexUnterminatedString, 4)
}

func Test_Lexer_Unknown_Token(t *testing.T) {
	wantLexErr(t, "x = @", LexUnknownToken, 4)
}

func Test_Lexer_Scan_Keeps_Tokens_Before_Error(t *testing.T) {
	got, err := NewLexer("x = @").Scan()
	if err == nil {
		t.Fatal("want lex error")
	}
	want := []TokenType{IDENT, EQ}
	if !reflect.DeepEqual(typesWithoutEOF(got), want) {
		t.Fatalf("want %v, got %v", want, typesWithoutEOF(got))
	}
}

func Test_Lexer_Misaligned_Indent(t *testing.T) {
	wantLexErr(t, "a:\n  b", LexBadIndent, 3)
}

func Test_Lexer_Indent_Jump_Of_Two_Levels(t *testing.T) {
	wantLexErr(t, "a:\n        b", LexTooDeepIndent, 3)
}

func Test_Lexer_Int_Literal_Overflow(t *testing.T) {
	wantLexErr(t, "99999999999", LexBadIntLiteral, 0)
}

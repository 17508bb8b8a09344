// lexer.go — indentation-sensitive scanner for Toki source.
//
// The lexer is a pull iterator: the parser advances it exactly as far as it
// needs via Next, which returns one SpannedToken (or a *LexError) per call.
// Block structure is synthesized from leading whitespace: every 4 spaces of
// indentation is one level, and entering/leaving a level emits an INDENT or
// DEDENT token. A dedent that closes several levels is emitted one token per
// Next call, re-evaluating the same line each time, so a call may produce a
// token without consuming any input.
package toki

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// indentUnit is the fixed number of spaces per block level.
const indentUnit = 4

// ----- errors -----

// LexErrKind classifies lexer failures.
type LexErrKind int

const (
	LexUnknownToken LexErrKind = iota
	LexUnterminatedString
	LexBadIntLiteral
	LexBadIndent     // leading spaces not a multiple of the indent unit
	LexTooDeepIndent // line jumps more than one level at once
)

// LexError is a lexical error at a byte offset in the source. Lexing does
// not resynchronize: the first error terminates the token stream.
type LexError struct {
	Kind LexErrKind
	Pos  int
}

func (e *LexError) Msg() string {
	switch e.Kind {
	case LexUnknownToken:
		return "Unknown Token"
	case LexUnterminatedString:
		return "Unterminated String Literal"
	case LexBadIntLiteral:
		return "Invalid Integer Literal"
	case LexBadIndent:
		return fmt.Sprintf("Indentation Must Be A Multiple Of %d Spaces", indentUnit)
	case LexTooDeepIndent:
		return "Indented More Than One Level At Once"
	}
	return "Lex Error"
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEX ERROR at byte %d: %s", e.Pos, e.Msg())
}

// ----- lexer -----

// Lexer scans a Toki source string into tokens, one Next call at a time.
// All token text is sliced from src, never copied.
type Lexer struct {
	src string
	pos int // byte offset of the next unread character

	justAfterNewline bool
	indentLevel      int
}

// NewLexer creates a lexer positioned at the start of src. The start of
// input counts as the start of a line, so leading indentation is measured.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, justAfterNewline: true}
}

// IndentLevel reports the current indent depth in indent units.
func (l *Lexer) IndentLevel() int { return l.indentLevel }

func (l *Lexer) spanned(pos int, tok Token) SpannedToken {
	return SpannedToken{Pos: pos, Tok: tok}
}

// Next returns the next token. At end of input it first emits one DEDENT
// per still-open indent level, then EOF tokens forever.
func (l *Lexer) Next() (SpannedToken, error) {
	for {
		if l.pos >= len(l.src) {
			if l.indentLevel > 0 {
				l.indentLevel--
				return l.spanned(len(l.src), Token{Type: DEDENT}), nil
			}
			return l.spanned(len(l.src), Token{Type: EOF}), nil
		}

		c := l.src[l.pos]

		// A line with too few leading spaces must still close every open
		// level: emit one DEDENT per call without consuming input.
		if l.indentLevel > 0 && l.justAfterNewline && c != ' ' && c != '\n' {
			l.indentLevel--
			return l.spanned(l.pos, Token{Type: DEDENT}), nil
		}

		if c == '\n' {
			at := l.pos
			l.pos++
			l.justAfterNewline = true
			return l.spanned(at, Token{Type: NEWLINE}), nil
		}

		if c == ' ' {
			if !l.justAfterNewline {
				l.pos++
				continue
			}
			tok, emitted, err := l.measureIndent()
			if err != nil {
				return SpannedToken{}, err
			}
			if emitted {
				return tok, nil
			}
			continue
		}

		l.justAfterNewline = false
		return l.scanToken()
	}
}

// measureIndent handles a leading space run. A run matching the current
// level is consumed outright; a one-level increase consumes a single unit
// and emits INDENT; a shallower run emits DEDENT without consuming, so the
// following call re-measures the same run against the lowered level.
func (l *Lexer) measureIndent() (SpannedToken, bool, error) {
	run := 0
	for l.pos+run < len(l.src) && l.src[l.pos+run] == ' ' {
		run++
	}
	if run%indentUnit != 0 {
		return SpannedToken{}, false, &LexError{Kind: LexBadIndent, Pos: l.pos}
	}

	found := run / indentUnit
	at := l.pos

	switch {
	case found == l.indentLevel:
		l.pos += run
		l.justAfterNewline = false
		return SpannedToken{}, false, nil
	case found == l.indentLevel+1:
		l.pos += indentUnit
		l.indentLevel++
		l.justAfterNewline = false
		return l.spanned(at, Token{Type: INDENT}), true, nil
	case found > l.indentLevel+1:
		return SpannedToken{}, false, &LexError{Kind: LexTooDeepIndent, Pos: l.pos}
	default: // found < l.indentLevel
		// No input is consumed: the same run is measured again on the
		// next call, emitting one DEDENT per call until the levels match.
		l.indentLevel--
		return l.spanned(at, Token{Type: DEDENT}), true, nil
	}
}

// scanToken lexes one non-structural token starting at the current offset.
func (l *Lexer) scanToken() (SpannedToken, error) {
	at := l.pos
	c := l.src[l.pos]

	switch c {
	case '(':
		l.pos++
		return l.spanned(at, Token{Type: LPAREN}), nil
	case ')':
		l.pos++
		return l.spanned(at, Token{Type: RPAREN}), nil
	case ':':
		l.pos++
		return l.spanned(at, Token{Type: COLON}), nil
	case ';':
		l.pos++
		return l.spanned(at, Token{Type: SEMICOLON}), nil
	case ',':
		l.pos++
		return l.spanned(at, Token{Type: COMMA}), nil
	case '.':
		l.pos++
		return l.spanned(at, Token{Type: PERIOD}), nil

	case '+':
		return l.ifEqualElse(ADD_EQ, ADD), nil
	case '*':
		return l.ifEqualElse(MUL_EQ, MUL), nil
	case '/':
		return l.ifEqualElse(DIV_EQ, DIV), nil
	case '!':
		return l.ifEqualElse(BANG_EQ, BANG), nil
	case '=':
		return l.ifEqualElse(DOUBLE_EQ, EQ), nil

	case '-':
		l.pos++
		if l.pos < len(l.src) {
			switch l.src[l.pos] {
			case '=':
				l.pos++
				return l.spanned(at, Token{Type: SUB_EQ}), nil
			case '>':
				l.pos++
				return l.spanned(at, Token{Type: ARROW}), nil
			}
		}
		return l.spanned(at, Token{Type: SUB}), nil

	case '"':
		return l.scanString()
	}

	if isDigit(c) {
		return l.scanInt()
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	if unicode.IsLetter(r) {
		return l.scanIdent()
	}

	return SpannedToken{}, &LexError{Kind: LexUnknownToken, Pos: at}
}

// ifEqualElse consumes one character plus, when the following character is
// '=', the compound form instead of the plain one.
func (l *Lexer) ifEqualElse(yes, no TokenType) SpannedToken {
	at := l.pos
	l.pos++
	if l.pos < len(l.src) && l.src[l.pos] == '=' {
		l.pos++
		return l.spanned(at, Token{Type: yes})
	}
	return l.spanned(at, Token{Type: no})
}

// scanString lexes a "..." literal. There is no escape processing; the
// first closing quote ends the literal.
func (l *Lexer) scanString() (SpannedToken, error) {
	at := l.pos
	for i := l.pos + 1; i < len(l.src); i++ {
		if l.src[i] == '"' {
			text := l.src[l.pos+1 : i]
			l.pos = i + 1
			return l.spanned(at, Token{Type: STRING, Text: text}), nil
		}
	}
	return SpannedToken{}, &LexError{Kind: LexUnterminatedString, Pos: at}
}

// scanInt lexes a maximal digit/underscore run and parses it as an i32.
func (l *Lexer) scanInt() (SpannedToken, error) {
	at := l.pos
	end := l.pos
	for end < len(l.src) && (isDigit(l.src[end]) || l.src[end] == '_') {
		end++
	}
	text := l.src[l.pos:end]
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return SpannedToken{}, &LexError{Kind: LexBadIntLiteral, Pos: at}
	}
	l.pos = end
	return l.spanned(at, Token{Type: INTEGER, Text: text, Int: int32(n)}), nil
}

// scanIdent lexes an identifier (letter first, then letters/digits/_) and
// reclassifies it via the keyword table.
func (l *Lexer) scanIdent() (SpannedToken, error) {
	at := l.pos
	end := l.pos
	for end < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[end:])
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			break
		}
		end += size
	}
	text := l.src[l.pos:end]
	l.pos = end
	if kw, ok := keywords[text]; ok {
		return l.spanned(at, Token{Type: kw}), nil
	}
	return l.spanned(at, Token{Type: IDENT, Text: text}), nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Scan tokenizes the entire source and returns tokens (EOF included). On
// a lex error the tokens scanned before the failure are returned with it.
func (l *Lexer) Scan() ([]SpannedToken, error) {
	var tokens []SpannedToken
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Tok.Type == EOF {
			return tokens, nil
		}
	}
}

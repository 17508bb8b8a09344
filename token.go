package toki

import "strconv"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Structural (synthesized from whitespace)
	INDENT
	DEDENT
	NEWLINE

	// Literals & identifiers
	INTEGER
	STRING
	IDENT

	// Punctuation
	LPAREN    // "("
	RPAREN    // ")"
	COLON     // ":"
	SEMICOLON // ";"
	COMMA     // ","
	ARROW     // "->"
	PERIOD    // "."

	// Operators and their compound-assignment forms
	ADD
	ADD_EQ
	SUB
	SUB_EQ
	MUL
	MUL_EQ
	DIV
	DIV_EQ
	BANG
	BANG_EQ
	EQ        // "="
	DOUBLE_EQ // "=="

	// Boolean keywords
	NOT
	AND
	OR

	// Keywords
	MUT
	IF
	ELSE
	RETURN
	DEF
	STRUCT
)

// keywords map
var keywords = map[string]TokenType{
	"and":    AND,
	"or":     OR,
	"not":    NOT,
	"mut":    MUT,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"def":    DEF,
	"struct": STRUCT,
}

// Token is a lexical token. Text is a slice of the original source for
// IDENT and STRING (and the raw digit run for INTEGER); Int carries the
// parsed value of an INTEGER token.
type Token struct {
	Type TokenType
	Text string
	Int  int32
}

// SpannedToken pairs a token with the byte offset of its first character
// in the source. The offset is the only position information carried
// through parsing; line/column are recovered only when a diagnostic is
// rendered.
type SpannedToken struct {
	Pos int
	Tok Token
}

var tokenText = map[TokenType]string{
	EOF:       "<eof>",
	INDENT:    "<indent>",
	DEDENT:    "<dedent>",
	NEWLINE:   "\\n",
	LPAREN:    "(",
	RPAREN:    ")",
	COLON:     ":",
	SEMICOLON: ";",
	COMMA:     ",",
	ARROW:     "->",
	PERIOD:    ".",
	ADD:       "+",
	ADD_EQ:    "+=",
	SUB:       "-",
	SUB_EQ:    "-=",
	MUL:       "*",
	MUL_EQ:    "*=",
	DIV:       "/",
	DIV_EQ:    "/=",
	BANG:      "!",
	BANG_EQ:   "!=",
	EQ:        "=",
	DOUBLE_EQ: "==",
	NOT:       "not",
	AND:       "and",
	OR:        "or",
	MUT:       "mut",
	IF:        "if",
	ELSE:      "else",
	RETURN:    "return",
	DEF:       "def",
	STRUCT:    "struct",
}

// String renders the token as it appears in source.
func (t Token) String() string {
	switch t.Type {
	case IDENT, STRING:
		return t.Text
	case INTEGER:
		if t.Text != "" {
			return t.Text
		}
		return strconv.FormatInt(int64(t.Int), 10)
	}
	if s, ok := tokenText[t.Type]; ok {
		return s
	}
	return "<unknown>"
}

// SrcLen is the number of source characters the token occupies, used to
// size the highlighted span in diagnostics.
func (t Token) SrcLen() int {
	switch t.Type {
	case STRING:
		return len([]rune(t.Text)) + 2 // include the quotes
	case IDENT, INTEGER:
		return len([]rune(t.String()))
	case DEDENT, NEWLINE, EOF:
		return 1
	case INDENT:
		return 4
	}
	return len(tokenText[t.Type])
}

/* ---------- operators & precedence ---------- */

// Operator is the reduced classification of the binary-operator tokens.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpEquals
)

// Precedence levels, total-ordered. This ordering is the single source of
// truth for expression grouping.
type Precedence int

const (
	Lowest Precedence = iota
	AddSub
	MulDiv
	Equality
)

// AsOperator reduces a token type to its Operator, if it has one.
func (tt TokenType) AsOperator() (Operator, bool) {
	switch tt {
	case ADD:
		return OpAdd, true
	case SUB:
		return OpSub, true
	case MUL:
		return OpMul, true
	case DIV:
		return OpDiv, true
	case DOUBLE_EQ:
		return OpEquals, true
	}
	return 0, false
}

// Precedence returns the binding strength of the operator.
func (o Operator) Precedence() Precedence {
	switch o {
	case OpAdd, OpSub:
		return AddSub
	case OpMul, OpDiv:
		return MulDiv
	case OpEquals:
		return Equality
	}
	return Lowest
}

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEquals:
		return "=="
	}
	return "?"
}

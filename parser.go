// parser.go — recursive-descent parser for Toki.
//
// The parser pulls tokens from the lexer one at a time with a single token
// of lookahead and builds the tree bottom-up. Expressions use precedence
// climbing over the four-level Precedence order in token.go. Two grammar
// ambiguities are resolved by an immutable ParseContext threaded through
// the recursive calls:
//
//   - canParseAnnotation: inside an `if` condition a trailing ':' must end
//     the condition, not start a type annotation, so annotation parsing is
//     switched off there.
//   - isInParenBlock: inside an explicit '(' the closing ')' belongs to the
//     enclosing construct (a call argument list) and must be left for it.
//
// Parsing is first-failure-wins: the first lex or parse error aborts the
// whole parse and is surfaced unchanged.
package toki

import (
	"errors"
	"fmt"
)

// ----- errors -----

// ParseErrKind classifies parser failures.
type ParseErrKind int

const (
	ErrLex ParseErrKind = iota // wrapped lexer error
	ErrUnexpectedEnd
	ErrUnexpectedIndent
	ErrUnexpectedStmt
	ErrInvalidExprStart
	ErrExpectedTypeAnnotation
	ErrExpectedNewline
	ErrExpectedSemi
	ErrExpectedColon
	ErrExpectedFnName
	ErrExpectedToken
	ErrUnexpectedMut
)

// ParseError is a parse failure at a byte offset; Len is the rendered
// length of the offending token, used by the reporter to size the
// highlighted span.
type ParseError struct {
	Kind ParseErrKind
	Pos  int
	Len  int
	Want string    // rendered expected token, for ErrExpectedToken
	Lex  *LexError // wrapped cause, for ErrLex
}

// Msg is the human-readable description of the error kind.
func (e *ParseError) Msg() string {
	switch e.Kind {
	case ErrLex:
		return e.Lex.Msg()
	case ErrUnexpectedEnd:
		return "Reached Unexpected End Of Input"
	case ErrUnexpectedIndent:
		return "Unexpected Indentation"
	case ErrUnexpectedStmt:
		return "Unexpected Statement (Previous Statement May Be Missing A Semicolon)"
	case ErrInvalidExprStart:
		return "Expected Expression"
	case ErrExpectedTypeAnnotation:
		return "Expected Valid Type In Annotation"
	case ErrExpectedNewline:
		return "Expected Newline"
	case ErrExpectedSemi:
		return "Expected Semicolon"
	case ErrExpectedColon:
		return "Expected Colon Starting Block"
	case ErrExpectedFnName:
		return "Expected Name"
	case ErrExpectedToken:
		return fmt.Sprintf("Expected '%s'", e.Want)
	case ErrUnexpectedMut:
		return "Unexpected `mut` - Only One Is Allowed Per Type"
	}
	return "Parse Error"
}

func (e *ParseError) Error() string {
	if e.Kind == ErrLex {
		return e.Lex.Error()
	}
	return fmt.Sprintf("PARSE ERROR at byte %d: %s", e.Pos, e.Msg())
}

func (e *ParseError) Unwrap() error {
	if e.Lex != nil {
		return e.Lex
	}
	return nil
}

// IsIncomplete reports whether err means the input ended mid-construct.
// A REPL treats this as "keep reading continuation lines" rather than a
// hard failure.
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == ErrUnexpectedEnd
}

// ----- context -----

// ParseContext carries the disambiguation flags threaded through the
// recursive parse calls. It is passed by value; the with/without builders
// return modified copies, so nested parses cannot corrupt each other.
type ParseContext struct {
	canParseAnnotation bool
	isInParenBlock     bool
}

func newParseContext() ParseContext {
	return ParseContext{canParseAnnotation: true}
}

func (c ParseContext) enteringParens() ParseContext {
	c.isInParenBlock = true
	return c
}

func (c ParseContext) exitingParens() ParseContext {
	c.isInParenBlock = false
	return c
}

func (c ParseContext) withAnnotationParsing() ParseContext {
	c.canParseAnnotation = true
	return c
}

func (c ParseContext) withoutAnnotationParsing() ParseContext {
	c.canParseAnnotation = false
	return c
}

// ----- entry point -----

// Parse lexes and parses a complete Toki source string, returning the
// program's root block.
func Parse(src string) (*AstBlock, error) {
	p := &parser{lx: NewLexer(src)}
	return p.parseBlock(0)
}

// ----- parser state -----

type parser struct {
	lx *Lexer

	tok    SpannedToken
	err    error
	primed bool
}

// peek returns the lookahead token without consuming it. A lexer error is
// wrapped in a *ParseError.
func (p *parser) peek() (SpannedToken, error) {
	if !p.primed {
		p.tok, p.err = p.lx.Next()
		p.primed = true
	}
	if p.err != nil {
		var le *LexError
		if errors.As(p.err, &le) {
			return SpannedToken{}, &ParseError{Kind: ErrLex, Pos: le.Pos, Len: 1, Lex: le}
		}
		return SpannedToken{}, p.err
	}
	return p.tok, nil
}

func (p *parser) peekIs(tt TokenType) bool {
	st, err := p.peek()
	return err == nil && st.Tok.Type == tt
}

// bump consumes the token most recently returned by a successful peek.
func (p *parser) bump() { p.primed = false }

// next consumes and returns the next token, failing at end of input.
func (p *parser) next() (SpannedToken, error) {
	st, err := p.peek()
	if err != nil {
		return SpannedToken{}, err
	}
	p.primed = false
	if st.Tok.Type == EOF {
		return SpannedToken{}, &ParseError{Kind: ErrUnexpectedEnd, Pos: st.Pos}
	}
	return st, nil
}

// eat consumes the next token, requiring it to be of the given type.
func (p *parser) eat(tt TokenType) error {
	st, err := p.next()
	if err != nil {
		return err
	}
	if st.Tok.Type == tt {
		return nil
	}
	kind := ErrExpectedToken
	switch tt {
	case SEMICOLON:
		kind = ErrExpectedSemi
	case COLON:
		kind = ErrExpectedColon
	case NEWLINE:
		kind = ErrExpectedNewline
	}
	return &ParseError{Kind: kind, Pos: st.Pos, Len: st.Tok.SrcLen(), Want: Token{Type: tt}.String()}
}

func (p *parser) skipNewlines() {
	for p.peekIs(NEWLINE) {
		p.bump()
	}
}

// ----- blocks & statements -----

// parseBlock parses statements until a DEDENT or end of input. At most one
// statement may be a semicolon-less expression, and it must be the last.
func (p *parser) parseBlock(indent int) (*AstBlock, error) {
	var stmts []Stmt
	hasNoSemiExpr := false

loop:
	for {
		st, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch st.Tok.Type {
		case EOF:
			break loop
		case NEWLINE:
			p.bump()
		case INDENT:
			// Indentation may only be introduced by a colon-terminated
			// construct, never bare.
			return nil, &ParseError{Kind: ErrUnexpectedIndent, Pos: st.Pos, Len: st.Tok.SrcLen()}
		case DEDENT:
			p.bump()
			break loop
		default:
			if hasNoSemiExpr {
				return nil, &ParseError{Kind: ErrUnexpectedStmt, Pos: st.Pos, Len: st.Tok.SrcLen()}
			}
			stmt, err := p.parseStmt(indent)
			if err != nil {
				return nil, err
			}
			if es, ok := stmt.(*ExprStmt); ok && !es.HasSemi {
				hasNoSemiExpr = true
			}
			stmts = append(stmts, stmt)
		}
	}

	return &AstBlock{Indent: indent, Stmts: stmts, HasSemi: !hasNoSemiExpr}, nil
}

func (p *parser) parseStmt(indent int) (Stmt, error) {
	ctx := newParseContext()

	st, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch st.Tok.Type {
	case RETURN:
		p.bump()
		expr, err := p.parseExpr(Lowest, indent, ctx)
		if err != nil {
			return nil, err
		}
		if err := p.eat(SEMICOLON); err != nil {
			return nil, err
		}
		return &ReturnStmt{Value: expr}, nil
	case DEF:
		return p.parseFnDef(indent)
	case STRUCT:
		return p.parseStructDef(indent)
	}

	// A statement starting with an expression is either an assignment
	// (`target = value;`) or an expression statement.
	primary, err := p.parsePrimaryExpr(indent, ctx)
	if err != nil {
		return nil, err
	}

	if p.peekIs(EQ) {
		p.bump()
		value, err := p.parseExpr(Lowest, indent, ctx)
		if err != nil {
			return nil, err
		}
		if err := p.eat(SEMICOLON); err != nil {
			return nil, err
		}
		return &Assignment{Target: primary, Value: value}, nil
	}

	expr, err := p.parseExprWith(primary, Lowest, indent, ctx)
	if err != nil {
		return nil, err
	}

	hasSemiNext := p.peekIs(SEMICOLON)
	if hasSemiNext {
		p.bump()
	}
	return &ExprStmt{X: expr, HasSemi: exprHasSemi(expr, hasSemiNext)}, nil
}

// exprHasSemi computes the effective has-semi flag of an expression
// statement. Block and conditional expressions carry it in their blocks;
// for a conditional it comes from the else branch when present, otherwise
// from the if-block, unwrapping nested conditionals.
func exprHasSemi(e Expr, hasSemiNext bool) bool {
	switch x := e.(type) {
	case *AstBlock:
		return x.HasSemi
	case *Conditional:
		if x.Else != nil {
			return exprHasSemi(x.Else, hasSemiNext)
		}
		return x.IfBlock.HasSemi
	}
	return hasSemiNext
}

// ----- expressions -----

func (p *parser) parseExpr(min Precedence, indent int, ctx ParseContext) (Expr, error) {
	lhs, err := p.parsePrimaryExpr(indent, ctx)
	if err != nil {
		return nil, err
	}
	return p.parseExprWith(lhs, min, indent, ctx)
}

// parseExprWith absorbs infix operators into lhs while their precedence is
// at least min. The right-hand side is parsed at the operator's own
// precedence (not one higher), which groups equal-precedence chains to the
// right: a + b + c parses as a + (b + c).
func (p *parser) parseExprWith(parsed Expr, min Precedence, indent int, ctx ParseContext) (Expr, error) {
	lhs, err := p.parsePostfixExpr(parsed)
	if err != nil {
		return nil, err
	}

	for {
		st, err := p.peek()
		if err != nil {
			return nil, err
		}
		tt := st.Tok.Type

		if tt == SEMICOLON {
			break
		}
		if tt == RPAREN {
			// An enclosing call argument list owns this ')'.
			if !ctx.isInParenBlock {
				p.bump()
			}
			break
		}

		op, ok := tt.AsOperator()
		if !ok {
			break
		}
		if op.Precedence() < min {
			break
		}
		p.bump()

		rhs, err := p.parseExpr(op.Precedence(), indent, ctx)
		if err != nil {
			return nil, err
		}
		lhs, err = p.parsePostfixExpr(&BinExpr{L: lhs, Op: op, R: rhs})
		if err != nil {
			return nil, err
		}
	}

	return p.parsePostfixExpr(lhs)
}

func (p *parser) parsePrimaryExpr(indent int, ctx ParseContext) (Expr, error) {
	st, err := p.next()
	if err != nil {
		return nil, err
	}

	var expr Expr
	switch st.Tok.Type {
	case LPAREN:
		// Parentheses are transparent: no AST node is built, and the
		// matching ')' is consumed by the expression loop above.
		return p.parseExpr(Lowest, indent, ctx)
	case IF:
		return p.parseConditional(indent)
	case IDENT:
		if ctx.canParseAnnotation && p.peekIs(COLON) {
			ann, err := p.parseAnnotation()
			if err != nil {
				return nil, err
			}
			expr = &TypedIdent{Name: st.Tok.Text, Type: ann}
		} else {
			expr = &Ident{Name: st.Tok.Text}
		}
	case INTEGER:
		expr = &IntLit{Value: st.Tok.Int}
	case STRING:
		expr = &StrLit{Value: st.Tok.Text}
	default:
		return nil, &ParseError{Kind: ErrInvalidExprStart, Pos: st.Pos, Len: st.Tok.SrcLen()}
	}

	return p.parsePostfixExpr(expr)
}

// parsePostfixExpr greedily absorbs call and attribute-access postfixes.
func (p *parser) parsePostfixExpr(lhs Expr) (Expr, error) {
	for {
		switch {
		case p.peekIs(LPAREN):
			call, err := p.parseCallExpr(lhs)
			if err != nil {
				return nil, err
			}
			lhs = call
		case p.peekIs(PERIOD):
			attr, err := p.parseAttrAccess(lhs)
			if err != nil {
				return nil, err
			}
			lhs = attr
		default:
			return lhs, nil
		}
	}
}

func (p *parser) parseAttrAccess(base Expr) (Expr, error) {
	if err := p.eat(PERIOD); err != nil {
		return nil, err
	}
	st, err := p.next()
	if err != nil {
		return nil, err
	}
	if st.Tok.Type != IDENT {
		return nil, &ParseError{Kind: ErrExpectedToken, Pos: st.Pos, Len: st.Tok.SrcLen(), Want: "identifier"}
	}
	return &AttrAccess{Base: base, Attr: st.Tok.Text}, nil
}

// parseCallExpr parses an argument list. Two layouts are supported:
// inline `f(a, b)` and vertical
//
//	f(
//	    a,
//	    b,
//	)
//
// detected by a newline right after '('. Vertical lists require the
// matching INDENT/DEDENT around the arguments and a newline after each
// comma. An argument may be named: `f(name = expr)`.
func (p *parser) parseCallExpr(called Expr) (Expr, error) {
	if err := p.eat(LPAREN); err != nil {
		return nil, err
	}

	isVertical := false
	if p.peekIs(NEWLINE) {
		isVertical = true
		p.bump()
		if err := p.eat(INDENT); err != nil {
			return nil, err
		}
	}

	var args []CallArg
	for {
		st, err := p.peek()
		if err != nil {
			return nil, err
		}
		if st.Tok.Type == RPAREN || st.Tok.Type == DEDENT {
			break
		}

		ctx := newParseContext().enteringParens()
		expr, err := p.parseExpr(Lowest, 0, ctx)
		if err != nil {
			return nil, err
		}

		var name Expr
		if isLiteralExpr(expr) && p.peekIs(EQ) {
			p.bump()
			name = expr
			expr, err = p.parseExpr(Lowest, 0, ctx)
			if err != nil {
				return nil, err
			}
		}
		args = append(args, CallArg{Name: name, Value: expr})

		if !p.peekIs(COMMA) {
			break
		}
		p.bump()
		if isVertical {
			if err := p.eat(NEWLINE); err != nil {
				return nil, err
			}
		}
	}

	if isVertical {
		if err := p.eat(DEDENT); err != nil {
			return nil, err
		}
	}
	if err := p.eat(RPAREN); err != nil {
		return nil, err
	}

	return &CallExpr{Called: called, Args: args}, nil
}

func isLiteralExpr(e Expr) bool {
	_, ok := e.(Literal)
	return ok
}

// ----- conditionals -----

// parseConditional parses the remainder of an `if` expression, the IF
// having been consumed. The condition is parsed with annotation parsing
// off so its trailing ':' ends the condition. An `else` introduces either
// a chained conditional or a terminal block.
func (p *parser) parseConditional(indent int) (Expr, error) {
	ctx := newParseContext().withoutAnnotationParsing()

	cond, err := p.parseExpr(Lowest, indent, ctx)
	if err != nil {
		return nil, err
	}

	st, err := p.next()
	if err != nil {
		return nil, err
	}
	if st.Tok.Type != COLON {
		return nil, &ParseError{Kind: ErrExpectedColon, Pos: st.Pos, Len: st.Tok.SrcLen()}
	}

	if p.peekIs(NEWLINE) {
		p.bump()
		if err := p.eat(INDENT); err != nil {
			return nil, err
		}
	}
	ifBlock, err := p.parseBlock(indent + 1)
	if err != nil {
		return nil, err
	}

	var elseExpr Expr
	if p.peekIs(ELSE) {
		p.bump()
		st, err := p.next()
		if err != nil {
			return nil, err
		}
		switch st.Tok.Type {
		case IF:
			elseExpr, err = p.parseConditional(indent)
			if err != nil {
				return nil, err
			}
		case COLON:
			if err := p.eat(NEWLINE); err != nil {
				return nil, err
			}
			if err := p.eat(INDENT); err != nil {
				return nil, err
			}
			elseExpr, err = p.parseBlock(indent + 1)
			if err != nil {
				return nil, err
			}
		default:
			return nil, &ParseError{Kind: ErrExpectedColon, Pos: st.Pos, Len: st.Tok.SrcLen()}
		}
	}

	return &Conditional{Cond: cond, IfBlock: ifBlock, Else: elseExpr}, nil
}

// ----- definitions -----

func (p *parser) parseFnDef(indent int) (*FnDef, error) {
	if err := p.eat(DEF); err != nil {
		return nil, err
	}

	st, err := p.next()
	if err != nil {
		return nil, err
	}
	if st.Tok.Type != IDENT {
		return nil, &ParseError{Kind: ErrExpectedFnName, Pos: st.Pos, Len: st.Tok.SrcLen()}
	}
	name := st.Tok.Text

	if err := p.eat(LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseFnParams()
	if err != nil {
		return nil, err
	}
	if err := p.eat(ARROW); err != nil {
		return nil, err
	}
	ret, err := p.parseTypeDecl()
	if err != nil {
		return nil, err
	}

	if err := p.eat(COLON); err != nil {
		return nil, err
	}
	if err := p.eat(NEWLINE); err != nil {
		return nil, err
	}
	if err := p.eat(INDENT); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(indent + 1)
	if err != nil {
		return nil, err
	}

	return &FnDef{Name: name, Params: params, Body: body, ReturnType: ret}, nil
}

func (p *parser) parseFnParams() ([]*TypedIdent, error) {
	var params []*TypedIdent
	for p.peekIs(IDENT) {
		st, err := p.next()
		if err != nil {
			return nil, err
		}
		ann, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		params = append(params, &TypedIdent{Name: st.Tok.Text, Type: ann})
		if p.peekIs(COMMA) {
			p.bump()
		}
	}
	if err := p.eat(RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) parseStructDef(indent int) (Stmt, error) {
	if err := p.eat(STRUCT); err != nil {
		return nil, err
	}

	st, err := p.next()
	if err != nil {
		return nil, err
	}
	if st.Tok.Type != IDENT {
		return nil, &ParseError{Kind: ErrExpectedFnName, Pos: st.Pos, Len: st.Tok.SrcLen()}
	}
	name := st.Tok.Text

	if err := p.eat(COLON); err != nil {
		return nil, err
	}
	if err := p.eat(NEWLINE); err != nil {
		return nil, err
	}
	if err := p.eat(INDENT); err != nil {
		return nil, err
	}

	fields, err := p.parseStructFields()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()

	methods, err := p.parseStructMethods()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()

	if err := p.eat(DEDENT); err != nil {
		return nil, err
	}

	return &StructDef{Name: name, Fields: fields, Methods: methods}, nil
}

func (p *parser) parseStructFields() ([]*TypedIdent, error) {
	var fields []*TypedIdent
	for p.peekIs(IDENT) {
		st, err := p.next()
		if err != nil {
			return nil, err
		}
		ann, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		fields = append(fields, &TypedIdent{Name: st.Tok.Text, Type: ann})
		if err := p.eat(NEWLINE); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

func (p *parser) parseStructMethods() ([]*FnDef, error) {
	var methods []*FnDef
	for p.peekIs(DEF) {
		fn, err := p.parseFnDef(0)
		if err != nil {
			return nil, err
		}
		methods = append(methods, fn)
	}
	return methods, nil
}

// ----- type annotations -----

// parseAnnotation parses `: TYPE`.
func (p *parser) parseAnnotation() (TypeAnnotation, error) {
	if err := p.eat(COLON); err != nil {
		return nil, err
	}
	return p.parseTypeDecl()
}

func (p *parser) parseTypeDecl() (TypeAnnotation, error) {
	isMut := false
	if p.peekIs(MUT) {
		p.bump()
		isMut = true
	}

	st, err := p.next()
	if err != nil {
		return nil, err
	}
	switch st.Tok.Type {
	case IDENT:
		t := typeFromName(st.Tok.Text)
		if isMut {
			return TypeMut{Inner: t}, nil
		}
		return t, nil
	case MUT:
		return nil, &ParseError{Kind: ErrUnexpectedMut, Pos: st.Pos, Len: st.Tok.SrcLen()}
	}
	return nil, &ParseError{Kind: ErrExpectedTypeAnnotation, Pos: st.Pos, Len: st.Tok.SrcLen()}
}

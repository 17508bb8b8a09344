// printer.go — textual rendering of the AST for tooling and tests.
//
// The format is stable under one round trip: rendering a parsed program
// and parsing the result again yields a structurally equal tree. It is
// not guaranteed to reproduce the original source byte-for-byte (spacing
// around operators and argument layout are normalized).
package toki

import (
	"strconv"
	"strings"
)

/* ---------- small writer with indentation ---------- */

type out struct {
	b     *strings.Builder
	depth int
}

func (o *out) write(s string) { o.b.WriteString(s) }
func (o *out) nl()            { o.b.WriteByte('\n') }
func (o *out) pad() {
	for i := 0; i < o.depth; i++ {
		o.b.WriteString("    ")
	}
}
func (o *out) line(s string)        { o.pad(); o.b.WriteString(s) }
func (o *out) withIndent(fn func()) { o.depth++; fn(); o.depth-- }

/* ---------- source -> pretty ---------- */

// Pretty parses Toki source and returns its normalized rendering.
func Pretty(src string) (string, error) {
	block, err := Parse(src)
	if err != nil {
		return "", err
	}
	return Render(block), nil
}

// Render renders a program block as source text, one statement per line,
// four spaces per nesting level.
func Render(block *AstBlock) string {
	var b strings.Builder
	p := pp{out: out{b: &b}}
	for _, stmt := range block.Stmts {
		p.printStmtLine(stmt)
	}
	return b.String()
}

type pp struct {
	out out
}

func (p *pp) write(s string) { p.out.write(s) }
func (p *pp) nl()            { p.out.nl() }
func (p *pp) pad()           { p.out.pad() }

// printStmtLine prints a statement and closes its line. Definitions and
// block-valued statements already end with their body's final newline.
func (p *pp) printStmtLine(s Stmt) {
	p.printStmt(s)
	if !endsOwnLine(s) {
		p.nl()
	}
}

func endsOwnLine(s Stmt) bool {
	switch st := s.(type) {
	case *FnDef, *StructDef:
		return true
	case *ExprStmt:
		return isMultiline(st.X)
	}
	return false
}

func (p *pp) printStmt(s Stmt) {
	switch st := s.(type) {
	case *ExprStmt:
		p.pad()
		p.printExpr(st.X)
		// Conditionals and blocks carry their semicolon state in their
		// inner blocks; only a plain tail expression takes one here.
		if st.HasSemi && !isMultiline(st.X) {
			p.write(";")
		}

	case *ReturnStmt:
		p.pad()
		p.write("return ")
		p.printExpr(st.Value)
		p.printTrailingSemi(st.Value)

	case *Assignment:
		p.pad()
		p.printExpr(st.Target)
		p.write(" = ")
		p.printExpr(st.Value)
		p.printTrailingSemi(st.Value)

	case *FnDef:
		p.printFnDef(st)

	case *StructDef:
		p.pad()
		p.write("struct " + st.Name + ":")
		p.nl()
		p.out.withIndent(func() {
			for _, f := range st.Fields {
				p.pad()
				p.printTypedIdent(f)
				p.nl()
			}
			for _, m := range st.Methods {
				p.printFnDef(m)
			}
		})
	}
}

// printTrailingSemi terminates a return or assignment statement. A
// multiline value has already closed its last line, so the semicolon goes
// on its own line at statement depth, matching where the grammar requires
// it in source.
func (p *pp) printTrailingSemi(value Expr) {
	if isMultiline(value) {
		p.pad()
	}
	p.write(";")
}

func isMultiline(e Expr) bool {
	switch e.(type) {
	case *Conditional, *AstBlock:
		return true
	}
	return false
}

func (p *pp) printFnDef(fn *FnDef) {
	p.pad()
	p.write("def " + fn.Name + "(")
	for i, param := range fn.Params {
		if i > 0 {
			p.write(", ")
		}
		p.printTypedIdent(param)
	}
	p.write(") -> " + typeName(fn.ReturnType) + ":")
	p.nl()
	p.out.withIndent(func() {
		for _, stmt := range fn.Body.Stmts {
			p.printStmtLine(stmt)
		}
	})
}

func (p *pp) printExpr(e Expr) {
	switch x := e.(type) {
	case *Ident:
		p.write(x.Name)
	case *IntLit:
		p.write(strconv.FormatInt(int64(x.Value), 10))
	case *StrLit:
		p.write("\"" + x.Value + "\"")
	case *TypedIdent:
		p.printTypedIdent(x)
	case *BinExpr:
		p.write("(")
		p.printExpr(x.L)
		p.write(" " + x.Op.String() + " ")
		p.printExpr(x.R)
		p.write(")")
	case *AttrAccess:
		p.printExpr(x.Base)
		p.write("." + x.Attr)
	case *CallExpr:
		p.printExpr(x.Called)
		p.write("(")
		for i, arg := range x.Args {
			if i > 0 {
				p.write(", ")
			}
			if arg.Name != nil {
				p.printExpr(arg.Name)
				p.write(" = ")
			}
			p.printCallArg(arg.Value)
		}
		p.write(")")
	case *Conditional:
		p.printConditional(x)
	case *AstBlock:
		p.printBlockBody(x)
	}
}

// printCallArg renders one call argument. Binary operands are written
// without grouping parens: inside an argument list a '(' nested in an
// argument cannot be re-parsed (its ')' ends the list), and the
// operand structure is reconstructed by operator precedence alone.
func (p *pp) printCallArg(e Expr) {
	if x, ok := e.(*BinExpr); ok {
		p.printCallArg(x.L)
		p.write(" " + x.Op.String() + " ")
		p.printCallArg(x.R)
		return
	}
	p.printExpr(e)
}

// printConditional renders an if-chain starting at the current position;
// the caller has already emitted padding for the first line.
func (p *pp) printConditional(c *Conditional) {
	p.write("if ")
	p.printExpr(c.Cond)
	p.write(":")
	p.nl()
	p.printBlockBody(c.IfBlock)

	if c.Else == nil {
		return
	}
	p.pad()
	switch el := c.Else.(type) {
	case *Conditional:
		p.write("else ")
		p.printConditional(el)
	case *AstBlock:
		p.write("else:")
		p.nl()
		p.printBlockBody(el)
	}
}

// printBlockBody renders the statements of a nested block one level
// deeper, one statement per line, with no trailing padding.
func (p *pp) printBlockBody(b *AstBlock) {
	p.out.withIndent(func() {
		for _, stmt := range b.Stmts {
			p.printStmtLine(stmt)
		}
	})
}

func typeName(t TypeAnnotation) string {
	switch x := t.(type) {
	case TypeInt:
		return "int"
	case TypeStr:
		return "str"
	case TypeBool:
		return "bool"
	case TypeDynamic:
		return x.Name
	case TypeMut:
		return "mut " + typeName(x.Inner)
	}
	return ""
}

func (p *pp) printTypedIdent(t *TypedIdent) {
	p.write(t.Name + ": " + typeName(t.Type))
}

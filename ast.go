// ast.go — the Toki syntax tree.
//
// Each syntactic category is a closed union: Expr, Stmt, Literal (the
// literal expressions reused by parameter lists and named call arguments),
// and TypeAnnotation. Nodes own their children exclusively; identifier and
// string text is sliced from the source buffer the tree was parsed from,
// so the tree is valid only as long as that buffer.
package toki

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
}

// Literal is the subset of expressions that may name a call argument and
// that parameter and field lists are built from.
type Literal interface {
	Expr
	literalNode()
}

/* ---------- literal expressions ---------- */

// Ident is a plain identifier reference.
type Ident struct {
	Name string
}

// IntLit is a 32-bit integer literal.
type IntLit struct {
	Value int32
}

// StrLit is a string literal; Value excludes the quotes.
type StrLit struct {
	Value string
}

// TypedIdent is an identifier with a type annotation (`name: type`).
type TypedIdent struct {
	Name string
	Type TypeAnnotation
}

func (*Ident) exprNode() {}
func (*IntLit) exprNode() {}
func (*StrLit) exprNode() {}
func (*TypedIdent) exprNode() {}

func (*Ident) literalNode() {}
func (*IntLit) literalNode() {}
func (*StrLit) literalNode() {}
func (*TypedIdent) literalNode() {}

/* ---------- compound expressions ---------- */

// BinExpr is a binary operation over two owned sub-expressions.
type BinExpr struct {
	L  Expr
	Op Operator
	R  Expr
}

// Conditional is an `if`/`else` expression. Else is nil when there is no
// else branch; otherwise it is either a nested *Conditional (an `else if`
// chain) or a plain *AstBlock, so the whole chain is one right-nested
// expression tree.
type Conditional struct {
	Cond    Expr
	IfBlock *AstBlock
	Else    Expr
}

// AstBlock is an ordered sequence of statements. HasSemi is false exactly
// when the block ends in a semicolon-less tail expression whose value is
// the block's value.
type AstBlock struct {
	Indent  int
	Stmts   []Stmt
	HasSemi bool
}

// CallArg is one call argument, optionally named (`name = expr`).
type CallArg struct {
	Name  Expr // nil, or the literal naming the argument
	Value Expr
}

// CallExpr applies a callee expression to an ordered argument list.
type CallExpr struct {
	Called Expr
	Args   []CallArg
}

// AttrAccess is `base.attribute`.
type AttrAccess struct {
	Base Expr
	Attr string
}

func (*BinExpr) exprNode() {}
func (*Conditional) exprNode() {}
func (*AstBlock) exprNode() {}
func (*CallExpr) exprNode() {}
func (*AttrAccess) exprNode() {}

/* ---------- statements ---------- */

// ExprStmt wraps an expression used as a statement. HasSemi records
// whether the statement was terminated; for conditional and block
// expressions it is derived from the block contents rather than from a
// textual semicolon (see exprHasSemi in parser.go).
type ExprStmt struct {
	X       Expr
	HasSemi bool
}

// ReturnStmt is `return EXPR;`.
type ReturnStmt struct {
	Value Expr
}

// Assignment is `target = EXPR;`. Target is a primary expression, e.g. an
// identifier, a typed identifier, or an attribute access.
type Assignment struct {
	Target Expr
	Value  Expr
}

// FnDef is a function definition with typed parameters and a body block.
type FnDef struct {
	Name       string
	Params     []*TypedIdent
	Body       *AstBlock
	ReturnType TypeAnnotation
}

// StructDef is a struct definition: typed fields followed by methods.
type StructDef struct {
	Name    string
	Fields  []*TypedIdent
	Methods []*FnDef
}

func (*ExprStmt) stmtNode() {}
func (*ReturnStmt) stmtNode() {}
func (*Assignment) stmtNode() {}
func (*FnDef) stmtNode() {}
func (*StructDef) stmtNode() {}

/* ---------- type annotations ---------- */

// TypeAnnotation is the closed union of type syntax: the builtin types,
// a named not-yet-resolved type, and a single optional Mut wrapper.
type TypeAnnotation interface {
	typeNode()
}

type TypeInt struct{}
type TypeStr struct{}
type TypeBool struct{}

// TypeDynamic is a named type left for later resolution.
type TypeDynamic struct {
	Name string
}

// TypeMut marks the inner type mutable. At most one wrapper is permitted
// per annotation; the parser rejects `mut mut T`.
type TypeMut struct {
	Inner TypeAnnotation
}

func (TypeInt) typeNode() {}
func (TypeStr) typeNode() {}
func (TypeBool) typeNode() {}
func (TypeDynamic) typeNode() {}
func (TypeMut) typeNode() {}

// builtinTypes maps type names with dedicated annotation variants.
var builtinTypes = map[string]TypeAnnotation{
	"int":  TypeInt{},
	"str":  TypeStr{},
	"bool": TypeBool{},
}

// typeFromName resolves a type name, falling back to a dynamic type.
func typeFromName(name string) TypeAnnotation {
	if t, ok := builtinTypes[name]; ok {
		return t
	}
	return TypeDynamic{Name: name}
}

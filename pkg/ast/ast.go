// Package ast provides a typed view of a module, built by recognizing
// literal.Value trees produced by the reader.
package ast

import (
	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// Import is one (module, name) import pair.
type Import struct {
	Module symbol.Symbol
	Name   symbol.Symbol
}

// Attr is a module attribute: a bare symbol, or a `(sym rest…)` form whose
// cdr (as a literal) is the attr's value.
type Attr struct {
	Name  symbol.Symbol
	Value literal.Value // nil for a bare attribute
}

// NoPrelude is the one reserved module attribute: it suppresses automatic
// std/prelude injection.
const NoPrelude = "no-prelude"

// HasNoPrelude reports whether a module carries the no-prelude attribute.
func HasNoPrelude(attrs []Attr) bool {
	for _, a := range attrs {
		if a.Name.String() == NoPrelude {
			return true
		}
	}
	return false
}

// Module is a parsed module: name, its unique exports, its unique import
// pairs, attributes, and declarations in source order.
type Module struct {
	Name    symbol.Symbol
	Exports []symbol.Symbol
	Imports []Import
	Attrs   []Attr
	Body    []Decl
}

// Decl is either a Def or a Defn.
type Decl interface {
	declNode()
	Name() symbol.Symbol
}

// Def binds a single name to an expression.
type Def struct {
	DeclName symbol.Symbol
	Value    Expr
}

func (*Def) declNode()            {}
func (d *Def) Name() symbol.Symbol { return d.DeclName }

// Defn binds a name to a function of params, a body of leading statements,
// and a tail expression. Params contain no duplicates.
type Defn struct {
	DeclName symbol.Symbol
	Params   []symbol.Symbol
	Body     []Expr
	Tail     Expr
}

func (*Defn) declNode()            {}
func (d *Defn) Name() symbol.Symbol { return d.DeclName }

// Expr is one of Call, If, Lambda, Literal, Progn, Var, Vector, or Decl.
type Expr interface {
	exprNode()
}

type CallExpr struct {
	Func Expr
	Args []Expr
}

func (*CallExpr) exprNode() {}

type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*IfExpr) exprNode() {}

// LambdaExpr is a function literal. Name is non-nil only for
// intrinsics:named-fn; it is carried through as the closure's diagnostic
// name and is not bound in the lambda's own body.
type LambdaExpr struct {
	Name   *symbol.Symbol
	Params []symbol.Symbol
	Body   []Expr
	Tail   Expr
}

func (*LambdaExpr) exprNode() {}

type LiteralExpr struct {
	Value literal.Value
}

func (*LiteralExpr) exprNode() {}

// PrognExpr sequences a block: every Body expression is evaluated and
// discarded, then Tail's value is returned. An empty progn is
// Progn(nil, Literal(Nil)).
type PrognExpr struct {
	Body []Expr
	Tail Expr
}

func (*PrognExpr) exprNode() {}

type VarExpr struct {
	Name symbol.Symbol
}

func (*VarExpr) exprNode() {}

type VectorExpr struct {
	Elems []Expr
}

func (*VectorExpr) exprNode() {}

// DeclExpr is a declaration used in expression (statement) position; it
// reduces away during ANF lowering.
type DeclExpr struct {
	Decl Decl
}

func (*DeclExpr) exprNode() {}

// Package anf implements A-Normal Form: an intermediate representation
// that separates atomic evaluation (values available without touching the
// continuation stack) from complex evaluation (control transfers), as a
// step on the way from ast.Module to a flat, linkable program.
package anf

import (
	"github.com/oftac-lang/oftac/pkg/ast"
	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// Module is an ANF-lowered module: its declarations no longer contain
// Decl-in-expression-position forms, but imports/exports/attrs survive
// unchanged from the ast.Module it was built from.
type Module struct {
	Name    symbol.Symbol
	Exports []symbol.Symbol
	Imports []ast.Import
	Attrs   []ast.Attr
	Body    []Decl
}

// Decl is a Def or a Defn.
type Decl interface {
	declNode()
	Name() symbol.Symbol
}

type Def struct {
	DeclName symbol.Symbol
	Value    Expr
}

func (*Def) declNode()             {}
func (d *Def) Name() symbol.Symbol { return d.DeclName }

type Defn struct {
	DeclName symbol.Symbol
	Params   []symbol.Symbol
	Body     Expr
}

func (*Defn) declNode()             {}
func (d *Defn) Name() symbol.Symbol { return d.DeclName }

// Expr is the root expression type: it may manipulate the continuation
// stack (Let pushes a frame, Seq pushes a frame) or delegate to an AExpr or
// CExpr.
type Expr interface {
	exprNode()
}

// AExprNode wraps an AExpr as an Expr.
type AExprNode struct {
	AExpr AExpr
}

func (*AExprNode) exprNode() {}

// CExprNode wraps a CExpr as an Expr.
type CExprNode struct {
	CExpr CExpr
}

func (*CExprNode) exprNode() {}

// Let evaluates Bound, binds its result under Name in scope of Body.
type Let struct {
	Name  symbol.Symbol
	Bound Expr
	Body  Expr
}

func (*Let) exprNode() {}

// Seq evaluates Left for effect, discards its value, then evaluates Right.
type Seq struct {
	Left  Expr
	Right Expr
}

func (*Seq) exprNode() {}

// CExpr may replace the current continuation and have side effects, but may
// not itself push to or pop from the continuation stack.
type CExpr interface {
	cexprNode()
}

type Call struct {
	Func AExpr
	Args []AExpr
}

func (*Call) cexprNode() {}

type If struct {
	Cond AExpr
	Then Expr
	Else Expr
}

func (*If) cexprNode() {}

// LetRec binds a batch of lambda-valued names, each visible in every other
// binding's body as well as in Body.
type LetRec struct {
	Bindings []LetRecBinding
	Body     Expr
}

func (*LetRec) cexprNode() {}

// LetRecBinding pairs a bound name with its right-hand side. Bound is
// produced by lowering a Defn and so is always a *Lambda in practice, but
// the linker (pkg/flatanf) enforces that rather than this package, to
// keep the "no bare Var aliases in a LetRec" check at the point where the
// rest of link-time validation happens.
type LetRecBinding struct {
	Name  symbol.Symbol
	Bound AExpr
}

// AExpr must evaluate to a value immediately, without side effects and
// without touching the continuation stack.
type AExpr interface {
	aexprNode()
}

// Lambda is a function literal. Name is non-nil for intrinsics:named-fn
// lambdas and for Defn right-hand sides, where it serves diagnostics.
type Lambda struct {
	Name   *symbol.Symbol
	Params []symbol.Symbol
	Body   Expr
}

func (*Lambda) aexprNode() {}

type Literal struct {
	Value literal.Value
}

func (*Literal) aexprNode() {}

// Var is a pre-link variable reference, resolved to Global/Local by the
// linker (pkg/flatanf).
type Var struct {
	Name symbol.Symbol
}

func (*Var) aexprNode() {}

type Vector struct {
	Elems []AExpr
}

func (*Vector) aexprNode() {}

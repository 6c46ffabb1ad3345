// Package flatanf flattens a linked set of anf.Modules into one Program:
// variables are resolved to either a De Bruijn-indexed Local or a qualified
// Global, so the CESK interpreter (pkg/interp) never needs a name
// environment at run time.
package flatanf

import (
	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// Program is the result of linking: its Decls must be evaluated in order at
// program start (each may reference globals defined by an earlier Decl or
// by an intrinsic), and Intrinsics names every built-in the program
// actually references.
type Program struct {
	Decls      []ProgramDecl
	Intrinsics []symbol.Symbol
}

// ProgramDecl is one top-level binding, named by its module-qualified
// global name.
type ProgramDecl struct {
	Name symbol.Symbol
	Expr Expr
}

// Expr is the root expression type.
type Expr interface {
	exprNode()
}

type AExprNode struct {
	AExpr AExpr
}

func (*AExprNode) exprNode() {}

type CExprNode struct {
	CExpr CExpr
}

func (*CExprNode) exprNode() {}

type Let struct {
	Bound Expr
	Body  Expr
}

func (*Let) exprNode() {}

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

// LetRec binds a batch of lambdas that may call each other and are
// visible throughout Body.
type LetRec struct {
	Bindings []LetRecBinding
	Body     Expr
}

func (*LetRec) cexprNode() {}

// LetRecBinding is exactly what the bytecode's 0x04 LetRec form stores
// inline per binding: a diagnostic name, its arity, and its body -- an
// unwrapped Lambda, never reified as a separate AExpr value.
type LetRecBinding struct {
	Name symbol.Symbol
	Argn int
	Body Expr
}

// AExpr must evaluate to a value immediately, without side effects and
// without touching the continuation stack.
type AExpr interface {
	aexprNode()
}

// Global is a qualified reference, "module:name", resolved at link time or
// supplied directly by an already-qualified ANF Var.
type Global struct {
	Name symbol.Symbol
}

func (*Global) aexprNode() {}

// Lambda is a function literal. Name is nil for an anonymous lambda
// (intrinsics:fn); set for intrinsics:named-fn and for every Defn, purely
// for diagnostics (error messages, <<function NAME>> display).
type Lambda struct {
	Name *symbol.Symbol
	Argn int
	Body Expr
}

func (*Lambda) aexprNode() {}

type Literal struct {
	Value literal.Value
}

func (*Literal) aexprNode() {}

// Local is a De Bruijn index counting up from the top of the environment.
type Local struct {
	Index int
}

func (*Local) aexprNode() {}

type Vector struct {
	Elems []AExpr
}

func (*Vector) aexprNode() {}

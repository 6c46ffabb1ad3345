package anf

import (
	"github.com/oftac-lang/oftac/pkg/ast"
	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// FromModule lowers a parsed module to ANF.
func FromModule(m *ast.Module) (*Module, error) {
	body := make([]Decl, 0, len(m.Body))
	for _, d := range m.Body {
		decl, err := declFromAST(d)
		if err != nil {
			return nil, err
		}
		body = append(body, decl)
	}
	return &Module{
		Name:    m.Name,
		Exports: m.Exports,
		Imports: m.Imports,
		Attrs:   m.Attrs,
		Body:    body,
	}, nil
}

func declFromAST(d ast.Decl) (Decl, error) {
	switch d := d.(type) {
	case *ast.Def:
		return &Def{DeclName: d.DeclName, Value: exprFromAST(d.Value)}, nil
	case *ast.Defn:
		return &Defn{
			DeclName: d.DeclName,
			Params:   d.Params,
			Body:     convertBlock(d.Body, d.Tail),
		}, nil
	default:
		panic("anf: unknown ast.Decl")
	}
}

// ctxBinding is one pending let-binding: a fresh name standing for an
// expression too complex to appear where an AExpr is required.
type ctxBinding struct {
	name  symbol.Symbol
	bound Expr
}

// applyContext wraps body in a Let for each pending binding, innermost
// binding (pushed last) closest to body.
func applyContext(body Expr, ctx []ctxBinding) Expr {
	for i := len(ctx) - 1; i >= 0; i-- {
		body = &Let{Name: ctx[i].name, Bound: ctx[i].bound, Body: body}
	}
	return body
}

// tryAExpr attempts to view expr directly as an AExpr, without introducing
// a fresh binding.
func tryAExpr(expr ast.Expr) (AExpr, bool) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return &Literal{Value: e.Value}, true
	case *ast.VarExpr:
		return &Var{Name: e.Name}, true
	case *ast.LambdaExpr:
		return &Lambda{Name: e.Name, Params: e.Params, Body: convertBlock(e.Body, e.Tail)}, true
	default:
		return nil, false
	}
}

// intoAExpr coerces expr to an AExpr, threading ctx. On failure to coerce
// directly, it lowers expr fully, binds it to a fresh gensym pushed onto
// ctx, and returns a reference to that gensym.
func intoAExpr(expr ast.Expr, ctx *[]ctxBinding) AExpr {
	if a, ok := tryAExpr(expr); ok {
		return a
	}
	name := symbol.Gensym()
	*ctx = append(*ctx, ctxBinding{name: name, bound: exprFromAST(expr)})
	return &Var{Name: name}
}

// exprFromAST lowers one full AST expression to an ANF Expr.
func exprFromAST(expr ast.Expr) Expr {
	switch e := expr.(type) {
	case *ast.CallExpr:
		var ctx []ctxBinding
		fn := intoAExpr(e.Func, &ctx)
		args := make([]AExpr, 0, len(e.Args))
		for _, a := range e.Args {
			args = append(args, intoAExpr(a, &ctx))
		}
		return applyContext(&CExprNode{CExpr: &Call{Func: fn, Args: args}}, ctx)

	case *ast.IfExpr:
		var ctx []ctxBinding
		c := intoAExpr(e.Cond, &ctx)
		then := exprFromAST(e.Then)
		els := exprFromAST(e.Else)
		return applyContext(&CExprNode{CExpr: &If{Cond: c, Then: then, Else: els}}, ctx)

	case *ast.LambdaExpr:
		a, _ := tryAExpr(e)
		return &AExprNode{AExpr: a}

	case *ast.LiteralExpr:
		return &AExprNode{AExpr: &Literal{Value: e.Value}}

	case *ast.VarExpr:
		return &AExprNode{AExpr: &Var{Name: e.Name}}

	case *ast.VectorExpr:
		var ctx []ctxBinding
		elems := make([]AExpr, 0, len(e.Elems))
		for _, el := range e.Elems {
			elems = append(elems, intoAExpr(el, &ctx))
		}
		return applyContext(&AExprNode{AExpr: &Vector{Elems: elems}}, ctx)

	case *ast.PrognExpr:
		return convertBlock(e.Body, e.Tail)

	case *ast.DeclExpr:
		switch d := e.Decl.(type) {
		case *ast.Def:
			// A def in tail position has no value besides its effect.
			return &Seq{
				Left:  exprFromAST(d.Value),
				Right: &AExprNode{AExpr: &Literal{Value: literal.Nil{}}},
			}
		case *ast.Defn:
			// A defn in tail position has no effect.
			return &AExprNode{AExpr: &Literal{Value: literal.Nil{}}}
		default:
			panic("anf: unknown ast.Decl in expression position")
		}

	default:
		panic("anf: unknown ast.Expr")
	}
}

// convertBlock lowers a lexical block (a sequence of statements followed by
// a tail expression) into a single ANF Expr. It walks body in reverse,
// stashing contiguous Defns into a pending batch that is flushed as one
// LetRec as soon as a non-Defn statement is reached, so that a run of
// sibling defn forms becomes one mutually-recursive binding group scoped
// over everything that follows it in the block.
func convertBlock(body []ast.Expr, tail ast.Expr) Expr {
	anf := exprFromAST(tail)
	var lambdas []LetRecBinding

	flush := func() {
		if len(lambdas) > 0 {
			anf = &CExprNode{CExpr: &LetRec{Bindings: lambdas, Body: anf}}
			lambdas = nil
		}
	}

	for i := len(body) - 1; i >= 0; i-- {
		stmt := body[i]
		if declExpr, ok := stmt.(*ast.DeclExpr); ok {
			if defn, ok := declExpr.Decl.(*ast.Defn); ok {
				name := defn.DeclName
				lambdas = append(lambdas, LetRecBinding{
					Name:  name,
					Bound: &Lambda{Name: &name, Params: defn.Params, Body: convertBlock(defn.Body, defn.Tail)},
				})
				continue
			}
			flush()
			def := declExpr.Decl.(*ast.Def)
			anf = &Let{Name: def.DeclName, Bound: exprFromAST(def.Value), Body: anf}
			continue
		}
		flush()
		anf = &Seq{Left: exprFromAST(stmt), Right: anf}
	}
	flush()
	return anf
}

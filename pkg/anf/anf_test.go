package anf_test

import (
	"testing"

	"github.com/oftac-lang/oftac/pkg/anf"
	"github.com/oftac-lang/oftac/pkg/ast"
	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

func sym(name string) symbol.Symbol { return symbol.Intern(name) }

func fixnum(n int64) *ast.LiteralExpr { return &ast.LiteralExpr{Value: literal.Fixnum(n)} }

func TestCallWithComplexArgBindsViaLet(t *testing.T) {
	// (f (g 1) 2)
	inner := &ast.CallExpr{Func: &ast.VarExpr{Name: sym("g")}, Args: []ast.Expr{fixnum(1)}}
	call := &ast.CallExpr{Func: &ast.VarExpr{Name: sym("f")}, Args: []ast.Expr{inner, fixnum(2)}}

	mod := &ast.Module{Body: []ast.Decl{&ast.Def{DeclName: sym("x"), Value: call}}}
	out, err := anf.FromModule(mod)
	if err != nil {
		t.Fatalf("FromModule: %v", err)
	}
	def := out.Body[0].(*anf.Def)
	let, ok := def.Value.(*anf.Let)
	if !ok {
		t.Fatalf("Value = %T, want *Let", def.Value)
	}
	cnode, ok := let.Body.(*anf.CExprNode)
	if !ok {
		t.Fatalf("Let.Body = %T, want *CExprNode", let.Body)
	}
	callC, ok := cnode.CExpr.(*anf.Call)
	if !ok {
		t.Fatalf("CExpr = %T, want *Call", cnode.CExpr)
	}
	if len(callC.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2", len(callC.Args))
	}
	v, ok := callC.Args[0].(*anf.Var)
	if !ok || v.Name != let.Name {
		t.Errorf("Args[0] = %v, want Var(%v)", callC.Args[0], let.Name)
	}
	lit, ok := callC.Args[1].(*anf.Literal)
	if !ok || lit.Value.(literal.Fixnum) != 2 {
		t.Errorf("Args[1] = %v, want Literal(2)", callC.Args[1])
	}
}

func TestCallWithAtomicArgsNeedsNoLet(t *testing.T) {
	// (f 1 2): no argument needs a fresh binding.
	call := &ast.CallExpr{Func: &ast.VarExpr{Name: sym("f")}, Args: []ast.Expr{fixnum(1), fixnum(2)}}
	mod := &ast.Module{Body: []ast.Decl{&ast.Def{DeclName: sym("x"), Value: call}}}
	out, err := anf.FromModule(mod)
	if err != nil {
		t.Fatalf("FromModule: %v", err)
	}
	def := out.Body[0].(*anf.Def)
	if _, ok := def.Value.(*anf.CExprNode); !ok {
		t.Fatalf("Value = %T, want *CExprNode (no Let wrapper)", def.Value)
	}
}

func TestIfLowersConditionAtomically(t *testing.T) {
	ifExpr := &ast.IfExpr{
		Cond: &ast.CallExpr{Func: &ast.VarExpr{Name: sym("p")}, Args: nil},
		Then: fixnum(1),
		Else: fixnum(2),
	}
	mod := &ast.Module{Body: []ast.Decl{&ast.Def{DeclName: sym("x"), Value: ifExpr}}}
	out, err := anf.FromModule(mod)
	if err != nil {
		t.Fatalf("FromModule: %v", err)
	}
	def := out.Body[0].(*anf.Def)
	let, ok := def.Value.(*anf.Let)
	if !ok {
		t.Fatalf("Value = %T, want *Let (condition bound via gensym)", def.Value)
	}
	cnode := let.Body.(*anf.CExprNode)
	ifC, ok := cnode.CExpr.(*anf.If)
	if !ok {
		t.Fatalf("CExpr = %T, want *If", cnode.CExpr)
	}
	if v, ok := ifC.Cond.(*anf.Var); !ok || v.Name != let.Name {
		t.Errorf("Cond = %v, want Var(%v)", ifC.Cond, let.Name)
	}
}

func TestVectorPreservesElementOrder(t *testing.T) {
	vec := &ast.VectorExpr{Elems: []ast.Expr{fixnum(1), fixnum(2), fixnum(3)}}
	mod := &ast.Module{Body: []ast.Decl{&ast.Def{DeclName: sym("x"), Value: vec}}}
	out, err := anf.FromModule(mod)
	if err != nil {
		t.Fatalf("FromModule: %v", err)
	}
	def := out.Body[0].(*anf.Def)
	node := def.Value.(*anf.AExprNode)
	v := node.AExpr.(*anf.Vector)
	for i, want := range []int64{1, 2, 3} {
		lit := v.Elems[i].(*anf.Literal)
		if lit.Value.(literal.Fixnum) != literal.Fixnum(want) {
			t.Errorf("Elems[%d] = %v, want %d", i, lit.Value, want)
		}
	}
}

func TestConvertBlockGroupsContiguousDefns(t *testing.T) {
	// { defn even?; defn odd?; (print 1); 42 }
	evenDecl := &ast.DeclExpr{Decl: &ast.Defn{DeclName: sym("even?"), Params: []symbol.Symbol{sym("n")}, Tail: fixnum(1)}}
	oddDecl := &ast.DeclExpr{Decl: &ast.Defn{DeclName: sym("odd?"), Params: []symbol.Symbol{sym("n")}, Tail: fixnum(1)}}
	printCall := &ast.CallExpr{Func: &ast.VarExpr{Name: sym("print")}, Args: []ast.Expr{fixnum(1)}}

	defn := &ast.Defn{
		DeclName: sym("main"),
		Params:   nil,
		Body:     []ast.Expr{evenDecl, oddDecl, printCall},
		Tail:     fixnum(42),
	}
	mod := &ast.Module{Body: []ast.Decl{defn}}
	out, err := anf.FromModule(mod)
	if err != nil {
		t.Fatalf("FromModule: %v", err)
	}
	main := out.Body[0].(*anf.Defn)
	letrec, ok := main.Body.(*anf.CExprNode)
	if !ok {
		t.Fatalf("Body = %T, want *CExprNode", main.Body)
	}
	lr, ok := letrec.CExpr.(*anf.LetRec)
	if !ok {
		t.Fatalf("CExpr = %T, want *LetRec", letrec.CExpr)
	}
	if len(lr.Bindings) != 2 {
		t.Fatalf("len(Bindings) = %d, want 2 (even? and odd? grouped)", len(lr.Bindings))
	}
	seq, ok := lr.Body.(*anf.Seq)
	if !ok {
		t.Fatalf("Body = %T, want *Seq (print statement)", lr.Body)
	}
	if _, ok := seq.Right.(*anf.AExprNode); !ok {
		t.Errorf("Right = %T, want tail literal 42", seq.Right)
	}
}

func TestDefTailBecomesSeqWithNil(t *testing.T) {
	declExpr := &ast.DeclExpr{Decl: &ast.Def{DeclName: sym("y"), Value: fixnum(1)}}
	mod := &ast.Module{Body: []ast.Decl{&ast.Defn{DeclName: sym("f"), Tail: declExpr}}}
	out, err := anf.FromModule(mod)
	if err != nil {
		t.Fatalf("FromModule: %v", err)
	}
	f := out.Body[0].(*anf.Defn)
	seq, ok := f.Body.(*anf.Seq)
	if !ok {
		t.Fatalf("Body = %T, want *Seq", f.Body)
	}
	nilNode, ok := seq.Right.(*anf.AExprNode)
	if !ok {
		t.Fatalf("Right = %T, want *AExprNode(Literal Nil)", seq.Right)
	}
	lit := nilNode.AExpr.(*anf.Literal)
	if _, ok := lit.Value.(literal.Nil); !ok {
		t.Errorf("Right literal = %v, want Nil", lit.Value)
	}
}

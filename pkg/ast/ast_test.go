package ast_test

import (
	"testing"

	"github.com/oftac-lang/oftac/pkg/ast"
	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/reader"
)

func parseModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	lits, err := reader.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll(%q): %v", src, err)
	}
	m, err := ast.ModuleFromValues("<test>", lits)
	if err != nil {
		t.Fatalf("ModuleFromValues(%q): %v", src, err)
	}
	return m
}

func TestModuleFromValuesHeader(t *testing.T) {
	m := parseModule(t, `(module main [main])`)
	if m.Name.String() != "main" {
		t.Errorf("Name = %q, want main", m.Name.String())
	}
	if len(m.Exports) != 1 || m.Exports[0].String() != "main" {
		t.Errorf("Exports = %v, want [main]", m.Exports)
	}
	if ast.HasNoPrelude(m.Attrs) {
		t.Errorf("HasNoPrelude = true, want false")
	}
}

func TestModuleFromValuesNoPrelude(t *testing.T) {
	m := parseModule(t, `(module main [] no-prelude)`)
	if !ast.HasNoPrelude(m.Attrs) {
		t.Errorf("HasNoPrelude = false, want true")
	}
}

func TestModuleFromValuesUnknownAttr(t *testing.T) {
	lits, err := reader.ReadAll(`(module main [] bogus-attr)`)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	_, err = ast.ModuleFromValues("<test>", lits)
	if _, ok := err.(*ast.ErrUnknownAttr); !ok {
		t.Fatalf("err = %v, want *ErrUnknownAttr", err)
	}
}

func TestModuleFromValuesNoModuleForm(t *testing.T) {
	lits, err := reader.ReadAll(`(intrinsics:def x 1)`)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	_, err = ast.ModuleFromValues("<test>", lits)
	if _, ok := err.(*ast.ErrNoModuleForm); !ok {
		t.Fatalf("err = %v, want *ErrNoModuleForm", err)
	}
}

func TestModuleFromValuesImports(t *testing.T) {
	m := parseModule(t, `
		(module main [main])
		(import std/prelude + - list)
		(intrinsics:def x 1)
	`)
	if len(m.Imports) != 3 {
		t.Fatalf("len(Imports) = %d, want 3", len(m.Imports))
	}
	for _, imp := range m.Imports {
		if imp.Module.String() != "std/prelude" {
			t.Errorf("Imports[_].Module = %q, want std/prelude", imp.Module.String())
		}
	}
	if len(m.Body) != 1 {
		t.Fatalf("len(Body) = %d, want 1", len(m.Body))
	}
}

func TestDeclFromValueDef(t *testing.T) {
	m := parseModule(t, `(module main [])(intrinsics:def x 42)`)
	def, ok := m.Body[0].(*ast.Def)
	if !ok {
		t.Fatalf("Body[0] = %T, want *Def", m.Body[0])
	}
	lit, ok := def.Value.(*ast.LiteralExpr)
	if !ok {
		t.Fatalf("def.Value = %T, want *LiteralExpr", def.Value)
	}
	if n, ok := lit.Value.(literal.Fixnum); !ok || n != 42 {
		t.Errorf("def.Value = %v, want Fixnum(42)", lit.Value)
	}
}

func TestDeclFromValueDefnDuplicateParams(t *testing.T) {
	lits, err := reader.ReadAll(`(module main [])(intrinsics:defn f (x x) x)`)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	_, err = ast.ModuleFromValues("<test>", lits)
	if _, ok := err.(*ast.ErrInvalidDecl); !ok {
		t.Fatalf("err = %v, want *ErrInvalidDecl", err)
	}
}

func TestExprFromValueIf(t *testing.T) {
	m := parseModule(t, `(module main [])(intrinsics:def x (if 1 2 3))`)
	def := m.Body[0].(*ast.Def)
	ifExpr, ok := def.Value.(*ast.IfExpr)
	if !ok {
		t.Fatalf("def.Value = %T, want *IfExpr", def.Value)
	}
	if _, ok := ifExpr.Else.(*ast.LiteralExpr); !ok {
		t.Fatalf("Else = %T, want *LiteralExpr", ifExpr.Else)
	}
}

func TestExprFromValueIfNoElse(t *testing.T) {
	m := parseModule(t, `(module main [])(intrinsics:def x (if 1 2))`)
	def := m.Body[0].(*ast.Def)
	ifExpr := def.Value.(*ast.IfExpr)
	lit, ok := ifExpr.Else.(*ast.LiteralExpr)
	if !ok {
		t.Fatalf("Else = %T, want *LiteralExpr", ifExpr.Else)
	}
	if _, ok := lit.Value.(literal.Nil); !ok {
		t.Errorf("Else value = %v, want Nil", lit.Value)
	}
}

func TestExprFromValueQuote(t *testing.T) {
	m := parseModule(t, `(module main [])(intrinsics:def x (quote (a b c)))`)
	def := m.Body[0].(*ast.Def)
	lit, ok := def.Value.(*ast.LiteralExpr)
	if !ok {
		t.Fatalf("def.Value = %T, want *LiteralExpr", def.Value)
	}
	elems, ok := literal.AsList(lit.Value)
	if !ok || len(elems) != 3 {
		t.Fatalf("quoted value = %v, want a 3-element list", lit.Value)
	}
}

func TestExprFromValueEmptyProgn(t *testing.T) {
	m := parseModule(t, `(module main [])(intrinsics:def x (progn))`)
	def := m.Body[0].(*ast.Def)
	progn, ok := def.Value.(*ast.PrognExpr)
	if !ok {
		t.Fatalf("def.Value = %T, want *PrognExpr", def.Value)
	}
	if len(progn.Body) != 0 {
		t.Errorf("len(Body) = %d, want 0", len(progn.Body))
	}
	lit, ok := progn.Tail.(*ast.LiteralExpr)
	if !ok {
		t.Fatalf("Tail = %T, want *LiteralExpr", progn.Tail)
	}
	if _, ok := lit.Value.(literal.Nil); !ok {
		t.Errorf("Tail value = %v, want Nil", lit.Value)
	}
}

func TestExprFromValueFn(t *testing.T) {
	m := parseModule(t, `(module main [])(intrinsics:def f (intrinsics:fn (a b) a b))`)
	def := m.Body[0].(*ast.Def)
	fn, ok := def.Value.(*ast.LambdaExpr)
	if !ok {
		t.Fatalf("def.Value = %T, want *LambdaExpr", def.Value)
	}
	if fn.Name != nil {
		t.Errorf("Name = %v, want nil", *fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("len(Params) = %d, want 2", len(fn.Params))
	}
	if len(fn.Body) != 1 {
		t.Errorf("len(Body) = %d, want 1", len(fn.Body))
	}
}

func TestExprFromValueNamedFn(t *testing.T) {
	m := parseModule(t, `(module main [])(intrinsics:def f (intrinsics:named-fn self (n) (self n)))`)
	def := m.Body[0].(*ast.Def)
	fn, ok := def.Value.(*ast.LambdaExpr)
	if !ok {
		t.Fatalf("def.Value = %T, want *LambdaExpr", def.Value)
	}
	if fn.Name == nil || fn.Name.String() != "self" {
		t.Fatalf("Name = %v, want self", fn.Name)
	}
}

func TestExprFromValueFnDuplicateParams(t *testing.T) {
	lits, err := reader.ReadAll(`(module main [])(intrinsics:def f (intrinsics:fn (x x) x))`)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	_, err = ast.ModuleFromValues("<test>", lits)
	if _, ok := err.(*ast.ErrInvalidDecl); !ok {
		t.Fatalf("err = %v, want *ErrInvalidDecl", err)
	}
}

func TestExprFromValueCall(t *testing.T) {
	m := parseModule(t, `(module main [])(intrinsics:def x (+ 1 2))`)
	def := m.Body[0].(*ast.Def)
	call, ok := def.Value.(*ast.CallExpr)
	if !ok {
		t.Fatalf("def.Value = %T, want *CallExpr", def.Value)
	}
	if len(call.Args) != 2 {
		t.Errorf("len(Args) = %d, want 2", len(call.Args))
	}
}

func TestExprFromValueVector(t *testing.T) {
	m := parseModule(t, `(module main [])(intrinsics:def x [1 2 3])`)
	def := m.Body[0].(*ast.Def)
	vec, ok := def.Value.(*ast.VectorExpr)
	if !ok {
		t.Fatalf("def.Value = %T, want *VectorExpr", def.Value)
	}
	if len(vec.Elems) != 3 {
		t.Errorf("len(Elems) = %d, want 3", len(vec.Elems))
	}
}

func TestExprFromValueNilIsInvalid(t *testing.T) {
	_, err := ast.ExprFromValue(literal.Nil{})
	if _, ok := err.(*ast.ErrInvalidExpr); !ok {
		t.Fatalf("err = %v, want *ErrInvalidExpr", err)
	}
}

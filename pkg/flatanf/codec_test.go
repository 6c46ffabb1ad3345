package flatanf_test

import (
	"reflect"
	"testing"

	"github.com/oftac-lang/oftac/pkg/flatanf"
	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

func sym(name string) symbol.Symbol { return symbol.Intern(name) }

func samplProgram() *flatanf.Program {
	name := sym("main:helper")
	return &flatanf.Program{
		Intrinsics: []symbol.Symbol{sym("arithmetic:+"), sym("io:print")},
		Decls: []flatanf.ProgramDecl{
			{
				Name: sym("main:helper"),
				Expr: &flatanf.AExprNode{AExpr: &flatanf.Lambda{
					Name: &name,
					Argn: 1,
					Body: &flatanf.CExprNode{CExpr: &flatanf.Call{
						Func: &flatanf.Global{Name: sym("arithmetic:+")},
						Args: []flatanf.AExpr{
							&flatanf.Local{Index: 0},
							&flatanf.Literal{Value: literal.Fixnum(1)},
						},
					}},
				}},
			},
			{
				Name: sym("main:main"),
				Expr: &flatanf.Let{
					Bound: &flatanf.AExprNode{AExpr: &flatanf.Vector{Elems: []flatanf.AExpr{
						&flatanf.Literal{Value: literal.Fixnum(1)},
						&flatanf.Literal{Value: literal.String("two")},
						&flatanf.Literal{Value: literal.Nil{}},
					}}},
					Body: &flatanf.Seq{
						Left: &flatanf.CExprNode{CExpr: &flatanf.If{
							Cond: &flatanf.Local{Index: 0},
							Then: &flatanf.AExprNode{AExpr: &flatanf.Literal{Value: literal.Fixnum(1)}},
							Else: &flatanf.AExprNode{AExpr: &flatanf.Literal{Value: literal.Fixnum(0)}},
						}},
						Right: &flatanf.CExprNode{CExpr: &flatanf.LetRec{
							Bindings: []flatanf.LetRecBinding{
								{Name: sym("even?"), Argn: 1, Body: &flatanf.AExprNode{AExpr: &flatanf.Literal{Value: literal.Nil{}}}},
							},
							Body: &flatanf.AExprNode{AExpr: &flatanf.Literal{Value: literal.Nil{}}},
						}},
					},
				},
			},
		},
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	p := samplProgram()
	data, err := flatanf.Serialize(p)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if string(data[:4]) != "ofta" {
		t.Fatalf("magic = %q, want ofta", data[:4])
	}
	got, err := flatanf.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if len(got.Decls) != len(p.Decls) {
		t.Fatalf("len(Decls) = %d, want %d", len(got.Decls), len(p.Decls))
	}
	for i := range p.Decls {
		if got.Decls[i].Name != p.Decls[i].Name {
			t.Errorf("Decls[%d].Name = %v, want %v", i, got.Decls[i].Name, p.Decls[i].Name)
		}
		if !reflect.DeepEqual(got.Decls[i].Expr, p.Decls[i].Expr) {
			t.Errorf("Decls[%d].Expr mismatch:\n got  %#v\n want %#v", i, got.Decls[i].Expr, p.Decls[i].Expr)
		}
	}
	if len(got.Intrinsics) != len(p.Intrinsics) {
		t.Fatalf("len(Intrinsics) = %d, want %d", len(got.Intrinsics), len(p.Intrinsics))
	}
}

func TestDeserializeRejectsBadMagic(t *testing.T) {
	_, err := flatanf.Deserialize([]byte("xxxx\x00\x00\x00\x00\x00\x00\x00\x00"))
	if _, ok := err.(*flatanf.ErrBadMagic); !ok {
		t.Fatalf("err = %v, want *ErrBadMagic", err)
	}
}

func TestDeserializeRejectsTruncatedInput(t *testing.T) {
	p := samplProgram()
	data, err := flatanf.Serialize(p)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	_, err = flatanf.Deserialize(data[:len(data)-10])
	if err == nil {
		t.Fatal("Deserialize on truncated data: want error, got nil")
	}
}

func TestDeserializeRejectsBadDiscriminant(t *testing.T) {
	// A minimal program with one decl whose Nil literal's tag is corrupted.
	p := &flatanf.Program{
		Decls: []flatanf.ProgramDecl{
			{Name: sym("main:main"), Expr: &flatanf.AExprNode{AExpr: &flatanf.Literal{Value: literal.Nil{}}}},
		},
	}
	data, err := flatanf.Serialize(p)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	// Corrupt the literal's discriminant byte (the very last byte written).
	data[len(data)-1] = 0xff
	_, err = flatanf.Deserialize(data)
	if _, ok := err.(*flatanf.ErrInvalidDiscriminant); !ok {
		t.Fatalf("err = %v, want *ErrInvalidDiscriminant", err)
	}
}

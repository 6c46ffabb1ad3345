package reader_test

import (
	"testing"

	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/reader"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

func mustReadOne(t *testing.T, src string) literal.Value {
	t.Helper()
	lits, err := reader.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll(%q): %v", src, err)
	}
	if len(lits) != 1 {
		t.Fatalf("ReadAll(%q) = %d values, want 1", src, len(lits))
	}
	return lits[0]
}

func TestReadAtoms(t *testing.T) {
	cases := []struct {
		src  string
		want literal.Value
	}{
		{"42", literal.Fixnum(42)},
		{"-17", literal.Fixnum(-17)},
		{"()", literal.Nil{}},
		{`"hello"`, literal.String("hello")},
		{"foo?", literal.Sym(symbol.Intern("foo?"))},
	}
	for _, c := range cases {
		got := mustReadOne(t, c.src)
		if !literal.Equal(got, c.want) {
			t.Errorf("ReadAll(%q) = %v, want %v", c.src, got, c.want)
		}
	}
}

func TestReadStringEscapes(t *testing.T) {
	got := mustReadOne(t, `"a\nb\tc\"d\\e\x41"`)
	want := literal.String("a\nb\tc\"d\\eA")
	if !literal.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestReadBytesLiteral(t *testing.T) {
	got := mustReadOne(t, `b"\x00\x01\xff"`)
	want := literal.Bytes{0x00, 0x01, 0xff}
	if !literal.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestReadNestedListsAndVectors(t *testing.T) {
	got := mustReadOne(t, `(define foo [1 2 (3 4)])`)
	head, tail, ok := literal.AsSHL(got)
	if !ok || head.String() != "define" || len(tail) != 2 {
		t.Fatalf("AsSHL(%v) = %v, %v, %v", got, head, tail, ok)
	}
	vec, ok := tail[1].(literal.Vector)
	if !ok || len(vec) != 3 {
		t.Fatalf("tail[1] = %v (%T), want a 3-element Vector", tail[1], tail[1])
	}
	inner, ok := literal.AsList(vec[2])
	if !ok || len(inner) != 2 {
		t.Fatalf("vec[2] = %v, want a 2-element list", vec[2])
	}
}

func TestReadQuoteSugar(t *testing.T) {
	got := mustReadOne(t, `'foo`)
	head, tail, ok := literal.AsSHL(got)
	if !ok || head.String() != "quote" || len(tail) != 1 {
		t.Fatalf("'foo = %v, want (quote foo)", got)
	}
}

func TestReadAllReturnsMultipleTopLevelForms(t *testing.T) {
	lits, err := reader.ReadAll("1 2 3")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(lits) != 3 {
		t.Fatalf("len(lits) = %d, want 3", len(lits))
	}
}

func TestReadSkipsComments(t *testing.T) {
	lits, err := reader.ReadAll("; a comment\n1 ; trailing\n2")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(lits) != 2 {
		t.Fatalf("len(lits) = %d, want 2", len(lits))
	}
}

func TestReadUnmatchedParenFails(t *testing.T) {
	if _, err := reader.ReadAll("(1 2"); err == nil {
		t.Fatal("ReadAll(unmatched paren): want error, got nil")
	}
}

func TestReadUnexpectedClosingParenFails(t *testing.T) {
	if _, err := reader.ReadAll(")"); err == nil {
		t.Fatal("ReadAll(bare closing paren): want error, got nil")
	}
}

func TestReadInvalidCharacterFails(t *testing.T) {
	if _, err := reader.ReadAll("(1 # 2)"); err == nil {
		t.Fatal("ReadAll with invalid character: want error, got nil")
	}
}

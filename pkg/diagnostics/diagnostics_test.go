package diagnostics_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/oftac-lang/oftac/pkg/ast"
	"github.com/oftac-lang/oftac/pkg/diagnostics"
	"github.com/oftac-lang/oftac/pkg/flatanf"
	"github.com/oftac-lang/oftac/pkg/interp"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

func TestCategorizeBySourceStage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want diagnostics.Category
	}{
		{"ast", &ast.ErrNoModuleForm{Path: "<test>"}, diagnostics.CategorySyntax},
		{"flatanf", &flatanf.ErrNoSuchVar{Name: symbol.Intern("x")}, diagnostics.CategoryLink},
		{"interp runtime", &interp.ErrUnknownGlobal{Name: symbol.Intern("x")}, diagnostics.CategoryRuntime},
		{"interp abort", &interp.Abort{Message: "boom"}, diagnostics.CategoryAbort},
		{"reader heuristic", fmt.Errorf("line 3, column 5: unexpected end of input"), diagnostics.CategoryReader},
		{"general", errors.New("something else"), diagnostics.CategoryGeneral},
	}
	for _, c := range cases {
		if got := diagnostics.Categorize(c.err); got != c.want {
			t.Errorf("%s: Categorize = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFormatIncludesMessage(t *testing.T) {
	f := diagnostics.New()
	err := &interp.ErrUnknownGlobal{Name: symbol.Intern("foo")}
	out := f.Format(err)
	if out == "" {
		t.Fatal("Format returned empty string")
	}
	if !strings.Contains(out, "foo") {
		t.Fatalf("Format = %q, want it to include the error message naming foo", out)
	}
}

func TestFormatExitAbortOmitsErrorFraming(t *testing.T) {
	f := diagnostics.New()
	code := 2
	out := f.Format(&interp.Abort{Message: "exit", ExitCode: &code})
	if out == "" {
		t.Fatal("Format returned empty string")
	}
	if strings.Contains(out, "Error") {
		t.Fatalf("Format = %q, want no Error framing for an exit abort", out)
	}
}

func TestFormatArityMismatchNamesAnonymousClosures(t *testing.T) {
	f := diagnostics.New()
	out := f.FormatArityMismatch(&interp.ErrArityMismatch{Want: 2, Got: 1})
	if out == "" {
		t.Fatal("FormatArityMismatch returned empty string")
	}
	if !strings.Contains(out, "<anonymous>") {
		t.Fatalf("FormatArityMismatch = %q, want it to name the closure <anonymous>", out)
	}
}

package prelude_test

import (
	"testing"

	"github.com/oftac-lang/oftac/pkg/ast"
	"github.com/oftac-lang/oftac/pkg/prelude"
	"github.com/oftac-lang/oftac/pkg/reader"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

func parseModule(t *testing.T, src string) ast.Module {
	t.Helper()
	lits, err := reader.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll(%q): %v", src, err)
	}
	m, err := ast.ModuleFromValues("<test>", lits)
	if err != nil {
		t.Fatalf("ModuleFromValues(%q): %v", src, err)
	}
	return *m
}

func hasImport(m ast.Module, module, name string) bool {
	for _, imp := range m.Imports {
		if imp.Module.String() == module && imp.Name.String() == name {
			return true
		}
	}
	return false
}

func TestInjectAddsPreludeImports(t *testing.T) {
	m := parseModule(t, `(module main [main])`)
	preludeExports := []symbol.Symbol{symbol.Intern("list"), symbol.Intern("map")}

	out := prelude.Inject([]ast.Module{m}, preludeExports)

	if !hasImport(out[0], prelude.ModuleName, "list") || !hasImport(out[0], prelude.ModuleName, "map") {
		t.Fatalf("Imports = %v, want both list and map from %s", out[0].Imports, prelude.ModuleName)
	}
}

func TestInjectSkipsNoPreludeModules(t *testing.T) {
	m := parseModule(t, `(module main [] no-prelude)`)
	out := prelude.Inject([]ast.Module{m}, []symbol.Symbol{symbol.Intern("list")})

	if len(out[0].Imports) != 0 {
		t.Fatalf("Imports = %v, want none for a no-prelude module", out[0].Imports)
	}
}

func TestInjectSkipsLocallyShadowedNames(t *testing.T) {
	m := parseModule(t, `(module main [main])(intrinsics:defn main () 1)`)
	out := prelude.Inject([]ast.Module{m}, []symbol.Symbol{symbol.Intern("main")})

	if hasImport(out[0], prelude.ModuleName, "main") {
		t.Fatalf("Imports = %v, want no shadowing import for main's own top-level decl", out[0].Imports)
	}
}

func TestInjectSkipsAlreadyImportedNames(t *testing.T) {
	m := parseModule(t, `(module main [main])(import other list)`)
	out := prelude.Inject([]ast.Module{m}, []symbol.Symbol{symbol.Intern("list")})

	count := 0
	for _, imp := range out[0].Imports {
		if imp.Name.String() == "list" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d imports named list, want exactly 1 (the explicit one, not duplicated from the prelude)", count)
	}
}

func TestInjectLeavesPreludeModuleItselfAlone(t *testing.T) {
	m := parseModule(t, `(module std/prelude [list])`)
	out := prelude.Inject([]ast.Module{m}, []symbol.Symbol{symbol.Intern("list")})

	if len(out[0].Imports) != 0 {
		t.Fatalf("Imports = %v, want std/prelude to never self-import", out[0].Imports)
	}
}

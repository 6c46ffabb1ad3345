// Package prelude implements std/prelude auto-import: every module gets
// an implicit import of the prelude's exports unless it opts out. The
// resolution happens once, structurally, before linking, rather than at
// every lookup.
package prelude

import (
	"github.com/oftac-lang/oftac/pkg/ast"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// ModuleName is the reserved module every program implicitly imports
// from, unless it carries the no-prelude attribute.
const ModuleName = "std/prelude"

// Inject returns mods with an (std/prelude, name) import added for every
// name in preludeExports, for every module that:
//   - does not carry the no-prelude attribute,
//   - does not already import that name from anywhere, and
//   - does not shadow it with its own export or top-level declaration.
//
// The prelude module itself is left untouched: injecting std/prelude's
// own exports back into std/prelude would be a self-import. Inject never
// mutates mods; it returns a new slice.
func Inject(mods []ast.Module, preludeExports []symbol.Symbol) []ast.Module {
	out := make([]ast.Module, len(mods))
	for i, m := range mods {
		out[i] = inject(m, preludeExports)
	}
	return out
}

func inject(m ast.Module, preludeExports []symbol.Symbol) ast.Module {
	if m.Name.String() == ModuleName {
		return m
	}
	if ast.HasNoPrelude(m.Attrs) {
		return m
	}

	locallyBound := make(map[symbol.Symbol]bool, len(m.Exports)+len(m.Body))
	for _, e := range m.Exports {
		locallyBound[e] = true
	}
	for _, d := range m.Body {
		locallyBound[d.Name()] = true
	}

	alreadyImported := make(map[symbol.Symbol]bool, len(m.Imports))
	for _, imp := range m.Imports {
		alreadyImported[imp.Name] = true
	}

	imports := append([]ast.Import{}, m.Imports...)
	for _, name := range preludeExports {
		if locallyBound[name] || alreadyImported[name] {
			continue
		}
		imports = append(imports, ast.Import{Module: symbol.Intern(ModuleName), Name: name})
	}

	m.Imports = imports
	return m
}

// The oftac command wires the reader, ast, prelude, anf, flatanf, interp,
// and intrinsics packages together behind four subcommands, the way the
// teacher's cmd/golisp wired pkg/core behind a handful of flags.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oftac-lang/oftac/pkg/anf"
	"github.com/oftac-lang/oftac/pkg/ast"
	"github.com/oftac-lang/oftac/pkg/flatanf"
	"github.com/oftac-lang/oftac/pkg/intrinsics"
	"github.com/oftac-lang/oftac/pkg/prelude"
	"github.com/oftac-lang/oftac/pkg/reader"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// sourceExt is the file extension a package directory's modules are read
// from.
const sourceExt = ".oft"

// loadPackage reads every .oft file under dir (recursively) as one module
// each, the way original_source's add_modules_from walks a package path.
func loadPackage(dir string) ([]ast.Module, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, sourceExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading package %s: %w", dir, err)
	}
	sort.Strings(paths)

	mods := make([]ast.Module, 0, len(paths))
	for _, path := range paths {
		m, err := loadModule(path)
		if err != nil {
			return nil, err
		}
		mods = append(mods, *m)
	}
	return mods, nil
}

func loadModule(path string) (*ast.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	lits, err := reader.ReadAll(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m, err := ast.ModuleFromValues(path, lits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// preludeExportsOf returns std/prelude's own export list, read out of the
// std package like any other module, so Inject knows which names to wire
// in for everyone else.
func preludeExportsOf(std []ast.Module) []symbol.Symbol {
	for _, m := range std {
		if m.Name.String() == prelude.ModuleName {
			return m.Exports
		}
	}
	return nil
}

// buildProgram links a package (plus the standard library it was compiled
// against) into one flatanf.Program, wiring std/prelude and the registered
// intrinsics in along the way.
func buildProgram(pkg, std []ast.Module, reg *intrinsics.Registry) (*flatanf.Program, error) {
	all := append(append([]ast.Module{}, std...), pkg...)
	all = prelude.Inject(all, preludeExportsOf(std))

	anfMods := make([]*anf.Module, 0, len(all))
	for i := range all {
		am, err := anf.FromModule(&all[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", all[i].Name, err)
		}
		anfMods = append(anfMods, am)
	}

	return flatanf.FromModules(anfMods, reg.BuiltinTable())
}

// loadStd loads the standard library package from stdPath, or returns no
// modules at all if stdPath is empty -- a program with no prelude and no
// std imports is still a legal, if spartan, program.
func loadStd(stdPath string) ([]ast.Module, error) {
	if stdPath == "" {
		return nil, nil
	}
	return loadPackage(stdPath)
}

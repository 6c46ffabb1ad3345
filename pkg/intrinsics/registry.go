// Package intrinsics supplies the built-in modules the CESK interpreter
// (pkg/interp) calls through Global references: arithmetic, comparisons,
// list/vector/string/bytes manipulation, conversions, type predicates,
// and IO. Grounded on a function-registry pattern, adapted from a
// category-tagged function contract to the flat
// qualified-name-to-IntrinsicFunc map interp.BuiltinRegistry expects: the
// CESK machine has no notion of a function's help text or category, only
// its qualified name and behavior.
package intrinsics

import (
	"fmt"
	"sort"
	"sync"

	"github.com/oftac-lang/oftac/pkg/interp"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// Registry accumulates built-in functions per module before they are
// installed into an interpreter via interp.Interpreter.AddBuiltins.
type Registry struct {
	mu      sync.Mutex
	fns     map[symbol.Symbol]interp.IntrinsicFunc
	modules map[string][]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fns:     make(map[symbol.Symbol]interp.IntrinsicFunc),
		modules: make(map[string][]string),
	}
}

// Register installs fn under "module:name", panicking on a duplicate
// qualified name -- a collision here is a programming error in this
// package, not a runtime condition a caller should recover from.
func (r *Registry) Register(module, name string, fn interp.IntrinsicFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	qualified := symbol.Intern(module + ":" + name)
	if _, exists := r.fns[qualified]; exists {
		panic(fmt.Sprintf("intrinsics: %s already registered", qualified))
	}
	r.fns[qualified] = fn
	r.modules[module] = append(r.modules[module], name)
	sort.Strings(r.modules[module])
}

// Builtins implements interp.BuiltinRegistry.
func (r *Registry) Builtins() map[symbol.Symbol]interp.IntrinsicFunc {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[symbol.Symbol]interp.IntrinsicFunc, len(r.fns))
	for k, v := range r.fns {
		out[k] = v
	}
	return out
}

// Modules lists every module name that has at least one registered
// function, sorted.
func (r *Registry) Modules() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.modules))
	for m := range r.modules {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}

// Exports lists the function names exported by module, sorted.
func (r *Registry) Exports(module string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.modules[module]))
	copy(out, r.modules[module])
	return out
}

// BuiltinTable returns the module-name-to-export-names shape
// flatanf.FromModules needs to resolve which free variables are
// intrinsics rather than missing imports.
func (r *Registry) BuiltinTable() map[symbol.Symbol][]symbol.Symbol {
	out := make(map[symbol.Symbol][]symbol.Symbol, len(r.modules))
	for _, mod := range r.Modules() {
		names := r.Exports(mod)
		syms := make([]symbol.Symbol, len(names))
		for i, n := range names {
			syms[i] = symbol.Intern(n)
		}
		out[symbol.Intern(mod)] = syms
	}
	return out
}

// Standard returns a Registry with every built-in module this package
// implements already installed.
func Standard() *Registry {
	r := NewRegistry()
	installRoot(r)
	installMath(r)
	installFixnum(r)
	installByte(r)
	installStrings(r)
	installVector(r)
	installBytes(r)
	installConvert(r)
	installTypes(r)
	installIO(r)
	installArithmetic(r)
	installComparison(r)
	installLogical(r)
	installList(r)
	installString(r)
	installAtom(r)
	installHashmap(r)
	installControl(r)
	return r
}

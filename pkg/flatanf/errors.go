package flatanf

import (
	"fmt"

	"github.com/oftac-lang/oftac/pkg/symbol"
)

// ErrDependencyLoop reports a cycle among module imports.
type ErrDependencyLoop struct {
	Module symbol.Symbol
}

func (e *ErrDependencyLoop) Error() string {
	return fmt.Sprintf("dependency loop at module %s", e.Module)
}

// ErrNonexistentModule reports an import naming a module that is neither
// among the linked modules nor a built-in.
type ErrNonexistentModule struct {
	Module symbol.Symbol
}

func (e *ErrNonexistentModule) Error() string {
	return fmt.Sprintf("no such module: %s", e.Module)
}

// ErrNonexistentImport reports an import naming a symbol its module does
// not export.
type ErrNonexistentImport struct {
	Module symbol.Symbol
	Global symbol.Symbol
}

func (e *ErrNonexistentImport) Error() string {
	return fmt.Sprintf("module %s imports nonexistent %s", e.Module, e.Global)
}

// ErrMissingExport reports a module whose export list names a declaration
// the module body does not define.
type ErrMissingExport struct {
	Module symbol.Symbol
	Global symbol.Symbol
}

func (e *ErrMissingExport) Error() string {
	return fmt.Sprintf("module %s exports undefined %s", e.Module, e.Global)
}

// ErrNoSuchVar reports a variable reference that resolves to neither a
// local binding nor a known global.
type ErrNoSuchVar struct {
	Name symbol.Symbol
}

func (e *ErrNoSuchVar) Error() string {
	return fmt.Sprintf("no such variable: %s", e.Name)
}

// ErrVarInLetrec reports a LetRec binding whose right-hand side is a bare
// variable reference, which would alias rather than bind a function.
type ErrVarInLetrec struct {
	Name symbol.Symbol
	Var  symbol.Symbol
}

func (e *ErrVarInLetrec) Error() string {
	return fmt.Sprintf("letrec binding %s aliases variable %s, not a function", e.Name, e.Var)
}

// ErrFreeVars reports global references that resolve to neither a defined
// decl nor a referenced intrinsic.
type ErrFreeVars struct {
	Names []symbol.Symbol
}

func (e *ErrFreeVars) Error() string {
	return fmt.Sprintf("undefined globals: %v", e.Names)
}

// ErrNoMainFunction reports a linked program with no main:main decl.
type ErrNoMainFunction struct{}

func (e *ErrNoMainFunction) Error() string {
	return "no main:main function"
}

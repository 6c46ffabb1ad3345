package ast

import (
	"fmt"

	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// ErrNoModuleForm reports a source unit whose first form is not
// `(module NAME [EXPORT…] ATTR…)`.
type ErrNoModuleForm struct {
	Path string
}

func (e *ErrNoModuleForm) Error() string {
	return fmt.Sprintf("no module form found in %s", e.Path)
}

// ErrUnknownAttr reports an attribute form that is neither `no-prelude`
// nor a recognized extension.
type ErrUnknownAttr struct {
	Module symbol.Symbol
	Attr   literal.Value
}

func (e *ErrUnknownAttr) Error() string {
	return fmt.Sprintf("unknown attribute in module %s: %s", e.Module, literal.Display(e.Attr))
}

// ErrInvalidDecl reports a literal that does not match the grammar of
// `intrinsics:def` or `intrinsics:defn`.
type ErrInvalidDecl struct {
	Lit literal.Value
}

func (e *ErrInvalidDecl) Error() string {
	return fmt.Sprintf("invalid declaration: %s", literal.Display(e.Lit))
}

// ErrInvalidExpr reports a literal that cannot be recognized as any
// expression form.
type ErrInvalidExpr struct {
	Lit literal.Value
}

func (e *ErrInvalidExpr) Error() string {
	return fmt.Sprintf("invalid expression: %s", literal.Display(e.Lit))
}

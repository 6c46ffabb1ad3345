// Package diagnostics renders errors from every pipeline stage (reader,
// ast, flatanf, interp) as colorized, categorized text, grounded on a
// line-editor's error formatter that sniffed a category out of an
// error's formatted message with strings.Contains. Every error here
// already arrives as a concrete Go type, so categorization matches on
// type (via errors.As, to see through the wrapping the CLI pipeline adds)
// instead of substring matching -- the same color-coded presentation,
// driven by information that no longer needs guessing.
package diagnostics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/oftac-lang/oftac/pkg/ast"
	"github.com/oftac-lang/oftac/pkg/flatanf"
	"github.com/oftac-lang/oftac/pkg/interp"
)

// Category groups errors for color coding and labeling.
type Category int

const (
	CategoryReader Category = iota
	CategorySyntax
	CategoryLink
	CategoryRuntime
	CategoryAbort
	CategoryGeneral
)

// Formatter renders an error as a single colorized line.
type Formatter struct {
	readerColor  *color.Color
	syntaxColor  *color.Color
	linkColor    *color.Color
	runtimeColor *color.Color
	abortColor   *color.Color
	generalColor *color.Color
	prefixColor  *color.Color
}

// New returns a Formatter with a conventional red/yellow/cyan palette,
// mapped onto the pipeline's own error categories.
func New() *Formatter {
	return &Formatter{
		readerColor:  color.New(color.FgRed, color.Bold),
		syntaxColor:  color.New(color.FgYellow, color.Bold),
		linkColor:    color.New(color.FgGreen, color.Bold),
		runtimeColor: color.New(color.FgMagenta, color.Bold),
		abortColor:   color.New(color.FgCyan, color.Bold),
		generalColor: color.New(color.FgWhite, color.Bold),
		prefixColor:  color.New(color.FgRed, color.Bold),
	}
}

// Categorize inspects err's concrete type to decide which pipeline stage
// it came from. It unwraps with errors.As first, so a file-loading error
// wrapped with fmt.Errorf("%s: %w", path, err) still categorizes by its
// underlying cause rather than falling through to CategoryGeneral.
func Categorize(err error) Category {
	var (
		noModuleForm  *ast.ErrNoModuleForm
		unknownAttr   *ast.ErrUnknownAttr
		invalidDecl   *ast.ErrInvalidDecl
		invalidExpr   *ast.ErrInvalidExpr
		depLoop       *flatanf.ErrDependencyLoop
		noModule      *flatanf.ErrNonexistentModule
		noImport      *flatanf.ErrNonexistentImport
		missingExport *flatanf.ErrMissingExport
		noSuchVar     *flatanf.ErrNoSuchVar
		varInLetrec   *flatanf.ErrVarInLetrec
		freeVars      *flatanf.ErrFreeVars
		noMainLink    *flatanf.ErrNoMainFunction
		unknownGlobal *interp.ErrUnknownGlobal
		arityMismatch *interp.ErrArityMismatch
		notCallable   *interp.ErrNotCallable
		halted        *interp.ErrHalted
		noMainRuntime *interp.ErrNoMainFunction
		abort         *interp.Abort
	)
	switch {
	case errors.As(err, &noModuleForm), errors.As(err, &unknownAttr),
		errors.As(err, &invalidDecl), errors.As(err, &invalidExpr):
		return CategorySyntax
	case errors.As(err, &depLoop), errors.As(err, &noModule), errors.As(err, &noImport),
		errors.As(err, &missingExport), errors.As(err, &noSuchVar), errors.As(err, &varInLetrec),
		errors.As(err, &freeVars), errors.As(err, &noMainLink):
		return CategoryLink
	case errors.As(err, &unknownGlobal), errors.As(err, &arityMismatch), errors.As(err, &notCallable),
		errors.As(err, &halted), errors.As(err, &noMainRuntime):
		return CategoryRuntime
	case errors.As(err, &abort):
		return CategoryAbort
	default:
		// pkg/reader has no typed error hierarchy of its own (it raises
		// plain fmt.Errorf with a "line N, column N" prefix), so this one
		// stage falls back to a substring heuristic instead.
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "line ") && strings.Contains(msg, "column ") {
			return CategoryReader
		}
		return CategoryGeneral
	}
}

func (c Category) label() string {
	switch c {
	case CategoryReader:
		return "Reader Error"
	case CategorySyntax:
		return "Syntax Error"
	case CategoryLink:
		return "Link Error"
	case CategoryRuntime:
		return "Runtime Error"
	case CategoryAbort:
		return "Abort"
	default:
		return "Error"
	}
}

func (f *Formatter) colorFor(c Category) *color.Color {
	switch c {
	case CategoryReader:
		return f.readerColor
	case CategorySyntax:
		return f.syntaxColor
	case CategoryLink:
		return f.linkColor
	case CategoryRuntime:
		return f.runtimeColor
	case CategoryAbort:
		return f.abortColor
	default:
		return f.generalColor
	}
}

// Format renders err as "Label: message" with the label colored by
// category. An *interp.Abort carrying an exit code is rendered without
// the "Error" framing, since it is a controlled exit rather than a fault.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}
	var abort *interp.Abort
	if errors.As(err, &abort) && abort.ExitCode != nil {
		return f.abortColor.Sprintf("exit %d", *abort.ExitCode)
	}

	cat := Categorize(err)
	prefix := f.prefixColor.Sprintf("%s:", cat.label())
	message := f.colorFor(cat).Sprintf(" %s", err.Error())
	return prefix + message
}

// FormatArityMismatch renders an arity error with the offending closure's
// display name (if known) spelled out, rather than relying on
// ErrArityMismatch.Error's bare symbol formatting.
func (f *Formatter) FormatArityMismatch(e *interp.ErrArityMismatch) string {
	name := "<anonymous>"
	if e.Name != nil {
		name = e.Name.String()
	}
	return f.Format(fmt.Errorf("%s: wrong number of arguments: want %d, got %d", name, e.Want, e.Got))
}

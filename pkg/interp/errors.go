package interp

import (
	"fmt"

	"github.com/oftac-lang/oftac/pkg/symbol"
)

// ErrUnknownGlobal reports a Global atomic expression naming something
// globals does not contain.
type ErrUnknownGlobal struct {
	Name symbol.Symbol
}

func (e *ErrUnknownGlobal) Error() string {
	return fmt.Sprintf("unknown global: %s", e.Name)
}

// ErrArityMismatch reports a call whose argument count does not match the
// closure's declared arity.
type ErrArityMismatch struct {
	Name *symbol.Symbol
	Want int
	Got  int
}

func (e *ErrArityMismatch) Error() string {
	if e.Name != nil {
		return fmt.Sprintf("%s: wrong number of arguments: want %d, got %d", e.Name, e.Want, e.Got)
	}
	return fmt.Sprintf("wrong number of arguments: want %d, got %d", e.Want, e.Got)
}

// ErrNotCallable reports Apply on a Value that is neither a Closure nor
// an Intrinsic.
type ErrNotCallable struct {
	Value Value
}

func (e *ErrNotCallable) Error() string {
	return fmt.Sprintf("not callable: a value of kind %s", kindName(e.Value))
}

// ErrHalted reports an attempt to step a machine that already reached a
// Halted state.
type ErrHalted struct{}

func (e *ErrHalted) Error() string { return "interpreter: cannot step past Halted" }

// ErrNoMainFunction reports a program with no main:main decl to call.
type ErrNoMainFunction struct{}

func (e *ErrNoMainFunction) Error() string { return "no main:main function" }

// Abort reports a structured abort raised by the panic intrinsic.
// ExitCode is non-nil only for the `panic '(exit N)` form.
type Abort struct {
	Message  string
	ExitCode *int
}

func (e *Abort) Error() string {
	if e.ExitCode != nil {
		return fmt.Sprintf("exit %d", *e.ExitCode)
	}
	return fmt.Sprintf("panic: %s", e.Message)
}

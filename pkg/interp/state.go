package interp

import (
	"github.com/oftac-lang/oftac/pkg/flatanf"
)

// State is the machine's configuration between steps: either still
// running with a control expression, environment, and continuation stack,
// or halted with a final value.
type State struct {
	Halted bool
	Value  Value

	Control flatanf.Expr
	Env     Env
	Kont    KontStack
}

// Running builds a non-halted state.
func Running(control flatanf.Expr, env Env, kont KontStack) State {
	return State{Control: control, Env: env, Kont: kont}
}

// HaltedState builds a halted state carrying the final value.
func HaltedState(v Value) State {
	return State{Halted: true, Value: v}
}

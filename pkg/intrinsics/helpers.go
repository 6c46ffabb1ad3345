package intrinsics

import (
	"fmt"

	"github.com/oftac-lang/oftac/pkg/interp"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// ErrType reports an intrinsic called with an argument of the wrong
// dynamic kind.
type ErrType struct {
	Func string
	Args []interp.Value
}

func (e *ErrType) Error() string {
	return fmt.Sprintf("type error in (%s ...)", e.Func)
}

var symTrue = symbol.Intern("true")

// boolify maps a Go bool to the canonical truth markers: the symbol true,
// or Nil, the only falsy value.
func boolify(b bool) interp.Value {
	if b {
		return interp.Sym(symTrue)
	}
	return interp.Nil{}
}

// finish wraps a directly-produced value as a completed State, the
// common case for intrinsics that do not need to install a new
// continuation frame.
func finish(v interp.Value, kont interp.KontStack, store *interp.Store) (interp.State, error) {
	return interp.Kontinue(v, kont, store)
}

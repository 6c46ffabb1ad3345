package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installLogical registers "logical" (and, or, not). These are plain
// functions, not short-circuiting special forms -- both arguments are
// already evaluated by the time an intrinsic sees them, same as every
// other call. Truthiness rule: only Nil is falsy.
func installLogical(r *Registry) {
	r.Register("logical", "and", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		return finish(boolify(truthy(args[0]) && truthy(args[1])), kont, store)
	})
	r.Register("logical", "or", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		return finish(boolify(truthy(args[0]) || truthy(args[1])), kont, store)
	})
	r.Register("logical", "not", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		return finish(boolify(!truthy(args[0])), kont, store)
	})
}

func truthy(v interp.Value) bool {
	_, isNil := v.(interp.Nil)
	return !isNil
}

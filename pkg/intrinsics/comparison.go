package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installComparison registers "comparison" (=, <, >, <=, >=), built on the
// same total order root:compare exposes (interp.Compare), spelled the way
// a surface-level reader expects relational operators to read.
func installComparison(r *Registry) {
	r.Register("comparison", "=", comparisonOp(func(c int) bool { return c == 0 }))
	r.Register("comparison", "<", comparisonOp(func(c int) bool { return c < 0 }))
	r.Register("comparison", ">", comparisonOp(func(c int) bool { return c > 0 }))
	r.Register("comparison", "<=", comparisonOp(func(c int) bool { return c <= 0 }))
	r.Register("comparison", ">=", comparisonOp(func(c int) bool { return c >= 0 }))
}

func comparisonOp(pred func(c int) bool) interp.IntrinsicFunc {
	return func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		return finish(boolify(pred(interp.Compare(args[0], args[1], store))), kont, store)
	}
}

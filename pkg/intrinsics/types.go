package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installTypes registers "types"' kind predicates, grounded on
// original_source's types module.
func installTypes(r *Registry) {
	register := func(name string, pred func(interp.Value) bool) {
		r.Register("types", name, func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
			return finish(boolify(pred(args[0])), kont, store)
		})
	}
	register("is_byte", func(v interp.Value) bool { _, ok := v.(interp.Byte); return ok })
	register("is_bytes", func(v interp.Value) bool { _, ok := v.(interp.Bytes); return ok })
	register("is_cons", func(v interp.Value) bool { _, ok := v.(interp.Cons); return ok })
	register("is_fixnum", func(v interp.Value) bool { _, ok := v.(interp.Fixnum); return ok })
	register("is_function", func(v interp.Value) bool {
		switch v.(type) {
		case interp.Closure, interp.Intrinsic:
			return true
		default:
			return false
		}
	})
	register("is_nil", func(v interp.Value) bool { _, ok := v.(interp.Nil); return ok })
	register("is_string", func(v interp.Value) bool { _, ok := v.(interp.String); return ok })
	register("is_symbol", func(v interp.Value) bool { _, ok := v.(interp.Sym); return ok })
	register("is_vector", func(v interp.Value) bool { _, ok := v.(interp.Vector); return ok })
	register("is_atom", func(v interp.Value) bool { _, ok := v.(interp.Atom); return ok })
}

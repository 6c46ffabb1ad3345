package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installStrings registers "strings" (append/length/slice), grounded on
// original_source's strings module. Indices are counted in runes, not
// bytes, matching the original's char_indices-based slicing.
func installStrings(r *Registry) {
	r.Register("strings", "append", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		l, lok := args[0].(interp.String)
		rr, rok := args[1].(interp.String)
		if !lok || !rok {
			return interp.State{}, &ErrType{Func: "string-append", Args: args}
		}
		return finish(store.AppendString(store.GetString(l)+store.GetString(rr)), kont, store)
	})
	r.Register("strings", "length", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		s, ok := args[0].(interp.String)
		if !ok {
			return interp.State{}, &ErrType{Func: "string-length", Args: args}
		}
		return finish(interp.Fixnum(s.Len), kont, store)
	})
	r.Register("strings", "slice", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		start, sok := args[0].(interp.Fixnum)
		end, eok := args[1].(interp.Fixnum)
		s, vok := args[2].(interp.String)
		if !sok || !eok || !vok || start < 0 || end < start || int(end) > s.Len {
			return interp.State{}, &ErrType{Func: "string-slice", Args: args}
		}
		runes := []rune(store.GetString(s))
		return finish(store.AppendString(string(runes[start:end])), kont, store)
	})
}

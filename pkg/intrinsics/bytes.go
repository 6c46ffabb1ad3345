package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installBytes registers "bytes" (append/length/nth/slice), grounded on
// original_source's bytes module.
func installBytes(r *Registry) {
	r.Register("bytes", "append", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		l, lok := args[0].(interp.Bytes)
		rr, rok := args[1].(interp.Bytes)
		if !lok || !rok {
			return interp.State{}, &ErrType{Func: "bytes-append", Args: args}
		}
		combined := append(append([]byte{}, store.GetBytes(l)...), store.GetBytes(rr)...)
		return finish(store.AppendBytes(combined), kont, store)
	})
	r.Register("bytes", "length", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		b, ok := args[0].(interp.Bytes)
		if !ok {
			return interp.State{}, &ErrType{Func: "bytes-length", Args: args}
		}
		return finish(interp.Fixnum(b.Len), kont, store)
	})
	r.Register("bytes", "nth", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		n, nok := args[0].(interp.Fixnum)
		b, bok := args[1].(interp.Bytes)
		if !nok || !bok || n < 0 || int(n) >= b.Len {
			return interp.State{}, &ErrType{Func: "bytes-nth", Args: args}
		}
		return finish(interp.Byte(store.GetBytes(b)[n]), kont, store)
	})
	r.Register("bytes", "slice", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		start, sok := args[0].(interp.Fixnum)
		end, eok := args[1].(interp.Fixnum)
		b, bok := args[2].(interp.Bytes)
		if !sok || !eok || !bok || start < 0 || end < start || int(end) > b.Len {
			return interp.State{}, &ErrType{Func: "bytes-slice", Args: args}
		}
		return finish(store.AppendBytes(store.GetBytes(b)[start:end]), kont, store)
	})
}

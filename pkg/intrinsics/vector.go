package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installVector registers "vector" (append/length/make/nth/slice),
// grounded on original_source's vector module. make drives the
// MakeVectorFrame continuation, calling each element one at a time
// through func rather than recursing in the host.
func installVector(r *Registry) {
	r.Register("vector", "append", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		l, lok := args[0].(interp.Vector)
		rr, rok := args[1].(interp.Vector)
		if !lok || !rok {
			return interp.State{}, &ErrType{Func: "vector-append", Args: args}
		}
		combined := append(append([]interp.Value{}, store.GetVector(l)...), store.GetVector(rr)...)
		return finish(store.AppendVector(combined), kont, store)
	})
	r.Register("vector", "length", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		v, ok := args[0].(interp.Vector)
		if !ok {
			return interp.State{}, &ErrType{Func: "vector-length", Args: args}
		}
		return finish(interp.Fixnum(v.Len), kont, store)
	})
	r.Register("vector", "make", vectorMake)
	r.Register("vector", "nth", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		n, nok := args[0].(interp.Fixnum)
		v, vok := args[1].(interp.Vector)
		if !nok || !vok || n < 0 || int(n) >= v.Len {
			return interp.State{}, &ErrType{Func: "vector-nth", Args: args}
		}
		return finish(store.GetVector(v)[n], kont, store)
	})
	r.Register("vector", "slice", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		start, sok := args[0].(interp.Fixnum)
		end, eok := args[1].(interp.Fixnum)
		v, vok := args[2].(interp.Vector)
		if !sok || !eok || !vok || start < 0 || end < start || int(end) > v.Len {
			return interp.State{}, &ErrType{Func: "vector-slice", Args: args}
		}
		return finish(store.AppendVector(store.GetVector(v)[start:end]), kont, store)
	})
}

func vectorMake(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	fn := args[0]
	n, ok := args[1].(interp.Fixnum)
	if !ok {
		return interp.State{}, &ErrType{Func: "vector-make", Args: args}
	}
	if n <= 0 {
		return finish(store.AppendVector(nil), kont, store)
	}
	frame := interp.MakeVectorFrame{Cur: 0, Last: int(n) - 1, Func: fn, Acc: nil}
	return interp.Apply(fn, []interp.Value{interp.Fixnum(0)}, store, kont.Push(frame))
}

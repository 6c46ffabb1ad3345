package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installAtom registers "atom" (atom, deref, swap!, reset!), grounded on
// a mutable-box model. This is the one surface where a value allocated in
// the store can change after allocation (interp.Atom); every other
// intrinsic here only ever builds new values.
func installAtom(r *Registry) {
	r.Register("atom", "atom", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		return finish(store.AllocAtom(args[0]), kont, store)
	})
	r.Register("atom", "deref", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		a, ok := args[0].(interp.Atom)
		if !ok {
			return interp.State{}, &ErrType{Func: "deref", Args: args}
		}
		return finish(store.GetAtom(a), kont, store)
	})
	r.Register("atom", "reset!", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		a, ok := args[0].(interp.Atom)
		if !ok {
			return interp.State{}, &ErrType{Func: "reset!", Args: args}
		}
		return finish(store.SetAtom(a, args[1]), kont, store)
	})
	r.Register("atom", "swap!", atomSwap)
}

// atomSwap applies fn to the atom's current value and stores the result,
// driving fn through Apply/Kontinue like every other user-closure call
// rather than invoking it directly from Go.
func atomSwap(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	a, ok := args[0].(interp.Atom)
	if !ok {
		return interp.State{}, &ErrType{Func: "swap!", Args: args}
	}
	fn := args[1]
	cur := store.GetAtom(a)
	frame := interp.AtomSwapFrame{Atom: a}
	return interp.Apply(fn, []interp.Value{cur}, store, kont.Push(frame))
}

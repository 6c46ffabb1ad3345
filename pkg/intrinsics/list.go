package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installList registers "list": cons/first/rest/list/length/empty?/nth/
// reverse/append are plain traversals; map/filter/reduce drive a
// continuation frame one element at a time, the same pattern make-vector
// uses, rather than recursing through the host call stack, so a user
// closure running inside one of them still participates in the machine's
// own tail-call handling.
func installList(r *Registry) {
	r.Register("list", "cons", rootCons)
	r.Register("list", "first", rootCar)
	r.Register("list", "rest", rootCdr)
	r.Register("list", "list", rootList)

	r.Register("list", "length", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		n := 0
		cur := args[0]
		for {
			switch c := cur.(type) {
			case interp.Cons:
				_, tail := store.GetCons(c)
				n++
				cur = tail
			case interp.Nil:
				return finish(interp.Fixnum(n), kont, store)
			default:
				return interp.State{}, &ErrType{Func: "list-length", Args: args}
			}
		}
	})

	r.Register("list", "empty?", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		_, ok := args[0].(interp.Nil)
		return finish(boolify(ok), kont, store)
	})

	r.Register("list", "nth", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		n, ok := args[0].(interp.Fixnum)
		if !ok || n < 0 {
			return interp.State{}, &ErrType{Func: "list-nth", Args: args}
		}
		cur := args[1]
		for i := int64(0); ; i++ {
			c, ok := cur.(interp.Cons)
			if !ok {
				return interp.State{}, &ErrType{Func: "list-nth", Args: args}
			}
			head, tail := store.GetCons(c)
			if i == int64(n) {
				return finish(head, kont, store)
			}
			cur = tail
		}
	})

	r.Register("list", "reverse", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		var out interp.Value = interp.Nil{}
		cur := args[0]
		for {
			switch c := cur.(type) {
			case interp.Cons:
				head, tail := store.GetCons(c)
				out = store.AllocCons(head, out)
				cur = tail
			case interp.Nil:
				return finish(out, kont, store)
			default:
				return interp.State{}, &ErrType{Func: "list-reverse", Args: args}
			}
		}
	})

	r.Register("list", "append", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		var elems []interp.Value
		cur := args[0]
		for {
			switch c := cur.(type) {
			case interp.Cons:
				head, tail := store.GetCons(c)
				elems = append(elems, head)
				cur = tail
			case interp.Nil:
				out := args[1]
				for i := len(elems) - 1; i >= 0; i-- {
					out = store.AllocCons(elems[i], out)
				}
				return finish(out, kont, store)
			default:
				return interp.State{}, &ErrType{Func: "list-append", Args: args}
			}
		}
	})

	r.Register("list", "map", listMap)
	r.Register("list", "filter", listFilter)
	r.Register("list", "reduce", listReduce)
}

func listMap(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	fn := args[0]
	switch c := args[1].(type) {
	case interp.Nil:
		return finish(interp.Nil{}, kont, store)
	case interp.Cons:
		head, tail := store.GetCons(c)
		frame := interp.ListMapFrame{Fn: fn, Remaining: tail, Acc: nil}
		return interp.Apply(fn, []interp.Value{head}, store, kont.Push(frame))
	default:
		return interp.State{}, &ErrType{Func: "list-map", Args: args}
	}
}

func listFilter(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	fn := args[0]
	switch c := args[1].(type) {
	case interp.Nil:
		return finish(interp.Nil{}, kont, store)
	case interp.Cons:
		head, tail := store.GetCons(c)
		frame := interp.ListFilterFrame{Fn: fn, Remaining: tail, Head: head, Acc: nil}
		return interp.Apply(fn, []interp.Value{head}, store, kont.Push(frame))
	default:
		return interp.State{}, &ErrType{Func: "list-filter", Args: args}
	}
}

func listReduce(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	fn := args[0]
	init := args[1]
	switch c := args[2].(type) {
	case interp.Nil:
		return finish(init, kont, store)
	case interp.Cons:
		head, tail := store.GetCons(c)
		frame := interp.ListReduceFrame{Fn: fn, Remaining: tail, Acc: init}
		return interp.Apply(fn, []interp.Value{init, head}, store, kont.Push(frame))
	default:
		return interp.State{}, &ErrType{Func: "list-reduce", Args: args}
	}
}

package interp

import (
	"github.com/oftac-lang/oftac/pkg/flatanf"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// Step advances a Running state by exactly one transition. It
// never recurses through Step itself in tail position: tail calls and
// sequencing are driven by the caller's loop in Interpreter.Eval.
func Step(s State, globals map[symbol.Symbol]Value, store *Store) (State, error) {
	if s.Halted {
		return s, &ErrHalted{}
	}
	switch c := s.Control.(type) {
	case *flatanf.AExprNode:
		val, err := atomic(c.AExpr, s.Env, globals, store)
		if err != nil {
			return State{}, err
		}
		return Kontinue(val, s.Kont, store)
	case *flatanf.CExprNode:
		return stepComplex(c.CExpr, s.Env, s.Kont, globals, store)
	case *flatanf.Let:
		return Running(c.Bound, s.Env, s.Kont.Push(LetFrame{Body: c.Body, Env: s.Env})), nil
	case *flatanf.Seq:
		return Running(c.Left, s.Env, s.Kont.Push(SeqFrame{Body: c.Right, Env: s.Env})), nil
	default:
		panic("interp: unknown Expr control")
	}
}

func stepComplex(c flatanf.CExpr, env Env, kont KontStack, globals map[symbol.Symbol]Value, store *Store) (State, error) {
	switch t := c.(type) {
	case *flatanf.Call:
		fn, err := atomic(t.Func, env, globals, store)
		if err != nil {
			return State{}, err
		}
		args := make([]Value, len(t.Args))
		for i, a := range t.Args {
			v, err := atomic(a, env, globals, store)
			if err != nil {
				return State{}, err
			}
			args[i] = v
		}
		return Apply(fn, args, store, kont)
	case *flatanf.If:
		cond, err := atomic(t.Cond, env, globals, store)
		if err != nil {
			return State{}, err
		}
		if _, isNil := cond.(Nil); isNil {
			return Running(t.Else, env, kont), nil
		}
		return Running(t.Then, env, kont), nil
	case *flatanf.LetRec:
		// Two-pass allocation: allocate every closure with an
		// empty captured env first, pushing each onto env in turn so later
		// bindings in the group see earlier ones; once all exist,
		// back-patch every closure's captured env to the final, fully
		// populated env. This lets mutually-recursive lambdas reference
		// each other without a cyclic Value at construction time.
		handles := make([]Closure, len(t.Bindings))
		cur := env
		for i, b := range t.Bindings {
			name := b.Name
			h := store.AllocClosure(b.Argn, b.Body, NewEnv(), &name)
			handles[i] = h
			cur = cur.Push(h)
		}
		for _, h := range handles {
			store.BackpatchClosureEnv(h, cur)
		}
		return Running(t.Body, cur, kont), nil
	default:
		panic("interp: unknown CExpr")
	}
}

// atomic evaluates an AExpr to a Value with no side effects on the
// continuation stack.
func atomic(expr flatanf.AExpr, env Env, globals map[symbol.Symbol]Value, store *Store) (Value, error) {
	switch t := expr.(type) {
	case *flatanf.Global:
		v, ok := globals[t.Name]
		if !ok {
			return nil, &ErrUnknownGlobal{Name: t.Name}
		}
		return v, nil
	case *flatanf.Local:
		return env.Local(t.Index), nil
	case *flatanf.Literal:
		return materialize(t.Value, store), nil
	case *flatanf.Lambda:
		return store.AllocClosure(t.Argn, t.Body, env, t.Name), nil
	case *flatanf.Vector:
		vals := make([]Value, len(t.Elems))
		for i, e := range t.Elems {
			v, err := atomic(e, env, globals, store)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return store.AppendVector(vals), nil
	default:
		panic("interp: unknown AExpr")
	}
}

// Apply dispatches a Call's evaluated function value against its
// evaluated arguments.
func Apply(fn Value, args []Value, store *Store, kont KontStack) (State, error) {
	switch t := fn.(type) {
	case Closure:
		argn, body, capturedEnv, optName := store.GetClosure(t)
		if argn != len(args) {
			return State{}, &ErrArityMismatch{Name: optName, Want: argn, Got: len(args)}
		}
		callEnv := capturedEnv
		for _, a := range args {
			callEnv = callEnv.Push(a)
		}
		return Running(body, callEnv, kont), nil
	case Intrinsic:
		s, err := t.Fn(args, store, kont)
		if err != nil {
			return State{}, err
		}
		return s, nil
	default:
		return State{}, &ErrNotCallable{Value: fn}
	}
}

// buildList conses acc into a proper list in order, last element innermost.
func buildList(acc []Value, store *Store) Value {
	var l Value = Nil{}
	for i := len(acc) - 1; i >= 0; i-- {
		l = store.AllocCons(acc[i], l)
	}
	return l
}

// Kontinue pops the top continuation frame and resumes with it. An empty
// stack halts the machine.
func Kontinue(val Value, kont KontStack, store *Store) (State, error) {
	frame, rest, ok := kont.Pop()
	if !ok {
		return HaltedState(val), nil
	}
	switch f := frame.(type) {
	case LetFrame:
		return Running(f.Body, f.Env.Push(val), rest), nil
	case SeqFrame:
		return Running(f.Body, f.Env, rest), nil
	case MakeVectorFrame:
		acc := append(append([]Value{}, f.Acc...), val)
		if f.Cur == f.Last {
			return Kontinue(store.AppendVector(acc), rest, store)
		}
		next := MakeVectorFrame{Cur: f.Cur + 1, Last: f.Last, Func: f.Func, Acc: acc}
		return Apply(f.Func, []Value{Fixnum(f.Cur + 1)}, store, rest.Push(next))
	case ListMapFrame:
		acc := append(append([]Value{}, f.Acc...), val)
		if _, ok := f.Remaining.(Nil); ok {
			return Kontinue(buildList(acc, store), rest, store)
		}
		c := f.Remaining.(Cons)
		head, tail := store.GetCons(c)
		next := ListMapFrame{Fn: f.Fn, Remaining: tail, Acc: acc}
		return Apply(f.Fn, []Value{head}, store, rest.Push(next))
	case ListFilterFrame:
		acc := f.Acc
		if _, isNil := val.(Nil); !isNil {
			acc = append(append([]Value{}, f.Acc...), f.Head)
		}
		if _, ok := f.Remaining.(Nil); ok {
			return Kontinue(buildList(acc, store), rest, store)
		}
		c := f.Remaining.(Cons)
		head, tail := store.GetCons(c)
		next := ListFilterFrame{Fn: f.Fn, Remaining: tail, Head: head, Acc: acc}
		return Apply(f.Fn, []Value{head}, store, rest.Push(next))
	case ListReduceFrame:
		if _, ok := f.Remaining.(Nil); ok {
			return Kontinue(val, rest, store)
		}
		c := f.Remaining.(Cons)
		head, tail := store.GetCons(c)
		next := ListReduceFrame{Fn: f.Fn, Remaining: tail, Acc: val}
		return Apply(f.Fn, []Value{val, head}, store, rest.Push(next))
	case AtomSwapFrame:
		return Kontinue(store.SetAtom(f.Atom, val), rest, store)
	default:
		panic("interp: unknown Kont frame")
	}
}

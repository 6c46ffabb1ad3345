package intrinsics

import (
	"github.com/oftac-lang/oftac/pkg/interp"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// installRoot registers the unqualified "root" module -- the
// general-purpose functions every program gets regardless of which
// other modules it imports, grounded on original_source's root module
// (apply, car, cdr, compare, cons, eq, eq_num, equals, gensym, list,
// panic).
func installRoot(r *Registry) {
	r.Register("root", "apply", rootApply)
	r.Register("root", "car", rootCar)
	r.Register("root", "cdr", rootCdr)
	r.Register("root", "compare", rootCompare)
	r.Register("root", "cons", rootCons)
	r.Register("root", "eq", rootEq)
	r.Register("root", "eq_num", rootEqNum)
	r.Register("root", "equals", rootEquals)
	r.Register("root", "gensym", rootGensym)
	r.Register("root", "list", rootList)
	r.Register("root", "panic", rootPanic)
}

func rootApply(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	fn := args[0]
	var callArgs []interp.Value
	cur := args[1]
	for {
		switch c := cur.(type) {
		case interp.Cons:
			head, tail := store.GetCons(c)
			callArgs = append(callArgs, head)
			cur = tail
		case interp.Nil:
			return interp.Apply(fn, callArgs, store, kont)
		default:
			return interp.State{}, &ErrType{Func: "apply", Args: args}
		}
	}
}

func rootCar(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	c, ok := args[0].(interp.Cons)
	if !ok {
		return interp.State{}, &ErrType{Func: "car", Args: args}
	}
	head, _ := store.GetCons(c)
	return finish(head, kont, store)
}

func rootCdr(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	c, ok := args[0].(interp.Cons)
	if !ok {
		return interp.State{}, &ErrType{Func: "cdr", Args: args}
	}
	_, tail := store.GetCons(c)
	return finish(tail, kont, store)
}

func rootCompare(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	switch interp.Compare(args[0], args[1], store) {
	case -1:
		return finish(interp.Sym(symbol.Intern("lt")), kont, store)
	case 1:
		return finish(interp.Sym(symbol.Intern("gt")), kont, store)
	default:
		return finish(interp.Sym(symbol.Intern("eq")), kont, store)
	}
}

func rootCons(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	return finish(store.AllocCons(args[0], args[1]), kont, store)
}

func rootEq(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	return finish(boolify(shallowEq(args[0], args[1])), kont, store)
}

// shallowEq compares handles/scalars directly, without recursing into
// structure -- the "pointer equality" variant original_source's `eq`
// implements via Rust's derived PartialEq over the handle-bearing enum.
func shallowEq(a, b interp.Value) bool {
	switch at := a.(type) {
	case interp.Byte:
		bt, ok := b.(interp.Byte)
		return ok && at == bt
	case interp.Fixnum:
		bt, ok := b.(interp.Fixnum)
		return ok && at == bt
	case interp.Nil:
		_, ok := b.(interp.Nil)
		return ok
	case interp.Sym:
		bt, ok := b.(interp.Sym)
		return ok && at == bt
	case interp.Bytes:
		bt, ok := b.(interp.Bytes)
		return ok && at == bt
	case interp.String:
		bt, ok := b.(interp.String)
		return ok && at == bt
	case interp.Vector:
		bt, ok := b.(interp.Vector)
		return ok && at == bt
	case interp.Cons:
		bt, ok := b.(interp.Cons)
		return ok && at == bt
	case interp.Closure:
		bt, ok := b.(interp.Closure)
		return ok && at == bt
	case interp.Atom:
		bt, ok := b.(interp.Atom)
		return ok && at == bt
	default:
		return false
	}
}

func rootEqNum(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	toFixnum := func(v interp.Value) (interp.Fixnum, bool) {
		switch t := v.(type) {
		case interp.Fixnum:
			return t, true
		case interp.Byte:
			return interp.Fixnum(t), true
		default:
			return 0, false
		}
	}
	l, lok := toFixnum(args[0])
	r, rok := toFixnum(args[1])
	if !lok || !rok {
		return interp.State{}, &ErrType{Func: "eq_num", Args: args}
	}
	return finish(boolify(l == r), kont, store)
}

func rootEquals(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	return finish(boolify(interp.Equal(args[0], args[1], store)), kont, store)
}

func rootGensym(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	return finish(interp.Sym(symbol.Gensym()), kont, store)
}

func rootList(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	var l interp.Value = interp.Nil{}
	for i := len(args) - 1; i >= 0; i-- {
		l = store.AllocCons(args[i], l)
	}
	return finish(l, kont, store)
}

func rootPanic(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
	if c, ok := args[0].(interp.Cons); ok {
		head, tail := store.GetCons(c)
		if s, ok := head.(interp.Sym); ok && symbol.Symbol(s).String() == "exit" {
			if n, ok := tail.(interp.Fixnum); ok {
				code := int(n)
				return interp.State{}, &interp.Abort{Message: "exit", ExitCode: &code}
			}
		}
	}
	if s, ok := args[0].(interp.Sym); ok && symbol.Symbol(s).String() == "exit" {
		code := 0
		return interp.State{}, &interp.Abort{Message: "exit", ExitCode: &code}
	}
	return interp.State{}, &interp.Abort{Message: interp.Print(args[0], store)}
}

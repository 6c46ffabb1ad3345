package intrinsics

import (
	gostrings "strings"

	"github.com/oftac-lang/oftac/pkg/interp"
)

// installString registers "string", a friendlier surface over the
// string/bytes-free text operations strings already provides
// (append/length/slice), plus the case-conversion, splitting, and joining
// operations a surface-level reader expects and that original_source's
// lower-level module has no counterpart for; these lean on the standard
// library's unicode-aware strings package rather than hand-rolled rune
// scanning.
func installString(r *Registry) {
	r.Register("string", "string-concat", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		l, lok := args[0].(interp.String)
		rr, rok := args[1].(interp.String)
		if !lok || !rok {
			return interp.State{}, &ErrType{Func: "string-concat", Args: args}
		}
		return finish(store.AppendString(store.GetString(l)+store.GetString(rr)), kont, store)
	})
	r.Register("string", "string-length", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		s, ok := args[0].(interp.String)
		if !ok {
			return interp.State{}, &ErrType{Func: "string-length", Args: args}
		}
		return finish(interp.Fixnum(s.Len), kont, store)
	})
	r.Register("string", "string-upper", stringMap(gostrings.ToUpper))
	r.Register("string", "string-lower", stringMap(gostrings.ToLower))
	r.Register("string", "string-substring", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		s, sok := args[0].(interp.String)
		start, stok := args[1].(interp.Fixnum)
		end, eok := args[2].(interp.Fixnum)
		if !sok || !stok || !eok || start < 0 || end < start || int(end) > s.Len {
			return interp.State{}, &ErrType{Func: "string-substring", Args: args}
		}
		runes := []rune(store.GetString(s))
		return finish(store.AppendString(string(runes[start:end])), kont, store)
	})
	r.Register("string", "string-split", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		s, sok := args[0].(interp.String)
		sep, sepok := args[1].(interp.String)
		if !sok || !sepok {
			return interp.State{}, &ErrType{Func: "string-split", Args: args}
		}
		parts := gostrings.Split(store.GetString(s), store.GetString(sep))
		elems := make([]interp.Value, len(parts))
		for i, p := range parts {
			elems[i] = store.AppendString(p)
		}
		return finish(store.AppendVector(elems), kont, store)
	})
	r.Register("string", "string-join", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		v, vok := args[0].(interp.Vector)
		sep, sepok := args[1].(interp.String)
		if !vok || !sepok {
			return interp.State{}, &ErrType{Func: "string-join", Args: args}
		}
		elems := store.GetVector(v)
		parts := make([]string, len(elems))
		for i, e := range elems {
			s, ok := e.(interp.String)
			if !ok {
				return interp.State{}, &ErrType{Func: "string-join", Args: args}
			}
			parts[i] = store.GetString(s)
		}
		return finish(store.AppendString(gostrings.Join(parts, store.GetString(sep))), kont, store)
	})
}

func stringMap(f func(string) string) interp.IntrinsicFunc {
	return func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		s, ok := args[0].(interp.String)
		if !ok {
			return interp.State{}, &ErrType{Func: "string-case", Args: args}
		}
		return finish(store.AppendString(f(store.GetString(s))), kont, store)
	}
}

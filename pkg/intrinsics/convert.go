package intrinsics

import (
	"github.com/oftac-lang/oftac/pkg/interp"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// installConvert registers "convert", grounded on original_source's
// convert module (a subset: the byte/fixnum and string/symbol/list/vector
// conversions; oftb's object-system conversions have no counterpart here
// since this rework carries no object-type intrinsic).
func installConvert(r *Registry) {
	r.Register("convert", "byte_to_fixnum", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		b, ok := args[0].(interp.Byte)
		if !ok {
			return interp.State{}, &ErrType{Func: "byte->fixnum", Args: args}
		}
		return finish(interp.Fixnum(b), kont, store)
	})
	r.Register("convert", "fixnum_to_byte", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		n, ok := args[0].(interp.Fixnum)
		if !ok {
			return interp.State{}, &ErrType{Func: "fixnum->byte", Args: args}
		}
		return finish(interp.Byte(uint8(n)), kont, store)
	})
	r.Register("convert", "string_to_symbol", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		s, ok := args[0].(interp.String)
		if !ok {
			return interp.State{}, &ErrType{Func: "string->symbol", Args: args}
		}
		return finish(interp.Sym(symbol.Intern(store.GetString(s))), kont, store)
	})
	r.Register("convert", "symbol_to_string", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		s, ok := args[0].(interp.Sym)
		if !ok {
			return interp.State{}, &ErrType{Func: "symbol->string", Args: args}
		}
		return finish(store.AppendString(symbol.Symbol(s).String()), kont, store)
	})
	r.Register("convert", "list_to_vector", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		var elems []interp.Value
		cur := args[0]
		for {
			switch c := cur.(type) {
			case interp.Cons:
				head, tail := store.GetCons(c)
				elems = append(elems, head)
				cur = tail
			case interp.Nil:
				return finish(store.AppendVector(elems), kont, store)
			default:
				return interp.State{}, &ErrType{Func: "list->vector", Args: args}
			}
		}
	})
}

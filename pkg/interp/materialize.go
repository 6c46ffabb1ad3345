package interp

import (
	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// materialize converts a literal.Value (parsed once at compile time) into
// a run-time Value, allocating into the store's buffers as needed.
func materialize(v literal.Value, store *Store) Value {
	switch t := v.(type) {
	case literal.Byte:
		return Byte(t)
	case literal.Fixnum:
		return Fixnum(t)
	case literal.Nil:
		return Nil{}
	case literal.Bytes:
		return store.AppendBytes([]byte(t))
	case literal.String:
		return store.AppendString(string(t))
	case literal.Sym:
		return Sym(symbol.Symbol(t))
	case *literal.Cons:
		head := materialize(t.Head, store)
		tail := materialize(t.Tail, store)
		return store.AllocCons(head, tail)
	case literal.Vector:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = materialize(e, store)
		}
		return store.AppendVector(elems)
	default:
		panic("interp: unknown literal kind")
	}
}

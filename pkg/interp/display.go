package interp

import (
	"fmt"
	"strings"

	"github.com/oftac-lang/oftac/pkg/symbol"
)

// kindName names a Value's dynamic type for error messages and ordering.
func kindName(v Value) string {
	switch v.(type) {
	case Atom:
		return "atom"
	case Byte:
		return "byte"
	case Bytes:
		return "bytes"
	case Closure:
		return "function"
	case Cons:
		return "cons"
	case Fixnum:
		return "fixnum"
	case Intrinsic:
		return "function"
	case Nil:
		return "nil"
	case String:
		return "string"
	case Sym:
		return "symbol"
	case Vector:
		return "vector"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// kindRank gives the total order over kinds: Byte < Bytes < Closure <
// Cons < Fixnum < Intrinsic < Nil < String < Symbol < Vector. Atom is a
// host-level addition with no place in that order, so it sorts last.
func kindRank(v Value) int {
	switch v.(type) {
	case Byte:
		return 0
	case Bytes:
		return 1
	case Closure:
		return 2
	case Cons:
		return 3
	case Fixnum:
		return 4
	case Intrinsic:
		return 5
	case Nil:
		return 6
	case String:
		return 7
	case Sym:
		return 8
	case Vector:
		return 9
	case Atom:
		return 10
	default:
		panic(fmt.Sprintf("interp: unknown value kind %T", v))
	}
}

// Write renders v in the escaping ("write") display mode: strings and
// byte strings are escaped the same way Literals are.
func Write(v Value, store *Store) string {
	var b strings.Builder
	writeValue(&b, v, store, true)
	return b.String()
}

// Print renders v in the non-escaping ("print") display mode used for
// program output, including main's return value.
func Print(v Value, store *Store) string {
	var b strings.Builder
	writeValue(&b, v, store, false)
	return b.String()
}

func writeValue(b *strings.Builder, v Value, store *Store, escape bool) {
	switch t := v.(type) {
	case Byte:
		fmt.Fprintf(b, "%d", uint8(t))
	case Fixnum:
		fmt.Fprintf(b, "%d", int64(t))
	case Nil:
		b.WriteString("()")
	case Bytes:
		raw := store.GetBytes(t)
		if escape {
			b.WriteString(`b"`)
			for _, by := range raw {
				fmt.Fprintf(b, `\x%02x`, by)
			}
			b.WriteByte('"')
		} else {
			b.Write(raw)
		}
	case String:
		s := store.GetString(t)
		if escape {
			writeEscapedString(b, s)
		} else {
			b.WriteString(s)
		}
	case Sym:
		b.WriteString(symbol.Symbol(t).String())
	case Cons:
		b.WriteByte('(')
		head, tail := store.GetCons(t)
		writeValue(b, head, store, escape)
		for {
			switch tt := tail.(type) {
			case Cons:
				h, t2 := store.GetCons(tt)
				b.WriteByte(' ')
				writeValue(b, h, store, escape)
				tail = t2
			case Nil:
				b.WriteByte(')')
				return
			default:
				b.WriteString(" | ")
				writeValue(b, tail, store, escape)
				b.WriteByte(')')
				return
			}
		}
	case Vector:
		b.WriteByte('[')
		for i, e := range store.GetVector(t) {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, e, store, escape)
		}
		b.WriteByte(']')
	case Closure:
		_, _, _, optName := store.GetClosure(t)
		if optName != nil {
			fmt.Fprintf(b, "<<function %s>>", optName.String())
		} else {
			b.WriteString("<<function>>")
		}
	case Intrinsic:
		fmt.Fprintf(b, "<<function %s>>", t.Name.String())
	case Atom:
		fmt.Fprintf(b, "<<atom %d>>", int(t.Addr))
	default:
		fmt.Fprintf(b, "#<unknown:%T>", v)
	}
}

func writeEscapedString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				b.WriteRune(r)
			case r <= 0xff:
				fmt.Fprintf(b, `\x%02x`, r)
			case r <= 0xffff:
				fmt.Fprintf(b, `\u%04x`, r)
			default:
				fmt.Fprintf(b, `\U%08x`, r)
			}
		}
	}
	b.WriteByte('"')
}

// Equal performs structural (deep) equality. Cyclic structures through a
// closure's captured environment would diverge here; nothing guards
// against them.
func Equal(a, b Value, store *Store) bool {
	switch at := a.(type) {
	case Byte:
		bt, ok := b.(Byte)
		return ok && at == bt
	case Fixnum:
		bt, ok := b.(Fixnum)
		return ok && at == bt
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Sym:
		bt, ok := b.(Sym)
		return ok && at == bt
	case Bytes:
		bt, ok := b.(Bytes)
		return ok && at.Len == bt.Len && string(store.GetBytes(at)) == string(store.GetBytes(bt))
	case String:
		bt, ok := b.(String)
		return ok && at.Len == bt.Len && store.GetString(at) == store.GetString(bt)
	case Cons:
		bt, ok := b.(Cons)
		if !ok {
			return false
		}
		lh, lt := store.GetCons(at)
		rh, rt := store.GetCons(bt)
		return Equal(lh, rh, store) && Equal(lt, rt, store)
	case Vector:
		bt, ok := b.(Vector)
		if !ok || at.Len != bt.Len {
			return false
		}
		l, r := store.GetVector(at), store.GetVector(bt)
		for i := range l {
			if !Equal(l[i], r[i], store) {
				return false
			}
		}
		return true
	case Intrinsic:
		bt, ok := b.(Intrinsic)
		return ok && at.id == bt.id
	case Closure:
		bt, ok := b.(Closure)
		return ok && at.Addr == bt.Addr
	case Atom:
		bt, ok := b.(Atom)
		return ok && at.Addr == bt.Addr
	default:
		return false
	}
}

// Compare implements a total order over values: first by kind, then
// lexicographically within kind by content. It returns -1, 0, or 1.
func Compare(a, b Value, store *Store) int {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch at := a.(type) {
	case Byte:
		return compareOrdered(at, b.(Byte))
	case Fixnum:
		return compareOrdered(at, b.(Fixnum))
	case Nil:
		return 0
	case Sym:
		return strings.Compare(symbol.Symbol(at).String(), symbol.Symbol(b.(Sym)).String())
	case Bytes:
		return strings.Compare(string(store.GetBytes(at)), string(store.GetBytes(b.(Bytes))))
	case String:
		return strings.Compare(store.GetString(at), store.GetString(b.(String)))
	case Cons:
		bt := b.(Cons)
		lh, lt := store.GetCons(at)
		rh, rt := store.GetCons(bt)
		if c := Compare(lh, rh, store); c != 0 {
			return c
		}
		return Compare(lt, rt, store)
	case Vector:
		bt := b.(Vector)
		l, r := store.GetVector(at), store.GetVector(bt)
		n := len(l)
		if len(r) < n {
			n = len(r)
		}
		for i := 0; i < n; i++ {
			if c := Compare(l[i], r[i], store); c != 0 {
				return c
			}
		}
		return compareOrdered(len(l), len(r))
	case Closure, Intrinsic, Atom:
		return 0
	default:
		panic(fmt.Sprintf("interp: cannot compare %T", a))
	}
}

func compareOrdered[T ~int | ~int64 | ~uint8](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

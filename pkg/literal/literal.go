// Package literal implements the recursive S-expression value type that is
// the common currency between the reader, the AST, and the on-disk bytecode
// constant table.
package literal

import (
	"fmt"
	"strings"

	"github.com/oftac-lang/oftac/pkg/symbol"
)

// Value is a Literal: a tagged sum of Byte, Fixnum, Nil, Bytes, String,
// Symbol, Cons, and Vector. The marker method keeps the set of
// implementations closed to this package's concrete types.
type Value interface {
	literalValue()
	fmt.Stringer
}

// Byte is a single octet, distinct from a one-element Bytes or a Fixnum.
type Byte uint8

func (Byte) literalValue() {}

// Fixnum is a signed machine-word integer, fixed at int64.
type Fixnum int64

func (Fixnum) literalValue() {}

// Nil is the empty list / unit value. It is distinct from an empty Vector
// and an empty String.
type Nil struct{}

func (Nil) literalValue() {}

// Bytes is a finite ordered sequence of octets.
type Bytes []byte

func (Bytes) literalValue() {}

// String is UTF-8 text.
type String string

func (String) literalValue() {}

// Sym is an interned symbol.
type Sym symbol.Symbol

func (Sym) literalValue() {}

func (s Sym) String() string { return symbol.Symbol(s).String() }

// Cons is a pair; chains of Cons terminated by Nil form proper lists,
// anything else makes an improper list.
type Cons struct {
	Head Value
	Tail Value
}

func (*Cons) literalValue() {}

// Vector is a finite ordered sequence of Literals, distinct from a proper
// list built out of Cons/Nil.
type Vector []Value

func (Vector) literalValue() {}

// NewCons builds a single Cons cell. Literal values are otherwise
// constructed directly as Go composite literals; this helper exists only
// to mirror the point at which the source allocates a boxed pair.
func NewCons(head, tail Value) Value {
	return &Cons{Head: head, Tail: tail}
}

// List builds a right-nested Cons chain terminated by Nil from a slice.
func List(elems []Value) Value {
	var v Value = Nil{}
	for i := len(elems) - 1; i >= 0; i-- {
		v = NewCons(elems[i], v)
	}
	return v
}

// IsList reports whether a chain of Cons cells terminates in Nil.
func IsList(v Value) bool {
	for {
		switch t := v.(type) {
		case Nil:
			return true
		case *Cons:
			v = t.Tail
		default:
			return false
		}
	}
}

// IsSHL reports whether v is a "symbol-headed list": a proper list whose
// first element is the given symbol.
func IsSHL(v Value, sym symbol.Symbol) bool {
	c, ok := v.(*Cons)
	if !ok {
		return false
	}
	h, ok := c.Head.(Sym)
	if !ok || symbol.Symbol(h) != sym {
		return false
	}
	return IsList(c.Tail)
}

// AsList returns the elements of a proper list, or ok=false if v is not
// one (Cons chains not terminated by Nil, or an atom).
func AsList(v Value) (elems []Value, ok bool) {
	for {
		switch t := v.(type) {
		case Nil:
			return elems, true
		case *Cons:
			elems = append(elems, t.Head)
			v = t.Tail
		default:
			return nil, false
		}
	}
}

// AsSymbolList returns a proper list's elements, requiring every element to
// be a Symbol.
func AsSymbolList(v Value) (syms []symbol.Symbol, ok bool) {
	elems, ok := AsList(v)
	if !ok {
		return nil, false
	}
	syms = make([]symbol.Symbol, 0, len(elems))
	for _, e := range elems {
		s, ok := e.(Sym)
		if !ok {
			return nil, false
		}
		syms = append(syms, symbol.Symbol(s))
	}
	return syms, true
}

// AsSHL splits a symbol-headed list into its head symbol and the tail
// list's elements.
func AsSHL(v Value) (head symbol.Symbol, tail []Value, ok bool) {
	c, ok := v.(*Cons)
	if !ok {
		return symbol.Symbol{}, nil, false
	}
	h, ok := c.Head.(Sym)
	if !ok {
		return symbol.Symbol{}, nil, false
	}
	tail, ok = AsList(c.Tail)
	if !ok {
		return symbol.Symbol{}, nil, false
	}
	return symbol.Symbol(h), tail, true
}

// AsSHP matches a literal of the form `(sym val)`, a "symbol-head pair".
func AsSHP(v Value) (head symbol.Symbol, val Value, ok bool) {
	head, tail, ok := AsSHL(v)
	if !ok || len(tail) != 1 {
		return symbol.Symbol{}, nil, false
	}
	return head, tail[0], true
}

// Display renders a Literal in its bit-exact textual form.
func Display(v Value) string {
	var b strings.Builder
	writeLiteral(&b, v)
	return b.String()
}

func (b Byte) String() string   { return fmt.Sprintf("%d", uint8(b)) }
func (f Fixnum) String() string { return fmt.Sprintf("%d", int64(f)) }
func (Nil) String() string      { return "()" }
func (bs Bytes) String() string { return Display(bs) }
func (s String) String() string { return Display(s) }
func (c *Cons) String() string  { return Display(c) }
func (v Vector) String() string { return Display(v) }

func writeLiteral(b *strings.Builder, v Value) {
	switch t := v.(type) {
	case Byte:
		fmt.Fprintf(b, "%d", uint8(t))
	case Fixnum:
		fmt.Fprintf(b, "%d", int64(t))
	case Nil:
		b.WriteString("()")
	case Bytes:
		b.WriteString(`b"`)
		for _, by := range t {
			fmt.Fprintf(b, `\x%02x`, by)
		}
		b.WriteByte('"')
	case String:
		writeEscapedString(b, string(t))
	case Sym:
		b.WriteString(t.String())
	case *Cons:
		b.WriteByte('(')
		writeLiteral(b, t.Head)
		tail := t.Tail
		for {
			switch tt := tail.(type) {
			case *Cons:
				b.WriteByte(' ')
				writeLiteral(b, tt.Head)
				tail = tt.Tail
			case Nil:
				b.WriteByte(')')
				return
			default:
				b.WriteString(" | ")
				writeLiteral(b, tail)
				b.WriteByte(')')
				return
			}
		}
	case Vector:
		b.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeLiteral(b, e)
		}
		b.WriteByte(']')
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

// Equal performs structural (deep) equality. Cyclic structures would
// diverge here; nothing in this package guards against them.
func Equal(a, b Value) bool {
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
	case Bytes:
		bt, ok := b.(Bytes)
		return ok && string(at) == string(bt)
	case String:
		bt, ok := b.(String)
		return ok && at == bt
	case Sym:
		bt, ok := b.(Sym)
		return ok && at == bt
	case *Cons:
		bt, ok := b.(*Cons)
		return ok && Equal(at.Head, bt.Head) && Equal(at.Tail, bt.Tail)
	case Vector:
		bt, ok := b.(Vector)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !Equal(at[i], bt[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Package interp implements the CESK abstract machine that evaluates a
// linked flatanf.Program: a Control/Environment/Store/Kontinuation-stack
// interpreter that steps an expression to a Value without recursing the
// host call stack for tail position.
package interp

import (
	"github.com/oftac-lang/oftac/pkg/flatanf"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// Addr is a handle into one of the Store's segregated buffers. It stays
// valid across reallocation of the buffer it indexes, unlike a native
// pointer into a growing slice.
type Addr int

// Value is anything the machine can hold in a register, environment slot,
// or store cell. Composite values (Bytes, String, Vector) are themselves
// handles plus a length into a segregated buffer; Cons and Closure are
// handles into the value and closure buffers respectively.
type Value interface {
	valueNode()
}

type Byte uint8

func (Byte) valueNode() {}

type Fixnum int64

func (Fixnum) valueNode() {}

type Nil struct{}

func (Nil) valueNode() {}

type Sym symbol.Symbol

func (Sym) valueNode() {}

// Bytes is a handle plus length into the store's byte buffer.
type Bytes struct {
	Addr Addr
	Len  int
}

func (Bytes) valueNode() {}

// String is a handle plus length into the store's string (rune) buffer.
type String struct {
	Addr Addr
	Len  int
}

func (String) valueNode() {}

// Vector is a handle plus length into the store's vector-element buffer;
// the Len values starting at Addr are themselves Values.
type Vector struct {
	Addr Addr
	Len  int
}

func (Vector) valueNode() {}

// Cons is a handle to a pair of Values in the store's value buffer.
type Cons struct {
	Addr Addr
}

func (Cons) valueNode() {}

// Closure is a handle to a Closure record in the store's closure buffer.
type Closure struct {
	Addr Addr
}

func (Closure) valueNode() {}

// Atom is a handle to a mutable single-cell box in the store's atom
// buffer. Unlike every other Value, the cell an Atom addresses can be
// overwritten in place: every other store buffer is strictly append-only,
// and Atom is the one place mutation after allocation is introduced, as a
// host-level intrinsics feature layered on top.
type Atom struct {
	Addr Addr
}

func (Atom) valueNode() {}

// Intrinsic wraps a host function. Two Intrinsic values are equal iff they
// wrap the same function (compared by registry-assigned identity, since Go
// func values are not comparable).
type Intrinsic struct {
	id   int
	Name symbol.Symbol
	Fn   IntrinsicFunc
}

func (Intrinsic) valueNode() {}

// IntrinsicFunc is the contract a host function satisfies: given its
// already-evaluated arguments, the mutable store, and the current
// continuation stack, it returns the machine's next State. An intrinsic
// either delivers a value itself (via Kontinue) or installs new frames
// (e.g. make-vector) and calls Apply again.
type IntrinsicFunc func(args []Value, store *Store, kont KontStack) (State, error)

// closureRecord is the store's representation of an allocated closure.
type closureRecord struct {
	Argn    int
	Body    flatanf.Expr
	Env     Env
	OptName *symbol.Symbol
}

// pairRecord is a Cons cell's payload in the value buffer.
type pairRecord struct {
	Head Value
	Tail Value
}

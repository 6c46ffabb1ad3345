package interp

import (
	"github.com/oftac-lang/oftac/pkg/flatanf"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// Store holds every value the interpreter has allocated, segregated into
// independent append-only buffers. Nothing is ever freed: the machine has
// no deallocation, only monotonic growth. Addr values are offsets and
// stay valid across any buffer's reallocation.
type Store struct {
	bytes  []byte
	runes  []rune
	vecs   []Value
	values []pairRecord
	closes []closureRecord
	atoms  []Value
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// AppendBytes copies b into the byte buffer and returns a Bytes value.
func (s *Store) AppendBytes(b []byte) Bytes {
	addr := Addr(len(s.bytes))
	s.bytes = append(s.bytes, b...)
	return Bytes{Addr: addr, Len: len(b)}
}

// GetBytes returns the byte slice a Bytes value addresses.
func (s *Store) GetBytes(v Bytes) []byte {
	return s.bytes[int(v.Addr) : int(v.Addr)+v.Len]
}

// AppendString copies the runes of str into the string buffer and returns
// a String value.
func (s *Store) AppendString(str string) String {
	addr := Addr(len(s.runes))
	runes := []rune(str)
	s.runes = append(s.runes, runes...)
	return String{Addr: addr, Len: len(runes)}
}

// GetString returns the string a String value addresses.
func (s *Store) GetString(v String) string {
	return string(s.runes[int(v.Addr) : int(v.Addr)+v.Len])
}

// AppendVector copies elems into the vector buffer and returns a Vector
// value referencing them contiguously.
func (s *Store) AppendVector(elems []Value) Vector {
	addr := Addr(len(s.vecs))
	s.vecs = append(s.vecs, elems...)
	return Vector{Addr: addr, Len: len(elems)}
}

// GetVector returns the element slice a Vector value addresses.
func (s *Store) GetVector(v Vector) []Value {
	return s.vecs[int(v.Addr) : int(v.Addr)+v.Len]
}

// AllocCons allocates a new pair cell and returns a handle to it.
func (s *Store) AllocCons(head, tail Value) Cons {
	addr := Addr(len(s.values))
	s.values = append(s.values, pairRecord{Head: head, Tail: tail})
	return Cons{Addr: addr}
}

// GetCons returns the head and tail of a Cons value.
func (s *Store) GetCons(v Cons) (head, tail Value) {
	p := s.values[int(v.Addr)]
	return p.Head, p.Tail
}

// AllocClosure allocates a closure record with the given captured
// environment and returns a handle to it. LetRec's two-pass allocation
// calls this first with an empty Env, then BackpatchClosureEnv
// once every mutually-recursive binding in the group has a handle.
func (s *Store) AllocClosure(argn int, body flatanf.Expr, env Env, optName *symbol.Symbol) Closure {
	addr := Addr(len(s.closes))
	s.closes = append(s.closes, closureRecord{Argn: argn, Body: body, Env: env, OptName: optName})
	return Closure{Addr: addr}
}

// BackpatchClosureEnv replaces a closure's captured environment in place.
func (s *Store) BackpatchClosureEnv(c Closure, env Env) {
	s.closes[int(c.Addr)].Env = env
}

// GetClosure returns a closure's record.
func (s *Store) GetClosure(c Closure) (argn int, body flatanf.Expr, env Env, optName *symbol.Symbol) {
	r := s.closes[int(c.Addr)]
	return r.Argn, r.Body, r.Env, r.OptName
}

// NameClosure sets a closure's diagnostic name if it does not already have
// one, mirroring the original interpreter's mutate_closure_name used when
// naming top-level globals after evaluation.
func (s *Store) NameClosure(c Closure, name symbol.Symbol) {
	if s.closes[int(c.Addr)].OptName == nil {
		n := name
		s.closes[int(c.Addr)].OptName = &n
	}
}

// AllocAtom allocates a new mutable cell holding init and returns a handle
// to it.
func (s *Store) AllocAtom(init Value) Atom {
	addr := Addr(len(s.atoms))
	s.atoms = append(s.atoms, init)
	return Atom{Addr: addr}
}

// GetAtom returns the current value held in an atom's cell.
func (s *Store) GetAtom(a Atom) Value {
	return s.atoms[int(a.Addr)]
}

// SetAtom overwrites the value held in an atom's cell in place and returns
// the new value, for swap!/reset!'s return-value convention.
func (s *Store) SetAtom(a Atom, v Value) Value {
	s.atoms[int(a.Addr)] = v
	return v
}

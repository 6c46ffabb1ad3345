// Package symbol provides process-wide interning of Lisp symbol names.
//
// A Symbol is a small handle into a global intern table; two symbols with
// the same name compare equal as plain integers, so environments, global
// maps, and de Bruijn contexts never need to hash or compare strings once a
// name has been interned. The table is append-only for the lifetime of the
// process: init on first use, no teardown.
package symbol

import (
	"strconv"
	"sync"
	"sync/atomic"
)

// Symbol is an interned name. The zero Symbol is not a valid handle; use
// Intern to obtain one.
type Symbol struct {
	id int32
}

var (
	mu      sync.RWMutex
	byName  = make(map[string]int32)
	byID    = make([]string, 0, 256)
	gensymN int64
)

// Intern returns the Symbol for name, interning it on first use.
func Intern(name string) Symbol {
	mu.RLock()
	if id, ok := byName[name]; ok {
		mu.RUnlock()
		return Symbol{id: id}
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if id, ok := byName[name]; ok {
		return Symbol{id: id}
	}
	id := int32(len(byID))
	byID = append(byID, name)
	byName[name] = id
	return Symbol{id: id}
}

// String returns the interned name.
func (s Symbol) String() string {
	mu.RLock()
	defer mu.RUnlock()
	return byID[s.id]
}

// Gensym produces a fresh symbol of the form "gensym@N" from a monotonic
// counter. The '@' character is reserved: the reader must never accept it
// in a user-level identifier, so a gensym can never collide with source
// text.
func Gensym() Symbol {
	n := atomic.AddInt64(&gensymN, 1) - 1
	return Intern("gensym@" + strconv.FormatInt(n, 10))
}

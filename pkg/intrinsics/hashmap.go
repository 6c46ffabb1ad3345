package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installHashmap registers "hashmap". There is no dedicated map Value
// kind in this machine's data model, so a hash-map is represented as a
// Vector of alternating key/value elements -- an association list with
// Vector's existing storage and structural-equality support, rather than
// a new Value variant just for this. put is immutable: it returns a new
// Vector, consistent with every other builder here.
func installHashmap(r *Registry) {
	r.Register("hashmap", "hash-map", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		if len(args)%2 != 0 {
			return interp.State{}, &ErrType{Func: "hash-map", Args: args}
		}
		return finish(store.AppendVector(append([]interp.Value{}, args...)), kont, store)
	})
	r.Register("hashmap", "hash-map-get", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		m, key := args[0], args[1]
		elems, ok := hashmapEntries(m, store)
		if !ok {
			return interp.State{}, &ErrType{Func: "hash-map-get", Args: args}
		}
		for i := 0; i < len(elems); i += 2 {
			if interp.Equal(elems[i], key, store) {
				return finish(elems[i+1], kont, store)
			}
		}
		return finish(interp.Nil{}, kont, store)
	})
	r.Register("hashmap", "hash-map-put", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		m, key, val := args[0], args[1], args[2]
		elems, ok := hashmapEntries(m, store)
		if !ok {
			return interp.State{}, &ErrType{Func: "hash-map-put", Args: args}
		}
		out := append([]interp.Value{}, elems...)
		replaced := false
		for i := 0; i < len(out); i += 2 {
			if interp.Equal(out[i], key, store) {
				out[i+1] = val
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, key, val)
		}
		return finish(store.AppendVector(out), kont, store)
	})
	r.Register("hashmap", "hash-map-keys", hashmapProject(0))
	r.Register("hashmap", "hash-map-values", hashmapProject(1))
}

func hashmapEntries(v interp.Value, store *interp.Store) ([]interp.Value, bool) {
	vec, ok := v.(interp.Vector)
	if !ok || vec.Len%2 != 0 {
		return nil, false
	}
	return store.GetVector(vec), true
}

func hashmapProject(offset int) interp.IntrinsicFunc {
	return func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		elems, ok := hashmapEntries(args[0], store)
		if !ok {
			return interp.State{}, &ErrType{Func: "hash-map-project", Args: args}
		}
		var out []interp.Value
		for i := offset; i < len(elems); i += 2 {
			out = append(out, elems[i])
		}
		return finish(store.AppendVector(out), kont, store)
	}
}

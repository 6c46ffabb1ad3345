package intrinsics

import (
	"fmt"
	"os"

	"github.com/oftac-lang/oftac/pkg/interp"
)

// installIO registers "io", grounded on original_source's io module
// (print/println/write/writeln/debug_print): print* use the non-escaping
// display form, write* use the escaping form. read-file/write-file/
// file-exists? are adapted from a plugin-style file module, which this
// machine's append-only String/Bytes buffers have no trouble hosting.
func installIO(r *Registry) {
	r.Register("io", "print", ioWriter(os.Stdout, false, false))
	r.Register("io", "println", ioWriter(os.Stdout, false, true))
	r.Register("io", "write", ioWriter(os.Stdout, true, false))
	r.Register("io", "writeln", ioWriter(os.Stdout, true, true))
	r.Register("io", "debug_print", ioWriter(os.Stderr, false, true))

	r.Register("io", "read-file", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		path, ok := args[0].(interp.String)
		if !ok {
			return interp.State{}, &ErrType{Func: "read-file", Args: args}
		}
		data, err := os.ReadFile(store.GetString(path))
		if err != nil {
			return interp.State{}, err
		}
		return finish(store.AppendString(string(data)), kont, store)
	})
	r.Register("io", "write-file", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		path, pok := args[0].(interp.String)
		content, cok := args[1].(interp.String)
		if !pok || !cok {
			return interp.State{}, &ErrType{Func: "write-file", Args: args}
		}
		if err := os.WriteFile(store.GetString(path), []byte(store.GetString(content)), 0o644); err != nil {
			return interp.State{}, err
		}
		return finish(interp.Nil{}, kont, store)
	})
	r.Register("io", "file-exists?", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		path, ok := args[0].(interp.String)
		if !ok {
			return interp.State{}, &ErrType{Func: "file-exists?", Args: args}
		}
		_, err := os.Stat(store.GetString(path))
		return finish(boolify(err == nil), kont, store)
	})
}

func ioWriter(w *os.File, escape, newline bool) interp.IntrinsicFunc {
	return func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		for i, v := range args {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			if escape {
				fmt.Fprint(w, interp.Write(v, store))
			} else {
				fmt.Fprint(w, interp.Print(v, store))
			}
		}
		if newline {
			fmt.Fprintln(w)
		}
		return finish(interp.Nil{}, kont, store)
	}
}

package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installFixnum registers "fixnum"'s bitwise operators, grounded on
// original_source's fixnum module.
func installFixnum(r *Registry) {
	r.Register("fixnum", "and", fixnumBinOp("and", func(a, b int64) int64 { return a & b }))
	r.Register("fixnum", "or", fixnumBinOp("or", func(a, b int64) int64 { return a | b }))
	r.Register("fixnum", "xor", fixnumBinOp("xor", func(a, b int64) int64 { return a ^ b }))
	r.Register("fixnum", "rol", fixnumShift("rol", rotateLeft64))
	r.Register("fixnum", "ror", fixnumShift("ror", rotateRight64))
	r.Register("fixnum", "shl", fixnumShift("shl", func(a int64, n uint) int64 { return a << n }))
	r.Register("fixnum", "shr", fixnumShift("shr", func(a int64, n uint) int64 { return a >> n }))
	r.Register("fixnum", "not", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		n, ok := args[0].(interp.Fixnum)
		if !ok {
			return interp.State{}, &ErrType{Func: "not", Args: args}
		}
		return finish(interp.Fixnum(^int64(n)), kont, store)
	})
}

func fixnumBinOp(name string, op func(a, b int64) int64) interp.IntrinsicFunc {
	return func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		l, lok := args[0].(interp.Fixnum)
		r, rok := args[1].(interp.Fixnum)
		if !lok || !rok {
			return interp.State{}, &ErrType{Func: name, Args: args}
		}
		return finish(interp.Fixnum(op(int64(l), int64(r))), kont, store)
	}
}

func fixnumShift(name string, op func(a int64, n uint) int64) interp.IntrinsicFunc {
	return func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		l, lok := args[0].(interp.Fixnum)
		r, rok := args[1].(interp.Fixnum)
		if !lok || !rok {
			return interp.State{}, &ErrType{Func: name, Args: args}
		}
		return finish(interp.Fixnum(op(int64(l), uint(r)&63)), kont, store)
	}
}

func rotateLeft64(a int64, n uint) int64 {
	u := uint64(a)
	n &= 63
	return int64(u<<n | u>>(64-n))
}

func rotateRight64(a int64, n uint) int64 {
	u := uint64(a)
	n &= 63
	return int64(u>>n | u<<(64-n))
}

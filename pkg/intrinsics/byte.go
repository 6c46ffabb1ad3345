package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installByte registers "byte"'s bitwise operators, the Byte-typed
// counterpart to "fixnum" (grounded on original_source's byte module).
func installByte(r *Registry) {
	r.Register("byte", "and", byteBinOp("and", func(a, b uint8) uint8 { return a & b }))
	r.Register("byte", "or", byteBinOp("or", func(a, b uint8) uint8 { return a | b }))
	r.Register("byte", "xor", byteBinOp("xor", func(a, b uint8) uint8 { return a ^ b }))
	r.Register("byte", "rol", byteShift("rol", func(a uint8, n uint) uint8 {
		n &= 7
		return a<<n | a>>(8-n)
	}))
	r.Register("byte", "ror", byteShift("ror", func(a uint8, n uint) uint8 {
		n &= 7
		return a>>n | a<<(8-n)
	}))
	r.Register("byte", "shl", byteShift("shl", func(a uint8, n uint) uint8 {
		if n >= 8 {
			return 0
		}
		return a << n
	}))
	r.Register("byte", "shr", byteShift("shr", func(a uint8, n uint) uint8 {
		if n >= 8 {
			return 0
		}
		return a >> n
	}))
	r.Register("byte", "not", func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		n, ok := args[0].(interp.Byte)
		if !ok {
			return interp.State{}, &ErrType{Func: "not", Args: args}
		}
		return finish(interp.Byte(^uint8(n)), kont, store)
	})
}

func byteBinOp(name string, op func(a, b uint8) uint8) interp.IntrinsicFunc {
	return func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		l, lok := args[0].(interp.Byte)
		r, rok := args[1].(interp.Byte)
		if !lok || !rok {
			return interp.State{}, &ErrType{Func: name, Args: args}
		}
		return finish(interp.Byte(op(uint8(l), uint8(r))), kont, store)
	}
}

func byteShift(name string, op func(a uint8, n uint) uint8) interp.IntrinsicFunc {
	return func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		l, lok := args[0].(interp.Byte)
		r, rok := args[1].(interp.Byte)
		if !lok || !rok {
			return interp.State{}, &ErrType{Func: name, Args: args}
		}
		return finish(interp.Byte(op(uint8(l), uint(r))), kont, store)
	}
}

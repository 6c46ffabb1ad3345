package intrinsics

import "github.com/oftac-lang/oftac/pkg/interp"

// installMath registers "math". The four arithmetic ops plus modulo are
// grounded directly on original_source's math module; sqrt/pow/abs/min/max
// and the floor/ceil/round no-ops extend it to the names a surface-level
// caller expects. There is no float Value in this machine's kind ordering,
// so every one of these stays on the integer kinds (Byte or Fixnum): sqrt and
// pow work as integer operations, and floor/ceil/round are identity since
// a Fixnum is already its own floor.
func installMath(r *Registry) {
	r.Register("math", "add", mathBinOp("add", func(a, b int64) int64 { return a + b }))
	r.Register("math", "subtract", mathBinOp("subtract", func(a, b int64) int64 { return a - b }))
	r.Register("math", "multiply", mathBinOp("multiply", func(a, b int64) int64 { return a * b }))
	r.Register("math", "divide", mathBinOp("divide", func(a, b int64) int64 { return a / b }))
	r.Register("math", "modulo", mathBinOp("modulo", func(a, b int64) int64 { return a % b }))

	r.Register("math", "sqrt", mathUnOp("sqrt", isqrt))
	r.Register("math", "pow", mathBinOp("pow", ipow))
	r.Register("math", "abs", mathUnOp("abs", func(a int64) int64 {
		if a < 0 {
			return -a
		}
		return a
	}))
	r.Register("math", "min", mathBinOp("min", func(a, b int64) int64 {
		if a < b {
			return a
		}
		return b
	}))
	r.Register("math", "max", mathBinOp("max", func(a, b int64) int64 {
		if a > b {
			return a
		}
		return b
	}))
	r.Register("math", "floor", mathUnOp("floor", func(a int64) int64 { return a }))
	r.Register("math", "ceil", mathUnOp("ceil", func(a int64) int64 { return a }))
	r.Register("math", "round", mathUnOp("round", func(a int64) int64 { return a }))
}

func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

func ipow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	result := int64(1)
	for ; exp > 0; exp-- {
		result *= base
	}
	return result
}

func mathUnOp(name string, op func(a int64) int64) interp.IntrinsicFunc {
	return func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		switch v := args[0].(type) {
		case interp.Byte:
			return finish(interp.Byte(op(int64(v))), kont, store)
		case interp.Fixnum:
			return finish(interp.Fixnum(op(int64(v))), kont, store)
		default:
			return interp.State{}, &ErrType{Func: name, Args: args}
		}
	}
}

func mathBinOp(name string, op func(a, b int64) int64) interp.IntrinsicFunc {
	return func(args []interp.Value, store *interp.Store, kont interp.KontStack) (interp.State, error) {
		switch l := args[0].(type) {
		case interp.Byte:
			r, ok := args[1].(interp.Byte)
			if !ok {
				return interp.State{}, &ErrType{Func: name, Args: args}
			}
			return finish(interp.Byte(op(int64(l), int64(r))), kont, store)
		case interp.Fixnum:
			r, ok := args[1].(interp.Fixnum)
			if !ok {
				return interp.State{}, &ErrType{Func: name, Args: args}
			}
			return finish(interp.Fixnum(op(int64(l), int64(r))), kont, store)
		default:
			return interp.State{}, &ErrType{Func: name, Args: args}
		}
	}
}

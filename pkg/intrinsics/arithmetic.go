package intrinsics

// installArithmetic registers "arithmetic", the symbolic-operator aliases
// of math's add/subtract/multiply/divide/modulo -- the same dispatch over
// Byte- or Fixnum-typed operands, reachable under the conventional
// mathematical spelling a surface-level reader expects.
func installArithmetic(r *Registry) {
	r.Register("arithmetic", "+", mathBinOp("+", func(a, b int64) int64 { return a + b }))
	r.Register("arithmetic", "-", mathBinOp("-", func(a, b int64) int64 { return a - b }))
	r.Register("arithmetic", "*", mathBinOp("*", func(a, b int64) int64 { return a * b }))
	r.Register("arithmetic", "/", mathBinOp("/", func(a, b int64) int64 { return a / b }))
	r.Register("arithmetic", "%", mathBinOp("%", func(a, b int64) int64 { return a % b }))
}

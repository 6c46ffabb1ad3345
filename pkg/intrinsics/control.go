package intrinsics

// installControl registers "control" (panic, make-vector): the same
// abort-raising and continuation-driven construction root:panic and
// vector:make already implement, aliased under the names a reader of
// control-flow-oriented code expects to find them under.
func installControl(r *Registry) {
	r.Register("control", "panic", rootPanic)
	r.Register("control", "make-vector", vectorMake)
}

package interp

import (
	"github.com/oftac-lang/oftac/pkg/flatanf"
)

// Kont is one frame on the continuation stack. Unlike Env, the stack
// itself is mutated in place as the machine steps (it is never shared
// between states the way a captured closure environment is).
type Kont interface {
	kontNode()
}

// LetFrame resumes Body in Env with the just-computed value pushed to the
// front.
type LetFrame struct {
	Body flatanf.Expr
	Env  Env
}

func (LetFrame) kontNode() {}

// SeqFrame resumes Body in Env, discarding the just-computed value.
type SeqFrame struct {
	Body flatanf.Expr
	Env  Env
}

func (SeqFrame) kontNode() {}

// MakeVectorFrame drives the make-vector intrinsic's element-at-a-time
// construction: Cur is the next index to fill, Last is the final index,
// Func is applied to produce each element, and Acc accumulates the
// handles produced so far.
type MakeVectorFrame struct {
	Cur  int
	Last int
	Func Value
	Acc  []Value
}

func (MakeVectorFrame) kontNode() {}

// ListMapFrame drives list:map's element-at-a-time traversal: Fn is
// applied to each element of the remaining tail of the source list in
// turn, and Acc accumulates the mapped results in order.
type ListMapFrame struct {
	Fn        Value
	Remaining Value
	Acc       []Value
}

func (ListMapFrame) kontNode() {}

// ListFilterFrame drives list:filter the same way ListMapFrame drives
// map, except Head holds the element just tested by Fn and Acc only
// accumulates elements whose test was truthy.
type ListFilterFrame struct {
	Fn        Value
	Remaining Value
	Head      Value
	Acc       []Value
}

func (ListFilterFrame) kontNode() {}

// ListReduceFrame drives list:reduce's left fold: Fn is applied to the
// running accumulator and the next element of Remaining in turn.
type ListReduceFrame struct {
	Fn        Value
	Remaining Value
	Acc       Value
}

func (ListReduceFrame) kontNode() {}

// AtomSwapFrame resumes swap! once its updater function has produced the
// atom's new value: the value is stored in place and also becomes the
// call's result.
type AtomSwapFrame struct {
	Atom Atom
}

func (AtomSwapFrame) kontNode() {}

// KontStack is a LIFO stack of continuation frames.
type KontStack struct {
	frames []Kont
}

// NewKontStack returns an empty continuation stack.
func NewKontStack() KontStack {
	return KontStack{}
}

// Push adds a frame to the top of the stack and returns the updated
// stack (KontStack's backing slice is shared with the caller's, mirroring
// how a single machine run owns one linear stack).
func (k KontStack) Push(f Kont) KontStack {
	k.frames = append(k.frames, f)
	return k
}

// Pop removes and returns the top frame, or ok=false if the stack is
// empty (an empty pop halts the machine with the current value).
func (k KontStack) Pop() (f Kont, rest KontStack, ok bool) {
	if len(k.frames) == 0 {
		return nil, k, false
	}
	n := len(k.frames) - 1
	return k.frames[n], KontStack{frames: k.frames[:n]}, true
}

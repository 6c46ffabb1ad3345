package interp

import (
	"sort"

	"github.com/oftac-lang/oftac/pkg/flatanf"
	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

// BuiltinRegistry is what the core consumes from the host: a flat map
// from a built-in's qualified name (e.g. "arithmetic:+") to the host
// function implementing it.
type BuiltinRegistry interface {
	Builtins() map[symbol.Symbol]IntrinsicFunc
}

// Interpreter owns the store, the globals table, and runs the CESK
// machine to completion.
type Interpreter struct {
	Store   *Store
	Globals map[symbol.Symbol]Value

	nextIntrinsicID int
}

// New returns an interpreter with an empty store and globals table.
func New() *Interpreter {
	return &Interpreter{
		Store:   NewStore(),
		Globals: make(map[symbol.Symbol]Value),
	}
}

// AddBuiltins installs every function a registry supplies as an
// Intrinsic Value in globals, keyed by its qualified name.
func (in *Interpreter) AddBuiltins(reg BuiltinRegistry) {
	names := make([]symbol.Symbol, 0)
	fns := reg.Builtins()
	for name := range fns {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })
	for _, name := range names {
		in.nextIntrinsicID++
		in.Globals[name] = Intrinsic{id: in.nextIntrinsicID, Name: name, Fn: fns[name]}
	}
}

// Eval runs the machine from (Normal(expr), empty env, empty kont) to
// Halted and returns its value.
func (in *Interpreter) Eval(expr flatanf.Expr) (Value, error) {
	state := Running(expr, NewEnv(), NewKontStack())
	for !state.Halted {
		next, err := Step(state, in.Globals, in.Store)
		if err != nil {
			return nil, err
		}
		state = next
	}
	return state.Value, nil
}

// LoadProgram evaluates every decl in order into globals, naming any
// resulting closure for diagnostics, then calls main:main with argv as a
// list of strings and returns its result.
func (in *Interpreter) LoadProgram(prog *flatanf.Program, argv []string) (Value, error) {
	for _, decl := range prog.Decls {
		val, err := in.Eval(decl.Expr)
		if err != nil {
			return nil, err
		}
		if c, ok := val.(Closure); ok {
			in.Store.NameClosure(c, decl.Name)
		}
		in.Globals[decl.Name] = val
	}

	mainName := symbol.Intern("main:main")
	if _, ok := in.Globals[mainName]; !ok {
		return nil, &ErrNoMainFunction{}
	}

	args := make([]literal.Value, len(argv))
	for i, a := range argv {
		args[i] = literal.String(a)
	}
	mainCall := &flatanf.CExprNode{CExpr: &flatanf.Call{
		Func: &flatanf.Global{Name: mainName},
		Args: []flatanf.AExpr{&flatanf.Literal{Value: literal.List(args)}},
	}}
	return in.Eval(mainCall)
}

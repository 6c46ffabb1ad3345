package flatanf

import (
	"sort"

	"github.com/oftac-lang/oftac/pkg/anf"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

func qualify(mod, name symbol.Symbol) symbol.Symbol {
	return symbol.Intern(mod.String() + ":" + name.String())
}

// FromModules links a set of ANF modules against a table of built-in
// module exports into one flat Program, requiring the result to define
// main:main.
func FromModules(mods []*anf.Module, builtins map[symbol.Symbol][]symbol.Symbol) (*Program, error) {
	return link(mods, builtins, true)
}

// FromModulesLibrary is FromModules without the main:main requirement, for
// linking a library that will be embedded into a larger program rather
// than run directly.
func FromModulesLibrary(mods []*anf.Module, builtins map[symbol.Symbol][]symbol.Symbol) (*Program, error) {
	return link(mods, builtins, false)
}

func link(mods []*anf.Module, builtins map[symbol.Symbol][]symbol.Symbol, requireMain bool) (*Program, error) {
	builtinModules := make(map[symbol.Symbol]struct{}, len(builtins))
	intrinsics := make(map[symbol.Symbol]struct{})
	globals := make(map[symbol.Symbol]struct{})
	for mod, names := range builtins {
		builtinModules[mod] = struct{}{}
		for _, n := range names {
			g := qualify(mod, n)
			intrinsics[g] = struct{}{}
			globals[g] = struct{}{}
		}
	}

	order, err := toposortModules(mods, builtinModules)
	if err != nil {
		return nil, err
	}

	var decls []ProgramDecl
	for _, m := range order {
		ds, err := compileModule(m, globals)
		if err != nil {
			return nil, err
		}
		decls = append(decls, ds...)
	}

	free := freeVars(decls)
	if len(free) > 0 {
		names := make([]symbol.Symbol, 0, len(free))
		for n := range free {
			if _, ok := intrinsics[n]; ok {
				continue
			}
			names = append(names, n)
		}
		if len(names) > 0 {
			sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })
			return nil, &ErrFreeVars{Names: names}
		}
	}

	usedIntrinsics := make([]symbol.Symbol, 0)
	for n := range intrinsics {
		if _, ok := free[n]; ok {
			usedIntrinsics = append(usedIntrinsics, n)
		}
	}
	sort.Slice(usedIntrinsics, func(i, j int) bool { return usedIntrinsics[i].String() < usedIntrinsics[j].String() })

	if requireMain {
		hasMain := false
		for _, d := range decls {
			if d.Name.String() == "main:main" {
				hasMain = true
				break
			}
		}
		if !hasMain {
			return nil, &ErrNoMainFunction{}
		}
	}

	return &Program{Decls: decls, Intrinsics: usedIntrinsics}, nil
}

// toposortModules orders modules so that every module appears after all
// modules it imports, via an open/closed-set traversal. builtinModules are
// treated as pre-closed leaves.
func toposortModules(mods []*anf.Module, builtinModules map[symbol.Symbol]struct{}) ([]*anf.Module, error) {
	byName := make(map[symbol.Symbol]*anf.Module, len(mods))
	for _, m := range mods {
		byName[m.Name] = m
	}

	sorted := append([]*anf.Module(nil), mods...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name.String() < sorted[j].Name.String() })

	open := make(map[symbol.Symbol]bool, len(mods))
	closed := make(map[symbol.Symbol]bool, len(mods)+len(builtinModules))
	for b := range builtinModules {
		closed[b] = true
	}
	order := make([]*anf.Module, 0, len(mods))

	var traverse func(m *anf.Module) error
	traverse = func(m *anf.Module) error {
		if closed[m.Name] {
			return nil
		}
		if open[m.Name] {
			return &ErrDependencyLoop{Module: m.Name}
		}
		open[m.Name] = true
		for _, imp := range m.Imports {
			if closed[imp.Module] {
				continue
			}
			dep, ok := byName[imp.Module]
			if !ok {
				if _, ok := builtinModules[imp.Module]; ok {
					continue
				}
				return &ErrNonexistentModule{Module: imp.Module}
			}
			if err := traverse(dep); err != nil {
				return err
			}
		}
		closed[m.Name] = true
		order = append(order, m)
		return nil
	}

	for _, m := range sorted {
		if err := traverse(m); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// compileModule compiles one module's decls against the globals known so
// far, batching contiguous defns so that a mutually-recursive group sees
// every member's qualified name, while an earlier def cannot forward-
// reference a decl that hasn't been reached yet.
func compileModule(m *anf.Module, globals map[symbol.Symbol]struct{}) ([]ProgramDecl, error) {
	ctx := newLocalCtx()
	for _, imp := range m.Imports {
		g := qualify(imp.Module, imp.Name)
		if _, ok := globals[g]; !ok {
			return nil, &ErrNonexistentImport{Module: m.Name, Global: g}
		}
		ctx.globals[imp.Name] = g
	}

	var decls []ProgramDecl
	var batch []anf.Decl

	flush := func() error {
		for _, d := range batch {
			ctx.globals[d.Name()] = qualify(m.Name, d.Name())
		}
		for _, d := range batch {
			name, expr, err := compileDecl(m.Name, ctx, d)
			if err != nil {
				return err
			}
			decls = append(decls, ProgramDecl{Name: name, Expr: expr})
		}
		batch = nil
		return nil
	}

	for _, d := range m.Body {
		if defn, ok := d.(*anf.Defn); ok {
			batch = append(batch, defn)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		ctx.globals[d.Name()] = qualify(m.Name, d.Name())
		name, expr, err := compileDecl(m.Name, ctx, d)
		if err != nil {
			return nil, err
		}
		decls = append(decls, ProgramDecl{Name: name, Expr: expr})
	}
	if err := flush(); err != nil {
		return nil, err
	}

	declNames := make(map[symbol.Symbol]struct{}, len(decls))
	for _, d := range decls {
		declNames[d.Name] = struct{}{}
	}
	for _, e := range m.Exports {
		g := qualify(m.Name, e)
		if _, ok := declNames[g]; !ok {
			return nil, &ErrMissingExport{Module: m.Name, Global: g}
		}
		globals[g] = struct{}{}
	}

	return decls, nil
}

func compileDecl(modName symbol.Symbol, ctx *localCtx, d anf.Decl) (symbol.Symbol, Expr, error) {
	switch d := d.(type) {
	case *anf.Def:
		expr, err := compileExpr(ctx, d.Value)
		if err != nil {
			return symbol.Symbol{}, nil, err
		}
		return qualify(modName, d.DeclName), expr, nil

	case *anf.Defn:
		ctx.pushMany(d.Params)
		body, err := compileExpr(ctx, d.Body)
		ctx.popN(len(d.Params))
		if err != nil {
			return symbol.Symbol{}, nil, err
		}
		name := qualify(modName, d.DeclName)
		return name, &AExprNode{AExpr: &Lambda{Name: &name, Argn: len(d.Params), Body: body}}, nil

	default:
		panic("flatanf: unknown anf.Decl")
	}
}

func compileExpr(ctx *localCtx, e anf.Expr) (Expr, error) {
	switch e := e.(type) {
	case *anf.AExprNode:
		a, err := compileAExpr(ctx, e.AExpr)
		if err != nil {
			return nil, err
		}
		return &AExprNode{AExpr: a}, nil

	case *anf.CExprNode:
		c, err := compileCExpr(ctx, e.CExpr)
		if err != nil {
			return nil, err
		}
		return &CExprNode{CExpr: c}, nil

	case *anf.Let:
		bound, err := compileExpr(ctx, e.Bound)
		if err != nil {
			return nil, err
		}
		ctx.push(e.Name)
		body, err := compileExpr(ctx, e.Body)
		ctx.popN(1)
		if err != nil {
			return nil, err
		}
		return &Let{Bound: bound, Body: body}, nil

	case *anf.Seq:
		left, err := compileExpr(ctx, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := compileExpr(ctx, e.Right)
		if err != nil {
			return nil, err
		}
		return &Seq{Left: left, Right: right}, nil

	default:
		panic("flatanf: unknown anf.Expr")
	}
}

func compileCExpr(ctx *localCtx, c anf.CExpr) (CExpr, error) {
	switch c := c.(type) {
	case *anf.Call:
		fn, err := compileAExpr(ctx, c.Func)
		if err != nil {
			return nil, err
		}
		args := make([]AExpr, 0, len(c.Args))
		for _, a := range c.Args {
			ca, err := compileAExpr(ctx, a)
			if err != nil {
				return nil, err
			}
			args = append(args, ca)
		}
		return &Call{Func: fn, Args: args}, nil

	case *anf.If:
		cond, err := compileAExpr(ctx, c.Cond)
		if err != nil {
			return nil, err
		}
		then, err := compileExpr(ctx, c.Then)
		if err != nil {
			return nil, err
		}
		els, err := compileExpr(ctx, c.Else)
		if err != nil {
			return nil, err
		}
		return &If{Cond: cond, Then: then, Else: els}, nil

	case *anf.LetRec:
		names := make([]symbol.Symbol, len(c.Bindings))
		for i, b := range c.Bindings {
			names[i] = b.Name
		}
		ctx.pushMany(names)
		defer ctx.popN(len(names))

		bindings := make([]LetRecBinding, 0, len(c.Bindings))
		for _, b := range c.Bindings {
			lambda, ok := b.Bound.(*anf.Lambda)
			if !ok {
				if v, isVar := b.Bound.(*anf.Var); isVar {
					return nil, &ErrVarInLetrec{Name: b.Name, Var: v.Name}
				}
				panic("flatanf: letrec binding is neither Lambda nor Var")
			}
			compiled, err := compileAExpr(ctx, lambda)
			if err != nil {
				return nil, err
			}
			flambda := compiled.(*Lambda)
			bindings = append(bindings, LetRecBinding{Name: b.Name, Argn: flambda.Argn, Body: flambda.Body})
		}
		body, err := compileExpr(ctx, c.Body)
		if err != nil {
			return nil, err
		}
		return &LetRec{Bindings: bindings, Body: body}, nil

	default:
		panic("flatanf: unknown anf.CExpr")
	}
}

func compileAExpr(ctx *localCtx, a anf.AExpr) (AExpr, error) {
	switch a := a.(type) {
	case *anf.Lambda:
		ctx.pushMany(a.Params)
		body, err := compileExpr(ctx, a.Body)
		ctx.popN(len(a.Params))
		if err != nil {
			return nil, err
		}
		return &Lambda{Name: a.Name, Argn: len(a.Params), Body: body}, nil

	case *anf.Literal:
		return &Literal{Value: a.Value}, nil

	case *anf.Var:
		return ctx.lookup(a.Name)

	case *anf.Vector:
		elems := make([]AExpr, 0, len(a.Elems))
		for _, e := range a.Elems {
			ce, err := compileAExpr(ctx, e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, ce)
		}
		return &Vector{Elems: elems}, nil

	default:
		panic("flatanf: unknown anf.AExpr")
	}
}

// freeVars computes the set of global references that appear in any decl's
// body but are not among the decls themselves.
func freeVars(decls []ProgramDecl) map[symbol.Symbol]struct{} {
	declared := make(map[symbol.Symbol]struct{}, len(decls))
	for _, d := range decls {
		declared[d.Name] = struct{}{}
	}
	found := make(map[symbol.Symbol]struct{})
	for _, d := range decls {
		collectGlobals(d.Expr, found)
	}
	free := make(map[symbol.Symbol]struct{})
	for n := range found {
		if _, ok := declared[n]; !ok {
			free[n] = struct{}{}
		}
	}
	return free
}

func collectGlobals(e Expr, out map[symbol.Symbol]struct{}) {
	switch e := e.(type) {
	case *AExprNode:
		collectGlobalsA(e.AExpr, out)
	case *CExprNode:
		collectGlobalsC(e.CExpr, out)
	case *Let:
		collectGlobals(e.Bound, out)
		collectGlobals(e.Body, out)
	case *Seq:
		collectGlobals(e.Left, out)
		collectGlobals(e.Right, out)
	}
}

func collectGlobalsC(c CExpr, out map[symbol.Symbol]struct{}) {
	switch c := c.(type) {
	case *Call:
		collectGlobalsA(c.Func, out)
		for _, a := range c.Args {
			collectGlobalsA(a, out)
		}
	case *If:
		collectGlobalsA(c.Cond, out)
		collectGlobals(c.Then, out)
		collectGlobals(c.Else, out)
	case *LetRec:
		for _, b := range c.Bindings {
			collectGlobals(b.Body, out)
		}
		collectGlobals(c.Body, out)
	}
}

func collectGlobalsA(a AExpr, out map[symbol.Symbol]struct{}) {
	switch a := a.(type) {
	case *Global:
		out[a.Name] = struct{}{}
	case *Lambda:
		collectGlobals(a.Body, out)
	case *Vector:
		for _, e := range a.Elems {
			collectGlobalsA(e, out)
		}
	}
}

// localCtx is the two-level context the linker uses to resolve variables:
// a LIFO stack of local names (let/lambda/letrec bindings) and a mapping
// from local name to already-qualified global, populated by imports and by
// decls already in scope.
type localCtx struct {
	locals  []symbol.Symbol
	globals map[symbol.Symbol]symbol.Symbol
}

func newLocalCtx() *localCtx {
	return &localCtx{globals: make(map[symbol.Symbol]symbol.Symbol)}
}

func (c *localCtx) push(name symbol.Symbol) { c.locals = append(c.locals, name) }

func (c *localCtx) pushMany(names []symbol.Symbol) { c.locals = append(c.locals, names...) }

func (c *localCtx) popN(n int) { c.locals = c.locals[:len(c.locals)-n] }

// lookup resolves a variable reference: an already-qualified name (one
// containing ':') is a Global outright; otherwise the local stack is
// scanned from the top, then the global mapping.
func (c *localCtx) lookup(name symbol.Symbol) (AExpr, error) {
	if isQualified(name) {
		return &Global{Name: name}, nil
	}
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i] == name {
			return &Local{Index: len(c.locals) - 1 - i}, nil
		}
	}
	if g, ok := c.globals[name]; ok {
		return &Global{Name: g}, nil
	}
	return nil, &ErrNoSuchVar{Name: name}
}

func isQualified(name symbol.Symbol) bool {
	s := name.String()
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return true
		}
	}
	return false
}

package ast

import (
	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

var (
	symModule  = symbol.Intern("module")
	symImport  = symbol.Intern("import")
	symDef     = symbol.Intern("intrinsics:def")
	symDefn    = symbol.Intern("intrinsics:defn")
	symFn      = symbol.Intern("intrinsics:fn")
	symNamedFn = symbol.Intern("intrinsics:named-fn")
	symIf      = symbol.Intern("if")
	symQuote   = symbol.Intern("quote")
	symProgn   = symbol.Intern("progn")
)

// ModuleFromValues recognizes a module from its top-level Literal forms.
func ModuleFromValues(path string, lits []literal.Value) (*Module, error) {
	if len(lits) == 0 {
		return nil, &ErrNoModuleForm{Path: path}
	}

	head, rest, ok := literal.AsSHL(lits[0])
	if !ok || head != symModule {
		return nil, &ErrNoModuleForm{Path: path}
	}
	if len(rest) < 2 {
		return nil, &ErrNoModuleForm{Path: path}
	}
	nameSym, ok := rest[0].(literal.Sym)
	if !ok {
		return nil, &ErrNoModuleForm{Path: path}
	}
	name := symbol.Symbol(nameSym)

	exportVec, ok := rest[1].(literal.Vector)
	if !ok {
		return nil, &ErrNoModuleForm{Path: path}
	}
	exports := make([]symbol.Symbol, 0, len(exportVec))
	for _, e := range exportVec {
		s, ok := e.(literal.Sym)
		if !ok {
			return nil, &ErrNoModuleForm{Path: path}
		}
		exports = append(exports, symbol.Symbol(s))
	}

	attrs := make([]Attr, 0, len(rest)-2)
	for _, a := range rest[2:] {
		attr, ok := attrFromValue(a)
		if !ok {
			return nil, &ErrUnknownAttr{Module: name, Attr: a}
		}
		attrs = append(attrs, attr)
	}

	remaining := lits[1:]
	var imports []Import
	i := 0
	for i < len(remaining) {
		head, parts, ok := literal.AsSHL(remaining[i])
		if !ok || head != symImport || len(parts) < 1 {
			break
		}
		modSym, ok := parts[0].(literal.Sym)
		if !ok {
			break
		}
		mod := symbol.Symbol(modSym)
		for _, n := range parts[1:] {
			nSym, ok := n.(literal.Sym)
			if !ok {
				return nil, &ErrInvalidDecl{Lit: remaining[i]}
			}
			imports = append(imports, Import{Module: mod, Name: symbol.Symbol(nSym)})
		}
		i++
	}
	remaining = remaining[i:]

	body := make([]Decl, 0, len(remaining))
	for _, lit := range remaining {
		d, err := DeclFromValue(lit)
		if err != nil {
			return nil, err
		}
		body = append(body, d)
	}

	return &Module{
		Name:    name,
		Exports: exports,
		Imports: imports,
		Attrs:   attrs,
		Body:    body,
	}, nil
}

// attrFromValue recognizes a bare module attribute symbol. no-prelude is
// the only one currently defined; it takes no value.
func attrFromValue(v literal.Value) (Attr, bool) {
	s, ok := v.(literal.Sym)
	if !ok {
		return Attr{}, false
	}
	name := symbol.Symbol(s)
	if name.String() != NoPrelude {
		return Attr{}, false
	}
	return Attr{Name: name}, true
}

// DeclFromValue recognizes `(intrinsics:def NAME EXPR)` or
// `(intrinsics:defn NAME (PARAM…) BODY… TAIL)`.
func DeclFromValue(lit literal.Value) (Decl, error) {
	head, elems, ok := literal.AsSHL(lit)
	if !ok {
		return nil, &ErrInvalidDecl{Lit: lit}
	}
	switch head {
	case symDef:
		if len(elems) != 2 {
			return nil, &ErrInvalidDecl{Lit: lit}
		}
		nameSym, ok := elems[0].(literal.Sym)
		if !ok {
			return nil, &ErrInvalidDecl{Lit: lit}
		}
		value, err := ExprFromValue(elems[1])
		if err != nil {
			return nil, &ErrInvalidDecl{Lit: lit}
		}
		return &Def{DeclName: symbol.Symbol(nameSym), Value: value}, nil
	case symDefn:
		if len(elems) < 3 {
			return nil, &ErrInvalidDecl{Lit: lit}
		}
		nameSym, ok := elems[0].(literal.Sym)
		if !ok {
			return nil, &ErrInvalidDecl{Lit: lit}
		}
		params, ok := literal.AsSymbolList(elems[1])
		if !ok || hasDuplicate(params) {
			return nil, &ErrInvalidDecl{Lit: lit}
		}
		bodyExprs := elems[2 : len(elems)-1]
		tailLit := elems[len(elems)-1]
		body, err := exprsFromValues(bodyExprs)
		if err != nil {
			return nil, &ErrInvalidDecl{Lit: lit}
		}
		tail, err := ExprFromValue(tailLit)
		if err != nil {
			return nil, &ErrInvalidDecl{Lit: lit}
		}
		return &Defn{DeclName: symbol.Symbol(nameSym), Params: params, Body: body, Tail: tail}, nil
	default:
		return nil, &ErrInvalidDecl{Lit: lit}
	}
}

func hasDuplicate(syms []symbol.Symbol) bool {
	seen := make(map[symbol.Symbol]struct{}, len(syms))
	for _, s := range syms {
		if _, ok := seen[s]; ok {
			return true
		}
		seen[s] = struct{}{}
	}
	return false
}

func exprsFromValues(lits []literal.Value) ([]Expr, error) {
	out := make([]Expr, 0, len(lits))
	for _, l := range lits {
		e, err := ExprFromValue(l)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// ExprFromValue recognizes one expression from a Literal.
func ExprFromValue(lit literal.Value) (Expr, error) {
	switch v := lit.(type) {
	case literal.Nil:
		return nil, &ErrInvalidExpr{Lit: lit}
	case literal.Sym:
		return &VarExpr{Name: symbol.Symbol(v)}, nil
	case literal.Vector:
		elems, err := exprsFromValues([]literal.Value(v))
		if err != nil {
			return nil, &ErrInvalidExpr{Lit: lit}
		}
		return &VectorExpr{Elems: elems}, nil
	case *literal.Cons:
		return exprFromCons(lit, v)
	default:
		return &LiteralExpr{Value: lit}, nil
	}
}

func exprFromCons(orig literal.Value, c *literal.Cons) (Expr, error) {
	headSym, ok := c.Head.(literal.Sym)
	tailElems, isProper := literal.AsList(c.Tail)
	if !ok || !isProper {
		// Not a recognized special form: evaluate the head as an
		// expression and treat the whole thing as a call.
		return callFromCons(orig, c)
	}
	head := symbol.Symbol(headSym)

	switch head {
	case symDef, symDefn:
		d, err := DeclFromValue(orig)
		if err != nil {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		return &DeclExpr{Decl: d}, nil

	case symFn:
		if len(tailElems) < 2 {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		params, ok := literal.AsSymbolList(tailElems[0])
		if !ok || hasDuplicate(params) {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		body, tail, err := bodyAndTail(tailElems[1:])
		if err != nil {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		return &LambdaExpr{Params: params, Body: body, Tail: tail}, nil

	case symNamedFn:
		if len(tailElems) < 3 {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		nameSym, ok := tailElems[0].(literal.Sym)
		if !ok {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		params, ok := literal.AsSymbolList(tailElems[1])
		if !ok || hasDuplicate(params) {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		body, tail, err := bodyAndTail(tailElems[2:])
		if err != nil {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		name := symbol.Symbol(nameSym)
		return &LambdaExpr{Name: &name, Params: params, Body: body, Tail: tail}, nil

	case symIf:
		if len(tailElems) != 2 && len(tailElems) != 3 {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		cond, err := ExprFromValue(tailElems[0])
		if err != nil {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		then, err := ExprFromValue(tailElems[1])
		if err != nil {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		var elseExpr Expr = &LiteralExpr{Value: literal.Nil{}}
		if len(tailElems) == 3 {
			elseExpr, err = ExprFromValue(tailElems[2])
			if err != nil {
				return nil, &ErrInvalidExpr{Lit: orig}
			}
		}
		return &IfExpr{Cond: cond, Then: then, Else: elseExpr}, nil

	case symQuote:
		if len(tailElems) != 1 {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		return &LiteralExpr{Value: tailElems[0]}, nil

	case symProgn:
		if len(tailElems) == 0 {
			return &PrognExpr{Body: nil, Tail: &LiteralExpr{Value: literal.Nil{}}}, nil
		}
		body, tail, err := bodyAndTail(tailElems)
		if err != nil {
			return nil, &ErrInvalidExpr{Lit: orig}
		}
		return &PrognExpr{Body: body, Tail: tail}, nil

	default:
		return callFromCons(orig, c)
	}
}

// bodyAndTail splits a trailing-tail block: every element but the last is
// a body statement, the last is the tail expression.
func bodyAndTail(lits []literal.Value) ([]Expr, Expr, error) {
	if len(lits) == 0 {
		return nil, &LiteralExpr{Value: literal.Nil{}}, nil
	}
	body, err := exprsFromValues(lits[:len(lits)-1])
	if err != nil {
		return nil, nil, err
	}
	tail, err := ExprFromValue(lits[len(lits)-1])
	if err != nil {
		return nil, nil, err
	}
	return body, tail, nil
}

func callFromCons(orig literal.Value, c *literal.Cons) (Expr, error) {
	funcExpr, err := ExprFromValue(c.Head)
	if err != nil {
		return nil, &ErrInvalidExpr{Lit: orig}
	}
	argLits, ok := literal.AsList(c.Tail)
	if !ok {
		return nil, &ErrInvalidExpr{Lit: orig}
	}
	args, err := exprsFromValues(argLits)
	if err != nil {
		return nil, &ErrInvalidExpr{Lit: orig}
	}
	return &CallExpr{Func: funcExpr, Args: args}, nil
}

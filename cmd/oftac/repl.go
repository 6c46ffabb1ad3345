package main

import (
	"fmt"
	"io"

	"flag"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/oftac-lang/oftac/pkg/anf"
	"github.com/oftac-lang/oftac/pkg/ast"
	"github.com/oftac-lang/oftac/pkg/flatanf"
	"github.com/oftac-lang/oftac/pkg/interp"
	"github.com/oftac-lang/oftac/pkg/intrinsics"
	"github.com/oftac-lang/oftac/pkg/literal"
	"github.com/oftac-lang/oftac/pkg/prelude"
	"github.com/oftac-lang/oftac/pkg/reader"
	"github.com/oftac-lang/oftac/pkg/symbol"
)

var symImportRepl = symbol.Intern("import")

// replScratchName is the one accumulating module every entered form gets
// appended to, so a function defined on one line is callable on the next.
const replScratchName = "repl/scratch"

// runRepl implements `oftac repl`: a convenience wrapper around the real
// reader->ast->prelude->anf->flatanf->interp pipeline, in the spirit of the
// teacher's pkg/repl line-editing loop (github.com/chzyer/readline), but
// feeding every typed form through the genuine pipeline rather than a
// separate tree-walking evaluator.
func runRepl(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	_, _, std := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	stdMods, err := loadStd(*std)
	if err != nil {
		return err
	}
	preludeExports := preludeExportsOf(stdMods)
	reg := intrinsics.Standard()
	builtins := reg.BuiltinTable()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "oftac=> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer rl.Close()

	ok := color.New(color.FgGreen)
	fmt.Println("oftac repl -- :quit or Ctrl-D to exit")

	scratch := ast.Module{Name: symbol.Intern(replScratchName)}
	formCount := 0

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return fmt.Errorf("repl: %w", err)
		}
		if line == ":quit" || line == ":exit" {
			return nil
		}
		if line == "" {
			continue
		}

		lits, err := reader.ReadAll(line)
		if err != nil {
			fmt.Println(formatter.Format(err))
			continue
		}

		for _, lit := range lits {
			if imp, isImport := importFromValue(lit); isImport {
				scratch.Imports = append(scratch.Imports, imp...)
				continue
			}

			if decl, err := ast.DeclFromValue(lit); err == nil {
				scratch.Body = append(scratch.Body, decl)
				formCount++
				name := decl.Name()
				if val, err := evalScratch(scratch, stdMods, preludeExports, builtins, reg, name); err != nil {
					fmt.Println(formatter.Format(err))
				} else {
					fmt.Println(ok.Sprintf("=> %s", val))
				}
				continue
			}

			expr, err := ast.ExprFromValue(lit)
			if err != nil {
				fmt.Println(formatter.Format(err))
				continue
			}
			formCount++
			name := symbol.Intern(fmt.Sprintf("form%d", formCount))
			scratch.Body = append(scratch.Body, &ast.Def{DeclName: name, Value: expr})
			if val, err := evalScratch(scratch, stdMods, preludeExports, builtins, reg, name); err != nil {
				fmt.Println(formatter.Format(err))
			} else {
				fmt.Println(ok.Sprintf("=> %s", val))
			}
		}
	}
}

// importFromValue recognizes a bare top-level `(import MODULE name...)`
// form typed directly at the prompt.
func importFromValue(lit literal.Value) ([]ast.Import, bool) {
	head, parts, ok := literal.AsSHL(lit)
	if !ok || head != symImportRepl || len(parts) < 1 {
		return nil, false
	}
	modSym, ok := parts[0].(literal.Sym)
	if !ok {
		return nil, false
	}
	mod := symbol.Symbol(modSym)
	var out []ast.Import
	for _, n := range parts[1:] {
		nSym, ok := n.(literal.Sym)
		if !ok {
			return nil, false
		}
		out = append(out, ast.Import{Module: mod, Name: symbol.Symbol(nSym)})
	}
	return out, true
}

// evalScratch relinks the standard library plus every form entered so far
// and returns the display form of the global just bound by name.
func evalScratch(scratch ast.Module, stdMods []ast.Module, preludeExports []symbol.Symbol, builtins map[symbol.Symbol][]symbol.Symbol, reg *intrinsics.Registry, name symbol.Symbol) (string, error) {
	injected := prelude.Inject([]ast.Module{scratch}, preludeExports)[0]
	allMods := append(append([]ast.Module{}, stdMods...), injected)

	anfMods := make([]*anf.Module, 0, len(allMods))
	for i := range allMods {
		am, err := anf.FromModule(&allMods[i])
		if err != nil {
			return "", fmt.Errorf("%s: %w", allMods[i].Name, err)
		}
		anfMods = append(anfMods, am)
	}

	prog, err := flatanf.FromModulesLibrary(anfMods, builtins)
	if err != nil {
		return "", err
	}

	in := interp.New()
	in.AddBuiltins(reg)

	qualified := symbol.Intern(replScratchName + ":" + name.String())
	for _, decl := range prog.Decls {
		val, err := in.Eval(decl.Expr)
		if err != nil {
			return "", err
		}
		if c, ok := val.(interp.Closure); ok {
			in.Store.NameClosure(c, decl.Name)
		}
		in.Globals[decl.Name] = val
	}
	return interp.Print(in.Globals[qualified], in.Store), nil
}

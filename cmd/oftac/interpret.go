package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/oftac-lang/oftac/pkg/flatanf"
	"github.com/oftac-lang/oftac/pkg/interp"
	"github.com/oftac-lang/oftac/pkg/intrinsics"
)

// runInterpret implements `oftac interpret BYTECODE-FILE [args...]`,
// grounded on original_source's interpret.rs: deserialize a Program,
// install builtins, evaluate every decl, then call main:main with argv.
func runInterpret(args []string) error {
	fs := flag.NewFlagSet("interpret", flag.ExitOnError)
	quiet, verbose, _ := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	log := verbosity{quiet: *quiet, level: *verbose}

	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("interpret: usage: oftac interpret BYTECODE-FILE [args...]")
	}
	bytecodePath, argv := rest[0], rest[1:]

	data, err := os.ReadFile(bytecodePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", bytecodePath, err)
	}
	prog, err := flatanf.Deserialize(data)
	if err != nil {
		return fmt.Errorf("%s: %w", bytecodePath, err)
	}
	log.Logf(1, "loaded %s: %d decl(s), %d intrinsic(s)", bytecodePath, len(prog.Decls), len(prog.Intrinsics))

	in := interp.New()
	in.AddBuiltins(intrinsics.Standard())

	val, err := in.LoadProgram(prog, argv)
	if err != nil {
		return err
	}
	printResult(val, in.Store)
	return nil
}

func printResult(val interp.Value, store *interp.Store) {
	if _, ok := val.(interp.Nil); ok {
		return
	}
	fmt.Println(interp.Print(val, store))
}

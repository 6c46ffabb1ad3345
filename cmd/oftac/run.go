package main

import (
	"flag"
	"fmt"

	"github.com/oftac-lang/oftac/pkg/interp"
	"github.com/oftac-lang/oftac/pkg/intrinsics"
)

// runRun implements `oftac run PACKAGE-PATH BINARY-NAME [args...]`,
// grounded on original_source's run.rs: compile and interpret in one step,
// without ever writing a bytecode file to disk.
func runRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	quiet, verbose, std := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	log := verbosity{quiet: *quiet, level: *verbose}

	rest := fs.Args()
	if len(rest) < 2 {
		return fmt.Errorf("run: usage: oftac run PACKAGE-PATH BINARY-NAME [args...]")
	}
	packagePath, _, argv := rest[0], rest[1], rest[2:]

	log.Logf(1, "loading standard library from %s", *std)
	stdMods, err := loadStd(*std)
	if err != nil {
		return err
	}

	log.Logf(1, "loading package from %s", packagePath)
	pkgMods, err := loadPackage(packagePath)
	if err != nil {
		return err
	}

	reg := intrinsics.Standard()
	prog, err := buildProgram(pkgMods, stdMods, reg)
	if err != nil {
		return err
	}

	in := interp.New()
	in.AddBuiltins(reg)

	val, err := in.LoadProgram(prog, argv)
	if err != nil {
		return err
	}
	printResult(val, in.Store)
	return nil
}

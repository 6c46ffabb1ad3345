package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/oftac-lang/oftac/pkg/flatanf"
	"github.com/oftac-lang/oftac/pkg/intrinsics"
)

// runCompile implements `oftac compile PACKAGE-PATH BINARY-NAME`, grounded
// on original_source's compile.rs: load the standard library, load the
// package, link the two into one Program, and serialize it to a bytecode
// file.
func runCompile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	quiet, verbose, std := commonFlags(fs)
	output := fs.String("o", "", "output bytecode file (default: BINARY-NAME.oftac)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return fmt.Errorf("compile: usage: oftac compile PACKAGE-PATH BINARY-NAME")
	}
	packagePath, binaryName := rest[0], rest[1]
	if err := fs.Parse(rest[2:]); err != nil {
		return err
	}
	log := verbosity{quiet: *quiet, level: *verbose}

	out := *output
	if out == "" {
		out = binaryName + ".oftac"
	}

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
	log.Logf(2, "linking %d package module(s) against %d standard-library module(s)", len(pkgMods), len(stdMods))
	prog, err := buildProgram(pkgMods, stdMods, reg)
	if err != nil {
		return err
	}

	data, err := flatanf.Serialize(prog)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", binaryName, err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	log.Logf(0, "wrote %s (%d bytes, %d decl(s))", out, len(data), len(prog.Decls))
	return nil
}

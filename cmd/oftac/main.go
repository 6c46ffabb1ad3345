package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "compile":
		err = runCompile(os.Args[2:])
	case "interpret":
		err = runInterpret(os.Args[2:])
	case "run":
		err = runRun(os.Args[2:])
	case "repl":
		err = runRepl(os.Args[2:])
	case "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "oftac: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		if code, ok := exitCode(err); ok {
			os.Exit(code)
		}
		fmt.Fprintln(os.Stderr, formatter.Format(err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  oftac compile PACKAGE-PATH BINARY-NAME [-o OUTPUT] [--std STD-PATH]
  oftac interpret BYTECODE-FILE [args...]
  oftac run [--std STD-PATH] PACKAGE-PATH BINARY-NAME [args...]
  oftac repl [--std STD-PATH]

Every subcommand also accepts -q/--quiet and -v/--verbose (repeatable).
`)
}

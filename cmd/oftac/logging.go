package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/oftac-lang/oftac/pkg/diagnostics"
	"github.com/oftac-lang/oftac/pkg/interp"
)

// formatter renders every error this binary prints, colorized and
// categorized.
var formatter = diagnostics.New()

// verbosity is a leveled logger gated by -q/--quiet and -v/--verbose,
// translating original_source's stderrlog-based Options.start_logger into
// a plain stdlib CLI convention: no structured logging library appears
// anywhere in this program's dependencies for a Go equivalent to adopt,
// so this stays stdlib (fmt.Fprintf to stderr).
type verbosity struct {
	quiet bool
	level int
}

func (v verbosity) Logf(level int, format string, args ...any) {
	if v.quiet || level > v.level {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// commonFlags installs -q/--quiet, -v/--verbose, and --std on fs, the
// flags every subcommand shares.
func commonFlags(fs *flag.FlagSet) (*bool, *int, *string) {
	quiet := fs.Bool("q", false, "suppress non-error output")
	fs.BoolVar(quiet, "quiet", false, "suppress non-error output (alias of -q)")
	verboseCount := new(int)
	fs.BoolFunc("v", "increase verbosity (repeatable)", func(string) error { *verboseCount++; return nil })
	fs.BoolFunc("verbose", "increase verbosity (repeatable, alias of -v)", func(string) error { *verboseCount++; return nil })
	std := fs.String("std", os.Getenv("OFTAC_ROOT")+"/std", "path to the standard library package")
	return quiet, verboseCount, std
}

// exitCode reports the process exit code a panic '(exit N) abort demands,
// distinct from the generic "something failed" exit(1) every other error
// gets.
func exitCode(err error) (int, bool) {
	var abort *interp.Abort
	if errors.As(err, &abort) && abort.ExitCode != nil {
		return *abort.ExitCode, true
	}
	return 0, false
}

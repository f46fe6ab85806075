// Command tsbindcheck runs the binder and resolver over a hand-authored
// fixture program and prints every reported diagnostic.
//
// There is no lexer/parser in this module (out of scope per spec §1), so
// tsbindcheck reads its input as a testfixture archive: a small declarative
// subset of the language, encoded as a golang.org/x/tools/txtar archive, that
// stands in for what a real parser would hand the binder.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/tsstack/binder/internal/binder"
	"github.com/tsstack/binder/internal/builtins"
	"github.com/tsstack/binder/internal/config"
	"github.com/tsstack/binder/internal/diagnostics"
	"github.com/tsstack/binder/internal/program"
	"github.com/tsstack/binder/internal/resolver"
	"github.com/tsstack/binder/internal/testfixture"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tsbindcheck", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to tsbindcheck.yaml (defaults to nearest one found above the fixture)")
	noColor := fs.Bool("no-color", false, "disable ANSI diagnostic coloring even on a terminal")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tsbindcheck [-config path] [-no-color] <fixture-file>")
		return 2
	}
	fixturePath := fs.Arg(0)

	opts, err := loadOptions(*configPath, fixturePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	data, err := os.ReadFile(fixturePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	prog := program.New(opts.TargetValue())
	testfixture.Load(prog, string(data))

	binder.Initialize(prog, builtins.Default{})
	resolver.New(prog)

	diags := prog.Diagnostics.All()
	color := shouldColor(*noColor)
	for _, d := range diags {
		printDiagnostic(os.Stdout, d, color)
	}

	if len(diags) > 0 && opts.StrictMode {
		return 1
	}
	return 0
}

func loadOptions(configPath, fixturePath string) (config.Options, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadFromDir(filepath.Dir(fixturePath))
}

func shouldColor(forceOff bool) bool {
	if forceOff {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func printDiagnostic(w io.Writer, d *diagnostics.DiagnosticError, color bool) {
	if color {
		fmt.Fprintf(w, "%serror%s %s: %s\n", ansiRed, ansiReset, string(d.Code), d.Error())
		return
	}
	fmt.Fprintf(w, "error %s: %s\n", string(d.Code), d.Error())
}

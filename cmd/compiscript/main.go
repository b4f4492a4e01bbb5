// Command compiscript drives the checker and TAC generator over a
// single source file. Exit codes per spec.md §6: 0 success, 1 semantic
// errors, 2 usage errors.
//
// Grounded on the reference compiler's cmd/args.go: a small hand-rolled
// scanner over os.Args[1:] distinguishing flags, options, and one
// positional source path. No CLI framework is used anywhere in the
// reference corpus.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"compiscript/internal/checker"
	"compiscript/internal/cliutil"
	"compiscript/internal/config"
	"compiscript/internal/report"
	"compiscript/internal/syntax"
	"compiscript/internal/tac"
)

// options holds the parsed command line.
type options struct {
	sourcePath string
	outputPath string
	configPath string
	printToOut bool
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "usage error:", err)
		printUsage()
		return 2
	}

	proj, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		return 2
	}

	src, err := os.ReadFile(opts.sourcePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "usage error:", err)
		return 2
	}

	if opts.verbose {
		cliutil.BeginPhase("Checking")
	}
	prog, err := syntax.Parse(string(src))
	if err != nil {
		if opts.verbose {
			cliutil.EndPhase(false)
		}
		fmt.Fprintln(os.Stderr, "syntax error:", err)
		return 2
	}

	result := checker.Check(prog)
	diags := result.Bag.All()
	hasErrors := result.Bag.AnyErrors()
	if proj.Output.WarningsAsErrors && len(diags) > 0 {
		hasErrors = true
	}

	for _, d := range diags {
		cliutil.RenderDiagnostic(opts.sourcePath, d)
	}

	if opts.verbose {
		cliutil.EndPhase(!hasErrors)
	}

	if hasErrors {
		cliutil.RenderSummary(countErrors(diags), countWarnings(diags))
		return 1
	}

	if opts.verbose {
		cliutil.BeginPhase("Generating")
	}
	tacProg := tac.Generate(prog, result.Table)
	if opts.verbose {
		cliutil.EndPhase(true)
	}

	text := tacProg.String()
	if opts.printToOut {
		fmt.Print(text)
	}
	if proj.Output.EmitTac {
		outPath := opts.outputPath
		if outPath == "" {
			outPath = tacPathFor(opts.sourcePath, proj)
		}
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "write error:", err)
			return 2
		}
	}

	cliutil.RenderSummary(0, countWarnings(diags))
	return 0
}

// tacPathFor derives the sibling .tac path for src, honoring an
// explicit project config path when one is set.
func tacPathFor(srcPath string, proj *config.Project) string {
	if proj.Output.TacPath != "" {
		return proj.Output.TacPath
	}
	ext := filepath.Ext(srcPath)
	return strings.TrimSuffix(srcPath, ext) + ".tac"
}

func countErrors(diags []report.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == report.SeverityError {
			n++
		}
	}
	return n
}

func countWarnings(diags []report.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == report.SeverityWarning {
			n++
		}
	}
	return n
}

// parseArgs scans args for the single positional source path plus
// -o (output path), -c (config path), -v (verbose phase spinners),
// -q (do not print the TAC to stdout), and -h/--help (prints usage and
// exits 0 right here).
func parseArgs(args []string) (options, error) {
	opts := options{printToOut: true}
	var positional []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "-v":
			opts.verbose = true
		case "-q":
			opts.printToOut = false
		case "-o":
			if i+1 >= len(args) {
				return options{}, fmt.Errorf("-o requires an argument")
			}
			i++
			opts.outputPath = args[i]
		case "-c":
			if i+1 >= len(args) {
				return options{}, fmt.Errorf("-c requires an argument")
			}
			i++
			opts.configPath = args[i]
		default:
			if strings.HasPrefix(args[i], "-") {
				return options{}, fmt.Errorf("unrecognized flag %q", args[i])
			}
			positional = append(positional, args[i])
		}
	}

	if len(positional) != 1 {
		return options{}, fmt.Errorf("expected exactly one source file path, got %d", len(positional))
	}
	opts.sourcePath = positional[0]
	return opts, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: compiscript [-v] [-q] [-o out.tac] [-c compiscript.toml] <source.csc>")
}

/*
Lydia translates LDLf and LTLf formulas into deterministic finite automata.

Usage:

	lydia [flags]
	lydia serve [flags]

The flags are:

	-v, --version
		Give the current version of lydia and then exit.

	-f, --formula STRING
		Translate the given formula s-expression and print the resulting
		automaton in MONA DFA format.

	-o, --output FILE
		Write the translated automaton to FILE instead of stdout. Only
		meaningful together with --formula.

	-t, --trace STRING
		Check the translated automaton against a trace, given as
		comma-separated bitstring instants (for example "10,01"). May be
		given more than once; each occurrence checks one trace. Only
		meaningful together with --formula.

	-i, --interactive
		Start a REPL that reads one formula per line and, for each, accepts
		trace lines to check against it until a blank line.

Instead of translating a formula, "lydia serve" starts the HTTP API (see
internal/config and httpapi) in the foreground until interrupted.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/whitemech/lydia-sub000/dfa"
	"github.com/whitemech/lydia-sub000/internal/sexpr"
	"github.com/whitemech/lydia-sub000/internal/version"
	"github.com/whitemech/lydia-sub000/mona"
	"github.com/whitemech/lydia-sub000/syntax"
	"github.com/whitemech/lydia-sub000/translate"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates a problem parsing flags or loading
	// configuration before any translation work began.
	ExitInitError

	// ExitTranslateError indicates the formula failed to parse or
	// translate.
	ExitTranslateError

	// ExitServeError indicates the serve subcommand could not start or
	// exited abnormally.
	ExitServeError
)

var (
	returnCode int = ExitSuccess

	flagVersion     = pflag.BoolP("version", "v", false, "Give the current version of lydia and then exit")
	flagFormula     = pflag.StringP("formula", "f", "", "The formula to translate, as an s-expression")
	flagOutput      = pflag.StringP("output", "o", "", "Write the translated automaton to this file instead of stdout")
	flagTraces      = pflag.StringArrayP("trace", "t", nil, "Check a comma-separated bitstring trace against the translated automaton; may be repeated")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Start an interactive REPL")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "serve" {
		pflag.CommandLine.Parse(args[1:])
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitServeError
		}
		return
	}

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if *flagInteractive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
		}
		return
	}

	if *flagFormula == "" {
		fmt.Fprintf(os.Stderr, "No formula given.\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	if err := runOnce(*flagFormula, *flagOutput, *flagTraces); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitTranslateError
	}
}

// runOnce parses and translates a single formula, writes the resulting
// automaton, and checks it against any requested traces.
func runOnce(formulaText, outputFile string, traces []string) error {
	m := syntax.NewManager()
	f, err := sexpr.Parse(m, formulaText)
	if err != nil {
		return err
	}

	d, err := translate.ToDFA(m, f)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("opening %s: %w", outputFile, err)
		}
		defer file.Close()
		out = file
	}
	if err := mona.Write(out, d); err != nil {
		return fmt.Errorf("writing automaton: %w", err)
	}

	if len(traces) > 0 {
		rows := checkTraces(d, traces)
		fmt.Println(renderTraceTable(rows))
	}

	return nil
}

// traceRow is one checked trace and its result, the shape fed to
// renderTraceTable.
type traceRow struct {
	trace  string
	accept bool
	err    error
}

func checkTraces(d *dfa.DFA, traces []string) []traceRow {
	rows := make([]traceRow, len(traces))
	for i, tr := range traces {
		instants, err := parseCommaTrace(tr, d.VarNames())
		if err != nil {
			rows[i] = traceRow{trace: tr, err: err}
			continue
		}
		rows[i] = traceRow{trace: tr, accept: d.Accepts(instants)}
	}
	return rows
}

// parseCommaTrace parses a trace given as comma-separated bitstring
// instants, one bit per variable in varNames order. This is the CLI's own
// convention, distinct from httpapi's semicolon-separated one - there is
// no wire format shared between the two front ends.
func parseCommaTrace(s string, varNames []string) ([]map[int]bool, error) {
	if s == "" {
		return nil, nil
	}
	instants := strings.Split(s, ",")
	trace := make([]map[int]bool, len(instants))
	for i, inst := range instants {
		assign := make(map[int]bool, len(varNames))
		for v, c := range inst {
			if v >= len(varNames) {
				break
			}
			switch c {
			case '1':
				assign[v] = true
			case '0':
				assign[v] = false
			default:
				return nil, fmt.Errorf("invalid bit %q in trace instant %q", c, inst)
			}
		}
		trace[i] = assign
	}
	return trace, nil
}

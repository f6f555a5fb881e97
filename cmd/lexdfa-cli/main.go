// SPDX-License-Identifier: Apache-2.0
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"lexdfa/grammar"
	"lexdfa/internal/automaton"
	lexerrors "lexdfa/internal/errors"
	"lexdfa/internal/report"
	"lexdfa/internal/scanner"
	"lexdfa/internal/source"
)

type CLI struct {
	Rules   string `arg:"" help:"Rule file, one 'CATEGORY -> literal' per line."`
	Source  string `arg:"" help:"Source text to tokenize."`
	Format  string `enum:"text,yaml,json,dot" default:"text" help:"Automaton dump format (${enum})."`
	NoDump  bool   `help:"Do not print the minimized automaton."`
	Verbose int    `short:"v" type:"counter" help:"Increase log verbosity."`
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

// realMain parses args, runs the pipeline and returns the exit status.
func realMain(args []string, stdout, stderr io.Writer) int {
	cli, err := parseArgs(args, stdout, stderr)
	if err != nil {
		return 1
	}

	commonlog.Configure(cli.Verbose, nil)

	if err := run(cli, stdout, stderr); err != nil {
		reportFailure(stderr, err)
		return 1
	}
	return 0
}

// parseArgs parses the command line. On failure the error and a usage
// summary are written to stderr.
func parseArgs(args []string, stdout, stderr io.Writer) (*CLI, error) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("lexdfa-cli"),
		kong.Description("Compile literal token patterns into a minimal DFA and tokenize a source file."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return nil, err
	}

	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Context.Stdout = stderr
			_ = parseErr.Context.PrintUsage(true)
		}
		return nil, err
	}
	return &cli, nil
}

// run executes the pipeline. Only IO failures are returned; lexical errors
// and rule warnings are reported to stderr.
func run(cli *CLI, stdout, stderr io.Writer) error {
	startTime := time.Now()

	rules, err := grammar.LoadFile(cli.Rules)
	if err != nil {
		return err
	}
	if len(rules.Warnings) > 0 {
		reportDiagnostics(stderr, cli.Rules, rules.Warnings)
	}

	dfa := automaton.Compile(rules.Patterns)

	if !cli.NoDump {
		if err := report.Write(stdout, dfa, report.Format(cli.Format)); err != nil {
			return fmt.Errorf("failed to write automaton: %w", err)
		}
	}

	tokens, lexErrors, err := scanner.ScanFile(dfa, cli.Source)
	if err != nil {
		return err
	}

	if len(lexErrors) > 0 {
		diagnostics := make([]lexerrors.Diagnostic, 0, len(lexErrors))
		for _, lexErr := range lexErrors {
			diagnostics = append(diagnostics, lexErr.Diagnostic())
		}
		reportDiagnostics(stderr, cli.Source, diagnostics)
	}

	fmt.Fprint(stdout, report.PrintTokens(tokens))

	duration := formatDuration(time.Since(startTime))
	if len(lexErrors) == 0 {
		color.New(color.FgGreen).Fprintf(stderr, "Tokenized %s: %d tokens in %s\n", cli.Source, len(tokens), duration)
	} else {
		color.New(color.FgYellow).Fprintf(stderr, "Tokenized %s: %d tokens, %d lexical errors in %s\n",
			cli.Source, len(tokens), len(lexErrors), duration)
	}

	return nil
}

// reportFailure prints a fatal error. IO errors carry their diagnostic code.
func reportFailure(w io.Writer, err error) {
	var ioErr *lexerrors.IOError
	if errors.As(err, &ioErr) {
		fmt.Fprintf(w, "%s: %v\n", color.New(color.FgRed, color.Bold).Sprintf("error[%s]", lexerrors.ErrorIO), err)
		fmt.Fprintf(w, "  %s %s\n", color.BlueString("note:"), lexerrors.GetErrorDescription(lexerrors.ErrorIO))
		return
	}
	fmt.Fprintf(w, "%s %v\n", color.RedString("error:"), err)
}

// reportDiagnostics renders diagnostics against the decoded contents of path,
// the same text the scanner saw. The file has already been read once, so a
// failure here only loses the snippet.
func reportDiagnostics(w io.Writer, path string, diagnostics []lexerrors.Diagnostic) {
	var text []byte
	if f, err := source.Open(path); err == nil {
		text, _ = io.ReadAll(f)
		f.Close()
	}

	reporter := lexerrors.NewErrorReporter(path, string(text))
	for _, diagnostic := range diagnostics {
		fmt.Fprint(w, reporter.FormatError(diagnostic))
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

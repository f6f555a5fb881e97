// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"lexdfa/internal/scanner"
	"lexdfa/internal/source"
)

const PROMPT = ">> "

// Start reads lines from in until EOF and prints the tokens of each one.
// Every line is scanned on its own, so reported line numbers are always 1.
func Start(in io.Reader, out io.Writer, dfa scanner.Automaton) {
	errColor := color.New(color.FgRed).SprintFunc()

	fmt.Fprint(out, PROMPT)
	err := source.ReadLines(in, func(_ int, line string) {
		s := scanner.NewScanner(dfa, line)
		for _, t := range s.ScanTokens() {
			fmt.Fprintf(out, "%-12s %q\n", t.Category, t.Lexeme)
		}
		for _, err := range s.Errors() {
			fmt.Fprintf(out, "%s column %d: %s\n", errColor("error"), err.Position.Column, err.Message)
		}
		fmt.Fprint(out, PROMPT)
	})
	fmt.Fprintln(out)
	if err != nil {
		fmt.Fprintf(out, "%s %s\n", errColor("error"), err)
	}
}

// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/alecthomas/kong"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"lexdfa/grammar"
	"lexdfa/internal/automaton"
	"lexdfa/repl"
)

type CLI struct {
	Rules   string `arg:"" help:"Rule file, one 'CATEGORY -> literal' per line."`
	Verbose int    `short:"v" type:"counter" help:"Increase log verbosity."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("lexdfa"),
		kong.Description("Tokenize lines typed at the prompt."),
	)

	commonlog.Configure(cli.Verbose, nil)

	rules, err := grammar.LoadFile(cli.Rules)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	dfa := automaton.Compile(rules.Patterns)

	name := "there"
	if currentUser, err := user.Current(); err == nil {
		name = currentUser.Username
	}

	fmt.Printf("Welcome to the lexdfa REPL, %s! %d patterns, %d states.\n", name, len(rules.Patterns), dfa.NumStates())
	repl.Start(os.Stdin, os.Stdout, dfa)
}

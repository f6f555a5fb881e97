// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"lexdfa/internal/lsp"
)

const lsName = "lexdfa" // Name identifier for the language server

var log = commonlog.GetLogger("lexdfa.lsp")

type CLI struct {
	Rules       string `required:"" env:"LEXDFA_RULES" help:"Rule file used to tokenize open documents."`
	CacheSize   int    `default:"8" help:"Number of compiled rule revisions to keep."`
	Verbose     int    `short:"v" type:"counter" help:"Increase log verbosity."`
	Debug       bool   `help:"Enable protocol debug logging."`
	MetricsAddr string `env:"LEXDFA_METRICS_ADDR" placeholder:"HOST:PORT" help:"Serve Prometheus metrics on this address."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("lexdfa-lsp"),
		kong.Description("Language server reporting lexical errors and semantic tokens over stdio."),
	)

	commonlog.Configure(1+cli.Verbose, nil)

	h, err := lsp.NewHandler(cli.Rules, cli.CacheSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	handler := protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}

	if cli.MetricsAddr != "" {
		go serveMetrics(cli.MetricsAddr)
	}

	s := server.NewServer(&handler, lsName, cli.Debug)

	log.Infof("starting %s language server with rules %s", lsName, cli.Rules)

	// Start the server over standard input/output (used by most editors for LSP)
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Infof("serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Errorf("metrics server stopped: %s", err)
	}
}

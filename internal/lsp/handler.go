package lsp

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lexdfa/grammar"
	"lexdfa/internal/automaton"
	"lexdfa/internal/scanner"
	"lexdfa/internal/source"
)

var log = commonlog.GetLogger("lexdfa.lsp")

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"delimiter",
	"operator",
}

// No modifiers are reported.
var SemanticTokenModifiers = []string{}

const DefaultCacheSize = 8

// Handler implements the LSP server handlers for documents tokenized by a rule file
type Handler struct {
	mu        sync.RWMutex
	rulesPath string
	content   map[string]string
	automata  *lru.Cache[string, *automaton.DFA]
}

// NewHandler creates a handler that tokenizes documents with the patterns in rulesPath.
// Compiled automata are cached per rule file revision.
func NewHandler(rulesPath string, cacheSize int) (*Handler, error) {
	cache, err := lru.New[string, *automaton.DFA](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create automaton cache: %w", err)
	}

	return &Handler{
		rulesPath: rulesPath,
		content:   make(map[string]string),
		automata:  cache,
	}, nil
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: "lexdfa",
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("initialized with rules %s", h.rulesPath)
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("LSP Shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened file: %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidChange handles file change notifications from the editor.
// Only full document sync is advertised, so the last change holds the whole text.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed file: %s", params.TextDocument.URI)

	var text string
	var found bool
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text, found = c.Text, true
		case *protocol.TextDocumentContentChangeEventWhole:
			text, found = c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text, found = c.Text, true
			}
		case *protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text, found = c.Text, true
			}
		}
	}
	if !found {
		return fmt.Errorf("no full-text change for %s", params.TextDocument.URI)
	}

	return h.update(ctx, params.TextDocument.URI, text)
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed file: %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	metricOpenDocuments.Set(float64(len(h.content)))

	return nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	rawURI := params.TextDocument.URI

	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, err
	}

	text, err := h.getOrReadContent(path)
	if err != nil {
		return nil, err
	}

	dfa, err := h.automaton()
	if err != nil {
		return nil, err
	}

	tokens := scanner.NewScanner(dfa, text).ScanTokens()

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(tokens, splitLines(text))),
	}, nil
}

// update stores the document text, rescans it and publishes its diagnostics.
func (h *Handler) update(ctx *glsp.Context, rawURI protocol.DocumentUri, text string) error {
	path, err := uriToPath(rawURI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.content[path] = text
	metricOpenDocuments.Set(float64(len(h.content)))
	h.mu.Unlock()

	dfa, err := h.automaton()
	if err != nil {
		return err
	}

	s := scanner.NewScanner(dfa, text)
	s.ScanTokens()
	metricDocumentsScannedTotal.Inc()
	metricLexicalErrorsTotal.Add(float64(len(s.Errors())))

	sendDiagnosticNotification(ctx, rawURI, ConvertLexicalErrors(s.Errors(), splitLines(text)))
	return nil
}

func (h *Handler) getOrReadContent(path string) (string, error) {
	h.mu.RLock()
	text, ok := h.content[path]
	h.mu.RUnlock()
	if ok {
		return text, nil
	}

	f, err := source.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(content), nil
}

// automaton returns the compiled DFA for the current revision of the rule file.
func (h *Handler) automaton() (*automaton.DFA, error) {
	info, err := os.Stat(h.rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat rules %s: %w", h.rulesPath, err)
	}

	key := fmt.Sprintf("%s@%d:%d", h.rulesPath, info.ModTime().UnixNano(), info.Size())
	if dfa, ok := h.automata.Get(key); ok {
		metricAutomatonCacheTotal.WithLabelValues("hit").Inc()
		return dfa, nil
	}
	metricAutomatonCacheTotal.WithLabelValues("miss").Inc()

	rules, err := grammar.LoadFile(h.rulesPath)
	if err != nil {
		return nil, err
	}
	for _, warning := range rules.Warnings {
		log.Warningf("%s:%d: %s", h.rulesPath, warning.Position.Line, warning.Message)
	}

	dfa := automaton.Compile(rules.Patterns)
	h.automata.Add(key, dfa)
	metricAutomatonStates.Set(float64(dfa.NumStates()))
	log.Infof("compiled %s: %d patterns, %d states", h.rulesPath, len(rules.Patterns), dfa.NumStates())

	return dfa, nil
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	log.Debugf("sending %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

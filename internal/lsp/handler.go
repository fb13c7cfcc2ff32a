package lsp

import (
	"log"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"xpresso/internal/diag"
	"xpresso/internal/grammar"
	"xpresso/internal/lexer"
	"xpresso/internal/parser"
	"xpresso/internal/parsetree"
	"xpresso/internal/source"
)

// XpressoHandler implements the language server callbacks for X-presso
// source files. It keeps the latest text of every open document and
// republishes diagnostics whenever the editor opens or edits a file.
type XpressoHandler struct {
	mu      sync.RWMutex
	content map[protocol.DocumentUri]string
	trees   map[protocol.DocumentUri]*parsetree.Tree
	grammar *grammar.Table
}

func NewXpressoHandler() *XpressoHandler {
	return &XpressoHandler{
		content: make(map[protocol.DocumentUri]string),
		trees:   make(map[protocol.DocumentUri]*parsetree.Tree),
		grammar: grammar.New(),
	}
}

// Initialize responds to the LSP initialize request with server capabilities
func (h *XpressoHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (interface{}, error) {
	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true), // notify on open/close events
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *XpressoHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("X-presso LSP initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *XpressoHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("X-presso LSP shutdown")
	return nil
}

// SetTrace handles trace level changes requested by the client
func (h *XpressoHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *XpressoHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	diagnostics := h.analyze(params.TextDocument.URI, params.TextDocument.Text)
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)

	return nil
}

// TextDocumentDidChange re-analyzes the document after every edit. The
// server advertises full sync, so the last content change always carries
// the complete document text.
func (h *XpressoHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	text, ok := h.fullText(params)
	if !ok {
		return nil
	}

	diagnostics := h.analyze(params.TextDocument.URI, text)
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)

	return nil
}

// TextDocumentDidClose drops the document state and clears its diagnostics
func (h *XpressoHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.content, params.TextDocument.URI)
	delete(h.trees, params.TextDocument.URI)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, params.TextDocument.URI, nil)
	return nil
}

// analyze runs the full front end over the document text and converts the
// accumulated diagnostics for the client. The parse tree is cached even when
// diagnostics exist: error recovery keeps it usable for later features.
func (h *XpressoHandler) analyze(uri protocol.DocumentUri, text string) []protocol.Diagnostic {
	sink := diag.NewSink()
	tokens := lexer.New(source.NewCursor(text), sink).ScanTokens()
	tree := parser.NewParser(h.grammar, tokens, sink).ParseProgram()

	h.mu.Lock()
	h.content[uri] = text
	h.trees[uri] = tree
	h.mu.Unlock()

	return ConvertDiagnostics(sink.All())
}

// Tree returns the most recently parsed tree for an open document, if any.
func (h *XpressoHandler) Tree(uri protocol.DocumentUri) (*parsetree.Tree, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	tree, ok := h.trees[uri]
	return tree, ok
}

func (h *XpressoHandler) fullText(params *protocol.DidChangeTextDocumentParams) (string, bool) {
	for i := len(params.ContentChanges) - 1; i >= 0; i-- {
		if change, ok := params.ContentChanges[i].(protocol.TextDocumentContentChangeEventWhole); ok {
			return change.Text, true
		}
	}

	// No whole-document change arrived; fall back to the cached content so a
	// stray incremental event does not wipe the diagnostics.
	h.mu.RLock()
	defer h.mu.RUnlock()
	text, ok := h.content[params.TextDocument.URI]
	return text, ok
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}

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

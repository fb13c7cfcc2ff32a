// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"xpresso/internal/lsp"
)

const lsName = "xpresso" // Name identifier for the language server

var handler protocol.Handler

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	xpressoHandler := lsp.NewXpressoHandler()

	// Wire up the handler with the LSP methods the server supports
	handler = protocol.Handler{
		Initialize:            xpressoHandler.Initialize,
		Initialized:           xpressoHandler.Initialized,
		Shutdown:              xpressoHandler.Shutdown,
		SetTrace:              xpressoHandler.SetTrace,
		TextDocumentDidOpen:   xpressoHandler.TextDocumentDidOpen,
		TextDocumentDidClose:  xpressoHandler.TextDocumentDidClose,
		TextDocumentDidChange: xpressoHandler.TextDocumentDidChange,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting X-presso LSP server...")

	// The server talks to the editor over standard input/output
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting X-presso LSP server:", err)
		os.Exit(1)
	}
}

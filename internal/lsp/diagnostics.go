package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"xpresso/internal/diag"
)

// ConvertDiagnostics transforms accumulated lexer and parser diagnostics into
// LSP diagnostics for IDE display. Lexical problems (invalid characters,
// unterminated strings, malformed dates) and syntax problems (missing tokens,
// unexpected tokens) are tagged with distinct sources so editors can tell the
// phases apart.
func ConvertDiagnostics(diagnostics []diag.Diagnostic) []protocol.Diagnostic {
	var converted []protocol.Diagnostic

	for _, d := range diagnostics {
		// Use the recorded span when one exists, otherwise a small default
		// span so the squiggle is still visible.
		endChar := uint32(d.Column - 1 + d.Length)
		if d.Length == 0 {
			endChar = uint32(d.Column + 3)
		}

		source := "xpresso-parser"
		if d.Kind.IsLexical() {
			source = "xpresso-lexer"
		}

		message := d.Message
		if d.Suggestion != "" {
			message += " (" + d.Suggestion + ")"
		}

		converted = append(converted, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(d.Line - 1), // Convert to 0-based indexing
					Character: uint32(d.Column - 1),
				},
				End: protocol.Position{
					Line:      uint32(d.Line - 1),
					Character: endChar,
				},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString(source),
			Message:  message,
		})
	}

	return converted
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}

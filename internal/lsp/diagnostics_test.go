package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"xpresso/internal/diag"
)

func TestConvertDiagnosticsPositionsAreZeroBased(t *testing.T) {
	input := []diag.Diagnostic{
		{Kind: diag.UnterminatedString, Message: "string literal is never closed", Line: 3, Column: 10, Length: 5},
	}

	out := ConvertDiagnostics(input)
	assert.Len(t, out, 1)

	d := out[0]
	assert.Equal(t, uint32(2), d.Range.Start.Line)
	assert.Equal(t, uint32(9), d.Range.Start.Character)
	assert.Equal(t, uint32(14), d.Range.End.Character, "span covers the recorded length")
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
}

func TestConvertDiagnosticsTagsPhase(t *testing.T) {
	input := []diag.Diagnostic{
		{Kind: diag.InvalidDate, Message: "bad date", Line: 1, Column: 1},
		{Kind: diag.MissingToken, Message: "expected ';'", Line: 2, Column: 4},
	}

	out := ConvertDiagnostics(input)
	assert.Equal(t, "xpresso-lexer", *out[0].Source)
	assert.Equal(t, "xpresso-parser", *out[1].Source)
}

func TestConvertDiagnosticsFoldsSuggestion(t *testing.T) {
	input := []diag.Diagnostic{
		{Kind: diag.InvalidIdentifier, Message: "bad name", Line: 1, Column: 1, Suggestion: "rename to a_b"},
	}

	out := ConvertDiagnostics(input)
	assert.Equal(t, "bad name (rename to a_b)", out[0].Message)
}

func TestConvertDiagnosticsDefaultSpan(t *testing.T) {
	input := []diag.Diagnostic{
		{Kind: diag.UnexpectedToken, Message: "surprise", Line: 1, Column: 7},
	}

	out := ConvertDiagnostics(input)
	assert.Equal(t, uint32(6), out[0].Range.Start.Character)
	assert.Greater(t, out[0].Range.End.Character, out[0].Range.Start.Character)
}

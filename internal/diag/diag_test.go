package diag

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"xpresso/internal/token"
)

func TestSinkAccumulatesInOrder(t *testing.T) {
	sink := NewSink()
	assert.False(t, sink.HasErrors())

	sink.Report(InvalidDate, "bad date", token.Position{Line: 1, Column: 5})
	sink.Report(MissingToken, "missing ';'", token.Position{Line: 2, Column: 1})
	sink.Report(InvalidCharacter, "bad char", token.Position{Line: 3, Column: 9})

	assert.True(t, sink.HasErrors())
	assert.Equal(t, 3, sink.Len())

	all := sink.All()
	assert.Equal(t, "bad date", all[0].Message)
	assert.Equal(t, "missing ';'", all[1].Message)
	assert.Equal(t, "bad char", all[2].Message)
}

func TestLexicalSyntaxSplit(t *testing.T) {
	sink := NewSink()
	sink.Report(InvalidDate, "bad date", token.Position{Line: 1, Column: 1})
	sink.Report(UnexpectedToken, "surprise", token.Position{Line: 1, Column: 4})
	sink.Report(UnterminatedString, "open string", token.Position{Line: 2, Column: 2})

	assert.Len(t, sink.Lexical(), 2)
	assert.Len(t, sink.Syntax(), 1)
}

func TestCountByKind(t *testing.T) {
	sink := NewSink()
	sink.Report(InvalidDate, "one", token.Position{})
	sink.Report(InvalidDate, "two", token.Position{})
	sink.Report(MissingToken, "three", token.Position{})

	counts := sink.CountByKind()
	assert.Equal(t, 2, counts[InvalidDate])
	assert.Equal(t, 1, counts[MissingToken])
}

func TestSuggestionAndSpan(t *testing.T) {
	sink := NewSink()
	sink.ReportWithSuggestion(InvalidIdentifier, "bad name",
		token.Position{Line: 1, Column: 1}, "rename to a_b")
	sink.ReportSpan(InvalidOperator, "bad op", token.Position{Line: 1, Column: 5}, 4)

	assert.Equal(t, "rename to a_b", sink.All()[0].Suggestion)
	assert.Equal(t, 4, sink.All()[1].Length)
}

func TestReporterFormat(t *testing.T) {
	restore := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = restore }()

	source := "x = \"oops\ny = 2;"
	d := Diagnostic{
		Kind:       UnterminatedString,
		Message:    "string literal is never closed",
		Line:       1,
		Column:     5,
		Length:     5,
		Suggestion: `close the string with '"'`,
	}

	r := NewReporter("sample.xp", source)
	out := r.Format(d)

	assert.Contains(t, out, "error[unterminated_string]: string literal is never closed")
	assert.Contains(t, out, "sample.xp:1:5")
	assert.Contains(t, out, `x = "oops`)
	assert.Contains(t, out, "^^^^^")
	assert.Contains(t, out, `help: close the string with '"'`)
}

func TestReporterSummaryLine(t *testing.T) {
	restore := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = restore }()

	sink := NewSink()
	sink.Report(InvalidDate, "bad", token.Position{Line: 1, Column: 1})
	sink.Report(InvalidDate, "also bad", token.Position{Line: 1, Column: 2})

	out := NewReporter("f.xp", "[x]").FormatAll(sink)
	assert.True(t, strings.Contains(out, "2 diagnostic(s)"), out)
}

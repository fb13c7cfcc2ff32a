package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter renders accumulated diagnostics with a source window and a
// caret marker under the offending region.
type Reporter struct {
	filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Format renders one diagnostic:
//
//	error[unterminated_string]: string literal is never closed
//	   ┌─ sample.xp:3:10
//	   │
//	  3│    s = "oops
//	   │        ^^^^^
//	   │ help: close the string with '"'
func (r *Reporter) Format(d Diagnostic) string {
	var b strings.Builder

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	b.WriteString(fmt.Sprintf("%s[%s]: %s\n", red("error"), d.Kind, d.Message))

	lineNumberWidth := len(fmt.Sprintf("%d", d.Line))
	if lineNumberWidth < 3 {
		lineNumberWidth = 3
	}
	indent := strings.Repeat(" ", lineNumberWidth)

	b.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("┌─"), r.filename, d.Line, d.Column))
	b.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if d.Line >= 1 && d.Line <= len(r.lines) {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, d.Line)),
			dim("│"),
			r.lines[d.Line-1]))

		length := d.Length
		if length <= 0 {
			length = 1
		}
		marker := strings.Repeat(" ", max(0, d.Column-1)) + strings.Repeat("^", length)
		b.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), red(marker)))
	}

	if d.Suggestion != "" {
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), cyan("help:"), d.Suggestion))
	}

	b.WriteString("\n")
	return b.String()
}

// FormatAll renders every diagnostic followed by a per-kind summary line.
func (r *Reporter) FormatAll(sink *Sink) string {
	var b strings.Builder
	for _, d := range sink.All() {
		b.WriteString(r.Format(d))
	}
	if sink.HasErrors() {
		counts := sink.CountByKind()
		var parts []string
		for kind, n := range counts {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
		b.WriteString(fmt.Sprintf("%d diagnostic(s): %s\n", sink.Len(), strings.Join(parts, ", ")))
	}
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

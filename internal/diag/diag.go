package diag

import (
	"fmt"

	"xpresso/internal/token"
)

// Kind identifies a diagnostic category. Lexical and syntax diagnostics
// share the Diagnostic shape but keep distinct vocabularies so the phase
// that produced a diagnostic stays distinguishable after merging.
type Kind int

const (
	// Lexical
	InvalidCharacter Kind = iota
	UnterminatedString
	UnterminatedComment
	InvalidEscape
	InvalidIdentifier
	InvalidNumber
	InvalidDate
	InvalidFraction
	InvalidComplex
	MismatchedDelimiter
	InvalidOperator

	// Syntax
	UnexpectedToken
	MissingToken
	UnexpectedEOF
	InvalidStructure
	DuplicateDeclaration

	// Unrecoverable conditions only (cursor I/O failure); never used for
	// malformed input.
	Fatal
)

var kindNames = map[Kind]string{
	InvalidCharacter:     "invalid_character",
	UnterminatedString:   "unterminated_string",
	UnterminatedComment:  "unterminated_comment",
	InvalidEscape:        "invalid_escape",
	InvalidIdentifier:    "invalid_identifier",
	InvalidNumber:        "invalid_number",
	InvalidDate:          "invalid_date",
	InvalidFraction:      "invalid_fraction",
	InvalidComplex:       "invalid_complex",
	MismatchedDelimiter:  "mismatched_delimiter",
	InvalidOperator:      "invalid_operator",
	UnexpectedToken:      "unexpected_token",
	MissingToken:         "missing_token",
	UnexpectedEOF:        "unexpected_eof",
	InvalidStructure:     "invalid_structure",
	DuplicateDeclaration: "duplicate_declaration",
	Fatal:                "fatal",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLexical reports whether the kind belongs to the lexical vocabulary.
func (k Kind) IsLexical() bool {
	return k >= InvalidCharacter && k <= InvalidOperator
}

// IsSyntax reports whether the kind belongs to the syntax vocabulary.
func (k Kind) IsSyntax() bool {
	return k >= UnexpectedToken && k <= DuplicateDeclaration
}

// Diagnostic is one accumulated problem report. Suggestion is optional
// fix-it text shown after the source window.
type Diagnostic struct {
	Kind       Kind           `json:"-"`
	Type       string         `json:"type"`
	Message    string         `json:"message"`
	Line       int            `json:"line"`
	Column     int            `json:"column"`
	Suggestion string         `json:"suggestion,omitempty"`
	Length     int            `json:"-"` // span of the offending region, for markers
	Position   token.Position `json:"-"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s at %d:%d", d.Kind, d.Message, d.Line, d.Column)
}

// Sink accumulates diagnostics and never halts execution. Both the lexer
// and the parser hold one; they may share a single sink so one merged,
// ordered report covers both phases.
type Sink struct {
	diagnostics []Diagnostic
}

func NewSink() *Sink {
	return &Sink{}
}

// Report appends a diagnostic without a suggestion.
func (s *Sink) Report(kind Kind, message string, pos token.Position) {
	s.ReportWithSuggestion(kind, message, pos, "")
}

// ReportWithSuggestion appends a diagnostic carrying fix-it text.
func (s *Sink) ReportWithSuggestion(kind Kind, message string, pos token.Position, suggestion string) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Kind:       kind,
		Type:       kind.String(),
		Message:    message,
		Line:       pos.Line,
		Column:     pos.Column,
		Suggestion: suggestion,
		Position:   pos,
	})
}

// ReportSpan is Report with an explicit marker length.
func (s *Sink) ReportSpan(kind Kind, message string, pos token.Position, length int) {
	s.ReportWithSuggestion(kind, message, pos, "")
	s.diagnostics[len(s.diagnostics)-1].Length = length
}

func (s *Sink) HasErrors() bool {
	return len(s.diagnostics) > 0
}

func (s *Sink) All() []Diagnostic {
	return s.diagnostics
}

func (s *Sink) Len() int {
	return len(s.diagnostics)
}

// Lexical returns only the lexical-phase diagnostics.
func (s *Sink) Lexical() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.diagnostics {
		if d.Kind.IsLexical() {
			out = append(out, d)
		}
	}
	return out
}

// Syntax returns only the syntax-phase diagnostics.
func (s *Sink) Syntax() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.diagnostics {
		if d.Kind.IsSyntax() {
			out = append(out, d)
		}
	}
	return out
}

// CountByKind groups the accumulated diagnostics for summary reporting.
func (s *Sink) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, d := range s.diagnostics {
		counts[d.Kind]++
	}
	return counts
}

package token

import "fmt"

// Kind classifies a token by category. Individual operators within a
// category are distinguished by their lexeme.
type Kind int

const (
	// Special tokens
	UNKNOWN Kind = iota
	EOF
	WHITESPACE
	COMMENT
	ESCAPE

	// Words
	IDENTIFIER
	KEYWORD
	RESERVED

	// Literals
	BOOL_LITERAL
	INT_LITERAL
	FLOAT_LITERAL
	STRING_LITERAL
	CHAR_LITERAL
	DATE_LITERAL
	FRAC_LITERAL
	COMPLEX_LITERAL

	// Operators
	ARITHMETIC_OP
	ASSIGNMENT_OP
	RELATIONAL_OP
	LOGICAL_OP
	BITWISE_OP
	UNARY_OP
	METHOD_OP
	LOOP_OP
	INHERIT_OP

	// Delimiters
	DELIMITER
	PUNCTUATION
	STRING_DELIMITER
	OBJECT_DELIMITER
)

var kindNames = map[Kind]string{
	UNKNOWN:          "UNKNOWN",
	EOF:              "EOF",
	WHITESPACE:       "WHITESPACE",
	COMMENT:          "COMMENT",
	ESCAPE:           "ESCAPE",
	IDENTIFIER:       "IDENTIFIER",
	KEYWORD:          "KEYWORD",
	RESERVED:         "RESERVED",
	BOOL_LITERAL:     "BOOL_LITERAL",
	INT_LITERAL:      "INT_LITERAL",
	FLOAT_LITERAL:    "FLOAT_LITERAL",
	STRING_LITERAL:   "STRING_LITERAL",
	CHAR_LITERAL:     "CHAR_LITERAL",
	DATE_LITERAL:     "DATE_LITERAL",
	FRAC_LITERAL:     "FRAC_LITERAL",
	COMPLEX_LITERAL:  "COMPLEX_LITERAL",
	ARITHMETIC_OP:    "ARITHMETIC_OP",
	ASSIGNMENT_OP:    "ASSIGNMENT_OP",
	RELATIONAL_OP:    "RELATIONAL_OP",
	LOGICAL_OP:       "LOGICAL_OP",
	BITWISE_OP:       "BITWISE_OP",
	UNARY_OP:         "UNARY_OP",
	METHOD_OP:        "METHOD_OP",
	LOOP_OP:          "LOOP_OP",
	INHERIT_OP:       "INHERIT_OP",
	DELIMITER:        "DELIMITER",
	PUNCTUATION:      "PUNCTUATION",
	STRING_DELIMITER: "STRING_DELIMITER",
	OBJECT_DELIMITER: "OBJECT_DELIMITER",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsOperator reports whether the kind is one of the operator categories.
func (k Kind) IsOperator() bool {
	switch k {
	case ARITHMETIC_OP, ASSIGNMENT_OP, RELATIONAL_OP, LOGICAL_OP,
		BITWISE_OP, UNARY_OP, METHOD_OP, LOOP_OP, INHERIT_OP:
		return true
	}
	return false
}

// IsLiteral reports whether the kind is one of the literal categories.
func (k Kind) IsLiteral() bool {
	switch k {
	case BOOL_LITERAL, INT_LITERAL, FLOAT_LITERAL, STRING_LITERAL,
		CHAR_LITERAL, DATE_LITERAL, FRAC_LITERAL, COMPLEX_LITERAL:
		return true
	}
	return false
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is an immutable lexical unit. The Lexeme is the exact substring
// of source text it was scanned from, except that string and character
// literal contents are stored without their delimiters (the delimiters
// are emitted as separate STRING_DELIMITER tokens, so concatenating all
// lexemes still reconstructs the source).
type Token struct {
	Kind     Kind
	Lexeme   string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %s", t.Kind, t.Lexeme, t.Position)
}

// Is reports whether the token has the given kind and lexeme.
func (t Token) Is(kind Kind, lexeme string) bool {
	return t.Kind == kind && t.Lexeme == lexeme
}

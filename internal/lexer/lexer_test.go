package lexer

import (
	"strings"
	"testing"

	"xpresso/internal/diag"
	"xpresso/internal/token"
)

// significant drops whitespace, comments and the trailing EOF so tests can
// compare the tokens the parser would actually see.
func significant(tokens []token.Token) []token.Token {
	var out []token.Token
	for _, tok := range tokens {
		if tok.Kind == token.WHITESPACE || tok.Kind == token.COMMENT || tok.Kind == token.EOF {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func expectKinds(t *testing.T, input string, expected []token.Kind) []token.Token {
	t.Helper()
	tokens, _ := Tokenize(input)
	got := significant(tokens)
	if len(got) != len(expected) {
		t.Fatalf("input %q: expected %d tokens, got %d: %v", input, len(expected), len(got), got)
	}
	for i, exp := range expected {
		if got[i].Kind != exp {
			t.Errorf("input %q token %d: expected %s, got %s (%q)", input, i, exp, got[i].Kind, got[i].Lexeme)
		}
	}
	return got
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "if else for while do break print total"
	expected := []token.Kind{
		token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD,
		token.KEYWORD, token.KEYWORD, token.KEYWORD, token.IDENTIFIER,
	}
	expectKinds(t, input, expected)
}

func TestMultiWordKeywords(t *testing.T) {
	tokens := expectKinds(t, "exit when done", []token.Kind{token.KEYWORD, token.IDENTIFIER})
	if tokens[0].Lexeme != "exit when" {
		t.Errorf("expected joined keyword 'exit when', got %q", tokens[0].Lexeme)
	}

	tokens = expectKinds(t, "where type", []token.Kind{token.KEYWORD})
	if tokens[0].Lexeme != "where type" {
		t.Errorf("expected joined keyword 'where type', got %q", tokens[0].Lexeme)
	}

	tokens = expectKinds(t, "switch-fall", []token.Kind{token.KEYWORD})
	if tokens[0].Lexeme != "switch-fall" {
		t.Errorf("expected joined keyword 'switch-fall', got %q", tokens[0].Lexeme)
	}

	// "whenever" must not be absorbed into "exit when".
	tokens = expectKinds(t, "exit whenever", []token.Kind{token.KEYWORD, token.IDENTIFIER})
	if tokens[0].Lexeme != "exit" {
		t.Errorf("expected bare keyword 'exit', got %q", tokens[0].Lexeme)
	}
}

func TestReservedWords(t *testing.T) {
	input := "class public static filter_by ALIAS toMixed inline_query"
	expected := []token.Kind{
		token.RESERVED, token.RESERVED, token.RESERVED, token.RESERVED,
		token.RESERVED, token.RESERVED, token.RESERVED,
	}
	expectKinds(t, input, expected)
}

func TestNumbersAndBooleans(t *testing.T) {
	tokens := expectKinds(t, "42 3.14 true false", []token.Kind{
		token.INT_LITERAL, token.FLOAT_LITERAL, token.BOOL_LITERAL, token.BOOL_LITERAL,
	})
	if tokens[0].Lexeme != "42" || tokens[1].Lexeme != "3.14" {
		t.Errorf("unexpected number lexemes: %q %q", tokens[0].Lexeme, tokens[1].Lexeme)
	}
}

func TestFloatVersusRange(t *testing.T) {
	// 1.5 is a float, 1..5 is a range over two integers.
	expectKinds(t, "1.5", []token.Kind{token.FLOAT_LITERAL})

	tokens := expectKinds(t, "1..5", []token.Kind{token.INT_LITERAL, token.LOOP_OP, token.INT_LITERAL})
	if tokens[1].Lexeme != ".." {
		t.Errorf("expected '..', got %q", tokens[1].Lexeme)
	}

	tokens = expectKinds(t, "1...5", []token.Kind{token.INT_LITERAL, token.LOOP_OP, token.INT_LITERAL})
	if tokens[1].Lexeme != "..." {
		t.Errorf("expected '...', got %q", tokens[1].Lexeme)
	}
}

func TestDateLiterals(t *testing.T) {
	tokens, sink := Tokenize("[2024|09|20]")
	got := significant(tokens)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	if len(got) != 1 || got[0].Kind != token.DATE_LITERAL || got[0].Lexeme != "[2024|09|20]" {
		t.Fatalf("expected one DATE_LITERAL, got %v", got)
	}
}

func TestInvalidDateLiterals(t *testing.T) {
	inputs := []string{
		"[2024|13|20]", // month out of range
		"[2024|00|20]", // month zero
		"[2024|09|32]", // day out of range
		"[202|09|20]",  // three-digit year
		"[2024|9|20]",  // one-digit month
	}
	for _, input := range inputs {
		tokens, sink := Tokenize(input)
		got := significant(tokens)
		if sink.Len() != 1 {
			t.Errorf("input %q: expected 1 diagnostic, got %d", input, sink.Len())
			continue
		}
		if sink.All()[0].Kind != diag.InvalidDate {
			t.Errorf("input %q: expected InvalidDate, got %s", input, sink.All()[0].Kind)
		}
		if len(got) != 1 || got[0].Kind != token.UNKNOWN || got[0].Lexeme != input {
			t.Errorf("input %q: expected one UNKNOWN covering the literal, got %v", input, got)
		}
	}
}

func TestFractionLiterals(t *testing.T) {
	for _, input := range []string{"[1|3]", "[22|7]"} {
		tokens, sink := Tokenize(input)
		got := significant(tokens)
		if sink.HasErrors() {
			t.Errorf("input %q: unexpected diagnostics: %v", input, sink.All())
			continue
		}
		if len(got) != 1 || got[0].Kind != token.FRAC_LITERAL || got[0].Lexeme != input {
			t.Errorf("input %q: expected one FRAC_LITERAL, got %v", input, got)
		}
	}

	_, sink := Tokenize("[5|0]")
	if sink.Len() != 1 || sink.All()[0].Kind != diag.InvalidFraction {
		t.Errorf("[5|0]: expected one InvalidFraction diagnostic, got %v", sink.All())
	}
}

func TestPlainBracketIsDelimiter(t *testing.T) {
	tokens := expectKinds(t, "a[3]", []token.Kind{
		token.IDENTIFIER, token.DELIMITER, token.INT_LITERAL, token.DELIMITER,
	})
	if tokens[1].Lexeme != "[" || tokens[3].Lexeme != "]" {
		t.Errorf("expected plain brackets, got %q %q", tokens[1].Lexeme, tokens[3].Lexeme)
	}
}

func TestUnaryBinaryDisambiguation(t *testing.T) {
	// a - b: binary subtraction.
	tokens := expectKinds(t, "a - b", []token.Kind{
		token.IDENTIFIER, token.ARITHMETIC_OP, token.IDENTIFIER,
	})
	if tokens[1].Lexeme != "-" {
		t.Errorf("expected '-', got %q", tokens[1].Lexeme)
	}

	// x = -b: prefix sign after an assignment operator.
	expectKinds(t, "x = -b", []token.Kind{
		token.IDENTIFIER, token.ASSIGNMENT_OP, token.UNARY_OP, token.IDENTIFIER,
	})

	// (-b): prefix sign after an opening delimiter.
	expectKinds(t, "(-b)", []token.Kind{
		token.DELIMITER, token.UNARY_OP, token.IDENTIFIER, token.DELIMITER,
	})

	// 3 + -4: binary plus followed by a prefix sign.
	expectKinds(t, "3 + -4", []token.Kind{
		token.INT_LITERAL, token.ARITHMETIC_OP, token.UNARY_OP, token.INT_LITERAL,
	})

	// Leading sign at the very start of the input.
	expectKinds(t, "-x", []token.Kind{token.UNARY_OP, token.IDENTIFIER})
}

func TestBinaryOperatorAfterClosingDelimiter(t *testing.T) {
	// (a + b) - c: the ')' closes a value, so '-' is binary.
	expectKinds(t, "(a + b) - c", []token.Kind{
		token.DELIMITER, token.IDENTIFIER, token.ARITHMETIC_OP, token.IDENTIFIER,
		token.DELIMITER, token.ARITHMETIC_OP, token.IDENTIFIER,
	})

	// arr[0] - 1: same after a closing bracket.
	expectKinds(t, "arr[0] - 1", []token.Kind{
		token.IDENTIFIER, token.DELIMITER, token.INT_LITERAL, token.DELIMITER,
		token.ARITHMETIC_OP, token.INT_LITERAL,
	})

	// "s" - t: same after a closing string delimiter.
	expectKinds(t, `"s" - t`, []token.Kind{
		token.STRING_DELIMITER, token.STRING_LITERAL, token.STRING_DELIMITER,
		token.ARITHMETIC_OP, token.IDENTIFIER,
	})
}

func TestLongestMatchOperators(t *testing.T) {
	cases := []struct {
		input  string
		kind   token.Kind
		lexeme string
	}{
		{"a >>> b", token.BITWISE_OP, ">>>"},
		{"a >> b", token.BITWISE_OP, ">>"},
		{"a > b", token.RELATIONAL_OP, ">"},
		{"a :>> b", token.INHERIT_OP, ":>>"},
		{"a :> b", token.INHERIT_OP, ":>"},
		{"a :: b", token.METHOD_OP, "::"},
		{"a <= b", token.RELATIONAL_OP, "<="},
		{"a << b", token.BITWISE_OP, "<<"},
		{"a != b", token.RELATIONAL_OP, "!="},
		{"a ?= b", token.ASSIGNMENT_OP, "?="},
		{"a -> b", token.METHOD_OP, "->"},
		{"a += b", token.ASSIGNMENT_OP, "+="},
	}
	for _, c := range cases {
		tokens, sink := Tokenize(c.input)
		got := significant(tokens)
		if sink.HasErrors() {
			t.Errorf("input %q: unexpected diagnostics: %v", c.input, sink.All())
			continue
		}
		if len(got) != 3 {
			t.Errorf("input %q: expected 3 tokens, got %v", c.input, got)
			continue
		}
		if got[1].Kind != c.kind || got[1].Lexeme != c.lexeme {
			t.Errorf("input %q: expected %s %q, got %s %q", c.input, c.kind, c.lexeme, got[1].Kind, got[1].Lexeme)
		}
	}
}

func TestObjectDelimiterVersusRelational(t *testing.T) {
	// <String> and <int> open an object type.
	tokens := expectKinds(t, "<String>", []token.Kind{
		token.OBJECT_DELIMITER, token.IDENTIFIER, token.OBJECT_DELIMITER,
	})
	if tokens[1].Lexeme != "String" {
		t.Errorf("expected type name 'String', got %q", tokens[1].Lexeme)
	}

	expectKinds(t, "<int>", []token.Kind{
		token.OBJECT_DELIMITER, token.RESERVED, token.OBJECT_DELIMITER,
	})

	// A quoted type name keeps its string delimiters.
	expectKinds(t, `<"Customer">`, []token.Kind{
		token.OBJECT_DELIMITER, token.STRING_DELIMITER, token.IDENTIFIER,
		token.STRING_DELIMITER, token.OBJECT_DELIMITER,
	})

	// Without a closing '>', '<' is relational.
	expectKinds(t, "a < 10", []token.Kind{
		token.IDENTIFIER, token.RELATIONAL_OP, token.INT_LITERAL,
	})
	expectKinds(t, "a<b", []token.Kind{
		token.IDENTIFIER, token.RELATIONAL_OP, token.IDENTIFIER,
	})
}

func TestStringLiterals(t *testing.T) {
	tokens, sink := Tokenize(`"hello"`)
	got := significant(tokens)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	if len(got) != 3 {
		t.Fatalf("expected delimiter/content/delimiter, got %v", got)
	}
	if got[0].Kind != token.STRING_DELIMITER || got[1].Kind != token.STRING_LITERAL || got[2].Kind != token.STRING_DELIMITER {
		t.Errorf("unexpected kinds: %v", got)
	}
	if got[1].Lexeme != "hello" {
		t.Errorf("expected content 'hello', got %q", got[1].Lexeme)
	}
}

func TestUnterminatedString(t *testing.T) {
	tokens, sink := Tokenize(`"abc`)
	if sink.Len() != 1 || sink.All()[0].Kind != diag.UnterminatedString {
		t.Fatalf("expected one UnterminatedString diagnostic, got %v", sink.All())
	}
	got := significant(tokens)
	if len(got) != 2 {
		t.Fatalf("expected opening delimiter and content, got %v", got)
	}
	if got[1].Lexeme != "abc" {
		t.Errorf("expected content 'abc', got %q", got[1].Lexeme)
	}
}

func TestCharLiterals(t *testing.T) {
	expectKinds(t, "'a'", []token.Kind{
		token.STRING_DELIMITER, token.CHAR_LITERAL, token.STRING_DELIMITER,
	})

	_, sink := Tokenize("'ab'")
	if sink.Len() != 1 || sink.All()[0].Kind != diag.InvalidCharacter {
		t.Errorf("'ab': expected one InvalidCharacter diagnostic, got %v", sink.All())
	}
}

func TestEscapeSequences(t *testing.T) {
	// Recognized escapes inside a string stay part of the content.
	tokens, sink := Tokenize(`"a\nb"`)
	got := significant(tokens)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	if got[1].Lexeme != `a\nb` {
		t.Errorf("expected raw escape in content, got %q", got[1].Lexeme)
	}

	// Unknown escapes produce a diagnostic but do not abort the string.
	_, sink = Tokenize(`"a\qb"`)
	if sink.Len() != 1 || sink.All()[0].Kind != diag.InvalidEscape {
		t.Errorf(`"a\qb": expected one InvalidEscape diagnostic, got %v`, sink.All())
	}

	// A recognized escape pair outside any string is its own token.
	expectKinds(t, `\n`, []token.Kind{token.ESCAPE})
}

func TestComplexLiterals(t *testing.T) {
	tokens, sink := Tokenize("$(3,4)")
	got := significant(tokens)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	if len(got) != 1 || got[0].Kind != token.COMPLEX_LITERAL || got[0].Lexeme != "$(3,4)" {
		t.Fatalf("expected one COMPLEX_LITERAL, got %v", got)
	}

	for _, input := range []string{"$(1,2,3)", "$(1)", "$(1,x)"} {
		_, sink := Tokenize(input)
		if sink.Len() != 1 || sink.All()[0].Kind != diag.InvalidComplex {
			t.Errorf("input %q: expected one InvalidComplex diagnostic, got %v", input, sink.All())
		}
	}
}

func TestComments(t *testing.T) {
	tokens, sink := Tokenize("x // trailing\ny")
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	var comments []token.Token
	for _, tok := range tokens {
		if tok.Kind == token.COMMENT {
			comments = append(comments, tok)
		}
	}
	if len(comments) != 1 || comments[0].Lexeme != "// trailing" {
		t.Errorf("expected one line comment, got %v", comments)
	}

	tokens, sink = Tokenize("/* block */")
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	if tokens[0].Kind != token.COMMENT || tokens[0].Lexeme != "/* block */" {
		t.Errorf("expected block comment token, got %v", tokens[0])
	}

	_, sink = Tokenize("/* open")
	if sink.Len() != 1 || sink.All()[0].Kind != diag.UnterminatedComment {
		t.Errorf("expected one UnterminatedComment diagnostic, got %v", sink.All())
	}
}

func TestHyphenatedIdentifier(t *testing.T) {
	tokens, sink := Tokenize("a-b")
	got := significant(tokens)
	if sink.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", sink.All())
	}
	d := sink.All()[0]
	if d.Kind != diag.InvalidIdentifier {
		t.Errorf("expected InvalidIdentifier, got %s", d.Kind)
	}
	if !strings.Contains(d.Suggestion, "a_b") {
		t.Errorf("expected rename suggestion, got %q", d.Suggestion)
	}
	if len(got) != 1 || got[0].Kind != token.UNKNOWN || got[0].Lexeme != "a-b" {
		t.Errorf("expected one UNKNOWN covering 'a-b', got %v", got)
	}
}

func TestPeriodOverflow(t *testing.T) {
	tokens, sink := Tokenize("a....b")
	got := significant(tokens)
	if sink.Len() != 1 || sink.All()[0].Kind != diag.InvalidOperator {
		t.Fatalf("expected one InvalidOperator diagnostic, got %v", sink.All())
	}
	if len(got) != 3 || got[1].Kind != token.UNKNOWN || got[1].Lexeme != "...." {
		t.Errorf("expected UNKNOWN covering '....', got %v", got)
	}
}

func TestInvalidCharacter(t *testing.T) {
	tokens, sink := Tokenize("a @ b")
	got := significant(tokens)
	if sink.Len() != 1 || sink.All()[0].Kind != diag.InvalidCharacter {
		t.Fatalf("expected one InvalidCharacter diagnostic, got %v", sink.All())
	}
	if len(got) != 3 || got[1].Kind != token.UNKNOWN || got[1].Lexeme != "@" {
		t.Errorf("expected UNKNOWN covering '@', got %v", got)
	}
}

// Concatenating every lexeme must reconstruct the source exactly, for
// valid and invalid input alike.
func TestRoundTripTotality(t *testing.T) {
	sources := []string{
		"public class Point {\n\tint x;\n}\n",
		"x = -b + 3.14 * a[2];",
		"[2024|09|20] [2024|13|20] [1|3] [5|0]",
		`print("hi \n there");`,
		"a-b .... @ $(1,2,3) \"open",
		"exit when x > 10; switch-fall (y) { }",
		"/* never closed",
	}
	for _, src := range sources {
		tokens, _ := Tokenize(src)
		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.Lexeme)
		}
		if b.String() != src {
			t.Errorf("round trip failed:\nsource: %q\nrebuilt: %q", src, b.String())
		}
	}
}

func TestPositions(t *testing.T) {
	tokens, _ := Tokenize("ab\n cd")
	got := significant(tokens)
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens, got %v", got)
	}
	if got[0].Position.Line != 1 || got[0].Position.Column != 1 {
		t.Errorf("expected ab at 1:1, got %d:%d", got[0].Position.Line, got[0].Position.Column)
	}
	if got[1].Position.Line != 2 || got[1].Position.Column != 2 {
		t.Errorf("expected cd at 2:2, got %d:%d", got[1].Position.Line, got[1].Position.Column)
	}
	if tokens[len(tokens)-1].Kind != token.EOF {
		t.Errorf("expected EOF terminator, got %v", tokens[len(tokens)-1])
	}
}

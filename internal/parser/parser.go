package parser

import (
	"fmt"

	"xpresso/internal/diag"
	"xpresso/internal/grammar"
	"xpresso/internal/lexer"
	"xpresso/internal/parsetree"
	"xpresso/internal/symbols"
	"xpresso/internal/token"
)

// Parser consumes a token sequence by recursive descent with one token
// of lookahead for structural decisions and precedence climbing for
// expressions. It builds the parse tree, maintains the symbol table
// scope stack, and synchronizes past malformed constructs instead of
// aborting.
type Parser struct {
	grammar *grammar.Table
	tokens  []token.Token // significant tokens only, EOF-terminated
	current int
	sink    *diag.Sink
	scopes  *symbols.Table
}

func NewParser(g *grammar.Table, tokens []token.Token, sink *diag.Sink) *Parser {
	return &Parser{
		grammar: g,
		tokens:  filterSignificant(tokens),
		sink:    sink,
		scopes:  symbols.NewTable(),
	}
}

// Parse runs the lexer and parser over source text with a shared sink,
// so lexical and syntax diagnostics come back merged in one report.
func Parse(src string) (*parsetree.Tree, *diag.Sink) {
	tokens, sink := lexer.Tokenize(src)
	p := NewParser(grammar.New(), tokens, sink)
	return p.ParseProgram(), sink
}

// SymbolTable exposes the scope stack the parser maintained.
func (p *Parser) SymbolTable() *symbols.Table {
	return p.scopes
}

// filterSignificant drops whitespace and comment tokens; the lexer keeps
// them for round-tripping but the grammar never mentions them.
func filterSignificant(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == token.WHITESPACE || t.Kind == token.COMMENT {
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 || out[len(out)-1].Kind != token.EOF {
		out = append(out, token.Token{Kind: token.EOF})
	}
	return out
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(k int) token.Token {
	if p.current+k >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.current+k]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// mark and reset implement the one token of pushback needed for
// speculative matches such as distinguishing a lambda from a plain
// identifier expression.
func (p *Parser) mark() int {
	return p.current
}

func (p *Parser) reset(m int) {
	p.current = m
}

// check tests the current token against a kind, and against an exact
// lexeme when one is given.
func (p *Parser) check(kind token.Kind, lexeme string) bool {
	t := p.peek()
	if t.Kind != kind {
		return false
	}
	return lexeme == "" || t.Lexeme == lexeme
}

func (p *Parser) match(kind token.Kind, lexeme string) bool {
	if p.check(kind, lexeme) {
		p.advance()
		return true
	}
	return false
}

// matchAny consumes the current token when its kind matches and its
// lexeme is one of the given alternatives.
func (p *Parser) matchAny(kind token.Kind, lexemes ...string) bool {
	t := p.peek()
	if t.Kind != kind {
		return false
	}
	for _, lx := range lexemes {
		if t.Lexeme == lx {
			p.advance()
			return true
		}
	}
	return false
}

// consume expects the current token to match, reporting a missing-token
// diagnostic naming the construct when it does not. The caller checks ok
// and decides how to recover; nothing is thrown.
func (p *Parser) consume(kind token.Kind, lexeme, construct string) (token.Token, bool) {
	if p.check(kind, lexeme) {
		return p.advance(), true
	}

	expected := lexeme
	if expected == "" {
		expected = kind.String()
	}
	t := p.peek()
	if t.Kind == token.EOF {
		p.sink.ReportWithSuggestion(diag.UnexpectedEOF,
			fmt.Sprintf("unexpected end of input while parsing %s", construct),
			t.Position,
			fmt.Sprintf("add '%s' to complete the %s", expected, construct))
	} else {
		p.sink.ReportWithSuggestion(diag.MissingToken,
			fmt.Sprintf("expected '%s' in %s, found %q", expected, construct, t.Lexeme),
			t.Position,
			fmt.Sprintf("insert '%s' before %q", expected, t.Lexeme))
	}
	return t, false
}

// errorAt reports a diagnostic at the current token with the grammar
// table's summary of what could start the named construct.
func (p *Parser) errorAt(kind diag.Kind, message, construct string) {
	suggestion := ""
	if construct != "" {
		suggestion = "expected " + p.grammar.Expects(construct)
	}
	p.sink.ReportWithSuggestion(kind, message, p.peek().Position, suggestion)
}

// synchronize skips tokens until a statement boundary: past a ';', or up
// to a '}' or any token the grammar table marks as able to begin a
// statement or declaration. One malformed construct therefore costs one
// diagnostic, not the rest of the file.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.match(token.PUNCTUATION, ";") {
			return
		}
		if p.check(token.DELIMITER, "}") {
			return
		}
		if p.grammar.StartsStatement(p.peek()) {
			return
		}
		p.advance()
	}
}

package lexer

import (
	"fmt"

	"xpresso/internal/diag"
	"xpresso/internal/source"
	"xpresso/internal/token"
)

// Bounded-lookahead caps. Every multi-character scan is limited either by
// end of input or by one of these, so adversarial input cannot hang the
// lexer; on overflow the policy is one diagnostic plus resynchronization
// at the offending character.
const (
	maxPeriodRun      = 3
	maxBracketScan    = 16
	maxComplexScan    = 64
	maxTypeNameScan   = 64
	maxHyphenSegments = 3
)

// Lexer turns a source cursor into a token sequence. It is total: every
// character of input ends up in exactly one token, and every failed scan
// produces one diagnostic plus an UNKNOWN token covering the consumed
// text, so concatenating all lexemes always reconstructs the source.
type Lexer struct {
	cursor *source.Cursor
	sink   *diag.Sink
	tokens []token.Token

	start    int            // byte offset where the current scan began
	startPos token.Position // position where the current scan began

	// last emitted token that is not whitespace or a comment, maintained
	// incrementally for unary/binary operator context
	lastSig *token.Token
}

func New(cursor *source.Cursor, sink *diag.Sink) *Lexer {
	return &Lexer{cursor: cursor, sink: sink}
}

// Tokenize scans the whole input. The returned sequence always ends with
// an EOF token. Diagnostics accumulate in the sink; the lexer never stops
// early on a bad token.
func Tokenize(src string) ([]token.Token, *diag.Sink) {
	sink := diag.NewSink()
	lx := New(source.NewCursor(src), sink)
	return lx.ScanTokens(), sink
}

func (l *Lexer) ScanTokens() []token.Token {
	for !l.cursor.AtEnd() {
		l.start = l.cursor.Offset()
		l.startPos = l.cursor.Position()
		l.scanToken()
	}
	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Position: l.cursor.Position()})
	return l.tokens
}

func (l *Lexer) scanToken() {
	c := l.cursor.Next()
	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		l.scanWhitespace()
	case isAlpha(c):
		l.scanWord()
	case isDigit(c):
		l.scanNumber()
	case c == '"':
		l.scanString()
	case c == '\'':
		l.scanChar()
	case c == '$':
		l.scanComplex()
	case c == '[':
		l.scanBracket()
	case c == '/':
		l.scanSlash()
	case c == '<':
		l.scanLess()
	case c == '>':
		l.scanGreater()
	case c == ':':
		l.scanColon()
	case c == '.':
		l.scanPeriod()
	case c == '\\':
		l.scanEscape()
	case c == '(' || c == ')' || c == '{' || c == '}' || c == ']':
		l.addToken(token.DELIMITER)
	case c == ';' || c == ',':
		l.addToken(token.PUNCTUATION)
	case c == '?':
		if l.cursor.Match('=') {
			l.addToken(token.ASSIGNMENT_OP)
		} else {
			l.addToken(token.PUNCTUATION)
		}
	default:
		l.scanOperator(c)
	}
}

// addToken emits a token whose lexeme is the exact source slice scanned
// since the current start mark.
func (l *Lexer) addToken(kind token.Kind) {
	l.addLexeme(kind, l.cursor.Slice(l.start, l.cursor.Offset()), l.startPos)
}

func (l *Lexer) addLexeme(kind token.Kind, lexeme string, pos token.Position) {
	tok := token.Token{Kind: kind, Lexeme: lexeme, Position: pos}
	l.tokens = append(l.tokens, tok)
	if kind != token.WHITESPACE && kind != token.COMMENT {
		l.lastSig = &l.tokens[len(l.tokens)-1]
	}
}

// addUnknown emits an UNKNOWN token covering the text consumed so far,
// keeping the concatenation-of-lexemes invariant intact when a scan has
// already reported a diagnostic.
func (l *Lexer) addUnknown() {
	if l.cursor.Offset() > l.start {
		l.addToken(token.UNKNOWN)
	}
}

func (l *Lexer) report(kind diag.Kind, message string) {
	l.sink.ReportSpan(kind, message, l.startPos, l.cursor.Offset()-l.start)
}

func (l *Lexer) reportf(kind diag.Kind, format string, args ...interface{}) {
	l.report(kind, fmt.Sprintf(format, args...))
}

func (l *Lexer) suggest(kind diag.Kind, message, suggestion string) {
	l.sink.ReportWithSuggestion(kind, message, l.startPos, suggestion)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

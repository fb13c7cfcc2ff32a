package lexer

import (
	"strings"

	"xpresso/internal/diag"
	"xpresso/internal/token"
)

// scanWhitespace greedily folds a run of consecutive whitespace into one
// token so the token stream round-trips the source exactly. Downstream
// consumers filter these out.
func (l *Lexer) scanWhitespace() {
	for {
		c := l.cursor.Peek()
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			break
		}
		l.cursor.Next()
	}
	l.addToken(token.WHITESPACE)
}

// scanWord scans an identifier-shaped word and classifies it as keyword,
// reserved word, boolean literal, or identifier. The two-word keywords
// "exit when" and "where type" and the hyphenated "switch-fall" are
// joined here before lookup.
func (l *Lexer) scanWord() {
	for isAlphaNumeric(l.cursor.Peek()) {
		l.cursor.Next()
	}
	word := l.cursor.Slice(l.start, l.cursor.Offset())

	switch word {
	case "exit":
		l.tryJoinSpace("when")
	case "where":
		l.tryJoinSpace("type")
	case "switch":
		if l.tryJoinHyphen("fall") {
			l.addToken(token.KEYWORD)
			return
		}
	}

	// A hyphen glued to the next letter is not valid inside identifiers.
	// Consuming the hyphenated run and diagnosing beats silently
	// truncating at the hyphen.
	if l.cursor.Peek() == '-' && isAlpha(l.cursor.PeekAt(1)) {
		l.scanHyphenatedIdentifier()
		return
	}

	word = l.cursor.Slice(l.start, l.cursor.Offset())
	l.addToken(token.LookupWord(word))
}

// tryJoinSpace extends the current word across " <next>" when the joined
// form is a keyword, e.g. "exit when".
func (l *Lexer) tryJoinSpace(next string) {
	if l.cursor.Peek() != ' ' {
		return
	}
	for i := 0; i < len(next); i++ {
		if l.cursor.PeekAt(1+i) != next[i] {
			return
		}
	}
	if isAlphaNumeric(l.cursor.PeekAt(1 + len(next))) {
		return
	}
	for i := 0; i < 1+len(next); i++ {
		l.cursor.Next()
	}
}

// tryJoinHyphen extends the current word across "-<next>" when the
// joined form is a keyword, e.g. "switch-fall".
func (l *Lexer) tryJoinHyphen(next string) bool {
	if l.cursor.Peek() != '-' {
		return false
	}
	for i := 0; i < len(next); i++ {
		if l.cursor.PeekAt(1+i) != next[i] {
			return false
		}
	}
	if isAlphaNumeric(l.cursor.PeekAt(1 + len(next))) {
		return false
	}
	joined := l.cursor.Slice(l.start, l.cursor.Offset()) + "-" + next
	if _, ok := token.KEYWORDS[joined]; !ok {
		return false
	}
	for i := 0; i < 1+len(next); i++ {
		l.cursor.Next()
	}
	return true
}

// scanHyphenatedIdentifier consumes an identifier with embedded hyphens,
// bounded at maxHyphenSegments extra segments, and reports it as one
// invalid-identifier diagnostic plus an UNKNOWN token.
func (l *Lexer) scanHyphenatedIdentifier() {
	segments := 1
	for l.cursor.Peek() == '-' && isAlpha(l.cursor.PeekAt(1)) && segments < 1+maxHyphenSegments {
		l.cursor.Next() // '-'
		for isAlphaNumeric(l.cursor.Peek()) {
			l.cursor.Next()
		}
		segments++
	}

	word := l.cursor.Slice(l.start, l.cursor.Offset())
	l.suggest(diag.InvalidIdentifier,
		"identifier contains '-' which is not allowed",
		"rename to "+strings.ReplaceAll(word, "-", "_")+" or separate the operands with spaces")
	l.addUnknown()
}

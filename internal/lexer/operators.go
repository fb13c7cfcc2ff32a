package lexer

import (
	"xpresso/internal/diag"
	"xpresso/internal/token"
)

// scanOperator is the fallback for characters that can only start an
// operator. Longest match wins: the three-character table is consulted
// before the two-character table before single-character classification.
func (l *Lexer) scanOperator(c byte) {
	three := string(c) + string(l.cursor.Peek()) + string(l.cursor.PeekAt(1))
	if kind, ok := token.THREE_CHAR_OPS[three]; ok {
		l.cursor.Next()
		l.cursor.Next()
		l.addToken(kind)
		return
	}

	two := string(c) + string(l.cursor.Peek())
	if kind, ok := token.TWO_CHAR_OPS[two]; ok {
		l.cursor.Next()
		l.addToken(kind)
		return
	}

	kind, ok := token.SINGLE_CHAR_OPS[c]
	if !ok {
		l.reportf(diag.InvalidCharacter, "unexpected character %q", c)
		l.addUnknown()
		return
	}
	if (c == '+' || c == '-') && l.unaryContext() {
		kind = token.UNARY_OP
	}
	l.addToken(kind)
}

// unaryContext decides whether a '+' or '-' about to be emitted is a
// prefix sign rather than a binary operator. The rule, applied to the
// most recent significant (non-whitespace, non-comment) token: unary if
// there is no predecessor, or the predecessor is any operator, an
// opening delimiter, punctuation, or an object delimiter. A closing
// delimiter does not count: whatever ')' ']' '}' closes is a value, so
// an operator after it is binary, and the same holds for a closing
// string delimiter.
func (l *Lexer) unaryContext() bool {
	if l.lastSig == nil {
		return true
	}
	switch l.lastSig.Kind {
	case token.DELIMITER:
		switch l.lastSig.Lexeme {
		case ")", "]", "}":
			return false
		}
		return true
	case token.PUNCTUATION, token.OBJECT_DELIMITER:
		return true
	}
	return l.lastSig.Kind.IsOperator()
}

// scanLess resolves '<' into the opening of an object-type delimiter
// <Type> when the next character is a letter or a quote and a matching
// '>' follows a well-formed type name; otherwise it falls back to
// relational/shift operator scanning, so `<10` is relational and
// `<String>` is an object delimiter.
func (l *Lexer) scanLess() {
	if isAlpha(l.cursor.Peek()) || l.cursor.Peek() == '"' {
		if l.scanObjectDelimiter() {
			return
		}
	}

	switch {
	case l.cursor.Match('<'):
		l.addToken(token.BITWISE_OP)
	case l.cursor.Match('='):
		l.addToken(token.RELATIONAL_OP)
	default:
		l.addToken(token.RELATIONAL_OP)
	}
}

// scanObjectDelimiter attempts <TypeName> or <"TypeName">. On success it
// emits the opening delimiter, the type name token(s), and the closing
// delimiter; on failure the cursor is rewound and nothing is emitted.
func (l *Lexer) scanObjectDelimiter() bool {
	mark := l.cursor.Snapshot()

	quoted := l.cursor.Peek() == '"'
	nameStart := l.cursor.Offset()
	namePos := l.cursor.Position()
	if quoted {
		l.cursor.Next()
		nameStart = l.cursor.Offset()
		namePos = l.cursor.Position()
	}

	scanned := 0
	for isAlphaNumeric(l.cursor.Peek()) && scanned < maxTypeNameScan {
		l.cursor.Next()
		scanned++
	}
	nameEnd := l.cursor.Offset()
	nameEndPos := l.cursor.Position()

	if quoted && !l.cursor.Match('"') {
		l.cursor.Reset(mark)
		return false
	}
	closePos := l.cursor.Position()
	if scanned == 0 || !l.cursor.Match('>') {
		l.cursor.Reset(mark)
		return false
	}

	name := l.cursor.Slice(nameStart, nameEnd)
	l.addLexeme(token.OBJECT_DELIMITER, "<", l.startPos)
	if quoted {
		l.addLexeme(token.STRING_DELIMITER, `"`, namePos)
		l.addLexeme(token.LookupWord(name), name, namePos)
		l.addLexeme(token.STRING_DELIMITER, `"`, nameEndPos)
	} else {
		l.addLexeme(token.LookupWord(name), name, namePos)
	}
	l.addLexeme(token.OBJECT_DELIMITER, ">", closePos)
	return true
}

// scanGreater resolves '>' with longest match: >>> then >> then >= then
// >. An isolated '>' is always relational; closing object delimiters are
// only ever produced by scanObjectDelimiter.
func (l *Lexer) scanGreater() {
	switch {
	case l.cursor.Peek() == '>' && l.cursor.PeekAt(1) == '>':
		l.cursor.Next()
		l.cursor.Next()
		l.addToken(token.BITWISE_OP)
	case l.cursor.Match('>'):
		l.addToken(token.BITWISE_OP)
	case l.cursor.Match('='):
		l.addToken(token.RELATIONAL_OP)
	default:
		l.addToken(token.RELATIONAL_OP)
	}
}

// scanColon resolves ':' with longest match: :>> then :> then :: then a
// plain punctuation colon.
func (l *Lexer) scanColon() {
	switch {
	case l.cursor.Peek() == '>' && l.cursor.PeekAt(1) == '>':
		l.cursor.Next()
		l.cursor.Next()
		l.addToken(token.INHERIT_OP)
	case l.cursor.Match('>'):
		l.addToken(token.INHERIT_OP)
	case l.cursor.Match(':'):
		l.addToken(token.METHOD_OP)
	default:
		l.addToken(token.PUNCTUATION)
	}
}

// scanPeriod resolves a run of periods: '.' method operator, '..' range,
// '...' iteration. Runs longer than maxPeriodRun are consumed whole and
// reported as one invalid-operator diagnostic rather than silently
// emitting partial operators.
func (l *Lexer) scanPeriod() {
	run := 1
	for run <= maxPeriodRun && l.cursor.PeekAt(run-1) == '.' {
		run++
	}

	if run > maxPeriodRun {
		for l.cursor.Peek() == '.' {
			l.cursor.Next()
		}
		l.suggest(diag.InvalidOperator,
			"too many consecutive periods",
			"use '.' for method access, '..' for ranges, '...' for iteration")
		l.addUnknown()
		return
	}

	switch run {
	case 3:
		l.cursor.Next()
		l.cursor.Next()
		l.addToken(token.LOOP_OP)
	case 2:
		l.cursor.Next()
		l.addToken(token.LOOP_OP)
	default:
		l.addToken(token.METHOD_OP)
	}
}

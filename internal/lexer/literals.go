package lexer

import (
	"strconv"
	"strings"

	"xpresso/internal/diag"
	"xpresso/internal/token"
)

// scanNumber scans an integer or float. A single '.' followed by a digit
// promotes the number to a float; a second '.' is never consumed as part
// of the number so that `1..5` stays a loop range while `1.5` is a float.
func (l *Lexer) scanNumber() {
	for isDigit(l.cursor.Peek()) {
		l.cursor.Next()
	}

	kind := token.INT_LITERAL
	if l.cursor.Peek() == '.' && isDigit(l.cursor.PeekAt(1)) {
		l.cursor.Next() // '.'
		for isDigit(l.cursor.Peek()) {
			l.cursor.Next()
		}
		kind = token.FLOAT_LITERAL
	}
	l.addToken(kind)
}

// scanBracket resolves '[' into either a date literal [YYYY|MM|DD], a
// fraction literal [n|d], or a plain delimiter. The speculative scan is
// bounded by maxBracketScan characters; if no '|' shows up the cursor is
// rewound and '[' is an ordinary delimiter.
func (l *Lexer) scanBracket() {
	mark := l.cursor.Snapshot()

	pipes := 0
	scanned := 0
	closed := false
	for scanned < maxBracketScan {
		c := l.cursor.Peek()
		if c == ']' {
			l.cursor.Next()
			closed = true
			break
		}
		if c == '|' {
			pipes++
		} else if !isDigit(c) {
			break
		}
		l.cursor.Next()
		scanned++
	}

	if pipes == 0 {
		// Not a date or fraction; plain array/index delimiter.
		l.cursor.Reset(mark)
		l.addToken(token.DELIMITER)
		return
	}

	lexeme := l.cursor.Slice(l.start, l.cursor.Offset())
	if !closed {
		kind := diag.InvalidFraction
		if pipes >= 2 {
			kind = diag.InvalidDate
		}
		l.suggest(kind, "unterminated literal "+lexeme, "close the literal with ']'")
		l.addUnknown()
		return
	}

	body := lexeme[1 : len(lexeme)-1]
	parts := strings.Split(body, "|")
	switch pipes {
	case 1:
		l.finishFraction(lexeme, parts)
	case 2:
		l.finishDate(lexeme, parts)
	default:
		l.suggest(diag.InvalidDate, "too many '|' separators in "+lexeme,
			"write a date as [YYYY|MM|DD] or a fraction as [n|d]")
		l.addUnknown()
	}
}

// finishDate validates [YYYY|MM|DD]: 4-digit year, 2-digit month in
// [1,12], 2-digit day in [1,31].
func (l *Lexer) finishDate(lexeme string, parts []string) {
	year, month, day := parts[0], parts[1], parts[2]

	switch {
	case year == "" || month == "" || day == "":
		l.suggest(diag.InvalidDate, "date literal "+lexeme+" is missing a part",
			"write dates as [YYYY|MM|DD]")
	case len(year) != 4:
		l.suggest(diag.InvalidDate, "year in "+lexeme+" must have exactly 4 digits",
			"write dates as [YYYY|MM|DD]")
	case len(month) != 2 || !inRange(month, 1, 12):
		l.suggest(diag.InvalidDate, "month in "+lexeme+" must be between 01 and 12",
			"write dates as [YYYY|MM|DD]")
	case len(day) != 2 || !inRange(day, 1, 31):
		l.suggest(diag.InvalidDate, "day in "+lexeme+" must be between 01 and 31",
			"write dates as [YYYY|MM|DD]")
	default:
		l.addToken(token.DATE_LITERAL)
		return
	}
	l.addUnknown()
}

// finishFraction validates [n|d]: both parts present, denominator not zero.
func (l *Lexer) finishFraction(lexeme string, parts []string) {
	num, den := parts[0], parts[1]

	switch {
	case num == "" || den == "":
		l.suggest(diag.InvalidFraction, "fraction literal "+lexeme+" is missing a part",
			"write fractions as [numerator|denominator]")
	case !inRange(den, 1, 1<<31-1):
		l.suggest(diag.InvalidFraction, "fraction "+lexeme+" has a zero denominator",
			"use a non-zero denominator")
	default:
		l.addToken(token.FRAC_LITERAL)
		return
	}
	l.addUnknown()
}

func inRange(digits string, lo, hi int) bool {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return false
	}
	return lo <= n && n <= hi
}

// scanString scans a double-quoted string. The opening and closing
// quotes are emitted as STRING_DELIMITER tokens around the content so
// the stream still round-trips the source.
func (l *Lexer) scanString() {
	l.addToken(token.STRING_DELIMITER)

	l.start = l.cursor.Offset()
	l.startPos = l.cursor.Position()
	for !l.cursor.AtEnd() && l.cursor.Peek() != '"' {
		if l.cursor.Peek() == '\\' {
			l.cursor.Next()
			l.checkEscape()
			continue
		}
		l.cursor.Next()
	}

	l.addToken(token.STRING_LITERAL)

	if l.cursor.AtEnd() {
		l.suggest(diag.UnterminatedString, "string literal is never closed",
			`close the string with '"'`)
		return
	}

	l.start = l.cursor.Offset()
	l.startPos = l.cursor.Position()
	l.cursor.Next() // closing '"'
	l.addToken(token.STRING_DELIMITER)
}

// scanChar scans a single-quoted character literal. More than one
// character between the quotes is a diagnostic, not an exception.
func (l *Lexer) scanChar() {
	l.addToken(token.STRING_DELIMITER)

	l.start = l.cursor.Offset()
	l.startPos = l.cursor.Position()
	chars := 0
	for !l.cursor.AtEnd() && l.cursor.Peek() != '\'' && l.cursor.Peek() != '\n' {
		if l.cursor.Peek() == '\\' {
			l.cursor.Next()
			l.checkEscape()
		} else {
			l.cursor.Next()
		}
		chars++
	}

	l.addToken(token.CHAR_LITERAL)

	if l.cursor.AtEnd() || l.cursor.Peek() == '\n' {
		l.suggest(diag.UnterminatedString, "character literal is never closed",
			"close the character with \"'\"")
		return
	}
	if chars != 1 {
		l.reportf(diag.InvalidCharacter, "character literal must contain exactly one character, found %d", chars)
	}

	l.start = l.cursor.Offset()
	l.startPos = l.cursor.Position()
	l.cursor.Next() // closing '\''
	l.addToken(token.STRING_DELIMITER)
}

// checkEscape validates the character after a consumed backslash against
// the recognized escape set. The escape stays part of the enclosing
// lexeme either way; unknown escapes only produce a diagnostic.
func (l *Lexer) checkEscape() {
	c := l.cursor.Peek()
	switch c {
	case 'n', 't', 'r', '"', '\\', '\'':
		l.cursor.Next()
	default:
		pos := l.cursor.Position()
		l.sink.ReportWithSuggestion(diag.InvalidEscape,
			"unknown escape sequence '\\"+string(c)+"'",
			pos, `recognized escapes are \n \t \r \" \\`)
		if !l.cursor.AtEnd() {
			l.cursor.Next()
		}
	}
}

// scanEscape handles a backslash outside of any string context. A
// recognized escape pair becomes an ESCAPE token; anything else is an
// invalid character.
func (l *Lexer) scanEscape() {
	switch l.cursor.Peek() {
	case 'n', 't', 'r', '"', '\\':
		l.cursor.Next()
		l.addToken(token.ESCAPE)
	default:
		l.report(diag.InvalidCharacter, "unexpected character '\\'")
		l.addUnknown()
	}
}

// scanComplex scans $(real,imag). Only digits, '-', and '.' may appear
// in the two parts, separated by exactly one comma.
func (l *Lexer) scanComplex() {
	if !l.cursor.Match('(') {
		l.report(diag.InvalidCharacter, "unexpected character '$'")
		l.addUnknown()
		return
	}

	commas := 0
	scanned := 0
	closed := false
	valid := true
	for scanned < maxComplexScan && !l.cursor.AtEnd() {
		c := l.cursor.Peek()
		if c == ')' {
			l.cursor.Next()
			closed = true
			break
		}
		if c == ',' {
			commas++
		} else if !isDigit(c) && c != '-' && c != '.' {
			valid = false
		}
		l.cursor.Next()
		scanned++
	}

	lexeme := l.cursor.Slice(l.start, l.cursor.Offset())
	switch {
	case !closed:
		l.suggest(diag.InvalidComplex, "complex literal "+lexeme+" is never closed",
			"close the literal with ')'")
	case !valid:
		l.suggest(diag.InvalidComplex, "complex literal "+lexeme+" contains invalid characters",
			"write complex numbers as $(real,imag)")
	case commas != 1:
		l.suggest(diag.InvalidComplex, "complex literal "+lexeme+" must have exactly one comma",
			"write complex numbers as $(real,imag)")
	default:
		l.addToken(token.COMPLEX_LITERAL)
		return
	}
	l.addUnknown()
}

// scanSlash resolves '/' into a line comment, a block comment, or an
// arithmetic operator.
func (l *Lexer) scanSlash() {
	switch {
	case l.cursor.Match('/'):
		for !l.cursor.AtEnd() && l.cursor.Peek() != '\n' {
			l.cursor.Next()
		}
		l.addToken(token.COMMENT)
	case l.cursor.Match('*'):
		l.scanBlockComment()
	case l.cursor.Match('='):
		l.addToken(token.ASSIGNMENT_OP)
	default:
		l.addToken(token.ARITHMETIC_OP)
	}
}

func (l *Lexer) scanBlockComment() {
	for !l.cursor.AtEnd() {
		if l.cursor.Peek() == '*' && l.cursor.PeekAt(1) == '/' {
			l.cursor.Next()
			l.cursor.Next()
			l.addToken(token.COMMENT)
			return
		}
		l.cursor.Next()
	}
	l.suggest(diag.UnterminatedComment, "block comment is never closed",
		"close the comment with '*/'")
	l.addToken(token.COMMENT)
}

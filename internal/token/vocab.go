package token

// KEYWORDS is the fixed keyword set. Multi-word keywords ("exit when",
// "where type") and the hyphenated "switch-fall" are joined by the lexer
// before lookup.
var KEYWORDS = map[string]struct{}{
	"break":       {},
	"case":        {},
	"day":         {},
	"default":     {},
	"do":          {},
	"else":        {},
	"exit":        {},
	"exit when":   {},
	"for":         {},
	"get":         {},
	"if":          {},
	"in":          {},
	"Input":       {},
	"month":       {},
	"Output":      {},
	"print":       {},
	"switch":      {},
	"switch-fall": {},
	"while":       {},
	"where type":  {},
	"year":        {},
}

// RESERVED_WORDS is the fixed reserved-word set.
var RESERVED_WORDS = map[string]struct{}{
	"abstract":     {},
	"after":        {},
	"ALIAS":        {},
	"before":       {},
	"bool":         {},
	"byte":         {},
	"char":         {},
	"class":        {},
	"Complex":      {},
	"Date":         {},
	"double":       {},
	"exclude":      {},
	"export_as":    {},
	"Frac":         {},
	"filter_by":    {},
	"final":        {},
	"float":        {},
	"inline_query": {},
	"inspect":      {},
	"int":          {},
	"long":         {},
	"main":         {},
	"modify":       {},
	"native":       {},
	"private":      {},
	"protected":    {},
	"public":       {},
	"short":        {},
	"static":       {},
	"STRICT":       {},
	"strictfp":     {},
	"str":          {},
	"today":        {},
	"toMixed":      {},
	"transient":    {},
	"validate":     {},
	"volatile":     {},
}

// LookupWord classifies a scanned word as keyword, reserved word,
// boolean literal, or plain identifier.
func LookupWord(text string) Kind {
	if _, ok := KEYWORDS[text]; ok {
		return KEYWORD
	}
	if _, ok := RESERVED_WORDS[text]; ok {
		return RESERVED
	}
	if text == "true" || text == "false" {
		return BOOL_LITERAL
	}
	return IDENTIFIER
}

// THREE_CHAR_OPS maps every valid three-character operator to its kind.
// Consulted before TWO_CHAR_OPS so longest match wins.
var THREE_CHAR_OPS = map[string]Kind{
	">>>": BITWISE_OP,
	":>>": INHERIT_OP,
	"...": LOOP_OP,
}

// TWO_CHAR_OPS maps every valid two-character operator to its kind.
var TWO_CHAR_OPS = map[string]Kind{
	"+=": ASSIGNMENT_OP,
	"-=": ASSIGNMENT_OP,
	"*=": ASSIGNMENT_OP,
	"/=": ASSIGNMENT_OP,
	"%=": ASSIGNMENT_OP,
	"?=": ASSIGNMENT_OP,
	"==": RELATIONAL_OP,
	"!=": RELATIONAL_OP,
	">=": RELATIONAL_OP,
	"<=": RELATIONAL_OP,
	"||": LOGICAL_OP,
	"&&": LOGICAL_OP,
	"<<": BITWISE_OP,
	">>": BITWISE_OP,
	"::": METHOD_OP,
	"->": METHOD_OP,
	":>": INHERIT_OP,
	"..": LOOP_OP,
}

// SINGLE_CHAR_OPS maps every valid single-character operator to its kind.
// '+' and '-' are reclassified as UNARY_OP by the lexer when the
// preceding significant token puts them in unary position.
var SINGLE_CHAR_OPS = map[byte]Kind{
	'=': ASSIGNMENT_OP,
	'+': ARITHMETIC_OP,
	'-': ARITHMETIC_OP,
	'*': ARITHMETIC_OP,
	'/': ARITHMETIC_OP,
	'%': ARITHMETIC_OP,
	'^': ARITHMETIC_OP,
	'>': RELATIONAL_OP,
	'<': RELATIONAL_OP,
	'!': LOGICAL_OP,
	'&': BITWISE_OP,
	'|': BITWISE_OP,
	'~': BITWISE_OP,
	'.': METHOD_OP,
}

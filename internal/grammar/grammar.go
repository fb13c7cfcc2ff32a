package grammar

import (
	"strings"

	"xpresso/internal/token"
)

// Symbol is one element of a production: either a terminal (matched by
// token kind, or by exact lexeme when Text is set) or a non-terminal
// (named production). Optional and Repeated mark [x] and {x} elements.
type Symbol struct {
	Kind        token.Kind // terminal kind, ignored for non-terminals
	Text        string     // exact lexeme for literal terminals; name for non-terminals
	NonTerminal bool
	Optional    bool
	Repeated    bool
}

// Production is an ordered sequence of symbols. An empty production
// marks a nullable non-terminal.
type Production []Symbol

// Table is the static grammar description. It is built once by New,
// never mutated afterwards, and passed by reference into the parser,
// which consults it for expected-construct suggestions and for the
// synchronization sets used during error recovery.
type Table struct {
	productions map[string][]Production

	// lexemes of keywords/reserved words that can begin a statement or a
	// class-level declaration; used as recovery boundaries
	statementStart map[string]struct{}
}

// Terminal symbol matched by kind alone.
func T(kind token.Kind) Symbol {
	return Symbol{Kind: kind}
}

// L is a terminal symbol matched by exact lexeme.
func L(kind token.Kind, text string) Symbol {
	return Symbol{Kind: kind, Text: text}
}

// N is a non-terminal reference.
func N(name string) Symbol {
	return Symbol{Text: name, NonTerminal: true}
}

// Opt marks a symbol optional.
func Opt(s Symbol) Symbol {
	s.Optional = true
	return s
}

// Rep marks a symbol repeated zero or more times.
func Rep(s Symbol) Symbol {
	s.Repeated = true
	return s
}

func (s Symbol) String() string {
	var name string
	switch {
	case s.NonTerminal:
		name = "<" + s.Text + ">"
	case s.Text != "":
		name = "'" + s.Text + "'"
	default:
		name = s.Kind.String()
	}
	if s.Optional {
		return "[" + name + "]"
	}
	if s.Repeated {
		return "{" + name + "}"
	}
	return name
}

// New constructs the grammar table. The productions mirror the language
// surface: a program is a sequence of classes, a class body holds fields,
// methods and an optional main block, and statements dispatch on their
// leading keyword.
func New() *Table {
	t := &Table{
		productions:    make(map[string][]Production),
		statementStart: make(map[string]struct{}),
	}

	t.add("program", Production{Rep(N("class_declaration"))})

	t.add("class_declaration", Production{
		Opt(N("access_modifier")),
		Rep(N("non_access_modifier")),
		L(token.RESERVED, "class"),
		T(token.IDENTIFIER),
		Opt(N("inheritance")),
		L(token.DELIMITER, "{"),
		N("class_body"),
		L(token.DELIMITER, "}"),
	})

	t.add("access_modifier",
		Production{L(token.RESERVED, "public")},
		Production{L(token.RESERVED, "private")},
		Production{L(token.RESERVED, "protected")},
	)

	t.add("non_access_modifier",
		Production{L(token.RESERVED, "static")},
		Production{L(token.RESERVED, "final")},
		Production{L(token.RESERVED, "abstract")},
		Production{L(token.RESERVED, "native")},
		Production{L(token.RESERVED, "transient")},
		Production{L(token.RESERVED, "volatile")},
		Production{L(token.RESERVED, "strictfp")},
		Production{L(token.RESERVED, "STRICT")},
	)

	t.add("inheritance",
		// single parent
		Production{L(token.INHERIT_OP, ":>"), T(token.IDENTIFIER)},
		// comma-separated interface list
		Production{L(token.INHERIT_OP, ":>>"), T(token.IDENTIFIER),
			Rep(N("interface_tail"))},
	)
	t.add("interface_tail", Production{L(token.PUNCTUATION, ","), T(token.IDENTIFIER)})

	t.add("class_body", Production{Rep(N("class_member"))})
	t.add("class_member",
		Production{N("field_declaration")},
		Production{N("method_declaration")},
		Production{N("main_declaration")},
	)

	t.add("field_declaration", Production{
		Opt(N("access_modifier")),
		Rep(N("non_access_modifier")),
		N("type"),
		T(token.IDENTIFIER),
		Opt(N("initializer")),
		L(token.PUNCTUATION, ";"),
	})
	t.add("initializer", Production{L(token.ASSIGNMENT_OP, "="), N("expression")})

	t.add("method_declaration", Production{
		Opt(N("access_modifier")),
		Rep(N("non_access_modifier")),
		N("type"),
		T(token.IDENTIFIER),
		L(token.DELIMITER, "("),
		Opt(N("parameter_list")),
		L(token.DELIMITER, ")"),
		N("block"),
	})

	t.add("main_declaration", Production{
		L(token.RESERVED, "main"),
		L(token.DELIMITER, "("),
		L(token.DELIMITER, ")"),
		N("block"),
	})

	t.add("parameter_list", Production{
		N("parameter"), Rep(N("parameter_tail")),
	})
	t.add("parameter", Production{N("type"), T(token.IDENTIFIER)})
	t.add("parameter_tail", Production{L(token.PUNCTUATION, ","), N("parameter")})

	t.add("type",
		Production{L(token.RESERVED, "int")},
		Production{L(token.RESERVED, "float")},
		Production{L(token.RESERVED, "double")},
		Production{L(token.RESERVED, "long")},
		Production{L(token.RESERVED, "short")},
		Production{L(token.RESERVED, "byte")},
		Production{L(token.RESERVED, "bool")},
		Production{L(token.RESERVED, "char")},
		Production{L(token.RESERVED, "str")},
		Production{L(token.RESERVED, "Date")},
		Production{L(token.RESERVED, "Frac")},
		Production{L(token.RESERVED, "Complex")},
		Production{T(token.OBJECT_DELIMITER), T(token.IDENTIFIER), T(token.OBJECT_DELIMITER)},
		Production{T(token.IDENTIFIER)},
	)

	t.add("block", Production{
		L(token.DELIMITER, "{"), Rep(N("statement")), L(token.DELIMITER, "}"),
	})

	t.add("statement",
		Production{N("declaration_statement")},
		Production{N("if_statement")},
		Production{N("switch_statement")},
		Production{N("for_statement")},
		Production{N("while_statement")},
		Production{N("do_statement")},
		Production{N("print_statement")},
		Production{N("filter_statement")},
		Production{N("validate_statement")},
		Production{N("modify_statement")},
		Production{N("inline_query_statement")},
		Production{N("export_statement")},
		Production{N("tomixed_statement")},
		Production{N("alias_declaration")},
		Production{N("break_statement")},
		Production{N("exit_statement")},
		Production{N("expression_statement")},
	)

	t.add("declaration_statement", Production{
		N("type"), T(token.IDENTIFIER), Opt(N("initializer")), L(token.PUNCTUATION, ";"),
	})
	t.add("expression_statement", Production{N("expression"), L(token.PUNCTUATION, ";")})

	t.add("if_statement", Production{
		L(token.KEYWORD, "if"),
		L(token.DELIMITER, "("), N("expression"), L(token.DELIMITER, ")"),
		N("block"),
		Opt(N("else_clause")),
	})
	t.add("else_clause",
		Production{L(token.KEYWORD, "else"), N("if_statement")},
		Production{L(token.KEYWORD, "else"), N("block")},
	)

	t.add("switch_statement",
		Production{L(token.KEYWORD, "switch"), N("switch_body")},
		Production{L(token.KEYWORD, "switch-fall"), N("switch_body")},
	)
	t.add("switch_body", Production{
		L(token.DELIMITER, "("), N("expression"), L(token.DELIMITER, ")"),
		L(token.DELIMITER, "{"),
		Rep(N("case_clause")),
		Opt(N("default_clause")),
		L(token.DELIMITER, "}"),
	})
	t.add("case_clause", Production{
		L(token.KEYWORD, "case"), N("expression"), L(token.PUNCTUATION, ":"),
		Rep(N("statement")),
	})
	t.add("default_clause", Production{
		L(token.KEYWORD, "default"), L(token.PUNCTUATION, ":"), Rep(N("statement")),
	})

	t.add("for_statement", Production{
		L(token.KEYWORD, "for"),
		L(token.DELIMITER, "("),
		Opt(N("for_init")), L(token.PUNCTUATION, ";"),
		Opt(N("expression")), L(token.PUNCTUATION, ";"),
		Opt(N("expression")),
		L(token.DELIMITER, ")"),
		N("block"),
	})
	t.add("for_init",
		Production{N("type"), T(token.IDENTIFIER), N("initializer")},
		Production{N("expression")},
	)

	t.add("while_statement", Production{
		L(token.KEYWORD, "while"),
		L(token.DELIMITER, "("), N("expression"), L(token.DELIMITER, ")"),
		N("block"),
	})

	t.add("do_statement",
		// do { ... } while (cond);
		Production{L(token.KEYWORD, "do"), N("block"),
			L(token.KEYWORD, "while"),
			L(token.DELIMITER, "("), N("expression"), L(token.DELIMITER, ")"),
			L(token.PUNCTUATION, ";")},
		// do for (x in xs) { ... }
		Production{L(token.KEYWORD, "do"), L(token.KEYWORD, "for"),
			L(token.DELIMITER, "("), T(token.IDENTIFIER),
			L(token.KEYWORD, "in"), N("expression"),
			L(token.DELIMITER, ")"),
			N("block")},
	)

	t.add("print_statement", Production{
		L(token.KEYWORD, "print"),
		L(token.DELIMITER, "("), N("expression"), L(token.DELIMITER, ")"),
		L(token.PUNCTUATION, ";"),
	})

	t.add("filter_statement", Production{
		L(token.RESERVED, "filter_by"),
		L(token.DELIMITER, "("), N("expression"), L(token.DELIMITER, ")"),
		L(token.PUNCTUATION, ";"),
	})

	t.add("validate_statement", Production{
		L(token.RESERVED, "validate"),
		L(token.DELIMITER, "("), N("expression"), L(token.DELIMITER, ")"),
		N("block"),
	})

	t.add("modify_statement", Production{
		L(token.RESERVED, "modify"),
		L(token.DELIMITER, "("), N("expression"), L(token.DELIMITER, ")"),
		N("block"),
	})

	t.add("inline_query_statement", Production{
		L(token.RESERVED, "inline_query"),
		L(token.DELIMITER, "{"),
		N("from_clause"),
		Opt(N("filter_clause")),
		N("select_clause"),
		L(token.DELIMITER, "}"),
	})
	t.add("from_clause", Production{
		L(token.IDENTIFIER, "from"), T(token.IDENTIFIER),
		L(token.KEYWORD, "in"), N("expression"), L(token.PUNCTUATION, ";"),
	})
	t.add("filter_clause", Production{
		L(token.RESERVED, "filter_by"), N("expression"), L(token.PUNCTUATION, ";"),
	})
	t.add("select_clause", Production{
		L(token.IDENTIFIER, "select"), N("expression"), L(token.PUNCTUATION, ";"),
	})

	t.add("export_statement", Production{
		L(token.RESERVED, "export_as"),
		L(token.DELIMITER, "("), N("expression"), L(token.PUNCTUATION, ","),
		N("expression"), L(token.DELIMITER, ")"),
		L(token.PUNCTUATION, ";"),
	})

	t.add("tomixed_statement", Production{
		L(token.RESERVED, "toMixed"),
		L(token.DELIMITER, "("), N("expression"), L(token.DELIMITER, ")"),
		L(token.PUNCTUATION, ";"),
	})

	t.add("alias_declaration", Production{
		L(token.RESERVED, "ALIAS"),
		T(token.IDENTIFIER),
		L(token.ASSIGNMENT_OP, "="),
		N("type"),
		L(token.PUNCTUATION, ";"),
	})

	t.add("break_statement", Production{
		L(token.KEYWORD, "break"), L(token.PUNCTUATION, ";"),
	})
	t.add("exit_statement",
		Production{L(token.KEYWORD, "exit"), L(token.PUNCTUATION, ";")},
		Production{L(token.KEYWORD, "exit when"),
			L(token.DELIMITER, "("), N("expression"), L(token.DELIMITER, ")"),
			L(token.PUNCTUATION, ";")},
	)

	t.add("lambda",
		Production{T(token.IDENTIFIER), L(token.METHOD_OP, "->"), N("expression")},
		Production{T(token.IDENTIFIER), L(token.METHOD_OP, "->"), N("block")},
	)

	// Expressions are parsed by precedence climbing, not table matching;
	// the entry exists so Expects can still describe them.
	t.add("expression", Production{T(token.IDENTIFIER)})

	for _, lexeme := range []string{
		"if", "switch", "switch-fall", "for", "while", "do", "print",
		"break", "exit", "exit when",
		"class", "public", "private", "protected",
		"static", "final", "abstract", "native", "transient", "volatile",
		"strictfp", "STRICT",
		"filter_by", "validate", "modify", "inline_query", "export_as",
		"toMixed", "ALIAS", "main",
		"int", "float", "double", "long", "short", "byte", "bool", "char", "str",
		"Date", "Frac", "Complex",
	} {
		t.statementStart[lexeme] = struct{}{}
	}

	return t
}

func (t *Table) add(name string, productions ...Production) {
	t.productions[name] = append(t.productions[name], productions...)
}

// Productions returns the alternatives for a non-terminal, nil when the
// name is unknown.
func (t *Table) Productions(name string) []Production {
	return t.productions[name]
}

// Expects summarizes the first symbol of each alternative for a
// non-terminal, for use in diagnostic suggestions.
func (t *Table) Expects(name string) string {
	prods := t.productions[name]
	if len(prods) == 0 {
		return name
	}
	seen := make(map[string]struct{})
	var parts []string
	for _, prod := range prods {
		if len(prod) == 0 {
			continue
		}
		s := prod[0].String()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		parts = append(parts, s)
	}
	return strings.Join(parts, " or ")
}

// StartsStatement reports whether a token can begin a new statement or
// class-level declaration; the parser skips to such tokens (or ';' or
// '}') when synchronizing after an error.
func (t *Table) StartsStatement(tok token.Token) bool {
	if tok.Kind != token.KEYWORD && tok.Kind != token.RESERVED {
		return false
	}
	_, ok := t.statementStart[tok.Lexeme]
	return ok
}

// Matches reports whether a token satisfies a terminal symbol.
func (s Symbol) Matches(tok token.Token) bool {
	if s.NonTerminal {
		return false
	}
	if s.Text != "" {
		return tok.Kind == s.Kind && tok.Lexeme == s.Text
	}
	return tok.Kind == s.Kind
}

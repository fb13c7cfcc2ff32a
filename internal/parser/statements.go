package parser

import (
	"xpresso/internal/diag"
	"xpresso/internal/parsetree"
	"xpresso/internal/token"
)

// parseBlock parses `{ statement* }` into a block node under parent.
func (p *Parser) parseBlock(parent *parsetree.Node) {
	node := parent.AddChild(parsetree.NewNode("block"))
	if _, ok := p.consume(token.DELIMITER, "{", "block"); !ok {
		p.synchronize()
		return
	}
	for !p.check(token.DELIMITER, "}") && !p.isAtEnd() {
		before := p.current
		p.parseStatement(node)
		if p.current == before {
			p.advance()
		}
	}
	p.consume(token.DELIMITER, "}", "block")
}

// parseStatement dispatches on the leading keyword or identifier. Every
// branch appends exactly one statement node; a failed branch reports one
// diagnostic and synchronizes.
func (p *Parser) parseStatement(parent *parsetree.Node) {
	t := p.peek()

	if t.Kind == token.KEYWORD {
		switch t.Lexeme {
		case "if":
			p.parseIfStatement(parent)
			return
		case "switch", "switch-fall":
			p.parseSwitchStatement(parent)
			return
		case "for":
			p.parseForStatement(parent)
			return
		case "while":
			p.parseWhileStatement(parent)
			return
		case "do":
			p.parseDoStatement(parent)
			return
		case "print":
			p.parseKeywordCallStatement(parent, "print", "print_statement")
			return
		case "break":
			p.advance()
			node := parent.AddChild(parsetree.NewNode("break_statement"))
			node.AddTerminal("break")
			p.consume(token.PUNCTUATION, ";", "break_statement")
			return
		case "exit":
			p.advance()
			node := parent.AddChild(parsetree.NewNode("exit_statement"))
			node.AddTerminal("exit")
			p.consume(token.PUNCTUATION, ";", "exit_statement")
			return
		case "exit when":
			p.parseKeywordCallStatement(parent, "exit when", "exit_when_statement")
			return
		}
	}

	if t.Kind == token.RESERVED {
		switch t.Lexeme {
		case "filter_by":
			p.parseKeywordCallStatement(parent, "filter_by", "filter_statement")
			return
		case "validate":
			p.parseGuardedBlock(parent, "validate", "validate_statement")
			return
		case "modify":
			p.parseGuardedBlock(parent, "modify", "modify_statement")
			return
		case "inline_query":
			p.parseInlineQuery(parent)
			return
		case "export_as":
			p.parseExportStatement(parent)
			return
		case "toMixed":
			p.parseKeywordCallStatement(parent, "toMixed", "tomixed_statement")
			return
		case "ALIAS":
			p.parseAliasDeclaration(parent)
			return
		}
	}

	if p.checkTypeStart() {
		p.parseDeclarationStatement(parent)
		return
	}

	p.parseExpressionStatement(parent)
}

// parseDeclarationStatement parses `type name [= expr] ;`, inserting the
// declared name into the current scope. Declaring the same name twice in
// one scope is reported through the same sink as syntax problems.
func (p *Parser) parseDeclarationStatement(parent *parsetree.Node) {
	node := parent.AddChild(parsetree.NewNode("declaration"))

	typeName, ok := p.parseType(node)
	if !ok {
		p.synchronize()
		return
	}
	nameTok, ok := p.consume(token.IDENTIFIER, "", "declaration")
	if !ok {
		p.synchronize()
		return
	}
	node.AddTerminal(nameTok.Lexeme)

	if !p.scopes.Insert(nameTok.Lexeme, typeName) {
		p.sink.Report(diag.DuplicateDeclaration,
			"'"+nameTok.Lexeme+"' is already declared in this scope", nameTok.Position)
	}

	if p.match(token.ASSIGNMENT_OP, "=") {
		init := node.AddChild(parsetree.NewNode("initializer"))
		init.AddChild(p.parseExpression())
	}
	if _, ok := p.consume(token.PUNCTUATION, ";", "declaration"); !ok {
		p.synchronize()
	}
}

func (p *Parser) parseExpressionStatement(parent *parsetree.Node) {
	node := parent.AddChild(parsetree.NewNode("expression_statement"))
	node.AddChild(p.parseExpression())
	if _, ok := p.consume(token.PUNCTUATION, ";", "expression_statement"); !ok {
		p.synchronize()
	}
}

// parseIfStatement parses `if (cond) block [else if ... | else block]`.
func (p *Parser) parseIfStatement(parent *parsetree.Node) {
	p.advance() // 'if'
	node := parent.AddChild(parsetree.NewNode("if_statement"))
	node.AddTerminal("if")

	p.parseParenExpression(node, "if_statement")
	p.parseBlock(node)

	if p.match(token.KEYWORD, "else") {
		elseNode := node.AddChild(parsetree.NewNode("else_clause"))
		elseNode.AddTerminal("else")
		if p.check(token.KEYWORD, "if") {
			p.parseIfStatement(elseNode)
		} else {
			p.parseBlock(elseNode)
		}
	}
}

// parseSwitchStatement parses both switch and switch-fall; the variant
// is recorded as the first terminal of the node.
func (p *Parser) parseSwitchStatement(parent *parsetree.Node) {
	variant := p.advance().Lexeme
	node := parent.AddChild(parsetree.NewNode("switch_statement"))
	node.AddTerminal(variant)

	p.parseParenExpression(node, "switch_statement")
	if _, ok := p.consume(token.DELIMITER, "{", "switch_statement"); !ok {
		p.synchronize()
		return
	}

	for !p.check(token.DELIMITER, "}") && !p.isAtEnd() {
		switch {
		case p.match(token.KEYWORD, "case"):
			clause := node.AddChild(parsetree.NewNode("case_clause"))
			clause.AddTerminal("case")
			clause.AddChild(p.parseExpression())
			p.consume(token.PUNCTUATION, ":", "case_clause")
			p.parseClauseStatements(clause)
		case p.match(token.KEYWORD, "default"):
			clause := node.AddChild(parsetree.NewNode("default_clause"))
			clause.AddTerminal("default")
			p.consume(token.PUNCTUATION, ":", "default_clause")
			p.parseClauseStatements(clause)
		default:
			p.errorAt(diag.UnexpectedToken,
				"expected 'case' or 'default' in switch body, found "+describe(p.peek()),
				"case_clause")
			p.synchronize()
			if !p.grammar.StartsStatement(p.peek()) && !p.check(token.DELIMITER, "}") {
				p.advance()
			}
		}
	}
	p.consume(token.DELIMITER, "}", "switch_statement")
}

// parseClauseStatements parses the statements of one case/default arm,
// stopping before the next arm or the closing brace.
func (p *Parser) parseClauseStatements(clause *parsetree.Node) {
	for !p.check(token.KEYWORD, "case") && !p.check(token.KEYWORD, "default") &&
		!p.check(token.DELIMITER, "}") && !p.isAtEnd() {
		before := p.current
		p.parseStatement(clause)
		if p.current == before {
			p.advance()
		}
	}
}

// parseForStatement parses `for (init; cond; update) block`. Each of the
// three header slots may be empty.
func (p *Parser) parseForStatement(parent *parsetree.Node) {
	p.advance() // 'for'
	node := parent.AddChild(parsetree.NewNode("for_statement"))
	node.AddTerminal("for")

	if _, ok := p.consume(token.DELIMITER, "(", "for_statement"); !ok {
		p.synchronize()
		return
	}

	init := node.AddChild(parsetree.NewNode("for_init"))
	if !p.check(token.PUNCTUATION, ";") {
		if p.checkTypeStart() {
			p.parseForInitDeclaration(init)
		} else {
			init.AddChild(p.parseExpression())
		}
	}
	p.consume(token.PUNCTUATION, ";", "for_statement")

	cond := node.AddChild(parsetree.NewNode("for_condition"))
	if !p.check(token.PUNCTUATION, ";") {
		cond.AddChild(p.parseExpression())
	}
	p.consume(token.PUNCTUATION, ";", "for_statement")

	update := node.AddChild(parsetree.NewNode("for_update"))
	if !p.check(token.DELIMITER, ")") {
		update.AddChild(p.parseExpression())
	}
	p.consume(token.DELIMITER, ")", "for_statement")

	p.parseBlock(node)
}

// parseForInitDeclaration is a declaration without the trailing ';',
// which belongs to the for header.
func (p *Parser) parseForInitDeclaration(parent *parsetree.Node) {
	node := parent.AddChild(parsetree.NewNode("declaration"))
	typeName, ok := p.parseType(node)
	if !ok {
		return
	}
	nameTok, ok := p.consume(token.IDENTIFIER, "", "declaration")
	if !ok {
		return
	}
	node.AddTerminal(nameTok.Lexeme)
	if !p.scopes.Insert(nameTok.Lexeme, typeName) {
		p.sink.Report(diag.DuplicateDeclaration,
			"'"+nameTok.Lexeme+"' is already declared in this scope", nameTok.Position)
	}
	if p.match(token.ASSIGNMENT_OP, "=") {
		init := node.AddChild(parsetree.NewNode("initializer"))
		init.AddChild(p.parseExpression())
	}
}

func (p *Parser) parseWhileStatement(parent *parsetree.Node) {
	p.advance() // 'while'
	node := parent.AddChild(parsetree.NewNode("while_statement"))
	node.AddTerminal("while")
	p.parseParenExpression(node, "while_statement")
	p.parseBlock(node)
}

// parseDoStatement parses either `do { ... } while (cond);` or the
// enhanced-for form `do for (x in xs) { ... }`.
func (p *Parser) parseDoStatement(parent *parsetree.Node) {
	p.advance() // 'do'

	if p.match(token.KEYWORD, "for") {
		node := parent.AddChild(parsetree.NewNode("for_in_statement"))
		node.AddTerminal("do")
		node.AddTerminal("for")

		if _, ok := p.consume(token.DELIMITER, "(", "for_in_statement"); !ok {
			p.synchronize()
			return
		}
		varTok, ok := p.consume(token.IDENTIFIER, "", "for_in_statement")
		if !ok {
			p.synchronize()
			return
		}
		node.AddTerminal(varTok.Lexeme)
		if !p.scopes.Insert(varTok.Lexeme, "") {
			p.sink.Report(diag.DuplicateDeclaration,
				"'"+varTok.Lexeme+"' is already declared in this scope", varTok.Position)
		}
		p.consume(token.KEYWORD, "in", "for_in_statement")
		node.AddChild(p.parseExpression())
		p.consume(token.DELIMITER, ")", "for_in_statement")
		p.parseBlock(node)
		return
	}

	node := parent.AddChild(parsetree.NewNode("do_while_statement"))
	node.AddTerminal("do")
	p.parseBlock(node)
	p.consume(token.KEYWORD, "while", "do_while_statement")
	p.parseParenExpression(node, "do_while_statement")
	p.consume(token.PUNCTUATION, ";", "do_while_statement")
}

// parseKeywordCallStatement covers the shared shape
// `keyword ( expr ) ;` used by print, filter_by, toMixed and exit when.
func (p *Parser) parseKeywordCallStatement(parent *parsetree.Node, keyword, label string) {
	p.advance()
	node := parent.AddChild(parsetree.NewNode(label))
	node.AddTerminal(keyword)
	p.parseParenExpression(node, label)
	if _, ok := p.consume(token.PUNCTUATION, ";", label); !ok {
		p.synchronize()
	}
}

// parseGuardedBlock covers `keyword ( expr ) block` used by validate
// and modify.
func (p *Parser) parseGuardedBlock(parent *parsetree.Node, keyword, label string) {
	p.advance()
	node := parent.AddChild(parsetree.NewNode(label))
	node.AddTerminal(keyword)
	p.parseParenExpression(node, label)
	p.parseBlock(node)
}

// parseInlineQuery parses
// `inline_query { from x in expr; [filter_by expr;] select expr; }`.
// The clause introducers from/select are plain identifiers lexically and
// are matched by lexeme.
func (p *Parser) parseInlineQuery(parent *parsetree.Node) {
	p.advance() // 'inline_query'
	node := parent.AddChild(parsetree.NewNode("inline_query"))
	node.AddTerminal("inline_query")

	if _, ok := p.consume(token.DELIMITER, "{", "inline_query_statement"); !ok {
		p.synchronize()
		return
	}

	from := node.AddChild(parsetree.NewNode("from_clause"))
	if _, ok := p.consume(token.IDENTIFIER, "from", "from_clause"); ok {
		from.AddTerminal("from")
		if varTok, ok := p.consume(token.IDENTIFIER, "", "from_clause"); ok {
			from.AddTerminal(varTok.Lexeme)
		}
		p.consume(token.KEYWORD, "in", "from_clause")
		from.AddChild(p.parseExpression())
		p.consume(token.PUNCTUATION, ";", "from_clause")
	} else {
		p.synchronize()
	}

	if p.match(token.RESERVED, "filter_by") {
		filter := node.AddChild(parsetree.NewNode("filter_clause"))
		filter.AddTerminal("filter_by")
		filter.AddChild(p.parseExpression())
		p.consume(token.PUNCTUATION, ";", "filter_clause")
	}

	if _, ok := p.consume(token.IDENTIFIER, "select", "select_clause"); ok {
		sel := node.AddChild(parsetree.NewNode("select_clause"))
		sel.AddTerminal("select")
		sel.AddChild(p.parseExpression())
		p.consume(token.PUNCTUATION, ";", "select_clause")
	}

	p.consume(token.DELIMITER, "}", "inline_query_statement")
}

// parseExportStatement parses `export_as ( expr , expr ) ;`.
func (p *Parser) parseExportStatement(parent *parsetree.Node) {
	p.advance() // 'export_as'
	node := parent.AddChild(parsetree.NewNode("export_statement"))
	node.AddTerminal("export_as")

	if _, ok := p.consume(token.DELIMITER, "(", "export_statement"); !ok {
		p.synchronize()
		return
	}
	node.AddChild(p.parseExpression())
	p.consume(token.PUNCTUATION, ",", "export_statement")
	node.AddChild(p.parseExpression())
	p.consume(token.DELIMITER, ")", "export_statement")
	if _, ok := p.consume(token.PUNCTUATION, ";", "export_statement"); !ok {
		p.synchronize()
	}
}

// parseAliasDeclaration parses `ALIAS name = type ;`.
func (p *Parser) parseAliasDeclaration(parent *parsetree.Node) {
	p.advance() // 'ALIAS'
	node := parent.AddChild(parsetree.NewNode("alias_declaration"))
	node.AddTerminal("ALIAS")

	nameTok, ok := p.consume(token.IDENTIFIER, "", "alias_declaration")
	if !ok {
		p.synchronize()
		return
	}
	node.AddTerminal(nameTok.Lexeme)

	p.consume(token.ASSIGNMENT_OP, "=", "alias_declaration")
	typeName, ok := p.parseType(node)
	if !ok {
		p.synchronize()
		return
	}
	if !p.scopes.Insert(nameTok.Lexeme, typeName) {
		p.sink.Report(diag.DuplicateDeclaration,
			"'"+nameTok.Lexeme+"' is already declared in this scope", nameTok.Position)
	}
	if _, ok := p.consume(token.PUNCTUATION, ";", "alias_declaration"); !ok {
		p.synchronize()
	}
}

// parseParenExpression parses `( expr )` and hangs the expression under
// parent, reporting against construct on a missing parenthesis.
func (p *Parser) parseParenExpression(parent *parsetree.Node, construct string) {
	if _, ok := p.consume(token.DELIMITER, "(", construct); !ok {
		return
	}
	parent.AddChild(p.parseExpression())
	p.consume(token.DELIMITER, ")", construct)
}

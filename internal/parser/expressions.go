package parser

import (
	"xpresso/internal/diag"
	"xpresso/internal/parsetree"
	"xpresso/internal/token"
)

// Expression parsing is precedence climbing: each level parses the next
// tighter level, then folds operators belonging to itself. The ladder,
// loosest to tightest:
//
//	assignment (right)  = += -= *= /= %= ?=
//	ternary (right)     ?:
//	logical or          ||
//	logical and         &&
//	bitwise or          |
//	bitwise and         &
//	equality            == !=
//	relational          < > <= >=
//	shift               << >> >>>
//	range               .. ...
//	additive            + -
//	multiplicative      * / %
//	exponent (right)    ^
//	unary (right)       ! ~ + - (prefix)
//	member access       . ::
//	call/index postfix  () []
//	primary/grouping
//
// Associativity is part of the language's meaning: a = b = c and
// 2 ^ 3 ^ 2 group right, a + b - c groups left.

func (p *Parser) parseExpression() *parsetree.Node {
	return p.parseAssignment()
}

// parseAssignment also resolves lambdas (`x -> expr` and `x -> { ... }`)
// by a speculative identifier match undone with one token of pushback.
func (p *Parser) parseAssignment() *parsetree.Node {
	if lambda := p.tryParseLambda(); lambda != nil {
		return lambda
	}

	left := p.parseTernary()
	if p.peek().Kind == token.ASSIGNMENT_OP {
		op := p.advance()
		node := parsetree.NewNode("assignment")
		node.AddChild(left)
		node.AddTerminal(op.Lexeme)
		node.AddChild(p.parseAssignment())
		return node
	}
	return left
}

// tryParseLambda commits only after seeing both the parameter and the
// arrow; otherwise the cursor is pushed back and nil returned.
func (p *Parser) tryParseLambda() *parsetree.Node {
	m := p.mark()
	if !p.check(token.IDENTIFIER, "") {
		return nil
	}
	param := p.advance()
	if !p.match(token.METHOD_OP, "->") {
		p.reset(m)
		return nil
	}

	node := parsetree.NewNode("lambda")
	node.AddTerminal(param.Lexeme)
	node.AddTerminal("->")
	if p.check(token.DELIMITER, "{") {
		p.parseBlock(node)
	} else {
		node.AddChild(p.parseAssignment())
	}
	return node
}

func (p *Parser) parseTernary() *parsetree.Node {
	cond := p.parseLogicalOr()
	if !p.match(token.PUNCTUATION, "?") {
		return cond
	}

	node := parsetree.NewNode("ternary")
	node.AddChild(cond)
	node.AddTerminal("?")
	node.AddChild(p.parseExpression())
	p.consume(token.PUNCTUATION, ":", "ternary expression")
	node.AddTerminal(":")
	node.AddChild(p.parseTernary())
	return node
}

// parseBinaryLeft folds a left-associative level: parse the tighter
// level, then while the current token is one of this level's operators,
// consume and fold.
func (p *Parser) parseBinaryLeft(next func() *parsetree.Node, kind token.Kind, ops ...string) *parsetree.Node {
	left := next()
	for p.checkOneOf(kind, ops...) {
		op := p.advance()
		node := parsetree.NewNode("binary")
		node.AddChild(left)
		node.AddTerminal(op.Lexeme)
		node.AddChild(next())
		left = node
	}
	return left
}

func (p *Parser) checkOneOf(kind token.Kind, ops ...string) bool {
	t := p.peek()
	if t.Kind != kind {
		return false
	}
	for _, op := range ops {
		if t.Lexeme == op {
			return true
		}
	}
	return false
}

func (p *Parser) parseLogicalOr() *parsetree.Node {
	return p.parseBinaryLeft(p.parseLogicalAnd, token.LOGICAL_OP, "||")
}

func (p *Parser) parseLogicalAnd() *parsetree.Node {
	return p.parseBinaryLeft(p.parseBitwiseOr, token.LOGICAL_OP, "&&")
}

func (p *Parser) parseBitwiseOr() *parsetree.Node {
	return p.parseBinaryLeft(p.parseBitwiseAnd, token.BITWISE_OP, "|")
}

func (p *Parser) parseBitwiseAnd() *parsetree.Node {
	return p.parseBinaryLeft(p.parseEquality, token.BITWISE_OP, "&")
}

func (p *Parser) parseEquality() *parsetree.Node {
	return p.parseBinaryLeft(p.parseRelational, token.RELATIONAL_OP, "==", "!=")
}

func (p *Parser) parseRelational() *parsetree.Node {
	return p.parseBinaryLeft(p.parseShift, token.RELATIONAL_OP, "<", ">", "<=", ">=")
}

func (p *Parser) parseShift() *parsetree.Node {
	return p.parseBinaryLeft(p.parseRange, token.BITWISE_OP, "<<", ">>", ">>>")
}

func (p *Parser) parseRange() *parsetree.Node {
	left := p.parseAdditive()
	for p.peek().Kind == token.LOOP_OP {
		op := p.advance()
		node := parsetree.NewNode("range")
		node.AddChild(left)
		node.AddTerminal(op.Lexeme)
		node.AddChild(p.parseAdditive())
		left = node
	}
	return left
}

func (p *Parser) parseAdditive() *parsetree.Node {
	return p.parseBinaryLeft(p.parseMultiplicative, token.ARITHMETIC_OP, "+", "-")
}

func (p *Parser) parseMultiplicative() *parsetree.Node {
	return p.parseBinaryLeft(p.parseExponent, token.ARITHMETIC_OP, "*", "/", "%")
}

// parseExponent is right-associative: 2 ^ 3 ^ 2 is 2 ^ (3 ^ 2).
func (p *Parser) parseExponent() *parsetree.Node {
	left := p.parseUnary()
	if p.check(token.ARITHMETIC_OP, "^") {
		p.advance()
		node := parsetree.NewNode("binary")
		node.AddChild(left)
		node.AddTerminal("^")
		node.AddChild(p.parseExponent())
		return node
	}
	return left
}

// parseUnary folds prefix operators right-associatively: the lexer has
// already classified sign operators as UNARY_OP from context, so `- -x`
// nests naturally.
func (p *Parser) parseUnary() *parsetree.Node {
	t := p.peek()
	isPrefix := t.Kind == token.UNARY_OP ||
		t.Is(token.LOGICAL_OP, "!") ||
		t.Is(token.BITWISE_OP, "~")
	if !isPrefix {
		return p.parsePostfix()
	}

	op := p.advance()
	node := parsetree.NewNode("unary")
	node.AddTerminal(op.Lexeme)
	node.AddChild(p.parseUnary())
	return node
}

// parsePostfix folds member access (`.` and `::`), calls, and indexing,
// all left-associative and tighter than any prefix operator.
func (p *Parser) parsePostfix() *parsetree.Node {
	expr := p.parsePrimary()

	for {
		switch {
		case p.checkOneOf(token.METHOD_OP, ".", "::"):
			op := p.advance()
			node := parsetree.NewNode("member_access")
			node.AddChild(expr)
			node.AddTerminal(op.Lexeme)
			if name, ok := p.consumeMemberName(); ok {
				node.AddTerminal(name)
			}
			expr = node
		case p.check(token.DELIMITER, "("):
			p.advance()
			node := parsetree.NewNode("call")
			node.AddChild(expr)
			args := node.AddChild(parsetree.NewNode("arguments"))
			p.parseArguments(args)
			p.consume(token.DELIMITER, ")", "call")
			expr = node
		case p.check(token.DELIMITER, "["):
			p.advance()
			node := parsetree.NewNode("index")
			node.AddChild(expr)
			node.AddChild(p.parseExpression())
			p.consume(token.DELIMITER, "]", "index expression")
			expr = node
		default:
			return expr
		}
	}
}

// consumeMemberName accepts identifiers but also keywords and reserved
// words, since accessors like `.year`, `.month` and `.day` are keywords
// lexically.
func (p *Parser) consumeMemberName() (string, bool) {
	t := p.peek()
	if t.Kind == token.IDENTIFIER || t.Kind == token.KEYWORD || t.Kind == token.RESERVED {
		p.advance()
		return t.Lexeme, true
	}
	p.errorAt(diag.MissingToken, "expected a member name after "+describe(p.previous()), "")
	return "", false
}

func (p *Parser) parseArguments(args *parsetree.Node) {
	if p.check(token.DELIMITER, ")") {
		return
	}
	for {
		args.AddChild(p.parseExpression())
		if !p.match(token.PUNCTUATION, ",") {
			return
		}
	}
}

// parsePrimary handles literals, identifiers, keyword values like Input
// and today, and parenthesized groupings. An unusable token yields one
// diagnostic, a bad_expression node, and an advance so the caller can
// continue.
func (p *Parser) parsePrimary() *parsetree.Node {
	t := p.peek()

	switch t.Kind {
	case token.INT_LITERAL, token.FLOAT_LITERAL, token.BOOL_LITERAL,
		token.DATE_LITERAL, token.FRAC_LITERAL, token.COMPLEX_LITERAL:
		p.advance()
		return parsetree.NewTerminal(t.Lexeme)

	case token.STRING_DELIMITER:
		return p.parseQuotedLiteral()

	case token.IDENTIFIER:
		p.advance()
		return parsetree.NewTerminal(t.Lexeme)

	case token.KEYWORD, token.RESERVED:
		// Value-position words: input/output channels and date accessors.
		switch t.Lexeme {
		case "Input", "Output", "get", "inspect", "today", "year", "month", "day":
			p.advance()
			return parsetree.NewTerminal(t.Lexeme)
		}

	case token.DELIMITER:
		if t.Lexeme == "(" {
			p.advance()
			node := parsetree.NewNode("grouping")
			node.AddChild(p.parseExpression())
			p.consume(token.DELIMITER, ")", "grouping")
			return node
		}
	}

	p.errorAt(diag.UnexpectedToken,
		"unexpected "+describe(t)+" in expression", "expression")
	bad := parsetree.NewNode("bad_expression")
	if !p.isAtEnd() {
		p.advance()
	}
	return bad
}

// parseQuotedLiteral reassembles a string or character literal from its
// delimiter, content, delimiter token triple.
func (p *Parser) parseQuotedLiteral() *parsetree.Node {
	open := p.advance()
	label := "string_literal"
	contentKind := token.STRING_LITERAL
	if open.Lexeme == "'" {
		label = "char_literal"
		contentKind = token.CHAR_LITERAL
	}

	node := parsetree.NewNode(label)
	if p.check(contentKind, "") {
		node.AddTerminal(p.advance().Lexeme)
	}
	p.match(token.STRING_DELIMITER, open.Lexeme)
	return node
}

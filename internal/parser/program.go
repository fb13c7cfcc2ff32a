package parser

import (
	"xpresso/internal/diag"
	"xpresso/internal/parsetree"
	"xpresso/internal/token"
)

// accessModifiers and nonAccessModifiers are the modifier lexemes a
// class or member declaration may carry.
var accessModifiers = []string{"public", "private", "protected"}
var nonAccessModifiers = []string{"static", "final", "abstract", "native", "transient", "volatile", "strictfp", "STRICT"}

// primitiveTypes are the reserved words usable as declared types.
var primitiveTypes = map[string]struct{}{
	"int": {}, "float": {}, "double": {}, "long": {}, "short": {},
	"byte": {}, "bool": {}, "char": {}, "str": {},
	"Date": {}, "Frac": {}, "Complex": {},
}

// ParseProgram parses the whole token sequence into a parse tree rooted
// at the program node. Diagnostics accumulate in the sink; the tree is
// always returned, holding whatever was recoverable.
func (p *Parser) ParseProgram() *parsetree.Tree {
	tree := parsetree.New("program")

	for !p.isAtEnd() {
		before := p.current
		p.parseClassDeclaration(tree.Root)
		if p.current == before {
			// No progress; drop the offending token so parsing cannot spin.
			p.advance()
		}
	}
	return tree
}

// parseClassDeclaration parses one top-level class: optional modifiers,
// 'class', name, optional inheritance, braced body.
func (p *Parser) parseClassDeclaration(parent *parsetree.Node) {
	if !p.check(token.RESERVED, "class") && !p.checkModifier() {
		p.errorAt(diag.UnexpectedToken,
			"expected a class declaration, found "+describe(p.peek()),
			"class_declaration")
		p.synchronize()
		return
	}

	node := parent.AddChild(parsetree.NewNode("class_declaration"))
	p.parseModifiers(node)

	if _, ok := p.consume(token.RESERVED, "class", "class_declaration"); !ok {
		p.synchronize()
		return
	}
	node.AddTerminal("class")

	nameTok, ok := p.consume(token.IDENTIFIER, "", "class_declaration")
	if !ok {
		p.synchronize()
		return
	}
	node.AddTerminal(nameTok.Lexeme)
	if !p.scopes.Insert(nameTok.Lexeme, "class") {
		p.sink.Report(diag.DuplicateDeclaration,
			"class '"+nameTok.Lexeme+"' is already declared", nameTok.Position)
	}

	p.scopes.EnterScope("class " + nameTok.Lexeme)
	p.parseInheritance(node)

	if _, ok := p.consume(token.DELIMITER, "{", "class_declaration"); ok {
		body := node.AddChild(parsetree.NewNode("class_body"))
		for !p.check(token.DELIMITER, "}") && !p.isAtEnd() {
			before := p.current
			p.parseClassMember(body)
			if p.current == before {
				p.advance()
			}
		}
		p.consume(token.DELIMITER, "}", "class_declaration")
	}
	p.scopes.ExitScope()
}

// parseInheritance handles optional single-parent inheritance (:>) and
// optional multi-interface inheritance (:>> with a comma-separated list).
func (p *Parser) parseInheritance(class *parsetree.Node) {
	if p.match(token.INHERIT_OP, ":>") {
		node := class.AddChild(parsetree.NewNode("inheritance"))
		node.AddTerminal(":>")
		if parent, ok := p.consume(token.IDENTIFIER, "", "inheritance"); ok {
			node.AddTerminal(parent.Lexeme)
		}
	}
	if p.match(token.INHERIT_OP, ":>>") {
		node := class.AddChild(parsetree.NewNode("interface_inheritance"))
		node.AddTerminal(":>>")
		for {
			iface, ok := p.consume(token.IDENTIFIER, "", "inheritance")
			if !ok {
				break
			}
			node.AddTerminal(iface.Lexeme)
			if !p.match(token.PUNCTUATION, ",") {
				break
			}
		}
	}
}

// parseClassMember dispatches one class-body item: the main block, or a
// modifier/type-led field or method declaration. A malformed member
// costs one diagnostic and a synchronize, so the members after it still
// parse.
func (p *Parser) parseClassMember(body *parsetree.Node) {
	if p.check(token.RESERVED, "main") {
		p.parseMainDeclaration(body)
		return
	}

	if !p.checkModifier() && !p.checkTypeStart() {
		p.errorAt(diag.UnexpectedToken,
			"expected a field, method or main declaration, found "+describe(p.peek()),
			"class_member")
		p.synchronize()
		return
	}

	node := parsetree.NewNode("member")
	p.parseModifiers(node)

	typeName, ok := p.parseType(node)
	if !ok {
		p.synchronize()
		return
	}

	nameTok, ok := p.consume(token.IDENTIFIER, "", "class_member")
	if !ok {
		p.synchronize()
		return
	}

	if p.check(token.DELIMITER, "(") {
		p.parseMethodRest(body, node, typeName, nameTok)
	} else {
		p.parseFieldRest(body, node, typeName, nameTok)
	}
}

// parseFieldRest finishes a field declaration after type and name:
// optional '=' initializer, then ';'. The declared name goes into the
// current (class) scope.
func (p *Parser) parseFieldRest(body, member *parsetree.Node, typeName string, nameTok token.Token) {
	member.Label = "field_declaration"
	body.AddChild(member)
	member.AddTerminal(nameTok.Lexeme)

	if !p.scopes.Insert(nameTok.Lexeme, typeName) {
		p.sink.Report(diag.DuplicateDeclaration,
			"'"+nameTok.Lexeme+"' is already declared in this scope", nameTok.Position)
	}

	if p.match(token.ASSIGNMENT_OP, "=") {
		init := member.AddChild(parsetree.NewNode("initializer"))
		init.AddChild(p.parseExpression())
	}
	if _, ok := p.consume(token.PUNCTUATION, ";", "field_declaration"); !ok {
		p.synchronize()
	}
}

// parseMethodRest finishes a method declaration after return type and
// name: parameter list, then body. The method gets its own scope;
// parameters are inserted into it.
func (p *Parser) parseMethodRest(body, member *parsetree.Node, typeName string, nameTok token.Token) {
	member.Label = "method_declaration"
	body.AddChild(member)
	member.AddTerminal(nameTok.Lexeme)

	if !p.scopes.Insert(nameTok.Lexeme, typeName+"()") {
		p.sink.Report(diag.DuplicateDeclaration,
			"'"+nameTok.Lexeme+"' is already declared in this scope", nameTok.Position)
	}

	p.scopes.EnterScope("method " + nameTok.Lexeme)
	p.parseParameterList(member)
	p.parseBlock(member)
	p.scopes.ExitScope()
}

// parseMainDeclaration parses `main ( ) { ... }` in its own scope.
func (p *Parser) parseMainDeclaration(body *parsetree.Node) {
	p.advance() // 'main'
	node := body.AddChild(parsetree.NewNode("main_declaration"))
	node.AddTerminal("main")

	p.consume(token.DELIMITER, "(", "main_declaration")
	p.consume(token.DELIMITER, ")", "main_declaration")

	p.scopes.EnterScope("main")
	p.parseBlock(node)
	p.scopes.ExitScope()
}

// parseParameterList parses `( [type name {, type name}] )`, inserting
// each parameter into the current method scope.
func (p *Parser) parseParameterList(member *parsetree.Node) {
	if _, ok := p.consume(token.DELIMITER, "(", "parameter_list"); !ok {
		return
	}
	params := member.AddChild(parsetree.NewNode("parameter_list"))

	for !p.check(token.DELIMITER, ")") && !p.isAtEnd() {
		param := params.AddChild(parsetree.NewNode("parameter"))
		typeName, ok := p.parseType(param)
		if !ok {
			p.synchronize()
			return
		}
		nameTok, ok := p.consume(token.IDENTIFIER, "", "parameter")
		if !ok {
			break
		}
		param.AddTerminal(nameTok.Lexeme)
		if !p.scopes.Insert(nameTok.Lexeme, typeName) {
			p.sink.Report(diag.DuplicateDeclaration,
				"parameter '"+nameTok.Lexeme+"' is already declared", nameTok.Position)
		}
		if !p.match(token.PUNCTUATION, ",") {
			break
		}
	}
	p.consume(token.DELIMITER, ")", "parameter_list")
}

// parseType parses a primitive type, an identifier type, or an
// object-type delimiter <Type>, appending the terminals to parent and
// returning the declared type text.
func (p *Parser) parseType(parent *parsetree.Node) (string, bool) {
	t := p.peek()
	switch {
	case t.Kind == token.RESERVED:
		if _, ok := primitiveTypes[t.Lexeme]; ok {
			p.advance()
			parent.AddTerminal(t.Lexeme)
			return t.Lexeme, true
		}
	case t.Kind == token.IDENTIFIER:
		p.advance()
		parent.AddTerminal(t.Lexeme)
		return t.Lexeme, true
	case t.Is(token.OBJECT_DELIMITER, "<"):
		p.advance()
		quoted := p.match(token.STRING_DELIMITER, `"`)
		name := p.advance() // type name between the delimiters
		if quoted {
			p.consume(token.STRING_DELIMITER, `"`, "type")
		}
		parent.AddTerminal("<" + name.Lexeme + ">")
		p.consume(token.OBJECT_DELIMITER, ">", "type")
		return "<" + name.Lexeme + ">", true
	}

	p.errorAt(diag.UnexpectedToken,
		"expected a type, found "+describe(t), "type")
	return "", false
}

func (p *Parser) checkModifier() bool {
	if p.peek().Kind != token.RESERVED {
		return false
	}
	lx := p.peek().Lexeme
	for _, m := range accessModifiers {
		if lx == m {
			return true
		}
	}
	for _, m := range nonAccessModifiers {
		if lx == m {
			return true
		}
	}
	return false
}

// checkTypeStart reports whether the current token can begin a declared
// type: a primitive, an object delimiter, or an identifier that is
// itself followed by another identifier.
func (p *Parser) checkTypeStart() bool {
	t := p.peek()
	switch t.Kind {
	case token.RESERVED:
		_, ok := primitiveTypes[t.Lexeme]
		return ok
	case token.OBJECT_DELIMITER:
		return t.Lexeme == "<"
	case token.IDENTIFIER:
		return p.peekAt(1).Kind == token.IDENTIFIER
	}
	return false
}

// parseModifiers consumes any run of access and non-access modifiers.
func (p *Parser) parseModifiers(node *parsetree.Node) {
	for p.checkModifier() {
		node.AddTerminal(p.advance().Lexeme)
	}
}

func describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of input"
	}
	return "'" + t.Lexeme + "'"
}

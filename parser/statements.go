package parser

// Statements is the braced statement block of an if, else or while.
type Statements struct {
	List []Statement
}

func (*Statements) isElement() {}
func (*Statements) Label() string { return "statements" }

func (s *Statements) Children() []Element {
	children := make([]Element, 0, len(s.List))
	for _, stmt := range s.List {
		children = append(children, stmt)
	}
	return children
}

// Index is the bracketed array subscript of a let target or a term.
type Index struct {
	LBracket Token
	Expr     *Expression
	RBracket Token
}

func (i *Index) elements() []Element {
	if i == nil {
		return nil
	}
	return []Element{i.LBracket, i.Expr, i.RBracket}
}

type LetStatement struct {
	Let       Token
	Name      Token
	Index     *Index
	Assign    Token
	Value     *Expression
	Semicolon Token
}

func (*LetStatement) isElement() {}
func (*LetStatement) isBodyItem() {}
func (*LetStatement) Label() string { return "letStatement" }
func (*LetStatement) Kind() StatementKind { return StatementLet }

func (s *LetStatement) Children() []Element {
	children := []Element{s.Let, s.Name}
	children = append(children, s.Index.elements()...)
	return append(children, s.Assign, s.Value, s.Semicolon)
}

// ElseClause is the optional trailing else branch of an if statement.
type ElseClause struct {
	Else   Token
	LBrace Token
	Body   *Statements
	RBrace Token
}

type IfStatement struct {
	If     Token
	LParen Token
	Cond   *Expression
	RParen Token
	LBrace Token
	Then   *Statements
	RBrace Token
	Else   *ElseClause
}

func (*IfStatement) isElement() {}
func (*IfStatement) isBodyItem() {}
func (*IfStatement) Label() string { return "ifStatement" }
func (*IfStatement) Kind() StatementKind { return StatementIf }

func (s *IfStatement) Children() []Element {
	children := []Element{s.If, s.LParen, s.Cond, s.RParen, s.LBrace, s.Then, s.RBrace}
	if s.Else != nil {
		children = append(children, s.Else.Else, s.Else.LBrace, s.Else.Body, s.Else.RBrace)
	}
	return children
}

type WhileStatement struct {
	While  Token
	LParen Token
	Cond   *Expression
	RParen Token
	LBrace Token
	Body   *Statements
	RBrace Token
}

func (*WhileStatement) isElement() {}
func (*WhileStatement) isBodyItem() {}
func (*WhileStatement) Label() string { return "whileStatement" }
func (*WhileStatement) Kind() StatementKind { return StatementWhile }

func (s *WhileStatement) Children() []Element {
	return []Element{s.While, s.LParen, s.Cond, s.RParen, s.LBrace, s.Body, s.RBrace}
}

// DoStatement calls a subroutine for its side effect. Call always holds a
// single term whose form is a subroutine call.
type DoStatement struct {
	Do        Token
	Call      *Expression
	Semicolon Token
}

func (*DoStatement) isElement() {}
func (*DoStatement) isBodyItem() {}
func (*DoStatement) Label() string { return "doStatement" }
func (*DoStatement) Kind() StatementKind { return StatementDo }

func (s *DoStatement) Children() []Element {
	return []Element{s.Do, s.Call, s.Semicolon}
}

// ReturnStatement has a nil Value for a bare "return;".
type ReturnStatement struct {
	Return    Token
	Value     *Expression
	Semicolon Token
}

func (*ReturnStatement) isElement() {}
func (*ReturnStatement) isBodyItem() {}
func (*ReturnStatement) Label() string { return "returnStatement" }
func (*ReturnStatement) Kind() StatementKind { return StatementReturn }

func (s *ReturnStatement) Children() []Element {
	if s.Value == nil {
		return []Element{s.Return, s.Semicolon}
	}
	return []Element{s.Return, s.Value, s.Semicolon}
}

func (p *Parser) parseStatements() *Statements {
	defer p.enter("statements")()

	stmts := &Statements{}
	for !p.match(Symbol, "}") {
		stmts.List = append(stmts.List, p.parseStatement())
	}
	return stmts
}

const statementExpectation = "one of keyword let, if, while, do, return"

// parseStatement dispatches on the statement keyword and parses exactly one
// statement. Callers loop until their closing brace.
func (p *Parser) parseStatement() Statement {
	tok, ok := p.current()
	if !ok || tok.Kind != Keyword {
		p.fail(statementExpectation)
	}

	kind, ok := statementKinds[tok.Value]
	if !ok {
		p.fail(statementExpectation)
	}

	switch kind {
	case StatementLet:
		return p.parseLet()
	case StatementIf:
		return p.parseIf()
	case StatementWhile:
		return p.parseWhile()
	case StatementDo:
		return p.parseDo()
	case StatementReturn:
		return p.parseReturn()
	}

	panic("unhandled statement kind " + kind.String())
}

func (p *Parser) parseLet() *LetStatement {
	defer p.enter("letStatement")()

	stmt := &LetStatement{}
	stmt.Let = p.require(Keyword, "let")
	stmt.Name = p.require(Identifier, "")
	if p.match(Symbol, "[") {
		stmt.Index = p.parseIndex()
	}
	stmt.Assign = p.require(Symbol, "=")
	stmt.Value = p.parseExpression()
	stmt.Semicolon = p.require(Symbol, ";")
	return stmt
}

func (p *Parser) parseIndex() *Index {
	idx := &Index{}
	idx.LBracket = p.require(Symbol, "[")
	idx.Expr = p.parseExpression()
	idx.RBracket = p.require(Symbol, "]")
	return idx
}

func (p *Parser) parseIf() *IfStatement {
	defer p.enter("ifStatement")()

	stmt := &IfStatement{}
	stmt.If = p.require(Keyword, "if")
	stmt.LParen = p.require(Symbol, "(")
	stmt.Cond = p.parseExpression()
	stmt.RParen = p.require(Symbol, ")")
	stmt.LBrace = p.require(Symbol, "{")
	stmt.Then = p.parseStatements()
	stmt.RBrace = p.require(Symbol, "}")

	if p.match(Keyword, "else") {
		p.logger.Printf("Found else branch")
		el := &ElseClause{}
		el.Else = p.require(Keyword, "else")
		el.LBrace = p.require(Symbol, "{")
		el.Body = p.parseStatements()
		el.RBrace = p.require(Symbol, "}")
		stmt.Else = el
	}

	return stmt
}

func (p *Parser) parseWhile() *WhileStatement {
	defer p.enter("whileStatement")()

	stmt := &WhileStatement{}
	stmt.While = p.require(Keyword, "while")
	stmt.LParen = p.require(Symbol, "(")
	stmt.Cond = p.parseExpression()
	stmt.RParen = p.require(Symbol, ")")
	stmt.LBrace = p.require(Symbol, "{")
	stmt.Body = p.parseStatements()
	stmt.RBrace = p.require(Symbol, "}")
	return stmt
}

func (p *Parser) parseDo() *DoStatement {
	defer p.enter("doStatement")()

	stmt := &DoStatement{}
	stmt.Do = p.require(Keyword, "do")

	start := p.pos
	if !p.match(Identifier, "") {
		p.fail("subroutine call")
	}
	stmt.Call = p.parseExpression()
	if !stmt.Call.IsCall() {
		p.failAt(start, "subroutine call")
	}

	stmt.Semicolon = p.require(Symbol, ";")
	return stmt
}

func (p *Parser) parseReturn() *ReturnStatement {
	defer p.enter("returnStatement")()

	stmt := &ReturnStatement{}
	stmt.Return = p.require(Keyword, "return")
	if !p.match(Symbol, ";") {
		stmt.Value = p.parseExpression()
	}
	stmt.Semicolon = p.require(Symbol, ";")
	return stmt
}

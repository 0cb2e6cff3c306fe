package parser

// Expression is a left-associative chain of terms joined by binary operators.
// Jack defines no operator precedence.
type Expression struct {
	First *Term
	Rest  []OpTerm
}

type OpTerm struct {
	Op   Token
	Term *Term
}

func (*Expression) isElement() {}
func (*Expression) Label() string { return "expression" }

func (e *Expression) Children() []Element {
	children := []Element{e.First}
	for _, ot := range e.Rest {
		children = append(children, ot.Op, ot.Term)
	}
	return children
}

// IsCall reports whether the expression is nothing but a subroutine call.
func (e *Expression) IsCall() bool {
	if len(e.Rest) > 0 {
		return false
	}
	_, ok := e.First.Form.(*SubroutineCall)
	return ok
}

// Term wraps exactly one of the term forms: *ConstantTerm,
// *KeywordConstantTerm, *VarTerm, *IndexTerm, *SubroutineCall, *ParenTerm or
// *UnaryTerm.
type Term struct {
	Form TermForm
}

func (*Term) isElement() {}
func (*Term) Label() string { return "term" }

func (t *Term) Children() []Element {
	return t.Form.elements()
}

type TermForm interface {
	elements() []Element
	isTermForm()
}

// ConstantTerm is an integer or string constant.
type ConstantTerm struct {
	Value Token
}

func (*ConstantTerm) isTermForm() {}

func (c *ConstantTerm) elements() []Element { return []Element{c.Value} }

type KeywordConstantTerm struct {
	Value    Token
	Constant KeywordConstant
}

func (*KeywordConstantTerm) isTermForm() {}

func (c *KeywordConstantTerm) elements() []Element { return []Element{c.Value} }

type VarTerm struct {
	Name Token
}

func (*VarTerm) isTermForm() {}

func (v *VarTerm) elements() []Element { return []Element{v.Name} }

type IndexTerm struct {
	Name  Token
	Index *Index
}

func (*IndexTerm) isTermForm() {}

func (i *IndexTerm) elements() []Element {
	return append([]Element{i.Name}, i.Index.elements()...)
}

// SubroutineCall is name(args) or receiver.name(args); Receiver and Dot are
// nil for the unqualified form.
type SubroutineCall struct {
	Receiver *Token
	Dot      *Token
	Name     Token
	LParen   Token
	Args     *ExpressionList
	RParen   Token
}

func (*SubroutineCall) isTermForm() {}

func (c *SubroutineCall) elements() []Element {
	var elems []Element
	if c.Receiver != nil {
		elems = append(elems, *c.Receiver, *c.Dot)
	}
	return append(elems, c.Name, c.LParen, c.Args, c.RParen)
}

type ParenTerm struct {
	LParen Token
	Expr   *Expression
	RParen Token
}

func (*ParenTerm) isTermForm() {}

func (t *ParenTerm) elements() []Element { return []Element{t.LParen, t.Expr, t.RParen} }

type UnaryTerm struct {
	Op      Token
	Operand *Term
}

func (*UnaryTerm) isTermForm() {}

func (u *UnaryTerm) elements() []Element { return []Element{u.Op, u.Operand} }

type ExpressionList struct {
	Exprs  []*Expression
	Commas []Token
}

func (*ExpressionList) isElement() {}
func (*ExpressionList) Label() string { return "expressionList" }

func (l *ExpressionList) Children() (children []Element) {
	for idx, expr := range l.Exprs {
		if idx > 0 {
			children = append(children, l.Commas[idx-1])
		}
		children = append(children, expr)
	}
	return children
}

func (p *Parser) isBinaryOperator() bool {
	tok, ok := p.current()
	return ok && tok.Kind == Symbol && binaryOperators[tok.Value]
}

func (p *Parser) parseExpression() *Expression {
	defer p.enter("expression")()

	expr := &Expression{First: p.parseTerm()}

	for p.isBinaryOperator() {
		tok, _ := p.current()
		op := p.require(Symbol, tok.Value)
		p.logger.Printf("Found binary operator %s", op.Value)
		expr.Rest = append(expr.Rest, OpTerm{Op: op, Term: p.parseTerm()})
	}

	return expr
}

const termExpectation = "term"

func (p *Parser) parseTerm() *Term {
	defer p.enter("term")()

	tok, ok := p.current()
	if !ok {
		p.fail(termExpectation)
	}

	switch tok.Kind {
	case IntegerConstant, StringConstant:
		return &Term{Form: &ConstantTerm{Value: p.require(tok.Kind, tok.Value)}}
	case Keyword:
		kc, ok := keywordConstants[tok.Value]
		if !ok {
			p.fail(termExpectation)
		}
		return &Term{Form: &KeywordConstantTerm{Value: p.require(Keyword, tok.Value), Constant: kc}}
	case Identifier:
		name := p.require(Identifier, "")
		switch {
		case p.match(Symbol, "["):
			return &Term{Form: &IndexTerm{Name: name, Index: p.parseIndex()}}
		case p.match(Symbol, "("), p.match(Symbol, "."):
			return &Term{Form: p.parseSubroutineCall(name)}
		}
		return &Term{Form: &VarTerm{Name: name}}
	case Symbol:
		switch {
		case tok.Value == "(":
			t := &ParenTerm{}
			t.LParen = p.require(Symbol, "(")
			t.Expr = p.parseExpression()
			t.RParen = p.require(Symbol, ")")
			return &Term{Form: t}
		case unaryOperators[tok.Value]:
			op := p.require(Symbol, tok.Value)
			return &Term{Form: &UnaryTerm{Op: op, Operand: p.parseTerm()}}
		}
	}

	p.fail(termExpectation)
	return nil
}

// parseSubroutineCall continues a call whose leading identifier has already
// been consumed.
func (p *Parser) parseSubroutineCall(name Token) *SubroutineCall {
	call := &SubroutineCall{}
	if p.match(Symbol, ".") {
		dot := p.require(Symbol, ".")
		call.Receiver = &name
		call.Dot = &dot
		call.Name = p.require(Identifier, "")
	} else {
		call.Name = name
	}
	call.LParen = p.require(Symbol, "(")
	call.Args = p.parseExpressionList()
	call.RParen = p.require(Symbol, ")")
	return call
}

func (p *Parser) parseExpressionList() *ExpressionList {
	defer p.enter("expressionList")()

	list := &ExpressionList{}
	if p.match(Symbol, ")") {
		return list
	}

	list.Exprs = append(list.Exprs, p.parseExpression())
	for p.match(Symbol, ",") {
		list.Commas = append(list.Commas, p.require(Symbol, ","))
		list.Exprs = append(list.Exprs, p.parseExpression())
	}

	return list
}

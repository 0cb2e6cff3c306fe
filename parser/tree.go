package parser

// Element is a child of a parse tree node: either a Token or a Node.
type Element interface {
	isElement()
}

// Node is a non-terminal of the parse tree. Children returns the node's
// terminals and nested non-terminals in derivation order.
type Node interface {
	Element
	Label() string
	Children() []Element
}

// ClassMember is a declaration inside a class body.
type ClassMember interface {
	Node
	isClassMember()
}

// BodyItem is a declaration or statement inside a subroutine body.
type BodyItem interface {
	Node
	isBodyItem()
}

type Statement interface {
	BodyItem
	Kind() StatementKind
}

type Class struct {
	Keyword Token
	Name    Token
	LBrace  Token
	Members []ClassMember
	RBrace  Token
}

func (*Class) isElement() {}
func (*Class) Label() string { return "class" }

func (c *Class) Children() []Element {
	children := []Element{c.Keyword, c.Name, c.LBrace}
	for _, m := range c.Members {
		children = append(children, m)
	}
	return append(children, c.RBrace)
}

// ClassVars returns the class variable declarations in source order.
func (c *Class) ClassVars() (decs []*ClassVarDec) {
	for _, m := range c.Members {
		if d, ok := m.(*ClassVarDec); ok {
			decs = append(decs, d)
		}
	}
	return decs
}

// Subroutines returns the subroutine declarations in source order.
func (c *Class) Subroutines() (decs []*SubroutineDec) {
	for _, m := range c.Members {
		if d, ok := m.(*SubroutineDec); ok {
			decs = append(decs, d)
		}
	}
	return decs
}

// NameList is a comma separated list of identifiers as used by variable
// declarations. Commas holds the separators, so len(Commas) == len(Names)-1.
type NameList struct {
	Names  []Token
	Commas []Token
}

func (l NameList) elements() (elems []Element) {
	for idx, name := range l.Names {
		if idx > 0 {
			elems = append(elems, l.Commas[idx-1])
		}
		elems = append(elems, name)
	}
	return elems
}

type ClassVarDec struct {
	Modifier Token
	Kind     VarKind
	Type     Token
	NameList
	Semicolon Token
}

func (*ClassVarDec) isElement() {}
func (*ClassVarDec) isClassMember() {}
func (*ClassVarDec) Label() string { return "classVarDec" }

func (d *ClassVarDec) Children() []Element {
	children := []Element{d.Modifier, d.Type}
	children = append(children, d.elements()...)
	return append(children, d.Semicolon)
}

type SubroutineDec struct {
	Keyword    Token
	Kind       SubroutineKind
	ReturnType Token
	Name       Token
	LParen     Token
	Params     *ParameterList
	RParen     Token
	Body       *SubroutineBody
}

func (*SubroutineDec) isElement() {}
func (*SubroutineDec) isClassMember() {}
func (*SubroutineDec) Label() string { return "subroutineDec" }

func (d *SubroutineDec) Children() []Element {
	return []Element{d.Keyword, d.ReturnType, d.Name, d.LParen, d.Params, d.RParen, d.Body}
}

type Parameter struct {
	Type Token
	Name Token
}

type ParameterList struct {
	Params []Parameter
	Commas []Token
}

func (*ParameterList) isElement() {}
func (*ParameterList) Label() string { return "parameterList" }

func (l *ParameterList) Children() (children []Element) {
	for idx, param := range l.Params {
		if idx > 0 {
			children = append(children, l.Commas[idx-1])
		}
		children = append(children, param.Type, param.Name)
	}
	return children
}

type SubroutineBody struct {
	LBrace Token
	Items  []BodyItem
	RBrace Token
}

func (*SubroutineBody) isElement() {}
func (*SubroutineBody) Label() string { return "subroutineBody" }

func (b *SubroutineBody) Children() []Element {
	children := []Element{b.LBrace}
	for _, item := range b.Items {
		children = append(children, item)
	}
	return append(children, b.RBrace)
}

// VarDecs returns the local variable declarations of the body.
func (b *SubroutineBody) VarDecs() (decs []*VarDec) {
	for _, item := range b.Items {
		if d, ok := item.(*VarDec); ok {
			decs = append(decs, d)
		}
	}
	return decs
}

// Statements returns the statements of the body, skipping declarations.
func (b *SubroutineBody) Statements() (stmts []Statement) {
	for _, item := range b.Items {
		if s, ok := item.(Statement); ok {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

type VarDec struct {
	Var  Token
	Type Token
	NameList
	Semicolon Token
}

func (*VarDec) isElement() {}
func (*VarDec) isBodyItem() {}
func (*VarDec) Label() string { return "varDec" }

func (d *VarDec) Children() []Element {
	children := []Element{d.Var, d.Type}
	children = append(children, d.elements()...)
	return append(children, d.Semicolon)
}

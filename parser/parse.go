package parser

import (
	"io"
	"log"
	"runtime"

	"github.com/pkg/errors"
)

// Parse parses a complete token sequence into the parse tree of one class.
func Parse(tokens []Token) (*Class, error) {
	return NewParser("", tokens).Parse()
}

// ParseSource tokenizes and parses Jack source text. name is only used in
// diagnostics.
func ParseSource(name, text string) (*Class, error) {
	tokens, err := Tokenize(name, text)
	if err != nil {
		return nil, err
	}
	return NewParser(name, tokens).Parse()
}

func NewParser(name string, tokens []Token) *Parser {
	return &Parser{
		name:   name,
		tokens: tokens,
		logger: log.New(io.Discard, "parser ", log.LstdFlags|log.Lshortfile),
	}
}

// Parser is a recursive-descent parser over one token sequence. Every call to
// Parse starts over at the first token.
type Parser struct {
	name   string
	tokens []Token
	pos    int
	rules  []string
	logger *log.Logger
}

func (p *Parser) SetLogOutput(w io.Writer) {
	p.logger.SetOutput(w)
}

func (p *Parser) Parse() (*Class, error) {
	class, err := p.parse()
	if err != nil {
		if p.name != "" {
			err = errors.WithMessagef(err, "parsing %s", p.name)
		}
		return nil, err
	}
	return class, nil
}

func (p *Parser) parse() (class *Class, err error) {
	p.pos = 0
	p.rules = nil

	defer p.recover(&err)

	class = p.parseClass()

	if p.pos < len(p.tokens) {
		p.fail("end of input")
	}

	return class, nil
}

func (p *Parser) recover(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	// rethrow runtime errors and anything that isn't a grammar violation
	if _, ok := e.(runtime.Error); ok {
		panic(e)
	}
	v, ok := e.(*GrammarViolation)
	if !ok {
		panic(e)
	}
	p.logger.Printf("Parsing failed in %s: %v", v.Context(), v)
	*errp = v
}

func (p *Parser) current() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// match reports whether the current token has the given kind and value. The
// zero Kind and the empty value match anything.
func (p *Parser) match(kind Kind, value string) bool {
	tok, ok := p.current()
	if !ok {
		return false
	}
	return (kind == AnyKind || tok.Kind == kind) && (value == "" || tok.Value == value)
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// require consumes and returns the current token if it matches, and fails
// the parse otherwise. Every terminal of the grammar is consumed through it.
func (p *Parser) require(kind Kind, value string) Token {
	if !p.match(kind, value) {
		p.fail(describe(kind, value))
	}
	tok := p.tokens[p.pos]
	p.advance()
	return tok
}

func (p *Parser) requireOneOf(kind Kind, values ...string) Token {
	for _, value := range values {
		if p.match(kind, value) {
			return p.require(kind, value)
		}
	}
	p.fail(describeOneOf(kind, values))
	return Token{}
}

// requireType consumes a primitive type keyword or a class name. void is
// accepted only as a subroutine return type.
func (p *Parser) requireType(allowVoid bool) Token {
	if p.match(Identifier, "") {
		return p.require(Identifier, "")
	}

	types := primitiveTypes
	if allowVoid {
		types = append([]string{"void"}, primitiveTypes...)
	}
	for _, typ := range types {
		if p.match(Keyword, typ) {
			return p.require(Keyword, typ)
		}
	}

	p.fail(describeOneOf(Keyword, types) + " or identifier")
	return Token{}
}

func (p *Parser) fail(expected string) {
	p.failAt(p.pos, expected)
}

func (p *Parser) failAt(pos int, expected string) {
	v := &GrammarViolation{
		Rule:     p.rule(),
		Trail:    append([]string(nil), p.rules...),
		Expected: expected,
		Pos:      pos,
	}
	if pos < len(p.tokens) {
		tok := p.tokens[pos]
		v.Found = &tok
	}
	panic(v)
}

func (p *Parser) rule() string {
	if len(p.rules) == 0 {
		return "program"
	}
	return p.rules[len(p.rules)-1]
}

// enter records rule as the innermost active rule; the returned function
// leaves it again and is meant to be deferred.
func (p *Parser) enter(rule string) func() {
	p.logger.Printf("Parsing %s at token %d", rule, p.pos)
	p.rules = append(p.rules, rule)
	return func() {
		p.rules = p.rules[:len(p.rules)-1]
		p.logger.Printf("Leaving %s at token %d", rule, p.pos)
	}
}

const classMemberExpectation = "one of keyword static, field, constructor, function, method"

func (p *Parser) parseClass() *Class {
	defer p.enter("class")()

	c := &Class{}
	c.Keyword = p.require(Keyword, "class")
	c.Name = p.require(Identifier, "")
	c.LBrace = p.require(Symbol, "{")

	for !p.match(Symbol, "}") {
		switch {
		case p.match(Keyword, "static"), p.match(Keyword, "field"):
			c.Members = append(c.Members, p.parseClassVarDec())
		case p.isSubroutineKeyword():
			c.Members = append(c.Members, p.parseSubroutineDec())
		default:
			p.fail(classMemberExpectation)
		}
	}

	c.RBrace = p.require(Symbol, "}")

	p.logger.Printf("Finished parsing class %s with %d members", c.Name.Value, len(c.Members))

	return c
}

func (p *Parser) isSubroutineKeyword() bool {
	tok, ok := p.current()
	if !ok || tok.Kind != Keyword {
		return false
	}
	_, ok = subroutineKinds[tok.Value]
	return ok
}

func (p *Parser) parseClassVarDec() *ClassVarDec {
	defer p.enter("classVarDec")()

	d := &ClassVarDec{}
	d.Modifier = p.requireOneOf(Keyword, "static", "field")
	d.Kind = varKinds[d.Modifier.Value]
	d.Type = p.requireType(false)
	d.NameList = p.parseNameList()
	d.Semicolon = p.require(Symbol, ";")
	return d
}

func (p *Parser) parseNameList() NameList {
	var l NameList
	l.Names = append(l.Names, p.require(Identifier, ""))
	for p.match(Symbol, ",") {
		l.Commas = append(l.Commas, p.require(Symbol, ","))
		l.Names = append(l.Names, p.require(Identifier, ""))
	}
	return l
}

func (p *Parser) parseSubroutineDec() *SubroutineDec {
	defer p.enter("subroutineDec")()

	d := &SubroutineDec{}
	d.Keyword = p.requireOneOf(Keyword, "constructor", "function", "method")
	d.Kind = subroutineKinds[d.Keyword.Value]
	d.ReturnType = p.requireType(true)
	d.Name = p.require(Identifier, "")
	d.LParen = p.require(Symbol, "(")

	// the parameter list rule only runs when there is something to parse;
	// an empty list still gets its node.
	if p.match(Symbol, ")") {
		d.Params = &ParameterList{}
	} else {
		d.Params = p.parseParameterList()
	}

	d.RParen = p.require(Symbol, ")")
	d.Body = p.parseSubroutineBody()

	p.logger.Printf("Finished parsing %s %s with %d parameters", d.Kind, d.Name.Value, len(d.Params.Params))

	return d
}

func (p *Parser) parseParameterList() *ParameterList {
	defer p.enter("parameterList")()

	l := &ParameterList{}
	l.Params = append(l.Params, p.parseParameter())
	for p.match(Symbol, ",") {
		l.Commas = append(l.Commas, p.require(Symbol, ","))
		l.Params = append(l.Params, p.parseParameter())
	}
	return l
}

func (p *Parser) parseParameter() Parameter {
	typ := p.requireType(false)
	name := p.require(Identifier, "")
	return Parameter{Type: typ, Name: name}
}

func (p *Parser) parseSubroutineBody() *SubroutineBody {
	defer p.enter("subroutineBody")()

	b := &SubroutineBody{}
	b.LBrace = p.require(Symbol, "{")

	for !p.match(Symbol, "}") {
		if p.match(Keyword, "var") {
			b.Items = append(b.Items, p.parseVarDec())
		} else {
			b.Items = append(b.Items, p.parseStatement())
		}
	}

	b.RBrace = p.require(Symbol, "}")
	return b
}

func (p *Parser) parseVarDec() *VarDec {
	defer p.enter("varDec")()

	d := &VarDec{}
	d.Var = p.require(Keyword, "var")
	d.Type = p.requireType(false)
	d.NameList = p.parseNameList()
	d.Semicolon = p.require(Symbol, ";")
	return d
}

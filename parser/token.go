package parser

import "fmt"

// Kind is the lexical category of a token. The zero Kind matches any token
// during lookahead.
type Kind int

const (
	AnyKind Kind = iota
	Keyword
	Symbol
	Identifier
	IntegerConstant
	StringConstant
)

var kindNames = map[Kind]string{
	AnyKind:         "token",
	Keyword:         "keyword",
	Symbol:          "symbol",
	Identifier:      "identifier",
	IntegerConstant: "integerConstant",
	StringConstant:  "stringConstant",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("INVALID(%d)", int(k))
	}
	return name
}

// Token is a classified lexical unit. Line and Column are informational only
// and are zero for hand-built tokens.
type Token struct {
	Kind   Kind
	Value  string
	Line   int
	Column int
}

func (Token) isElement() {}

func (t Token) String() string {
	return fmt.Sprintf("%s `%s`", t.Kind, t.Value)
}

// Is reports whether t has the given kind and value, ignoring position.
func (t Token) Is(kind Kind, value string) bool {
	return t.Kind == kind && t.Value == value
}

func (t Token) hasPosition() bool {
	return t.Line > 0
}

// Tok builds a token without position information.
func Tok(kind Kind, value string) Token {
	return Token{Kind: kind, Value: value}
}

type VarKind int

const (
	VarStatic VarKind = iota
	VarField
	VarLocal
)

var varKinds = map[string]VarKind{
	"static": VarStatic,
	"field":  VarField,
	"var":    VarLocal,
}

func (k VarKind) String() string {
	switch k {
	case VarStatic:
		return "static"
	case VarField:
		return "field"
	case VarLocal:
		return "var"
	}
	return fmt.Sprintf("INVALID(%d)", int(k))
}

type SubroutineKind int

const (
	SubroutineConstructor SubroutineKind = iota
	SubroutineFunction
	SubroutineMethod
)

var subroutineKinds = map[string]SubroutineKind{
	"constructor": SubroutineConstructor,
	"function":    SubroutineFunction,
	"method":      SubroutineMethod,
}

func (k SubroutineKind) String() string {
	switch k {
	case SubroutineConstructor:
		return "constructor"
	case SubroutineFunction:
		return "function"
	case SubroutineMethod:
		return "method"
	}
	return fmt.Sprintf("INVALID(%d)", int(k))
}

type StatementKind int

const (
	StatementLet StatementKind = iota
	StatementIf
	StatementWhile
	StatementDo
	StatementReturn
)

var statementKinds = map[string]StatementKind{
	"let":    StatementLet,
	"if":     StatementIf,
	"while":  StatementWhile,
	"do":     StatementDo,
	"return": StatementReturn,
}

func (k StatementKind) String() string {
	switch k {
	case StatementLet:
		return "let"
	case StatementIf:
		return "if"
	case StatementWhile:
		return "while"
	case StatementDo:
		return "do"
	case StatementReturn:
		return "return"
	}
	return fmt.Sprintf("INVALID(%d)", int(k))
}

type KeywordConstant int

const (
	ConstTrue KeywordConstant = iota
	ConstFalse
	ConstNull
	ConstThis
)

var keywordConstants = map[string]KeywordConstant{
	"true":  ConstTrue,
	"false": ConstFalse,
	"null":  ConstNull,
	"this":  ConstThis,
}

func (c KeywordConstant) String() string {
	switch c {
	case ConstTrue:
		return "true"
	case ConstFalse:
		return "false"
	case ConstNull:
		return "null"
	case ConstThis:
		return "this"
	}
	return fmt.Sprintf("INVALID(%d)", int(c))
}

// primitive types, in the order they are reported in diagnostics.
var primitiveTypes = []string{"int", "char", "boolean"}

var binaryOperators = map[string]bool{
	"+": true,
	"-": true,
	"*": true,
	"/": true,
	"&": true,
	"|": true,
	"<": true,
	">": true,
	"=": true,
}

var unaryOperators = map[string]bool{
	"-": true,
	"~": true,
}

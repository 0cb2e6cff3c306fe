package parser

import (
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validPrograms = []struct {
	name string
	code string
}{
	{
		"empty class",
		`class Main { }`,
	},
	{
		"class variables",
		`class Point {
			field int x, y;
			static Point origin;
			static boolean ready;
		}`,
	},
	{
		"function with empty body",
		`class Main {
			function void main() {
			}
		}`,
	},
	{
		"function returning nothing",
		`class Main { function void main ( ) { return ; } }`,
	},
	{
		"constructor with parameters",
		`class Point {
			field int x, y;

			constructor Point new(int ax, int ay) {
				let x = ax;
				let y = ay;
				return this;
			}
		}`,
	},
	{
		"method with local variables",
		`class Point {
			field int x, y;

			method int distance(Point other) {
				var int dx, dy;
				var Array buf;
				let dx = x - other.getX();
				let dy = y - other.getY();
				return Math.sqrt((dx * dx) + (dy * dy));
			}
		}`,
	},
	{
		"declarations after statements",
		`class Main {
			function void main() {
				var int a;
				let a = 1;
				var char c;
				let c = 65;
				return;
			}
			static int counter;
		}`,
	},
	{
		"if without else",
		`class Main {
			function void main() {
				if (x < 0) {
					let x = -x;
				}
				return;
			}
		}`,
	},
	{
		"if with else and empty blocks",
		`class Main {
			function void main() {
				if (x) { } else { }
				return;
			}
		}`,
	},
	{
		"nested while and if",
		`class Main {
			function void main() {
				var int i;
				let i = 0;
				while (i < 10) {
					if (~(i = 5)) {
						do Output.printInt(i);
					} else {
						do Output.println();
					}
					let i = i + 1;
				}
				return;
			}
		}`,
	},
	{
		"array access and assignment",
		`class Main {
			function void main() {
				var Array a;
				let a = Array.new(10);
				let a[0] = 1;
				let a[a[0]] = a[0] + 2;
				do a.dispose();
				return;
			}
		}`,
	},
	{
		"calls with all argument shapes",
		`class Main {
			method void run() {
				do draw();
				do Screen.drawLine(0, 0, 511, 255);
				do helper(-1, ~flag, "text", null, true, false, this);
				return;
			}
		}`,
	},
}

func TestParser(t *testing.T) {
	for idx, testEntry := range validPrograms {
		t.Run(testEntry.name, func(t *testing.T) {
			class, err := ParseSource(fmt.Sprintf("test_%d.jack", idx), testEntry.code)
			require.NoError(t, err)
			t.Logf("class = %s", spew.Sdump(class))
		})
	}
}

func TestParserTerminalsRoundTrip(t *testing.T) {
	for _, testEntry := range validPrograms {
		t.Run(testEntry.name, func(t *testing.T) {
			tokens, err := Tokenize(testEntry.name, testEntry.code)
			require.NoError(t, err)

			class, err := Parse(tokens)
			require.NoError(t, err)

			require.Equal(t, tokens, Terminals(class), "terminals of the tree differ from the input")
		})
	}
}

func TestParserIdempotent(t *testing.T) {
	for _, testEntry := range validPrograms {
		t.Run(testEntry.name, func(t *testing.T) {
			tokens, err := Tokenize(testEntry.name, testEntry.code)
			require.NoError(t, err)

			p := NewParser(testEntry.name, tokens)

			first, err := p.Parse()
			require.NoError(t, err)

			second, err := p.Parse()
			require.NoError(t, err)

			require.Equal(t, first, second)
		})
	}
}

func TestParserMinimalProgram(t *testing.T) {
	tokens := []Token{
		Tok(Keyword, "class"),
		Tok(Identifier, "Main"),
		Tok(Symbol, "{"),
		Tok(Keyword, "function"),
		Tok(Keyword, "void"),
		Tok(Identifier, "main"),
		Tok(Symbol, "("),
		Tok(Symbol, ")"),
		Tok(Symbol, "{"),
		Tok(Keyword, "return"),
		Tok(Symbol, ";"),
		Tok(Symbol, "}"),
		Tok(Symbol, "}"),
	}

	class, err := Parse(tokens)
	require.NoError(t, err)

	assert.Equal(t, "class", class.Label())
	assert.Equal(t, "Main", class.Name.Value)
	require.Len(t, class.Members, 1)

	sub, ok := class.Members[0].(*SubroutineDec)
	require.True(t, ok, "expected *SubroutineDec, got %T", class.Members[0])
	assert.Equal(t, SubroutineFunction, sub.Kind)
	assert.Equal(t, "void", sub.ReturnType.Value)
	assert.Equal(t, "parameterList", sub.Params.Label())
	assert.Empty(t, sub.Params.Children())

	require.Len(t, sub.Body.Items, 1)
	ret, ok := sub.Body.Items[0].(*ReturnStatement)
	require.True(t, ok, "expected *ReturnStatement, got %T", sub.Body.Items[0])
	assert.Nil(t, ret.Value)
	assert.Equal(t, []Element{Tok(Keyword, "return"), Tok(Symbol, ";")}, ret.Children())

	require.Equal(t, tokens, Terminals(class))
}

func TestParserBoundaries(t *testing.T) {
	t.Run("empty class body", func(t *testing.T) {
		class, err := ParseSource("empty", "class C { }")
		require.NoError(t, err)
		assert.Empty(t, class.Members)
		assert.Len(t, class.Children(), 4)
	})

	t.Run("empty statement block", func(t *testing.T) {
		class, err := ParseSource("block", "class C { function void f() { while (true) { } return; } }")
		require.NoError(t, err)

		stmts := class.Subroutines()[0].Body.Statements()
		require.Len(t, stmts, 2)
		while, ok := stmts[0].(*WhileStatement)
		require.True(t, ok)
		assert.Equal(t, "statements", while.Body.Label())
		assert.Empty(t, while.Body.Children())
	})

	t.Run("empty expression list", func(t *testing.T) {
		class, err := ParseSource("call", "class C { function void f() { do g(); return; } }")
		require.NoError(t, err)

		do := class.Subroutines()[0].Body.Statements()[0].(*DoStatement)
		call := do.Call.First.Form.(*SubroutineCall)
		assert.Nil(t, call.Receiver)
		assert.Equal(t, "expressionList", call.Args.Label())
		assert.Empty(t, call.Args.Children())
	})

	t.Run("if with and without else", func(t *testing.T) {
		class, err := ParseSource("if", `class C { function void f() {
			if (a) { let b = 1; }
			if (a) { let b = 1; } else { let b = 2; }
			return;
		} }`)
		require.NoError(t, err)

		stmts := class.Subroutines()[0].Body.Statements()
		withoutElse := stmts[0].(*IfStatement)
		withElse := stmts[1].(*IfStatement)

		assert.Nil(t, withoutElse.Else)
		assert.Len(t, withoutElse.Children(), 7)
		require.NotNil(t, withElse.Else)
		assert.Len(t, withElse.Children(), 11)
		assert.Len(t, withElse.Else.Body.List, 1)
	})
}

func TestParserLetStatement(t *testing.T) {
	class, err := ParseSource("let", "class C { function void f() { let x = 1 + 2 ; return; } }")
	require.NoError(t, err)

	let, ok := class.Subroutines()[0].Body.Items[0].(*LetStatement)
	require.True(t, ok)
	assert.Equal(t, StatementLet, let.Kind())
	assert.Equal(t, "letStatement", let.Label())
	assert.Equal(t, "x", let.Name.Value)
	assert.Nil(t, let.Index)

	expr := let.Value
	children := expr.Children()
	require.Len(t, children, 3)

	first, ok := children[0].(*Term)
	require.True(t, ok)
	assert.Equal(t, []Element{Tok(IntegerConstant, "1")}, withoutPositionsElements(first.Children()))

	op, ok := children[1].(Token)
	require.True(t, ok)
	assert.Equal(t, Tok(Symbol, "+"), Tok(op.Kind, op.Value))

	second, ok := children[2].(*Term)
	require.True(t, ok)
	assert.Equal(t, []Element{Tok(IntegerConstant, "2")}, withoutPositionsElements(second.Children()))
}

func TestParserClassMembers(t *testing.T) {
	class, err := ParseSource("members", `class C {
		static int a;
		field boolean b, c;
		method void m() { return; }
		function C f(int x, char y, Array z) { return null; }
	}`)
	require.NoError(t, err)

	vars := class.ClassVars()
	require.Len(t, vars, 2)
	assert.Equal(t, VarStatic, vars[0].Kind)
	assert.Equal(t, VarField, vars[1].Kind)
	assert.Len(t, vars[1].Names, 2)
	assert.Len(t, vars[1].Commas, 1)

	subs := class.Subroutines()
	require.Len(t, subs, 2)
	assert.Equal(t, SubroutineMethod, subs[0].Kind)
	assert.Equal(t, SubroutineFunction, subs[1].Kind)
	assert.Equal(t, "C", subs[1].ReturnType.Value)

	params := subs[1].Params
	require.Len(t, params.Params, 3)
	assert.Equal(t, "Array", params.Params[2].Type.Value)
	assert.Len(t, params.Children(), 8)
}

func TestParserErrors(t *testing.T) {
	testData := []struct {
		name     string
		code     string
		rule     string
		expected string
		found    string
	}{
		{
			"class keyword missing",
			`Main { }`,
			"class", "keyword `class`", "identifier `Main`",
		},
		{
			"statement outside subroutine",
			`class Main { let x = 1; }`,
			"class", classMemberExpectation, "keyword `let`",
		},
		{
			"class variable without semicolon",
			`class Main { field int x }`,
			"classVarDec", "symbol `;`", "symbol `}`",
		},
		{
			"class variable without name",
			`class Main { static x; }`,
			"classVarDec", "identifier", "symbol `;`",
		},
		{
			"void is not a variable type",
			`class Main { static void x; }`,
			"classVarDec", "one of keyword int, char, boolean or identifier", "keyword `void`",
		},
		{
			"invalid return type",
			`class Main { function var f() { return; } }`,
			"subroutineDec", "one of keyword void, int, char, boolean or identifier", "keyword `var`",
		},
		{
			"trailing comma in parameter list",
			`class Main { function void f(int a,) { return; } }`,
			"parameterList", "one of keyword int, char, boolean or identifier", "symbol `)`",
		},
		{
			"parameter without name",
			`class Main { function void f(int) { return; } }`,
			"parameterList", "identifier", "symbol `)`",
		},
		{
			"local variable without name",
			`class Main { method void f() { var int; return; } }`,
			"varDec", "identifier", "symbol `;`",
		},
		{
			"bare call is not a statement",
			`class Main { function void f() { foo(); } }`,
			"subroutineBody", statementExpectation, "identifier `foo`",
		},
		{
			"missing expression",
			`class Main { function void f() { let x = ; } }`,
			"term", "term", "symbol `;`",
		},
		{
			"do with constant",
			`class Main { function void f() { do 1; } }`,
			"doStatement", "subroutine call", "integerConstant `1`",
		},
		{
			"do with variable",
			`class Main { function void f() { do x; } }`,
			"doStatement", "subroutine call", "identifier `x`",
		},
		{
			"return without semicolon",
			`class Main { function void f() { return 1 } }`,
			"returnStatement", "symbol `;`", "symbol `}`",
		},
		{
			"else without block",
			`class Main { function void f() { if (x) { } else } }`,
			"ifStatement", "symbol `{`", "symbol `}`",
		},
		{
			"while without parentheses",
			`class Main { function void f() { while x { } } }`,
			"whileStatement", "symbol `(`", "identifier `x`",
		},
		{
			"unclosed index",
			`class Main { function void f() { let a[1 = 2; } }`,
			"letStatement", "symbol `]`", "symbol `;`",
		},
		{
			"unclosed parenthesis",
			`class Main { function void f() { let x = (1 + 2; } }`,
			"term", "symbol `)`", "symbol `;`",
		},
		{
			"trailing comma in argument list",
			`class Main { function void f() { let x = g(1,); } }`,
			"term", "term", "symbol `)`",
		},
		{
			"qualified name without call",
			`class Main { function void f() { let x = a.b; } }`,
			"term", "symbol `(`", "symbol `;`",
		},
		{
			"keyword that is not a constant",
			`class Main { function void f() { let x = class; } }`,
			"term", "term", "keyword `class`",
		},
		{
			"tokens after class",
			`class Main { } class Other { }`,
			"program", "end of input", "keyword `class`",
		},
		{
			"unterminated class",
			`class Main {`,
			"class", classMemberExpectation, "end of input",
		},
		{
			"unterminated block",
			`class Main { function void f() { while (x) { let y = 1;`,
			"statements", statementExpectation, "end of input",
		},
	}

	for _, tt := range testData {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.name, tt.code)
			require.NoError(t, err)

			class, err := Parse(tokens)
			require.Error(t, err)
			require.Nil(t, class)

			var v *GrammarViolation
			require.True(t, errors.As(err, &v), "expected *GrammarViolation, got %T", err)

			assert.Equal(t, tt.rule, v.Rule)
			assert.Equal(t, tt.expected, v.Expected)
			if v.Found == nil {
				assert.Equal(t, tt.found, "end of input")
				assert.Equal(t, len(tokens), v.Pos)
			} else {
				assert.Equal(t, tt.found, Tok(v.Found.Kind, v.Found.Value).String())
				assert.Equal(t, tokens[v.Pos], *v.Found)
			}
			t.Logf("error: %v (in %s)", err, v.Context())
		})
	}
}

func TestParserMissingClassName(t *testing.T) {
	_, err := Parse([]Token{Tok(Keyword, "class"), Tok(Symbol, "{"), Tok(Symbol, "}")})
	require.Error(t, err)
	assert.Equal(t, "class: expected identifier, found symbol `{`", err.Error())

	var v *GrammarViolation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, 1, v.Pos)
	assert.Equal(t, []string{"class"}, v.Trail)
}

func TestParserErrorContext(t *testing.T) {
	_, err := ParseSource("Main.jack", "class Main {\n  function void f() {\n    let x = ;\n  }\n}")
	require.Error(t, err)
	assert.Equal(t, "parsing Main.jack: term: expected term, found symbol `;` at 3:13", err.Error())

	v, ok := errors.Cause(err).(*GrammarViolation)
	require.True(t, ok, "expected *GrammarViolation as cause, got %T", errors.Cause(err))
	assert.Equal(t, "class > subroutineDec > subroutineBody > letStatement > expression > term", v.Context())
}

func withoutPositionsElements(elems []Element) []Element {
	stripped := make([]Element, 0, len(elems))
	for _, e := range elems {
		if tok, ok := e.(Token); ok {
			e = Tok(tok.Kind, tok.Value)
		}
		stripped = append(stripped, e)
	}
	return stripped
}

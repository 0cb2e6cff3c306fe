package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseStatementSource(t *testing.T, src string) (Statement, error) {
	t.Helper()

	tokens, err := Tokenize("statement", src)
	require.NoError(t, err)

	p := NewParser("statement", tokens)

	var stmt Statement
	func() {
		defer p.recover(&err)
		stmt = p.parseStatement()
	}()
	if err == nil {
		require.Equal(t, len(tokens), p.pos, "statement did not consume all tokens")
		require.Equal(t, tokens, Terminals(stmt))
	}
	return stmt, err
}

func TestParseStatementDispatch(t *testing.T) {
	testData := []struct {
		Name  string
		Code  string
		Kind  StatementKind
		Label string
	}{
		{Name: "let", Code: "let x = 1;", Kind: StatementLet, Label: "letStatement"},
		{Name: "let with index", Code: "let a[i] = a[i - 1];", Kind: StatementLet, Label: "letStatement"},
		{Name: "if", Code: "if (x) { return; }", Kind: StatementIf, Label: "ifStatement"},
		{Name: "while", Code: "while (~done) { do step(); }", Kind: StatementWhile, Label: "whileStatement"},
		{Name: "do", Code: "do Sys.halt();", Kind: StatementDo, Label: "doStatement"},
		{Name: "return", Code: "return;", Kind: StatementReturn, Label: "returnStatement"},
		{Name: "return value", Code: "return x + 1;", Kind: StatementReturn, Label: "returnStatement"},
	}

	for _, tt := range testData {
		t.Run(tt.Name, func(t *testing.T) {
			stmt, err := parseStatementSource(t, tt.Code)
			require.NoError(t, err)
			assert.Equal(t, tt.Kind, stmt.Kind())
			assert.Equal(t, tt.Label, stmt.Label())
		})
	}
}

func TestParseStatementRejectsNonStatements(t *testing.T) {
	for _, code := range []string{"var int x;", "x = 1;", "else { }", "{ }"} {
		t.Run(code, func(t *testing.T) {
			_, err := parseStatementSource(t, code)
			require.Error(t, err)

			v, ok := err.(*GrammarViolation)
			require.True(t, ok, "expected *GrammarViolation, got %T", err)
			assert.Equal(t, statementExpectation, v.Expected)
			assert.Equal(t, 0, v.Pos)
		})
	}
}

func TestParseLetWithIndex(t *testing.T) {
	stmt, err := parseStatementSource(t, "let a[i] = 0;")
	require.NoError(t, err)

	let := stmt.(*LetStatement)
	require.NotNil(t, let.Index)
	assert.Equal(t, "[", let.Index.LBracket.Value)
	assert.Equal(t, "]", let.Index.RBracket.Value)
	assert.Len(t, let.Children(), 8)
}

func TestParseReturnValue(t *testing.T) {
	stmt, err := parseStatementSource(t, "return x;")
	require.NoError(t, err)

	ret := stmt.(*ReturnStatement)
	require.NotNil(t, ret.Value)
	assert.Len(t, ret.Children(), 3)
}

func TestParseDoCall(t *testing.T) {
	stmt, err := parseStatementSource(t, "do game.run(1);")
	require.NoError(t, err)

	do := stmt.(*DoStatement)
	require.True(t, do.Call.IsCall())
	call := do.Call.First.Form.(*SubroutineCall)
	assert.Equal(t, "game", call.Receiver.Value)
	assert.Equal(t, "run", call.Name.Value)
}

func TestParseDoRejectsNonCalls(t *testing.T) {
	for _, code := range []string{"do x;", "do f() + 1;", "do a[1];", "do (f());"} {
		t.Run(code, func(t *testing.T) {
			_, err := parseStatementSource(t, code)
			require.Error(t, err)

			v, ok := err.(*GrammarViolation)
			require.True(t, ok, "expected *GrammarViolation, got %T", err)
			assert.Equal(t, "doStatement", v.Rule)
			assert.Equal(t, "subroutine call", v.Expected)
			assert.Equal(t, 1, v.Pos)
		})
	}
}

func TestParserLogOutput(t *testing.T) {
	tokens, err := Tokenize("log", "class Main { function void main() { if (x) { } else { } return; } }")
	require.NoError(t, err)

	var buf bytes.Buffer
	p := NewParser("log", tokens)
	p.SetLogOutput(&buf)

	_, err = p.Parse()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Parsing class at token 0")
	assert.Contains(t, out, "Found else branch")
	assert.Contains(t, out, "Finished parsing class Main with 1 members")
}

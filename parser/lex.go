package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type item struct {
	typ  itemType
	pos  Pos
	line int
	col  int
	val  string
}

func (i item) String() string {
	switch {
	case i.typ == itemEOF:
		return "EOF"
	case i.typ == itemError:
		return i.val
	}
	return fmt.Sprintf("%q", i.val)
}

type itemType int

type Pos int

const (
	itemError itemType = iota
	itemEOF
	itemKeyword
	itemSymbol
	itemIdentifier
	itemIntegerConstant
	itemStringConstant
)

var itemKinds = map[itemType]Kind{
	itemKeyword:         Keyword,
	itemSymbol:          Symbol,
	itemIdentifier:      Identifier,
	itemIntegerConstant: IntegerConstant,
	itemStringConstant:  StringConstant,
}

var key = map[string]bool{
	"class":       true,
	"constructor": true,
	"function":    true,
	"method":      true,
	"field":       true,
	"static":      true,
	"var":         true,
	"int":         true,
	"char":        true,
	"boolean":     true,
	"void":        true,
	"true":        true,
	"false":       true,
	"null":        true,
	"this":        true,
	"let":         true,
	"do":          true,
	"if":          true,
	"else":        true,
	"while":       true,
	"return":      true,
}

const symbols = "{}()[].,;+-*/&|<>=~"

const maxIntegerConstant = 32767

const eof = -1

// LexError reports input that cannot be split into Jack tokens.
type LexError struct {
	Name   string
	Line   int
	Column int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Name, e.Line, e.Column, e.Msg)
}

type stateFn func(*lexer) stateFn

// line and col track the character position of pos; startLine and startCol
// that of start. Columns count runes, not bytes.
type lexer struct {
	name      string
	input     string
	state     stateFn
	pos       Pos
	start     Pos
	width     Pos
	line      int
	col       int
	prevCol   int
	startLine int
	startCol  int
	items     chan item
}

func (l *lexer) next() rune {
	if int(l.pos) >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = Pos(w)
	l.pos += l.width
	l.prevCol = l.col
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back over the rune read by the last call to next. It may only
// be called once per call of next.
func (l *lexer) backup() {
	if l.width == 0 {
		return
	}
	l.pos -= l.width
	if l.input[l.pos] == '\n' {
		l.line--
	}
	l.col = l.prevCol
	l.width = 0
}

func (l *lexer) emitValue(t itemType, val string) {
	l.items <- item{t, l.start, l.startLine, l.startCol, val}
	l.ignore()
}

func (l *lexer) emit(t itemType) {
	l.emitValue(t, l.input[l.start:l.pos])
}

func (l *lexer) ignore() {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.col
}

func (l *lexer) acceptRun(valid string) {
	for strings.IndexRune(valid, l.next()) >= 0 {
	}
	l.backup()
}

func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.items <- item{itemError, l.start, l.startLine, l.startCol, fmt.Sprintf(format, args...)}
	return nil
}

func (l *lexer) nextItem() item {
	return <-l.items
}

func lex(name, input string) *lexer {
	l := &lexer{
		name:      name,
		input:     input,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
		items:     make(chan item),
	}
	go l.run()
	return l
}

func (l *lexer) run() {
	for l.state = lexText; l.state != nil; {
		l.state = l.state(l)
	}
}

// Tokenize splits Jack source text into tokens. Comments and whitespace are
// dropped.
func Tokenize(name, input string) ([]Token, error) {
	l := lex(name, input)
	var tokens []Token
	for {
		it := l.nextItem()
		switch it.typ {
		case itemEOF:
			return tokens, nil
		case itemError:
			return nil, &LexError{Name: name, Line: it.line, Column: it.col, Msg: it.val}
		}
		tokens = append(tokens, Token{Kind: itemKinds[it.typ], Value: it.val, Line: it.line, Column: it.col})
	}
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func lexText(l *lexer) stateFn {
	r := l.peek()
	switch {
	case r == ' ' || r == '\n' || r == '\r' || r == '\t':
		l.acceptRun("\r\n\t ")
		l.ignore()
		return lexText
	case isDigit(r):
		return lexIntegerConstant
	case isLetter(r):
		return lexIdentifier
	case r == '"':
		return lexStringConstant
	case r == '/':
		l.next()
		switch l.peek() {
		case '/':
			return lexLineComment
		case '*':
			return lexBlockComment
		}
		l.emit(itemSymbol)
		return lexText
	case r == eof:
		l.emit(itemEOF)
		return nil
	case strings.ContainsRune(symbols, r):
		l.next()
		l.emit(itemSymbol)
		return lexText
	}
	return l.errorf("unknown character %q", r)
}

func lexIntegerConstant(l *lexer) stateFn {
	l.acceptRun("0123456789")
	n, err := strconv.Atoi(l.input[l.start:l.pos])
	if err != nil || n > maxIntegerConstant {
		return l.errorf("integer constant %s out of range 0..%d", l.input[l.start:l.pos], maxIntegerConstant)
	}
	l.emit(itemIntegerConstant)
	return lexText
}

func lexIdentifier(l *lexer) stateFn {
	for r := l.next(); isLetter(r) || isDigit(r); r = l.next() {
	}
	l.backup()
	if key[l.input[l.start:l.pos]] {
		l.emit(itemKeyword)
	} else {
		l.emit(itemIdentifier)
	}
	return lexText
}

func lexStringConstant(l *lexer) stateFn {
	l.next() // opening quote
	for {
		switch l.next() {
		case '"':
			l.emitValue(itemStringConstant, l.input[l.start+1:l.pos-1])
			return lexText
		case '\n', eof:
			return l.errorf("unterminated string constant")
		}
	}
}

func lexLineComment(l *lexer) stateFn {
	for r := l.next(); r != '\n' && r != eof; r = l.next() {
	}
	l.ignore()
	return lexText
}

func lexBlockComment(l *lexer) stateFn {
	l.next() // '*'
	for {
		switch l.next() {
		case '*':
			if l.peek() == '/' {
				l.next()
				l.ignore()
				return lexText
			}
		case eof:
			return l.errorf("unterminated comment")
		}
	}
}

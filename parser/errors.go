package parser

import (
	"fmt"
	"strings"
)

// GrammarViolation is the single error kind of the parser. It is reported for
// the first token that cannot be derived from the grammar; parsing stops
// there.
type GrammarViolation struct {
	Rule     string   // innermost rule being parsed
	Trail    []string // enclosing rules, outermost first, ending with Rule
	Expected string
	Found    *Token // nil at end of input
	Pos      int    // index of Found in the token sequence
}

func (v *GrammarViolation) Error() string {
	found := "end of input"
	if v.Found != nil {
		found = v.Found.String()
	}

	msg := fmt.Sprintf("%s: expected %s, found %s", v.Rule, v.Expected, found)
	if v.Found != nil && v.Found.hasPosition() {
		msg += fmt.Sprintf(" at %d:%d", v.Found.Line, v.Found.Column)
	}
	return msg
}

// Context returns the chain of rules that were active, e.g.
// "class > subroutineDec > subroutineBody".
func (v *GrammarViolation) Context() string {
	return strings.Join(v.Trail, " > ")
}

func describe(kind Kind, value string) string {
	switch {
	case value == "":
		return kind.String()
	case kind == AnyKind:
		return fmt.Sprintf("`%s`", value)
	}
	return Tok(kind, value).String()
}

func describeOneOf(kind Kind, values []string) string {
	return fmt.Sprintf("one of %s %s", kind, strings.Join(values, ", "))
}

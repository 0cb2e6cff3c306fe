package parser

// Walk visits e and, for nodes, all of their children depth-first in
// derivation order. depth is 0 for e itself.
func Walk(e Element, fn func(e Element, depth int)) {
	walk(e, 0, fn)
}

func walk(e Element, depth int, fn func(Element, int)) {
	fn(e, depth)
	if n, ok := e.(Node); ok {
		for _, child := range n.Children() {
			walk(child, depth+1, fn)
		}
	}
}

// Terminals flattens the tree into the token sequence it was derived from.
func Terminals(n Node) []Token {
	var tokens []Token
	Walk(n, func(e Element, _ int) {
		if tok, ok := e.(Token); ok {
			tokens = append(tokens, tok)
		}
	})
	return tokens
}

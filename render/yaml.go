package render

import (
	"fmt"
	"io"

	"github.com/akrennmair/jack/parser"
	"gopkg.in/yaml.v3"
)

// YAML writes the tree as nested one-key mappings: "label: [children...]" for
// non-terminals and "kind: value" for tokens.
func YAML(w io.Writer, n parser.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(yamlNode(n)); err != nil {
		return fmt.Errorf("failed to render YAML: %w", err)
	}
	return enc.Close()
}

func yamlNode(e parser.Element) *yaml.Node {
	switch e := e.(type) {
	case parser.Token:
		return yamlMapping(e.Kind.String(), yamlString(e.Value))
	case parser.Node:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, child := range e.Children() {
			seq.Content = append(seq.Content, yamlNode(child))
		}
		return yamlMapping(e.Label(), seq)
	}
	panic(fmt.Sprintf("bug: unhandled element %T", e))
}

func yamlMapping(key string, value *yaml.Node) *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{yamlString(key), value},
	}
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

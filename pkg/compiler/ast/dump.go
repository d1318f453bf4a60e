package ast

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the node as a mapping of its tag, literal and children.
// A string node lists its raw name and raw text as scalar children, matching
// the order Node.String prints them in.
func (n *Node) MarshalYAML() (interface{}, error) {
	return n.yamlNode(), nil
}

func (n *Node) yamlNode() *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, v *yaml.Node) {
		out.Content = append(out.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, v)
	}
	scalar := func(s string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
	}

	add("type", scalar(n.Kind.String()))
	switch n.Kind {
	case KindNumber, KindBoolean:
		add("value", scalar(n.Value.String()))
	case KindVariable:
		add("value", scalar(n.Name))
	case KindString:
		add("children", &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: n.Name, Style: yaml.DoubleQuotedStyle},
			{Kind: yaml.ScalarNode, Value: n.Value.Str(), Style: yaml.DoubleQuotedStyle},
		}})
		return out
	}

	if len(n.Children) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range n.Children {
			seq.Content = append(seq.Content, c.yamlNode())
		}
		add("children", seq)
	}
	return out
}

// Dump renders a tree as YAML.
func Dump(n *Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

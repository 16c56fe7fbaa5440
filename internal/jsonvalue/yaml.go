package jsonvalue

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"jsonview/internal/viewer"
)

// maxAliasDepth bounds alias expansion so that recursive anchors cannot loop.
const maxAliasDepth = 64

// yamlNode is a viewer.Value over a YAML node.
type yamlNode struct {
	n     *yaml.Node
	depth int
}

// FromYAMLNode wraps a decoded YAML node. Document nodes are unwrapped.
func FromYAMLNode(n *yaml.Node) viewer.Value {
	return yamlNode{n: n}
}

// ParseYAML parses the first document of a YAML stream.
func ParseYAML(data []byte) (viewer.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind == 0 {
		return nil, errors.New("empty document")
	}
	return FromYAMLNode(&doc), nil
}

// Visit implements viewer.Value.
func (y yamlNode) Visit() viewer.Variant {
	n := y.n
	for n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil || y.depth >= maxAliasDepth {
			return viewer.Scalar("*" + n.Value)
		}
		return yamlNode{n: n.Alias, depth: y.depth + 1}.Visit()
	case yaml.SequenceNode:
		elems := make([]viewer.Value, len(n.Content))
		for i, c := range n.Content {
			elems[i] = yamlNode{n: c, depth: y.depth}
		}
		return describe(viewer.Array(elems...), n, "!!seq")
	case yaml.MappingNode:
		members := make([]viewer.Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			members = append(members, viewer.Member{
				Key:   mappingKey(n.Content[i]),
				Value: yamlNode{n: n.Content[i+1], depth: y.depth},
			})
		}
		return describe(viewer.Map(members...), n, "!!map")
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return viewer.Scalar("null")
		}
		return viewer.Scalar(n.Value)
	default:
		return viewer.Scalar("null")
	}
}

// describe adds explicit, non-default tags as the description.
func describe(v viewer.Variant, n *yaml.Node, defaultTag string) viewer.Variant {
	if n.Tag == "" || n.ShortTag() == defaultTag {
		return v
	}
	return v.WithDescription(n.Tag)
}

func mappingKey(k *yaml.Node) string {
	if k.Kind == yaml.ScalarNode {
		return k.Value
	}
	if k.Kind == yaml.AliasNode && k.Alias != nil && k.Alias.Kind == yaml.ScalarNode {
		return k.Alias.Value
	}
	out, err := yaml.Marshal(k)
	if err != nil {
		return k.Value
	}
	return strings.TrimSpace(string(out))
}

package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/simboot/simboot/sim/param"
)

// decodeYAML maps a YAML document onto a parameter tree.
//
//	simulation:
//	  className: DemoSim
//	  market:
//	    price: 10
//	  firm:
//	    - id: a
//	    - id: b
//
// The top level is a single-key mapping naming the root. Inside a mapping,
// scalars are attributes, mappings and nulls are children, and a sequence of
// mappings is a run of children sharing the key as their name.
func decodeYAML(data []byte) (*param.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRoot
		}
		return nil, err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, fmt.Errorf("line %d: second document: %w", extra.Line, ErrMultipleRoots)
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}

	top := &doc
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, ErrNoRoot
		}
		top = top.Content[0]
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping", top.Line)
	}
	switch {
	case len(top.Content) == 0:
		return nil, ErrNoRoot
	case len(top.Content) > 2:
		return nil, fmt.Errorf("line %d: %w", top.Content[2].Line, ErrMultipleRoots)
	}

	key, val := top.Content[0], deref(top.Content[1])
	root, err := param.NewBuilder(key.Value)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", key.Line, err)
	}
	if err := fillYAML(root, val); err != nil {
		return nil, err
	}
	return root.Build(), nil
}

func fillYAML(b *param.Builder, n *yaml.Node) error {
	switch {
	case isNull(n):
		return nil
	case n.Kind != yaml.MappingNode:
		return fmt.Errorf("line %d: %s: expected a mapping", n.Line, b.Name())
	}

	seen := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], deref(n.Content[i+1])
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: %s: keys must be scalars", k.Line, b.Name())
		}
		if prev, dup := seen[k.Value]; dup {
			return fmt.Errorf("line %d: %s: key %q already defined at line %d", k.Line, b.Name(), k.Value, prev)
		}
		seen[k.Value] = k.Line

		switch {
		case isNull(v) || v.Kind == yaml.MappingNode:
			c, err := b.AddChild(k.Value)
			if err != nil {
				return fmt.Errorf("line %d: %w", k.Line, err)
			}
			if err := fillYAML(c, v); err != nil {
				return err
			}
		case v.Kind == yaml.ScalarNode:
			if err := b.SetAttr(k.Value, v.Value); err != nil {
				return fmt.Errorf("line %d: %w", k.Line, err)
			}
		case v.Kind == yaml.SequenceNode:
			for _, item := range v.Content {
				item = deref(item)
				if item.Kind != yaml.MappingNode && !isNull(item) {
					return fmt.Errorf("line %d: %s: sequence items must be mappings", item.Line, k.Value)
				}
				c, err := b.AddChild(k.Value)
				if err != nil {
					return fmt.Errorf("line %d: %w", item.Line, err)
				}
				if err := fillYAML(c, item); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("line %d: %s: unsupported value", v.Line, k.Value)
		}
	}
	return nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

package param

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when a node or attribute would have an empty name.
	ErrEmptyName = errors.New("empty name")
	// ErrDuplicateAttr is returned when an attribute key is set twice on one node.
	ErrDuplicateAttr = errors.New("duplicate attribute")
)

// Builder assembles a Node. Decoders create one Builder per element and call
// Build once the whole document has been read.
type Builder struct {
	name     string
	attrs    map[string]string
	keys     []string
	children []*Builder
}

// NewBuilder starts a node with the given name.
func NewBuilder(name string) (*Builder, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Builder{name: name, attrs: make(map[string]string)}, nil
}

// Name returns the name of the node being built.
func (b *Builder) Name() string { return b.name }

// SetAttr adds an attribute. Keys are case-sensitive and must be unique.
func (b *Builder) SetAttr(key, value string) error {
	if key == "" {
		return fmt.Errorf("%s: attribute: %w", b.name, ErrEmptyName)
	}
	if _, exists := b.attrs[key]; exists {
		return fmt.Errorf("%s: %w %q", b.name, ErrDuplicateAttr, key)
	}
	b.attrs[key] = value
	b.keys = append(b.keys, key)
	return nil
}

// AddChild appends a child and returns its builder.
func (b *Builder) AddChild(name string) (*Builder, error) {
	c, err := NewBuilder(name)
	if err != nil {
		return nil, fmt.Errorf("%s: child: %w", b.name, err)
	}
	b.children = append(b.children, c)
	return c, nil
}

// Build returns the finished, read-only tree.
func (b *Builder) Build() *Node {
	n := &Node{
		name:  b.name,
		attrs: make(map[string]string, len(b.attrs)),
		keys:  append([]string(nil), b.keys...),
	}
	for k, v := range b.attrs {
		n.attrs[k] = v
	}
	if len(b.children) > 0 {
		n.children = make([]*Node, 0, len(b.children))
		for _, c := range b.children {
			n.children = append(n.children, c.Build())
		}
	}
	return n
}

// MustNode builds a single node from alternating key/value pairs and the
// given children. It panics on invalid input and is meant for tests and
// hard-coded defaults.
func MustNode(name string, kv []string, children ...*Node) *Node {
	b, err := NewBuilder(name)
	if err != nil {
		panic(err)
	}
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("param.MustNode(%q): odd number of key/value strings", name))
	}
	for i := 0; i < len(kv); i += 2 {
		if err := b.SetAttr(kv[i], kv[i+1]); err != nil {
			panic(err)
		}
	}
	n := b.Build()
	n.children = append(n.children, children...)
	return n
}

// Package param provides the parameter tree built from a scenario file.
//
// A Node mirrors one element of the scenario: a name, a set of string
// attributes and an ordered list of children. Trees are assembled once by a
// Builder and are read-only afterwards; every accessor that exposes internal
// collections returns a copy.
package param

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Node is one element of a parameter tree.
type Node struct {
	name     string
	attrs    map[string]string
	keys     []string // attribute keys in source order
	children []*Node
}

// AttrError reports an attribute that is missing or cannot be converted.
type AttrError struct {
	Node  string
	Key   string
	Value string
	Err   error
}

func (e *AttrError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: missing attribute %q", e.Node, e.Key)
	}
	return fmt.Sprintf("%s: attribute %s=%q: %v", e.Node, e.Key, e.Value, e.Err)
}

func (e *AttrError) Unwrap() error { return e.Err }

// Name returns the element name. It is never empty.
func (n *Node) Name() string { return n.name }

// HasAttr reports whether the attribute key is present (case-sensitive).
func (n *Node) HasAttr(key string) bool {
	_, ok := n.attrs[key]
	return ok
}

// Attr returns the attribute value, or "" when absent.
func (n *Node) Attr(key string) string { return n.attrs[key] }

// AttrOr returns the attribute value, or def when absent.
func (n *Node) AttrOr(key, def string) string {
	if v, ok := n.attrs[key]; ok {
		return v
	}
	return def
}

// Attributes returns a copy of the attribute map.
func (n *Node) Attributes() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// AttrKeys returns attribute keys in source order.
func (n *Node) AttrKeys() []string {
	return append([]string(nil), n.keys...)
}

// IntAttr parses the attribute as a base-10 integer.
func (n *Node) IntAttr(key string) (int, error) {
	v, ok := n.attrs[key]
	if !ok {
		return 0, &AttrError{Node: n.name, Key: key}
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &AttrError{Node: n.name, Key: key, Value: v, Err: err}
	}
	return i, nil
}

// FloatAttr parses the attribute as a float64.
func (n *Node) FloatAttr(key string) (float64, error) {
	v, ok := n.attrs[key]
	if !ok {
		return 0, &AttrError{Node: n.name, Key: key}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, &AttrError{Node: n.name, Key: key, Value: v, Err: err}
	}
	return f, nil
}

// BoolAttr parses the attribute with strconv.ParseBool.
func (n *Node) BoolAttr(key string) (bool, error) {
	v, ok := n.attrs[key]
	if !ok {
		return false, &AttrError{Node: n.name, Key: key}
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, &AttrError{Node: n.name, Key: key, Value: v, Err: err}
	}
	return b, nil
}

// Children returns the child nodes in source order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Len returns the number of direct children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child with the given name, in source order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// Lookup follows a slash-separated path of child names, taking the first
// match at each level. An empty path returns n itself.
func (n *Node) Lookup(path string) *Node {
	cur := n
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		cur = cur.Child(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Walk visits n and its descendants depth-first in pre-order. Returning
// false from fn skips the visited node's children.
func (n *Node) Walk(fn func(depth int, node *Node) bool) {
	n.walk(0, fn)
}

func (n *Node) walk(depth int, fn func(int, *Node) bool) {
	if !fn(depth, n) {
		return
	}
	for _, c := range n.children {
		c.walk(depth+1, fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(int, *Node) bool {
		total++
		return true
	})
	return total
}

// String renders the subtree as compact XML, with attributes in source order.
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.name)
	for _, k := range n.keys {
		fmt.Fprintf(b, " %s=%q", k, n.attrs[k])
	}
	if len(n.children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.children {
		c.render(b)
	}
	b.WriteString("</")
	b.WriteString(n.name)
	b.WriteByte('>')
}

// Equal reports whether two trees have the same names, attributes and
// child order. Attribute order is not compared.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.name != b.name || len(a.attrs) != len(b.attrs) || len(a.children) != len(b.children) {
		return false
	}
	for k, v := range a.attrs {
		if bv, ok := b.attrs[k]; !ok || bv != v {
			return false
		}
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

// SortedKeys returns attribute keys in lexical order.
func (n *Node) SortedKeys() []string {
	keys := n.AttrKeys()
	sort.Strings(keys)
	return keys
}

package scenario

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/simboot/simboot/sim/param"
)

// decodeXML builds a tree from a raw XML token stream. Names keep the
// prefix written in the source, so <s:simulation> is named "s:simulation"
// and x:rate="3" is stored under "x:rate". Namespace declarations are not
// attributes. Character data inside elements is ignored.
func decodeXML(r io.Reader) (*param.Node, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var (
		root  *param.Builder
		stack []*param.Builder
		open  []string
		done  bool
	)
	for {
		line, _ := dec.InputPos()
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := qualifiedName(t.Name)
			if done {
				return nil, fmt.Errorf("line %d: <%s>: %w", line, name, ErrMultipleRoots)
			}
			var b *param.Builder
			if len(stack) == 0 {
				b, err = param.NewBuilder(name)
				root = b
			} else {
				b, err = stack[len(stack)-1].AddChild(name)
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			for _, a := range t.Attr {
				if isNamespaceDecl(a.Name) {
					continue
				}
				if err := b.SetAttr(qualifiedName(a.Name), a.Value); err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
			}
			stack = append(stack, b)
			open = append(open, name)
		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(open) == 0 {
				return nil, fmt.Errorf("line %d: unexpected end element </%s>", line, name)
			}
			if want := open[len(open)-1]; want != name {
				return nil, fmt.Errorf("line %d: element <%s> closed by </%s>", line, want, name)
			}
			stack = stack[:len(stack)-1]
			open = open[:len(open)-1]
			if len(stack) == 0 {
				done = true
			}
		case xml.CharData:
			if len(stack) == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("line %d: text outside the root element", line)
			}
		}
	}
	if len(open) > 0 {
		return nil, fmt.Errorf("unexpected EOF: element <%s> not closed", open[len(open)-1])
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	return root.Build(), nil
}

func isNamespaceDecl(n xml.Name) bool {
	return n.Space == "xmlns" || (n.Space == "" && n.Local == "xmlns")
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

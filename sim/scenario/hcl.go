package scenario

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/simboot/simboot/sim/param"
)

// decodeHCL maps native HCL syntax onto a parameter tree.
//
//	simulation {
//	  className = "DemoSim"
//	  market {
//	    price = 10
//	  }
//	}
//
// The file body holds exactly one block. Blocks become nodes and attributes
// are evaluated without variables and converted to strings.
func decodeHCL(data []byte, filename string) (*param.Node, error) {
	if filename == "" {
		filename = "scenario.hcl"
	}
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected body type %T", filename, file.Body)
	}
	if attrs := sortedAttrs(body); len(attrs) > 0 {
		return nil, fmt.Errorf("%s: attribute %q outside the root block", attrs[0].SrcRange, attrs[0].Name)
	}
	switch len(body.Blocks) {
	case 0:
		return nil, ErrNoRoot
	case 1:
	default:
		return nil, fmt.Errorf("%s: %w", body.Blocks[1].DefRange(), ErrMultipleRoots)
	}

	blk := body.Blocks[0]
	root, err := param.NewBuilder(blk.Type)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", blk.DefRange(), err)
	}
	if err := fillHCL(root, blk); err != nil {
		return nil, err
	}
	return root.Build(), nil
}

func fillHCL(b *param.Builder, blk *hclsyntax.Block) error {
	if len(blk.Labels) > 0 {
		return fmt.Errorf("%s: block labels are not supported", blk.DefRange())
	}

	for _, a := range sortedAttrs(blk.Body) {
		v, diags := a.Expr.Value(nil)
		if diags.HasErrors() {
			return diags
		}
		s, err := ctyString(v)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", a.SrcRange, a.Name, err)
		}
		if err := b.SetAttr(a.Name, s); err != nil {
			return fmt.Errorf("%s: %w", a.SrcRange, err)
		}
	}

	for _, child := range blk.Body.Blocks {
		c, err := b.AddChild(child.Type)
		if err != nil {
			return fmt.Errorf("%s: %w", child.DefRange(), err)
		}
		if err := fillHCL(c, child); err != nil {
			return err
		}
	}
	return nil
}

// sortedAttrs returns the body's attributes in source order.
func sortedAttrs(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}

func ctyString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	if !v.IsWhollyKnown() {
		return "", errors.New("value is not known")
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
	}
	return s.AsString(), nil
}

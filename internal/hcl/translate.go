package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/colorgrid/internal/colorspace"
	"github.com/vk/colorgrid/internal/config"
	"github.com/vk/colorgrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateNode converts the HCL-specific node block into the agnostic model.
func translateNode(b *nodeBlock) *config.Node {
	n := &config.Node{Type: b.Type, Name: b.Name}
	if b.Mesh != nil {
		n.Mesh = *b.Mesh
	}
	return n
}

// translateMesh evaluates the colors expression of a mesh block.
func translateMesh(ctx context.Context, b *meshBlock) (*config.Mesh, error) {
	m := &config.Mesh{Name: b.Name}
	if !isExprDefined(b.Colors) {
		return m, nil
	}

	val, diags := b.Colors.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("mesh %q: %w", b.Name, diags)
	}
	colors, err := decodeColors(ctx, val)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", b.Name, err)
	}
	m.Colors = colors
	return m, nil
}

// decodeColors turns a list or tuple of null, [r,g,b] or [r,g,b,a] values
// into vertex colors.
func decodeColors(ctx context.Context, val cty.Value) ([]*colorspace.RGBA, error) {
	logger := ctxlog.FromContext(ctx)

	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("colors must be known at load time")
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		return nil, fmt.Errorf("colors must be a list, got %s", ty.FriendlyName())
	}

	colors := make([]*colorspace.RGBA, 0, val.LengthInt())
	it := val.ElementIterator()
	for it.Next() {
		_, elem := it.Element()
		i := len(colors)
		if elem.IsNull() {
			colors = append(colors, nil)
			continue
		}

		converted, err := convert.Convert(elem, cty.List(cty.Number))
		if err != nil {
			return nil, fmt.Errorf("vertex %d: cannot convert %s to a list of numbers: %w", i, elem.Type().FriendlyName(), err)
		}
		var comps []float32
		if err := gocty.FromCtyValue(converted, &comps); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}

		c := &colorspace.RGBA{A: 1}
		switch len(comps) {
		case 4:
			c.A = comps[3]
			fallthrough
		case 3:
			c.R, c.G, c.B = comps[0], comps[1], comps[2]
		default:
			return nil, fmt.Errorf("vertex %d: expected 3 or 4 components, got %d", i, len(comps))
		}
		colors = append(colors, c)
	}
	logger.Debug("Decoded mesh colors.", "vertices", len(colors))
	return colors, nil
}

// isExprDefined reports whether an optional attribute was actually written.
// The decoder fills omitted hcl.Expression fields with a zero-width
// placeholder rather than nil.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

package vertexcolor

import (
	"context"
	"fmt"

	"github.com/vk/colorgrid/internal/colorspace"
	"github.com/vk/colorgrid/internal/ctxlog"
	"github.com/vk/colorgrid/internal/datablock"
	"github.com/vk/colorgrid/internal/mesh"
	"github.com/vk/colorgrid/internal/node"
	"github.com/vk/colorgrid/internal/schema"
)

// Node is an instance of pmVertexColorComponents. It keeps no state of its
// own; the published channels live in the instance's data block.
type Node struct{}

// New is the node factory.
func New() node.Node {
	return &Node{}
}

// Compute republishes all seven channels from the current mesh. Plugs outside
// the recompute group are declined. When err is non-nil nothing was
// committed and every plug keeps its dirty state.
func (n *Node) Compute(ctx context.Context, plug schema.Plug, data *datablock.Block) (node.Status, error) {
	if !InGroup(plug.Attr) {
		return node.NotHandled, nil
	}
	logger := ctxlog.FromContext(ctx)

	input, err := data.InputValue(MeshAttr)
	if err != nil {
		return node.NotHandled, err
	}
	m := input.AsMesh()

	var (
		handles  [componentCount]*datablock.ArrayHandle
		builders [componentCount]*datablock.ArrayBuilder
	)
	for _, c := range Components() {
		h, err := data.OutputArrayValue(c.LongName())
		if err != nil {
			return node.NotHandled, err
		}
		handles[c] = h
		builders[c] = h.Builder()
	}

	it := mesh.NewIter(m)
	for it.Next() {
		v := it.Vertex()
		var color colorspace.RGBA
		if v.HasColor {
			color = v.Color
		}
		hsv := color.HSV()
		for _, c := range Components() {
			builders[c].Add(v.Index, c.sample(color, hsv))
		}
	}
	if err := it.Err(); err != nil {
		return node.Handled, fmt.Errorf("recompute aborted: %w", err)
	}

	for _, c := range Components() {
		if err := handles[c].Set(builders[c]); err != nil {
			return node.Handled, err
		}
		handles[c].SetAllClean()
	}
	if err := data.SetClean(plug); err != nil {
		return node.Handled, err
	}
	if err := data.SetClean(schema.WholePlug(MeshAttr)); err != nil {
		return node.Handled, err
	}

	logger.Debug("Vertex color channels recomputed.", "vertices", it.Count(), "requested", plug.String())
	return node.Handled, nil
}

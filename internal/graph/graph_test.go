package graph

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/colorgrid/internal/colorspace"
	"github.com/vk/colorgrid/internal/datablock"
	"github.com/vk/colorgrid/internal/mesh"
	"github.com/vk/colorgrid/internal/node"
	"github.com/vk/colorgrid/internal/plugaddr"
	"github.com/vk/colorgrid/internal/registry"
	"github.com/vk/colorgrid/internal/schema"
)

// redNode publishes the red component of every vertex to "out" and
// declines "other".
type redNode struct {
	fail  error
	calls *atomic.Int32
}

func (n *redNode) Compute(_ context.Context, plug schema.Plug, data *datablock.Block) (node.Status, error) {
	if n.calls != nil {
		n.calls.Add(1)
	}
	if plug.Attr != "out" && plug.Attr != "o" {
		return node.NotHandled, nil
	}
	if n.fail != nil {
		return node.Handled, n.fail
	}
	in, err := data.InputValue("in")
	if err != nil {
		return node.NotHandled, err
	}
	h, err := data.OutputArrayValue("out")
	if err != nil {
		return node.NotHandled, err
	}
	b := h.Builder()
	it := mesh.NewIter(in.AsMesh())
	for it.Next() {
		b.Add(it.Vertex().Index, it.Vertex().Color.R)
	}
	if err := it.Err(); err != nil {
		return node.Handled, err
	}
	if err := h.Set(b); err != nil {
		return node.Handled, err
	}
	h.SetAllClean()
	return node.Handled, data.SetClean(schema.WholePlug("in"))
}

func initRed(b *schema.Builder) error {
	if err := b.Add(schema.Attribute{Long: "in", Short: "i", Type: schema.TypeMesh, Writable: true}); err != nil {
		return err
	}
	if err := b.Add(schema.Attribute{Long: "out", Short: "o", Type: schema.TypeFloat, Readable: true, Array: true, UsesArrayBuilder: true}); err != nil {
		return err
	}
	if err := b.Add(schema.Attribute{Long: "other", Short: "x", Type: schema.TypeFloat, Readable: true, Array: true}); err != nil {
		return err
	}
	if err := b.Affects("in", "out"); err != nil {
		return err
	}
	return b.Affects("in", "other")
}

func newTestRegistry(t *testing.T, factory node.Factory) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.RegisterNodeType("red", 0x1, factory, initRed))
	return reg
}

func reds(values ...float32) *mesh.Data {
	colors := make([]*colorspace.RGBA, len(values))
	for i, v := range values {
		colors[i] = &colorspace.RGBA{R: v, A: 1}
	}
	return mesh.New(colors)
}

func newTestGraph(t *testing.T, n *redNode, m mesh.Mesh) (*Graph, context.Context) {
	t.Helper()
	ctx := context.Background()
	g := New(newTestRegistry(t, func() node.Node { return n }))
	require.NoError(t, g.AddMesh("m", m))
	require.NoError(t, g.AddNode(ctx, "n", "red"))
	require.NoError(t, g.Connect(ctx, "m", "n", "in"))
	return g, ctx
}

func TestGraph_ValueComputesOnlyWhenDirty(t *testing.T) {
	// --- Arrange ---
	calls := &atomic.Int32{}
	g, ctx := newTestGraph(t, &redNode{calls: calls}, reds(0.1, 0.2))
	addr := plugaddr.New("n", "out")

	dirty, err := g.IsDirty(addr)
	require.NoError(t, err)
	require.True(t, dirty)

	// --- Act ---
	first, err := g.Value(ctx, addr)
	require.NoError(t, err)
	second, err := g.Value(ctx, addr)
	require.NoError(t, err)

	// --- Assert ---
	assert.Equal(t, []datablock.Element{{Index: 0, Value: 0.1}, {Index: 1, Value: 0.2}}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, g.Evaluations("n"))

	dirty, err = g.IsDirty(addr)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestGraph_SetMeshDirtiesAffectedOutputs(t *testing.T) {
	g, ctx := newTestGraph(t, &redNode{}, reds(0.5))
	addr := plugaddr.MustParse("n.o")

	_, err := g.Value(ctx, addr)
	require.NoError(t, err)

	require.NoError(t, g.SetMesh(ctx, "m", reds(0.25, 0.75, 1)))

	dirty, err := g.IsDirty(addr)
	require.NoError(t, err)
	assert.True(t, dirty)
	dirty, err = g.IsDirty(plugaddr.New("n", "in"))
	require.NoError(t, err)
	assert.True(t, dirty)

	elems, err := g.Value(ctx, addr)
	require.NoError(t, err)
	assert.Len(t, elems, 3)
	assert.Equal(t, 2, g.Evaluations("n"))
}

func TestGraph_ValueIndexed(t *testing.T) {
	g, ctx := newTestGraph(t, &redNode{}, reds(0.5, 0.25))

	elems, err := g.Value(ctx, plugaddr.MustParse("n.out[1]"))
	require.NoError(t, err)
	assert.Equal(t, []datablock.Element{{Index: 1, Value: 0.25}}, elems)

	_, err = g.Value(ctx, plugaddr.MustParse("n.out[5]"))
	assert.ErrorIs(t, err, ErrNoElement)
}

func TestGraph_ValueErrors(t *testing.T) {
	computeErr := errors.New("boom")

	testCases := []struct {
		name      string
		node      *redNode
		addr      string
		expectErr error
		errSubstr string
	}{
		{name: "unknown node", node: &redNode{}, addr: "ghost.out", expectErr: ErrUnknownNode},
		{name: "unknown attribute", node: &redNode{}, addr: "n.nope", expectErr: datablock.ErrUnknownAttribute},
		{name: "input is not readable", node: &redNode{}, addr: "n.in", errSubstr: "not a readable array"},
		{name: "declined plug", node: &redNode{}, addr: "n.other", expectErr: ErrNotHandled},
		{name: "compute failure", node: &redNode{fail: computeErr}, addr: "n.out", expectErr: computeErr},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, ctx := newTestGraph(t, tc.node, reds(1))

			_, err := g.Value(ctx, plugaddr.MustParse(tc.addr))

			require.Error(t, err)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
			}
			if tc.errSubstr != "" {
				assert.Contains(t, err.Error(), tc.errSubstr)
			}
			assert.Equal(t, 0, g.Evaluations("n"))
		})
	}
}

func TestGraph_FailedComputeStaysDirty(t *testing.T) {
	n := &redNode{fail: errors.New("boom")}
	g, ctx := newTestGraph(t, n, reds(1))
	addr := plugaddr.New("n", "out")

	_, err := g.Value(ctx, addr)
	require.Error(t, err)

	dirty, err := g.IsDirty(addr)
	require.NoError(t, err)
	assert.True(t, dirty)

	n.fail = nil
	elems, err := g.Value(ctx, addr)
	require.NoError(t, err)
	assert.Len(t, elems, 1)
}

func TestGraph_Disconnect(t *testing.T) {
	g, ctx := newTestGraph(t, &redNode{}, reds(1, 1))
	addr := plugaddr.New("n", "out")
	_, err := g.Value(ctx, addr)
	require.NoError(t, err)

	require.NoError(t, g.Disconnect(ctx, "n", "i"))

	elems, err := g.Value(ctx, addr)
	require.NoError(t, err)
	assert.Empty(t, elems)

	// Disconnecting twice is a no-op.
	require.NoError(t, g.Disconnect(ctx, "n", "in"))
	// Replacing the old source no longer reaches the node.
	require.NoError(t, g.SetMesh(ctx, "m", reds(1, 1, 1)))
	dirty, err := g.IsDirty(addr)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestGraph_ConnectValidation(t *testing.T) {
	ctx := context.Background()
	g := New(newTestRegistry(t, func() node.Node { return &redNode{} }))
	require.NoError(t, g.AddMesh("m", reds(1)))
	require.NoError(t, g.AddNode(ctx, "n", "red"))

	assert.ErrorIs(t, g.Connect(ctx, "missing", "n", "in"), ErrUnknownMesh)
	assert.ErrorIs(t, g.Connect(ctx, "m", "missing", "in"), ErrUnknownNode)
	assert.ErrorContains(t, g.Connect(ctx, "m", "n", "out"), "no writable mesh input")
	assert.ErrorContains(t, g.AddMesh("m", reds(1)), "already exists")
	assert.ErrorContains(t, g.AddNode(ctx, "n", "red"), "already exists")
	assert.ErrorIs(t, g.AddNode(ctx, "x", "nope"), registry.ErrUnknownType)
	assert.ErrorIs(t, g.SetMesh(ctx, "missing", reds(1)), ErrUnknownMesh)
}

func TestGraph_ReconnectMovesSource(t *testing.T) {
	ctx := context.Background()
	g := New(newTestRegistry(t, func() node.Node { return &redNode{} }))
	require.NoError(t, g.AddMesh("a", reds(0.1)))
	require.NoError(t, g.AddMesh("b", reds(0.2, 0.3)))
	require.NoError(t, g.AddNode(ctx, "n", "red"))
	require.NoError(t, g.Connect(ctx, "a", "n", "in"))
	require.NoError(t, g.Connect(ctx, "b", "n", "in"))

	addr := plugaddr.New("n", "out")
	elems, err := g.Value(ctx, addr)
	require.NoError(t, err)
	assert.Len(t, elems, 2)

	// "a" is no longer upstream of the node.
	require.NoError(t, g.SetMesh(ctx, "a", reds(1, 1, 1, 1)))
	dirty, err := g.IsDirty(addr)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestGraph_Introspection(t *testing.T) {
	ctx := context.Background()
	g := New(newTestRegistry(t, func() node.Node { return &redNode{} }))
	require.NoError(t, g.AddNode(ctx, "b", "red"))
	require.NoError(t, g.AddNode(ctx, "a", "red"))

	assert.Equal(t, []string{"a", "b"}, g.Nodes())

	outs, err := g.Outputs("a")
	require.NoError(t, err)
	assert.Equal(t, []plugaddr.Address{plugaddr.New("a", "out"), plugaddr.New("a", "other")}, outs)

	_, err = g.Schema("zzz")
	assert.ErrorIs(t, err, ErrUnknownNode)
	assert.Equal(t, 0, g.Evaluations("zzz"))
}

package datablock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/colorgrid/internal/colorspace"
	"github.com/vk/colorgrid/internal/mesh"
	"github.com/vk/colorgrid/internal/schema"
)

func newTestBlock(t *testing.T) *Block {
	t.Helper()
	b := schema.NewBuilder()
	require.NoError(t, b.Add(schema.Attribute{Long: "mesh", Short: "me", Type: schema.TypeMesh, Writable: true}))
	require.NoError(t, b.Add(schema.Attribute{Long: "redMulti", Short: "rm", Type: schema.TypeFloat, Readable: true, Array: true, UsesArrayBuilder: true}))
	require.NoError(t, b.Affects("mesh", "redMulti"))
	s, err := b.Build()
	require.NoError(t, err)
	return New(s)
}

func TestNew_OutputsStartDirty(t *testing.T) {
	blk := newTestBlock(t)
	assert.True(t, blk.IsDirty("redMulti"))
	assert.True(t, blk.IsDirty("rm"))
	assert.False(t, blk.IsDirty("mesh"))
	assert.False(t, blk.IsDirty("nope"))
}

func TestInputValue(t *testing.T) {
	blk := newTestBlock(t)

	h, err := blk.InputValue("mesh")
	require.NoError(t, err)
	assert.False(t, h.IsSet())
	assert.Nil(t, h.AsMesh())

	m := mesh.New([]*colorspace.RGBA{nil})
	require.NoError(t, blk.SetInput("me", m))
	h, err = blk.InputValue("mesh")
	require.NoError(t, err)
	assert.Same(t, m, h.AsMesh())

	require.NoError(t, blk.SetInput("mesh", "not a mesh"))
	h, err = blk.InputValue("mesh")
	require.NoError(t, err)
	assert.True(t, h.IsSet())
	assert.Nil(t, h.AsMesh())

	require.NoError(t, blk.SetInput("mesh", nil))
	h, _ = blk.InputValue("mesh")
	assert.False(t, h.IsSet())

	assert.ErrorContains(t, blk.SetInput("redMulti", 1), "not writable")
	assert.ErrorIs(t, blk.SetInput("nope", 1), ErrUnknownAttribute)
	_, err = blk.InputValue("nope")
	assert.ErrorIs(t, err, ErrUnknownAttribute)
}

func TestArrayHandle_ReplacesContents(t *testing.T) {
	blk := newTestBlock(t)
	h, err := blk.OutputArrayValue("redMulti")
	require.NoError(t, err)

	// --- First publish: five elements ---
	first := h.Builder()
	for i := 0; i < 5; i++ {
		first.Add(i, float32(i))
	}
	require.NoError(t, h.Set(first))

	arr, err := blk.Array("redMulti")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, arr.Indices())

	// --- Second publish: two elements, nothing from the first survives ---
	second := h.Builder()
	assert.Zero(t, second.Len(), "builders start empty")
	second.Add(1, 0.5)
	second.Add(0, 0.25)
	require.NoError(t, h.Set(second))

	arr, err = blk.Array("redMulti")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, arr.Indices())
	assert.Equal(t, []float32{0.25, 0.5}, arr.Values())
	v, ok := arr.At(1)
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), v)
	_, ok = arr.At(4)
	assert.False(t, ok)
}

func TestArrayHandle_Errors(t *testing.T) {
	blk := newTestBlock(t)

	_, err := blk.OutputArrayValue("mesh")
	assert.ErrorContains(t, err, "not an array output")

	h, err := blk.OutputArrayValue("redMulti")
	require.NoError(t, err)
	assert.ErrorContains(t, h.Set(nil), "nil array builder")

	foreign := &ArrayBuilder{attr: "hueMulti", values: map[int]float32{}}
	assert.ErrorContains(t, h.Set(foreign), "cannot be committed")

	_, err = blk.Array("mesh")
	assert.ErrorContains(t, err, "not an array")
}

func TestDirtyBits(t *testing.T) {
	blk := newTestBlock(t)
	h, err := blk.OutputArrayValue("redMulti")
	require.NoError(t, err)

	h.SetAllClean()
	assert.False(t, blk.IsDirty("redMulti"))

	require.NoError(t, blk.SetDirty(schema.WholePlug("mesh")))
	assert.True(t, blk.IsDirty("mesh"))
	require.NoError(t, blk.SetClean(schema.ElementPlug("me", 0)))
	assert.False(t, blk.IsDirty("mesh"))

	assert.ErrorIs(t, blk.SetDirty(schema.WholePlug("nope")), ErrUnknownAttribute)
	assert.ErrorIs(t, blk.SetClean(schema.WholePlug("nope")), ErrUnknownAttribute)
}

func TestArray_ElementsIsACopy(t *testing.T) {
	blk := newTestBlock(t)
	h, _ := blk.OutputArrayValue("redMulti")
	b := h.Builder()
	b.Add(0, 1)
	require.NoError(t, h.Set(b))

	arr, _ := blk.Array("redMulti")
	elems := arr.Elements()
	elems[0].Value = 42

	v, _ := arr.At(0)
	assert.Equal(t, float32(1), v)
}

package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/colorgrid/internal/colorspace"
)

type brokenMesh struct {
	count   int
	failsAt int
}

func (b *brokenMesh) VertexCount() int { return b.count }

func (b *brokenMesh) Vertex(i int) (Vertex, error) {
	if i == b.failsAt {
		return Vertex{}, errors.New("mesh deleted")
	}
	return Vertex{Index: i}, nil
}

func TestData_Vertex(t *testing.T) {
	m := New([]*colorspace.RGBA{{R: 1, A: 1}, nil})

	require.Equal(t, 2, m.VertexCount())

	v, err := m.Vertex(0)
	require.NoError(t, err)
	assert.True(t, v.HasColor)
	assert.Equal(t, colorspace.RGBA{R: 1, A: 1}, v.Color)

	v, err = m.Vertex(1)
	require.NoError(t, err)
	assert.False(t, v.HasColor)
	assert.Equal(t, colorspace.RGBA{}, v.Color)

	_, err = m.Vertex(2)
	assert.ErrorContains(t, err, "out of range")
}

func TestNew_CopiesInput(t *testing.T) {
	c := &colorspace.RGBA{R: 0.5}
	m := New([]*colorspace.RGBA{c})
	c.R = 1

	v, err := m.Vertex(0)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), v.Color.R)
}

func TestIter_VisitsInOrder(t *testing.T) {
	m := New([]*colorspace.RGBA{nil, {G: 1}, nil})
	it := NewIter(m)

	var seen []int
	for it.Next() {
		seen = append(seen, it.Vertex().Index)
	}

	require.NoError(t, it.Err())
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, 3, it.Count())
	assert.False(t, it.Next(), "iterator must not restart")
}

func TestIter_NilMesh(t *testing.T) {
	it := NewIter(nil)
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
	assert.Zero(t, it.Count())

	var d *Data
	assert.Zero(t, d.VertexCount())
}

func TestIter_StopsOnFault(t *testing.T) {
	it := NewIter(&brokenMesh{count: 5, failsAt: 2})

	visited := 0
	for it.Next() {
		visited++
	}

	assert.Equal(t, 2, visited)
	require.Error(t, it.Err())
	assert.Contains(t, it.Err().Error(), "reading vertex 2")
	assert.False(t, it.Next())
}

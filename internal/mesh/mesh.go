package mesh

import (
	"fmt"

	"github.com/vk/colorgrid/internal/colorspace"
)

// Mesh is the queryable resource a graph node reads vertex colors from.
type Mesh interface {
	// VertexCount returns the number of vertices, indexed [0, count).
	VertexCount() int
	// Vertex returns the vertex at index. An error means the resource can no
	// longer be read.
	Vertex(index int) (Vertex, error)
}

// Vertex is a single vertex's color sample.
type Vertex struct {
	Index    int
	HasColor bool
	// Color is zero when HasColor is false.
	Color colorspace.RGBA
}

// Data is an in-memory Mesh.
type Data struct {
	colors []*colorspace.RGBA
}

// New builds a mesh with one vertex per entry; a nil entry is an uncolored vertex.
func New(colors []*colorspace.RGBA) *Data {
	cp := make([]*colorspace.RGBA, len(colors))
	for i, c := range colors {
		if c != nil {
			v := *c
			cp[i] = &v
		}
	}
	return &Data{colors: cp}
}

// VertexCount implements Mesh.
func (d *Data) VertexCount() int {
	if d == nil {
		return 0
	}
	return len(d.colors)
}

// Vertex implements Mesh.
func (d *Data) Vertex(index int) (Vertex, error) {
	if index < 0 || index >= d.VertexCount() {
		return Vertex{}, fmt.Errorf("vertex index %d out of range [0,%d)", index, d.VertexCount())
	}
	v := Vertex{Index: index}
	if c := d.colors[index]; c != nil {
		v.HasColor = true
		v.Color = *c
	}
	return v, nil
}

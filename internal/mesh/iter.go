package mesh

import "fmt"

// Iter walks a mesh's vertices in increasing index order. It follows the
// bufio.Scanner shape: call Next until it returns false, then check Err.
// An Iter cannot be rewound.
type Iter struct {
	m       Mesh
	count   int
	next    int
	current Vertex
	err     error
}

// NewIter returns an iterator over m. A nil mesh yields no vertices.
func NewIter(m Mesh) *Iter {
	it := &Iter{m: m}
	if m != nil {
		it.count = m.VertexCount()
	}
	return it
}

// Count is the vertex count captured when the iterator was created.
func (it *Iter) Count() int {
	return it.count
}

// Next advances to the next vertex.
func (it *Iter) Next() bool {
	if it.err != nil || it.next >= it.count {
		return false
	}
	v, err := it.m.Vertex(it.next)
	if err != nil {
		it.err = fmt.Errorf("reading vertex %d: %w", it.next, err)
		return false
	}
	v.Index = it.next
	it.current = v
	it.next++
	return true
}

// Vertex returns the vertex Next stopped on.
func (it *Iter) Vertex() Vertex {
	return it.current
}

// Err returns the first fault hit while iterating.
func (it *Iter) Err() error {
	return it.err
}

package datablock

import "sort"

// Element is one populated index of a sparse array.
type Element struct {
	Index int     `json:"index" yaml:"index"`
	Value float32 `json:"value" yaml:"value"`
}

// Array is an immutable snapshot of a sparse float array, ordered by index.
type Array struct {
	elems []Element
}

// Len returns the number of populated indices.
func (a Array) Len() int {
	return len(a.elems)
}

// At returns the value stored at index.
func (a Array) At(index int) (float32, bool) {
	i := sort.Search(len(a.elems), func(i int) bool { return a.elems[i].Index >= index })
	if i < len(a.elems) && a.elems[i].Index == index {
		return a.elems[i].Value, true
	}
	return 0, false
}

// Indices returns the populated indices in increasing order.
func (a Array) Indices() []int {
	out := make([]int, len(a.elems))
	for i, e := range a.elems {
		out[i] = e.Index
	}
	return out
}

// Values returns the values in index order.
func (a Array) Values() []float32 {
	out := make([]float32, len(a.elems))
	for i, e := range a.elems {
		out[i] = e.Value
	}
	return out
}

// Elements returns a copy of the populated elements in index order.
func (a Array) Elements() []Element {
	out := make([]Element, len(a.elems))
	copy(out, a.elems)
	return out
}

// ArrayBuilder stages the next contents of one array output. It always
// starts empty.
type ArrayBuilder struct {
	attr   string
	values map[int]float32
}

// Add stores value at index. Adding an index twice keeps the last value.
func (b *ArrayBuilder) Add(index int, value float32) {
	b.values[index] = value
}

// Len returns the number of staged indices.
func (b *ArrayBuilder) Len() int {
	return len(b.values)
}

func (b *ArrayBuilder) freeze() Array {
	elems := make([]Element, 0, len(b.values))
	for i, v := range b.values {
		elems = append(elems, Element{Index: i, Value: v})
	}
	sort.Slice(elems, func(i, j int) bool { return elems[i].Index < elems[j].Index })
	return Array{elems: elems}
}

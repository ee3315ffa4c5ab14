package schema

import (
	"errors"
	"fmt"

	"github.com/vk/colorgrid/internal/dag"
)

// Schema is the immutable attribute table of a node type.
type Schema struct {
	attrs   []*Attribute
	byLong  map[string]*Attribute
	byShort map[string]*Attribute
	affects *dag.Graph
}

// Attribute looks an attribute up by long or short name.
func (s *Schema) Attribute(name string) (Attribute, bool) {
	if a, ok := s.byLong[name]; ok {
		return *a, true
	}
	if a, ok := s.byShort[name]; ok {
		return *a, true
	}
	return Attribute{}, false
}

// Attributes returns every attribute in declaration order.
func (s *Schema) Attributes() []Attribute {
	out := make([]Attribute, len(s.attrs))
	for i, a := range s.attrs {
		out[i] = *a
	}
	return out
}

// Inputs returns the writable attributes in declaration order.
func (s *Schema) Inputs() []Attribute {
	var out []Attribute
	for _, a := range s.attrs {
		if !a.IsOutput() {
			out = append(out, *a)
		}
	}
	return out
}

// Outputs returns the computed attributes in declaration order.
func (s *Schema) Outputs() []Attribute {
	var out []Attribute
	for _, a := range s.attrs {
		if a.IsOutput() {
			out = append(out, *a)
		}
	}
	return out
}

// Affected returns the long names of every attribute whose value depends,
// directly or transitively, on the named attribute.
func (s *Schema) Affected(name string) []string {
	a, ok := s.Attribute(name)
	if !ok {
		return nil
	}
	down, err := s.affects.Downstream(a.Long)
	if err != nil {
		return nil
	}
	return down
}

// Builder accumulates attribute declarations. The first error is sticky and
// reported by Build.
type Builder struct {
	s   *Schema
	err error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{s: &Schema{
		byLong:  make(map[string]*Attribute),
		byShort: make(map[string]*Attribute),
		affects: dag.New(),
	}}
}

// Add declares an attribute.
func (b *Builder) Add(attr Attribute) error {
	if b.err != nil {
		return b.err
	}
	switch {
	case attr.Long == "" || attr.Short == "":
		return b.fail(fmt.Errorf("attribute %q: long and short names are required", attr.Long))
	case attr.Type != TypeMesh && attr.Type != TypeFloat:
		return b.fail(fmt.Errorf("attribute %q: unsupported type %s", attr.Long, attr.Type))
	case attr.UsesArrayBuilder && !attr.Array:
		return b.fail(fmt.Errorf("attribute %q: array builder requires an array attribute", attr.Long))
	}
	for _, name := range []string{attr.Long, attr.Short} {
		if _, ok := b.s.byLong[name]; ok {
			return b.fail(fmt.Errorf("attribute name %q already declared", name))
		}
		if _, ok := b.s.byShort[name]; ok {
			return b.fail(fmt.Errorf("attribute name %q already declared", name))
		}
	}

	a := attr
	b.s.attrs = append(b.s.attrs, &a)
	b.s.byLong[a.Long] = &a
	b.s.byShort[a.Short] = &a
	b.s.affects.AddNode(a.Long)
	return nil
}

// Affects declares that output's value depends on input.
func (b *Builder) Affects(input, output string) error {
	if b.err != nil {
		return b.err
	}
	in, ok := b.s.byLong[input]
	if !ok {
		return b.fail(fmt.Errorf("affects: unknown attribute %q", input))
	}
	out, ok := b.s.byLong[output]
	if !ok {
		return b.fail(fmt.Errorf("affects: unknown attribute %q", output))
	}
	if err := b.s.affects.AddEdge(in.Long, out.Long); err != nil {
		return b.fail(fmt.Errorf("affects: %w", err))
	}
	if err := b.s.affects.DetectCycles(); err != nil {
		return b.fail(fmt.Errorf("affects %s -> %s: %w", input, output, err))
	}
	return nil
}

// Build returns the finished Schema, or the first declaration error.
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.s.attrs) == 0 {
		return nil, errors.New("schema declares no attributes")
	}
	s := b.s
	b.s = nil
	b.err = errors.New("schema already built")
	return s, nil
}

func (b *Builder) fail(err error) error {
	b.err = err
	return err
}

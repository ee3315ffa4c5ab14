package datablock

import (
	"errors"
	"fmt"

	"github.com/vk/colorgrid/internal/mesh"
	"github.com/vk/colorgrid/internal/schema"
)

// ErrUnknownAttribute is returned for names the schema does not declare.
var ErrUnknownAttribute = errors.New("unknown attribute")

// Block stores the plug values of a single node instance.
type Block struct {
	schema *schema.Schema
	inputs map[string]any
	arrays map[string]Array
	dirty  map[string]bool
}

// New creates a Block for schema. Outputs start dirty so the first read
// triggers a compute; inputs start clean and unset.
func New(s *schema.Schema) *Block {
	b := &Block{
		schema: s,
		inputs: make(map[string]any),
		arrays: make(map[string]Array),
		dirty:  make(map[string]bool),
	}
	for _, a := range s.Outputs() {
		b.dirty[a.Long] = true
	}
	return b
}

// Schema returns the schema the block was built for.
func (b *Block) Schema() *schema.Schema {
	return b.schema
}

func (b *Block) lookup(name string) (schema.Attribute, error) {
	a, ok := b.schema.Attribute(name)
	if !ok {
		return schema.Attribute{}, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return a, nil
}

// SetInput stores the value of a writable attribute. It does not touch dirty
// state; dirty propagation belongs to the caller.
func (b *Block) SetInput(name string, value any) error {
	a, err := b.lookup(name)
	if err != nil {
		return err
	}
	if !a.Writable {
		return fmt.Errorf("attribute %q is not writable", a.Long)
	}
	if value == nil {
		delete(b.inputs, a.Long)
		return nil
	}
	b.inputs[a.Long] = value
	return nil
}

// InputValue returns a handle on an input's current value.
func (b *Block) InputValue(name string) (InputHandle, error) {
	a, err := b.lookup(name)
	if err != nil {
		return InputHandle{}, err
	}
	return InputHandle{value: b.inputs[a.Long]}, nil
}

// OutputArrayValue returns a handle for republishing an array output.
func (b *Block) OutputArrayValue(name string) (*ArrayHandle, error) {
	a, err := b.lookup(name)
	if err != nil {
		return nil, err
	}
	if !a.Array || !a.IsOutput() {
		return nil, fmt.Errorf("attribute %q is not an array output", a.Long)
	}
	return &ArrayHandle{block: b, attr: a.Long}, nil
}

// Array returns the last published contents of an array attribute.
func (b *Block) Array(name string) (Array, error) {
	a, err := b.lookup(name)
	if err != nil {
		return Array{}, err
	}
	if !a.Array {
		return Array{}, fmt.Errorf("attribute %q is not an array", a.Long)
	}
	return b.arrays[a.Long], nil
}

// IsDirty reports whether the attribute must be recomputed before reading.
// Unknown names report false.
func (b *Block) IsDirty(name string) bool {
	a, err := b.lookup(name)
	if err != nil {
		return false
	}
	return b.dirty[a.Long]
}

// SetDirty marks the plug's attribute dirty.
func (b *Block) SetDirty(p schema.Plug) error {
	a, err := b.lookup(p.Attr)
	if err != nil {
		return err
	}
	b.dirty[a.Long] = true
	return nil
}

// SetClean marks the plug's attribute clean.
func (b *Block) SetClean(p schema.Plug) error {
	a, err := b.lookup(p.Attr)
	if err != nil {
		return err
	}
	delete(b.dirty, a.Long)
	return nil
}

// InputHandle is a read-only view of an input value.
type InputHandle struct {
	value any
}

// AsMesh returns the mesh held by the input, or nil if none is connected or
// the value is not a mesh.
func (h InputHandle) AsMesh() mesh.Mesh {
	m, _ := h.value.(mesh.Mesh)
	return m
}

// IsSet reports whether the input holds a value.
func (h InputHandle) IsSet() bool {
	return h.value != nil
}

// ArrayHandle republishes one array output of a Block.
type ArrayHandle struct {
	block *Block
	attr  string
}

// Builder returns a new, empty builder for this output.
func (h *ArrayHandle) Builder() *ArrayBuilder {
	return &ArrayBuilder{attr: h.attr, values: make(map[int]float32)}
}

// Set replaces the output's contents with the builder's staged elements.
func (h *ArrayHandle) Set(builder *ArrayBuilder) error {
	if builder == nil {
		return errors.New("nil array builder")
	}
	if builder.attr != h.attr {
		return fmt.Errorf("builder for %q cannot be committed to %q", builder.attr, h.attr)
	}
	h.block.arrays[h.attr] = builder.freeze()
	return nil
}

// SetAllClean marks the output and every element of it clean.
func (h *ArrayHandle) SetAllClean() {
	delete(h.block.dirty, h.attr)
}

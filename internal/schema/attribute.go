package schema

import "fmt"

// Type is the data type carried by an attribute.
type Type int

const (
	// TypeMesh carries a mesh.Mesh resource.
	TypeMesh Type = iota + 1
	// TypeFloat carries 32-bit floats.
	TypeFloat
)

func (t Type) String() string {
	switch t {
	case TypeMesh:
		return "mesh"
	case TypeFloat:
		return "float"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Attribute declares one plug of a node type.
type Attribute struct {
	Long  string
	Short string
	Type  Type
	// Readable attributes may be connected from and queried.
	Readable bool
	// Writable attributes accept incoming connections or values.
	Writable bool
	// Array attributes hold sparse index -> value elements.
	Array bool
	// UsesArrayBuilder marks array outputs that are republished whole from a
	// builder during compute.
	UsesArrayBuilder bool
	// Default is the element value reported for unset scalar plugs.
	Default float32
}

// IsOutput reports whether the attribute is computed by the node rather than
// set from outside.
func (a *Attribute) IsOutput() bool {
	return !a.Writable
}

// Plug addresses an attribute on a node instance. Index is -1 for the whole
// attribute, or an element index for array attributes.
type Plug struct {
	Attr  string
	Index int
}

// WholePlug addresses the whole attribute.
func WholePlug(attr string) Plug {
	return Plug{Attr: attr, Index: -1}
}

// ElementPlug addresses one element of an array attribute.
func ElementPlug(attr string, index int) Plug {
	return Plug{Attr: attr, Index: index}
}

// String renders the plug as attr or attr[index].
func (p Plug) String() string {
	if p.Index < 0 {
		return p.Attr
	}
	return fmt.Sprintf("%s[%d]", p.Attr, p.Index)
}

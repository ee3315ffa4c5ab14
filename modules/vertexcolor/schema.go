package vertexcolor

import (
	"fmt"

	"github.com/vk/colorgrid/internal/colorspace"
	"github.com/vk/colorgrid/internal/schema"
)

// Component is one output channel of the node.
type Component int

const (
	Red Component = iota
	Green
	Blue
	Alpha
	Hue
	Saturation
	Value
	componentCount
)

var componentNames = [componentCount]string{
	"red", "green", "blue", "alpha", "hue", "saturation", "value",
}

// Components returns every channel in publication order.
func Components() []Component {
	out := make([]Component, componentCount)
	for i := range out {
		out[i] = Component(i)
	}
	return out
}

// String returns the component name, e.g. "hue".
func (c Component) String() string {
	if c < 0 || c >= componentCount {
		return fmt.Sprintf("Component(%d)", int(c))
	}
	return componentNames[c]
}

// LongName is the output attribute name, e.g. "hueMulti".
func (c Component) LongName() string {
	return c.String() + "Multi"
}

// ShortName is the output attribute short name, e.g. "hm".
func (c Component) ShortName() string {
	return c.String()[:1] + "m"
}

// sample picks this component out of a color and its HSV form.
func (c Component) sample(rgba colorspace.RGBA, hsv colorspace.HSV) float32 {
	switch c {
	case Red:
		return rgba.R
	case Green:
		return rgba.G
	case Blue:
		return rgba.B
	case Alpha:
		return rgba.A
	case Hue:
		return hsv.H
	case Saturation:
		return hsv.S
	default:
		return hsv.V
	}
}

// recomputeGroup maps every output attribute name, long and short, to its
// component. Membership decides whether Compute handles a plug.
var recomputeGroup = func() map[string]Component {
	m := make(map[string]Component, 2*componentCount)
	for _, c := range Components() {
		m[c.LongName()] = c
		m[c.ShortName()] = c
	}
	return m
}()

// InGroup reports whether the attribute is one of the node's outputs.
func InGroup(attr string) bool {
	_, ok := recomputeGroup[attr]
	return ok
}

// Initialize declares the node's attributes.
func Initialize(b *schema.Builder) error {
	if err := b.Add(schema.Attribute{
		Long:     MeshAttr,
		Short:    MeshShortAttr,
		Type:     schema.TypeMesh,
		Readable: false,
		Writable: true,
	}); err != nil {
		return err
	}

	for _, c := range Components() {
		if err := b.Add(schema.Attribute{
			Long:             c.LongName(),
			Short:            c.ShortName(),
			Type:             schema.TypeFloat,
			Readable:         true,
			Writable:         false,
			Array:            true,
			UsesArrayBuilder: true,
			Default:          0,
		}); err != nil {
			return fmt.Errorf("%s output: %w", c, err)
		}
		if err := b.Affects(MeshAttr, c.LongName()); err != nil {
			return err
		}
	}
	return nil
}

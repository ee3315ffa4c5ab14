package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/colorgrid/internal/colorspace"
	"github.com/vk/colorgrid/internal/config"
)

func TestSameTopology(t *testing.T) {
	base := func() *config.Scene {
		return &config.Scene{
			Meshes: []*config.Mesh{{Name: "a"}, {Name: "b"}},
			Nodes:  []*config.Node{{Type: "t", Name: "n", Mesh: "a"}},
		}
	}

	assert.True(t, sameTopology(base(), base()))

	moved := base()
	moved.Nodes[0].Mesh = "b"
	assert.False(t, sameTopology(base(), moved))

	renamed := base()
	renamed.Meshes[1].Name = "c"
	assert.False(t, sameTopology(base(), renamed))

	extra := base()
	extra.Nodes = append(extra.Nodes, &config.Node{Type: "t", Name: "m"})
	assert.False(t, sameTopology(base(), extra))
}

func TestSameColors(t *testing.T) {
	red := &colorspace.RGBA{R: 1, A: 1}
	a := &config.Mesh{Name: "a", Colors: []*colorspace.RGBA{red, nil}}

	assert.True(t, sameColors(a, &config.Mesh{Colors: []*colorspace.RGBA{{R: 1, A: 1}, nil}}))
	assert.False(t, sameColors(a, &config.Mesh{Colors: []*colorspace.RGBA{nil, nil}}))
	assert.False(t, sameColors(a, &config.Mesh{Colors: []*colorspace.RGBA{{R: 0.5, A: 1}, nil}}))
	assert.False(t, sameColors(a, &config.Mesh{Colors: []*colorspace.RGBA{red}}))
	assert.False(t, sameColors(nil, a))
}

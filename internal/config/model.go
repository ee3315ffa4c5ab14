package config

import (
	"errors"
	"fmt"

	"github.com/vk/colorgrid/internal/colorspace"
	"github.com/vk/colorgrid/internal/plugaddr"
)

// ErrInvalidScene is wrapped by every Validate failure.
var ErrInvalidScene = errors.New("invalid scene")

// Scene is the unified, format-agnostic representation of a scene.
type Scene struct {
	Meshes  []*Mesh
	Nodes   []*Node
	Queries []string
	// Files lists the source files the scene was read from.
	Files []string
}

// Mesh is a named mesh source. A nil color is a vertex without color.
type Mesh struct {
	Name   string
	Colors []*colorspace.RGBA
}

// Node is one node instance and the mesh connected to its input.
type Node struct {
	Type string
	Name string
	// Mesh is empty when the input is left unconnected.
	Mesh string
}

// Mesh returns the named mesh source, or nil.
func (s *Scene) Mesh(name string) *Mesh {
	for _, m := range s.Meshes {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Addresses parses the queries. No queries yields nil.
func (s *Scene) Addresses() ([]plugaddr.Address, error) {
	if len(s.Queries) == 0 {
		return nil, nil
	}
	out := make([]plugaddr.Address, 0, len(s.Queries))
	for _, q := range s.Queries {
		a, err := plugaddr.Parse(q)
		if err != nil {
			return nil, fmt.Errorf("%w: query %q: %w", ErrInvalidScene, q, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Validate checks names are unique, colors are in range, mesh references
// resolve and queries parse.
func (s *Scene) Validate() error {
	meshes := make(map[string]struct{}, len(s.Meshes))
	for _, m := range s.Meshes {
		if m.Name == "" {
			return fmt.Errorf("%w: mesh with empty name", ErrInvalidScene)
		}
		if _, dup := meshes[m.Name]; dup {
			return fmt.Errorf("%w: duplicate mesh %q", ErrInvalidScene, m.Name)
		}
		meshes[m.Name] = struct{}{}
		for i, c := range m.Colors {
			if c != nil && !c.Valid() {
				return fmt.Errorf("%w: mesh %q vertex %d: color components must be in [0,1]", ErrInvalidScene, m.Name, i)
			}
		}
	}

	nodes := make(map[string]struct{}, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.Name == "" || n.Type == "" {
			return fmt.Errorf("%w: node needs a type and a name", ErrInvalidScene)
		}
		if _, dup := nodes[n.Name]; dup {
			return fmt.Errorf("%w: duplicate node %q", ErrInvalidScene, n.Name)
		}
		nodes[n.Name] = struct{}{}
		if n.Mesh != "" {
			if _, ok := meshes[n.Mesh]; !ok {
				return fmt.Errorf("%w: node %q references unknown mesh %q", ErrInvalidScene, n.Name, n.Mesh)
			}
		}
	}

	_, err := s.Addresses()
	return err
}

package app

import (
	"context"
	"fmt"

	"github.com/vk/colorgrid/internal/config"
	"github.com/vk/colorgrid/internal/ctxlog"
	"github.com/vk/colorgrid/internal/graph"
	"github.com/vk/colorgrid/internal/mesh"
	"github.com/vk/colorgrid/internal/registry"
	"github.com/vk/colorgrid/internal/schema"
)

// buildGraph creates every mesh source and node of the scene and connects
// each node's mesh input.
func buildGraph(ctx context.Context, reg *registry.Registry, scene *config.Scene) (*graph.Graph, error) {
	g := graph.New(reg)
	for _, m := range scene.Meshes {
		if err := g.AddMesh(m.Name, mesh.New(m.Colors)); err != nil {
			return nil, err
		}
	}
	for _, n := range scene.Nodes {
		if err := g.AddNode(ctx, n.Name, n.Type); err != nil {
			return nil, err
		}
		if n.Mesh == "" {
			continue
		}
		attr, err := meshInput(g, n.Name)
		if err != nil {
			return nil, err
		}
		if err := g.Connect(ctx, n.Mesh, n.Name, attr); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// meshInput returns the first writable mesh attribute of a node.
func meshInput(g *graph.Graph, nodeName string) (string, error) {
	s, err := g.Schema(nodeName)
	if err != nil {
		return "", err
	}
	for _, a := range s.Inputs() {
		if a.Type == schema.TypeMesh {
			return a.Long, nil
		}
	}
	return "", fmt.Errorf("node %q has no mesh input", nodeName)
}

// applyScene moves the app to a freshly loaded scene. When only mesh colors
// changed the existing graph is kept and the changed sources are replaced,
// so only dependent nodes recompute; otherwise the graph is rebuilt.
func (a *App) applyScene(ctx context.Context, next *config.Scene) error {
	logger := ctxlog.FromContext(ctx)

	if !sameTopology(a.scene, next) {
		g, err := buildGraph(ctx, a.registry, next)
		if err != nil {
			return fmt.Errorf("failed to rebuild graph: %w", err)
		}
		a.graph, a.scene = g, next
		logger.Info("Scene structure changed, graph rebuilt.", "meshes", len(next.Meshes), "nodes", len(next.Nodes))
		return nil
	}

	changed := 0
	for _, m := range next.Meshes {
		if sameColors(a.scene.Mesh(m.Name), m) {
			continue
		}
		if err := a.graph.SetMesh(ctx, m.Name, mesh.New(m.Colors)); err != nil {
			return err
		}
		changed++
	}
	a.scene = next
	logger.Info("Scene reloaded.", "meshes_changed", changed)
	return nil
}

func sameTopology(a, b *config.Scene) bool {
	if len(a.Meshes) != len(b.Meshes) || len(a.Nodes) != len(b.Nodes) {
		return false
	}
	for _, m := range b.Meshes {
		if a.Mesh(m.Name) == nil {
			return false
		}
	}
	nodes := make(map[string]config.Node, len(a.Nodes))
	for _, n := range a.Nodes {
		nodes[n.Name] = *n
	}
	for _, n := range b.Nodes {
		if prev, ok := nodes[n.Name]; !ok || prev != *n {
			return false
		}
	}
	return true
}

func sameColors(a, b *config.Mesh) bool {
	if a == nil || b == nil || len(a.Colors) != len(b.Colors) {
		return false
	}
	for i := range a.Colors {
		ca, cb := a.Colors[i], b.Colors[i]
		if (ca == nil) != (cb == nil) {
			return false
		}
		if ca != nil && *ca != *cb {
			return false
		}
	}
	return true
}

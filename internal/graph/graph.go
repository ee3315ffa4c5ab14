package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vk/colorgrid/internal/ctxlog"
	"github.com/vk/colorgrid/internal/dag"
	"github.com/vk/colorgrid/internal/datablock"
	"github.com/vk/colorgrid/internal/mesh"
	"github.com/vk/colorgrid/internal/node"
	"github.com/vk/colorgrid/internal/plugaddr"
	"github.com/vk/colorgrid/internal/registry"
	"github.com/vk/colorgrid/internal/schema"
)

var (
	// ErrNotHandled is returned when a node declines to compute a plug.
	ErrNotHandled = errors.New("plug not handled by node")
	// ErrNoElement is returned when an indexed plug names an unpopulated element.
	ErrNoElement = errors.New("array element not populated")
	// ErrUnknownNode is returned for node names not in the graph.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownMesh is returned for mesh source names not in the graph.
	ErrUnknownMesh = errors.New("unknown mesh")
)

// Graph is a set of mesh sources and node instances with lazy evaluation.
type Graph struct {
	reg *registry.Registry

	mu     sync.RWMutex
	meshes map[string]mesh.Mesh
	nodes  map[string]*instance
	links  *dag.Graph
}

// instance is one node of the graph and its storage.
type instance struct {
	name string
	typ  *registry.NodeType
	impl node.Node

	// mu serializes every access to data, including Compute.
	mu          sync.Mutex
	data        *datablock.Block
	sources     map[string]string // input attribute -> mesh name
	evaluations int
}

// New creates an empty graph whose node types come from reg.
func New(reg *registry.Registry) *Graph {
	return &Graph{
		reg:    reg,
		meshes: make(map[string]mesh.Mesh),
		nodes:  make(map[string]*instance),
		links:  dag.New(),
	}
}

func meshID(name string) string { return "mesh." + name }
func nodeID(name string) string { return "node." + name }

// AddMesh adds a named mesh source.
func (g *Graph) AddMesh(name string, m mesh.Mesh) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.meshes[name]; exists {
		return fmt.Errorf("mesh %q already exists", name)
	}
	g.meshes[name] = m
	g.links.AddNode(meshID(name))
	return nil
}

// SetMesh replaces a mesh source and dirties every input connected to it.
func (g *Graph) SetMesh(ctx context.Context, name string, m mesh.Mesh) error {
	g.mu.Lock()
	if _, exists := g.meshes[name]; !exists {
		g.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownMesh, name)
	}
	g.meshes[name] = m
	downstream, err := g.links.Dependents(meshID(name))
	var targets []*instance
	for _, id := range downstream {
		if inst, ok := g.nodes[strings.TrimPrefix(id, "node.")]; ok {
			targets = append(targets, inst)
		}
	}
	g.mu.Unlock()
	if err != nil {
		return err
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Mesh source replaced.", "mesh", name, "vertices", vertexCount(m), "dependents", len(targets))
	for _, inst := range targets {
		inst.mu.Lock()
		for attr, src := range inst.sources {
			if src != name {
				continue
			}
			if err := inst.setInput(ctx, attr, m); err != nil {
				inst.mu.Unlock()
				return err
			}
		}
		inst.mu.Unlock()
	}
	return nil
}

// AddNode creates an instance of the named node type.
func (g *Graph) AddNode(ctx context.Context, name, typeName string) error {
	nt, err := g.reg.NodeType(typeName)
	if err != nil {
		return fmt.Errorf("node %q: %w", name, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[name]; exists {
		return fmt.Errorf("node %q already exists", name)
	}
	g.nodes[name] = &instance{
		name:    name,
		typ:     nt,
		impl:    nt.Factory(),
		data:    datablock.New(nt.Schema),
		sources: make(map[string]string),
	}
	g.links.AddNode(nodeID(name))
	ctxlog.FromContext(ctx).Debug("Node created.", "node", name, "type", typeName)
	return nil
}

// Connect binds a mesh source to a mesh input of a node.
func (g *Graph) Connect(ctx context.Context, meshName, nodeName, attr string) error {
	g.mu.Lock()
	m, ok := g.meshes[meshName]
	if !ok {
		g.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownMesh, meshName)
	}
	inst, ok := g.nodes[nodeName]
	if !ok {
		g.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownNode, nodeName)
	}
	a, ok := inst.typ.Schema.Attribute(attr)
	if !ok || a.Type != schema.TypeMesh || !a.Writable {
		g.mu.Unlock()
		return fmt.Errorf("node %q has no writable mesh input %q", nodeName, attr)
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()
	if prev, ok := inst.sources[a.Long]; ok && prev != meshName {
		if !inst.usesSourceOtherThan(prev, a.Long) {
			g.links.RemoveEdge(meshID(prev), nodeID(nodeName))
		}
	}
	err := g.links.AddEdge(meshID(meshName), nodeID(nodeName))
	g.mu.Unlock()
	if err != nil {
		return err
	}
	inst.sources[a.Long] = meshName

	ctxlog.FromContext(ctx).Debug("Connected mesh.", "mesh", meshName, "node", nodeName, "attr", a.Long)
	return inst.setInput(ctx, a.Long, m)
}

// Disconnect clears a mesh input of a node.
func (g *Graph) Disconnect(ctx context.Context, nodeName, attr string) error {
	g.mu.Lock()
	inst, ok := g.nodes[nodeName]
	if !ok {
		g.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownNode, nodeName)
	}
	a, ok := inst.typ.Schema.Attribute(attr)
	if !ok {
		g.mu.Unlock()
		return fmt.Errorf("node %q: %w: %q", nodeName, datablock.ErrUnknownAttribute, attr)
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()
	prev, connected := inst.sources[a.Long]
	if connected {
		delete(inst.sources, a.Long)
		if !inst.usesSourceOtherThan(prev, "") {
			g.links.RemoveEdge(meshID(prev), nodeID(nodeName))
		}
	}
	g.mu.Unlock()
	if !connected {
		return nil
	}
	return inst.setInput(ctx, a.Long, nil)
}

// usesSourceOtherThan reports whether the mesh feeds any input besides skip.
func (inst *instance) usesSourceOtherThan(meshName, skip string) bool {
	for attr, src := range inst.sources {
		if attr != skip && src == meshName {
			return true
		}
	}
	return false
}

// setInput stores an input value and dirties it and everything it affects.
// The caller holds inst.mu.
func (inst *instance) setInput(ctx context.Context, attr string, value any) error {
	if err := inst.data.SetInput(attr, value); err != nil {
		return fmt.Errorf("node %q: %w", inst.name, err)
	}
	if err := inst.data.SetDirty(schema.WholePlug(attr)); err != nil {
		return err
	}
	affected := inst.typ.Schema.Affected(attr)
	for _, out := range affected {
		if err := inst.data.SetDirty(schema.WholePlug(out)); err != nil {
			return err
		}
	}
	ctxlog.FromContext(ctx).Debug("Input changed, outputs marked dirty.", "node", inst.name, "attr", attr, "dirtied", len(affected))
	return nil
}

// Value reads a plug, recomputing it first if it is dirty. A whole-array
// address returns every element; an indexed address returns one element.
func (g *Graph) Value(ctx context.Context, addr plugaddr.Address) ([]datablock.Element, error) {
	inst, err := g.instance(addr.Node)
	if err != nil {
		return nil, err
	}
	a, ok := inst.typ.Schema.Attribute(addr.Attr)
	if !ok {
		return nil, fmt.Errorf("%s: %w", addr, datablock.ErrUnknownAttribute)
	}
	if !a.Readable || !a.Array {
		return nil, fmt.Errorf("%s: attribute is not a readable array", addr)
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	if inst.data.IsDirty(a.Long) {
		if err := inst.compute(ctx, addr.Plug()); err != nil {
			return nil, fmt.Errorf("%s: %w", addr, err)
		}
	}

	arr, err := inst.data.Array(a.Long)
	if err != nil {
		return nil, err
	}
	if !addr.HasIndex() {
		return arr.Elements(), nil
	}
	v, ok := arr.At(addr.Index)
	if !ok {
		return nil, fmt.Errorf("%s: %w", addr, ErrNoElement)
	}
	return []datablock.Element{{Index: addr.Index, Value: v}}, nil
}

// compute runs the node for plug. The caller holds inst.mu.
func (inst *instance) compute(ctx context.Context, plug schema.Plug) error {
	logger := ctxlog.FromContext(ctx).With("node", inst.name, "plug", plug.String())
	logger.Debug("Plug is dirty, requesting compute.")

	status, err := inst.impl.Compute(ctxlog.WithLogger(ctx, logger), plug, inst.data)
	if err != nil {
		logger.Warn("Compute failed, outputs stay dirty.", "error", err)
		return err
	}
	if status != node.Handled {
		return ErrNotHandled
	}
	inst.evaluations++
	return nil
}

// IsDirty reports whether a plug will recompute on its next read.
func (g *Graph) IsDirty(addr plugaddr.Address) (bool, error) {
	inst, err := g.instance(addr.Node)
	if err != nil {
		return false, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.data.IsDirty(addr.Attr), nil
}

// Evaluations returns how many computes the node has completed.
func (g *Graph) Evaluations(nodeName string) int {
	inst, err := g.instance(nodeName)
	if err != nil {
		return 0
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.evaluations
}

// Nodes returns the node names in sorted order.
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns the attribute schema of a node.
func (g *Graph) Schema(nodeName string) (*schema.Schema, error) {
	inst, err := g.instance(nodeName)
	if err != nil {
		return nil, err
	}
	return inst.typ.Schema, nil
}

// Outputs returns the addresses of every readable array output of a node.
func (g *Graph) Outputs(nodeName string) ([]plugaddr.Address, error) {
	s, err := g.Schema(nodeName)
	if err != nil {
		return nil, err
	}
	var out []plugaddr.Address
	for _, a := range s.Outputs() {
		if a.Readable && a.Array {
			out = append(out, plugaddr.New(nodeName, a.Long))
		}
	}
	return out, nil
}

func (g *Graph) instance(name string) (*instance, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	inst, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return inst, nil
}

func vertexCount(m mesh.Mesh) int {
	if m == nil {
		return 0
	}
	return m.VertexCount()
}

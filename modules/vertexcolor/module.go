package vertexcolor

import (
	"fmt"

	"github.com/vk/colorgrid/internal/registry"
)

const (
	// NodeName and TypeID identify the node type in saved scenes. Do not change them.
	NodeName = "pmVertexColorComponents"
	TypeID   = registry.TypeID(0x83201)

	MeshAttr      = "mesh"
	MeshShortAttr = "me"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the node type.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.RegisterNodeType(NodeName, TypeID, New, Initialize); err != nil {
		return fmt.Errorf("failed to register node: %s: %w", NodeName, err)
	}
	return nil
}

// Deregister removes the node type.
func (m *Module) Deregister(r *registry.Registry) error {
	if err := r.DeregisterNodeType(TypeID); err != nil {
		return fmt.Errorf("failed to deregister node: %s: %w", NodeName, err)
	}
	return nil
}

package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/vk/colorgrid/internal/node"
	"github.com/vk/colorgrid/internal/schema"
)

var (
	// ErrDuplicateType is returned when a name or type ID is already registered.
	ErrDuplicateType = errors.New("node type already registered")
	// ErrUnknownType is returned for names or IDs that are not registered.
	ErrUnknownType = errors.New("unknown node type")
)

// TypeID is a process-unique numeric node type identifier.
type TypeID uint32

func (id TypeID) String() string {
	return fmt.Sprintf("0x%x", uint32(id))
}

// Module is the interface that all node modules must implement to be registered.
type Module interface {
	Register(r *Registry) error
	Deregister(r *Registry) error
}

// NodeType is a registered node type.
type NodeType struct {
	Name    string
	ID      TypeID
	Factory node.Factory
	Schema  *schema.Schema
}

// Registry holds the node types known to a single application instance.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*NodeType
	byID   map[TypeID]*NodeType
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		byName: make(map[string]*NodeType),
		byID:   make(map[TypeID]*NodeType),
	}
}

// RegisterNodeType runs init to build the type's schema and records the type.
func (r *Registry) RegisterNodeType(name string, id TypeID, factory node.Factory, initialize node.Initializer) error {
	switch {
	case name == "":
		return errors.New("node type name must not be empty")
	case id == 0:
		return fmt.Errorf("node type %q: type ID must not be zero", name)
	case factory == nil:
		return fmt.Errorf("node type %q: factory must not be nil", name)
	case initialize == nil:
		return fmt.Errorf("node type %q: initializer must not be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: name %q", ErrDuplicateType, name)
	}
	if existing, exists := r.byID[id]; exists {
		return fmt.Errorf("%w: id %s is used by %q", ErrDuplicateType, id, existing.Name)
	}

	b := schema.NewBuilder()
	if err := initialize(b); err != nil {
		return fmt.Errorf("node type %q: initialize: %w", name, err)
	}
	s, err := b.Build()
	if err != nil {
		return fmt.Errorf("node type %q: %w", name, err)
	}

	nt := &NodeType{Name: name, ID: id, Factory: factory, Schema: s}
	r.byName[name] = nt
	r.byID[id] = nt
	slog.Debug("Registered node type.", "name", name, "id", id.String(), "attributes", len(s.Attributes()))
	return nil
}

// DeregisterNodeType removes the type with the given ID.
func (r *Registry) DeregisterNodeType(id TypeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	nt, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: id %s", ErrUnknownType, id)
	}
	delete(r.byID, id)
	delete(r.byName, nt.Name)
	slog.Debug("Deregistered node type.", "name", nt.Name, "id", id.String())
	return nil
}

// NodeType looks a type up by name.
func (r *Registry) NodeType(name string) (*NodeType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nt, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return nt, nil
}

// NodeTypes returns the registered type names in sorted order.
func (r *Registry) NodeTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

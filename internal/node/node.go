// Package node defines the contract between the graph runtime and the node
// types it hosts.
package node

import (
	"context"

	"github.com/vk/colorgrid/internal/datablock"
	"github.com/vk/colorgrid/internal/schema"
)

// Status is the outcome of a compute request.
type Status int

const (
	// NotHandled means the node does not compute the requested plug. It has no
	// side effects and lets the host try another handler.
	NotHandled Status = iota
	// Handled means the node recomputed the plug and published its value.
	Handled
)

func (s Status) String() string {
	if s == Handled {
		return "handled"
	}
	return "not handled"
}

// Node is one instance of a registered node type.
type Node interface {
	// Compute is called by the host when a dirty output plug is read. It runs
	// to completion on the caller's goroutine. The host never calls Compute
	// concurrently for the same instance.
	Compute(ctx context.Context, plug schema.Plug, data *datablock.Block) (Status, error)
}

// Factory creates a new instance of a node type.
type Factory func() Node

// Initializer declares a node type's attributes. It runs once per type, at
// registration.
type Initializer func(b *schema.Builder) error

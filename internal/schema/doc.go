// Package schema describes the attribute interface of a node type: which
// plugs exist, their element types and flags, and which inputs affect which
// outputs.
//
// A Schema is assembled once per node type through a Builder when the type is
// registered, and is immutable afterwards. Every instance of the type shares
// the same Schema value.
package schema

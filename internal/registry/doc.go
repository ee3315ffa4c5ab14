// Package registry maps node type names and numeric type IDs to the factory
// and attribute schema that implement them.
//
// Modules register their node types when the application starts and
// deregister them when it shuts down. Type names and IDs are stable
// identifiers: scenes refer to types by name, so changing them breaks saved
// scenes.
package registry

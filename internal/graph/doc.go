// Package graph is the host runtime that evaluates node instances lazily.
//
// # Model
//
// A Graph holds named mesh sources and named node instances. Each instance is
// created from a registry.NodeType factory and owns a datablock.Block built
// from the type's shared schema. Connections bind a mesh source to a
// mesh-typed input of an instance; they are recorded as edges in a dag.Graph
// so that replacing a source can find every instance downstream of it.
//
// # Dirty propagation
//
// Setting an input (by connecting, disconnecting or replacing the upstream
// mesh) marks the input dirty and marks every output the schema declares as
// affected by it dirty. Nothing is recomputed at that point.
//
// # Pull evaluation
//
// Reading an output plug that is dirty calls the instance's Compute for that
// plug. A node that declines (node.NotHandled) surfaces as ErrNotHandled; a
// node that fails leaves its plugs dirty so the next read retries. Reading a
// clean plug returns the cached contents without calling Compute.
//
// # Concurrency
//
// Compute is never called concurrently for one instance: each instance
// carries its own mutex. EvaluateAll pulls many plugs with a worker pool, so
// distinct instances may compute in parallel.
package graph

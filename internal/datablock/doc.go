// Package datablock is the per-instance storage behind a node's plugs.
//
// A Block holds the current input values, the last published contents of
// every array output, and one dirty bit per attribute. Array outputs are
// never patched in place: a compute acquires a fresh ArrayBuilder, fills it,
// and commits it with ArrayHandle.Set, which replaces the visible contents
// wholesale.
//
// A Block is not safe for concurrent use. The graph runtime serializes access
// per node instance.
package datablock

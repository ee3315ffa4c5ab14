// Package mesh defines the read-only mesh resource consumed by graph nodes:
// a vertex count plus per-vertex color lookups, walked with Iter.
//
// Meshes are borrowed by a node for the duration of one compute call and are
// never mutated by consumers.
package mesh

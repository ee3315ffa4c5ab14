// Package dag is a small, concurrency-safe directed graph keyed by string IDs.
//
// It backs two relationships in colorgrid: the "affects" edges between a node
// type's attributes (an input dirtying its outputs) and the connections from
// mesh sources to node instances in a scene. Edges point from the upstream
// vertex to the vertex that depends on it.
package dag

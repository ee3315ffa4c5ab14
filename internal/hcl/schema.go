package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Meshes []*meshBlock `hcl:"mesh,block"`
	Nodes  []*nodeBlock `hcl:"node,block"`
	Query  *[]string    `hcl:"query,optional"`
}

// meshBlock is a `mesh "<name>" { colors = [...] }` block.
type meshBlock struct {
	Name   string         `hcl:"name,label"`
	Colors hcl.Expression `hcl:"colors,optional"`
}

// nodeBlock is a `node "<type>" "<name>" { mesh = "<mesh>" }` block.
type nodeBlock struct {
	Type string  `hcl:"type,label"`
	Name string  `hcl:"name,label"`
	Mesh *string `hcl:"mesh,optional"`
}

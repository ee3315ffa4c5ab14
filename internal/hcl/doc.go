// Package hcl provides the concrete HCL implementation of the `config.Loader`
// interface. It is responsible for file discovery, parsing, translation of
// HCL blocks into the scene model and cty-to-Go decoding of color values.
package hcl

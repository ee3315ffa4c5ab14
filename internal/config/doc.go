// Package config defines the format-agnostic scene model (mesh sources, node
// instances and the plugs to query) along with the Loader interface that
// format-specific packages implement.
//
// The `config.Scene` is the single source of truth the app uses to build the
// evaluation graph. The HCL implementation lives in the `hcl` package.
package config

package config

import "context"

// Loader is the interface for a format-specific scene loader.
type Loader interface {
	// Load reads every scene file reachable from paths and merges them into
	// one validated Scene.
	Load(ctx context.Context, paths ...string) (*Scene, error)
}

package hcl

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/colorgrid/internal/config"
	"github.com/vk/colorgrid/internal/ctxlog"
	"github.com/vk/colorgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL scene loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and merges their blocks into one
// scene. Blocks may be split across files in any way; the merged scene is
// validated as a whole.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Scene, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	scene := &config.Scene{Files: files}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, mb := range root.Meshes {
			m, err := translateMesh(ctx, mb)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			scene.Meshes = append(scene.Meshes, m)
		}
		for _, nb := range root.Nodes {
			scene.Nodes = append(scene.Nodes, translateNode(nb))
		}
		if root.Query != nil {
			scene.Queries = append(scene.Queries, *root.Query...)
		}
	}

	if err := scene.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "meshes", len(scene.Meshes), "nodes", len(scene.Nodes), "queries", len(scene.Queries))
	return scene, nil
}

// findAllHCLFiles expands directories and returns a sorted, de-duplicated
// list of scene files. A path naming a file is taken as-is.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var all []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	sort.Strings(all)
	return all, nil
}

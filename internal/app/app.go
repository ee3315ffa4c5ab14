package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/colorgrid/internal/config"
	"github.com/vk/colorgrid/internal/ctxlog"
	"github.com/vk/colorgrid/internal/graph"
	"github.com/vk/colorgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *registry.Registry
	modules  []registry.Module

	scene *config.Scene
	graph *graph.Graph

	httpServer *http.Server
	dial       dialFunc
	publisher  Publisher
}

// NewApp is the constructor for the main application. Reports are written to
// outW and logs to logW. It returns a fully initialized App instance with
// its own isolated logger, registry and graph, and panics when the scene
// cannot be loaded or a module fails to register.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	scene, err := loader.Load(ctx, appConfig.ScenePath)
	if err != nil {
		// A failure to load the scene is a fatal startup error.
		panic(fmt.Errorf("failed to load scene: %w", err))
	}
	logger.Debug("Scene loaded and translated into unified model.", "files", len(scene.Files))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		if err := mod.Register(reg); err != nil {
			panic(err)
		}
	}
	logger.Debug("All node modules registered.", "count", len(modules), "types", reg.NodeTypes())

	g, err := buildGraph(ctx, reg, scene)
	if err != nil {
		panic(fmt.Errorf("failed to build graph: %w", err))
	}
	logger.Debug("Graph built.", "meshes", len(scene.Meshes), "nodes", len(scene.Nodes))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		loader:   loader,
		registry: reg,
		modules:  modules,
		scene:    scene,
		graph:    g,
		dial:     dialSocketIO,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Graph returns the current evaluation graph. This is primarily for testing.
func (a *App) Graph() *graph.Graph {
	return a.graph
}

// Close stops background services and deregisters every module. It keeps
// going after a failure and returns all errors joined.
func (a *App) Close(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	var errs []error

	if err := a.closeHealthCheckServer(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
		}
		a.publisher = nil
	}
	for i := len(a.modules) - 1; i >= 0; i-- {
		if err := a.modules[i].Deregister(a.registry); err != nil {
			a.logger.Warn("Module deregistration failed.", "error", err)
			errs = append(errs, err)
		}
	}
	a.logger.Debug("App closed.", "errors", len(errs))
	return errors.Join(errs...)
}

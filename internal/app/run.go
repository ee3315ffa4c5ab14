package app

import (
	"context"
	"fmt"

	"github.com/vk/colorgrid/internal/ctxlog"
	"github.com/vk/colorgrid/internal/publish"
	"github.com/vk/colorgrid/internal/report"
)

// Run evaluates the scene's queries, writes the report and, when configured,
// publishes it. In watch mode it then keeps re-evaluating on every scene
// change until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthCheckServer(ctx, a.config.HealthcheckPort)
	}

	if a.config.PublishURL != "" && a.publisher == nil {
		p, err := a.dial(ctx, publish.Options{URL: a.config.PublishURL})
		if err != nil {
			return fmt.Errorf("failed to connect publisher: %w", err)
		}
		a.publisher = p
	}

	a.logger.Info("🚀 Evaluating scene...", "nodes", len(a.scene.Nodes), "queries", len(a.scene.Queries))
	err := a.evaluate(ctx)
	if !a.config.Watch {
		a.logger.Debug("App.Run method finished.")
		return err
	}
	if err != nil {
		a.logger.Error("Evaluation failed, waiting for scene changes.", "error", err)
	}
	return a.watch(ctx)
}

// evaluate reads every queried plug, writes the report and publishes it.
// Plugs that fail are left out of the report and returned as one error.
func (a *App) evaluate(ctx context.Context) error {
	addrs, err := a.scene.Addresses()
	if err != nil {
		return err
	}

	results, evalErr := a.graph.EvaluateAll(ctx, addrs, a.config.WorkerCount)
	rep := report.FromGraph(results)
	if err := report.Write(a.outW, a.config.OutputFormat, rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, rep); err != nil {
			a.logger.Warn("Publishing results failed.", "error", err)
		}
	}

	if evalErr != nil {
		return fmt.Errorf("evaluation failed: %w", evalErr)
	}
	a.logger.Info("🏁 Evaluation finished.", "plugs", len(rep))
	return nil
}

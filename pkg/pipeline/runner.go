package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkoster/circuitry/pkg/circuit"
	"github.com/mkoster/circuitry/pkg/diagram"
	"github.com/mkoster/circuitry/pkg/observability"
	"github.com/mkoster/circuitry/pkg/store"
)

// Runner encapsulates pipeline execution. Both CLI and API use this to keep
// behavior identical across entry points.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete build → evaluate → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}
	hooks := observability.Pipeline()

	// Stage 1: Build
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, opts.Network, opts.Wires)
	c, err := Build(opts)
	result.Stats.BuildTime = time.Since(buildStart)
	gates := 0
	if c != nil {
		gates = countGates(c)
	}
	hooks.OnBuildComplete(ctx, opts.Network, gates, result.Stats.BuildTime, err)
	if err != nil {
		return nil, err
	}
	result.Stats.Gates = gates

	r.Logger.Info("built circuit",
		"gates", gates,
		"fan_in", c.FanIn(),
		"fan_out", c.FanOut(),
		"duration", result.Stats.BuildTime)

	// Stage 2: Evaluate
	evalStart := time.Now()
	if opts.Evaluated() {
		hooks.OnEvaluateStart(ctx, opts.Network, len(opts.Inputs))
	}
	annotated, out, err := Annotate(c, opts)
	result.Stats.EvalTime = time.Since(evalStart)
	if opts.Evaluated() {
		hooks.OnEvaluateComplete(ctx, opts.Network, result.Stats.EvalTime, err)
	}
	if err != nil {
		return nil, err
	}
	if out != nil {
		result.Outputs = diagram.ToFloats(out)
		r.Logger.Info("evaluated circuit",
			"outputs", circuit.FormatValues(out),
			"duration", result.Stats.EvalTime)
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, opts.Network, gates)
	placed, err := GenerateLayout(annotated, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, opts.Network, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}

	result.Diagram = Flatten(placed, opts)
	result.Stats.Nodes = len(result.Diagram.Nodes)
	if fp, err := store.Fingerprint(result.Diagram); err == nil {
		result.Fingerprint = fp
	}

	r.Logger.Info("computed layout",
		"nodes", result.Stats.Nodes,
		"width", result.Diagram.Width,
		"height", result.Diagram.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(result.Diagram, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

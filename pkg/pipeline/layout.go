package pipeline

import (
	"github.com/mkoster/circuitry/pkg/circuit"
	"github.com/mkoster/circuitry/pkg/diagram"
	"github.com/mkoster/circuitry/pkg/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout places the annotated tree and applies the configured scale.
func GenerateLayout(t *circuit.Circuit[NodeData], opts Options) (*circuit.Circuit[layout.Node[NodeData]], error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	placed := layout.Place(t)
	if opts.Scale != DefaultScale {
		placed = layout.Scale(opts.Scale, placed)
	}
	return placed, nil
}

// Flatten serializes a placed tree into a diagram, recording how it was
// produced so the result can be rebuilt or inspected later.
func Flatten(placed *circuit.Circuit[layout.Node[NodeData]], opts Options) diagram.Diagram {
	spec := diagram.Spec{
		Network:    opts.Network,
		Wires:      opts.Wires,
		Descending: opts.Descending,
		Simplified: opts.Simplify,
		Scale:      opts.Scale,
		Inputs:     opts.Inputs,
	}
	if opts.Definition != "" {
		spec.Wires = placed.FanIn()
	}

	name := displayName(opts, placed.Data.Data.Label)
	return diagram.Flatten(name, spec, placed, func(d NodeData) diagram.Info {
		return diagram.Info{Label: d.Label, Trace: d.Trace}
	})
}

package pipeline

import (
	"github.com/mkoster/circuitry/pkg/circuit"
	"github.com/mkoster/circuitry/pkg/errors"
	"github.com/mkoster/circuitry/pkg/netdef"
	"github.com/mkoster/circuitry/pkg/networks"
)

// Build constructs the circuit described by the options: a named generator
// network or a TOML definition file, simplified when requested.
func Build(opts Options) (*circuit.Circuit[string], error) {
	c, err := build(opts)
	if err != nil {
		return nil, err
	}
	if opts.Simplify {
		c = circuit.Simplify(c)
	}
	return c, nil
}

func build(opts Options) (*circuit.Circuit[string], error) {
	if opts.Definition != "" {
		def, err := netdef.ParseFile(opts.Definition)
		if err != nil {
			return nil, err
		}
		return def.Build()
	}

	c, err := networks.Build(opts.Network, opts.Wires, opts.Descending)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "build %s", opts.Network)
	}
	return c, nil
}

// Annotate attaches per-node data for layout and flattening. With inputs it
// runs the circuit and records every node's observed wire values; without,
// nodes carry only their labels. The second return value is the circuit's
// output vector, nil when not evaluated.
func Annotate(c *circuit.Circuit[string], opts Options) (*circuit.Circuit[NodeData], []circuit.Value, error) {
	if !opts.Evaluated() {
		plain := circuit.Map(func(label string) NodeData {
			return NodeData{Label: label}
		}, c)
		return plain, nil, nil
	}

	if got, want := len(opts.Inputs), c.FanIn(); got != want {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput,
			"circuit consumes %d wires, got %d inputs", want, got)
	}

	in := toValues(opts.Inputs)
	traced, out := circuit.RunAnnotate(func(label string, tr circuit.Trace) NodeData {
		return NodeData{Label: label, Trace: &tr}
	}, c, in)
	return traced, out, nil
}

func toValues(fs []*float64) []circuit.Value {
	out := make([]circuit.Value, len(fs))
	for i, f := range fs {
		if f != nil {
			out[i] = circuit.Some(*f)
		}
	}
	return out
}

// countGates returns the number of primitive leaves in the tree.
func countGates[A any](c *circuit.Circuit[A]) int {
	if c.Kind == circuit.KindPrimitive {
		return 1
	}
	return countGates(c.Left) + countGates(c.Right)
}

// displayName resolves the diagram name: an explicit override, the network
// name, or the definition's declared name carried on the root annotation.
func displayName(opts Options, root string) string {
	switch {
	case opts.Name != "":
		return opts.Name
	case opts.Network != "":
		return opts.Network
	default:
		return root
	}
}

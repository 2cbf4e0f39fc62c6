package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoster/circuitry/pkg/circuit"
	"github.com/mkoster/circuitry/pkg/diagram"
	"github.com/mkoster/circuitry/pkg/pipeline"
)

// evalCommand creates the eval command for running values through a circuit.
func (c *CLI) evalCommand() *cobra.Command {
	var definition string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "eval [inputs]",
		Short: "Run input values through a circuit and print the outputs",
		Long: `Evaluate a circuit on a comma-separated input vector.

The vector length must match the circuit's input width. Use _ for a
hole (an absent value); holes order before every number, so a sorting
network pushes them to the front.

Examples:

  circuitry eval 3,1,4,1 -n bubble -w 4
  circuitry eval 5,_,2 --definition pipeline.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := parseInputs(args[0])
			if err != nil {
				return err
			}
			opts.Inputs = inputs
			opts.Definition = definition
			return runEval(cmd.Context(), opts)
		},
	}

	addBuildFlags(cmd, &opts)
	cmd.Flags().StringVarP(&definition, "definition", "d", "", "TOML definition file instead of a generator")

	return cmd
}

// runEval builds the circuit, evaluates it, and prints the wire vectors.
func runEval(ctx context.Context, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	if err := opts.ValidateForBuild(); err != nil {
		return err
	}

	prog := newProgress(logger)
	circ, err := pipeline.Build(opts)
	if err != nil {
		return err
	}

	_, out, err := pipeline.Annotate(circ, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Evaluated circuit over %d wires", circ.FanIn()))

	printKeyValue("inputs", circuit.FormatValues(diagram.ToValues(opts.Inputs)))
	printKeyValue("outputs", circuit.FormatValues(out))
	return nil
}

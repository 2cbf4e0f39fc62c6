package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mkoster/circuitry/pkg/pipeline"
)

// layoutCommand creates the layout command for computing diagram geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		inputsStr string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [definition.toml]",
		Short: "Compute a circuit's layout and write the diagram JSON",
		Long: `Compute a circuit's layout and write the diagram as JSON.

The output contains every tree node with its position, size, terminals,
and dense pre-order id. It is the same JSON 'render -f json' produces
and can be browsed with 'inspect' or rendered later.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Definition = args[0]
			}
			inputs, err := parseInputs(inputsStr)
			if err != nil {
				return err
			}
			opts.Inputs = inputs
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runLayout(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json)")
	addBuildFlags(cmd, &opts)
	cmd.Flags().StringVarP(&inputsStr, "inputs", "i", "", "input values, comma-separated (use _ for a hole)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "layout scale factor")
	cmd.Flags().StringVar(&opts.Name, "name", "", "display name override")

	return cmd
}

// runLayout executes the pipeline through layout and writes the JSON diagram.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string) error {
	opts.Logger = c.Logger

	res, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, basePath(output, opts))
	if err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(paths[0])
	printStats(res.Stats.Gates, res.Stats.Nodes)
	printNewline()
	printNextStep("Browse it", appName+" inspect "+paths[0])

	return nil
}

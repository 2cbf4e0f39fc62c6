package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkoster/circuitry/pkg/pipeline"
)

// renderCommand creates the render command for generating circuit diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		inputsStr  string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [definition.toml]",
		Short: "Build a circuit and render it to SVG, PNG, PDF, DOT, or JSON",
		Long: `Build a circuit and render it to one or more output formats.

The circuit comes either from a TOML definition file given as the
argument, or from a named generator selected with --network and --wires.
With --inputs the circuit is evaluated first and every node in the
diagram carries the wire values it observed.

PNG and PDF output require rsvg-convert on PATH.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Definition = args[0]
			}
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			inputs, err := parseInputs(inputsStr)
			if err != nil {
				return err
			}
			opts.Inputs = inputs
			return c.runRender(cmd.Context(), opts, output)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	addBuildFlags(cmd, &opts)

	// Evaluate flags
	cmd.Flags().StringVarP(&inputsStr, "inputs", "i", "", "input values, comma-separated (use _ for a hole)")

	// Layout and render flags
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "layout scale factor")
	cmd.Flags().BoolVar(&opts.Tree, "tree", false, "render the combinator tree instead of wire geometry")
	cmd.Flags().BoolVar(&opts.Values, "values", false, "draw wire values in SVG output")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "detailed node labels in DOT output")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", 0, "raster resolution multiplier")
	cmd.Flags().StringVar(&opts.Name, "name", "", "display name override")

	return cmd
}

// runRender executes the pipeline and writes the rendered artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering circuit...")
	spinner.Start()

	res, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, basePath(output, opts))
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.Gates, res.Stats.Nodes)
	printNewline()
	printNextStep("Serve it over HTTP", appName+" serve")

	return nil
}

// basePath derives the base output path, without a format extension.
// An explicit output wins; a known format extension on it is stripped so
// multiple formats land next to each other. Otherwise the path derives
// from the definition file name or the network name.
func basePath(output string, opts pipeline.Options) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if opts.Definition != "" {
		base := filepath.Base(opts.Definition)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return opts.Network
}

// writeArtifacts writes one file per rendered format and returns the
// paths written, in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

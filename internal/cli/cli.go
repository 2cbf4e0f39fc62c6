// Package cli implements the circuitry command-line interface.
//
// This package provides commands for building comparator circuits from
// named generators or TOML definition files, evaluating them, rendering
// them as diagrams, and serving stored diagrams over HTTP. The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
//   - networks: List the available network generators
//   - eval: Run input values through a circuit and print the outputs
//   - layout: Compute a circuit's layout and write the diagram JSON
//   - render: Build a circuit and render it to SVG, PNG, PDF, DOT, or JSON
//   - inspect: Browse a laid-out circuit node by node in the terminal
//   - serve: Serve the diagram API over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkoster/circuitry/pkg/buildinfo"
	"github.com/mkoster/circuitry/pkg/errors"
	"github.com/mkoster/circuitry/pkg/pipeline"
)

// appName is the application name used for display and completion scripts.
const appName = "circuitry"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Circuitry builds and visualizes comparator circuits",
		Long:         `Circuitry is a CLI tool for constructing sorting networks and other comparator circuits, evaluating them on input vectors, and rendering the results as wire diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.networksCommand())
	root.AddCommand(c.evalCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Flag Helpers
// =============================================================================

// addBuildFlags registers the flags shared by every command that
// constructs a circuit.
func addBuildFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Network, "network", "n", "", "named generator: bitonic, merge, bubble, insertion, reduce")
	cmd.Flags().IntVarP(&opts.Wires, "wires", "w", 0, "wire count for the generator")
	cmd.Flags().BoolVar(&opts.Descending, "descending", false, "sort in descending order")
	cmd.Flags().BoolVar(&opts.Simplify, "simplify", false, "fuse identity gates before layout")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseInputs parses a comma-separated input vector. The token "_" marks
// a hole (an absent wire value). An empty string means no evaluation.
func parseInputs(s string) ([]*float64, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	inputs := make([]*float64, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "_" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"invalid input value %q (must be a number or _)", p)
		}
		inputs[i] = &f
	}
	return inputs, nil
}

// fmtWires formats a wire vector for display, writing "_" for holes.
func fmtWires(fs []*float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		if f == nil {
			parts[i] = "_"
			continue
		}
		parts[i] = strconv.FormatFloat(*f, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}

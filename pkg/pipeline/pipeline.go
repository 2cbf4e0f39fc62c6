// Package pipeline provides the core diagram pipeline for circuitry.
//
// This package implements the complete build → evaluate → layout → render
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Build: Construct the circuit from a named generator or a TOML
//     definition file, optionally simplifying it
//  2. Evaluate: Run input values through the circuit, annotating every
//     node with its observed wire values
//  3. Layout: Compute positions, sizes, and terminals for the tree and
//     flatten it into a diagram
//  4. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Network: "bitonic",
//	    Wires:   8,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkoster/circuitry/pkg/circuit"
	"github.com/mkoster/circuitry/pkg/diagram"
	"github.com/mkoster/circuitry/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the default layout scale factor.
	DefaultScale = 1.0

	// DefaultPNGScale is the default raster resolution multiplier.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the diagram pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options. Exactly one of Network or Definition must be set.
	Network    string `json:"network,omitempty"`
	Wires      int    `json:"wires,omitempty"`
	Descending bool   `json:"descending,omitempty"`
	Definition string `json:"definition,omitempty"` // path to a TOML definition file
	Simplify   bool   `json:"simplify,omitempty"`

	// Evaluate options. Nil means build only; entries that are nil are
	// absent wire values. The length must match the circuit's fan-in.
	Inputs []*float64 `json:"inputs,omitempty"`

	// Layout options
	Scale float64 `json:"scale,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Values   bool     `json:"values,omitempty"`    // draw wire values in SVG output
	Tree     bool     `json:"tree,omitempty"`      // render the combinator tree instead of wire geometry
	Detailed bool     `json:"detailed,omitempty"`  // detailed node labels in DOT output
	PNGScale float64  `json:"png_scale,omitempty"` // raster resolution multiplier

	// Name overrides the diagram's display name. Defaults to the network
	// name or the definition's declared name.
	Name string `json:"name,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the flattened, laid-out circuit.
	Diagram diagram.Diagram

	// Outputs is the circuit's output vector; nil when no inputs were given.
	Outputs []*float64

	// Fingerprint is the content hash of the diagram.
	Fingerprint string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Gates      int // primitive leaves in the tree
	Nodes      int // total tree nodes
	BuildTime  time.Duration
	EvalTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// NodeData is the per-node annotation the pipeline threads through layout
// and into the flattened diagram.
type NodeData struct {
	Label string
	Trace *circuit.Trace
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for circuit construction.
func (o *Options) ValidateForBuild() error {
	if o.Network == "" && o.Definition == "" {
		return errors.New(errors.ErrCodeInvalidInput, "network or definition is required")
	}
	if o.Network != "" && o.Definition != "" {
		return errors.New(errors.ErrCodeInvalidInput, "network and definition are mutually exclusive")
	}
	if o.Network != "" {
		if err := errors.ValidateNetworkName(o.Network); err != nil {
			return err
		}
		if err := errors.ValidateWidth(o.Wires); err != nil {
			return err
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return errors.ValidateScale(o.Scale)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Evaluated reports whether the pipeline will run input values through the
// circuit.
func (o *Options) Evaluated() bool {
	return o.Inputs != nil
}

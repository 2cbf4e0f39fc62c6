// Package render provides visualization rendering for circuit diagrams.
//
// # Overview
//
// This package turns flattened [diagram.Diagram] values into visual output.
// It provides:
//
//   - Wire-geometry SVG rendering ([RenderSVG])
//   - Generic format conversion (SVG to PDF/PNG)
//   - Combinator-tree diagrams (in [nodelink] subpackage)
//
// # Wire Geometry
//
// [RenderSVG] draws the diagram the way sorting networks are conventionally
// drawn: wires run left to right, a compare-swap is a vertical bar joining
// the two compared wires, and box gates (add, const) are labelled
// rectangles. Positions and sizes come straight from the layout pass; the
// renderer only multiplies by a pixel scale.
//
//	svg := render.RenderSVG(d, render.WithValues())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They are shared by this
// package and the nodelink renderer.
//
// # Tree Diagrams
//
// The [nodelink] subpackage renders the combinator tree itself as a directed
// graph using Graphviz, which is the more useful view when inspecting how a
// circuit was composed rather than what it computes.
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [nodelink]: github.com/mkoster/circuitry/pkg/render/nodelink
package render

package render

import (
	"bytes"
	"fmt"

	"github.com/mkoster/circuitry/pkg/diagram"
)

const svgStyle = `
    .wire { stroke: #333; stroke-width: 1.5; }
    .comparator { stroke: #333; stroke-width: 2; }
    .comparator-dot { fill: #333; }
    .gate-box { fill: white; stroke: #333; stroke-width: 1.5; }
    .gate-text { font-family: monospace; text-anchor: middle; dominant-baseline: central; }
    .group-text { font-family: monospace; fill: #888; }
    .value-text { font-family: monospace; dominant-baseline: central; }`

// SVGOption configures diagram rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	unit   float64 // pixels per layout unit
	values bool
	labels bool
}

// WithPixelsPerUnit sets the pixel size of one layout unit. Default is 48.
func WithPixelsPerUnit(px float64) SVGOption { return func(r *svgRenderer) { r.unit = px } }

// WithValues draws the circuit's input and output wire values next to the
// outer terminals. Has no effect on diagrams that were not evaluated.
func WithValues() SVGOption { return func(r *svgRenderer) { r.values = true } }

// WithLabels draws the labels of composite nodes above their frames.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// RenderSVG renders a diagram's wire geometry to SVG bytes. The output can
// be converted with [ToPDF] or [ToPNG].
func RenderSVG(d diagram.Diagram, opts ...SVGOption) []byte {
	r := svgRenderer{unit: 48}
	for _, opt := range opts {
		opt(&r)
	}

	margin := r.unit
	w := d.Width*r.unit + 2*margin
	h := d.Height*r.unit + 2*margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyle)

	for _, n := range d.Nodes {
		if n.Kind == diagram.KindGate {
			r.renderGate(&buf, n, margin)
			continue
		}
		if r.labels && n.Label != "" {
			x := margin + n.X*r.unit
			y := margin + n.Y*r.unit
			fmt.Fprintf(&buf, "  <text class=\"group-text\" x=\"%.1f\" y=\"%.1f\" font-size=\"%.0f\">%s</text>\n",
				x, y-r.unit*0.15, r.unit*0.25, escape(n.Label))
		}
	}

	if r.values && len(d.Nodes) > 0 {
		r.renderValues(&buf, d.Nodes[0], margin)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderGate(buf *bytes.Buffer, n diagram.Node, margin float64) {
	px := func(p diagram.Point) (float64, float64) {
		return margin + p.X*r.unit, margin + p.Y*r.unit
	}

	switch op := gateOp(n); op {
	case "id", "cswap":
		for k := 0; k < len(n.TerminalsIn) && k < len(n.TerminalsOut); k++ {
			x1, y1 := px(n.TerminalsIn[k])
			x2, y2 := px(n.TerminalsOut[k])
			fmt.Fprintf(buf, "  <line class=\"wire\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
				x1, y1, x2, y2)
		}
		if op == "cswap" && n.Detail != nil {
			r.renderComparator(buf, n, margin)
		}
	default:
		x := margin + n.X*r.unit
		y := margin + n.Y*r.unit
		fmt.Fprintf(buf, "  <rect class=\"gate-box\" x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" rx=\"%.1f\"/>\n",
			x, y, n.Width*r.unit, n.Height*r.unit, r.unit*0.1)

		label := n.Label
		if label == "" {
			label = n.Gate
		}
		fmt.Fprintf(buf, "  <text class=\"gate-text\" x=\"%.1f\" y=\"%.1f\" font-size=\"%.0f\">%s</text>\n",
			x+n.Width*r.unit/2, y+n.Height*r.unit/2, r.unit*0.3, escape(label))
	}
}

// renderComparator draws the vertical bar joining the two compared wire
// positions, with a dot at each end.
func (r *svgRenderer) renderComparator(buf *bytes.Buffer, n diagram.Node, margin float64) {
	i, j := n.Detail.I, n.Detail.J
	if i >= len(n.TerminalsIn) || j >= len(n.TerminalsIn) {
		return
	}

	x := margin + (n.X+n.Width/2)*r.unit
	yi := margin + n.TerminalsIn[i].Y*r.unit
	yj := margin + n.TerminalsIn[j].Y*r.unit

	fmt.Fprintf(buf, "  <line class=\"comparator\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
		x, yi, x, yj)
	fmt.Fprintf(buf, "  <circle class=\"comparator-dot\" cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", x, yi, r.unit*0.08)
	fmt.Fprintf(buf, "  <circle class=\"comparator-dot\" cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", x, yj, r.unit*0.08)
}

// renderValues writes the root node's observed wire values beside its
// terminals: inputs to the left, outputs to the right.
func (r *svgRenderer) renderValues(buf *bytes.Buffer, root diagram.Node, margin float64) {
	size := r.unit * 0.3
	for k, t := range root.TerminalsIn {
		if k >= len(root.Inputs) {
			break
		}
		x := margin + t.X*r.unit
		y := margin + t.Y*r.unit
		fmt.Fprintf(buf, "  <text class=\"value-text\" text-anchor=\"end\" x=\"%.1f\" y=\"%.1f\" font-size=\"%.0f\">%s</text>\n",
			x-r.unit*0.2, y, size, fmtValue(root.Inputs[k]))
	}
	for k, t := range root.TerminalsOut {
		if k >= len(root.Outputs) {
			break
		}
		x := margin + t.X*r.unit
		y := margin + t.Y*r.unit
		fmt.Fprintf(buf, "  <text class=\"value-text\" x=\"%.1f\" y=\"%.1f\" font-size=\"%.0f\">%s</text>\n",
			x+r.unit*0.2, y, size, fmtValue(root.Outputs[k]))
	}
}

func gateOp(n diagram.Node) string {
	if n.Detail == nil {
		return ""
	}
	return n.Detail.Op
}

func fmtValue(f *float64) string {
	if f == nil {
		return "_"
	}
	return fmt.Sprintf("%g", *f)
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, c := range s {
		switch c {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(c)
		}
	}
	return buf.String()
}

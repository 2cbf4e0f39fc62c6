package pipeline

import (
	"github.com/mkoster/circuitry/pkg/diagram"
	"github.com/mkoster/circuitry/pkg/errors"
	"github.com/mkoster/circuitry/pkg/render"
	"github.com/mkoster/circuitry/pkg/render/nodelink"
)

// Render generates output artifacts for the diagram in the requested
// formats, keyed by format name.
func Render(d diagram.Diagram, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var svgOpts []render.SVGOption
	if opts.Values {
		svgOpts = append(svgOpts, render.WithValues())
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			if opts.Tree {
				data, err = nodelink.RenderSVG(treeDOT(d, opts))
			} else {
				data = render.RenderSVG(d, svgOpts...)
			}
		case FormatPNG:
			if opts.Tree {
				data, err = nodelink.RenderPNG(treeDOT(d, opts), opts.PNGScale)
			} else {
				data, err = render.ToPNG(render.RenderSVG(d, svgOpts...), opts.PNGScale)
			}
		case FormatPDF:
			if opts.Tree {
				data, err = nodelink.RenderPDF(treeDOT(d, opts))
			} else {
				data, err = render.ToPDF(render.RenderSVG(d, svgOpts...))
			}
		case FormatDOT:
			data = []byte(treeDOT(d, opts))
		case FormatJSON:
			data, err = diagram.Marshal(d)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// treeDOT emits the combinator-tree DOT source for the diagram.
func treeDOT(d diagram.Diagram, opts Options) string {
	return nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed})
}

// Package pkg provides the core libraries for circuitry comparator-circuit
// visualization.
//
// # Overview
//
// Circuitry builds comparator circuits (sorting networks, merge stages,
// reduction trees) as algebraic trees, evaluates them on wire vectors, lays
// them out geometrically, and renders the result. The pkg directory is
// organized into four main areas:
//
//  1. [circuit] - The circuit algebra (gates, combinators, evaluation,
//     simplification)
//  2. [networks] / [netdef] - Circuit construction from named generators or
//     TOML definition files
//  3. [layout] / [diagram] / [render] - Geometry, serialization, and output
//     formats
//  4. [pipeline] / [server] / [store] - Orchestration, HTTP API, and
//     persistence
//
// # Architecture
//
// The typical data flow through circuitry:
//
//	Generator name or TOML definition
//	         ↓
//	    [circuit] package (combinator tree over gates)
//	         ↓
//	    [circuit] evaluation (wire values, per-node traces)
//	         ↓
//	    [layout] package (positions, sizes, terminals)
//	         ↓
//	    [diagram] package (flat serializable form)
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON output
//
// # Quick Start
//
// Build a sorting network, evaluate it, and render an SVG:
//
//	import (
//	    "context"
//	    "github.com/mkoster/circuitry/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	res, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Network: "bitonic",
//	    Wires:   8,
//	    Formats: []string{"svg"},
//	})
//	svg := res.Artifacts["svg"]
//
// # Main Packages
//
// [circuit] - The algebra itself. Circuits are binary trees of primitive
// gates composed in parallel (Par) or in sequence (Seq), generic over a
// per-node annotation type. Evaluation threads optional wire values through
// the tree; simplification fuses identity gates.
//
// [networks] - Named generators: bitonic and bubble/insertion sorters, the
// bitonic merge stage, and a pairwise reduction tree.
//
// [netdef] - TOML definition files describing custom circuits as stages of
// parallel gates, validated at load time.
//
// [layout] - Assigns every tree node a position, size, terminal points, and
// a dense pre-order id.
//
// [diagram] - The flat serializable diagram form shared by the renderers,
// the store, and the HTTP API.
//
// [render] - Wire-geometry SVG rendering plus PDF/PNG conversion;
// [render/nodelink] draws the combinator tree itself via Graphviz.
//
// [pipeline] - The build → evaluate → layout → render pipeline used by both
// the CLI and the API.
//
// [server] - JSON REST API over the pipeline and a diagram store.
//
// [store] - Diagram persistence: in-memory, Redis, and MongoDB backends.
//
// [errors] - Structured error codes shared across the module.
//
// [observability] - Hook interfaces for tracing pipeline and store activity.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/circuit/...    # Specific package
//
// [circuit]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/circuit
// [networks]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/networks
// [netdef]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/netdef
// [layout]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/layout
// [diagram]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/diagram
// [render]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/server
// [store]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/store
// [errors]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mkoster/circuitry/pkg/observability
package pkg

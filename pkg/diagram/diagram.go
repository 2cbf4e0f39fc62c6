// Package diagram is the serialization format for laid-out circuits.
//
// A [Diagram] flattens a laid-out (and optionally evaluated) circuit tree
// into a list of nodes carrying geometry, terminals, wire values, and the
// tree structure via parent links. The format is used for API responses,
// storage, and cross-tool compatibility; the rendering layer consumes it
// directly.
//
// Node order follows the layout id assignment, so Nodes[i].ID == i and the
// parent of a node always precedes it.
package diagram

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mkoster/circuitry/pkg/circuit"
	"github.com/mkoster/circuitry/pkg/layout"
)

// Node kinds in serialized form.
const (
	KindGate = "gate"
	KindPar  = "par"
	KindSeq  = "seq"
)

// RootParent marks the root node's Parent field.
const RootParent = -1

// Diagram is the canonical serialization of one laid-out circuit.
type Diagram struct {
	ID     string  `json:"id,omitempty" bson:"id,omitempty"`
	Name   string  `json:"name,omitempty" bson:"name,omitempty"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Spec   Spec    `json:"spec" bson:"spec"`
	Nodes  []Node  `json:"nodes" bson:"nodes"`
}

// Spec records how the diagram was produced, so consumers (and the node
// lookup endpoint) can rebuild the underlying circuit deterministically.
type Spec struct {
	Network    string     `json:"network,omitempty" bson:"network,omitempty"`
	Wires      int        `json:"wires,omitempty" bson:"wires,omitempty"`
	Descending bool       `json:"descending,omitempty" bson:"descending,omitempty"`
	Simplified bool       `json:"simplified,omitempty" bson:"simplified,omitempty"`
	Scale      float64    `json:"scale,omitempty" bson:"scale,omitempty"`
	Inputs     []*float64 `json:"inputs,omitempty" bson:"inputs,omitempty"`
}

// Node is one tree node in flattened form. IDs are the dense pre-order ids
// assigned by the layout pass.
type Node struct {
	ID     int    `json:"id" bson:"id"`
	Parent int    `json:"parent" bson:"parent"` // RootParent for the root
	Kind   string `json:"kind" bson:"kind"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	Gate   string `json:"gate,omitempty" bson:"gate,omitempty"` // gate description for KindGate

	// Detail is the structured form of the gate, set for KindGate nodes.
	Detail *GateDetail `json:"detail,omitempty" bson:"detail,omitempty"`

	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Unit   float64 `json:"unit" bson:"unit"`

	TerminalsIn  []Point `json:"terminals_in,omitempty" bson:"terminals_in,omitempty"`
	TerminalsOut []Point `json:"terminals_out,omitempty" bson:"terminals_out,omitempty"`

	// Wire values observed during an annotated run; nil entries are absent
	// values, nil slices mean the diagram was not evaluated.
	Inputs  []*float64 `json:"inputs,omitempty" bson:"inputs,omitempty"`
	Outputs []*float64 `json:"outputs,omitempty" bson:"outputs,omitempty"`
}

// GateDetail carries a gate's operation and parameters in serializable
// form, so renderers and API consumers need not parse the display string.
type GateDetail struct {
	Op    string  `json:"op" bson:"op"`
	Wires int     `json:"wires,omitempty" bson:"wires,omitempty"`
	I     int     `json:"i,omitempty" bson:"i,omitempty"`
	J     int     `json:"j,omitempty" bson:"j,omitempty"`
	Value float64 `json:"value,omitempty" bson:"value,omitempty"`
}

// Info is the per-node payload [Flatten] extracts from the caller's
// annotation type: a display label and, when the circuit was evaluated,
// the node's observed wire values.
type Info struct {
	Label string
	Trace *circuit.Trace
}

// Flatten serializes a laid-out circuit into a Diagram. The info callback
// projects the caller's annotation to the serializable [Info] payload.
// Nodes are emitted in id order.
func Flatten[A any](name string, spec Spec, t *circuit.Circuit[layout.Node[A]], info func(A) Info) Diagram {
	d := Diagram{
		Name:   name,
		Width:  t.Data.Layout.Size.W,
		Height: t.Data.Layout.Size.H,
		Spec:   spec,
	}
	flattenInto(&d, t, RootParent, info)
	return d
}

func flattenInto[A any](d *Diagram, t *circuit.Circuit[layout.Node[A]], parent int, info func(A) Info) {
	lay := t.Data.Layout
	meta := info(t.Data.Data)

	n := Node{
		ID:           lay.ID,
		Parent:       parent,
		Kind:         kindString(t.Kind),
		Label:        meta.Label,
		X:            lay.Pos.X,
		Y:            lay.Pos.Y,
		Width:        lay.Size.W,
		Height:       lay.Size.H,
		Unit:         lay.Unit,
		TerminalsIn:  toPoints(lay.In),
		TerminalsOut: toPoints(lay.Out),
	}
	if t.Kind == circuit.KindPrimitive {
		g := t.Gate
		n.Gate = g.String()
		n.Detail = &GateDetail{Op: g.Op.String(), Wires: g.N, I: g.I, J: g.J, Value: g.X}
	}
	if meta.Trace != nil {
		n.Inputs = ToFloats(meta.Trace.In)
		n.Outputs = ToFloats(meta.Trace.Out)
	}
	d.Nodes = append(d.Nodes, n)

	if t.Kind != circuit.KindPrimitive {
		flattenInto(d, t.Left, lay.ID, info)
		flattenInto(d, t.Right, lay.ID, info)
	}
}

func kindString(k circuit.Kind) string {
	switch k {
	case circuit.KindPrimitive:
		return KindGate
	case circuit.KindPar:
		return KindPar
	default:
		return KindSeq
	}
}

// Point mirrors layout.Point with serialization tags.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

func toPoints(pts []layout.Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{p.X, p.Y}
	}
	return out
}

// ToFloats converts a value vector to its wire format: nil for None.
func ToFloats(vs []circuit.Value) []*float64 {
	out := make([]*float64, len(vs))
	for i, v := range vs {
		if v.Valid {
			f := v.F
			out[i] = &f
		}
	}
	return out
}

// ToValues is the inverse of [ToFloats].
func ToValues(fs []*float64) []circuit.Value {
	out := make([]circuit.Value, len(fs))
	for i, f := range fs {
		if f != nil {
			out[i] = circuit.Some(*f)
		}
	}
	return out
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Diagram to pretty-printed JSON bytes.
func Marshal(d Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Diagram and checks the node list
// is a well-formed flattening: dense ids in order, parents preceding
// children.
func Unmarshal(data []byte) (Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return Diagram{}, fmt.Errorf("unmarshal diagram: %w", err)
	}
	if err := Validate(d); err != nil {
		return Diagram{}, err
	}
	return d, nil
}

// Validate checks structural consistency of a flattened diagram.
func Validate(d Diagram) error {
	if len(d.Nodes) == 0 {
		return fmt.Errorf("diagram has no nodes")
	}
	for i, n := range d.Nodes {
		if n.ID != i {
			return fmt.Errorf("node at position %d has id %d; ids must be dense and ordered", i, n.ID)
		}
		if i == 0 {
			if n.Parent != RootParent {
				return fmt.Errorf("root node must have parent %d, got %d", RootParent, n.Parent)
			}
			continue
		}
		if n.Parent < 0 || n.Parent >= i {
			return fmt.Errorf("node %d has invalid parent %d", n.ID, n.Parent)
		}
	}
	return nil
}

// WriteFile writes a Diagram to a JSON file.
func WriteFile(d Diagram, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Diagram from a JSON file.
func ReadFile(path string) (Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Diagram{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}

package layout

import (
	"github.com/mkoster/circuitry/pkg/circuit"
)

// Layout geometry constants, in wire-slot units.
const (
	// UnitSize is the height of one wire slot and the width of a generic
	// gate box.
	UnitSize = 1.0
	// ConnectorWidth is the width of thin connector primitives (identity
	// and compare-swap), which render as wires rather than boxes.
	ConnectorWidth = 0.5
	// Gap is the padding between children of a Par or Seq composition.
	Gap = 0.5
)

// Layout is the geometry and identifier assigned to one node by [Place].
type Layout struct {
	// ID is the node's pre-order identifier. See [ByID] for the ordering
	// invariant it obeys.
	ID int
	// Unit is the accumulated scale factor, 1.0 until [Scale] is applied.
	// Renderers use it to size gate decorations.
	Unit float64
	// Pos is the top-left corner of the node's bounding box.
	Pos Point
	// Size is the extent of the bounding box.
	Size Size
	// In holds the input terminal coordinates, ordered top to bottom along
	// the left edge.
	In []Point
	// Out holds the output terminal coordinates along the right edge.
	Out []Point
}

// Node is the annotation attached by [Place]: the node's original payload
// plus its computed geometry.
type Node[A any] struct {
	Data   A
	Layout Layout
}

// Place lays out the circuit starting at the origin with ids from 0,
// wrapping every annotation in a [Node].
func Place[A any](c *circuit.Circuit[A]) *circuit.Circuit[Node[A]] {
	t, _ := place(Point{}, 0, c)
	return t
}

// PlaceFunc lays out the circuit like [Place] but merges each node's
// geometry into its annotation with a caller-supplied collect, for callers
// that carry their own annotation shape. It returns the laid-out tree and
// the next unassigned id (the total node count).
func PlaceFunc[A, B any](collect func(A, Layout) B, c *circuit.Circuit[A]) (*circuit.Circuit[B], int) {
	t, next := place(Point{}, 0, c)
	return circuit.Map(func(n Node[A]) B { return collect(n.Data, n.Layout) }, t), next
}

// place is the recursive worker. It threads the current drawing position and
// the next available id through the recursion and returns the laid-out
// subtree together with the next id after it.
func place[A any](at Point, id int, c *circuit.Circuit[A]) (*circuit.Circuit[Node[A]], int) {
	switch c.Kind {
	case circuit.KindPrimitive:
		sz := gateSize(c.Gate)
		lay := Layout{
			ID:   id,
			Unit: 1.0,
			Pos:  at,
			Size: sz,
			In:   edgeTerminals(at.X, at.Y, sz.H, c.Gate.FanIn()),
			Out:  edgeTerminals(at.X+sz.W, at.Y, sz.H, c.Gate.FanOut()),
		}
		return circuit.Primitive(Node[A]{Data: c.Data, Layout: lay}, c.Gate), id + 1

	case circuit.KindPar:
		// Children are stacked vertically; the node's own id is assigned
		// before descending.
		u, id1 := place(at, id+1, c.Left)
		uSize := u.Data.Layout.Size
		v, id2 := place(Point{at.X, at.Y + uSize.H + Gap}, id1, c.Right)
		vSize := v.Data.Layout.Size

		w := max(uSize.W, vSize.W)
		u = recenter(u, Point{(w - uSize.W) / 2, 0})
		v = recenter(v, Point{(w - vSize.W) / 2, 0})

		lay := Layout{
			ID:   id,
			Unit: 1.0,
			Pos:  at,
			Size: Size{w, uSize.H + Gap + vSize.H},
			In:   concatTerminals(u.Data.Layout.In, v.Data.Layout.In),
			Out:  concatTerminals(u.Data.Layout.Out, v.Data.Layout.Out),
		}
		return circuit.Par(Node[A]{Data: c.Data, Layout: lay}, u, v), id2

	default: // circuit.KindSeq
		// Children are concatenated horizontally, left feeding right.
		u, id1 := place(at, id+1, c.Left)
		uSize := u.Data.Layout.Size
		v, id2 := place(Point{at.X + uSize.W + Gap, at.Y}, id1, c.Right)
		vSize := v.Data.Layout.Size

		h := max(uSize.H, vSize.H)
		u = recenter(u, Point{0, (h - uSize.H) / 2})
		v = recenter(v, Point{0, (h - vSize.H) / 2})

		lay := Layout{
			ID:   id,
			Unit: 1.0,
			Pos:  at,
			Size: Size{uSize.W + Gap + vSize.W, h},
			In:   u.Data.Layout.In,
			Out:  v.Data.Layout.Out,
		}
		return circuit.Seq(Node[A]{Data: c.Data, Layout: lay}, u, v), id2
	}
}

// gateSize returns the bounding box of a primitive. Identity and
// compare-swap render as thin connectors; other gates render as a unit-wide
// box tall enough for the wider of their fan-in and fan-out.
func gateSize(g circuit.Gate) Size {
	switch g.Op {
	case circuit.OpIdentity, circuit.OpCompareSwap:
		return Size{ConnectorWidth, float64(g.N) * UnitSize}
	default:
		slots := max(g.FanIn(), g.FanOut(), 1)
		return Size{UnitSize, float64(slots) * UnitSize}
	}
}

// edgeTerminals spaces k terminals evenly along a vertical edge of height h
// at horizontal position x, each centered within its equal-sized slot.
func edgeTerminals(x, top, h float64, k int) []Point {
	if k <= 0 {
		return nil
	}
	pts := make([]Point, k)
	slot := h / float64(k)
	for i := range pts {
		pts[i] = Point{x, top + slot*(float64(i)+0.5)}
	}
	return pts
}

func concatTerminals(a, b []Point) []Point {
	out := make([]Point, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}

// recenter shifts a freshly placed subtree by off, used to center the
// narrower child of a composition. A zero offset returns the subtree as-is.
func recenter[A any](t *circuit.Circuit[Node[A]], off Point) *circuit.Circuit[Node[A]] {
	if off == (Point{}) {
		return t
	}
	return Translate(off, t)
}

// Translate returns a copy of the laid-out tree with every position and
// terminal shifted by off. Sizes, units, and ids are unchanged.
func Translate[A any](off Point, t *circuit.Circuit[Node[A]]) *circuit.Circuit[Node[A]] {
	return circuit.Map(func(n Node[A]) Node[A] {
		n.Layout = n.Layout.translate(off)
		return n
	}, t)
}

// Scale returns a copy of the laid-out tree with every position, size, and
// terminal scaled uniformly by k. The accumulated Unit factor is scaled as
// well so gate decorations track the zoom level.
func Scale[A any](k float64, t *circuit.Circuit[Node[A]]) *circuit.Circuit[Node[A]] {
	return circuit.Map(func(n Node[A]) Node[A] {
		n.Layout = n.Layout.scale(k)
		return n
	}, t)
}

func (l Layout) translate(off Point) Layout {
	l.Pos = l.Pos.Add(off)
	l.In = mapPoints(l.In, func(p Point) Point { return p.Add(off) })
	l.Out = mapPoints(l.Out, func(p Point) Point { return p.Add(off) })
	return l
}

func (l Layout) scale(k float64) Layout {
	l.Unit *= k
	l.Pos = l.Pos.Mul(k)
	l.Size = Size{l.Size.W * k, l.Size.H * k}
	l.In = mapPoints(l.In, func(p Point) Point { return p.Mul(k) })
	l.Out = mapPoints(l.Out, func(p Point) Point { return p.Mul(k) })
	return l
}

func mapPoints(pts []Point, f func(Point) Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = f(p)
	}
	return out
}

// ByID returns the node whose assigned id equals id, descending by the
// pre-order invariant: a node's id is the smallest in its subtree, and every
// id in the right child's subtree exceeds every id in the left child's.
// Comparing the target against the right child's root id decides which side
// to descend into without visiting the other. The boolean is false when no
// node carries the id.
func ByID[A any](t *circuit.Circuit[Node[A]], id int) (*circuit.Circuit[Node[A]], bool) {
	for t != nil {
		switch {
		case t.Data.Layout.ID == id:
			return t, true
		case id < t.Data.Layout.ID || t.Kind == circuit.KindPrimitive:
			return nil, false
		case id >= t.Right.Data.Layout.ID:
			t = t.Right
		default:
			t = t.Left
		}
	}
	return nil, false
}

package circuit

// Kind distinguishes the three circuit shapes.
type Kind int

const (
	// KindPrimitive is a leaf wrapping a single gate.
	KindPrimitive Kind = iota
	// KindPar composes two circuits side by side; fan-in and fan-out are
	// the sums of the children's.
	KindPar
	// KindSeq composes two circuits end to end; fan-in comes from the left
	// child and fan-out from the right.
	KindSeq
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "gate"
	case KindPar:
		return "par"
	default:
		return "seq"
	}
}

// Circuit is a combinator tree generic over its annotation type A. Circuits
// are immutable values: constructors and passes build new trees and share
// unchanged subtrees, and no field should be mutated after construction.
//
// For KindPrimitive, Gate is set and Left/Right are nil. For KindPar and
// KindSeq, Left and Right are set and Gate is the zero Gate.
//
// Sequencing does not validate that FanOut(left) matches FanIn(right);
// evaluation of a mismatched Seq silently truncates or under-fills the
// right child's input (see [Run]).
type Circuit[A any] struct {
	Kind  Kind
	Data  A
	Gate  Gate
	Left  *Circuit[A]
	Right *Circuit[A]
}

// Primitive returns a leaf circuit wrapping g.
func Primitive[A any](data A, g Gate) *Circuit[A] {
	return &Circuit[A]{Kind: KindPrimitive, Data: data, Gate: g}
}

// Par returns the side-by-side composition of u and v.
func Par[A any](data A, u, v *Circuit[A]) *Circuit[A] {
	return &Circuit[A]{Kind: KindPar, Data: data, Left: u, Right: v}
}

// Seq returns the end-to-end composition of u and v, feeding u's outputs
// into v.
func Seq[A any](data A, u, v *Circuit[A]) *Circuit[A] {
	return &Circuit[A]{Kind: KindSeq, Data: data, Left: u, Right: v}
}

// FanIn returns the number of input wires the circuit consumes.
func (c *Circuit[A]) FanIn() int {
	switch c.Kind {
	case KindPrimitive:
		return c.Gate.FanIn()
	case KindPar:
		return c.Left.FanIn() + c.Right.FanIn()
	default:
		return c.Left.FanIn()
	}
}

// FanOut returns the number of output wires the circuit produces.
func (c *Circuit[A]) FanOut() int {
	switch c.Kind {
	case KindPrimitive:
		return c.Gate.FanOut()
	case KindPar:
		return c.Left.FanOut() + c.Right.FanOut()
	default:
		return c.Right.FanOut()
	}
}

// Map rebuilds the tree applying f to every node's annotation. The gate and
// subtree structure are untouched; only the payload changes. This is the
// mechanism by which layout and run data are attached without disturbing the
// combinator shape.
func Map[A, B any](f func(A) B, c *Circuit[A]) *Circuit[B] {
	switch c.Kind {
	case KindPrimitive:
		return Primitive(f(c.Data), c.Gate)
	case KindPar:
		return Par(f(c.Data), Map(f, c.Left), Map(f, c.Right))
	default:
		return Seq(f(c.Data), Map(f, c.Left), Map(f, c.Right))
	}
}

// Amend returns a copy of c with only the top annotation replaced. Children
// are shared, not copied.
func Amend[A any](data A, c *Circuit[A]) *Circuit[A] {
	out := *c
	out.Data = data
	return &out
}

// isIdentity reports whether c is a bare identity primitive, the shape the
// simplifier eliminates.
func isIdentity[A any](c *Circuit[A]) bool {
	return c.Kind == KindPrimitive && c.Gate.Op == OpIdentity
}

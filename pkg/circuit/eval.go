package circuit

// Trace records the exact input slice a node received and the output it
// produced during an annotated run.
type Trace struct {
	In  []Value
	Out []Value
}

// Run evaluates the circuit against an input vector and returns its outputs.
//
// A Primitive delegates to its gate. A Par splits the input at FanIn(left),
// evaluates each child on its slice, and concatenates the results in order.
// A Seq evaluates the left child on the full input and feeds its output
// directly into the right child. When the input is shorter than FanIn(left),
// the right side of the split is empty: mismatches truncate, they never fail.
func Run[A any](c *Circuit[A], in []Value) []Value {
	switch c.Kind {
	case KindPrimitive:
		return c.Gate.Run(in)
	case KindPar:
		l, r := splitAt(in, c.Left.FanIn())
		uOut := Run(c.Left, l)
		vOut := Run(c.Right, r)
		// Identity gates return their input slice as-is, so uOut can alias
		// in. Concatenate into a fresh slice to avoid clobbering the tail.
		out := make([]Value, 0, len(uOut)+len(vOut))
		return append(append(out, uOut...), vOut...)
	default:
		return Run(c.Right, Run(c.Left, in))
	}
}

// RunAnnotate evaluates the circuit like [Run] while recording a [Trace] at
// every node. The caller-supplied collect merges the trace into the node's
// existing annotation, so a label-only tree becomes a label-plus-trace tree
// without losing the label. The final output vector is returned alongside
// the annotated tree and always equals Run(c, in).
func RunAnnotate[A, B any](collect func(A, Trace) B, c *Circuit[A], in []Value) (*Circuit[B], []Value) {
	switch c.Kind {
	case KindPrimitive:
		out := c.Gate.Run(in)
		return Primitive(collect(c.Data, Trace{In: in, Out: out}), c.Gate), out
	case KindPar:
		l, r := splitAt(in, c.Left.FanIn())
		u, uOut := RunAnnotate(collect, c.Left, l)
		v, vOut := RunAnnotate(collect, c.Right, r)
		out := append(append([]Value{}, uOut...), vOut...)
		return Par(collect(c.Data, Trace{In: in, Out: out}), u, v), out
	default:
		u, uOut := RunAnnotate(collect, c.Left, in)
		v, out := RunAnnotate(collect, c.Right, uOut)
		return Seq(collect(c.Data, Trace{In: in, Out: out}), u, v), out
	}
}

// splitAt divides in after its first n elements, clamping n to the slice
// bounds so a short input yields a short prefix and an empty remainder.
func splitAt(in []Value, n int) (left, right []Value) {
	if n < 0 {
		n = 0
	}
	if n > len(in) {
		n = len(in)
	}
	return in[:n], in[n:]
}

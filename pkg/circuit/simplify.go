package circuit

// Simplify removes redundant identity wiring introduced by composition: an
// identity primitive standing alone in a Seq is dropped, and two adjacent
// identity primitives in a Par are fused into one wider identity. Annotations
// survive: when a wrapper node is eliminated its annotation is re-amended
// onto the surviving subtree.
//
// Simplification never changes the circuit's fan-in, fan-out, or evaluation
// result.
func Simplify[A any](c *Circuit[A]) *Circuit[A] {
	for {
		next, done := simplifyStep(c)
		c = next
		if done {
			return c
		}
	}
}

// simplifyStep performs one rewrite pass and reports whether the subtree is
// fully reduced. Rewrites that may expose further reductions (dropping a
// no-op leaf, fusing identities) report false so the outer fixpoint loop in
// [Simplify] runs again. Each rewrite strictly shrinks the node count or
// flips the flag to true, so the loop terminates.
func simplifyStep[A any](c *Circuit[A]) (*Circuit[A], bool) {
	switch c.Kind {
	case KindPrimitive:
		return c, true

	case KindSeq:
		if isIdentity(c.Left) {
			v, _ := simplifyStep(c.Right)
			return Amend(c.Data, v), false
		}
		if isIdentity(c.Right) {
			u, _ := simplifyStep(c.Left)
			return Amend(c.Data, u), false
		}
		u, uDone := simplifyStep(c.Left)
		v, vDone := simplifyStep(c.Right)
		if uDone && vDone {
			return rebuild(c, u, v), true
		}
		return Seq(c.Data, u, v), false

	default: // KindPar
		if isIdentity(c.Left) && isIdentity(c.Right) {
			return Primitive(c.Data, Identity(c.Left.Gate.N+c.Right.Gate.N)), false
		}
		u, uDone := simplifyStep(c.Left)
		v, vDone := simplifyStep(c.Right)
		if uDone && vDone {
			return rebuild(c, u, v), true
		}
		return Par(c.Data, u, v), false
	}
}

// rebuild reuses c when neither child changed, keeping unchanged subtrees
// shared across passes.
func rebuild[A any](c, u, v *Circuit[A]) *Circuit[A] {
	if u == c.Left && v == c.Right {
		return c
	}
	out := *c
	out.Left = u
	out.Right = v
	return &out
}

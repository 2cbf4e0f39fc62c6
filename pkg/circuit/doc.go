// Package circuit implements the combinator algebra for sorting-network
// diagrams.
//
// A circuit is a recursive tree built from three shapes: a Primitive wrapping
// a single [Gate], a Par node composing two circuits side by side, and a Seq
// node composing two circuits end to end. Every node carries an annotation of
// a caller-chosen type; annotations are threaded through the tree by [Map]
// without disturbing its structure, which is how later passes (evaluation
// traces, geometry) attach their data.
//
// # Wire values
//
// Wires carry optional numbers ([Value]). A missing value is None, never an
// error: out-of-range reads produce None, and None propagates through gates
// by the documented ordering and strictness rules. None sorts below every
// present value, so partially specified inputs still produce a deterministic
// network trace.
//
// # Passes
//
// All passes are pure. [Run] evaluates a circuit against an input vector,
// [RunAnnotate] additionally records a per-node [Trace], and [Simplify]
// removes redundant identity wiring without changing behavior. Each pass
// returns a new tree and shares unchanged subtrees with its input; no node
// is ever mutated in place.
//
// # Example
//
//	cs := circuit.Primitive("swap", circuit.CompareSwap(2, 1, 0))
//	out := circuit.Run(cs, []circuit.Value{circuit.Some(3), circuit.Some(1)})
//	// out is [Some(1) Some(3)]
package circuit

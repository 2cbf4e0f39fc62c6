package networks

import (
	"errors"
	"fmt"

	"github.com/mkoster/circuitry/pkg/circuit"
)

// Named generators resolvable through [Build].
const (
	NameBitonic   = "bitonic"
	NameMerge     = "merge"
	NameBubble    = "bubble"
	NameInsertion = "insertion"
	NameReduce    = "reduce"
)

var (
	// ErrUnknownNetwork is returned by [Build] for a name not in [Names].
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrBadWidth is returned by [Build] when the requested wire count is
	// not valid for the generator (non-positive, or not a power of two for
	// the bitonic networks).
	ErrBadWidth = errors.New("invalid network width")
)

// Names lists the available generators in display order.
func Names() []string {
	return []string{NameBitonic, NameMerge, NameBubble, NameInsertion, NameReduce}
}

// Build constructs the named network over n wires. The descending flag
// selects output order for the sorting networks and is ignored by the
// reduction tree. The bitonic networks require n to be a power of two.
func Build(name string, n int, descending bool) (*circuit.Circuit[string], error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadWidth, n)
	}
	switch name {
	case NameBitonic:
		if !powerOfTwo(n) {
			return nil, fmt.Errorf("%w: bitonic networks need a power of two, got %d", ErrBadWidth, n)
		}
		return Bitonic(n, descending), nil
	case NameMerge:
		if !powerOfTwo(n) {
			return nil, fmt.Errorf("%w: bitonic networks need a power of two, got %d", ErrBadWidth, n)
		}
		return BitonicMerge(n, descending), nil
	case NameBubble:
		return Bubble(n, descending), nil
	case NameInsertion:
		return Insertion(n, descending), nil
	case NameReduce:
		return Reduce(n), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
	}
}

func powerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// comparator returns a full-width compare-swap ordering positions lo < hi so
// the larger value ends up at hi (ascending) or at lo (descending). The gate
// swaps when the value at its first position orders below its second, which
// leaves the larger value at the first position.
func comparator(n, lo, hi int, descending bool) circuit.Gate {
	if descending {
		return circuit.CompareSwap(n, lo, hi)
	}
	return circuit.CompareSwap(n, hi, lo)
}

// chain sequences the gates over n wires, labelling the whole with label.
// An empty gate list degenerates to a labelled identity.
func chain(label string, n int, gates []circuit.Gate) *circuit.Circuit[string] {
	if len(gates) == 0 {
		return circuit.Primitive(label, circuit.Identity(n))
	}
	t := circuit.Primitive(gates[0].String(), gates[0])
	for _, g := range gates[1:] {
		t = circuit.Seq("", t, circuit.Primitive(g.String(), g))
	}
	return circuit.Amend(label, t)
}

// wire is a single labelled pass-through, the base case of the recursive
// generators.
func wire() *circuit.Circuit[string] {
	return circuit.Primitive("wire", circuit.Identity(1))
}

package networks

import (
	"fmt"

	"github.com/mkoster/circuitry/pkg/circuit"
)

// Bitonic builds a bitonic sorting network over n wires, n a power of two.
// The two halves are sorted in opposite directions to form a bitonic
// sequence, which [BitonicMerge] then sorts into the requested order.
func Bitonic(n int, descending bool) *circuit.Circuit[string] {
	if n == 1 {
		return wire()
	}
	half := n / 2
	halves := circuit.Par("", Bitonic(half, false), Bitonic(half, true))
	label := fmt.Sprintf("bitonic %d%s", n, dirSuffix(descending))
	return circuit.Seq(label, halves, BitonicMerge(n, descending))
}

// BitonicMerge builds the merging network that sorts a bitonic input
// sequence of n wires, n a power of two. One layer of half-distance
// comparators splits the sequence into two bitonic halves, which are merged
// recursively in parallel.
func BitonicMerge(n int, descending bool) *circuit.Circuit[string] {
	if n == 1 {
		return wire()
	}
	half := n / 2
	gates := make([]circuit.Gate, half)
	for i := range gates {
		gates[i] = comparator(n, i, i+half, descending)
	}
	layer := chain("", n, gates)
	rec := circuit.Par("", BitonicMerge(half, descending), BitonicMerge(half, descending))
	return circuit.Seq(fmt.Sprintf("merge %d%s", n, dirSuffix(descending)), layer, rec)
}

// Bubble builds a bubble sorting network: n-1 passes of adjacent
// comparators, each pass floating the extreme of the remaining prefix into
// place.
func Bubble(n int, descending bool) *circuit.Circuit[string] {
	var gates []circuit.Gate
	for p := 0; p < n-1; p++ {
		for i := 0; i < n-1-p; i++ {
			gates = append(gates, comparator(n, i, i+1, descending))
		}
	}
	return chain(fmt.Sprintf("bubble %d%s", n, dirSuffix(descending)), n, gates)
}

// Insertion builds an insertion sorting network: each wire in turn is sunk
// through the sorted prefix with adjacent comparators.
func Insertion(n int, descending bool) *circuit.Circuit[string] {
	var gates []circuit.Gate
	for i := 1; i < n; i++ {
		for j := i; j > 0; j-- {
			gates = append(gates, comparator(n, j-1, j, descending))
		}
	}
	return chain(fmt.Sprintf("insertion %d%s", n, dirSuffix(descending)), n, gates)
}

func dirSuffix(descending bool) string {
	if descending {
		return " desc"
	}
	return ""
}

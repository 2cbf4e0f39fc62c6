package networks

import (
	"fmt"

	"github.com/mkoster/circuitry/pkg/circuit"
)

// Reduce builds an additive reduction tree summing n wires into one. Absent
// inputs poison the sum: the output is None unless every input is present,
// following the adder gate's strictness rule.
func Reduce(n int) *circuit.Circuit[string] {
	switch {
	case n <= 1:
		return wire()
	case n == 2:
		return circuit.Primitive("add", circuit.Add())
	default:
		upper := n - n/2
		halves := circuit.Par("", Reduce(upper), Reduce(n-upper))
		return circuit.Seq(fmt.Sprintf("sum %d", n), halves, circuit.Primitive("add", circuit.Add()))
	}
}

package circuit_test

import (
	"fmt"

	"github.com/mkoster/circuitry/pkg/circuit"
)

func ExampleRun() {
	// Sort a pair of wires so the smaller value comes out on top, then
	// sum them with a third, constant wire.
	sorter := circuit.Primitive("sort2", circuit.CompareSwap(2, 1, 0))
	withConst := circuit.Par("", sorter, circuit.Primitive("ten", circuit.Const(10)))

	out := circuit.Run(withConst, []circuit.Value{circuit.Some(3), circuit.Some(1)})
	fmt.Println(circuit.FormatValues(out))
	// Output:
	// 1 3 10
}

func ExampleSimplify() {
	// Composition wrapped a compare-swap in no-op identity wiring.
	cs := circuit.Primitive("cswap", circuit.CompareSwap(2, 1, 0))
	wrapped := circuit.Seq("stage", circuit.Primitive("", circuit.Identity(2)), cs)

	s := circuit.Simplify(wrapped)
	fmt.Println(s.Kind, s.Data, s.Gate)
	// Output:
	// gate stage cswap 2:1/0
}

func ExampleRunAnnotate() {
	type annotated struct {
		Label string
		Trace circuit.Trace
	}

	add := circuit.Primitive("sum", circuit.Add())
	tree, out := circuit.RunAnnotate(func(label string, tr circuit.Trace) annotated {
		return annotated{Label: label, Trace: tr}
	}, add, []circuit.Value{circuit.Some(2), circuit.Some(3)})

	fmt.Println(circuit.FormatValues(out))
	fmt.Println(tree.Data.Label, "saw", circuit.FormatValues(tree.Data.Trace.In))
	// Output:
	// 5
	// sum saw 2 3
}

package circuit

import (
	"fmt"
	"slices"
)

// GateOp identifies the primitive operation a gate performs.
type GateOp int

const (
	// OpIdentity passes n wires through unchanged.
	OpIdentity GateOp = iota
	// OpCompareSwap compares two positions of an n-wire bundle and
	// conditionally exchanges them.
	OpCompareSwap
	// OpAdd sums two wires into one.
	OpAdd
	// OpConst produces a constant on a single wire, ignoring input.
	OpConst
)

func (op GateOp) String() string {
	switch op {
	case OpIdentity:
		return "id"
	case OpCompareSwap:
		return "cswap"
	case OpAdd:
		return "add"
	case OpConst:
		return "const"
	default:
		return fmt.Sprintf("GateOp(%d)", int(op))
	}
}

// Gate is a primitive operation with fixed fan-in/fan-out arithmetic and a
// pointwise evaluation rule. The set of operations is closed; use the
// constructors ([Identity], [CompareSwap], [Add], [Const]) rather than
// building Gate values by hand.
type Gate struct {
	Op GateOp
	N  int     // wire count for Identity and CompareSwap
	I  int     // first compared position for CompareSwap
	J  int     // second compared position for CompareSwap
	X  float64 // constant for Const
}

// Identity returns an n-wire pass-through gate.
func Identity(n int) Gate { return Gate{Op: OpIdentity, N: n} }

// CompareSwap returns an n-wire gate comparing positions i and j. When the
// value at i orders below the value at j (per [Value.Less]) the two positions
// are exchanged; otherwise the wires pass through unchanged.
func CompareSwap(n, i, j int) Gate { return Gate{Op: OpCompareSwap, N: n, I: i, J: j} }

// Add returns the two-input adder gate.
func Add() Gate { return Gate{Op: OpAdd} }

// Const returns a gate producing x on its single output wire.
func Const(x float64) Gate { return Gate{Op: OpConst, X: x} }

// FanIn returns the number of input wires the gate consumes.
func (g Gate) FanIn() int {
	switch g.Op {
	case OpIdentity, OpCompareSwap:
		return g.N
	case OpAdd:
		return 2
	default: // OpConst
		return 0
	}
}

// FanOut returns the number of output wires the gate produces.
func (g Gate) FanOut() int {
	switch g.Op {
	case OpIdentity, OpCompareSwap:
		return g.N
	default: // OpAdd, OpConst
		return 1
	}
}

// Run evaluates the gate against an input vector. Out-of-range reads yield
// None and out-of-range writes are dropped, so a short input never panics.
func (g Gate) Run(in []Value) []Value {
	switch g.Op {
	case OpIdentity:
		return in
	case OpCompareSwap:
		a, b := at(in, g.I), at(in, g.J)
		if !a.Less(b) {
			return in
		}
		out := slices.Clone(in)
		set(out, g.I, b)
		set(out, g.J, a)
		return out
	case OpAdd:
		a, b := at(in, 0), at(in, 1)
		if !a.Valid || !b.Valid {
			return []Value{None}
		}
		return []Value{Some(a.F + b.F)}
	default: // OpConst
		return []Value{Some(g.X)}
	}
}

func (g Gate) String() string {
	switch g.Op {
	case OpIdentity:
		return fmt.Sprintf("id %d", g.N)
	case OpCompareSwap:
		return fmt.Sprintf("cswap %d:%d/%d", g.N, g.I, g.J)
	case OpConst:
		return fmt.Sprintf("const %g", g.X)
	default:
		return g.Op.String()
	}
}

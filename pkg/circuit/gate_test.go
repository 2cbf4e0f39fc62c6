package circuit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGateFanArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		gate   Gate
		fanIn  int
		fanOut int
	}{
		{"Identity1", Identity(1), 1, 1},
		{"Identity4", Identity(4), 4, 4},
		{"CompareSwap", CompareSwap(3, 0, 2), 3, 3},
		{"Add", Add(), 2, 1},
		{"Const", Const(7), 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gate.FanIn(); got != tt.fanIn {
				t.Errorf("FanIn = %d, want %d", got, tt.fanIn)
			}
			if got := tt.gate.FanOut(); got != tt.fanOut {
				t.Errorf("FanOut = %d, want %d", got, tt.fanOut)
			}
		})
	}
}

func TestGateRun(t *testing.T) {
	tests := []struct {
		name string
		gate Gate
		in   []Value
		want []Value
	}{
		{
			name: "IdentityPassesThrough",
			gate: Identity(3),
			in:   []Value{Some(1), None, Some(3)},
			want: []Value{Some(1), None, Some(3)},
		},
		{
			name: "CompareSwapSwaps",
			gate: CompareSwap(2, 0, 1),
			in:   []Value{Some(1), Some(3)},
			want: []Value{Some(3), Some(1)},
		},
		{
			name: "CompareSwapKeeps",
			gate: CompareSwap(2, 0, 1),
			in:   []Value{Some(3), Some(1)},
			want: []Value{Some(3), Some(1)},
		},
		{
			name: "NoneSortsLow",
			gate: CompareSwap(2, 0, 1),
			in:   []Value{None, Some(5)},
			want: []Value{Some(5), None},
		},
		{
			name: "NoneStaysLow",
			gate: CompareSwap(2, 0, 1),
			in:   []Value{Some(5), None},
			want: []Value{Some(5), None},
		},
		{
			name: "CompareSwapUntouchedWires",
			gate: CompareSwap(4, 3, 0),
			in:   []Value{Some(9), Some(2), Some(7), Some(1)},
			want: []Value{Some(1), Some(2), Some(7), Some(9)},
		},
		{
			name: "CompareSwapOutOfRangeReadsNone",
			gate: CompareSwap(2, 0, 5),
			in:   []Value{Some(1), Some(2)},
			// Position 5 reads None, Some(1) is not below None: no swap.
			want: []Value{Some(1), Some(2)},
		},
		{
			name: "CompareSwapOutOfRangeWriteDropped",
			gate: CompareSwap(2, 5, 0),
			in:   []Value{Some(1), Some(2)},
			// None at position 5 is below Some(1): the swap writes Some(1)
			// nowhere and None into position 0.
			want: []Value{None, Some(2)},
		},
		{
			name: "AddBothPresent",
			gate: Add(),
			in:   []Value{Some(2), Some(3)},
			want: []Value{Some(5)},
		},
		{
			name: "AddStrictInNone",
			gate: Add(),
			in:   []Value{Some(2), None},
			want: []Value{None},
		},
		{
			name: "AddShortInput",
			gate: Add(),
			in:   []Value{Some(2)},
			want: []Value{None},
		},
		{
			name: "ConstIgnoresInput",
			gate: Const(4.5),
			in:   []Value{Some(1)},
			want: []Value{Some(4.5)},
		},
		{
			name: "ConstNoInput",
			gate: Const(-1),
			in:   nil,
			want: []Value{Some(-1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.gate.Run(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Run mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValueLess(t *testing.T) {
	tests := []struct {
		name string
		v, w Value
		want bool
	}{
		{"NoneBelowSome", None, Some(0), true},
		{"NoneNotBelowNone", None, None, false},
		{"SomeNotBelowNone", Some(-100), None, false},
		{"Numeric", Some(1), Some(2), true},
		{"NumericEqual", Some(2), Some(2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Less(tt.w); got != tt.want {
				t.Errorf("%v.Less(%v) = %v, want %v", tt.v, tt.w, got, tt.want)
			}
		})
	}
}

func TestFormatValues(t *testing.T) {
	got := FormatValues([]Value{Some(1), None, Some(2.5)})
	if got != "1 _ 2.5" {
		t.Errorf("FormatValues = %q", got)
	}
}

package circuit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// vals is shorthand for building input vectors in tests; NaN-free floats
// only. An entry of nil means None.
func vals(fs ...any) []Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		switch x := f.(type) {
		case int:
			out[i] = Some(float64(x))
		case float64:
			out[i] = Some(x)
		case nil:
			out[i] = None
		}
	}
	return out
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Circuit[string]
		in    []Value
		want  []Value
	}{
		{
			name: "ParSplitsInOrder",
			build: func() *Circuit[string] {
				return Par("", Primitive("", CompareSwap(2, 0, 1)), Primitive("", Identity(1)))
			},
			in:   vals(1, 2, 3),
			want: vals(2, 1, 3),
		},
		{
			name: "SeqPipes",
			build: func() *Circuit[string] {
				// Swap the pair so the larger value leads, then add.
				return Seq("", Primitive("", CompareSwap(2, 0, 1)), Primitive("", Add()))
			},
			in:   vals(1, 2),
			want: vals(3),
		},
		{
			name: "ConstFeedsAdd",
			build: func() *Circuit[string] {
				srcs := Par("", Primitive("", Const(10)), Primitive("", Identity(1)))
				return Seq("", srcs, Primitive("", Add()))
			},
			in:   vals(5),
			want: vals(15),
		},
		{
			name: "MismatchedSeqTruncates",
			build: func() *Circuit[string] {
				// Left fans out 1 wire into a right that wants 2: the adder
				// sees a single input and yields None.
				return Seq("", Primitive("", Identity(1)), Primitive("", Add()))
			},
			in:   vals(7),
			want: vals(nil),
		},
		{
			name: "ShortInputUnderfillsPar",
			build: func() *Circuit[string] {
				return Par("", Primitive("", Identity(2)), Primitive("", Identity(2)))
			},
			in:   vals(1, 2, 3),
			want: vals(1, 2, 3),
		},
		{
			name: "NonePropagates",
			build: func() *Circuit[string] {
				pairs := Par("", Primitive("", Add()), Primitive("", Add()))
				return Seq("", pairs, Primitive("", Add()))
			},
			in:   vals(1, 2, nil, 4),
			want: vals(nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Run(tt.build(), tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Run mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// label+trace annotation used by annotate tests.
type traced struct {
	Label string
	Trace Trace
}

func collectTraced(label string, tr Trace) traced { return traced{Label: label, Trace: tr} }

func TestRunAnnotate(t *testing.T) {
	c := Seq("root",
		Par("pair", Primitive("cs", CompareSwap(2, 0, 1)), Primitive("wire", Identity(1))),
		Primitive("tail", Identity(3)))
	in := vals(1, 2, 3)

	annotated, out := RunAnnotate(collectTraced, c, in)

	if diff := cmp.Diff(Run(c, in), out); diff != "" {
		t.Errorf("RunAnnotate output disagrees with Run (-want +got):\n%s", diff)
	}

	// The root trace covers the full run.
	root := annotated.Data
	if root.Label != "root" {
		t.Errorf("root label = %q, want root (labels must survive collection)", root.Label)
	}
	if diff := cmp.Diff(in, root.Trace.In); diff != "" {
		t.Errorf("root trace input (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(out, root.Trace.Out); diff != "" {
		t.Errorf("root trace output (-want +got):\n%s", diff)
	}

	// Each Par child saw exactly its slice.
	cs := annotated.Left.Left.Data
	if diff := cmp.Diff(vals(1, 2), cs.Trace.In); diff != "" {
		t.Errorf("compare-swap trace input (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(vals(2, 1), cs.Trace.Out); diff != "" {
		t.Errorf("compare-swap trace output (-want +got):\n%s", diff)
	}
	wireN := annotated.Left.Right.Data
	if diff := cmp.Diff(vals(3), wireN.Trace.In); diff != "" {
		t.Errorf("wire trace input (-want +got):\n%s", diff)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	c := Seq("", Par("", Primitive("", CompareSwap(2, 1, 0)), Primitive("", Add())),
		Primitive("", Identity(3)))
	in := vals(4, nil, 2, 2)

	first := Run(c, in)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, Run(c, in)); diff != "" {
			t.Fatalf("run %d differed (-want +got):\n%s", i, diff)
		}
	}
}

package networks

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mkoster/circuitry/pkg/circuit"
)

func someAll(fs ...float64) []circuit.Value {
	out := make([]circuit.Value, len(fs))
	for i, f := range fs {
		out[i] = circuit.Some(f)
	}
	return out
}

func sortedAsc(vs []circuit.Value) bool {
	for i := 1; i < len(vs); i++ {
		if vs[i].Less(vs[i-1]) {
			return false
		}
	}
	return true
}

func sortedDesc(vs []circuit.Value) bool {
	for i := 1; i < len(vs); i++ {
		if vs[i-1].Less(vs[i]) {
			return false
		}
	}
	return true
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		network string
		n       int
		wantErr error
	}{
		{"Bitonic8", NameBitonic, 8, nil},
		{"BitonicNotPowerOfTwo", NameBitonic, 6, ErrBadWidth},
		{"Merge4", NameMerge, 4, nil},
		{"Bubble5", NameBubble, 5, nil},
		{"Insertion1", NameInsertion, 1, nil},
		{"Reduce7", NameReduce, 7, nil},
		{"ZeroWidth", NameBubble, 0, ErrBadWidth},
		{"Unknown", "quicksort", 4, ErrUnknownNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Build(tt.network, tt.n, false)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := c.FanIn(); got != tt.n {
				t.Errorf("FanIn = %d, want %d", got, tt.n)
			}
		})
	}
}

func TestSortingNetworks(t *testing.T) {
	perm8 := []float64{5, 2, 8, 1, 7, 3, 6, 4}

	tests := []struct {
		name       string
		network    string
		n          int
		descending bool
		in         []float64
	}{
		{"BitonicAscending", NameBitonic, 8, false, perm8},
		{"BitonicDescending", NameBitonic, 8, true, perm8},
		{"BubbleAscending", NameBubble, 6, false, []float64{3, 1, 4, 1, 5, 9}},
		{"BubbleDescending", NameBubble, 4, true, []float64{1, 2, 3, 4}},
		{"InsertionAscending", NameInsertion, 5, false, []float64{9, 9, 1, 0, 5}},
		{"InsertionDescending", NameInsertion, 5, true, []float64{2, 7, 1, 8, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Build(tt.network, tt.n, tt.descending)
			if err != nil {
				t.Fatal(err)
			}
			out := circuit.Run(c, someAll(tt.in...))
			if len(out) != tt.n {
				t.Fatalf("output length = %d, want %d", len(out), tt.n)
			}
			if tt.descending && !sortedDesc(out) {
				t.Errorf("output not descending: %s", circuit.FormatValues(out))
			}
			if !tt.descending && !sortedAsc(out) {
				t.Errorf("output not ascending: %s", circuit.FormatValues(out))
			}
		})
	}
}

func TestSortingNetworksRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, name := range []string{NameBitonic, NameBubble, NameInsertion} {
		n := 8
		c, err := Build(name, n, false)
		if err != nil {
			t.Fatal(err)
		}
		for trial := 0; trial < 50; trial++ {
			in := make([]circuit.Value, n)
			for i := range in {
				in[i] = circuit.Some(float64(r.Intn(1000)))
			}
			if out := circuit.Run(c, in); !sortedAsc(out) {
				t.Fatalf("%s failed on %s -> %s", name,
					circuit.FormatValues(in), circuit.FormatValues(out))
			}
		}
	}
}

func TestSortingWithMissingValues(t *testing.T) {
	// None orders below every present value, so holes sink to the low end
	// of an ascending sort.
	c, err := Build(NameBubble, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	in := []circuit.Value{circuit.Some(3), circuit.None, circuit.Some(1), circuit.None}
	want := []circuit.Value{circuit.None, circuit.None, circuit.Some(1), circuit.Some(3)}
	if diff := cmp.Diff(want, circuit.Run(c, in)); diff != "" {
		t.Errorf("sort with holes (-want +got):\n%s", diff)
	}
}

func TestMergeSortsBitonicInput(t *testing.T) {
	// Ascending then descending halves form a bitonic sequence.
	in := someAll(1, 4, 6, 7, 8, 5, 3, 2)
	c, err := Build(NameMerge, 8, false)
	if err != nil {
		t.Fatal(err)
	}
	out := circuit.Run(c, in)
	if !sortedAsc(out) {
		t.Errorf("merge output not sorted: %s", circuit.FormatValues(out))
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name string
		n    int
		in   []circuit.Value
		want []circuit.Value
	}{
		{"SingleWire", 1, someAll(42), someAll(42)},
		{"Pair", 2, someAll(2, 3), someAll(5)},
		{"Seven", 7, someAll(1, 2, 3, 4, 5, 6, 7), someAll(28)},
		{
			name: "HolePoisonsSum",
			n:    3,
			in:   []circuit.Value{circuit.Some(1), circuit.None, circuit.Some(3)},
			want: []circuit.Value{circuit.None},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Reduce(tt.n)
			if got := c.FanOut(); got != 1 {
				t.Fatalf("FanOut = %d, want 1", got)
			}
			if diff := cmp.Diff(tt.want, circuit.Run(c, tt.in)); diff != "" {
				t.Errorf("Reduce(%d) (-want +got):\n%s", tt.n, diff)
			}
		})
	}
}

func TestSimplifyKeepsNetworksSorting(t *testing.T) {
	c, err := Build(NameBitonic, 8, false)
	if err != nil {
		t.Fatal(err)
	}
	s := circuit.Simplify(c)
	in := someAll(8, 6, 7, 5, 3, 0, 9, 1)
	if diff := cmp.Diff(circuit.Run(c, in), circuit.Run(s, in)); diff != "" {
		t.Errorf("simplified bitonic differs (-original +simplified):\n%s", diff)
	}
	if got, want := s.FanIn(), c.FanIn(); got != want {
		t.Errorf("FanIn changed: %d -> %d", want, got)
	}
}

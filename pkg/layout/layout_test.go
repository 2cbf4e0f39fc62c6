package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/mkoster/circuitry/pkg/circuit"
	"github.com/mkoster/circuitry/pkg/networks"
)

func TestPlacePrimitive(t *testing.T) {
	tests := []struct {
		name     string
		gate     circuit.Gate
		wantSize Size
		wantIn   []Point
		wantOut  []Point
	}{
		{
			name:     "Identity",
			gate:     circuit.Identity(2),
			wantSize: Size{ConnectorWidth, 2},
			wantIn:   []Point{{0, 0.5}, {0, 1.5}},
			wantOut:  []Point{{ConnectorWidth, 0.5}, {ConnectorWidth, 1.5}},
		},
		{
			name:     "Add",
			gate:     circuit.Add(),
			wantSize: Size{1, 2},
			wantIn:   []Point{{0, 0.5}, {0, 1.5}},
			wantOut:  []Point{{1, 1}},
		},
		{
			name:     "Const",
			gate:     circuit.Const(3),
			wantSize: Size{1, 1},
			wantIn:   nil,
			wantOut:  []Point{{1, 0.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placed := Place(circuit.Primitive("g", tt.gate))
			lay := placed.Data.Layout

			if lay.ID != 0 {
				t.Errorf("ID = %d, want 0", lay.ID)
			}
			if lay.Unit != 1.0 {
				t.Errorf("Unit = %v, want 1", lay.Unit)
			}
			if lay.Size != tt.wantSize {
				t.Errorf("Size = %v, want %v", lay.Size, tt.wantSize)
			}
			if diff := cmp.Diff(tt.wantIn, lay.In); diff != "" {
				t.Errorf("In terminals (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantOut, lay.Out); diff != "" {
				t.Errorf("Out terminals (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlacePar(t *testing.T) {
	// A wide connector above a narrow gate box: the combined box takes the
	// max width and the sum of heights plus the gap.
	c := circuit.Par("p",
		circuit.Primitive("top", circuit.Identity(2)),
		circuit.Primitive("bottom", circuit.Add()))
	placed := Place(c)
	lay := placed.Data.Layout

	wantH := 2 + Gap + 2
	if lay.Size != (Size{1, wantH}) {
		t.Errorf("Size = %v, want %v", lay.Size, Size{1, wantH})
	}
	if got := len(lay.In); got != 4 {
		t.Errorf("combined In terminals = %d, want 4", got)
	}
	if got := len(lay.Out); got != 3 {
		t.Errorf("combined Out terminals = %d, want 3", got)
	}

	// The narrower child is re-centered within the combined width.
	top := placed.Left.Data.Layout
	if want := (1 - ConnectorWidth) / 2; top.Pos.X != want {
		t.Errorf("top child X = %v, want %v", top.Pos.X, want)
	}
	bottom := placed.Right.Data.Layout
	if bottom.Pos.Y != 2+Gap {
		t.Errorf("bottom child Y = %v, want %v", bottom.Pos.Y, 2+Gap)
	}

	// Terminal lists concatenate children's in order.
	if diff := cmp.Diff(append(append([]Point{}, top.In...), bottom.In...), lay.In); diff != "" {
		t.Errorf("In concatenation (-want +got):\n%s", diff)
	}
}

func TestPlaceSeq(t *testing.T) {
	c := circuit.Seq("s",
		circuit.Primitive("cs", circuit.CompareSwap(2, 1, 0)),
		circuit.Primitive("add", circuit.Add()))
	placed := Place(c)
	lay := placed.Data.Layout

	if lay.Size != (Size{ConnectorWidth + Gap + 1, 2}) {
		t.Errorf("Size = %v", lay.Size)
	}

	left := placed.Left.Data.Layout
	right := placed.Right.Data.Layout
	if right.Pos.X != ConnectorWidth+Gap {
		t.Errorf("right child X = %v, want %v", right.Pos.X, ConnectorWidth+Gap)
	}

	// Seq exposes the left child's inputs and the right child's outputs.
	if diff := cmp.Diff(left.In, lay.In); diff != "" {
		t.Errorf("In terminals (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(right.Out, lay.Out); diff != "" {
		t.Errorf("Out terminals (-want +got):\n%s", diff)
	}
}

func TestPlaceFunc(t *testing.T) {
	c := circuit.Seq("s",
		circuit.Primitive("a", circuit.Identity(1)),
		circuit.Primitive("b", circuit.Identity(1)))

	type labelled struct {
		Label string
		ID    int
	}
	placed, next := PlaceFunc(func(label string, l Layout) labelled {
		return labelled{Label: label, ID: l.ID}
	}, c)

	if next != 3 {
		t.Errorf("next id = %d, want 3", next)
	}
	want := []labelled{{"s", 0}, {"a", 1}, {"b", 2}}
	got := []labelled{placed.Data, placed.Left.Data, placed.Right.Data}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("collected annotations (-want +got):\n%s", diff)
	}
}

// collectIDs returns every assigned id in pre-order.
func collectIDs(t *circuit.Circuit[Node[string]]) []int {
	if t == nil {
		return nil
	}
	ids := []int{t.Data.Layout.ID}
	ids = append(ids, collectIDs(t.Left)...)
	return append(ids, collectIDs(t.Right)...)
}

// checkIDInvariant verifies that a node's id is the minimum of its subtree
// and that every id in the right subtree exceeds every id in the left.
func checkIDInvariant(t *testing.T, n *circuit.Circuit[Node[string]]) {
	t.Helper()
	if n == nil || n.Kind == circuit.KindPrimitive {
		return
	}
	own := n.Data.Layout.ID
	left := collectIDs(n.Left)
	right := collectIDs(n.Right)
	for _, id := range append(append([]int{}, left...), right...) {
		if id <= own {
			t.Fatalf("id %d in subtree of %d violates minimality", id, own)
		}
	}
	for _, l := range left {
		for _, r := range right {
			if r <= l {
				t.Fatalf("right id %d not above left id %d", r, l)
			}
		}
	}
	checkIDInvariant(t, n.Left)
	checkIDInvariant(t, n.Right)
}

func TestIDOrderingInvariant(t *testing.T) {
	net, err := networks.Build(networks.NameBitonic, 8, false)
	if err != nil {
		t.Fatal(err)
	}
	placed := Place(net)
	checkIDInvariant(t, placed)

	ids := collectIDs(placed)
	seen := make(map[int]bool, len(ids))
	for i, id := range ids {
		if id != i {
			t.Fatalf("pre-order position %d has id %d; ids must be dense", i, id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestByID(t *testing.T) {
	net, err := networks.Build(networks.NameBitonic, 8, false)
	if err != nil {
		t.Fatal(err)
	}
	placed := Place(net)
	total := len(collectIDs(placed))

	for id := 0; id < total; id++ {
		n, ok := ByID(placed, id)
		if !ok {
			t.Fatalf("ByID(%d) not found", id)
		}
		if n.Data.Layout.ID != id {
			t.Fatalf("ByID(%d) returned node %d", id, n.Data.Layout.ID)
		}
	}

	for _, id := range []int{-1, total, total + 100} {
		if _, ok := ByID(placed, id); ok {
			t.Errorf("ByID(%d) found a node, want not found", id)
		}
	}
}

func TestTransforms(t *testing.T) {
	net, err := networks.Build(networks.NameBubble, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	placed := Place(net)

	t.Run("TranslateComposes", func(t *testing.T) {
		p1, p2 := Point{3, -1}, Point{0.5, 2}
		twice := Translate(p2, Translate(p1, placed))
		once := Translate(p1.Add(p2), placed)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("translate composition (-once +twice):\n%s", diff)
		}
	})

	t.Run("ScaleOneIsIdentity", func(t *testing.T) {
		if diff := cmp.Diff(placed, Scale(1.0, placed)); diff != "" {
			t.Errorf("scale(1) changed the tree (-want +got):\n%s", diff)
		}
	})

	t.Run("ScaleAccumulatesUnit", func(t *testing.T) {
		scaled := Scale(2, Scale(3, placed))
		if got := scaled.Data.Layout.Unit; got != 6 {
			t.Errorf("Unit = %v, want 6", got)
		}
		if got := scaled.Data.Layout.Size.W; math.Abs(got-placed.Data.Layout.Size.W*6) > 1e-9 {
			t.Errorf("width not scaled: %v", got)
		}
	})

	t.Run("TranslateKeepsIDs", func(t *testing.T) {
		moved := Translate(Point{10, 10}, placed)
		if diff := cmp.Diff(collectIDs(placed), collectIDs(moved)); diff != "" {
			t.Errorf("ids changed (-want +got):\n%s", diff)
		}
	})
}

func TestLayoutProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("ids are dense pre-order and lookups succeed", prop.ForAll(
		func(seed int64) bool {
			r := rand.New(rand.NewSource(seed))
			placed := Place(randTree(r, 4))
			ids := collectIDs(placed)
			for i, id := range ids {
				if id != i {
					return false
				}
			}
			probe := ids[r.Intn(len(ids))]
			n, ok := ByID(placed, probe)
			return ok && n.Data.Layout.ID == probe
		},
		gen.Int64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// randTree builds a random circuit without caring about Seq fan matching;
// layout is purely structural, so mismatches don't matter here.
func randTree(r *rand.Rand, depth int) *circuit.Circuit[string] {
	if depth <= 0 || r.Intn(3) == 0 {
		switch r.Intn(4) {
		case 0:
			return circuit.Primitive("", circuit.Add())
		case 1:
			return circuit.Primitive("", circuit.Const(1))
		case 2:
			n := 1 + r.Intn(4)
			return circuit.Primitive("", circuit.CompareSwap(n, r.Intn(n), r.Intn(n)))
		default:
			return circuit.Primitive("", circuit.Identity(1+r.Intn(4)))
		}
	}
	if r.Intn(2) == 0 {
		return circuit.Par("", randTree(r, depth-1), randTree(r, depth-1))
	}
	return circuit.Seq("", randTree(r, depth-1), randTree(r, depth-1))
}

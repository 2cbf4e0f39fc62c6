package diagram

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mkoster/circuitry/pkg/circuit"
	"github.com/mkoster/circuitry/pkg/layout"
	"github.com/mkoster/circuitry/pkg/networks"
)

// flattenFixture lays out a small evaluated network and flattens it.
func flattenFixture(t *testing.T) Diagram {
	t.Helper()

	net, err := networks.Build(networks.NameBubble, 3, false)
	if err != nil {
		t.Fatal(err)
	}

	type annotated struct {
		Label string
		Trace circuit.Trace
	}
	in := []circuit.Value{circuit.Some(3), circuit.Some(1), circuit.None}
	traced, _ := circuit.RunAnnotate(func(label string, tr circuit.Trace) annotated {
		return annotated{Label: label, Trace: tr}
	}, net, in)

	placed := layout.Place(traced)
	return Flatten("bubble", Spec{Network: "bubble", Wires: 3}, placed, func(a annotated) Info {
		tr := a.Trace
		return Info{Label: a.Label, Trace: &tr}
	})
}

func TestFlatten(t *testing.T) {
	d := flattenFixture(t)

	if err := Validate(d); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if d.Name != "bubble" {
		t.Errorf("Name = %q", d.Name)
	}
	if d.Width <= 0 || d.Height <= 0 {
		t.Errorf("degenerate frame %gx%g", d.Width, d.Height)
	}

	root := d.Nodes[0]
	if root.Parent != RootParent {
		t.Errorf("root parent = %d", root.Parent)
	}
	if len(root.Inputs) != 3 || len(root.Outputs) != 3 {
		t.Errorf("root wire values %d/%d, want 3/3", len(root.Inputs), len(root.Outputs))
	}
	// The hole sorts to the front: output is [None, 1, 3].
	if root.Outputs[0] != nil {
		t.Errorf("Outputs[0] = %v, want nil", *root.Outputs[0])
	}
	if root.Outputs[2] == nil || *root.Outputs[2] != 3 {
		t.Errorf("Outputs[2] = %v, want 3", root.Outputs[2])
	}

	// Every gate node carries a gate description; composites don't.
	for _, n := range d.Nodes {
		if (n.Kind == KindGate) != (n.Gate != "") {
			t.Errorf("node %d kind %s has gate %q", n.ID, n.Kind, n.Gate)
		}
		if (n.Kind == KindGate) != (n.Detail != nil) {
			t.Errorf("node %d kind %s detail mismatch", n.ID, n.Kind)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	d := flattenFixture(t)
	d.ID = "test-id"

	data, err := Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(d, back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestUnmarshalRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
	}{
		{"Empty", nil},
		{"NonDenseIDs", []Node{{ID: 0, Parent: RootParent}, {ID: 2, Parent: 0}}},
		{"RootWithParent", []Node{{ID: 0, Parent: 3}}},
		{"ForwardParent", []Node{{ID: 0, Parent: RootParent}, {ID: 1, Parent: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(Diagram{Nodes: tt.nodes})
			if err != nil {
				t.Fatal(err)
			}
			if _, err := Unmarshal(data); err == nil {
				t.Error("Unmarshal accepted malformed diagram")
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	d := flattenFixture(t)
	path := filepath.Join(t.TempDir(), "diagram.json")

	if err := WriteFile(d, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(d, back); diff != "" {
		t.Errorf("file round trip (-want +got):\n%s", diff)
	}
}

func TestValueConversions(t *testing.T) {
	vs := []circuit.Value{circuit.Some(1.5), circuit.None, circuit.Some(-2)}
	fs := ToFloats(vs)

	if fs[0] == nil || *fs[0] != 1.5 || fs[1] != nil || fs[2] == nil || *fs[2] != -2 {
		t.Errorf("ToFloats = %v", fs)
	}
	if diff := cmp.Diff(vs, ToValues(fs)); diff != "" {
		t.Errorf("ToValues(ToFloats(v)) (-want +got):\n%s", diff)
	}
}

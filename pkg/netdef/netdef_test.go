package netdef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkoster/circuitry/pkg/circuit"
	"github.com/mkoster/circuitry/pkg/errors"
)

const sortThenSum = `
name = "sort-then-sum"

[[stage]]
label = "sort"
[[stage.gate]]
network = "bubble"
wires = 2

[[stage]]
label = "sum"
[[stage.gate]]
op = "add"
`

func TestParseAndBuild(t *testing.T) {
	def, err := Parse([]byte(sortThenSum))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if def.Name != "sort-then-sum" {
		t.Errorf("Name = %q", def.Name)
	}
	if len(def.Stages) != 2 {
		t.Fatalf("Stages = %d, want 2", len(def.Stages))
	}

	c, err := def.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.FanIn() != 2 || c.FanOut() != 1 {
		t.Errorf("fans = %d/%d, want 2/1", c.FanIn(), c.FanOut())
	}
	if c.Data != "sort-then-sum" {
		t.Errorf("root annotation = %q", c.Data)
	}

	out := circuit.Run(c, []circuit.Value{circuit.Some(3), circuit.Some(1)})
	if len(out) != 1 || !out[0].Valid || out[0].F != 4 {
		t.Errorf("Run = %v, want [4]", out)
	}
}

func TestParallelStage(t *testing.T) {
	src := `
[[stage]]
[[stage.gate]]
op = "cswap"
wires = 2
i = 1
j = 0
[[stage.gate]]
op = "id"
wires = 1
`
	def, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := def.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.FanIn() != 3 || c.FanOut() != 3 {
		t.Errorf("fans = %d/%d, want 3/3", c.FanIn(), c.FanOut())
	}

	in := []circuit.Value{circuit.Some(5), circuit.Some(2), circuit.Some(9)}
	out := circuit.Run(c, in)
	want := []float64{2, 5, 9}
	for i, w := range want {
		if !out[i].Valid || out[i].F != w {
			t.Errorf("out[%d] = %v, want %g", i, out[i], w)
		}
	}
}

func TestConstGate(t *testing.T) {
	src := `
[[stage]]
[[stage.gate]]
op = "const"
value = 2.5
`
	def, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := def.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out := circuit.Run(c, nil)
	if len(out) != 1 || !out[0].Valid || out[0].F != 2.5 {
		t.Errorf("Run = %v, want [2.5]", out)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"NotTOML", `[[stage`},
		{"NoStages", `name = "empty"`},
		{"EmptyStage", "[[stage]]"},
		{"UnknownOp", "[[stage]]\n[[stage.gate]]\nop = \"xor\"\nwires = 2"},
		{"MissingOp", "[[stage]]\n[[stage.gate]]\nwires = 2"},
		{"OpAndNetwork", "[[stage]]\n[[stage.gate]]\nop = \"add\"\nnetwork = \"bubble\"\nwires = 2"},
		{"SwapOutOfRange", "[[stage]]\n[[stage.gate]]\nop = \"cswap\"\nwires = 2\ni = 2\nj = 0"},
		{"SwapSamePosition", "[[stage]]\n[[stage.gate]]\nop = \"cswap\"\nwires = 2\ni = 1\nj = 1"},
		{"ZeroWires", "[[stage]]\n[[stage.gate]]\nop = \"id\"\nwires = 0"},
		{"UnknownNetwork", "[[stage]]\n[[stage.gate]]\nnetwork = \"shell\"\nwires = 4"},
		{"BadName", "name = \"Has Spaces\"\n[[stage]]\n[[stage.gate]]\nop = \"add\""},
		{
			"StageFanMismatch",
			"[[stage]]\n[[stage.gate]]\nop = \"add\"\n\n[[stage]]\n[[stage.gate]]\nop = \"cswap\"\nwires = 2\ni = 1\nj = 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src)); err == nil {
				t.Error("Parse accepted invalid definition")
			}
		})
	}
}

func TestParseFanMismatchCode(t *testing.T) {
	src := "[[stage]]\n[[stage.gate]]\nop = \"add\"\n\n[[stage]]\n[[stage.gate]]\nop = \"add\""
	_, err := Parse([]byte(src))
	if err == nil {
		t.Fatal("Parse accepted fan-mismatched stages")
	}
	if !errors.Is(err, errors.ErrCodeInvalidDefinition) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidDefinition)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "def.toml")
	if err := os.WriteFile(path, []byte(sortThenSum), 0644); err != nil {
		t.Fatal(err)
	}

	def, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if def.Name != "sort-then-sum" {
		t.Errorf("Name = %q", def.Name)
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("ParseFile accepted missing file")
	}
}

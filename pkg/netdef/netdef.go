// Package netdef loads circuit definitions from TOML files.
//
// A definition describes a network as a sequence of stages, each stage a
// parallel group of gates or embedded generator networks. Definitions are
// where user input enters the system, so unlike the core algebra they are
// validated strictly: unknown operations, out-of-range positions, and
// mismatched stage fans are rejected at load time with structured errors.
//
// # Format
//
//	name = "sort-then-sum"
//
//	[[stage]]
//	[[stage.gate]]
//	network = "bubble"   # embed a generator
//	wires = 4
//
//	[[stage]]
//	[[stage.gate]]
//	op = "cswap"
//	wires = 4
//	i = 3
//	j = 0
//
// Each stage is composed with Par across its gates and stages are composed
// with Seq, top to bottom.
package netdef

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mkoster/circuitry/pkg/circuit"
	"github.com/mkoster/circuitry/pkg/errors"
	"github.com/mkoster/circuitry/pkg/networks"
)

// Definition is a parsed circuit definition file.
type Definition struct {
	Name   string  `toml:"name"`
	Stages []Stage `toml:"stage"`
}

// Stage is one sequential step: its gates run side by side.
type Stage struct {
	Label string    `toml:"label"`
	Gates []GateDef `toml:"gate"`
}

// GateDef is one element of a stage: either a primitive gate (Op set) or an
// embedded generator network (Network set).
type GateDef struct {
	Op    string  `toml:"op"`
	Wires int     `toml:"wires"`
	I     int     `toml:"i"`
	J     int     `toml:"j"`
	Value float64 `toml:"value"`
	Label string  `toml:"label"`

	Network    string `toml:"network"`
	Descending bool   `toml:"descending"`
}

// Parse decodes and validates a TOML definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode definition")
	}
	if err := def.validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// ParseFile reads and parses a definition file.
func ParseFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "read %s", path)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Build composes the definition into a circuit. The definition must already
// be valid; Parse-produced definitions always are.
func (d *Definition) Build() (*circuit.Circuit[string], error) {
	var tree *circuit.Circuit[string]
	for si, st := range d.Stages {
		stage, err := buildStage(st, si)
		if err != nil {
			return nil, err
		}
		if tree == nil {
			tree = stage
			continue
		}
		if got, want := stage.FanIn(), tree.FanOut(); got != want {
			return nil, errors.New(errors.ErrCodeInvalidDefinition,
				"stage %d consumes %d wires but the previous stage produces %d", si, got, want)
		}
		tree = circuit.Seq("", tree, stage)
	}
	if tree == nil {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "definition has no stages")
	}
	if d.Name != "" {
		tree = circuit.Amend(d.Name, tree)
	}
	return tree, nil
}

func buildStage(st Stage, si int) (*circuit.Circuit[string], error) {
	var stage *circuit.Circuit[string]
	for gi, gd := range st.Gates {
		elem, err := buildElement(gd, si, gi)
		if err != nil {
			return nil, err
		}
		if stage == nil {
			stage = elem
		} else {
			stage = circuit.Par("", stage, elem)
		}
	}
	if st.Label != "" {
		stage = circuit.Amend(st.Label, stage)
	}
	return stage, nil
}

func buildElement(gd GateDef, si, gi int) (*circuit.Circuit[string], error) {
	if gd.Network != "" {
		net, err := networks.Build(gd.Network, gd.Wires, gd.Descending)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err,
				"stage %d gate %d", si, gi)
		}
		if gd.Label != "" {
			net = circuit.Amend(gd.Label, net)
		}
		return net, nil
	}

	g, err := toGate(gd)
	if err != nil {
		return nil, err
	}
	label := gd.Label
	if label == "" {
		label = g.String()
	}
	return circuit.Primitive(label, g), nil
}

func toGate(gd GateDef) (circuit.Gate, error) {
	switch gd.Op {
	case "id":
		return circuit.Identity(gd.Wires), nil
	case "cswap":
		return circuit.CompareSwap(gd.Wires, gd.I, gd.J), nil
	case "add":
		return circuit.Add(), nil
	case "const":
		return circuit.Const(gd.Value), nil
	default:
		return circuit.Gate{}, errors.New(errors.ErrCodeInvalidDefinition, "unknown op %q", gd.Op)
	}
}

func (d *Definition) validate() error {
	if d.Name != "" {
		if err := errors.ValidateNetworkName(d.Name); err != nil {
			return err
		}
	}
	if len(d.Stages) == 0 {
		return errors.New(errors.ErrCodeInvalidDefinition, "definition has no stages")
	}
	for si, st := range d.Stages {
		if len(st.Gates) == 0 {
			return errors.New(errors.ErrCodeInvalidDefinition, "stage %d has no gates", si)
		}
		for gi, gd := range st.Gates {
			if err := validateElement(gd, si, gi); err != nil {
				return err
			}
		}
	}
	// Fan compatibility across stages surfaces during Build; run it once so
	// Parse rejects definitions that could only evaluate by truncation.
	if _, err := d.Build(); err != nil {
		return err
	}
	return nil
}

func validateElement(gd GateDef, si, gi int) error {
	where := fmt.Sprintf("stage %d gate %d", si, gi)

	if gd.Network != "" {
		if gd.Op != "" {
			return errors.New(errors.ErrCodeInvalidDefinition, "%s: op and network are mutually exclusive", where)
		}
		if err := errors.ValidateNetworkName(gd.Network); err != nil {
			return err
		}
		return errors.ValidateWidth(gd.Wires)
	}

	switch gd.Op {
	case "id", "cswap":
		if err := errors.ValidateWidth(gd.Wires); err != nil {
			return err
		}
		if gd.Op == "cswap" {
			if gd.I < 0 || gd.I >= gd.Wires || gd.J < 0 || gd.J >= gd.Wires {
				return errors.New(errors.ErrCodeInvalidDefinition,
					"%s: positions %d/%d out of range for %d wires", where, gd.I, gd.J, gd.Wires)
			}
			if gd.I == gd.J {
				return errors.New(errors.ErrCodeInvalidDefinition,
					"%s: compare positions must differ", where)
			}
		}
		return nil
	case "add", "const":
		return nil
	case "":
		return errors.New(errors.ErrCodeInvalidDefinition, "%s: missing op or network", where)
	default:
		return errors.New(errors.ErrCodeInvalidDefinition, "%s: unknown op %q", where, gd.Op)
	}
}

package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mkoster/circuitry/pkg/circuit"
	"github.com/mkoster/circuitry/pkg/networks"
)

// networkInfo describes one generator for the listing.
type networkInfo struct {
	wires string
	desc  string
}

var networkInfos = map[string]networkInfo{
	networks.NameBitonic:   {"power of two", "Batcher's bitonic sorter"},
	networks.NameMerge:     {"power of two", "bitonic merge stage"},
	networks.NameBubble:    {"any", "bubble sort network"},
	networks.NameInsertion: {"any", "insertion sort network"},
	networks.NameReduce:    {"any", "pairwise addition tree"},
}

// sampleWidth is the wire count used for the gate-count column. Eight is
// valid for every generator, including the power-of-two ones.
const sampleWidth = 8

// networksCommand creates the networks command listing available generators.
func (c *CLI) networksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List the available network generators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNetworks()
		},
	}
}

func runNetworks() error {
	rows := [][]string{}
	for _, name := range networks.Names() {
		info := networkInfos[name]

		gates := "-"
		if circ, err := networks.Build(name, sampleWidth, false); err == nil {
			gates = fmt.Sprintf("%d", countPrimitives(circ))
		}

		rows = append(rows, []string{name, info.wires, gates, info.desc})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Network", "Wires", fmt.Sprintf("Gates (%d wires)", sampleWidth), "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			if col == 3 {
				return StyleDim
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	return nil
}

// countPrimitives counts the gate leaves of a circuit tree.
func countPrimitives[A any](c *circuit.Circuit[A]) int {
	if c.Kind == circuit.KindPrimitive {
		return 1
	}
	return countPrimitives(c.Left) + countPrimitives(c.Right)
}

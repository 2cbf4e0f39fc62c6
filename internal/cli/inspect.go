package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mkoster/circuitry/pkg/diagram"
	"github.com/mkoster/circuitry/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing a laid-out circuit.
func (c *CLI) inspectCommand() *cobra.Command {
	var inputsStr string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [diagram.json]",
		Short: "Browse a laid-out circuit node by node in the terminal",
		Long: `Browse the nodes of a laid-out circuit interactively.

The diagram comes either from a JSON file (produced by 'render -f json')
or from a generator selected with --network and --wires. Each row is one
tree node with its geometry; the pane below shows the selected node's
gate, terminals, and observed wire values.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				d, err := diagram.ReadFile(args[0])
				if err != nil {
					return err
				}
				return runInspect(d)
			}

			inputs, err := parseInputs(inputsStr)
			if err != nil {
				return err
			}
			opts.Inputs = inputs
			opts.Formats = []string{pipeline.FormatJSON}

			// The alternate screen owns the terminal, so pipeline logs
			// are discarded.
			runner := pipeline.NewRunner(newLogger(io.Discard, LogInfo))
			res, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return runInspect(res.Diagram)
		},
	}

	addBuildFlags(cmd, &opts)
	cmd.Flags().StringVarP(&inputsStr, "inputs", "i", "", "input values, comma-separated (use _ for a hole)")

	return cmd
}

func runInspect(d diagram.Diagram) error {
	m := newInspectModel(d)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// inspectModel - Interactive node browser
// =============================================================================

// inspectModel is the bubbletea model for browsing diagram nodes.
type inspectModel struct {
	diagram diagram.Diagram
	cursor  int
	offset  int
	height  int
}

func newInspectModel(d diagram.Diagram) inspectModel {
	return inspectModel{diagram: d, height: 15}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.diagram.Nodes)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "g":
			m.cursor, m.offset = 0, 0
		case "G":
			m.cursor = len(m.diagram.Nodes) - 1
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 14
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	d := m.diagram
	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s  %g×%g", d.Name, d.Width, d.Height)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(d.Nodes) {
		end = len(d.Nodes)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		n := d.Nodes[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		label := n.Label
		if n.Kind == diagram.KindGate {
			label = n.Gate
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", n.ID),
			n.Kind,
			label,
			fmt.Sprintf("%g,%g", n.X, n.Y),
			fmt.Sprintf("%g×%g", n.Width, n.Height),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Kind", "Label", "Position", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return listDimStyle
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(d.Nodes))))
	b.WriteString("\n\n")
	b.WriteString(m.detailView())

	return b.String()
}

// detailView renders the selected node's properties.
func (m inspectModel) detailView() string {
	if len(m.diagram.Nodes) == 0 {
		return ""
	}
	n := m.diagram.Nodes[m.cursor]

	key := lipgloss.NewStyle().Foreground(colorGray).Width(10)
	line := func(k, v string) string {
		return key.Render(k) + " " + StyleValue.Render(v) + "\n"
	}

	var b strings.Builder
	parent := "none"
	if n.Parent != diagram.RootParent {
		parent = fmt.Sprintf("%d", n.Parent)
	}
	b.WriteString(line("parent", parent))

	if n.Detail != nil {
		b.WriteString(line("gate", n.Gate))
		if n.Detail.Op == "cswap" {
			b.WriteString(line("compares", fmt.Sprintf("wire %d against wire %d", n.Detail.I, n.Detail.J)))
		}
	}
	b.WriteString(line("terminals", fmt.Sprintf("%d in, %d out", len(n.TerminalsIn), len(n.TerminalsOut))))

	if n.Inputs != nil {
		b.WriteString(line("inputs", fmtWires(n.Inputs)))
		b.WriteString(line("outputs", fmtWires(n.Outputs)))
	}

	return b.String()
}

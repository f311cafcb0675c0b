package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/boradatti/gummygrid/pkg/grid"
	"github.com/boradatti/gummygrid/pkg/gummygrid"
	"github.com/boradatti/gummygrid/pkg/random"
	"github.com/boradatti/gummygrid/pkg/render"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	rows int
	cols int
	salt int32
}

// previewCommand creates the preview command, an interactive terminal view
// that re-renders the avatar pattern as the seed is typed.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [seed]",
		Short: "Explore seeds interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := ""
			if len(args) == 1 {
				seed = args[0]
			}
			model := newPreviewModel(seed, &opts)
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&opts.rows, "rows", gummygrid.DefaultRows, "grid rows")
	cmd.Flags().IntVar(&opts.cols, "cols", gummygrid.DefaultColumns, "grid columns")
	cmd.Flags().Int32Var(&opts.salt, "salt", 0, "seed salt")

	return cmd
}

// previewModel is the bubbletea model for interactive seed exploration.
type previewModel struct {
	seed    []rune
	rng     *random.Randomizer
	opts    grid.Options
	palette []render.Color

	cells [][]bool
	color string
	err   error
}

func newPreviewModel(seed string, opts *previewOpts) *previewModel {
	def := gummygrid.DefaultConfig()
	m := &previewModel{
		seed: []rune(seed),
		rng:  random.New(opts.salt),
		opts: grid.Options{
			Rows:             opts.rows,
			Columns:          opts.cols,
			VerticalSymmetry: false,
			EnsureTopBottom:  true,
			EnsureLeftRight:  true,
			FillBias:         gummygrid.DefaultFillBias,
		},
		palette: def.Style.CellFill,
	}
	m.rebuild()
	return m
}

// rebuild regenerates the pattern for the current seed. Grid fills draw
// first, as in the SVG pipeline, so the previewed pattern matches what
// generate would emit; the fill color is a representative single draw.
func (m *previewModel) rebuild() {
	m.rng.SetSeed(string(m.seed))

	g, err := grid.New(m.opts, m.rng)
	if err != nil {
		m.err = err
		return
	}
	g.Build()

	rows, cols := g.Size()
	cells := make([][]bool, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			cells[r][c] = g.Filled(r, c)
		}
	}
	m.cells = cells

	idx, err := m.rng.ChoiceIndex(len(m.palette), nil)
	if err != nil {
		m.err = err
		return
	}
	m.color = m.palette[idx].Value()
	m.err = nil
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.seed) > 0 {
			m.seed = m.seed[:len(m.seed)-1]
			m.rebuild()
		}
	case tea.KeyRunes, tea.KeySpace:
		m.seed = append(m.seed, keyMsg.Runes...)
		m.rebuild()
	}
	return m, nil
}

func (m *previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Gummygrid Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("type to edit the seed  esc quit"))
	b.WriteString("\n\n")
	b.WriteString("seed: " + StyleHighlight.Render(string(m.seed)) + "▏\n\n")

	if m.err != nil {
		b.WriteString(StyleDim.Render("error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(m.color))
	for _, row := range m.cells {
		for _, on := range row {
			if on {
				b.WriteString(filled.Render("██"))
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

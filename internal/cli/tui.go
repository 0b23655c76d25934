package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/resolve"
	"github.com/matzehuels/autolayout/pkg/solver"
)

// keyboardShare is the fraction of the container height a keyboard toggled
// on in the explorer covers.
const keyboardShare = 0.4

var (
	exploreHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	exploreLabelStyle = lipgloss.NewStyle().Foreground(colorGray)
	exploreErrStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

type exploreOptions struct {
	env    envFlags
	step   float64
	guides bool
}

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var opts exploreOptions

	cmd := &cobra.Command{
		Use:   "explore <scenario>",
		Short: "Resize and rotate a scenario interactively",
		Long: `Open an interactive view of a scenario's frames.

  ←/→  narrower / wider      ↑/↓  shorter / taller
  r    rotate                t    toggle keyboard
  g    toggle guides         q    quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Engine warnings would tear the alternate screen.
			ctx := withLogger(cmd.Context(), log.New(io.Discard))
			sc, err := c.load(ctx, args[0], opts.env)
			if err != nil {
				return err
			}
			m := newExploreModel(ctx, sc, opts.step, opts.guides)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	opts.env.register(cmd)
	cmd.Flags().Float64Var(&opts.step, "step", 10, "points per resize key press")
	cmd.Flags().BoolVar(&opts.guides, "guides", false, "list layout guides")

	return cmd
}

// exploreModel is the bubbletea model behind explore. Every key press that
// changes the environment re-solves synchronously; layouts are small.
type exploreModel struct {
	ctx      context.Context
	sc       *loaded
	step     float64
	guides   bool
	keyboard bool
	res      *solver.Result
	err      error
}

func newExploreModel(ctx context.Context, sc *loaded, step float64, guides bool) exploreModel {
	m := exploreModel{
		ctx:      ctx,
		sc:       sc,
		step:     step,
		guides:   guides,
		keyboard: sc.Engine.Environment().Keyboard.Visible,
	}
	m.res, m.err = sc.Engine.Layout(ctx)
	return m
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	env := m.sc.Engine.Environment()
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		env.Size.Width = max(0, env.Size.Width-m.step)
	case "right", "l":
		env.Size.Width += m.step
	case "up", "k":
		env.Size.Height = max(0, env.Size.Height-m.step)
	case "down", "j":
		env.Size.Height += m.step
	case "r":
		env = env.Rotated()
	case "t":
		m.keyboard = !m.keyboard
	case "g":
		m.guides = !m.guides
		return m, nil
	default:
		return m, nil
	}
	m.relayout(env)
	return m, nil
}

// relayout applies env and re-solves. A docked keyboard is refitted to the
// bottom edge; an undocked one keeps its frame.
func (m *exploreModel) relayout(env resolve.Environment) {
	switch {
	case !m.keyboard:
		env.Keyboard = resolve.Keyboard{}
	case !env.Keyboard.Undocked:
		h := env.Size.Height * keyboardShare
		env.Keyboard = resolve.Keyboard{
			Visible: true,
			Frame:   layout.Frame{Y: env.Size.Height - h, Width: env.Size.Width, Height: h},
		}
	}
	if m.err = m.sc.Engine.SetEnvironment(m.ctx, env); m.err != nil {
		return
	}
	m.res, m.err = m.sc.Engine.Layout(m.ctx)
}

func (m exploreModel) View() string {
	var b strings.Builder
	env := m.sc.Engine.Environment()

	b.WriteString(StyleTitle.Render("autolayout · " + m.sc.Name))
	b.WriteString("\n")
	b.WriteString(m.status(env))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(exploreErrStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	} else if m.res != nil {
		b.WriteString(framesTable(m.res, m.guides))
		b.WriteString("\n")
		for _, d := range m.res.Diagnostics {
			b.WriteString(StyleWarning.Render(iconWarning + " " + d.Message))
			b.WriteString("\n")
		}
		if n := len(m.res.Unsatisfied); n > 0 {
			b.WriteString(StyleDim.Render(fmt.Sprintf("%d optional constraints unsatisfied", n)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(exploreHelpStyle.Render("←/→ width  ↑/↓ height  r rotate  t keyboard  g guides  q quit"))
	return b.String()
}

func (m exploreModel) status(env resolve.Environment) string {
	hc, vc := env.SizeClasses()
	kb := "hidden"
	if env.Keyboard.Visible {
		kb = "near " + env.KeyboardNearEdges().String()
	}
	parts := []string{
		exploreLabelStyle.Render("size ") + StyleValue.Render(fmt.Sprintf("%s × %s", num(env.Size.Width), num(env.Size.Height))),
		exploreLabelStyle.Render("classes ") + StyleValue.Render(hc.String()+"/"+vc.String()),
		exploreLabelStyle.Render("keyboard ") + StyleValue.Render(kb),
	}
	for _, sw := range m.sc.Switches {
		sel := sw.Selected()
		if sel == "" {
			sel = "-"
		}
		parts = append(parts, exploreLabelStyle.Render(sw.Name()+" ")+StyleValue.Render(sel))
	}
	return strings.Join(parts, StyleDim.Render("  ·  "))
}

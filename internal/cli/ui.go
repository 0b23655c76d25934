package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/autolayout/pkg/solver"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - guides
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleGuide    = lipgloss.NewStyle().Foreground(colorBlue)
	styleConflict = lipgloss.NewStyle().Foreground(colorRed)
	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// Status lines go to stderr so stdout stays clean for rendered output.
var statusOut io.Writer = os.Stderr

func printSuccess(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented dim line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string, cached bool) {
	line := "  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path)
	if cached {
		line += " " + styleCached.Render("cached")
	}
	fmt.Fprintln(statusOut, line)
}

// printDiagnostics reports everything the solver gave up on.
func printDiagnostics(res *solver.Result) {
	for _, d := range res.Diagnostics {
		printWarning("%s", d.Message)
		if d.Dropped != "" {
			printDetail("dropped %s", d.Dropped)
		}
	}
	for _, c := range res.Unsatisfied {
		printDetail("unsatisfied %s", c)
	}
}

// =============================================================================
// Frames Table
// =============================================================================

// framesTable renders solved frames as a table. Items named by a
// diagnostic are red; guides are blue and only listed when guides is set.
func framesTable(res *solver.Result, guides bool) string {
	bad := make(map[string]bool)
	for _, d := range res.Diagnostics {
		bad[d.Item] = true
	}
	for _, c := range res.Dropped {
		for _, it := range c.Items() {
			bad[it.ID()] = true
		}
	}

	var frames []solver.ItemFrame
	for _, f := range res.Frames {
		if f.Guide && !guides {
			continue
		}
		frames = append(frames, f)
	}

	rows := make([][]string, 0, len(frames))
	for _, f := range frames {
		owner := f.Owner
		if owner == "" {
			owner = "-"
		}
		rows = append(rows, []string{
			f.Item.ID(), owner,
			num(f.Frame.X), num(f.Frame.Y), num(f.Frame.Width), num(f.Frame.Height),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Item", "Owner", "X", "Y", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col >= 2 {
				base = base.Align(lipgloss.Right)
			}
			if row < 0 || row >= len(frames) {
				return base
			}
			f := frames[row]
			switch {
			case bad[f.Item.ID()]:
				return base.Inherit(styleConflict)
			case f.Guide:
				return base.Inherit(styleGuide)
			case col == 1:
				return base.Foreground(colorDim)
			}
			return base
		})
	return t.Render()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/render"
)

// Options configures constraint graph rendering.
type Options struct {
	// Detailed adds intrinsic sizes and constant constraints to node labels
	// and identifiers and priorities to edge labels.
	Detailed bool
	// Conflicts lists constraint identifiers drawn in red.
	Conflicts []string
}

// ToDOT converts a layout tree and its constraints to Graphviz DOT.
//
// Elements are boxes and guides dashed boxes. Ownership is drawn as dotted
// edges without arrowheads; every constraint relating two items becomes an
// edge from its first item to its second. Constraints on items outside tree
// are left out.
func ToDOT(tree *layout.Tree, constraints []*constraint.Constraint, opts Options) string {
	conflicts := make(map[string]bool, len(opts.Conflicts))
	for _, id := range opts.Conflicts {
		conflicts[id] = true
	}

	constants := make(map[string][]string)
	var edges []*constraint.Constraint
	for _, c := range constraints {
		if !tree.Contains(c.First().Item) {
			continue
		}
		if !c.HasSecond() {
			constants[c.First().Item.ID()] = append(constants[c.First().Item.ID()], constantLabel(c, opts.Detailed))
			continue
		}
		if tree.Contains(c.Second().Item) {
			edges = append(edges, c)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=monospace, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=monospace, fontsize=10];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, e := range tree.Elements() {
		label := elementLabel(e, constants[e.ID()], opts.Detailed)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if e.IsHidden() {
			attrs = append(attrs, "fontcolor=grey50", "color=grey50")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", e.ID(), strings.Join(attrs, ", "))
	}
	for _, g := range tree.Guides() {
		label := g.ID()
		if opts.Detailed && len(constants[g.ID()]) > 0 {
			label += "\n" + strings.Join(constants[g.ID()], "\n")
		}
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\", fontcolor=\"#3b82f6\", color=\"#3b82f6\"];\n", g.ID(), label)
	}

	buf.WriteString("\n")
	for _, e := range tree.Elements() {
		for _, c := range e.Children() {
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted, arrowhead=none, color=grey60];\n", e.ID(), c.ID())
		}
		for _, g := range e.Guides() {
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted, arrowhead=none, color=grey60];\n", e.ID(), g.ID())
		}
	}
	for _, g := range tree.Guides() {
		if g.IsBuiltin() {
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted, arrowhead=none, color=grey60];\n", g.Owner().ID(), g.ID())
		}
	}

	buf.WriteString("\n")
	for _, c := range edges {
		attrs := []string{fmt.Sprintf("label=%q", edgeLabel(c, opts.Detailed))}
		switch {
		case conflicts[c.Identifier()]:
			attrs = append(attrs, "color=\"#dc2626\"", "fontcolor=\"#dc2626\"", "penwidth=2")
		case !c.IsRequired():
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.First().Item.ID(), c.Second().Item.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func elementLabel(e *layout.Element, constants []string, detailed bool) string {
	if !detailed {
		return e.ID()
	}
	parts := []string{e.ID()}
	if s := e.IntrinsicSize(layout.Traits{}); s != layout.NoIntrinsicSize {
		parts = append(parts, "intrinsic: "+formatDim(s.Width)+" x "+formatDim(s.Height))
	}
	if e.IsHidden() {
		parts = append(parts, "hidden")
	}
	parts = append(parts, constants...)
	return strings.Join(parts, "\n")
}

// edgeLabel drops the item names, which the edge already shows.
func edgeLabel(c *constraint.Constraint, detailed bool) string {
	var b strings.Builder
	b.WriteString(c.First().Attr.String())
	b.WriteString(" " + c.Relation().String() + " ")
	if m := c.Multiplier(); m != 1 {
		b.WriteString(formatFloat(m) + " * ")
	}
	b.WriteString(c.Second().Attr.String())
	switch k := c.Constant(); {
	case k > 0:
		b.WriteString(" + " + formatFloat(k))
	case k < 0:
		b.WriteString(" - " + formatFloat(-k))
	}
	if detailed {
		if !c.IsRequired() {
			b.WriteString(" @" + formatFloat(float64(c.Priority())))
		}
		b.WriteString("\n[" + c.Identifier() + "]")
	}
	return b.String()
}

func constantLabel(c *constraint.Constraint, detailed bool) string {
	s := c.First().Attr.String() + " " + c.Relation().String() + " " + formatFloat(c.Constant())
	if detailed && !c.IsRequired() {
		s += " @" + formatFloat(float64(c.Priority()))
	}
	return s
}

func formatDim(v float64) string {
	if v < 0 {
		return "-"
	}
	return formatFloat(v)
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion. A scale of 2.0
// doubles the resolution.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

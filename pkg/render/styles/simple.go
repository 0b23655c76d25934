package styles

import (
	"bytes"
	"fmt"
)

var simpleFills = []string{"#ffffff", "#f2f4f7", "#e4e8ee", "#d5dbe4", "#c7cfda"}

// Simple draws grey boxes shaded by depth on a white background.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", width, height)
}

func (Simple) RenderBox(buf *bytes.Buffer, b Box) {
	if b.Guide {
		fmt.Fprintf(buf, `  <rect id="guide-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#3b82f6" stroke-width="1" stroke-dasharray="4 3"/>`+"\n",
			EscapeXML(b.ID), b.X, b.Y, b.W, b.H)
		return
	}
	stroke := "#333333"
	if b.Conflict {
		stroke = "#dc2626"
	}
	fill := simpleFills[min(b.Depth, len(simpleFills)-1)]
	fmt.Fprintf(buf, `  <rect id="item-%s" class="item" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H, fill, stroke)
}

func (Simple) RenderLabel(buf *bytes.Buffer, b Box) {
	renderLabel(buf, b, "#333333")
}

func renderLabel(buf *bytes.Buffer, b Box, color string) {
	if b.W < 12 || b.H < 8 {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		b.CX(), b.CY(), FontSize(b), color, EscapeXML(TruncateLabel(b)))
}

package styles

import (
	"bytes"
	"fmt"
)

// Blueprint draws white outlines over a gridded blue background.
type Blueprint struct{}

func (Blueprint) Name() string { return "blueprint" }

func (Blueprint) RenderDefs(buf *bytes.Buffer, width, height float64) {
	buf.WriteString(`  <defs>
    <pattern id="grid" width="8" height="8" patternUnits="userSpaceOnUse">
      <path d="M 8 0 L 0 0 0 8" fill="none" stroke="#2f5fb3" stroke-width="0.5"/>
    </pattern>
  </defs>
`)
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#1d4189"/>`+"\n", width, height)
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="url(#grid)"/>`+"\n", width, height)
}

func (Blueprint) RenderBox(buf *bytes.Buffer, b Box) {
	stroke, dash := "#ffffff", ""
	switch {
	case b.Guide:
		stroke, dash = "#7dd3fc", ` stroke-dasharray="2 2"`
	case b.Conflict:
		stroke = "#fca5a5"
	}
	prefix := "item"
	if b.Guide {
		prefix = "guide"
	}
	fmt.Fprintf(buf, `  <rect id="%s-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1"%s/>`+"\n",
		prefix, EscapeXML(b.ID), b.X, b.Y, b.W, b.H, stroke, dash)
}

func (Blueprint) RenderLabel(buf *bytes.Buffer, b Box) {
	renderLabel(buf, b, "#ffffff")
}

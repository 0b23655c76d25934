// Package styles defines how wireframe boxes are drawn.
package styles

import "bytes"

// Style controls the appearance of a wireframe.
type Style interface {
	// Name identifies the style on the command line.
	Name() string
	// RenderDefs writes SVG <defs> content and the background.
	RenderDefs(buf *bytes.Buffer, width, height float64)
	// RenderBox writes the outline of one element or guide.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderLabel writes the label of a box.
	RenderLabel(buf *bytes.Buffer, b Box)
}

// Box is one solved frame in absolute coordinates.
type Box struct {
	ID         string
	Label      string
	X, Y, W, H float64
	Depth      int  // Nesting depth, 0 for the root
	Guide      bool // Layout guides are drawn but never filled
	Conflict   bool // The item is named by a diagnostic
}

// CX returns the horizontal center.
func (b Box) CX() float64 { return b.X + b.W/2 }

// CY returns the vertical center.
func (b Box) CY() float64 { return b.Y + b.H/2 }

// ByName returns the style registered under name.
func ByName(name string) (Style, bool) {
	switch name {
	case "", "simple":
		return Simple{}, true
	case "blueprint":
		return Blueprint{}, true
	}
	return nil, false
}

// Names lists the available style names.
func Names() []string { return []string{"simple", "blueprint"} }

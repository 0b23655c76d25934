package layout

// NoIntrinsicMetric marks an axis on which an element has no intrinsic size.
const NoIntrinsicMetric = -1.0

// Point is a location in the coordinate space of a parent element.
type Point struct {
	X, Y float64
}

// Size is a width and height pair.
type Size struct {
	Width, Height float64
}

// NoIntrinsicSize is the intrinsic size of an element without content.
var NoIntrinsicSize = Size{Width: NoIntrinsicMetric, Height: NoIntrinsicMetric}

// Along returns the size component on axis.
func (s Size) Along(axis Axis) float64 {
	if axis == Vertical {
		return s.Height
	}
	return s.Width
}

// Has reports whether the size carries an intrinsic metric on axis.
func (s Size) Has(axis Axis) bool { return s.Along(axis) >= 0 }

// Scale multiplies both metrics by f, leaving missing metrics untouched.
func (s Size) Scale(f float64) Size {
	out := s
	if s.Width >= 0 {
		out.Width = s.Width * f
	}
	if s.Height >= 0 {
		out.Height = s.Height * f
	}
	return out
}

// Insets are distances inward from each edge of a rectangle.
// Leading and Trailing are used instead of left/right; layouts are
// resolved left-to-right.
type Insets struct {
	Top, Leading, Bottom, Trailing float64
}

// UniformInsets returns insets of v on every edge.
func UniformInsets(v float64) Insets {
	return Insets{Top: v, Leading: v, Bottom: v, Trailing: v}
}

// Add returns the edge-wise sum of two insets.
func (in Insets) Add(o Insets) Insets {
	return Insets{
		Top:      in.Top + o.Top,
		Leading:  in.Leading + o.Leading,
		Bottom:   in.Bottom + o.Bottom,
		Trailing: in.Trailing + o.Trailing,
	}
}

// Frame is a resolved rectangle. X and Y are relative to the parent element;
// Y increases downward.
type Frame struct {
	X, Y          float64
	Width, Height float64
}

// MinX returns the leading edge.
func (f Frame) MinX() float64 { return f.X }

// MaxX returns the trailing edge.
func (f Frame) MaxX() float64 { return f.X + f.Width }

// MidX returns the horizontal center.
func (f Frame) MidX() float64 { return f.X + f.Width/2 }

// MinY returns the top edge.
func (f Frame) MinY() float64 { return f.Y }

// MaxY returns the bottom edge.
func (f Frame) MaxY() float64 { return f.Y + f.Height }

// MidY returns the vertical center.
func (f Frame) MidY() float64 { return f.Y + f.Height/2 }

// Size returns the frame dimensions.
func (f Frame) Size() Size { return Size{Width: f.Width, Height: f.Height} }

// Offset returns the frame translated by (dx, dy).
func (f Frame) Offset(dx, dy float64) Frame {
	f.X += dx
	f.Y += dy
	return f
}

// Inset returns the frame shrunk by in on every edge.
func (f Frame) Inset(in Insets) Frame {
	return Frame{
		X:      f.X + in.Leading,
		Y:      f.Y + in.Top,
		Width:  f.Width - in.Leading - in.Trailing,
		Height: f.Height - in.Top - in.Bottom,
	}
}

// Value returns the coordinate or length the attribute names in this frame.
func (f Frame) Value(a Attribute) float64 {
	switch a {
	case Leading:
		return f.MinX()
	case Trailing:
		return f.MaxX()
	case CenterX:
		return f.MidX()
	case Width:
		return f.Width
	case Top:
		return f.MinY()
	case Bottom:
		return f.MaxY()
	case CenterY:
		return f.MidY()
	case Height:
		return f.Height
	}
	return 0
}

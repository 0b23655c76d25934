package layout

// Axis is a layout direction.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// String returns "horizontal" or "vertical".
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// Attribute names a geometric property of an item.
type Attribute uint8

const (
	NotAnAttribute Attribute = iota
	Leading
	Trailing
	Top
	Bottom
	CenterX
	CenterY
	Width
	Height
)

var attributeNames = [...]string{
	NotAnAttribute: "none",
	Leading:        "leading",
	Trailing:       "trailing",
	Top:            "top",
	Bottom:         "bottom",
	CenterX:        "centerX",
	CenterY:        "centerY",
	Width:          "width",
	Height:         "height",
}

// Attributes lists every attribute usable in a constraint.
var Attributes = []Attribute{Leading, Trailing, Top, Bottom, CenterX, CenterY, Width, Height}

// String returns the attribute name as used in constraint expressions.
func (a Attribute) String() string {
	if int(a) < len(attributeNames) {
		return attributeNames[a]
	}
	return "unknown"
}

// ParseAttribute looks up an attribute by name. Left and right are accepted
// as aliases for leading and trailing.
func ParseAttribute(s string) (Attribute, bool) {
	switch s {
	case "left":
		return Leading, true
	case "right":
		return Trailing, true
	}
	for _, a := range Attributes {
		if attributeNames[a] == s {
			return a, true
		}
	}
	return NotAnAttribute, false
}

// Axis returns the axis the attribute measures along.
func (a Attribute) Axis() Axis {
	switch a {
	case Top, Bottom, CenterY, Height:
		return Vertical
	}
	return Horizontal
}

// IsSize reports whether the attribute is a dimension rather than a position.
func (a Attribute) IsSize() bool { return a == Width || a == Height }

// Anchor is a named attribute of an item. It is a pure reference and never
// owns geometry. The zero Anchor refers to nothing.
type Anchor struct {
	Item Item
	Attr Attribute
}

// IsZero reports whether the anchor refers to no item.
func (a Anchor) IsZero() bool { return a.Item == nil || a.Attr == NotAnAttribute }

// Axis returns the axis of the anchor's attribute.
func (a Anchor) Axis() Axis { return a.Attr.Axis() }

// IsSize reports whether the anchor is a width or height anchor.
func (a Anchor) IsSize() bool { return a.Attr.IsSize() }

// String formats the anchor as "item.attribute".
func (a Anchor) String() string {
	if a.IsZero() {
		return "<none>"
	}
	return a.Item.ID() + "." + a.Attr.String()
}

// Compatible reports whether two anchors may be related by a constraint:
// size anchors relate to size anchors (across axes, for aspect ratios) and
// position anchors relate only to position anchors on the same axis.
func Compatible(a, b Anchor) bool {
	if a.IsSize() || b.IsSize() {
		return a.IsSize() && b.IsSize()
	}
	return a.Axis() == b.Axis()
}

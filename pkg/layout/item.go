package layout

// Item is anything that can participate in constraints: an [Element] or a
// [Guide]. The interface is sealed.
type Item interface {
	// ID returns the identifier used in diagnostics and format strings.
	ID() string
	// Owner returns the element whose coordinate space the item lives in.
	// Elements return their parent (nil for the root); guides return the
	// element they belong to.
	Owner() *Element

	Leading() Anchor
	Trailing() Anchor
	Top() Anchor
	Bottom() Anchor
	CenterX() Anchor
	CenterY() Anchor
	Width() Anchor
	Height() Anchor
	Anchor(a Attribute) Anchor

	sealed()
}

// anchors is embedded by items to hand out anchors that point back at them.
type anchors struct {
	self Item
}

func (a anchors) Leading() Anchor  { return Anchor{Item: a.self, Attr: Leading} }
func (a anchors) Trailing() Anchor { return Anchor{Item: a.self, Attr: Trailing} }
func (a anchors) Top() Anchor      { return Anchor{Item: a.self, Attr: Top} }
func (a anchors) Bottom() Anchor   { return Anchor{Item: a.self, Attr: Bottom} }
func (a anchors) CenterX() Anchor  { return Anchor{Item: a.self, Attr: CenterX} }
func (a anchors) CenterY() Anchor  { return Anchor{Item: a.self, Attr: CenterY} }
func (a anchors) Width() Anchor    { return Anchor{Item: a.self, Attr: Width} }
func (a anchors) Height() Anchor   { return Anchor{Item: a.self, Attr: Height} }

// Anchor returns the anchor for an arbitrary attribute.
func (a anchors) Anchor(attr Attribute) Anchor { return Anchor{Item: a.self, Attr: attr} }

func (anchors) sealed() {}

package layout

// DefaultMargin is the layout margin of a new element on every edge.
const DefaultMargin = 8.0

// Element is a layout participant. Its frame is solved from constraints,
// with its intrinsic content size and hugging / compression-resistance
// priorities acting as tie-breaks.
//
// Elements are built with [NewElement] and functional options, then attached
// to a [Tree]. Mutating methods invalidate the owning tree's layout.
type Element struct {
	anchors

	id       string
	parent   *Element
	children []*Element
	guides   []*Guide
	tree     *Tree

	intrinsic   Size
	content     IntrinsicContent
	hugging     [2]Priority
	compression [2]Priority
	margins     Insets
	hidden      bool
	scrollable  bool

	marginsGuide  *Guide
	safeAreaGuide *Guide
	keyboardGuide *Guide
	contentGuide  *Guide
	frameGuide    *Guide
}

// ElementOption configures an element at construction.
type ElementOption func(*Element)

// WithIntrinsicSize sets a fixed intrinsic content size. Pass
// [NoIntrinsicMetric] for an axis without a natural size.
func WithIntrinsicSize(width, height float64) ElementOption {
	return func(e *Element) { e.intrinsic = Size{Width: width, Height: height} }
}

// WithContent derives the intrinsic size from c on every layout pass.
func WithContent(c IntrinsicContent) ElementOption {
	return func(e *Element) { e.content = c }
}

// WithHugging sets the content-hugging priority on axis.
func WithHugging(axis Axis, p Priority) ElementOption {
	return func(e *Element) { e.hugging[axis] = p }
}

// WithCompressionResistance sets the compression-resistance priority on axis.
func WithCompressionResistance(axis Axis, p Priority) ElementOption {
	return func(e *Element) { e.compression[axis] = p }
}

// WithMargins sets the insets of the element's margins guide.
func WithMargins(in Insets) ElementOption {
	return func(e *Element) { e.margins = in }
}

// Hidden marks the element hidden. Hidden elements are still laid out but
// stack containers skip them.
func Hidden() ElementOption {
	return func(e *Element) { e.hidden = true }
}

// Scrollable marks the element as a scroll container whose content guide
// sizes independently of its frame.
func Scrollable() ElementOption {
	return func(e *Element) { e.scrollable = true }
}

// NewElement returns a detached element with default priorities: hugging
// [DefaultLow] and compression resistance [DefaultHigh] on both axes, no
// intrinsic size and [DefaultMargin] margins.
func NewElement(id string, opts ...ElementOption) *Element {
	e := &Element{
		id:          id,
		intrinsic:   NoIntrinsicSize,
		hugging:     [2]Priority{DefaultLow, DefaultLow},
		compression: [2]Priority{DefaultHigh, DefaultHigh},
		margins:     UniformInsets(DefaultMargin),
	}
	e.anchors = anchors{self: e}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the element identifier.
func (e *Element) ID() string { return e.id }

// Owner returns the parent element, or nil for the root.
func (e *Element) Owner() *Element { return e.parent }

// Parent returns the parent element, or nil for the root or a detached element.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's children in insertion order.
// The returned slice must not be modified.
func (e *Element) Children() []*Element { return e.children }

// Guides returns the custom guides added to this element.
func (e *Element) Guides() []*Guide { return e.guides }

// Tree returns the tree the element is attached to, or nil.
func (e *Element) Tree() *Tree { return e.tree }

// IsRoot reports whether the element is the root of its tree.
func (e *Element) IsRoot() bool { return e.tree != nil && e.tree.root == e }

// IntrinsicSize returns the element's natural size for the given traits.
// Content supplied with [WithContent] takes precedence over a fixed size.
func (e *Element) IntrinsicSize(t Traits) Size {
	if e.content != nil {
		return e.content.IntrinsicContentSize(t)
	}
	return e.intrinsic
}

// SetIntrinsicSize replaces the fixed intrinsic size and invalidates layout.
func (e *Element) SetIntrinsicSize(s Size) {
	e.intrinsic = s
	e.invalidate()
}

// SetContent replaces the intrinsic content provider and invalidates layout.
func (e *Element) SetContent(c IntrinsicContent) {
	e.content = c
	e.invalidate()
}

// InvalidateIntrinsicSize tells the tree that content-derived size changed.
func (e *Element) InvalidateIntrinsicSize() { e.invalidate() }

// Hugging returns the content-hugging priority on axis.
func (e *Element) Hugging(axis Axis) Priority { return e.hugging[axis] }

// SetHugging sets the content-hugging priority on axis.
func (e *Element) SetHugging(axis Axis, p Priority) {
	e.hugging[axis] = p
	e.invalidate()
}

// CompressionResistance returns the compression-resistance priority on axis.
func (e *Element) CompressionResistance(axis Axis) Priority { return e.compression[axis] }

// SetCompressionResistance sets the compression-resistance priority on axis.
func (e *Element) SetCompressionResistance(axis Axis, p Priority) {
	e.compression[axis] = p
	e.invalidate()
}

// Margins returns the insets of the margins guide.
func (e *Element) Margins() Insets { return e.margins }

// SetMargins replaces the insets of the margins guide.
func (e *Element) SetMargins(in Insets) {
	e.margins = in
	e.invalidate()
}

// IsHidden reports whether the element is hidden.
func (e *Element) IsHidden() bool { return e.hidden }

// SetHidden shows or hides the element.
func (e *Element) SetHidden(h bool) {
	if e.hidden == h {
		return
	}
	e.hidden = h
	e.invalidate()
}

// IsScrollable reports whether the element is a scroll container.
func (e *Element) IsScrollable() bool { return e.scrollable }

// MarginsGuide returns the guide inset from the element's bounds by its
// margins. For the root the margins are measured from the safe area.
func (e *Element) MarginsGuide() *Guide {
	if e.marginsGuide == nil {
		e.marginsGuide = newBuiltinGuide(e, GuideMargins)
	}
	return e.marginsGuide
}

// SafeAreaGuide returns the guide covering the area not obscured by system
// chrome. Only the root's safe area is driven by the environment.
func (e *Element) SafeAreaGuide() *Guide {
	if e.safeAreaGuide == nil {
		e.safeAreaGuide = newBuiltinGuide(e, GuideSafeArea)
	}
	return e.safeAreaGuide
}

// KeyboardGuide returns the guide tracking the on-screen keyboard.
func (e *Element) KeyboardGuide() *Guide {
	if e.keyboardGuide == nil {
		e.keyboardGuide = newBuiltinGuide(e, GuideKeyboard)
	}
	return e.keyboardGuide
}

// ContentGuide returns the scroll content guide. Constraints against it
// define the scrollable content size; its origin is pinned to the element's.
func (e *Element) ContentGuide() *Guide {
	if e.contentGuide == nil {
		e.contentGuide = newBuiltinGuide(e, GuideContent)
	}
	return e.contentGuide
}

// FrameGuide returns the guide that coincides with the element's frame.
func (e *Element) FrameGuide() *Guide {
	if e.frameGuide == nil {
		e.frameGuide = newBuiltinGuide(e, GuideFrame)
	}
	return e.frameGuide
}

// BuiltinGuide returns the built-in guide of the given kind. Custom guides
// are not built in; for [GuideCustom] it returns nil.
func (e *Element) BuiltinGuide(kind GuideKind) *Guide {
	switch kind {
	case GuideMargins:
		return e.MarginsGuide()
	case GuideSafeArea:
		return e.SafeAreaGuide()
	case GuideKeyboard:
		return e.KeyboardGuide()
	case GuideContent:
		return e.ContentGuide()
	case GuideFrame:
		return e.FrameGuide()
	}
	return nil
}

// HasContentGuide reports whether the content guide has been requested.
func (e *Element) HasContentGuide() bool { return e.contentGuide != nil }

func (e *Element) invalidate() {
	if e.tree != nil {
		e.tree.Invalidate()
	}
}

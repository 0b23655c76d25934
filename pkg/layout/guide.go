package layout

// GuideKind distinguishes custom guides from the built-in guides every
// element provides.
type GuideKind uint8

const (
	// GuideCustom is a free-standing rectangle solved like an element,
	// commonly used as an equal-width spacer.
	GuideCustom GuideKind = iota
	// GuideMargins is the owner's bounds inset by its layout margins.
	GuideMargins
	// GuideSafeArea is the owner's bounds minus system chrome.
	GuideSafeArea
	// GuideKeyboard tracks the on-screen keyboard frame.
	GuideKeyboard
	// GuideContent is the scrollable content area of a scroll element.
	GuideContent
	// GuideFrame coincides with a scroll element's frame.
	GuideFrame
)

var guideKindNames = [...]string{
	GuideCustom:   "custom",
	GuideMargins:  "margins",
	GuideSafeArea: "safeArea",
	GuideKeyboard: "keyboard",
	GuideContent:  "content",
	GuideFrame:    "frame",
}

// String returns the name used in constraint expressions ("margins", ...).
func (k GuideKind) String() string {
	if int(k) < len(guideKindNames) {
		return guideKindNames[k]
	}
	return "unknown"
}

// ParseGuideKind looks up a built-in guide kind by name.
func ParseGuideKind(s string) (GuideKind, bool) {
	for k := GuideMargins; k <= GuideFrame; k++ {
		if guideKindNames[k] == s {
			return k, true
		}
	}
	return GuideCustom, false
}

// Guide is a virtual layout item. It participates in constraints like an
// element but is excluded from painting and hit-testing.
type Guide struct {
	anchors

	id    string
	kind  GuideKind
	owner *Element
}

// NewGuide returns a detached custom guide. Attach it with [Tree.AddGuide].
func NewGuide(id string) *Guide {
	g := &Guide{id: id, kind: GuideCustom}
	g.anchors = anchors{self: g}
	return g
}

func newBuiltinGuide(owner *Element, kind GuideKind) *Guide {
	g := &Guide{id: owner.id + "." + kind.String(), kind: kind, owner: owner}
	g.anchors = anchors{self: g}
	return g
}

// ID returns the guide identifier. Built-in guides are named
// "<owner>.<kind>", e.g. "root.margins".
func (g *Guide) ID() string { return g.id }

// Owner returns the element the guide belongs to.
func (g *Guide) Owner() *Element { return g.owner }

// Kind returns the guide kind.
func (g *Guide) Kind() GuideKind { return g.kind }

// IsBuiltin reports whether the guide is derived from its owner.
func (g *Guide) IsBuiltin() bool { return g.kind != GuideCustom }

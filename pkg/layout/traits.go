package layout

// SizeClass is a coarse classification of available space along one axis.
type SizeClass uint8

const (
	SizeClassUnspecified SizeClass = iota
	SizeClassCompact
	SizeClassRegular
)

// String returns "compact", "regular" or "unspecified".
func (c SizeClass) String() string {
	switch c {
	case SizeClassCompact:
		return "compact"
	case SizeClassRegular:
		return "regular"
	}
	return "unspecified"
}

// Traits describe the presentation context content is sized for.
// ContentScale is the dynamic text multiplier (1 is the default size).
type Traits struct {
	HorizontalSizeClass SizeClass
	VerticalSizeClass   SizeClass
	ContentScale        float64
}

// Scale returns ContentScale, treating zero as 1.
func (t Traits) Scale() float64 {
	if t.ContentScale <= 0 {
		return 1
	}
	return t.ContentScale
}

// IntrinsicContent is implemented by hosts whose elements derive their
// natural size from content, such as text that follows the user's preferred
// text size.
type IntrinsicContent interface {
	IntrinsicContentSize(t Traits) Size
}

// IntrinsicContentFunc adapts a function to [IntrinsicContent].
type IntrinsicContentFunc func(t Traits) Size

// IntrinsicContentSize calls f(t).
func (f IntrinsicContentFunc) IntrinsicContentSize(t Traits) Size { return f(t) }

// ScaledText returns content whose intrinsic size is base multiplied by the
// traits' content scale.
func ScaledText(base Size) IntrinsicContent {
	return IntrinsicContentFunc(func(t Traits) Size { return base.Scale(t.Scale()) })
}

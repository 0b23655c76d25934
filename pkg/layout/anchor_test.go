package layout

import "testing"

func TestAttributeAxis(t *testing.T) {
	tests := []struct {
		attr Attribute
		axis Axis
		size bool
	}{
		{Leading, Horizontal, false},
		{Trailing, Horizontal, false},
		{CenterX, Horizontal, false},
		{Width, Horizontal, true},
		{Top, Vertical, false},
		{Bottom, Vertical, false},
		{CenterY, Vertical, false},
		{Height, Vertical, true},
	}

	for _, tt := range tests {
		t.Run(tt.attr.String(), func(t *testing.T) {
			if got := tt.attr.Axis(); got != tt.axis {
				t.Errorf("Axis() = %v, want %v", got, tt.axis)
			}
			if got := tt.attr.IsSize(); got != tt.size {
				t.Errorf("IsSize() = %v, want %v", got, tt.size)
			}
		})
	}
}

func TestParseAttribute(t *testing.T) {
	for _, a := range Attributes {
		got, ok := ParseAttribute(a.String())
		if !ok || got != a {
			t.Errorf("ParseAttribute(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if got, ok := ParseAttribute("left"); !ok || got != Leading {
		t.Errorf("ParseAttribute(left) = %v, %v", got, ok)
	}
	if _, ok := ParseAttribute("baseline"); ok {
		t.Error("ParseAttribute(baseline) should fail")
	}
}

func TestCompatible(t *testing.T) {
	a := NewElement("a")
	b := NewElement("b")

	tests := []struct {
		name string
		x, y Anchor
		want bool
	}{
		{"leading to trailing", a.Leading(), b.Trailing(), true},
		{"leading to centerX", a.Leading(), b.CenterX(), true},
		{"top to bottom", a.Top(), b.Bottom(), true},
		{"width to width", a.Width(), b.Width(), true},
		{"width to height", a.Width(), b.Height(), true},
		{"leading to top", a.Leading(), b.Top(), false},
		{"centerY to centerX", a.CenterY(), b.CenterX(), false},
		{"width to leading", a.Width(), b.Leading(), false},
		{"top to height", a.Top(), b.Height(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.x, tt.y); got != tt.want {
				t.Errorf("Compatible(%s, %s) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestAnchorString(t *testing.T) {
	e := NewElement("redView")
	if got := e.Leading().String(); got != "redView.leading" {
		t.Errorf("String() = %q", got)
	}
	if got := e.MarginsGuide().Top().String(); got != "redView.margins.top" {
		t.Errorf("String() = %q", got)
	}
	if got := (Anchor{}).String(); got != "<none>" {
		t.Errorf("zero String() = %q", got)
	}
}

func TestAnchorIdentity(t *testing.T) {
	e := NewElement("a")
	if e.Leading() != e.Leading() {
		t.Error("anchors of the same item and attribute should be equal")
	}
	if e.Leading() == NewElement("a").Leading() {
		t.Error("anchors of distinct items should differ")
	}
	if e.MarginsGuide() != e.MarginsGuide() {
		t.Error("built-in guides should be created once")
	}
}

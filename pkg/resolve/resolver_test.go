package resolve

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/autolayout/pkg/layout"
)

func phone() Environment {
	return Environment{
		Size:     layout.Size{Width: 375, Height: 667},
		SafeArea: layout.Insets{Top: 20, Bottom: 34},
	}
}

func TestValue(t *testing.T) {
	root := layout.NewElement("root")
	tree := layout.NewTree(root)
	a := layout.NewElement("a")
	_ = tree.Add(root, a)
	r := New(tree, phone())

	tests := []struct {
		name   string
		anchor layout.Anchor
		want   float64
		valid  bool
	}{
		{"root width", root.Width(), 375, true},
		{"root centerX", root.CenterX(), 187.5, true},
		{"safe area top", root.SafeAreaGuide().Top(), 20, true},
		{"safe area bottom", root.SafeAreaGuide().Bottom(), 633, true},
		{"margins leading", root.MarginsGuide().Leading(), 8, true},
		{"margins top", root.MarginsGuide().Top(), 28, true},
		{"hidden keyboard top", root.KeyboardGuide().Top(), 633, true},
		{"element leading", a.Leading(), 0, false},
		{"detached item", layout.NewElement("x").Top(), 0, false},
		{"zero anchor", layout.Anchor{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Value(tt.anchor)
			if ok != tt.valid {
				t.Fatalf("Value() valid = %v, want %v", ok, tt.valid)
			}
			if got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleKeyboard(t *testing.T) {
	root := layout.NewElement("root")
	tree := layout.NewTree(root)
	env := phone()
	env.Keyboard = Keyboard{Visible: true, Frame: layout.Frame{Y: 376, Width: 375, Height: 291}}
	r := New(tree, env)

	if got, _ := r.Value(root.KeyboardGuide().Top()); got != 376 {
		t.Errorf("keyboard top = %v, want 376", got)
	}
	if got, _ := r.Value(root.KeyboardGuide().Height()); got != 291 {
		t.Errorf("keyboard height = %v, want 291", got)
	}
}

func TestRootMarginsOverride(t *testing.T) {
	root := layout.NewElement("root")
	tree := layout.NewTree(root)
	env := phone()
	env.Margins = &layout.Insets{Leading: 16, Trailing: 16}
	r := New(tree, env)

	if got, _ := r.Value(root.MarginsGuide().Leading()); got != 16 {
		t.Errorf("margins leading = %v, want 16", got)
	}
	if got, _ := r.Value(root.MarginsGuide().Width()); got != 343 {
		t.Errorf("margins width = %v, want 343", got)
	}
}

func TestUnknownAllocation(t *testing.T) {
	root := layout.NewElement("root")
	tree := layout.NewTree(root)
	a := layout.NewElement("a")
	scroll := layout.NewElement("scroll", layout.Scrollable())
	_ = tree.Add(root, a)
	_ = tree.Add(root, scroll)
	_ = tree.AddGuide(root, layout.NewGuide("spacer"))
	content := scroll.ContentGuide()
	_ = a.MarginsGuide()

	r := New(tree, phone())

	var got []string
	for _, it := range r.FreeItems() {
		got = append(got, it.ID())
	}
	want := []string{"a", "scroll", "spacer", "scroll.content"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FreeItems() mismatch (-want +got):\n%s", diff)
	}
	if r.NumVars() != 16 {
		t.Errorf("NumVars() = %d, want 16", r.NumVars())
	}
	if v := r.Var(5); v.Item != layout.Item(scroll) || v.Attr != layout.Top {
		t.Errorf("Var(5) = %v.%v, want scroll.top", v.Item.ID(), v.Attr)
	}

	bg := r.Background()
	if len(bg) != 2 {
		t.Fatalf("Background() rows = %d, want 2", len(bg))
	}
	cb, _ := r.Base(content)
	sb, _ := r.Base(scroll)
	wantX := Var(cb).Minus(Var(sb))
	if diff := cmp.Diff(wantX, bg[0]); diff != "" {
		t.Errorf("content origin row mismatch (-want +got):\n%s", diff)
	}
}

func TestDerivedGuides(t *testing.T) {
	root := layout.NewElement("root")
	tree := layout.NewTree(root)
	card := layout.NewElement("card", layout.WithMargins(layout.UniformInsets(12)))
	_ = tree.Add(root, card)
	r := New(tree, phone())
	base, _ := r.Base(card)

	got, ok := r.Anchor(card.MarginsGuide().Trailing())
	if !ok {
		t.Fatal("Anchor() failed")
	}
	want := Var(base).Plus(Var(base + 2)).AddConstant(-12)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("margins trailing mismatch (-want +got):\n%s", diff)
	}

	got, _ = r.Anchor(card.SafeAreaGuide().Top())
	if diff := cmp.Diff(Var(base+1), got); diff != "" {
		t.Errorf("non-root safe area should equal owner bounds (-want +got):\n%s", diff)
	}
}

func TestFrameIsOwnerRelative(t *testing.T) {
	root := layout.NewElement("root")
	tree := layout.NewTree(root)
	outer := layout.NewElement("outer")
	inner := layout.NewElement("inner")
	_ = tree.Add(root, outer)
	_ = tree.Add(outer, inner)
	r := New(tree, phone())

	values := []float64{
		10, 20, 200, 100, // outer
		15, 30, 50, 40, // inner
	}
	got, _ := r.Frame(inner, values)
	want := layout.Frame{X: 5, Y: 10, Width: 50, Height: 40}
	if got != want {
		t.Errorf("Frame(inner) = %+v, want %+v", got, want)
	}

	got, _ = r.Frame(outer.MarginsGuide(), values)
	want = layout.Frame{X: 8, Y: 8, Width: 184, Height: 84}
	if got != want {
		t.Errorf("Frame(outer.margins) = %+v, want %+v", got, want)
	}
}

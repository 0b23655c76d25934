package store

import (
	"testing"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
)

func TestSwitchNeverActivatesBothVariants(t *testing.T) {
	root := layout.NewElement("root")
	img := layout.NewElement("image")
	label := layout.NewElement("label")

	wide := []*constraint.Constraint{
		constraint.Must(constraint.EqualTo(label.Leading(), img.Trailing(), constraint.Offset(8))),
		constraint.Must(constraint.EqualTo(label.CenterY(), img.CenterY())),
	}
	narrow := []*constraint.Constraint{
		constraint.Must(constraint.EqualTo(label.Top(), img.Bottom(), constraint.Offset(8))),
		constraint.Must(constraint.EqualTo(label.CenterX(), root.CenterX())),
	}

	s := New()
	w := NewSwitch("size-class", s)
	w.Add("wide", wide...)
	w.Add("narrow", narrow...)

	if s.Len() != 0 {
		t.Fatalf("adding variants activated %d constraints", s.Len())
	}

	bothActive := func() bool {
		anyWide, anyNarrow := false, false
		for _, c := range wide {
			anyWide = anyWide || s.IsActive(c)
		}
		for _, c := range narrow {
			anyNarrow = anyNarrow || s.IsActive(c)
		}
		return anyWide && anyNarrow
	}

	for i, v := range []string{"wide", "narrow", "narrow", "wide", "narrow"} {
		if err := w.Select(v); err != nil {
			t.Fatalf("Select(%s) error = %v", v, err)
		}
		if bothActive() {
			t.Fatalf("step %d: both variants active after Select(%s)", i, v)
		}
		if w.Selected() != v {
			t.Errorf("Selected() = %q, want %q", w.Selected(), v)
		}
		for _, c := range w.Constraints(v) {
			if !s.IsActive(c) {
				t.Errorf("step %d: %s not active", i, c)
			}
		}
	}

	w.Clear()
	if s.Len() != 0 || w.Selected() != "" {
		t.Errorf("Clear() left %d active, selected %q", s.Len(), w.Selected())
	}
}

func TestSwitchUnknownVariant(t *testing.T) {
	w := NewSwitch("orientation", New())
	if err := w.Select("portrait"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Select(unknown) error = %v, want NOT_FOUND", err)
	}
}

func TestSwitchAddToSelectedVariant(t *testing.T) {
	v := layout.NewElement("v")
	s := New()
	w := NewSwitch("s", s)
	w.Add("compact")
	if err := w.Select("compact"); err != nil {
		t.Fatal(err)
	}

	c := constraint.Must(constraint.Constant(v.Width(), constraint.Equal, 10))
	w.Add("compact", c)
	if !s.IsActive(c) {
		t.Error("constraint added to the selected variant should be active")
	}
	w.Add("regular", constraint.Must(constraint.Constant(v.Width(), constraint.Equal, 20)))
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

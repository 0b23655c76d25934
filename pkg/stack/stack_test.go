package stack

import (
	"context"
	"testing"

	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/resolve"
	"github.com/matzehuels/autolayout/pkg/solver"
	"github.com/matzehuels/autolayout/pkg/store"
)

func newTree(t *testing.T, ids ...string) (*layout.Tree, []*layout.Element) {
	t.Helper()
	tree := layout.NewTree(layout.NewElement("root"))
	var els []*layout.Element
	for _, id := range ids {
		e := layout.NewElement(id, layout.WithIntrinsicSize(50, 20))
		if err := tree.Add(tree.Root(), e); err != nil {
			t.Fatal(err)
		}
		els = append(els, e)
	}
	return tree, els
}

func solve(t *testing.T, tree *layout.Tree, st *store.Store, w, h float64) *solver.Result {
	t.Helper()
	env := resolve.Environment{Size: layout.Size{Width: w, Height: h}}
	res, err := solver.New().Solve(context.Background(), tree, st.Active(), env)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if err := res.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	return res
}

func checkFrames(t *testing.T, res *solver.Result, want map[string]layout.Frame) {
	t.Helper()
	for id, w := range want {
		got, ok := res.FrameOf(id)
		if !ok {
			t.Errorf("no frame for %s", id)
			continue
		}
		if got != w {
			t.Errorf("%s = %+v, want %+v", id, got, w)
		}
	}
}

func TestFillEqually(t *testing.T) {
	tree, els := newTree(t, "a", "b", "c")
	s := New(tree.Root(), els...)
	s.Spacing = 10
	s.Distribution = FillEqually

	st := store.New()
	if err := s.Sync(tree, st); err != nil {
		t.Fatal(err)
	}
	res := solve(t, tree, st, 320, 40)
	checkFrames(t, res, map[string]layout.Frame{
		"a": {X: 0, Width: 100, Height: 40},
		"b": {X: 110, Width: 100, Height: 40},
		"c": {X: 220, Width: 100, Height: 40},
	})
}

func TestVerticalLeadingFill(t *testing.T) {
	tree, els := newTree(t, "a", "b")
	els[1].SetHugging(layout.Vertical, 200)
	s := New(tree.Root(), els...)
	s.Axis = layout.Vertical
	s.Spacing = 8
	s.Alignment = AlignLeading

	st := store.New()
	if err := s.Sync(tree, st); err != nil {
		t.Fatal(err)
	}
	res := solve(t, tree, st, 200, 100)
	checkFrames(t, res, map[string]layout.Frame{
		"a": {Width: 50, Height: 20},
		"b": {Y: 28, Width: 50, Height: 72},
	})
}

func TestEqualSpacingCentered(t *testing.T) {
	tree, els := newTree(t, "a", "b", "c")
	s := New(tree.Root(), els...)
	s.Distribution = EqualSpacing
	s.Alignment = AlignCenter

	st := store.New()
	if err := s.Sync(tree, st); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Gaps()); got != 2 {
		t.Fatalf("len(Gaps()) = %d, want 2", got)
	}
	res := solve(t, tree, st, 300, 100)
	checkFrames(t, res, map[string]layout.Frame{
		"a":          {X: 0, Y: 40, Width: 50, Height: 20},
		"b":          {X: 125, Y: 40, Width: 50, Height: 20},
		"c":          {X: 250, Y: 40, Width: 50, Height: 20},
		"root-gap-0": {X: 50, Width: 75},
		"root-gap-1": {X: 175, Width: 75},
	})
}

func TestCustomSpacing(t *testing.T) {
	tree, els := newTree(t, "a", "b", "c")
	els[2].SetHugging(layout.Horizontal, 200)
	s := New(tree.Root(), els...)
	s.Spacing = 10
	s.SetCustomSpacing(els[0], 30)

	st := store.New()
	if err := s.Sync(tree, st); err != nil {
		t.Fatal(err)
	}
	res := solve(t, tree, st, 300, 20)
	checkFrames(t, res, map[string]layout.Frame{
		"a": {X: 0, Width: 50, Height: 20},
		"b": {X: 80, Width: 50, Height: 20},
		"c": {X: 140, Width: 160, Height: 20},
	})
}

func TestSyncSkipsHiddenElements(t *testing.T) {
	tree, els := newTree(t, "a", "b", "c")
	s := New(tree.Root(), els...)
	s.Spacing = 10
	s.Distribution = FillEqually

	st := store.New()
	if err := s.Sync(tree, st); err != nil {
		t.Fatal(err)
	}
	before := st.Active()

	els[1].SetHidden(true)
	if err := s.Sync(tree, st); err != nil {
		t.Fatal(err)
	}
	for _, c := range before {
		if st.IsActive(c) {
			t.Errorf("stale constraint %s still active", c)
		}
	}
	if st.Len() != len(s.Active()) {
		t.Errorf("store has %d constraints, stack installed %d", st.Len(), len(s.Active()))
	}

	res := solve(t, tree, st, 210, 20)
	checkFrames(t, res, map[string]layout.Frame{
		"a": {X: 0, Width: 100, Height: 20},
		"c": {X: 110, Width: 100, Height: 20},
	})
}

func TestGapGuidesFollowDistribution(t *testing.T) {
	tree, els := newTree(t, "a", "b", "c")
	s := New(tree.Root(), els...)
	s.Distribution = EqualSpacing

	if _, err := s.Constraints(tree); err != nil {
		t.Fatal(err)
	}
	if _, ok := tree.Lookup("root-gap-1"); !ok {
		t.Fatal("spacer guide root-gap-1 not attached")
	}

	els[2].SetHidden(true)
	if _, err := s.Constraints(tree); err != nil {
		t.Fatal(err)
	}
	if _, ok := tree.Lookup("root-gap-1"); ok {
		t.Error("spacer guide root-gap-1 still attached with two visible elements")
	}

	s.Distribution = Fill
	if _, err := s.Constraints(tree); err != nil {
		t.Fatal(err)
	}
	if len(s.Gaps()) != 0 || len(tree.Root().Guides()) != 0 {
		t.Errorf("spacer guides left after switching to fill: %v", s.Gaps())
	}
}

func TestEmptyStack(t *testing.T) {
	tree, _ := newTree(t)
	cs, err := New(tree.Root()).Constraints(tree)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 0 {
		t.Errorf("Constraints() = %v, want none", cs)
	}
}

func TestParseNames(t *testing.T) {
	if d, ok := ParseDistribution("equalSpacing"); !ok || d != EqualSpacing {
		t.Errorf("ParseDistribution(equalSpacing) = %v, %v", d, ok)
	}
	if _, ok := ParseDistribution("bogus"); ok {
		t.Error("ParseDistribution(bogus) succeeded")
	}
	if a, ok := ParseAlignment("top"); !ok || a != AlignLeading {
		t.Errorf("ParseAlignment(top) = %v, %v", a, ok)
	}
	if a, ok := ParseAlignment("center"); !ok || a.String() != "center" {
		t.Errorf("ParseAlignment(center) = %v, %v", a, ok)
	}
}

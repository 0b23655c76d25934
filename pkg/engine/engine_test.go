package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/observability"
	"github.com/matzehuels/autolayout/pkg/resolve"
	"github.com/matzehuels/autolayout/pkg/stack"
	"github.com/matzehuels/autolayout/pkg/store"
)

func size(w, h float64) resolve.Environment {
	return resolve.Environment{Size: layout.Size{Width: w, Height: h}}
}

func eq(first, second layout.Anchor, opts ...constraint.Option) *constraint.Constraint {
	return constraint.Must(constraint.EqualTo(first, second, opts...))
}

func fixed(first layout.Anchor, c float64, opts ...constraint.Option) *constraint.Constraint {
	return constraint.Must(constraint.Constant(first, constraint.Equal, c, opts...))
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.ErrorLevel})
}

// box returns a tree with one child "a" pinned to the root's top-leading
// corner with a fixed height.
func box(t *testing.T) (*layout.Tree, *layout.Element, []*constraint.Constraint) {
	t.Helper()
	root := layout.NewElement("root")
	tree := layout.NewTree(root)
	a := layout.NewElement("a")
	if err := tree.Add(root, a); err != nil {
		t.Fatal(err)
	}
	return tree, a, []*constraint.Constraint{
		eq(a.Leading(), root.Leading()),
		eq(a.Top(), root.Top()),
		fixed(a.Height(), 20),
	}
}

func TestLayoutCachesUntilSomethingChanges(t *testing.T) {
	tree, a, cs := box(t)
	e := New(tree, WithEnvironment(size(300, 200)), WithLogger(quietLogger()))
	e.Activate(cs...)
	e.Activate(fixed(a.Width(), 100))

	ctx := context.Background()
	first, err := e.Layout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	again, err := e.Layout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Error("Layout() re-solved without changes")
	}

	e.Deactivate(cs[2])
	e.Activate(fixed(a.Height(), 40))
	next, err := e.Layout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if next == first {
		t.Fatal("Layout() returned the cached result after the active set changed")
	}
	if f, _ := next.FrameOf("a"); f.Height != 40 {
		t.Errorf("a.Height = %v, want 40", f.Height)
	}

	if err := e.SetEnvironment(ctx, size(400, 200)); err != nil {
		t.Fatal(err)
	}
	resized, err := e.Layout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if resized == next {
		t.Error("Layout() returned the cached result after a resize")
	}
	if f, _ := resized.FrameOf("root"); f.Width != 400 {
		t.Errorf("root.Width = %v, want 400", f.Width)
	}
}

func TestAdaptiveVariants(t *testing.T) {
	tree, a, cs := box(t)
	root := tree.Root()
	e := New(tree, WithEnvironment(size(600, 400)), WithLogger(quietLogger()))
	e.Activate(cs...)

	wide := []*constraint.Constraint{eq(a.Width(), root.Width(), constraint.Multiplier(0.5), constraint.WithIdentifier("wide"))}
	narrow := []*constraint.Constraint{eq(a.Width(), root.Width(), constraint.WithIdentifier("narrow"))}
	sw := store.NewSwitch("width", e.Store())
	sw.Add("wide", wide...)
	sw.Add("narrow", narrow...)

	rule := func(env resolve.Environment) string {
		if env.Size.Width >= 500 {
			return "wide"
		}
		return "narrow"
	}
	if err := e.Adapt(sw, rule); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	tests := []struct {
		width   float64
		variant string
		aWidth  float64
	}{
		{600, "wide", 300},
		{320, "narrow", 320},
		{800, "wide", 400},
		{320, "narrow", 320},
	}
	for _, tt := range tests {
		if err := e.SetEnvironment(ctx, size(tt.width, 400)); err != nil {
			t.Fatal(err)
		}
		if got := sw.Selected(); got != tt.variant {
			t.Errorf("width %v: Selected() = %q, want %q", tt.width, got, tt.variant)
		}
		if e.Store().IsActive(wide[0]) && e.Store().IsActive(narrow[0]) {
			t.Fatalf("width %v: both variants active", tt.width)
		}
		res, err := e.Layout(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if f, _ := res.FrameOf("a"); f.Width != tt.aWidth {
			t.Errorf("width %v: a.Width = %v, want %v", tt.width, f.Width, tt.aWidth)
		}
	}
}

func TestAdaptRequiresSwitchAndRule(t *testing.T) {
	tree, _, _ := box(t)
	e := New(tree)
	if err := e.Adapt(nil, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Adapt(nil, nil) error = %v, want INVALID_INPUT", err)
	}
}

func TestKeyboardConstraints(t *testing.T) {
	tree, a, cs := box(t)
	e := New(tree, WithEnvironment(size(400, 800)), WithLogger(quietLogger()))
	e.Activate(cs...)

	avoid := []*constraint.Constraint{fixed(a.Width(), 100, constraint.WithIdentifier("avoid-top"))}
	e.SetKeyboardConstraints(avoid, resolve.NearEdge(resolve.EdgeTop))
	if e.Store().IsActive(avoid[0]) {
		t.Fatal("top-edge constraints active with the keyboard hidden")
	}

	env := size(400, 800)
	env.Keyboard = resolve.Keyboard{
		Visible:  true,
		Undocked: true,
		Frame:    layout.Frame{X: 0, Y: 0, Width: 400, Height: 60},
	}
	ctx := context.Background()
	if err := e.SetEnvironment(ctx, env); err != nil {
		t.Fatal(err)
	}
	if !e.Store().IsActive(avoid[0]) {
		t.Error("top-edge constraints inactive with the keyboard at the top")
	}

	if err := e.SetEnvironment(ctx, size(400, 800)); err != nil {
		t.Fatal(err)
	}
	if e.Store().IsActive(avoid[0]) {
		t.Error("top-edge constraints still active after the keyboard was hidden")
	}
}

func TestSetEnvironmentRejectsInvalid(t *testing.T) {
	tree, _, _ := box(t)
	e := New(tree, WithEnvironment(size(100, 100)))
	if err := e.SetEnvironment(context.Background(), size(-1, 100)); err == nil {
		t.Fatal("SetEnvironment() accepted a negative width")
	}
	if got := e.Environment().Size.Width; got != 100 {
		t.Errorf("Environment().Size.Width = %v, want 100", got)
	}
}

func TestStacksFollowVisibility(t *testing.T) {
	root := layout.NewElement("root")
	tree := layout.NewTree(root)
	var els []*layout.Element
	for _, id := range []string{"a", "b", "c"} {
		el := layout.NewElement(id)
		if err := tree.Add(root, el); err != nil {
			t.Fatal(err)
		}
		els = append(els, el)
	}
	s := stack.New(root, els...)
	s.Spacing = 10
	s.Distribution = stack.FillEqually

	e := New(tree, WithEnvironment(size(320, 50)), WithLogger(quietLogger()))
	e.AddStack(s)

	ctx := context.Background()
	res, err := e.Layout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := res.FrameOf("c"); f.X != 220 || f.Width != 100 {
		t.Errorf("c = %+v, want x=220 width=100", f)
	}

	els[1].SetHidden(true)
	res, err = e.Layout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := res.FrameOf("c"); f.X != 165 || f.Width != 155 {
		t.Errorf("c = %+v, want x=165 width=155", f)
	}
}

func TestLayoutLogsConflicts(t *testing.T) {
	root := layout.NewElement("root")
	tree := layout.NewTree(root)
	a := layout.NewElement("a")
	if err := tree.Add(root, a); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	e := New(tree,
		WithEnvironment(size(300, 100)),
		WithLogger(log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})))
	e.Activate(
		eq(a.CenterX(), root.CenterX(), constraint.WithIdentifier("A-centerX")),
		eq(a.Leading(), root.Leading(), constraint.Offset(100), constraint.WithIdentifier("A-leading")),
		fixed(a.Width(), 0, constraint.WithIdentifier("A-width")),
	)

	res, err := e.Layout(context.Background())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(res.Diagnostics) == 0 {
		t.Fatal("no diagnostics for conflicting required constraints")
	}
	out := buf.String()
	for _, want := range []string{"unable to simultaneously satisfy constraints", "A-centerX", "A-leading"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type envRecorder struct {
	observability.NoopEnvironmentHooks
	resizes   int
	keyboards []string
}

func (r *envRecorder) OnResize(context.Context, float64, float64) { r.resizes++ }

func (r *envRecorder) OnKeyboard(_ context.Context, visible bool, edges string) {
	if visible {
		r.keyboards = append(r.keyboards, edges)
	}
}

func TestEnvironmentHooks(t *testing.T) {
	rec := &envRecorder{}
	observability.SetEnvironmentHooks(rec)
	defer observability.Reset()

	tree, _, _ := box(t)
	e := New(tree, WithEnvironment(size(300, 600)), WithLogger(quietLogger()))
	ctx := context.Background()

	if err := e.Rotate(ctx); err != nil {
		t.Fatal(err)
	}
	if got := e.Environment().Size; got != (layout.Size{Width: 600, Height: 300}) {
		t.Errorf("rotated size = %+v", got)
	}

	env := e.Environment()
	env.Keyboard = resolve.Keyboard{Visible: true, Frame: layout.Frame{Y: 200, Width: 600, Height: 100}}
	if err := e.SetEnvironment(ctx, env); err != nil {
		t.Fatal(err)
	}

	if rec.resizes != 1 {
		t.Errorf("OnResize called %d times, want 1", rec.resizes)
	}
	if len(rec.keyboards) != 1 || rec.keyboards[0] != "leading|bottom|trailing" {
		t.Errorf("OnKeyboard edges = %v", rec.keyboards)
	}
}

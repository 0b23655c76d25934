package scenario

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/autolayout/pkg/engine"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/resolve"
)

func quiet() engine.Option {
	return engine.WithLogger(log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.ErrorLevel}))
}

func TestLoadEncodingsAgree(t *testing.T) {
	want, err := Load(filepath.Join("testdata", "login.toml"))
	if err != nil {
		t.Fatalf("Load(toml) error = %v", err)
	}
	for _, name := range []string{"login.yaml", "login.json"} {
		got, err := Load(filepath.Join("testdata", name))
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}
		// Absent safe-area edges decode as zero in every encoding.
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s differs from login.toml (-toml +%s):\n%s", name, name, diff)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("scenario.txt"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(.txt) error = %v, want INVALID_FORMAT", err)
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("name = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, errors.ErrCodeInvalidScenario) {
		t.Errorf("Load(bad.toml) error = %v, want INVALID_SCENARIO", err)
	}

	unknown := filepath.Join(dir, "unknown.json")
	if err := os.WriteFile(unknown, []byte(`{"elemnts": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(unknown); !errors.Is(err, errors.ErrCodeInvalidScenario) {
		t.Errorf("Load(unknown.json) error = %v, want INVALID_SCENARIO", err)
	}
}

func TestLoadNamesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.yaml")
	if err := os.WriteFile(path, []byte("environment: {width: 10, height: 10}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "card" {
		t.Errorf("Name = %q, want card", doc.Name)
	}
}

func TestOpenAndSolve(t *testing.T) {
	sc, err := Open(filepath.Join("testdata", "login.toml"), quiet())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if sc.Name != "login" {
		t.Errorf("Name = %q", sc.Name)
	}
	for _, id := range []string{"title-top", "above-keyboard", "constraint-2", "field-row-0", "tall-field", "short-field"} {
		if _, ok := sc.Constraints[id]; !ok {
			t.Errorf("constraint %q not declared", id)
		}
	}

	ctx := context.Background()
	res, err := sc.Engine.Layout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v", res.Diagnostics)
	}
	want := map[string]layout.Frame{
		"title":  {X: 140, Y: 32, Width: 120, Height: 24},
		"field":  {X: 20, Y: 68, Width: 360, Height: 32},
		"button": {X: 300, Y: 112, Width: 80, Height: 44},
	}
	for id, w := range want {
		if got, _ := res.FrameOf(id); got != w {
			t.Errorf("%s = %+v, want %+v", id, got, w)
		}
	}

	// Crossing the regular size class threshold swaps the field variant.
	env := sc.Engine.Environment()
	env.Size.Width = 600
	if err := sc.Engine.SetEnvironment(ctx, env); err != nil {
		t.Fatal(err)
	}
	if got := sc.Switches[0].Selected(); got != "regular" {
		t.Errorf("Selected() = %q, want regular", got)
	}
	res, err = sc.Engine.Layout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := res.FrameOf("field"); got != (layout.Frame{X: 20, Y: 68, Width: 560, Height: 48}) {
		t.Errorf("field = %+v after widening", got)
	}
}

func TestBuildStacksAndKeyboard(t *testing.T) {
	doc := &Document{
		Environment: Environment{Width: 300, Height: 500},
		Elements: []Element{
			{ID: "bar"},
			{ID: "a", Parent: "bar", Intrinsic: []float64{50, 20}},
			{ID: "b", Parent: "bar", Intrinsic: []float64{50, 20}},
		},
		Constraints: []string{
			"bar.leading == root.leading",
			"bar.trailing == root.trailing",
			"bar.height == 40",
		},
		Stacks: []Stack{{
			Element:      "bar",
			Arranged:     []string{"a", "b"},
			Distribution: "fillEqually",
			Spacing:      10,
		}},
		Keyboard: []KeyboardSet{
			{Near: "bottom", Constraints: []string{"bar.bottom == root.keyboard.top [dock]"}},
			{Away: "bottom", Constraints: []string{"bar.top == root.top [float]"}},
		},
	}
	sc, err := doc.Build(quiet())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	ctx := context.Background()
	res, err := sc.Engine.Layout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// A hidden keyboard rests at the bottom edge.
	if got, _ := res.FrameOf("bar"); got != (layout.Frame{Y: 460, Width: 300, Height: 40}) {
		t.Errorf("bar = %+v", got)
	}
	if got, _ := res.FrameOf("b"); got != (layout.Frame{X: 155, Width: 145, Height: 40}) {
		t.Errorf("b = %+v", got)
	}

	env := sc.Engine.Environment()
	env.Keyboard = resolve.Keyboard{Visible: true, Undocked: true, Frame: layout.Frame{X: 0, Y: 0, Width: 300, Height: 40}}
	if err := sc.Engine.SetEnvironment(ctx, env); err != nil {
		t.Fatal(err)
	}
	res, err = sc.Engine.Layout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := res.FrameOf("bar"); got.Y != 0 {
		t.Errorf("bar.Y = %v with the keyboard at the top, want 0", got.Y)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		code errors.Code
	}{
		{
			name: "unknown parent",
			doc:  Document{Elements: []Element{{ID: "a", Parent: "b"}, {ID: "b"}}},
			code: errors.ErrCodeNotFound,
		},
		{
			name: "bad element id",
			doc:  Document{Elements: []Element{{ID: "a b"}}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "bad intrinsic",
			doc:  Document{Elements: []Element{{ID: "a", Intrinsic: []float64{1}}}},
			code: errors.ErrCodeInvalidScenario,
		},
		{
			name: "bad hugging",
			doc:  Document{Elements: []Element{{ID: "a", Hugging: &AxisPriority{Horizontal: 2000}}}},
			code: errors.ErrCodeInvalidPriority,
		},
		{
			name: "duplicate constraint id",
			doc: Document{
				Elements:    []Element{{ID: "a"}},
				Constraints: []string{"a.width == 1 [w]", "a.height == 1 [w]"},
			},
			code: errors.ErrCodeDuplicateID,
		},
		{
			name: "bad expression",
			doc:  Document{Elements: []Element{{ID: "a"}}, Constraints: []string{"a.width =="}},
			code: errors.ErrCodeParse,
		},
		{
			name: "bad format",
			doc:  Document{Elements: []Element{{ID: "a"}}, Formats: []VisualFormat{{Format: "H:[a"}}},
			code: errors.ErrCodeParse,
		},
		{
			name: "bad size class",
			doc:  Document{Environment: Environment{HorizontalSizeClass: "huge"}},
			code: errors.ErrCodeInvalidScenario,
		},
		{
			name: "negative size",
			doc:  Document{Environment: Environment{Width: -1}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "bad stack axis",
			doc:  Document{Elements: []Element{{ID: "a"}}, Stacks: []Stack{{Element: "a", Axis: "diagonal"}}},
			code: errors.ErrCodeInvalidScenario,
		},
		{
			name: "unknown stack element",
			doc:  Document{Stacks: []Stack{{Element: "nope"}}},
			code: errors.ErrCodeNotFound,
		},
		{
			name: "bad keyboard edges",
			doc:  Document{Keyboard: []KeyboardSet{{Near: "middle"}}},
			code: errors.ErrCodeInvalidScenario,
		},
		{
			name: "unnamed switch",
			doc:  Document{Switches: []Switch{{}}},
			code: errors.ErrCodeInvalidScenario,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.Build(quiet())
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestConditionMatches(t *testing.T) {
	width := func(v float64) *float64 { return &v }
	yes := true
	env := resolve.Environment{Size: layout.Size{Width: 800, Height: 400}}
	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"empty", Condition{}, true},
		{"min width", Condition{MinWidth: width(500)}, true},
		{"max width", Condition{MaxWidth: width(500)}, false},
		{"regular", Condition{Horizontal: "regular"}, true},
		{"compact height", Condition{Vertical: "compact"}, true},
		{"landscape", Condition{Landscape: &yes}, true},
		{"mixed", Condition{MinWidth: width(500), Vertical: "regular"}, false},
	}
	for _, tt := range tests {
		if got := tt.cond.Matches(env); got != tt.want {
			t.Errorf("%s: Matches() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

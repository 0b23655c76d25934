package constraint

import (
	"testing"

	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
)

func TestNewValidation(t *testing.T) {
	a := layout.NewElement("a")
	b := layout.NewElement("b")

	tests := []struct {
		name     string
		build    func() (*Constraint, error)
		wantCode errors.Code
	}{
		{"leading to trailing", func() (*Constraint, error) {
			return EqualTo(a.Leading(), b.Trailing())
		}, ""},
		{"aspect ratio", func() (*Constraint, error) {
			return EqualTo(a.Width(), a.Height(), Multiplier(2))
		}, ""},
		{"leading to top", func() (*Constraint, error) {
			return EqualTo(a.Leading(), b.Top())
		}, errors.ErrCodeIncompatibleAnchorKind},
		{"width to leading", func() (*Constraint, error) {
			return GreaterOrEqualTo(a.Width(), b.Leading())
		}, errors.ErrCodeIncompatibleAnchorKind},
		{"position to constant", func() (*Constraint, error) {
			return Constant(a.Leading(), Equal, 20)
		}, errors.ErrCodeIncompatibleAnchorKind},
		{"size to constant", func() (*Constraint, error) {
			return Constant(a.Width(), LessOrEqual, 20)
		}, ""},
		{"zero priority", func() (*Constraint, error) {
			return EqualTo(a.Leading(), b.Leading(), WithPriority(0))
		}, errors.ErrCodeInvalidPriority},
		{"priority above required", func() (*Constraint, error) {
			return EqualTo(a.Leading(), b.Leading(), WithPriority(1001))
		}, errors.ErrCodeInvalidPriority},
		{"zero multiplier", func() (*Constraint, error) {
			return EqualTo(a.Width(), b.Width(), Multiplier(0))
		}, errors.ErrCodeInvalidInput},
		{"missing second anchor", func() (*Constraint, error) {
			return EqualTo(a.Width(), layout.Anchor{})
		}, errors.ErrCodeInvalidInput},
		{"bad identifier", func() (*Constraint, error) {
			return EqualTo(a.Width(), b.Width(), WithIdentifier("has space"))
		}, errors.ErrCodeInvalidInput},
		{"system spacing on wrong axis", func() (*Constraint, error) {
			return SystemSpacingAfter(a.Top(), Equal, b.Bottom(), 1)
		}, errors.ErrCodeIncompatibleAnchorKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.build()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if c == nil {
					t.Fatal("nil constraint without error")
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	a := layout.NewElement("a")
	b := layout.NewElement("b")
	c := Must(EqualTo(a.Leading(), b.Trailing()))

	if c.Priority() != layout.Required || !c.IsRequired() {
		t.Errorf("Priority() = %v, want required", c.Priority())
	}
	if c.Multiplier() != 1 || c.Constant() != 0 {
		t.Errorf("Multiplier, Constant = %v, %v, want 1, 0", c.Multiplier(), c.Constant())
	}
	if c.Identifier() == "" || !c.HasGeneratedIdentifier() {
		t.Error("expected a generated identifier")
	}
	d := Must(EqualTo(a.Leading(), b.Trailing()))
	if c.Identifier() == d.Identifier() {
		t.Error("generated identifiers should be unique")
	}
}

func TestSystemSpacing(t *testing.T) {
	a := layout.NewElement("a")
	b := layout.NewElement("b")

	c := Must(SystemSpacingAfter(b.Leading(), Equal, a.Trailing(), 2))
	if c.Constant() != 16 {
		t.Errorf("Constant() = %v, want 16", c.Constant())
	}
	c = Must(SystemSpacingBelow(b.Top(), GreaterOrEqual, a.Bottom(), 1, WithPriority(layout.DefaultHigh)))
	if c.Constant() != 8 || c.Relation() != GreaterOrEqual || c.Priority() != layout.DefaultHigh {
		t.Errorf("got %s", c)
	}
}

func TestSameAnchors(t *testing.T) {
	a := layout.NewElement("a")
	root := layout.NewElement("root")

	wide := Must(EqualTo(a.Leading(), root.Leading(), Offset(20)))
	narrow := Must(EqualTo(a.Leading(), root.Leading(), Offset(8), WithPriority(layout.DefaultLow)))
	other := Must(GreaterOrEqualTo(a.Leading(), root.Leading()))

	if !SameAnchors(wide, narrow) {
		t.Error("constraints on the same anchors and relation should share a key")
	}
	if SameAnchors(wide, other) {
		t.Error("different relations should not share a key")
	}
	if wide == narrow {
		t.Error("same-key constraints must stay distinct values")
	}
}

func TestExpression(t *testing.T) {
	root := layout.NewElement("root")
	a := layout.NewElement("a")
	b := layout.NewElement("b")

	tests := []struct {
		c    *Constraint
		want string
	}{
		{Must(EqualTo(a.Leading(), root.MarginsGuide().Leading(), Offset(8), WithPriority(750))), "a.leading == root.margins.leading + 8 @750"},
		{Must(EqualTo(a.Width(), b.Width(), Multiplier(0.5), Offset(-10))), "a.width == 0.5 * b.width - 10"},
		{Must(Constant(a.Height(), GreaterOrEqual, 44)), "a.height >= 44"},
		{Must(LessOrEqualTo(a.Trailing(), root.Trailing(), WithPriority(251.5))), "a.trailing <= root.trailing @251.5"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.c.Expression(); got != tt.want {
				t.Errorf("Expression() = %q, want %q", got, tt.want)
			}
		})
	}

	named := Must(Constant(a.Width(), Equal, 0, WithIdentifier("A-width")))
	if got := named.String(); got != "a.width == 0 [A-width]" {
		t.Errorf("String() = %q", got)
	}
}

func TestItems(t *testing.T) {
	a := layout.NewElement("a")
	b := layout.NewElement("b")

	if got := Must(EqualTo(a.Width(), a.Height())).Items(); len(got) != 1 {
		t.Errorf("self-relation Items() = %d, want 1", len(got))
	}
	if got := Must(EqualTo(a.Width(), b.Width())).Items(); len(got) != 2 {
		t.Errorf("Items() = %d, want 2", len(got))
	}
	if got := Must(Constant(a.Width(), Equal, 1)).Items(); len(got) != 1 {
		t.Errorf("constant Items() = %d, want 1", len(got))
	}
}

func TestParseRelation(t *testing.T) {
	for _, r := range []Relation{Equal, LessOrEqual, GreaterOrEqual} {
		got, ok := ParseRelation(r.String())
		if !ok || got != r {
			t.Errorf("ParseRelation(%q) = %v, %v", r.String(), got, ok)
		}
	}
	if GreaterOrEqual.Flip() != LessOrEqual || Equal.Flip() != Equal {
		t.Error("Flip() mismatch")
	}
	if _, ok := ParseRelation("<"); ok {
		t.Error("ParseRelation(<) should fail")
	}
}

package scenario

import (
	"testing"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
)

func exprScope(t *testing.T) Scope {
	t.Helper()
	root := layout.NewElement("root")
	tree := layout.NewTree(root)
	for _, id := range []string{"a", "b", "side-bar"} {
		if err := tree.Add(root, layout.NewElement(id)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tree.AddGuide(root, layout.NewGuide("spacer")); err != nil {
		t.Fatal(err)
	}
	return Scope{Tree: tree, Metrics: map[string]float64{"pad": 16}}
}

func TestParseExpression(t *testing.T) {
	scope := exprScope(t)
	tests := []struct {
		src  string
		want string
	}{
		{"a.leading == b.trailing + 8", "a.leading == b.trailing + 8"},
		{"a.leading==b.trailing+8", "a.leading == b.trailing + 8"},
		{"a.width == 0.5 * b.width - 10 @750", "a.width == 0.5 * b.width - 10 @750"},
		{"a.width == b.width * 2", "a.width == 2 * b.width"},
		{"a.width >= 44", "a.width >= 44"},
		{"a.height <= pad @low", "a.height <= 16 @250"},
		{"a.top = root.safeArea.top + pad", "a.top == root.safeArea.top + 16"},
		{"a.bottom <= root.keyboard.top - pad - 4", "a.bottom <= root.keyboard.top - 20"},
		{"spacer.width == a.width", "spacer.width == a.width"},
		{"side-bar.leading == root.margins.leading", "side-bar.leading == root.margins.leading"},
		{"a.left == b.right", "a.leading == b.trailing"},
		{"a.width == -20", "a.width == -20"},
		{"a.centerX == root.centerX @fitting", "a.centerX == root.centerX @50"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			c, err := ParseExpression(tt.src, scope)
			if err != nil {
				t.Fatalf("ParseExpression() error = %v", err)
			}
			if got := c.Expression(); got != tt.want {
				t.Errorf("Expression() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseExpressionIdentifier(t *testing.T) {
	scope := exprScope(t)

	c, err := ParseExpression("a.width == 10 [a-width]", scope, constraint.WithIdentifier("fallback"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Identifier() != "a-width" {
		t.Errorf("Identifier() = %q, want a-width", c.Identifier())
	}

	c, err = ParseExpression("a.width == 10", scope, constraint.WithIdentifier("fallback"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Identifier() != "fallback" {
		t.Errorf("Identifier() = %q, want fallback", c.Identifier())
	}
}

func TestParseExpressionRoundTrip(t *testing.T) {
	scope := exprScope(t)
	a, _ := scope.Tree.Element("a")
	b, _ := scope.Tree.Element("b")
	orig := constraint.Must(constraint.New(a.Width(), constraint.LessOrEqual, b.Height(),
		constraint.Multiplier(1.5), constraint.Offset(-3), constraint.WithPriority(600), constraint.WithIdentifier("aspect")))

	c, err := ParseExpression(orig.String(), scope)
	if err != nil {
		t.Fatalf("ParseExpression(%q) error = %v", orig.String(), err)
	}
	if c.String() != orig.String() {
		t.Errorf("round trip = %q, want %q", c.String(), orig.String())
	}
	if c.Key() != orig.Key() {
		t.Errorf("Key() = %v, want %v", c.Key(), orig.Key())
	}
}

func TestParseExpressionErrors(t *testing.T) {
	scope := exprScope(t)
	tests := []struct {
		src  string
		code errors.Code
	}{
		{"a.width", errors.ErrCodeParse},
		{"a.width ~ 3", errors.ErrCodeParse},
		{"10 == a.width", errors.ErrCodeParse},
		{"a.width == nope", errors.ErrCodeParse},
		{"a.width == z.width", errors.ErrCodeParse},
		{"a.width == a.depth", errors.ErrCodeParse},
		{"a.width == b.width * b.height", errors.ErrCodeParse},
		{"a.leading == b.leading + b.width", errors.ErrCodeParse},
		{"a.width == 1 @1200", errors.ErrCodeParse},
		{"a.width == 1 @urgent", errors.ErrCodeParse},
		{"a.width == 1 [open", errors.ErrCodeParse},
		{"a.width == 1 extra", errors.ErrCodeParse},
		{"a.leading == 10", errors.ErrCodeIncompatibleAnchorKind},
		{"a.leading == b.width", errors.ErrCodeIncompatibleAnchorKind},
		{"a.top == b.leading", errors.ErrCodeIncompatibleAnchorKind},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParseExpression(tt.src, scope)
			if err == nil {
				t.Fatal("ParseExpression() succeeded")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestScopeItem(t *testing.T) {
	scope := exprScope(t)
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"a", "a", true},
		{"spacer", "spacer", true},
		{"root.margins", "root.margins", true},
		{"a.content", "a.content", true},
		{"a.bogus", "", false},
		{"missing.margins", "", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		it, ok := scope.Item(tt.path)
		if ok != tt.ok {
			t.Errorf("Item(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			continue
		}
		if ok && it.ID() != tt.want {
			t.Errorf("Item(%q) = %s, want %s", tt.path, it.ID(), tt.want)
		}
	}
}

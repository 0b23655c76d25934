package constraint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
)

// SystemSpacing is the standard distance between sibling elements.
const SystemSpacing = 8.0

// Constraint is an immutable linear relation between anchors.
type Constraint struct {
	first      layout.Anchor
	second     layout.Anchor
	relation   Relation
	multiplier float64
	constant   float64
	priority   layout.Priority
	identifier string
	generated  bool
}

// Key identifies the anchors and relation of a constraint. Constraints with
// equal keys compete; the store never merges them.
type Key struct {
	First    layout.Anchor
	Second   layout.Anchor
	Relation Relation
}

// Option configures a constraint at construction.
type Option func(*options)

type options struct {
	multiplier float64
	constant   float64
	priority   layout.Priority
	identifier string
}

// Multiplier scales the second anchor. The default is 1.
func Multiplier(m float64) Option { return func(o *options) { o.multiplier = m } }

// Offset sets the additive constant. The default is 0.
func Offset(c float64) Option { return func(o *options) { o.constant = c } }

// WithPriority sets the priority. The default is [layout.Required].
func WithPriority(p layout.Priority) Option { return func(o *options) { o.priority = p } }

// WithIdentifier names the constraint for diagnostics.
func WithIdentifier(id string) Option { return func(o *options) { o.identifier = id } }

func buildOptions(opts []Option) options {
	o := options{multiplier: 1, priority: layout.Required}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New relates first to second.
//
// Returns an INCOMPATIBLE_ANCHOR_KIND error when the anchors are of different
// kinds or axes, INVALID_PRIORITY for priorities outside [1, 1000] and
// INVALID_INPUT for a zero multiplier or malformed identifier.
func New(first layout.Anchor, rel Relation, second layout.Anchor, opts ...Option) (*Constraint, error) {
	if first.IsZero() || second.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "constraint needs two anchors")
	}
	if !layout.Compatible(first, second) {
		return nil, errors.New(errors.ErrCodeIncompatibleAnchorKind,
			"cannot relate %s to %s", first, second)
	}
	o := buildOptions(opts)
	if o.multiplier == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"multiplier of %s %s %s must not be zero", first, rel, second)
	}
	return build(first, rel, second, o)
}

// Constant relates a size anchor to a fixed value. Position anchors have no
// meaning without a reference and fail with INCOMPATIBLE_ANCHOR_KIND.
func Constant(first layout.Anchor, rel Relation, c float64, opts ...Option) (*Constraint, error) {
	if first.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "constraint needs an anchor")
	}
	if !first.IsSize() {
		return nil, errors.New(errors.ErrCodeIncompatibleAnchorKind,
			"cannot relate position anchor %s to a constant", first)
	}
	o := buildOptions(opts)
	o.constant = c
	o.multiplier = 0
	return build(first, rel, layout.Anchor{}, o)
}

func build(first layout.Anchor, rel Relation, second layout.Anchor, o options) (*Constraint, error) {
	if rel < LessOrEqual || rel > GreaterOrEqual {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown relation %d", rel)
	}
	if err := errors.ValidateFinite("multiplier", o.multiplier); err != nil {
		return nil, err
	}
	if err := errors.ValidateFinite("constant", o.constant); err != nil {
		return nil, err
	}
	if err := errors.ValidatePriority(float64(o.priority)); err != nil {
		return nil, err
	}
	c := &Constraint{
		first:      first,
		second:     second,
		relation:   rel,
		multiplier: o.multiplier,
		constant:   o.constant,
		priority:   o.priority,
		identifier: o.identifier,
	}
	if c.identifier == "" {
		c.identifier = uuid.NewString()
		c.generated = true
	} else if err := errors.ValidateIdentifier(c.identifier); err != nil {
		return nil, err
	}
	return c, nil
}

// Must panics if err is non-nil. It is intended for constraints built from
// literals known to be valid.
func Must(c *Constraint, err error) *Constraint {
	if err != nil {
		panic(err)
	}
	return c
}

// EqualTo returns first == second with the given options.
func EqualTo(first, second layout.Anchor, opts ...Option) (*Constraint, error) {
	return New(first, Equal, second, opts...)
}

// GreaterOrEqualTo returns first >= second with the given options.
func GreaterOrEqualTo(first, second layout.Anchor, opts ...Option) (*Constraint, error) {
	return New(first, GreaterOrEqual, second, opts...)
}

// LessOrEqualTo returns first <= second with the given options.
func LessOrEqualTo(first, second layout.Anchor, opts ...Option) (*Constraint, error) {
	return New(first, LessOrEqual, second, opts...)
}

// SystemSpacingAfter places first (a horizontal position anchor) multiplier
// times the system spacing after second.
func SystemSpacingAfter(first layout.Anchor, rel Relation, second layout.Anchor, multiplier float64, opts ...Option) (*Constraint, error) {
	return systemSpacing(layout.Horizontal, first, rel, second, multiplier, opts)
}

// SystemSpacingBelow places first (a vertical position anchor) multiplier
// times the system spacing below second.
func SystemSpacingBelow(first layout.Anchor, rel Relation, second layout.Anchor, multiplier float64, opts ...Option) (*Constraint, error) {
	return systemSpacing(layout.Vertical, first, rel, second, multiplier, opts)
}

func systemSpacing(axis layout.Axis, first layout.Anchor, rel Relation, second layout.Anchor, m float64, opts []Option) (*Constraint, error) {
	if first.IsSize() || second.IsSize() || first.Axis() != axis || second.Axis() != axis {
		return nil, errors.New(errors.ErrCodeIncompatibleAnchorKind,
			"system spacing needs %s position anchors, got %s and %s", axis, first, second)
	}
	return New(first, rel, second, append(opts, Offset(SystemSpacing*m))...)
}

// First returns the constrained anchor.
func (c *Constraint) First() layout.Anchor { return c.first }

// Second returns the reference anchor, or the zero anchor for constant
// constraints.
func (c *Constraint) Second() layout.Anchor { return c.second }

// HasSecond reports whether the constraint references a second anchor.
func (c *Constraint) HasSecond() bool { return !c.second.IsZero() }

// Relation returns the comparison.
func (c *Constraint) Relation() Relation { return c.relation }

// Multiplier returns the factor applied to the second anchor (0 for constant
// constraints).
func (c *Constraint) Multiplier() float64 { return c.multiplier }

// Constant returns the additive constant.
func (c *Constraint) Constant() float64 { return c.constant }

// Priority returns the constraint priority.
func (c *Constraint) Priority() layout.Priority { return c.priority }

// IsRequired reports whether the constraint must hold.
func (c *Constraint) IsRequired() bool { return c.priority.IsRequired() }

// Identifier returns the constraint's identifier.
func (c *Constraint) Identifier() string { return c.identifier }

// HasGeneratedIdentifier reports whether the identifier was generated rather
// than supplied.
func (c *Constraint) HasGeneratedIdentifier() bool { return c.generated }

// Key returns the anchors and relation of c.
func (c *Constraint) Key() Key {
	return Key{First: c.first, Second: c.second, Relation: c.relation}
}

// SameAnchors reports whether a and b relate the same anchors the same way.
func SameAnchors(a, b *Constraint) bool { return a.Key() == b.Key() }

// Items returns the items the constraint references.
func (c *Constraint) Items() []layout.Item {
	if c.HasSecond() && c.second.Item != c.first.Item {
		return []layout.Item{c.first.Item, c.second.Item}
	}
	return []layout.Item{c.first.Item}
}

// Expression formats the relation without the identifier, in the syntax
// accepted by scenario documents:
//
//	a.width == 0.5 * b.width + 10 @750
func (c *Constraint) Expression() string {
	var b strings.Builder
	b.WriteString(c.first.String())
	b.WriteString(" ")
	b.WriteString(c.relation.String())
	b.WriteString(" ")
	if c.HasSecond() {
		if c.multiplier != 1 {
			b.WriteString(formatFloat(c.multiplier))
			b.WriteString(" * ")
		}
		b.WriteString(c.second.String())
		switch {
		case c.constant > 0:
			b.WriteString(" + " + formatFloat(c.constant))
		case c.constant < 0:
			b.WriteString(" - " + formatFloat(-c.constant))
		}
	} else {
		b.WriteString(formatFloat(c.constant))
	}
	if !c.IsRequired() {
		b.WriteString(" @" + formatFloat(float64(c.priority)))
	}
	return b.String()
}

// String formats the constraint with its identifier.
func (c *Constraint) String() string {
	return fmt.Sprintf("%s [%s]", c.Expression(), c.identifier)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Package stack arranges elements in a row or column by generating ordinary
// constraints, like a stack view.
//
// A [Stack] pins its arranged elements edge to edge along its Axis, separated
// by Spacing, and positions them across the axis according to Alignment.
// Hidden elements are skipped. Call [Stack.Sync] after visibility or
// configuration changes to swap the generated constraints in a store.
package stack

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/store"
)

// Distribution controls how arranged elements share the main axis.
type Distribution uint8

const (
	// Fill places elements back to back; content hugging and compression
	// resistance decide who grows or shrinks.
	Fill Distribution = iota
	// FillEqually gives every element the same size.
	FillEqually
	// EqualSpacing makes the gaps between elements equal, at least Spacing.
	EqualSpacing
)

var distributionNames = [...]string{"fill", "fillEqually", "equalSpacing"}

// String returns the distribution name.
func (d Distribution) String() string {
	if int(d) < len(distributionNames) {
		return distributionNames[d]
	}
	return "unknown"
}

// ParseDistribution looks up a distribution by name.
func ParseDistribution(s string) (Distribution, bool) {
	for i, n := range distributionNames {
		if n == s {
			return Distribution(i), true
		}
	}
	return Fill, false
}

// Alignment positions elements across the main axis.
type Alignment uint8

const (
	// AlignFill stretches elements to the stack's cross size.
	AlignFill Alignment = iota
	// AlignLeading pins elements to the leading (or top) cross edge.
	AlignLeading
	// AlignCenter centers elements across the axis.
	AlignCenter
	// AlignTrailing pins elements to the trailing (or bottom) cross edge.
	AlignTrailing
)

var alignmentNames = [...]string{"fill", "leading", "center", "trailing"}

// String returns the alignment name.
func (a Alignment) String() string {
	if int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return "unknown"
}

// ParseAlignment looks up an alignment by name. "top" and "bottom" are
// accepted for leading and trailing.
func ParseAlignment(s string) (Alignment, bool) {
	switch s {
	case "top":
		return AlignLeading, true
	case "bottom":
		return AlignTrailing, true
	}
	for i, n := range alignmentNames {
		if n == s {
			return Alignment(i), true
		}
	}
	return AlignFill, false
}

// Stack lays out arranged elements inside a container element.
type Stack struct {
	// Axis is the main axis.
	Axis layout.Axis
	// Spacing is the distance between adjacent elements.
	Spacing float64
	// Distribution controls sizes along the main axis.
	Distribution Distribution
	// Alignment controls positions across the main axis.
	Alignment Alignment
	// MarginsRelative lays elements out inside the container's margins
	// rather than its bounds.
	MarginsRelative bool

	el       *layout.Element
	arranged []*layout.Element
	custom   map[*layout.Element]float64
	gaps     []*layout.Guide
	active   []*constraint.Constraint
}

// New returns a horizontal fill stack in el.
func New(el *layout.Element, arranged ...*layout.Element) *Stack {
	return &Stack{
		el:       el,
		arranged: arranged,
		custom:   make(map[*layout.Element]float64),
	}
}

// Element returns the container.
func (s *Stack) Element() *layout.Element { return s.el }

// Arranged returns the arranged elements, hidden ones included.
func (s *Stack) Arranged() []*layout.Element { return s.arranged }

// AddArranged appends elements to the arrangement.
func (s *Stack) AddArranged(es ...*layout.Element) {
	s.arranged = append(s.arranged, es...)
}

// SetCustomSpacing overrides the spacing after e.
func (s *Stack) SetCustomSpacing(after *layout.Element, v float64) {
	s.custom[after] = v
}

// Gaps returns the spacer guides used by EqualSpacing.
func (s *Stack) Gaps() []*layout.Guide { return s.gaps }

type axes struct {
	lead, trail, size      layout.Attribute
	crossLead, crossTrail  layout.Attribute
	crossCenter, crossSize layout.Attribute
}

func (s *Stack) axes() axes {
	if s.Axis == layout.Vertical {
		return axes{layout.Top, layout.Bottom, layout.Height, layout.Leading, layout.Trailing, layout.CenterX, layout.Width}
	}
	return axes{layout.Leading, layout.Trailing, layout.Width, layout.Top, layout.Bottom, layout.CenterY, layout.Height}
}

// emitter collects constraints named after the stack.
type emitter struct {
	prefix string
	out    []*constraint.Constraint
	err    error
}

func (e *emitter) rel(name string, first layout.Anchor, rel constraint.Relation, second layout.Anchor, opts ...constraint.Option) {
	if e.err != nil {
		return
	}
	c, err := constraint.New(first, rel, second, append(opts, constraint.WithIdentifier(e.prefix+"-"+name))...)
	if err != nil {
		e.err = err
		return
	}
	e.out = append(e.out, c)
}

func (e *emitter) constant(name string, first layout.Anchor, v float64, opts ...constraint.Option) {
	if e.err != nil {
		return
	}
	c, err := constraint.Constant(first, constraint.Equal, v, append(opts, constraint.WithIdentifier(e.prefix+"-"+name))...)
	if err != nil {
		e.err = err
		return
	}
	e.out = append(e.out, c)
}

// Constraints returns the constraints arranging the visible elements in
// their current state. For EqualSpacing it attaches or detaches spacer
// guides on the container so there is one per gap.
func (s *Stack) Constraints(tree *layout.Tree) ([]*constraint.Constraint, error) {
	var visible []*layout.Element
	for _, e := range s.arranged {
		if !e.IsHidden() {
			visible = append(visible, e)
		}
	}

	gaps := 0
	if s.Distribution == EqualSpacing && len(visible) > 1 {
		gaps = len(visible) - 1
	}
	if err := s.syncGaps(tree, gaps); err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, nil
	}

	var box layout.Item = s.el
	if s.MarginsRelative {
		box = s.el.MarginsGuide()
	}
	ax := s.axes()
	em := &emitter{prefix: s.el.ID() + "-stack"}

	first, last := visible[0], visible[len(visible)-1]
	em.rel("first", first.Anchor(ax.lead), constraint.Equal, box.Anchor(ax.lead))
	em.rel("last", last.Anchor(ax.trail), constraint.Equal, box.Anchor(ax.trail))

	for i := 0; i+1 < len(visible); i++ {
		cur, next := visible[i], visible[i+1]
		gap := s.Spacing
		if v, ok := s.custom[cur]; ok {
			gap = v
		}
		n := strconv.Itoa(i)
		switch s.Distribution {
		case EqualSpacing:
			g := s.gaps[i]
			em.rel("spacing-"+n, next.Anchor(ax.lead), constraint.GreaterOrEqual, cur.Anchor(ax.trail), constraint.Offset(gap))
			em.rel("gap-"+n+"-lead", g.Anchor(ax.lead), constraint.Equal, cur.Anchor(ax.trail))
			em.rel("gap-"+n+"-trail", g.Anchor(ax.trail), constraint.Equal, next.Anchor(ax.lead))
			em.rel("gap-"+n+"-cross", g.Anchor(ax.crossLead), constraint.Equal, box.Anchor(ax.crossLead))
			em.constant("gap-"+n+"-thin", g.Anchor(ax.crossSize), 0)
			if i > 0 {
				em.rel("gap-"+n+"-equal", g.Anchor(ax.size), constraint.Equal, s.gaps[0].Anchor(ax.size))
			}
		default:
			em.rel("spacing-"+n, next.Anchor(ax.lead), constraint.Equal, cur.Anchor(ax.trail), constraint.Offset(gap))
			if s.Distribution == FillEqually {
				em.rel("equal-"+n, next.Anchor(ax.size), constraint.Equal, first.Anchor(ax.size))
			}
		}
	}

	for i, e := range visible {
		n := strconv.Itoa(i)
		switch s.Alignment {
		case AlignFill:
			em.rel("align-"+n+"-lead", e.Anchor(ax.crossLead), constraint.Equal, box.Anchor(ax.crossLead))
			em.rel("align-"+n+"-trail", e.Anchor(ax.crossTrail), constraint.Equal, box.Anchor(ax.crossTrail))
		case AlignLeading:
			em.rel("align-"+n+"-lead", e.Anchor(ax.crossLead), constraint.Equal, box.Anchor(ax.crossLead))
			em.rel("align-"+n+"-trail", e.Anchor(ax.crossTrail), constraint.LessOrEqual, box.Anchor(ax.crossTrail))
		case AlignTrailing:
			em.rel("align-"+n+"-lead", e.Anchor(ax.crossLead), constraint.GreaterOrEqual, box.Anchor(ax.crossLead))
			em.rel("align-"+n+"-trail", e.Anchor(ax.crossTrail), constraint.Equal, box.Anchor(ax.crossTrail))
		case AlignCenter:
			em.rel("align-"+n+"-lead", e.Anchor(ax.crossLead), constraint.GreaterOrEqual, box.Anchor(ax.crossLead))
			em.rel("align-"+n+"-center", e.Anchor(ax.crossCenter), constraint.Equal, box.Anchor(ax.crossCenter))
		}
	}
	if s.Alignment != AlignFill && !s.el.IsRoot() {
		em.constant("fit", s.el.Anchor(ax.crossSize), 0, constraint.WithPriority(layout.FittingSizeLevel))
	}

	return em.out, em.err
}

func (s *Stack) syncGaps(tree *layout.Tree, n int) error {
	for len(s.gaps) > n {
		last := s.gaps[len(s.gaps)-1]
		tree.RemoveGuide(last)
		s.gaps = s.gaps[:len(s.gaps)-1]
	}
	for len(s.gaps) < n {
		g := layout.NewGuide(fmt.Sprintf("%s-gap-%d", s.el.ID(), len(s.gaps)))
		if err := tree.AddGuide(s.el, g); err != nil {
			return fmt.Errorf("add spacer guide: %w", err)
		}
		s.gaps = append(s.gaps, g)
	}
	return nil
}

// Sync regenerates the stack's constraints and swaps them into st, replacing
// the ones generated by the previous Sync.
func (s *Stack) Sync(tree *layout.Tree, st *store.Store) error {
	cs, err := s.Constraints(tree)
	if err != nil {
		return err
	}
	st.Swap(s.active, cs)
	s.active = cs
	return nil
}

// Active returns the constraints installed by the last Sync.
func (s *Stack) Active() []*constraint.Constraint { return s.active }

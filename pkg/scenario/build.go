package scenario

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/engine"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/resolve"
	"github.com/matzehuels/autolayout/pkg/stack"
	"github.com/matzehuels/autolayout/pkg/store"
	"github.com/matzehuels/autolayout/pkg/vfl"
)

// DefaultRoot is the root element ID when a document does not name one.
const DefaultRoot = "root"

// Scenario is a built document: an engine loaded with the document's tree,
// constraints, stacks, variants and keyboard sets.
type Scenario struct {
	Name     string
	Engine   *engine.Engine
	Switches []*store.Switch
	// Constraints holds every constraint the document declares, including
	// inactive variants, keyed by identifier.
	Constraints map[string]*constraint.Constraint
}

// Open loads and builds the scenario at path.
func Open(path string, opts ...engine.Option) (*Scenario, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Build(opts...)
}

// Env converts the document environment.
func (d *Document) Env() (resolve.Environment, error) {
	e := d.Environment
	env := resolve.Environment{
		Size:   layout.Size{Width: e.Width, Height: e.Height},
		Traits: layout.Traits{ContentScale: e.ContentScale},
	}
	if e.SafeArea != nil {
		env.SafeArea = e.SafeArea.layout()
	}
	if e.Margins != nil {
		m := e.Margins.layout()
		env.Margins = &m
	}
	var ok bool
	if env.Traits.HorizontalSizeClass, ok = parseSizeClass(e.HorizontalSizeClass); !ok {
		return env, errors.New(errors.ErrCodeInvalidScenario, "unknown horizontal size class %q", e.HorizontalSizeClass)
	}
	if env.Traits.VerticalSizeClass, ok = parseSizeClass(e.VerticalSizeClass); !ok {
		return env, errors.New(errors.ErrCodeInvalidScenario, "unknown vertical size class %q", e.VerticalSizeClass)
	}
	if kb := e.Keyboard; kb != nil {
		env.Keyboard = resolve.Keyboard{
			Visible:  kb.Visible,
			Undocked: kb.Undocked,
			Frame:    layout.Frame{X: kb.X, Y: kb.Y, Width: kb.Width, Height: kb.Height},
		}
	}
	return env, env.Validate()
}

func (in Insets) layout() layout.Insets {
	return layout.Insets{Top: in.Top, Leading: in.Leading, Bottom: in.Bottom, Trailing: in.Trailing}
}

func parseSizeClass(s string) (layout.SizeClass, bool) {
	switch s {
	case "", "unspecified":
		return layout.SizeClassUnspecified, true
	case "compact":
		return layout.SizeClassCompact, true
	case "regular":
		return layout.SizeClassRegular, true
	}
	return layout.SizeClassUnspecified, false
}

// builder carries state while a document is turned into a scenario.
type builder struct {
	doc   *Document
	tree  *layout.Tree
	scope Scope
	out   *Scenario
}

// Build constructs the tree and an engine for the document. The document
// environment is applied before opts, so opts may override it.
func (d *Document) Build(opts ...engine.Option) (*Scenario, error) {
	env, err := d.Env()
	if err != nil {
		return nil, err
	}
	tree, err := d.tree()
	if err != nil {
		return nil, err
	}
	for _, m := range slices.Sorted(maps.Keys(d.Metrics)) {
		if err := errors.ValidateIdentifier(m); err != nil {
			return nil, fmt.Errorf("metric %q: %w", m, err)
		}
	}

	eng := engine.New(tree, append([]engine.Option{engine.WithEnvironment(env)}, opts...)...)
	b := &builder{
		doc:   d,
		tree:  tree,
		scope: Scope{Tree: tree, Metrics: d.Metrics},
		out: &Scenario{
			Name:        d.Name,
			Engine:      eng,
			Constraints: make(map[string]*constraint.Constraint),
		},
	}

	base, err := b.constraints("constraint", d.Constraints, d.Formats)
	if err != nil {
		return nil, err
	}
	eng.Activate(base...)

	for i, s := range d.Stacks {
		st, err := b.stack(s)
		if err != nil {
			return nil, fmt.Errorf("stack %d: %w", i, err)
		}
		eng.AddStack(st)
	}
	for _, sw := range d.Switches {
		if err := b.variants(sw); err != nil {
			return nil, fmt.Errorf("switch %q: %w", sw.Name, err)
		}
	}
	for i, k := range d.Keyboard {
		if err := b.keyboard(i, k); err != nil {
			return nil, fmt.Errorf("keyboard set %d: %w", i, err)
		}
	}
	return b.out, nil
}

func (d *Document) rootID() string {
	if d.Root != "" {
		return d.Root
	}
	return DefaultRoot
}

func (d *Document) tree() (*layout.Tree, error) {
	rootID := d.rootID()
	var rootOpts []layout.ElementOption
	var rest []Element
	for _, el := range d.Elements {
		if el.ID == rootID {
			o, err := el.options()
			if err != nil {
				return nil, err
			}
			rootOpts = o
			continue
		}
		rest = append(rest, el)
	}
	tree := layout.NewTree(layout.NewElement(rootID, rootOpts...))

	for _, el := range rest {
		if err := errors.ValidateIdentifier(el.ID); err != nil {
			return nil, fmt.Errorf("element %q: %w", el.ID, err)
		}
		parentID := el.Parent
		if parentID == "" {
			parentID = rootID
		}
		parent, ok := tree.Element(parentID)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "element %q: parent %q must be declared before it", el.ID, parentID)
		}
		opts, err := el.options()
		if err != nil {
			return nil, err
		}
		if err := tree.Add(parent, layout.NewElement(el.ID, opts...)); err != nil {
			return nil, fmt.Errorf("element %q: %w", el.ID, err)
		}
	}

	for _, g := range d.Guides {
		if err := errors.ValidateIdentifier(g.ID); err != nil {
			return nil, fmt.Errorf("guide %q: %w", g.ID, err)
		}
		ownerID := g.Owner
		if ownerID == "" {
			ownerID = rootID
		}
		owner, ok := tree.Element(ownerID)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "guide %q: no element %q", g.ID, ownerID)
		}
		if err := tree.AddGuide(owner, layout.NewGuide(g.ID)); err != nil {
			return nil, fmt.Errorf("guide %q: %w", g.ID, err)
		}
	}
	return tree, nil
}

func (el Element) options() ([]layout.ElementOption, error) {
	var opts []layout.ElementOption
	if len(el.Intrinsic) > 0 {
		if len(el.Intrinsic) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidScenario, "element %q: intrinsic wants [width, height]", el.ID)
		}
		size := layout.Size{Width: el.Intrinsic[0], Height: el.Intrinsic[1]}
		if el.ScaledText {
			opts = append(opts, layout.WithContent(layout.ScaledText(size)))
		} else {
			opts = append(opts, layout.WithIntrinsicSize(size.Width, size.Height))
		}
	}
	for _, p := range []struct {
		prio *AxisPriority
		set  func(layout.Axis, layout.Priority) layout.ElementOption
	}{
		{el.Hugging, layout.WithHugging},
		{el.Compression, layout.WithCompressionResistance},
	} {
		if p.prio == nil {
			continue
		}
		for axis, v := range [...]float64{layout.Horizontal: p.prio.Horizontal, layout.Vertical: p.prio.Vertical} {
			if v == 0 {
				continue
			}
			if err := errors.ValidatePriority(v); err != nil {
				return nil, fmt.Errorf("element %q: %w", el.ID, err)
			}
			opts = append(opts, p.set(layout.Axis(axis), layout.Priority(v)))
		}
	}
	if el.Margins != nil {
		opts = append(opts, layout.WithMargins(el.Margins.layout()))
	}
	if el.Hidden {
		opts = append(opts, layout.Hidden())
	}
	if el.Scrollable {
		opts = append(opts, layout.Scrollable())
	}
	return opts, nil
}

// constraints parses expressions and visual formats. Constraints without an
// explicit identifier are named "<prefix>-<n>".
func (b *builder) constraints(prefix string, exprs []string, formats []VisualFormat) ([]*constraint.Constraint, error) {
	var out []*constraint.Constraint
	for i, src := range exprs {
		c, err := ParseExpression(src, b.scope, constraint.WithIdentifier(fmt.Sprintf("%s-%d", prefix, i+1)))
		if err != nil {
			return nil, err
		}
		if err := b.register(c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	views := b.views()
	for i, f := range formats {
		opts := []vfl.Option{vfl.Identifiers(f.ID)}
		if f.ID == "" {
			opts[0] = vfl.Identifiers(fmt.Sprintf("%s-format-%d", prefix, i+1))
		}
		if f.Align != "" {
			attr, ok := layout.ParseAttribute(f.Align)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidScenario, "format %q: unknown align attribute %q", f.Format, f.Align)
			}
			opts = append(opts, vfl.AlignAll(attr))
		}
		cs, err := vfl.Parse(f.Format, views, b.doc.Metrics, opts...)
		if err != nil {
			return nil, err
		}
		for _, c := range cs {
			if err := b.register(c); err != nil {
				return nil, err
			}
		}
		out = append(out, cs...)
	}
	return out, nil
}

func (b *builder) register(c *constraint.Constraint) error {
	id := c.Identifier()
	if _, dup := b.out.Constraints[id]; dup {
		return errors.New(errors.ErrCodeDuplicateID, "constraint identifier %q used twice", id)
	}
	b.out.Constraints[id] = c
	return nil
}

func (b *builder) views() map[string]layout.Item {
	var items []layout.Item
	for _, e := range b.tree.Elements() {
		items = append(items, e)
	}
	for _, g := range b.tree.Guides() {
		if !g.IsBuiltin() {
			items = append(items, g)
		}
	}
	return vfl.Views(items...)
}

func (b *builder) element(id string) (*layout.Element, error) {
	e, ok := b.tree.Element(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no element %q", id)
	}
	return e, nil
}

func (b *builder) stack(s Stack) (*stack.Stack, error) {
	el, err := b.element(s.Element)
	if err != nil {
		return nil, err
	}
	st := stack.New(el)
	for _, id := range s.Arranged {
		e, err := b.element(id)
		if err != nil {
			return nil, err
		}
		st.AddArranged(e)
	}
	switch s.Axis {
	case "", "horizontal":
	case "vertical":
		st.Axis = layout.Vertical
	default:
		return nil, errors.New(errors.ErrCodeInvalidScenario, "unknown axis %q", s.Axis)
	}
	var ok bool
	if s.Distribution != "" {
		if st.Distribution, ok = stack.ParseDistribution(s.Distribution); !ok {
			return nil, errors.New(errors.ErrCodeInvalidScenario, "unknown distribution %q", s.Distribution)
		}
	}
	if s.Alignment != "" {
		if st.Alignment, ok = stack.ParseAlignment(s.Alignment); !ok {
			return nil, errors.New(errors.ErrCodeInvalidScenario, "unknown alignment %q", s.Alignment)
		}
	}
	st.Spacing = s.Spacing
	st.MarginsRelative = s.MarginsRelative
	for _, id := range slices.Sorted(maps.Keys(s.CustomSpacing)) {
		e, err := b.element(id)
		if err != nil {
			return nil, err
		}
		st.SetCustomSpacing(e, s.CustomSpacing[id])
	}
	return st, nil
}

func (b *builder) variants(s Switch) error {
	if s.Name == "" {
		return errors.New(errors.ErrCodeInvalidScenario, "switch without a name")
	}
	sw := store.NewSwitch(s.Name, b.out.Engine.Store())
	for _, v := range s.Variants {
		cs, err := b.constraints(s.Name+"-"+v.Name, v.Constraints, v.Formats)
		if err != nil {
			return fmt.Errorf("variant %q: %w", v.Name, err)
		}
		sw.Add(v.Name, cs...)
	}
	variants := s.Variants
	rule := func(env resolve.Environment) string {
		for _, v := range variants {
			if v.When.Matches(env) {
				return v.Name
			}
		}
		return ""
	}
	b.out.Switches = append(b.out.Switches, sw)
	return b.out.Engine.Adapt(sw, rule)
}

// Matches reports whether env satisfies every set field of the condition.
func (c Condition) Matches(env resolve.Environment) bool {
	if c.MinWidth != nil && env.Size.Width < *c.MinWidth {
		return false
	}
	if c.MaxWidth != nil && env.Size.Width > *c.MaxWidth {
		return false
	}
	h, v := env.SizeClasses()
	if c.Horizontal != "" && c.Horizontal != h.String() {
		return false
	}
	if c.Vertical != "" && c.Vertical != v.String() {
		return false
	}
	if c.Landscape != nil && *c.Landscape != (env.Size.Width > env.Size.Height) {
		return false
	}
	return true
}

func (b *builder) keyboard(i int, k KeyboardSet) error {
	near, ok := resolve.ParseEdges(k.Near)
	if !ok {
		return errors.New(errors.ErrCodeInvalidScenario, "unknown edges %q", k.Near)
	}
	away, ok := resolve.ParseEdges(k.Away)
	if !ok {
		return errors.New(errors.ErrCodeInvalidScenario, "unknown edges %q", k.Away)
	}
	cs, err := b.constraints(fmt.Sprintf("keyboard-%d", i+1), k.Constraints, nil)
	if err != nil {
		return err
	}
	b.out.Engine.SetKeyboardConstraints(cs, resolve.KeyboardCondition{Near: near, AwayFrom: away})
	return nil
}

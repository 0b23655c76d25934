package resolve

import (
	"github.com/matzehuels/autolayout/pkg/layout"
)

// Variable identifies one solver unknown. Attr is Leading for x, Top for y,
// Width or Height.
type Variable struct {
	Item layout.Item
	Attr layout.Attribute
}

var varAttrs = [4]layout.Attribute{layout.Leading, layout.Top, layout.Width, layout.Height}

// Resolver maps the items of a tree to unknowns for one environment.
// It is a snapshot: build a new one after the tree or environment changes.
type Resolver struct {
	tree   *layout.Tree
	env    Environment
	traits layout.Traits

	free  []layout.Item
	index map[layout.Item]int
}

// New allocates unknowns for every free item of tree in a stable order:
// elements in depth-first order, then custom and scroll content guides.
func New(tree *layout.Tree, env Environment) *Resolver {
	r := &Resolver{
		tree:   tree,
		env:    env,
		traits: env.ResolvedTraits(),
		index:  make(map[layout.Item]int),
	}
	for _, e := range tree.Elements() {
		if e != tree.Root() {
			r.addFree(e)
		}
	}
	for _, g := range tree.Guides() {
		if g.Kind() == layout.GuideCustom || g.Kind() == layout.GuideContent {
			r.addFree(g)
		}
	}
	return r
}

func (r *Resolver) addFree(it layout.Item) {
	r.index[it] = len(r.free) * 4
	r.free = append(r.free, it)
}

// Tree returns the resolved tree.
func (r *Resolver) Tree() *layout.Tree { return r.tree }

// Environment returns the environment the resolver was built for.
func (r *Resolver) Environment() Environment { return r.env }

// Traits returns the environment traits with size classes derived.
func (r *Resolver) Traits() layout.Traits { return r.traits }

// NumVars returns the number of unknowns.
func (r *Resolver) NumVars() int { return len(r.free) * 4 }

// FreeItems returns the items that own unknowns, in allocation order.
func (r *Resolver) FreeItems() []layout.Item { return r.free }

// Var describes unknown v.
func (r *Resolver) Var(v int) Variable {
	return Variable{Item: r.free[v/4], Attr: varAttrs[v%4]}
}

// Base returns the index of the first of item's four unknowns.
func (r *Resolver) Base(item layout.Item) (int, bool) {
	b, ok := r.index[item]
	return b, ok
}

// Rect returns the rectangle of item in root coordinates. It fails when the
// item does not belong to the tree.
func (r *Resolver) Rect(item layout.Item) (Rect, bool) {
	if item == nil || !r.tree.Contains(item) {
		return Rect{}, false
	}
	if b, ok := r.index[item]; ok {
		return VarRect(b), true
	}
	root := r.tree.Root()
	switch it := item.(type) {
	case *layout.Element:
		if it == root {
			return ConstRect(r.env.Bounds()), true
		}
	case *layout.Guide:
		owner, ok := r.Rect(it.Owner())
		if !ok {
			return Rect{}, false
		}
		switch it.Kind() {
		case layout.GuideMargins:
			if it.Owner() == root {
				return ConstRect(r.env.SafeAreaFrame()).Inset(r.rootMargins()), true
			}
			return owner.Inset(it.Owner().Margins()), true
		case layout.GuideSafeArea:
			if it.Owner() == root {
				return ConstRect(r.env.SafeAreaFrame()), true
			}
			return owner, true
		case layout.GuideKeyboard:
			return keyboardRect(r.env), true
		case layout.GuideFrame:
			return owner, true
		}
	}
	return Rect{}, false
}

func (r *Resolver) rootMargins() layout.Insets {
	if r.env.Margins != nil {
		return *r.env.Margins
	}
	return r.tree.Root().Margins()
}

// Anchor returns the linear expression for a. It fails when the anchor is
// zero or its item is not in the tree.
func (r *Resolver) Anchor(a layout.Anchor) (Expr, bool) {
	if a.IsZero() {
		return Expr{}, false
	}
	rect, ok := r.Rect(a.Item)
	if !ok {
		return Expr{}, false
	}
	return rect.Anchor(a.Attr), true
}

// Value returns the concrete coordinate of a when the environment alone
// determines it. It reports false for anchors that depend on unknowns or
// whose item is not in the tree.
func (r *Resolver) Value(a layout.Anchor) (float64, bool) {
	e, ok := r.Anchor(a)
	if !ok || !e.IsConstant() {
		return 0, false
	}
	return e.Constant, true
}

// Background returns expressions that must equal zero in every solution:
// a scroll content guide's origin coincides with its owner's.
func (r *Resolver) Background() []Expr {
	var out []Expr
	for _, it := range r.free {
		g, ok := it.(*layout.Guide)
		if !ok || g.Kind() != layout.GuideContent {
			continue
		}
		owner, _ := r.Rect(g.Owner())
		self := VarRect(r.index[g])
		out = append(out, self.X.Minus(owner.X), self.Y.Minus(owner.Y))
	}
	return out
}

// IntrinsicSize returns e's intrinsic size under the resolved traits.
func (r *Resolver) IntrinsicSize(e *layout.Element) layout.Size {
	return e.IntrinsicSize(r.traits)
}

// Frame evaluates item's frame relative to its owner, the parent for
// elements and the owning element for guides.
func (r *Resolver) Frame(item layout.Item, values []float64) (layout.Frame, bool) {
	rect, ok := r.Rect(item)
	if !ok {
		return layout.Frame{}, false
	}
	f := rect.Eval(values)
	if owner := item.Owner(); owner != nil {
		if o, ok := r.Rect(owner); ok {
			of := o.Eval(values)
			f = f.Offset(-of.X, -of.Y)
		}
	}
	return f, true
}

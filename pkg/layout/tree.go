package layout

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidID is returned when an element or guide has an empty identifier.
	ErrInvalidID = errors.New("item ID must not be empty")

	// ErrDuplicateID is returned when an item with the same ID already
	// exists in the tree. IDs must be unique across elements and guides.
	ErrDuplicateID = errors.New("duplicate item ID")

	// ErrUnknownParent is returned when the parent or owner element is not
	// attached to the tree.
	ErrUnknownParent = errors.New("parent is not in the tree")

	// ErrAlreadyAttached is returned when an element or guide already
	// belongs to a tree.
	ErrAlreadyAttached = errors.New("item is already attached to a tree")
)

// Tree is the ownership hierarchy of elements rooted at the host container.
// It tracks a version number that changes whenever something affecting
// layout changes.
//
// The zero value is not usable - use NewTree.
// Tree is not safe for concurrent use.
type Tree struct {
	root    *Element
	items   map[string]Item
	version uint64
}

// NewTree returns a tree rooted at root. The root's frame is supplied by the
// environment at solve time.
func NewTree(root *Element) *Tree {
	t := &Tree{items: make(map[string]Item)}
	t.root = root
	root.tree = t
	root.parent = nil
	t.items[root.id] = root
	return t
}

// Root returns the root element.
func (t *Tree) Root() *Element { return t.root }

// Version returns a counter that increases on every change affecting layout.
func (t *Tree) Version() uint64 { return t.version }

// Invalidate bumps the version, marking the tree's layout stale.
func (t *Tree) Invalidate() { t.version++ }

// Add attaches child under parent.
// Returns ErrInvalidID, ErrDuplicateID, ErrUnknownParent or ErrAlreadyAttached.
func (t *Tree) Add(parent, child *Element) error {
	if child.id == "" {
		return ErrInvalidID
	}
	if parent == nil || parent.tree != t {
		return ErrUnknownParent
	}
	if child.tree != nil {
		return ErrAlreadyAttached
	}
	if _, exists := t.items[child.id]; exists {
		return ErrDuplicateID
	}
	child.parent = parent
	child.tree = t
	parent.children = append(parent.children, child)
	t.items[child.id] = child
	t.Invalidate()
	return nil
}

// AddGuide attaches a custom guide to owner.
func (t *Tree) AddGuide(owner *Element, g *Guide) error {
	if g.id == "" {
		return ErrInvalidID
	}
	if owner == nil || owner.tree != t {
		return ErrUnknownParent
	}
	if g.owner != nil {
		return ErrAlreadyAttached
	}
	if _, exists := t.items[g.id]; exists {
		return ErrDuplicateID
	}
	g.owner = owner
	owner.guides = append(owner.guides, g)
	t.items[g.id] = g
	t.Invalidate()
	return nil
}

// Remove detaches e and its whole subtree, including custom guides.
// Removing the root or an element not in the tree does nothing.
func (t *Tree) Remove(e *Element) {
	if e == nil || e.tree != t || e == t.root {
		return
	}
	p := e.parent
	p.children = slices.DeleteFunc(p.children, func(c *Element) bool { return c == e })
	t.detach(e)
	t.Invalidate()
}

// RemoveGuide detaches a custom guide from its owner. Guides not in the
// tree are ignored.
func (t *Tree) RemoveGuide(g *Guide) {
	if g == nil || g.kind != GuideCustom || t.items[g.id] != Item(g) {
		return
	}
	g.owner.guides = slices.DeleteFunc(g.owner.guides, func(x *Guide) bool { return x == g })
	delete(t.items, g.id)
	g.owner = nil
	t.Invalidate()
}

func (t *Tree) detach(e *Element) {
	for _, c := range e.children {
		t.detach(c)
	}
	for _, g := range e.guides {
		delete(t.items, g.id)
	}
	delete(t.items, e.id)
	e.tree = nil
	e.parent = nil
}

// Lookup returns the element or custom guide with the given ID.
func (t *Tree) Lookup(id string) (Item, bool) {
	it, ok := t.items[id]
	return it, ok
}

// Element returns the element with the given ID.
func (t *Tree) Element(id string) (*Element, bool) {
	e, ok := t.items[id].(*Element)
	return e, ok
}

// Contains reports whether item belongs to this tree. Built-in guides belong
// to the tree of their owner.
func (t *Tree) Contains(item Item) bool {
	switch it := item.(type) {
	case *Element:
		return it.tree == t
	case *Guide:
		if it.owner == nil || it.owner.tree != t {
			return false
		}
		if it.kind == GuideCustom {
			return t.items[it.id] == Item(it)
		}
		return true
	}
	return false
}

// Elements returns every element in depth-first pre-order starting at the
// root. The order is stable across calls.
func (t *Tree) Elements() []*Element {
	var out []*Element
	var walk func(e *Element)
	walk = func(e *Element) {
		out = append(out, e)
		for _, c := range e.children {
			walk(c)
		}
	}
	walk(t.root)
	return out
}

// Guides returns every custom guide and every built-in guide that has been
// requested, ordered by owner in depth-first pre-order.
func (t *Tree) Guides() []*Guide {
	var out []*Guide
	for _, e := range t.Elements() {
		for _, g := range []*Guide{e.marginsGuide, e.safeAreaGuide, e.keyboardGuide, e.contentGuide, e.frameGuide} {
			if g != nil {
				out = append(out, g)
			}
		}
		out = append(out, e.guides...)
	}
	return out
}

// Len returns the number of elements in the tree.
func (t *Tree) Len() int { return len(t.Elements()) }

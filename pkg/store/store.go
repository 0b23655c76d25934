// Package store tracks which constraints are active.
//
// A [Store] holds references to constraints; it never owns the items they
// point at. Activation is idempotent and order preserving: [Store.Active]
// lists constraints in the order they were (last) activated, which the solver
// uses to decide which of several conflicting required constraints to drop.
//
// Any effective change marks the store dirty and calls the change callback,
// so the owner knows the next layout pass must re-solve.
package store

import (
	"slices"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/observability"
)

// Store is an ordered set of active constraints.
//
// The zero value is not usable - use New.
// Store is not safe for concurrent use.
type Store struct {
	active   []*constraint.Constraint
	set      map[*constraint.Constraint]struct{}
	dirty    bool
	onChange func()
}

// Option configures a Store.
type Option func(*Store)

// OnChange registers fn to be called after every effective change.
func OnChange(fn func()) Option {
	return func(s *Store) { s.onChange = fn }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{set: make(map[*constraint.Constraint]struct{})}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Activate adds constraints to the active set. Constraints that are already
// active keep their position. It returns the number newly activated.
func (s *Store) Activate(cs ...*constraint.Constraint) int {
	added := s.activate(cs)
	if len(added) > 0 {
		observability.Store().OnActivate(identifiers(added), len(s.active))
		s.changed()
	}
	return len(added)
}

// Deactivate removes constraints from the active set. Inactive constraints
// are ignored. It returns the number removed.
func (s *Store) Deactivate(cs ...*constraint.Constraint) int {
	removed := s.deactivate(cs)
	if len(removed) > 0 {
		observability.Store().OnDeactivate(identifiers(removed), len(s.active))
		s.changed()
	}
	return len(removed)
}

// Swap deactivates off and then activates on as one change. Constraints
// present in both lists end up active.
func (s *Store) Swap(off, on []*constraint.Constraint) {
	keep := make(map[*constraint.Constraint]struct{}, len(on))
	for _, c := range on {
		keep[c] = struct{}{}
	}
	var drop []*constraint.Constraint
	for _, c := range off {
		if _, ok := keep[c]; !ok {
			drop = append(drop, c)
		}
	}
	removed := s.deactivate(drop)
	added := s.activate(on)
	if len(removed) > 0 {
		observability.Store().OnDeactivate(identifiers(removed), len(s.active))
	}
	if len(added) > 0 {
		observability.Store().OnActivate(identifiers(added), len(s.active))
	}
	if len(removed)+len(added) > 0 {
		s.changed()
	}
}

func (s *Store) activate(cs []*constraint.Constraint) []*constraint.Constraint {
	var added []*constraint.Constraint
	for _, c := range cs {
		if c == nil {
			continue
		}
		if _, ok := s.set[c]; ok {
			continue
		}
		s.set[c] = struct{}{}
		s.active = append(s.active, c)
		added = append(added, c)
	}
	return added
}

func (s *Store) deactivate(cs []*constraint.Constraint) []*constraint.Constraint {
	var removed []*constraint.Constraint
	for _, c := range cs {
		if _, ok := s.set[c]; !ok {
			continue
		}
		delete(s.set, c)
		removed = append(removed, c)
	}
	if len(removed) > 0 {
		s.active = slices.DeleteFunc(s.active, func(c *constraint.Constraint) bool {
			_, ok := s.set[c]
			return !ok
		})
	}
	return removed
}

func (s *Store) changed() {
	s.dirty = true
	if s.onChange != nil {
		s.onChange()
	}
}

// Active returns the active constraints in activation order.
// The returned slice is a copy.
func (s *Store) Active() []*constraint.Constraint {
	return slices.Clone(s.active)
}

// IsActive reports whether c is active.
func (s *Store) IsActive(c *constraint.Constraint) bool {
	_, ok := s.set[c]
	return ok
}

// Len returns the number of active constraints.
func (s *Store) Len() int { return len(s.active) }

// Lookup returns the active constraint with the given identifier.
func (s *Store) Lookup(id string) (*constraint.Constraint, bool) {
	for _, c := range s.active {
		if c.Identifier() == id {
			return c, true
		}
	}
	return nil, false
}

// Dirty reports whether the active set changed since the last MarkClean.
func (s *Store) Dirty() bool { return s.dirty }

// MarkClean clears the dirty flag after a layout pass.
func (s *Store) MarkClean() { s.dirty = false }

func identifiers(cs []*constraint.Constraint) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Identifier()
	}
	return out
}

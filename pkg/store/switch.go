package store

import (
	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/observability"
)

// Switch groups mutually exclusive constraint variants, such as the wide and
// narrow arrangements of an adaptive layout. At most one variant is active.
type Switch struct {
	name     string
	store    *Store
	order    []string
	variants map[string][]*constraint.Constraint
	selected string
}

// NewSwitch returns a switch that activates its variants in s.
func NewSwitch(name string, s *Store) *Switch {
	return &Switch{
		name:     name,
		store:    s,
		variants: make(map[string][]*constraint.Constraint),
	}
}

// Name returns the switch name.
func (w *Switch) Name() string { return w.name }

// Add appends constraints to a variant, creating it on first use. Constraints
// added to the selected variant are activated immediately.
func (w *Switch) Add(variant string, cs ...*constraint.Constraint) {
	if _, ok := w.variants[variant]; !ok {
		w.order = append(w.order, variant)
	}
	w.variants[variant] = append(w.variants[variant], cs...)
	if w.selected != "" && variant == w.selected {
		w.store.Activate(cs...)
	}
}

// Variants returns the variant names in the order they were added.
func (w *Switch) Variants() []string { return w.order }

// Constraints returns the constraints of a variant.
func (w *Switch) Constraints(variant string) []*constraint.Constraint {
	return w.variants[variant]
}

// Selected returns the active variant, or "" when none is.
func (w *Switch) Selected() string { return w.selected }

// Select activates variant after deactivating every other variant, in a
// single store change. Selecting the current variant re-activates any of its
// constraints that were deactivated behind the switch's back.
func (w *Switch) Select(variant string) error {
	on, ok := w.variants[variant]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "switch %q has no variant %q", w.name, variant)
	}
	var off []*constraint.Constraint
	for _, name := range w.order {
		if name != variant {
			off = append(off, w.variants[name]...)
		}
	}
	w.store.Swap(off, on)
	if w.selected != variant {
		w.selected = variant
		observability.Store().OnVariantSelected(w.name, variant)
	}
	return nil
}

// Clear deactivates every variant.
func (w *Switch) Clear() {
	var off []*constraint.Constraint
	for _, name := range w.order {
		off = append(off, w.variants[name]...)
	}
	w.store.Deactivate(off...)
	w.selected = ""
}

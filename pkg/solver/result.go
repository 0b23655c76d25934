package solver

import (
	"strings"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/observability"
)

// ItemFrame is the solved frame of one element or guide.
type ItemFrame struct {
	Item layout.Item
	// Owner is the ID of the element the frame is relative to, or "" for
	// the root.
	Owner string
	Frame layout.Frame
	// Guide marks virtual items that are never painted.
	Guide bool
	// ContentSize is the scrollable content size of scroll elements whose
	// content guide is constrained.
	ContentSize *layout.Size
}

// Result is the outcome of a solve: exactly one frame per item plus
// everything the solver had to give up on.
type Result struct {
	// Frames lists elements in depth-first order, then guides.
	Frames []ItemFrame

	Diagnostics []Diagnostic

	// Unsatisfied lists optional constraints the final layout violates.
	Unsatisfied []*constraint.Constraint

	// Dropped lists required constraints broken to resolve conflicts.
	Dropped []*constraint.Constraint

	Stats observability.SolveStats

	index map[layout.Item]int
}

// Frame returns the parent-relative frame of item.
func (r *Result) Frame(item layout.Item) (layout.Frame, bool) {
	i, ok := r.index[item]
	if !ok {
		return layout.Frame{}, false
	}
	return r.Frames[i].Frame, true
}

// FrameOf returns the frame of the item with the given ID.
func (r *Result) FrameOf(id string) (layout.Frame, bool) {
	for _, f := range r.Frames {
		if f.Item.ID() == id {
			return f.Frame, true
		}
	}
	return layout.Frame{}, false
}

// ContentSize returns the scrollable content size of e.
func (r *Result) ContentSize(e *layout.Element) (layout.Size, bool) {
	i, ok := r.index[e]
	if !ok || r.Frames[i].ContentSize == nil {
		return layout.Size{}, false
	}
	return *r.Frames[i].ContentSize, true
}

// DiagnosticsOf returns the diagnostics of the given kind.
func (r *Result) DiagnosticsOf(k Kind) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Err folds the diagnostics into a single AMBIGUOUS_OR_UNSATISFIABLE error,
// or returns nil when there are none.
func (r *Result) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	msgs := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		msgs[i] = d.String()
	}
	return errors.New(errors.ErrCodeAmbiguousOrUnsatisfiable, "%s", strings.Join(msgs, "; "))
}

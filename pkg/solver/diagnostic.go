package solver

import (
	"fmt"
	"strings"

	"github.com/matzehuels/autolayout/pkg/layout"
)

// Kind classifies a diagnostic.
type Kind uint8

const (
	// Unsatisfiable reports a minimal set of required constraints that
	// cannot hold together. One of them was dropped to continue.
	Unsatisfiable Kind = iota
	// Ambiguous reports an item whose frame is not uniquely determined.
	Ambiguous
	// Unresolved reports a constraint referencing an item outside the tree.
	Unresolved
)

// String returns "unsatisfiable", "ambiguous" or "unresolved".
func (k Kind) String() string {
	switch k {
	case Ambiguous:
		return "ambiguous"
	case Unresolved:
		return "unresolved"
	}
	return "unsatisfiable"
}

// Diagnostic describes a problem found while solving. Diagnostics accompany
// a usable result; they are not errors.
type Diagnostic struct {
	Kind Kind

	// Constraints lists the identifiers involved. For Unsatisfiable it is the
	// whole conflicting set; for Ambiguous the constraints touching Item.
	Constraints []string

	// Dropped is the identifier removed to resolve an Unsatisfiable set.
	Dropped string

	// Item is the ambiguous item, or the missing item for Unresolved.
	Item string

	// Attributes lists the undetermined unknowns of an Ambiguous item.
	Attributes []layout.Attribute

	Message string
}

// String formats the diagnostic on one line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

func unsatisfiable(ids []string, dropped string) Diagnostic {
	return Diagnostic{
		Kind:        Unsatisfiable,
		Constraints: ids,
		Dropped:     dropped,
		Message: fmt.Sprintf("unable to simultaneously satisfy constraints [%s]; breaking %s",
			strings.Join(ids, ", "), dropped),
	}
}

func ambiguous(item string, attrs []layout.Attribute, ids []string) Diagnostic {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.String()
	}
	return Diagnostic{
		Kind:        Ambiguous,
		Constraints: ids,
		Item:        item,
		Attributes:  attrs,
		Message:     fmt.Sprintf("%s has an ambiguous layout (%s)", item, strings.Join(names, ", ")),
	}
}

func unresolved(id string, a layout.Anchor) Diagnostic {
	item := "<none>"
	if a.Item != nil {
		item = a.Item.ID()
	}
	return Diagnostic{
		Kind:        Unresolved,
		Constraints: []string{id},
		Item:        item,
		Message:     fmt.Sprintf("constraint %s references %s, which is not in the layout tree", id, a),
	}
}

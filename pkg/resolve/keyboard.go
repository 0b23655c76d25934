package resolve

import "strings"

// Edge is a set of container edges.
type Edge uint8

const (
	EdgeTop Edge = 1 << iota
	EdgeLeading
	EdgeBottom
	EdgeTrailing

	EdgeNone Edge = 0
	EdgeAll       = EdgeTop | EdgeLeading | EdgeBottom | EdgeTrailing
)

// NearEdgeFraction is how close, as a share of the container dimension, an
// undocked keyboard must be to an edge to count as near it.
const NearEdgeFraction = 0.1

var edgeNames = []struct {
	edge Edge
	name string
}{
	{EdgeTop, "top"},
	{EdgeLeading, "leading"},
	{EdgeBottom, "bottom"},
	{EdgeTrailing, "trailing"},
}

// String lists the edges in the set, joined by "|".
func (e Edge) String() string {
	if e == EdgeNone {
		return "none"
	}
	var parts []string
	for _, en := range edgeNames {
		if e&en.edge != 0 {
			parts = append(parts, en.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseEdges parses a "|" or "," separated list of edge names.
func ParseEdges(s string) (Edge, bool) {
	var out Edge
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.TrimSpace(part)
		found := false
		for _, en := range edgeNames {
			if en.name == part {
				out |= en.edge
				found = true
			}
		}
		if !found && part != "none" {
			return EdgeNone, false
		}
	}
	return out, true
}

// KeyboardNearEdges reports the container edges the keyboard is near.
// A hidden or docked keyboard sits at the bottom spanning the full width.
func (env Environment) KeyboardNearEdges() Edge {
	if !env.Keyboard.Visible || !env.Keyboard.Undocked {
		return EdgeLeading | EdgeBottom | EdgeTrailing
	}
	kb := env.Keyboard.Frame
	dx := env.Size.Width * NearEdgeFraction
	dy := env.Size.Height * NearEdgeFraction

	var out Edge
	if kb.MinY() <= dy {
		out |= EdgeTop
	}
	if kb.MaxY() >= env.Size.Height-dy {
		out |= EdgeBottom
	}
	if kb.MinX() <= dx {
		out |= EdgeLeading
	}
	if kb.MaxX() >= env.Size.Width-dx {
		out |= EdgeTrailing
	}
	return out
}

// KeyboardCondition gates a constraint set on the keyboard's position.
// The set is active when the keyboard is near every edge in Near and near
// none of the edges in AwayFrom.
type KeyboardCondition struct {
	Near     Edge
	AwayFrom Edge
}

// NearEdge returns a condition that holds while the keyboard is near e.
func NearEdge(e Edge) KeyboardCondition { return KeyboardCondition{Near: e} }

// AwayFrom returns a condition that holds while the keyboard is away from
// every edge in e.
func AwayFrom(e Edge) KeyboardCondition { return KeyboardCondition{AwayFrom: e} }

// Holds reports whether the condition is met for the given near edges.
func (c KeyboardCondition) Holds(near Edge) bool {
	return near&c.Near == c.Near && near&c.AwayFrom == 0
}

// String formats the condition as "near:top" or "away:leading|trailing".
func (c KeyboardCondition) String() string {
	var parts []string
	if c.Near != EdgeNone {
		parts = append(parts, "near:"+c.Near.String())
	}
	if c.AwayFrom != EdgeNone {
		parts = append(parts, "away:"+c.AwayFrom.String())
	}
	if len(parts) == 0 {
		return "always"
	}
	return strings.Join(parts, " ")
}

// keyboardRect is the keyboard guide's rectangle in root coordinates.
func keyboardRect(env Environment) Rect {
	return ConstRect(env.KeyboardFrame())
}

package constraint

// Relation is the comparison between the two sides of a constraint.
type Relation int8

const (
	LessOrEqual    Relation = -1
	Equal          Relation = 0
	GreaterOrEqual Relation = 1
)

// String returns "<=", "==" or ">=".
func (r Relation) String() string {
	switch r {
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	}
	return "=="
}

// ParseRelation accepts "==", "=", "<=" and ">=".
func ParseRelation(s string) (Relation, bool) {
	switch s {
	case "==", "=":
		return Equal, true
	case "<=":
		return LessOrEqual, true
	case ">=":
		return GreaterOrEqual, true
	}
	return Equal, false
}

// Flip returns the relation with its sides swapped.
func (r Relation) Flip() Relation { return -r }

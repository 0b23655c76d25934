package layout

import "strconv"

// Priority is the strength of a constraint or of an element's content
// hugging / compression resistance. Valid values lie in [1, 1000].
type Priority float64

// Well-known priority levels.
const (
	Required               Priority = 1000
	DefaultHigh            Priority = 750
	DragThatCanResizeScene Priority = 510
	DefaultLow             Priority = 250
	FittingSizeLevel       Priority = 50
)

// IsRequired reports whether p is the required priority.
func (p Priority) IsRequired() bool { return p >= Required }

// Valid reports whether p lies in [1, 1000].
func (p Priority) Valid() bool { return p >= 1 && p <= Required }

// String returns the numeric value, naming the well-known levels.
func (p Priority) String() string {
	switch p {
	case Required:
		return "required"
	case DefaultHigh:
		return "defaultHigh"
	case DefaultLow:
		return "defaultLow"
	case FittingSizeLevel:
		return "fittingSizeLevel"
	}
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

package vfl

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed format string. Offset is the byte offset
// of the problem in Format.
type ParseError struct {
	Format string
	Offset int
	Reason string
}

// Error formats the reason followed by the format string and a caret under
// the offending position.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s\n%s\n%s^", e.Reason, e.Format, strings.Repeat(" ", e.Offset))
}

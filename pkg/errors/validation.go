package errors

import (
	"math"
	"regexp"
	"unicode"
)

// maxIdentifierLength bounds element, guide, metric and constraint identifiers.
const maxIdentifierLength = 128

// identifierRegex matches names usable in visual format strings and
// constraint expressions: a letter or underscore followed by letters, digits,
// underscores or dashes.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateIdentifier validates an element, guide or metric name.
//
// The rules are the ones the visual format language and the scenario
// expression syntax can round-trip:
//   - No empty names
//   - No control characters
//   - Must start with a letter or underscore
//   - Only letters, digits, underscores and dashes afterwards
//   - Maximum length of 128 characters
func ValidateIdentifier(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(name) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "identifier too long (max %d characters)", maxIdentifierLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}

	if !identifierRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid identifier: %q", name)
	}

	return nil
}

// ValidatePriority validates a layout priority.
// Priorities must lie in [1, 1000]; 1000 is required.
func ValidatePriority(p float64) error {
	if math.IsNaN(p) || p < 1 || p > 1000 {
		return New(ErrCodeInvalidPriority, "priority %v out of range [1, 1000]", p)
	}
	return nil
}

// ValidateDimension validates a length such as a container width or an inset.
// Dimensions must be finite and non-negative.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative (got %v)", name, v)
	}
	return nil
}

// ValidateFinite validates a constraint coefficient or constant.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite", name)
	}
	return nil
}

package resolve

import (
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
)

// CompactThreshold is the container dimension below which a size class is
// derived as compact when the environment leaves it unspecified.
const CompactThreshold = 500.0

// Environment is the platform state layout is solved against.
type Environment struct {
	// Size is the root container size.
	Size layout.Size
	// SafeArea are the root insets obscured by system chrome.
	SafeArea layout.Insets
	// Margins overrides the root element's layout margins when set.
	Margins *layout.Insets
	// Keyboard is the on-screen keyboard state.
	Keyboard Keyboard
	// Traits carry size classes and the content scale.
	Traits layout.Traits
}

// Keyboard describes the on-screen keyboard. Frame is in root coordinates
// and only meaningful while Visible.
type Keyboard struct {
	Visible  bool
	Frame    layout.Frame
	Undocked bool
}

// Validate checks that every dimension is finite and non-negative.
func (env Environment) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"width", env.Size.Width},
		{"height", env.Size.Height},
		{"safe area top", env.SafeArea.Top},
		{"safe area leading", env.SafeArea.Leading},
		{"safe area bottom", env.SafeArea.Bottom},
		{"safe area trailing", env.SafeArea.Trailing},
	}
	for _, c := range checks {
		if err := errors.ValidateDimension(c.name, c.v); err != nil {
			return err
		}
	}
	if env.Keyboard.Visible {
		kb := env.Keyboard.Frame
		if err := errors.ValidateFinite("keyboard x", kb.X); err != nil {
			return err
		}
		if err := errors.ValidateFinite("keyboard y", kb.Y); err != nil {
			return err
		}
		if err := errors.ValidateDimension("keyboard width", kb.Width); err != nil {
			return err
		}
		if err := errors.ValidateDimension("keyboard height", kb.Height); err != nil {
			return err
		}
	}
	return nil
}

// SizeClasses returns the horizontal and vertical size classes, deriving
// unspecified ones from the container size.
func (env Environment) SizeClasses() (h, v layout.SizeClass) {
	h, v = env.Traits.HorizontalSizeClass, env.Traits.VerticalSizeClass
	if h == layout.SizeClassUnspecified {
		h = classFor(env.Size.Width)
	}
	if v == layout.SizeClassUnspecified {
		v = classFor(env.Size.Height)
	}
	return h, v
}

func classFor(d float64) layout.SizeClass {
	if d < CompactThreshold {
		return layout.SizeClassCompact
	}
	return layout.SizeClassRegular
}

// ResolvedTraits returns the traits with size classes filled in and a
// non-zero content scale.
func (env Environment) ResolvedTraits() layout.Traits {
	t := env.Traits
	t.HorizontalSizeClass, t.VerticalSizeClass = env.SizeClasses()
	t.ContentScale = t.Scale()
	return t
}

// Bounds returns the root frame.
func (env Environment) Bounds() layout.Frame {
	return layout.Frame{Width: env.Size.Width, Height: env.Size.Height}
}

// SafeAreaFrame returns the root bounds minus the safe-area insets.
func (env Environment) SafeAreaFrame() layout.Frame {
	return env.Bounds().Inset(env.SafeArea)
}

// KeyboardFrame returns the keyboard guide's frame. A hidden keyboard is
// parked below the safe area, so its top edge equals the safe-area bottom.
func (env Environment) KeyboardFrame() layout.Frame {
	if env.Keyboard.Visible {
		return env.Keyboard.Frame
	}
	return layout.Frame{
		Y:      env.Size.Height - env.SafeArea.Bottom,
		Width:  env.Size.Width,
		Height: env.SafeArea.Bottom,
	}
}

// Rotated returns the environment with width and height swapped and the
// safe-area insets turned a quarter clockwise.
func (env Environment) Rotated() Environment {
	out := env
	out.Size = layout.Size{Width: env.Size.Height, Height: env.Size.Width}
	out.SafeArea = layout.Insets{
		Top:      env.SafeArea.Leading,
		Leading:  env.SafeArea.Bottom,
		Bottom:   env.SafeArea.Trailing,
		Trailing: env.SafeArea.Top,
	}
	out.Traits.HorizontalSizeClass = env.Traits.VerticalSizeClass
	out.Traits.VerticalSizeClass = env.Traits.HorizontalSizeClass
	out.Keyboard = Keyboard{}
	return out
}

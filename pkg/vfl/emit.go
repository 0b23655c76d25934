package vfl

import (
	"strconv"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
)

// builder turns a parsed format into constraints.
type builder struct {
	cfg  config
	axis layout.Axis
	out  []*constraint.Constraint
}

func (b *builder) attrs() (lead, trail, size layout.Attribute) {
	if b.axis == layout.Vertical {
		return layout.Top, layout.Bottom, layout.Height
	}
	return layout.Leading, layout.Trailing, layout.Width
}

func (b *builder) add(first layout.Anchor, rel constraint.Relation, second layout.Anchor, opts ...constraint.Option) error {
	c, err := constraint.New(first, rel, second, b.named(opts...)...)
	if err != nil {
		return err
	}
	b.out = append(b.out, c)
	return nil
}

func (b *builder) emit(f *format) error {
	lead, trail, size := b.attrs()

	if f.leading != nil {
		first := f.views[0].item
		err := b.spacing(*f.leading, first.Anchor(lead), f.superview.Anchor(lead), StandardSuperviewSpacing)
		if err != nil {
			return err
		}
	}

	for i, v := range f.views {
		if err := b.sizes(v, size); err != nil {
			return err
		}
		if i < len(f.between) {
			next := f.views[i+1].item
			err := b.spacing(f.between[i], next.Anchor(lead), v.item.Anchor(trail), constraint.SystemSpacing)
			if err != nil {
				return err
			}
		}
	}

	if f.trailing != nil {
		last := f.views[len(f.views)-1].item
		err := b.spacing(*f.trailing, f.superview.Anchor(trail), last.Anchor(trail), StandardSuperviewSpacing)
		if err != nil {
			return err
		}
	}

	return b.align(f)
}

// spacing emits first REL second + c for every predicate of conn.
func (b *builder) spacing(conn connection, first, second layout.Anchor, standard float64) error {
	if conn.standard {
		return b.add(first, constraint.Equal, second, constraint.Offset(standard))
	}
	for _, p := range conn.preds {
		err := b.add(first, p.rel, second, constraint.Offset(p.constant), constraint.WithPriority(p.priority))
		if err != nil {
			return err
		}
	}
	return nil
}

// sizes emits the width or height predicates of a view.
func (b *builder) sizes(v view, attr layout.Attribute) error {
	for _, p := range v.preds {
		var err error
		if p.view != nil {
			err = b.add(v.item.Anchor(attr), p.rel, p.view.Anchor(attr), constraint.WithPriority(p.priority))
		} else {
			var c *constraint.Constraint
			c, err = constraint.Constant(v.item.Anchor(attr), p.rel, p.constant, b.named(constraint.WithPriority(p.priority))...)
			if err == nil {
				b.out = append(b.out, c)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) named(opts ...constraint.Option) []constraint.Option {
	if b.cfg.prefix != "" {
		opts = append(opts, constraint.WithIdentifier(b.cfg.prefix+"-"+strconv.Itoa(len(b.out))))
	}
	return opts
}

// align emits the AlignAll constraints against the first view.
func (b *builder) align(f *format) error {
	for _, attr := range b.cfg.align {
		if attr.IsSize() || attr.Axis() == b.axis {
			return errors.New(errors.ErrCodeInvalidInput,
				"cannot align %s in a %s format", attr, b.axis)
		}
		first := f.views[0].item
		for _, v := range f.views[1:] {
			if err := b.add(v.item.Anchor(attr), constraint.Equal, first.Anchor(attr)); err != nil {
				return err
			}
		}
	}
	return nil
}

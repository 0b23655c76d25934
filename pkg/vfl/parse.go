package vfl

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
)

// StandardSuperviewSpacing is the spacing a bare "-" produces next to "|".
const StandardSuperviewSpacing = 20.0

// Option configures Parse.
type Option func(*config)

type config struct {
	align  []layout.Attribute
	prefix string
}

// AlignAll additionally aligns attr of every view in the format with the
// first view. The attribute must lie on the axis perpendicular to the
// format's orientation.
func AlignAll(attr layout.Attribute) Option {
	return func(c *config) { c.align = append(c.align, attr) }
}

// Identifiers names the generated constraints prefix-0, prefix-1, ... in
// emission order instead of generating random identifiers.
func Identifiers(prefix string) Option {
	return func(c *config) { c.prefix = prefix }
}

// Parse converts a visual format string into constraints. views maps the
// names used in the format to items; metrics maps names to constants.
//
// Malformed formats, unknown names and out-of-range priorities fail with a
// PARSE_ERROR wrapping a *ParseError.
func Parse(format string, views map[string]layout.Item, metrics map[string]float64, opts ...Option) ([]*constraint.Constraint, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &parser{src: format, views: views, metrics: metrics}
	f, err := p.parse()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse visual format %q", format)
	}

	b := &builder{cfg: cfg, axis: f.axis}
	if err := b.emit(f); err != nil {
		return nil, err
	}
	return b.out, nil
}

// MustParse is like Parse but panics on error.
func MustParse(format string, views map[string]layout.Item, metrics map[string]float64, opts ...Option) []*constraint.Constraint {
	cs, err := Parse(format, views, metrics, opts...)
	if err != nil {
		panic(err)
	}
	return cs
}

// Views builds a views map keyed by item ID.
func Views(items ...layout.Item) map[string]layout.Item {
	out := make(map[string]layout.Item, len(items))
	for _, it := range items {
		out[it.ID()] = it
	}
	return out
}

// =============================================================================
// Syntax
// =============================================================================

type predicate struct {
	offset   int
	rel      constraint.Relation
	constant float64
	view     layout.Item
	priority layout.Priority
}

type connection struct {
	offset   int
	standard bool
	preds    []predicate
}

type view struct {
	offset int
	item   layout.Item
	preds  []predicate
}

type format struct {
	axis      layout.Axis
	leading   *connection // connection from the leading "|", if any
	views     []view
	between   []connection // between[i] joins views[i] and views[i+1]
	trailing  *connection  // connection to the trailing "|", if any
	superview *layout.Element
}

type parser struct {
	src     string
	pos     int
	views   map[string]layout.Item
	metrics map[string]float64
}

func (p *parser) fail(offset int, reason string, args ...any) *ParseError {
	return &ParseError{Format: p.src, Offset: offset, Reason: fmt.Sprintf(reason, args...)}
}

func (p *parser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *parser) accept(s string) bool {
	if len(p.src)-p.pos >= len(s) && p.src[p.pos:p.pos+len(s)] == s {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		if p.pos >= len(p.src) {
			return p.fail(p.pos, "expected '%c' but the format ended", c)
		}
		return p.fail(p.pos, "expected '%c'", c)
	}
	p.pos++
	return nil
}

func (p *parser) parse() (*format, error) {
	f := &format{axis: layout.Horizontal}
	switch {
	case p.accept("H:"):
	case p.accept("V:"):
		f.axis = layout.Vertical
	}

	if p.peek() == '|' {
		p.pos++
		conn, err := p.connection()
		if err != nil {
			return nil, err
		}
		f.leading = &conn
	}

	for {
		v, err := p.view()
		if err != nil {
			return nil, err
		}
		f.views = append(f.views, v)
		if p.pos == len(p.src) {
			break
		}
		conn, err := p.connection()
		if err != nil {
			return nil, err
		}
		if p.peek() == '|' {
			p.pos++
			f.trailing = &conn
			if p.pos != len(p.src) {
				return nil, p.fail(p.pos, "unexpected characters after the closing '|'")
			}
			break
		}
		f.between = append(f.between, conn)
	}

	if f.leading != nil || f.trailing != nil {
		owner := f.views[0].item.Owner()
		if owner == nil {
			return nil, p.fail(f.views[0].offset, "%s has no superview to pin to '|'", f.views[0].item.ID())
		}
		f.superview = owner
	}
	return f, nil
}

func (p *parser) view() (view, error) {
	start := p.pos
	if err := p.expect('['); err != nil {
		return view{}, err
	}
	nameAt := p.pos
	name := p.name()
	if name == "" {
		return view{}, p.fail(nameAt, "expected a view name")
	}
	item, ok := p.views[name]
	if !ok {
		return view{}, p.fail(nameAt, "no view named %q in the views map", name)
	}
	v := view{offset: start, item: item}
	if p.peek() == '(' {
		preds, err := p.predicateList(true)
		if err != nil {
			return view{}, err
		}
		v.preds = preds
	}
	if err := p.expect(']'); err != nil {
		return view{}, err
	}
	return v, nil
}

func (p *parser) connection() (connection, error) {
	c := connection{offset: p.pos}
	if p.peek() != '-' {
		if p.peek() == '[' || p.peek() == '|' {
			c.preds = []predicate{{offset: p.pos, rel: constraint.Equal, priority: layout.Required}}
			return c, nil
		}
		return c, p.fail(p.pos, "expected '-', '[' or '|'")
	}
	p.pos++
	if p.peek() == '[' || p.peek() == '|' {
		c.standard = true
		return c, nil
	}

	if p.peek() == '(' {
		preds, err := p.predicateList(false)
		if err != nil {
			return c, err
		}
		c.preds = preds
	} else {
		at := p.pos
		v, err := p.constant()
		if err != nil {
			return c, err
		}
		c.preds = []predicate{{offset: at, rel: constraint.Equal, constant: v, priority: layout.Required}}
	}
	if err := p.expect('-'); err != nil {
		return c, err
	}
	return c, nil
}

func (p *parser) predicateList(allowViews bool) ([]predicate, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var out []predicate
	for {
		pred, err := p.predicate(allowViews)
		if err != nil {
			return nil, err
		}
		out = append(out, pred)
		if p.peek() == ',' {
			p.pos++
			continue
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func (p *parser) predicate(allowViews bool) (predicate, error) {
	pred := predicate{offset: p.pos, rel: constraint.Equal, priority: layout.Required}
	for _, op := range []string{"==", "<=", ">="} {
		if p.accept(op) {
			pred.rel, _ = constraint.ParseRelation(op)
			break
		}
	}

	at := p.pos
	sign := 1.0
	if p.peek() == '-' {
		p.pos++
		sign = -1
	}
	if isNameStart(p.peek()) {
		name := p.name()
		if c, ok := p.metrics[name]; ok {
			pred.constant = sign * c
		} else if v, ok := p.views[name]; ok && allowViews && sign > 0 {
			pred.view = v
		} else if ok && sign < 0 {
			return pred, p.fail(at, "view %q cannot be negated", name)
		} else if ok {
			return pred, p.fail(at, "view %q cannot be used as a spacing", name)
		} else {
			return pred, p.fail(at, "no metric or view named %q", name)
		}
	} else {
		c, err := p.number()
		if err != nil {
			return pred, err
		}
		pred.constant = sign * c
	}

	if p.peek() == '@' {
		p.pos++
		at := p.pos
		prio, err := p.constant()
		if err != nil {
			return pred, err
		}
		if !layout.Priority(prio).Valid() {
			return pred, p.fail(at, "priority %v out of range [1, 1000]", prio)
		}
		pred.priority = layout.Priority(prio)
	}
	return pred, nil
}

// constant parses a number or metric name.
func (p *parser) constant() (float64, error) {
	at := p.pos
	if isNameStart(p.peek()) {
		name := p.name()
		if c, ok := p.metrics[name]; ok {
			return c, nil
		}
		return 0, p.fail(at, "no metric named %q", name)
	}
	return p.number()
}

func (p *parser) number() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 0, p.fail(start, "expected a number or metric name")
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, p.fail(start, "malformed number %q", p.src[start:p.pos])
	}
	return v, nil
}

func (p *parser) name() string {
	start := p.pos
	if !isNameStart(p.peek()) {
		return ""
	}
	for p.pos < len(p.src) && (isNameStart(p.src[p.pos]) || isDigit(p.src[p.pos])) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

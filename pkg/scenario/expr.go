package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/vfl"
)

// priorityNames are the symbolic priorities accepted after '@'.
var priorityNames = map[string]layout.Priority{
	"required": layout.Required,
	"high":     layout.DefaultHigh,
	"drag":     layout.DragThatCanResizeScene,
	"low":      layout.DefaultLow,
	"fitting":  layout.FittingSizeLevel,
}

// Scope resolves the names used in constraint expressions: anchors such as
// "title.leading" or "root.safeArea.top", and metric names.
type Scope struct {
	Tree    *layout.Tree
	Metrics map[string]float64
}

// Item looks up an element, a custom guide, or a built-in guide written as
// "<owner>.<kind>".
func (s Scope) Item(path string) (layout.Item, bool) {
	if it, ok := s.Tree.Lookup(path); ok {
		return it, true
	}
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return nil, false
	}
	owner, ok := s.Tree.Element(path[:i])
	if !ok {
		return nil, false
	}
	kind, ok := layout.ParseGuideKind(path[i+1:])
	if !ok {
		return nil, false
	}
	return owner.BuiltinGuide(kind), true
}

// Anchor resolves "<item>.<attribute>".
func (s Scope) Anchor(ref string) (layout.Anchor, error) {
	i := strings.LastIndexByte(ref, '.')
	if i < 0 {
		return layout.Anchor{}, fmt.Errorf("%q is not an anchor", ref)
	}
	attr, ok := layout.ParseAttribute(ref[i+1:])
	if !ok {
		return layout.Anchor{}, fmt.Errorf("unknown attribute %q", ref[i+1:])
	}
	item, ok := s.Item(ref[:i])
	if !ok {
		return layout.Anchor{}, fmt.Errorf("no element or guide named %q", ref[:i])
	}
	return item.Anchor(attr), nil
}

// ParseExpression parses a constraint written as
//
//	first REL [multiplier *] second [± constant] [@priority] [[identifier]]
//	first REL constant [@priority] [[identifier]]
//
// where REL is ==, >= or <=, constants may be metric names and priorities
// may be numbers or one of required, high, drag, low and fitting. This is
// the syntax [constraint.Constraint.String] produces. opts are applied
// before anything the expression sets, so they serve as defaults.
func ParseExpression(src string, scope Scope, opts ...constraint.Option) (*constraint.Constraint, error) {
	p := &exprParser{src: src, scope: scope}
	c, err := p.parse(opts)
	if err != nil {
		if pe, ok := err.(*vfl.ParseError); ok {
			return nil, errors.Wrap(errors.ErrCodeParse, pe, "parse constraint %q", src)
		}
		return nil, fmt.Errorf("constraint %q: %w", src, err)
	}
	return c, nil
}

type exprParser struct {
	src   string
	pos   int
	scope Scope
}

func (p *exprParser) fail(offset int, reason string, args ...any) *vfl.ParseError {
	return &vfl.ParseError{Format: p.src, Offset: offset, Reason: fmt.Sprintf(reason, args...)}
}

func (p *exprParser) skip() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skip()
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

// operand is a parsed anchor reference or scalar.
type operand struct {
	offset int
	anchor layout.Anchor
	value  float64
}

func (o operand) isAnchor() bool { return !o.anchor.IsZero() }

func (p *exprParser) parse(opts []constraint.Option) (*constraint.Constraint, error) {
	first, err := p.operand()
	if err != nil {
		return nil, err
	}
	if !first.isAnchor() {
		return nil, p.fail(first.offset, "the left-hand side must be an anchor")
	}

	at := p.pos
	p.skip()
	rel, ok := p.relation()
	if !ok {
		return nil, p.fail(at, "expected ==, >= or <=")
	}

	var (
		second     layout.Anchor
		multiplier = 1.0
		constant   float64
	)
	lhs, err := p.operand()
	if err != nil {
		return nil, err
	}
	if p.peek() == '*' {
		p.pos++
		rhs, err := p.operand()
		if err != nil {
			return nil, err
		}
		switch {
		case lhs.isAnchor() && !rhs.isAnchor():
			second, multiplier = lhs.anchor, rhs.value
		case !lhs.isAnchor() && rhs.isAnchor():
			second, multiplier = rhs.anchor, lhs.value
		default:
			return nil, p.fail(lhs.offset, "a product needs exactly one anchor and one scalar")
		}
	} else if lhs.isAnchor() {
		second = lhs.anchor
	} else {
		constant = lhs.value
	}

	for c := p.peek(); c == '+' || c == '-'; c = p.peek() {
		p.pos++
		term, err := p.operand()
		if err != nil {
			return nil, err
		}
		if term.isAnchor() {
			return nil, p.fail(term.offset, "only one anchor may appear on the right-hand side")
		}
		if c == '-' {
			constant -= term.value
		} else {
			constant += term.value
		}
	}

	priority := layout.Required
	if p.peek() == '@' {
		p.pos++
		priority, err = p.priority()
		if err != nil {
			return nil, err
		}
	}

	var id string
	if p.peek() == '[' {
		p.pos++
		end := strings.IndexByte(p.src[p.pos:], ']')
		if end < 0 {
			return nil, p.fail(len(p.src), "unterminated identifier")
		}
		id = strings.TrimSpace(p.src[p.pos : p.pos+end])
		p.pos += end + 1
	}
	if p.peek() != 0 {
		return nil, p.fail(p.pos, "unexpected %q", p.src[p.pos:])
	}

	opts = append(opts, constraint.WithPriority(priority))
	if id != "" {
		opts = append(opts, constraint.WithIdentifier(id))
	}
	if second.IsZero() {
		return constraint.Constant(first.anchor, rel, constant, opts...)
	}
	opts = append(opts, constraint.Multiplier(multiplier), constraint.Offset(constant))
	return constraint.New(first.anchor, rel, second, opts...)
}

func (p *exprParser) relation() (constraint.Relation, bool) {
	for _, op := range []string{"==", ">=", "<=", "="} {
		if strings.HasPrefix(p.src[p.pos:], op) {
			p.pos += len(op)
			return constraint.ParseRelation(op)
		}
	}
	return constraint.Equal, false
}

// operand parses an anchor path, a metric name or a number.
func (p *exprParser) operand() (operand, error) {
	p.skip()
	o := operand{offset: p.pos}
	if p.pos < len(p.src) && isNameStart(p.src[p.pos]) {
		ref := p.path()
		if !strings.Contains(ref, ".") {
			v, ok := p.scope.Metrics[ref]
			if !ok {
				return o, p.fail(o.offset, "no metric named %q", ref)
			}
			o.value = v
			return o, nil
		}
		a, err := p.scope.Anchor(ref)
		if err != nil {
			return o, p.fail(o.offset, "%v", err)
		}
		o.anchor = a
		return o, nil
	}
	v, err := p.number()
	if err != nil {
		return o, err
	}
	o.value = v
	return o, nil
}

func (p *exprParser) path() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if !isNameStart(c) && !isDigit(c) && c != '.' && c != '-' {
			break
		}
		// A '-' followed by a space or digit is subtraction, not part of a name.
		if c == '-' && (p.pos+1 >= len(p.src) || !isNameStart(p.src[p.pos+1])) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *exprParser) number() (float64, error) {
	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 0, p.fail(start, "expected an anchor, a number or a metric name")
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, p.fail(start, "malformed number %q", p.src[start:p.pos])
	}
	return v, nil
}

func (p *exprParser) priority() (layout.Priority, error) {
	p.skip()
	at := p.pos
	if p.pos < len(p.src) && isNameStart(p.src[p.pos]) {
		name := p.path()
		if prio, ok := priorityNames[name]; ok {
			return prio, nil
		}
		return 0, p.fail(at, "unknown priority %q", name)
	}
	v, err := p.number()
	if err != nil {
		return 0, err
	}
	if !layout.Priority(v).Valid() {
		return 0, p.fail(at, "priority %v out of range [1, 1000]", v)
	}
	return layout.Priority(v), nil
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

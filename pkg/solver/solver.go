// Package solver computes frames from constraints.
//
// Every free item gets four unknowns (see package resolve). Constraints and
// each element's implicit content-size constraints become linear rows, and
// the rows are solved tier by tier:
//
//  1. Required rows must hold. When they cannot, the solver isolates a
//     minimal conflicting set with a deletion filter, reports it as an
//     [Unsatisfiable] diagnostic, drops its most recently activated member
//     and tries again.
//  2. Optional rows are grouped by priority. Each tier, highest first,
//     minimises the total violation of its rows; the optimum is then frozen
//     so lower tiers cannot trade it away.
//  3. A final tier pulls every unknown towards a default (the owner's
//     origin for positions, intrinsic or zero sizes) so under-determined layouts are still
//     deterministic.
//
// Each tier is a linear program solved with a dense two-phase simplex.
package solver

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/observability"
	"github.com/matzehuels/autolayout/pkg/resolve"
)

const (
	// violationTolerance is how far a row may miss before it counts as
	// unsatisfied.
	violationTolerance = 1e-6

	// framePrecision is the grid solved coordinates are rounded to.
	framePrecision = 1e6

	// freezeTolerance is how far a frozen tier's total violation may
	// grow while lower tiers are optimised. It is well below framePrecision.
	freezeTolerance = 1e-9
)

// Solver solves layout trees. It holds configuration only and may be reused.
type Solver struct {
	ambiguity bool
	maxPivots int
}

// Option configures a Solver.
type Option func(*Solver)

// WithAmbiguityCheck enables ambiguity analysis: after all priority tiers,
// every unknown is minimised and maximised and any that can still move
// yields an [Ambiguous] diagnostic. This costs two extra programs per unknown.
func WithAmbiguityCheck() Option {
	return func(s *Solver) { s.ambiguity = true }
}

// WithMaxPivots bounds the simplex pivots of each linear program.
func WithMaxPivots(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.maxPivots = n
		}
	}
}

// New returns a solver.
func New(opts ...Option) *Solver {
	s := &Solver{maxPivots: DefaultMaxPivots}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// row is a translated constraint: expr REL 0 at a priority.
type row struct {
	c     *constraint.Constraint // nil for implicit content-size rows
	label string
	seq   int
	expr  resolve.Expr
	rel   constraint.Relation
	prio  layout.Priority
}

// Solve lays out tree under env with the given constraints, which are
// expected in activation order.
//
// Conflicts, ambiguity and unresolved anchors are reported as diagnostics on
// the result. An error is returned only for invalid input, cancellation or
// an internal failure of the simplex.
func (s *Solver) Solve(ctx context.Context, tree *layout.Tree, cs []*constraint.Constraint, env resolve.Environment) (*Result, error) {
	if tree == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "layout tree is nil")
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Solve().OnSolveStart(ctx, tree.Len(), len(cs))

	r := &run{ctx: ctx, solver: s, res: resolve.New(tree, env), result: &Result{}}
	err := r.solve(cs)

	r.result.Stats.Items = len(r.res.FreeItems())
	r.result.Stats.Variables = r.res.NumVars()
	r.result.Stats.Constraints = len(cs)
	r.result.Stats.Pivots = r.pivots
	r.result.Stats.Diagnostics = len(r.result.Diagnostics)
	observability.Solve().OnSolveComplete(ctx, r.result.Stats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return r.result, nil
}

// run carries the state of one Solve call.
type run struct {
	ctx    context.Context
	solver *Solver
	res    *resolve.Resolver
	result *Result
	prog   *program
	pivots int
}

func (r *run) minimize(p *program, obj []resolve.Term) (solution, error) {
	sol, err := p.minimize(obj, r.solver.maxPivots)
	r.pivots += sol.pivots
	return sol, err
}

func (r *run) solve(cs []*constraint.Constraint) error {
	rows := r.translate(cs)
	rows = append(rows, r.contentRows()...)

	r.prog = newProgram(r.res.NumVars())
	for _, e := range r.res.Background() {
		r.prog.add(rowFor(e, constraint.Equal))
	}

	var required, optional []row
	for _, rw := range rows {
		if rw.prio.IsRequired() {
			required = append(required, rw)
		} else {
			optional = append(optional, rw)
		}
	}

	required, err := r.satisfyRequired(required)
	if err != nil {
		return err
	}
	for _, rw := range required {
		r.prog.add(rowFor(rw.expr, rw.rel))
	}

	if err := r.optimizeTiers(optional); err != nil {
		return err
	}
	if r.solver.ambiguity {
		if err := r.checkAmbiguity(rows); err != nil {
			return err
		}
	}
	x, err := r.settleDefaults()
	if err != nil {
		return err
	}

	for _, rw := range optional {
		if rw.c != nil && violation(rw.expr.Eval(x), rw.rel) > violationTolerance {
			r.result.Unsatisfied = append(r.result.Unsatisfied, rw.c)
		}
	}
	r.collectFrames(x)
	return nil
}

// translate resolves constraints to rows, reporting unresolved anchors.
func (r *run) translate(cs []*constraint.Constraint) []row {
	out := make([]row, 0, len(cs))
	for i, c := range cs {
		lhs, ok := r.res.Anchor(c.First())
		if !ok {
			r.result.Diagnostics = append(r.result.Diagnostics, unresolved(c.Identifier(), c.First()))
			continue
		}
		rhs := resolve.Const(c.Constant())
		if c.HasSecond() {
			second, ok := r.res.Anchor(c.Second())
			if !ok {
				r.result.Diagnostics = append(r.result.Diagnostics, unresolved(c.Identifier(), c.Second()))
				continue
			}
			rhs = second.Scale(c.Multiplier()).AddConstant(c.Constant())
		}
		out = append(out, row{
			c:     c,
			label: c.Identifier(),
			seq:   i,
			expr:  lhs.Minus(rhs),
			rel:   c.Relation(),
			prio:  c.Priority(),
		})
	}
	return out
}

// contentRows returns the implicit hugging and compression-resistance rows
// of every element with an intrinsic size.
func (r *run) contentRows() []row {
	var out []row
	for _, it := range r.res.FreeItems() {
		e, ok := it.(*layout.Element)
		if !ok {
			continue
		}
		intrinsic := r.res.IntrinsicSize(e)
		for _, axis := range []layout.Axis{layout.Horizontal, layout.Vertical} {
			if !intrinsic.Has(axis) {
				continue
			}
			attr := layout.Width
			if axis == layout.Vertical {
				attr = layout.Height
			}
			size, _ := r.res.Anchor(e.Anchor(attr))
			expr := size.AddConstant(-intrinsic.Along(axis))
			out = append(out,
				row{label: e.ID() + ".hugging." + axis.String(), seq: -1, expr: expr, rel: constraint.LessOrEqual, prio: e.Hugging(axis)},
				row{label: e.ID() + ".compression." + axis.String(), seq: -1, expr: expr, rel: constraint.GreaterOrEqual, prio: e.CompressionResistance(axis)},
			)
		}
	}
	return out
}

func (r *run) feasible(rows []row) (bool, error) {
	extra := make([]lpRow, len(rows))
	for i, rw := range rows {
		extra[i] = rowFor(rw.expr, rw.rel)
	}
	sol, err := r.minimize(r.prog.with(extra...), nil)
	if err != nil {
		return false, err
	}
	return sol.status != infeasible, nil
}

// satisfyRequired drops conflicting required rows until the rest are
// jointly satisfiable, reporting each conflict.
func (r *run) satisfyRequired(rows []row) ([]row, error) {
	for {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := r.feasible(rows)
		if err != nil {
			return nil, err
		}
		if ok {
			return rows, nil
		}

		conflict, err := r.isolate(rows)
		if err != nil {
			return nil, err
		}
		drop := conflict[0]
		ids := make([]string, len(conflict))
		for i, rw := range conflict {
			ids[i] = rw.label
			if rw.seq > drop.seq {
				drop = rw
			}
		}
		r.result.Diagnostics = append(r.result.Diagnostics, unsatisfiable(ids, drop.label))
		if drop.c != nil {
			r.result.Dropped = append(r.result.Dropped, drop.c)
		}
		observability.Solve().OnConflict(r.ctx, ids, drop.label)

		rows = slices.DeleteFunc(rows, func(rw row) bool { return rw.label == drop.label && rw.seq == drop.seq })
	}
}

// isolate shrinks an infeasible set to an irreducible one: a row is removed
// for good whenever the set stays infeasible without it.
func (r *run) isolate(rows []row) ([]row, error) {
	set := slices.Clone(rows)
	for i := 0; i < len(set); {
		trial := slices.Delete(slices.Clone(set), i, i+1)
		ok, err := r.feasible(trial)
		if err != nil {
			return nil, err
		}
		if ok {
			i++
		} else {
			set = trial
		}
	}
	return set, nil
}

// soften adds e REL 0 to the program with error variables that absorb any
// violation, and returns the terms measuring it.
func (r *run) soften(e resolve.Expr, rel constraint.Relation) []resolve.Term {
	var penalty []resolve.Term
	switch rel {
	case constraint.Equal:
		over, under := r.prog.addVar(), r.prog.addVar()
		e = e.Minus(resolve.Var(over)).Plus(resolve.Var(under))
		penalty = []resolve.Term{{Var: over, Coef: 1}, {Var: under, Coef: 1}}
	case constraint.LessOrEqual:
		over := r.prog.addVar()
		e = e.Minus(resolve.Var(over))
		penalty = []resolve.Term{{Var: over, Coef: 1}}
	case constraint.GreaterOrEqual:
		under := r.prog.addVar()
		e = e.Plus(resolve.Var(under))
		penalty = []resolve.Term{{Var: under, Coef: 1}}
	}
	r.prog.add(rowFor(e, rel))
	return penalty
}

// optimizeTiers minimises the violation of each optional priority tier in
// descending order, freezing every optimum before moving on.
func (r *run) optimizeTiers(rows []row) error {
	byPriority := make(map[layout.Priority][]row)
	var prios []layout.Priority
	for _, rw := range rows {
		if _, ok := byPriority[rw.prio]; !ok {
			prios = append(prios, rw.prio)
		}
		byPriority[rw.prio] = append(byPriority[rw.prio], rw)
	}
	slices.SortFunc(prios, func(a, b layout.Priority) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})

	for _, p := range prios {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		var obj []resolve.Term
		for _, rw := range byPriority[p] {
			obj = append(obj, r.soften(rw.expr, rw.rel)...)
		}
		if err := r.freeze(obj); err != nil {
			return err
		}
		r.result.Stats.Tiers++
	}
	return nil
}

// freeze minimises obj and constrains it to stay at its optimum. The
// frozen total may grow only by freezeTolerance, an absolute bound far
// below the frame grid, so no row a tier satisfies is loosened by a lower
// tier.
func (r *run) freeze(obj []resolve.Term) error {
	sol, err := r.minimize(r.prog, obj)
	if err != nil {
		return err
	}
	if sol.status != optimal {
		return errors.New(errors.ErrCodeInternal, "priority tier has no optimum")
	}
	r.prog.add(lpRow{terms: obj, rel: constraint.LessOrEqual, rhs: sol.value + freezeTolerance})
	return nil
}

// settleDefaults runs the final tier and returns the unknowns.
func (r *run) settleDefaults() ([]float64, error) {
	var obj []resolve.Term
	for v := range r.res.NumVars() {
		obj = append(obj, r.soften(resolve.Var(v).Minus(r.defaultValue(v)), constraint.Equal)...)
	}
	sol, err := r.minimize(r.prog, obj)
	if err != nil {
		return nil, err
	}
	if sol.status != optimal {
		return nil, errors.New(errors.ErrCodeInternal, "default tier has no optimum")
	}
	r.result.Stats.Tiers++
	return sol.x[:r.res.NumVars()], nil
}

// defaultValue is where the final tier pulls unknown v: the owner's origin
// for positions, the intrinsic size or zero for sizes.
func (r *run) defaultValue(v int) resolve.Expr {
	info := r.res.Var(v)
	if !info.Attr.IsSize() {
		if owner := info.Item.Owner(); owner != nil {
			if rect, ok := r.res.Rect(owner); ok {
				return rect.Anchor(info.Attr)
			}
		}
		return resolve.Const(0)
	}
	e, ok := info.Item.(*layout.Element)
	if !ok {
		return resolve.Const(0)
	}
	intrinsic := r.res.IntrinsicSize(e)
	if axis := info.Attr.Axis(); intrinsic.Has(axis) {
		return resolve.Const(intrinsic.Along(axis))
	}
	return resolve.Const(0)
}

// checkAmbiguity reports items with unknowns the frozen tiers leave free.
func (r *run) checkAmbiguity(rows []row) error {
	var order []layout.Item
	attrs := make(map[layout.Item][]layout.Attribute)
	for v := range r.res.NumVars() {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		lo, err := r.minimize(r.prog, []resolve.Term{{Var: v, Coef: 1}})
		if err != nil {
			return err
		}
		hi, err := r.minimize(r.prog, []resolve.Term{{Var: v, Coef: -1}})
		if err != nil {
			return err
		}
		if lo.status == optimal && hi.status == optimal && -hi.value-lo.value <= violationTolerance {
			continue
		}
		info := r.res.Var(v)
		if _, seen := attrs[info.Item]; !seen {
			order = append(order, info.Item)
		}
		attrs[info.Item] = append(attrs[info.Item], info.Attr)
	}

	for _, it := range order {
		base, _ := r.res.Base(it)
		var ids []string
		for _, rw := range rows {
			if rw.c == nil {
				continue
			}
			for _, t := range rw.expr.Terms {
				if t.Var >= base && t.Var < base+4 {
					ids = append(ids, rw.label)
					break
				}
			}
		}
		r.result.Diagnostics = append(r.result.Diagnostics, ambiguous(it.ID(), attrs[it], ids))
	}
	return nil
}

func (r *run) collectFrames(x []float64) {
	tree := r.res.Tree()
	res := r.result
	res.index = make(map[layout.Item]int)

	add := func(it layout.Item, guide bool) {
		f, _ := r.res.Frame(it, x)
		owner := ""
		if o := it.Owner(); o != nil {
			owner = o.ID()
		}
		res.index[it] = len(res.Frames)
		res.Frames = append(res.Frames, ItemFrame{Item: it, Owner: owner, Frame: roundFrame(f), Guide: guide})
	}

	for _, e := range tree.Elements() {
		add(e, false)
	}
	for _, g := range tree.Guides() {
		add(g, true)
	}
	for _, e := range tree.Elements() {
		if !e.HasContentGuide() {
			continue
		}
		cf, _ := res.Frame(e.ContentGuide())
		size := cf.Size()
		res.Frames[res.index[e]].ContentSize = &size
	}
}

func violation(v float64, rel constraint.Relation) float64 {
	switch rel {
	case constraint.LessOrEqual:
		return math.Max(0, v)
	case constraint.GreaterOrEqual:
		return math.Max(0, -v)
	}
	return math.Abs(v)
}

func roundFrame(f layout.Frame) layout.Frame {
	return layout.Frame{X: round(f.X), Y: round(f.Y), Width: round(f.Width), Height: round(f.Height)}
}

func round(v float64) float64 {
	v = math.Round(v*framePrecision) / framePrecision
	if v == 0 {
		return 0
	}
	return v
}

package solver

import (
	"math"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/resolve"
)

const (
	// epsilon is the pivot and reduced-cost tolerance.
	epsilon = 1e-9

	// feasibilityTolerance is the phase-one residual, relative to the largest
	// right-hand side, below which a program counts as feasible.
	feasibilityTolerance = 1e-7

	// DefaultMaxPivots bounds the pivots of a single linear program.
	DefaultMaxPivots = 200000
)

type lpStatus uint8

const (
	optimal lpStatus = iota
	infeasible
	unbounded
)

// lpRow is the linear inequality terms REL rhs.
type lpRow struct {
	terms []resolve.Term
	rel   constraint.Relation
	rhs   float64
}

// rowFor returns the row e REL 0.
func rowFor(e resolve.Expr, rel constraint.Relation) lpRow {
	return lpRow{terms: e.Terms, rel: rel, rhs: -e.Constant}
}

// program is a linear program over free and non-negative variables.
type program struct {
	free []bool
	rows []lpRow
}

func newProgram(freeVars int) *program {
	p := &program{free: make([]bool, freeVars)}
	for i := range p.free {
		p.free[i] = true
	}
	return p
}

// addVar adds a non-negative variable and returns its index.
func (p *program) addVar() int {
	p.free = append(p.free, false)
	return len(p.free) - 1
}

func (p *program) add(rows ...lpRow) { p.rows = append(p.rows, rows...) }

// with returns a program sharing p's variables with extra rows appended.
func (p *program) with(rows ...lpRow) *program {
	out := &program{free: p.free, rows: make([]lpRow, 0, len(p.rows)+len(rows))}
	out.rows = append(out.rows, p.rows...)
	out.rows = append(out.rows, rows...)
	return out
}

type solution struct {
	status lpStatus
	x      []float64
	value  float64
	pivots int
}

// minimize solves min obj·x over the program with the two-phase simplex
// method and Bland's rule. A nil objective only checks feasibility.
func (p *program) minimize(obj []resolve.Term, maxPivots int) (solution, error) {
	nv := len(p.free)
	pos := make([]int, nv)
	neg := make([]int, nv)
	n := 0
	for j := range nv {
		pos[j] = n
		n++
		neg[j] = -1
		if p.free[j] {
			neg[j] = n
			n++
		}
	}

	m := len(p.rows)
	signs := make([]float64, m)
	rels := make([]constraint.Relation, m)
	slacks, arts := 0, 0
	for i, r := range p.rows {
		signs[i], rels[i] = 1, r.rel
		if r.rhs < 0 {
			signs[i], rels[i] = -1, r.rel.Flip()
		}
		if rels[i] != constraint.Equal {
			slacks++
		}
		if rels[i] != constraint.LessOrEqual {
			arts++
		}
	}

	art0 := n + slacks
	t := newTableau(m, art0+arts, maxPivots)
	si, ai := n, art0
	scale := 1.0
	for i, r := range p.rows {
		row := t.a[i]
		s := signs[i]
		for _, term := range r.terms {
			row[pos[term.Var]] += s * term.Coef
			if neg[term.Var] >= 0 {
				row[neg[term.Var]] -= s * term.Coef
			}
		}
		row[t.n] = s * r.rhs
		scale = math.Max(scale, math.Abs(r.rhs))
		switch rels[i] {
		case constraint.LessOrEqual:
			row[si] = 1
			t.basis[i] = si
			si++
		case constraint.GreaterOrEqual:
			row[si] = -1
			si++
			row[ai] = 1
			t.basis[i] = ai
			ai++
		default:
			row[ai] = 1
			t.basis[i] = ai
			ai++
		}
	}

	if arts > 0 {
		cost := make([]float64, t.n)
		for j := art0; j < t.n; j++ {
			cost[j] = 1
		}
		_, residual, err := t.optimize(cost, t.n)
		if err != nil {
			return solution{pivots: t.pivots}, err
		}
		if residual > feasibilityTolerance*scale {
			return solution{status: infeasible, pivots: t.pivots}, nil
		}
		t.driveOut(art0)
	}

	cost := make([]float64, t.n)
	for _, term := range obj {
		cost[pos[term.Var]] += term.Coef
		if neg[term.Var] >= 0 {
			cost[neg[term.Var]] -= term.Coef
		}
	}
	status, _, err := t.optimize(cost, art0)
	if err != nil {
		return solution{pivots: t.pivots}, err
	}
	if status == unbounded {
		return solution{status: unbounded, pivots: t.pivots}, nil
	}

	cols := make([]float64, t.n)
	for i, b := range t.basis {
		cols[b] = t.a[i][t.n]
	}
	x := make([]float64, nv)
	for j := range nv {
		x[j] = cols[pos[j]]
		if neg[j] >= 0 {
			x[j] -= cols[neg[j]]
		}
	}
	value := 0.0
	for _, term := range obj {
		value += term.Coef * x[term.Var]
	}
	return solution{status: optimal, x: x, value: value, pivots: t.pivots}, nil
}

// tableau is a dense simplex tableau in canonical form. Column n of every
// row holds the right-hand side.
type tableau struct {
	a         [][]float64
	basis     []int
	n         int
	pivots    int
	maxPivots int
}

func newTableau(m, n, maxPivots int) *tableau {
	t := &tableau{
		a:         make([][]float64, m),
		basis:     make([]int, m),
		n:         n,
		maxPivots: maxPivots,
	}
	for i := range t.a {
		t.a[i] = make([]float64, n+1)
	}
	return t
}

// optimize minimises cost over the current basis, letting only columns
// below limit enter. It returns the status and the objective value.
func (t *tableau) optimize(cost []float64, limit int) (lpStatus, float64, error) {
	z := make([]float64, t.n+1)
	copy(z, cost)
	for i, b := range t.basis {
		if cb := cost[b]; cb != 0 {
			row := t.a[i]
			for j := range z {
				z[j] -= cb * row[j]
			}
		}
	}

	for {
		enter := -1
		for j := 0; j < limit; j++ {
			if z[j] < -epsilon {
				enter = j
				break
			}
		}
		if enter < 0 {
			return optimal, -z[t.n], nil
		}

		leave := -1
		best := math.Inf(1)
		for i, row := range t.a {
			if row[enter] <= epsilon {
				continue
			}
			ratio := row[t.n] / row[enter]
			if leave < 0 || ratio < best-epsilon || (ratio <= best+epsilon && t.basis[i] < t.basis[leave]) {
				leave, best = i, ratio
			}
		}
		if leave < 0 {
			return unbounded, math.Inf(-1), nil
		}

		if t.pivots >= t.maxPivots {
			return optimal, 0, errors.New(errors.ErrCodeInternal,
				"simplex exceeded %d pivots", t.maxPivots)
		}
		t.pivot(leave, enter)
		if f := z[enter]; f != 0 {
			pr := t.a[leave]
			for j := range z {
				z[j] -= f * pr[j]
			}
		}
	}
}

// driveOut pivots zero-valued artificial columns (index >= art0) out of the
// basis after phase one. Rows with no other non-zero entry are redundant and
// keep their artificial at zero.
func (t *tableau) driveOut(art0 int) {
	for i, b := range t.basis {
		if b < art0 {
			continue
		}
		for j := 0; j < art0; j++ {
			if math.Abs(t.a[i][j]) > epsilon {
				t.a[i][t.n] = 0
				t.pivot(i, j)
				break
			}
		}
	}
}

func (t *tableau) pivot(r, c int) {
	t.pivots++
	pr := t.a[r]
	inv := 1 / pr[c]
	for j := range pr {
		pr[j] *= inv
	}
	pr[c] = 1
	for i, row := range t.a {
		if i == r {
			continue
		}
		f := row[c]
		if f == 0 {
			continue
		}
		for j := range row {
			row[j] -= f * pr[j]
		}
		row[c] = 0
		if row[t.n] < 0 && row[t.n] > -epsilon {
			row[t.n] = 0
		}
	}
	t.basis[r] = c
}

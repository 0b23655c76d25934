package resolve

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/autolayout/pkg/layout"
)

// Term is a coefficient applied to one unknown.
type Term struct {
	Var  int
	Coef float64
}

// Expr is a linear expression: the sum of its terms plus a constant.
// Terms are kept sorted by variable with no zero coefficients.
type Expr struct {
	Terms    []Term
	Constant float64
}

// Const returns the constant expression c.
func Const(c float64) Expr { return Expr{Constant: c} }

// Var returns the expression consisting of unknown v alone.
func Var(v int) Expr { return Expr{Terms: []Term{{Var: v, Coef: 1}}} }

// IsConstant reports whether the expression has no unknowns.
func (e Expr) IsConstant() bool { return len(e.Terms) == 0 }

// Plus returns e + o.
func (e Expr) Plus(o Expr) Expr {
	out := Expr{Constant: e.Constant + o.Constant}
	i, j := 0, 0
	for i < len(e.Terms) || j < len(o.Terms) {
		switch {
		case j == len(o.Terms) || (i < len(e.Terms) && e.Terms[i].Var < o.Terms[j].Var):
			out.Terms = append(out.Terms, e.Terms[i])
			i++
		case i == len(e.Terms) || o.Terms[j].Var < e.Terms[i].Var:
			out.Terms = append(out.Terms, o.Terms[j])
			j++
		default:
			if c := e.Terms[i].Coef + o.Terms[j].Coef; c != 0 {
				out.Terms = append(out.Terms, Term{Var: e.Terms[i].Var, Coef: c})
			}
			i++
			j++
		}
	}
	return out
}

// Minus returns e - o.
func (e Expr) Minus(o Expr) Expr { return e.Plus(o.Scale(-1)) }

// Scale returns k * e.
func (e Expr) Scale(k float64) Expr {
	if k == 0 {
		return Expr{}
	}
	out := Expr{Constant: e.Constant * k, Terms: make([]Term, len(e.Terms))}
	for i, t := range e.Terms {
		out.Terms[i] = Term{Var: t.Var, Coef: t.Coef * k}
	}
	return out
}

// AddConstant returns e + c.
func (e Expr) AddConstant(c float64) Expr {
	e.Terms = slices.Clone(e.Terms)
	e.Constant += c
	return e
}

// Eval evaluates the expression for the given unknown values.
func (e Expr) Eval(values []float64) float64 {
	v := e.Constant
	for _, t := range e.Terms {
		v += t.Coef * values[t.Var]
	}
	return v
}

// Vars returns the unknowns the expression depends on.
func (e Expr) Vars() []int {
	out := make([]int, len(e.Terms))
	for i, t := range e.Terms {
		out[i] = t.Var
	}
	return out
}

// String formats the expression as "1*v0 + 0.5*v2 + 10".
func (e Expr) String() string {
	var b strings.Builder
	for i, t := range e.Terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%g*v%d", t.Coef, t.Var)
	}
	if e.Constant != 0 || len(e.Terms) == 0 {
		if len(e.Terms) > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%g", e.Constant)
	}
	return b.String()
}

// Rect is a rectangle whose origin and size are linear expressions.
type Rect struct {
	X, Y, W, H Expr
}

// ConstRect returns a rectangle fixed to f.
func ConstRect(f layout.Frame) Rect {
	return Rect{X: Const(f.X), Y: Const(f.Y), W: Const(f.Width), H: Const(f.Height)}
}

// VarRect returns the rectangle of the four unknowns starting at base.
func VarRect(base int) Rect {
	return Rect{X: Var(base), Y: Var(base + 1), W: Var(base + 2), H: Var(base + 3)}
}

// Anchor returns the expression for attr.
func (r Rect) Anchor(attr layout.Attribute) Expr {
	switch attr {
	case layout.Leading:
		return r.X
	case layout.Trailing:
		return r.X.Plus(r.W)
	case layout.CenterX:
		return r.X.Plus(r.W.Scale(0.5))
	case layout.Width:
		return r.W
	case layout.Top:
		return r.Y
	case layout.Bottom:
		return r.Y.Plus(r.H)
	case layout.CenterY:
		return r.Y.Plus(r.H.Scale(0.5))
	case layout.Height:
		return r.H
	}
	return Expr{}
}

// Inset returns the rectangle shrunk by in.
func (r Rect) Inset(in layout.Insets) Rect {
	return Rect{
		X: r.X.AddConstant(in.Leading),
		Y: r.Y.AddConstant(in.Top),
		W: r.W.AddConstant(-in.Leading - in.Trailing),
		H: r.H.AddConstant(-in.Top - in.Bottom),
	}
}

// Eval returns the concrete frame for the given unknown values.
func (r Rect) Eval(values []float64) layout.Frame {
	return layout.Frame{
		X:      r.X.Eval(values),
		Y:      r.Y.Eval(values),
		Width:  r.W.Eval(values),
		Height: r.H.Eval(values),
	}
}

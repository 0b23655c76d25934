// Package engine drives layout for a host: it owns the element tree, the
// active constraint set and the current environment, and re-solves only when
// one of them changed.
//
// Environment events (a resize, a rotation, the keyboard appearing) go
// through [Engine.SetEnvironment], which re-evaluates adaptive variant rules
// and keyboard-conditional constraint sets before the next [Engine.Layout].
//
// An Engine is not safe for concurrent use.
package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autolayout/pkg/constraint"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/observability"
	"github.com/matzehuels/autolayout/pkg/resolve"
	"github.com/matzehuels/autolayout/pkg/solver"
	"github.com/matzehuels/autolayout/pkg/stack"
	"github.com/matzehuels/autolayout/pkg/store"
)

// Rule picks a variant for the environment. An empty name deselects every
// variant.
type Rule func(env resolve.Environment) string

type adaptive struct {
	sw   *store.Switch
	rule Rule
}

type keyboardSet struct {
	cs   []*constraint.Constraint
	cond resolve.KeyboardCondition
}

// Engine coordinates the tree, store, environment and solver.
type Engine struct {
	tree   *layout.Tree
	store  *store.Store
	solver *solver.Solver
	env    resolve.Environment
	logger *log.Logger

	stacks   []*stack.Stack
	adaptive []adaptive
	keyboard []keyboardSet

	last        *solver.Result
	solved      uint64 // tree version of last
	stale       bool   // environment changed since last
	synced      uint64 // tree version after the last stack sync
	stacksStale bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSolver replaces the default solver.
func WithSolver(s *solver.Solver) Option {
	return func(e *Engine) { e.solver = s }
}

// WithStore uses an existing store instead of a new one.
func WithStore(s *store.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithEnvironment sets the initial environment.
func WithEnvironment(env resolve.Environment) Option {
	return func(e *Engine) { e.env = env }
}

// New returns an engine laying out tree.
func New(tree *layout.Tree, opts ...Option) *Engine {
	e := &Engine{tree: tree}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = store.New()
	}
	if e.solver == nil {
		e.solver = solver.New()
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// Tree returns the element tree.
func (e *Engine) Tree() *layout.Tree { return e.tree }

// Store returns the constraint store.
func (e *Engine) Store() *store.Store { return e.store }

// Environment returns the current environment.
func (e *Engine) Environment() resolve.Environment { return e.env }

// Stacks returns the registered stacks.
func (e *Engine) Stacks() []*stack.Stack { return e.stacks }

// Activate adds constraints to the active set.
func (e *Engine) Activate(cs ...*constraint.Constraint) int { return e.store.Activate(cs...) }

// Deactivate removes constraints from the active set.
func (e *Engine) Deactivate(cs ...*constraint.Constraint) int { return e.store.Deactivate(cs...) }

// AddStack registers a stack whose constraints are regenerated whenever the
// tree changes.
func (e *Engine) AddStack(s *stack.Stack) {
	e.stacks = append(e.stacks, s)
	e.stacksStale = true
}

// InvalidateStacks forces stacks to regenerate their constraints on the next
// layout, after their configuration was edited.
func (e *Engine) InvalidateStacks() { e.stacksStale = true }

// Adapt lets rule choose the switch's variant now and after every
// environment change.
func (e *Engine) Adapt(sw *store.Switch, rule Rule) error {
	if sw == nil || rule == nil {
		return errors.New(errors.ErrCodeInvalidInput, "adapt needs a switch and a rule")
	}
	a := adaptive{sw: sw, rule: rule}
	e.adaptive = append(e.adaptive, a)
	return e.adapt(a)
}

// SetKeyboardConstraints keeps cs active exactly while cond holds for the
// keyboard's position.
func (e *Engine) SetKeyboardConstraints(cs []*constraint.Constraint, cond resolve.KeyboardCondition) {
	k := keyboardSet{cs: cs, cond: cond}
	e.keyboard = append(e.keyboard, k)
	e.applyKeyboard(k, e.env.KeyboardNearEdges())
}

// SetEnvironment records an environment change, fires environment hooks and
// re-evaluates adaptive rules and keyboard conditions. The next Layout
// re-solves.
func (e *Engine) SetEnvironment(ctx context.Context, env resolve.Environment) error {
	if err := env.Validate(); err != nil {
		return err
	}
	old := e.env
	e.env = env
	e.stale = true

	if old.Size != env.Size {
		observability.Environment().OnResize(ctx, env.Size.Width, env.Size.Height)
		e.logger.Debug("environment resized", "width", env.Size.Width, "height", env.Size.Height)
	}
	if old.Keyboard != env.Keyboard {
		near := env.KeyboardNearEdges()
		observability.Environment().OnKeyboard(ctx, env.Keyboard.Visible, near.String())
		e.logger.Debug("keyboard changed", "visible", env.Keyboard.Visible, "near", near)
	}

	for _, a := range e.adaptive {
		if err := e.adapt(a); err != nil {
			return err
		}
	}
	near := env.KeyboardNearEdges()
	for _, k := range e.keyboard {
		e.applyKeyboard(k, near)
	}
	return nil
}

// Rotate swaps the environment's width and height.
func (e *Engine) Rotate(ctx context.Context) error {
	return e.SetEnvironment(ctx, e.env.Rotated())
}

func (e *Engine) adapt(a adaptive) error {
	variant := a.rule(e.env)
	if variant == a.sw.Selected() {
		return nil
	}
	if variant == "" {
		a.sw.Clear()
		return nil
	}
	return a.sw.Select(variant)
}

func (e *Engine) applyKeyboard(k keyboardSet, near resolve.Edge) {
	if k.cond.Holds(near) {
		e.store.Activate(k.cs...)
	} else {
		e.store.Deactivate(k.cs...)
	}
}

// Layout returns frames for the current state, solving only when the active
// set, the tree or the environment changed since the last call.
func (e *Engine) Layout(ctx context.Context) (*solver.Result, error) {
	if err := e.syncStacks(); err != nil {
		return nil, err
	}
	if e.last != nil && !e.stale && !e.store.Dirty() && e.solved == e.tree.Version() {
		return e.last, nil
	}

	start := time.Now()
	res, err := e.solver.Solve(ctx, e.tree, e.store.Active(), e.env)
	if err != nil {
		return nil, err
	}
	e.store.MarkClean()
	e.solved = e.tree.Version()
	e.stale = false
	e.last = res

	e.logger.Debug("layout solved",
		"items", res.Stats.Items,
		"constraints", res.Stats.Constraints,
		"pivots", res.Stats.Pivots,
		"duration", time.Since(start).Round(time.Microsecond))
	e.report(res)
	return res, nil
}

// Result returns the most recent layout, or nil before the first one.
func (e *Engine) Result() *solver.Result { return e.last }

func (e *Engine) syncStacks() error {
	if !e.stacksStale && e.synced == e.tree.Version() {
		return nil
	}
	for _, s := range e.stacks {
		if err := s.Sync(e.tree, e.store); err != nil {
			return err
		}
	}
	e.synced = e.tree.Version()
	e.stacksStale = false
	return nil
}

func (e *Engine) report(res *solver.Result) {
	for _, d := range res.Diagnostics {
		switch d.Kind {
		case solver.Unsatisfiable:
			e.logger.Warn("unable to simultaneously satisfy constraints",
				"constraints", d.Constraints, "dropped", d.Dropped)
		case solver.Unresolved:
			e.logger.Warn("unresolved anchor", "constraints", d.Constraints, "reason", d.Message)
		case solver.Ambiguous:
			e.logger.Info("ambiguous layout", "item", d.Item, "attributes", d.Attributes)
		}
	}
	if len(res.Unsatisfied) > 0 {
		ids := make([]string, len(res.Unsatisfied))
		for i, c := range res.Unsatisfied {
			ids[i] = c.Identifier()
		}
		e.logger.Debug("optional constraints not satisfied", "constraints", ids)
	}
}

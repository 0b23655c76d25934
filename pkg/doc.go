// Package pkg provides the libraries behind autolayout, a declarative
// constraint layout engine.
//
// # Overview
//
// A layout is a tree of rectangular elements whose frames are not assigned
// directly. Instead, linear relations between their edges, centers and sizes
// are declared with priorities, and a solver finds frames that satisfy every
// required relation and as many optional ones as possible. The pkg directory
// is organised bottom-up:
//
//  1. [layout] - elements, guides, anchors, priorities and the ownership tree
//  2. [constraint] - immutable linear relations between anchors
//  3. [store] - the set of active constraints and mutually exclusive switches
//  4. [resolve] - anchors to linear expressions against an [resolve.Environment]
//  5. [solver] - tiered simplex optimisation with conflict and ambiguity diagnostics
//  6. [vfl] - the visual format language ("H:|-[a]-[b]-|")
//  7. [stack] - linear stack containers expanded into constraints
//  8. [engine] - caching, adaptive variants and keyboard-dependent constraints
//  9. [scenario] - TOML, YAML and JSON scenario documents
//  10. [render] - SVG wireframes, JSON frame dumps and Graphviz constraint graphs
//
// # Data Flow
//
//	scenario file
//	     ↓
//	[scenario] decode + build
//	     ↓
//	[layout.Tree] + [constraint.Constraint] in a [store.Store]
//	     ↓
//	[engine.Engine.Layout] → [solver.Solver.Solve]
//	     ↓
//	[solver.Result] frames + diagnostics
//	     ↓
//	[render/sink] SVG / JSON, [render/nodelink] DOT / SVG
//
// # Quick Start
//
//	root := layout.NewElement("root")
//	tree := layout.NewTree(root)
//	title := layout.NewElement("title", layout.WithIntrinsicSize(120, 24))
//	_ = tree.Add(root, title)
//
//	e := engine.New(tree, engine.WithEnvironment(resolve.Environment{
//	    Size: layout.Size{Width: 390, Height: 844},
//	}))
//	e.Activate(
//	    constraint.Must(constraint.EqualTo(title.CenterX(), root.CenterX())),
//	    constraint.Must(constraint.EqualTo(title.Top(), root.SafeAreaGuide().Top(), constraint.Offset(16))),
//	)
//	res, err := e.Layout(ctx)
//
// # Supporting Packages
//
// [errors] - coded errors shared by every package (INVALID_INPUT,
// UNSATISFIABLE, PARSE_ERROR, ...).
//
// [observability] - optional hooks for solve, store and environment events.
//
// [cache] - file cache for rendered artifacts, used by the CLI.
//
// [buildinfo] - version information stamped in at link time.
//
// # Testing
//
//	go test ./pkg/...                  # All tests
//	go test ./pkg/solver/...           # Specific package
//	go test -short ./pkg/render/...    # Skip Graphviz rendering
package pkg

// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about solving, constraint activation and environment
// changes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks take plain values rather than layout types so this package stays a
// leaf that every other package may import.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSolveHooks(&mySolveHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solve().OnSolveStart(ctx, items, constraints)
//	// ... solve ...
//	observability.Solve().OnSolveComplete(ctx, stats, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solve Hooks
// =============================================================================

// SolveStats summarises one solver run.
type SolveStats struct {
	Items       int // Items with unknowns
	Variables   int // Unknowns
	Constraints int // Constraints considered
	Tiers       int // Priority tiers optimised
	Pivots      int // Simplex pivots across all phases
	Diagnostics int // Diagnostics reported
}

// SolveHooks receives events from the solver.
type SolveHooks interface {
	// OnSolveStart records the start of a solve.
	OnSolveStart(ctx context.Context, items, constraints int)

	// OnSolveComplete records the end of a solve.
	OnSolveComplete(ctx context.Context, stats SolveStats, duration time.Duration, err error)

	// OnConflict records a set of mutually unsatisfiable required
	// constraints and the one that was dropped to resolve it.
	OnConflict(ctx context.Context, identifiers []string, dropped string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from constraint stores. Activation has no
// context, so these hooks take none.
type StoreHooks interface {
	// OnActivate records constraints that became active.
	OnActivate(identifiers []string, active int)

	// OnDeactivate records constraints that became inactive.
	OnDeactivate(identifiers []string, active int)

	// OnVariantSelected records a switch choosing a variant.
	OnVariantSelected(name, variant string)
}

// =============================================================================
// Environment Hooks
// =============================================================================

// EnvironmentHooks receives events when the host environment changes.
type EnvironmentHooks interface {
	// OnResize records a new container size.
	OnResize(ctx context.Context, width, height float64)

	// OnKeyboard records keyboard visibility and the edges it is near.
	OnKeyboard(ctx context.Context, visible bool, edges string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolveHooks is a no-op implementation of SolveHooks.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnSolveStart(context.Context, int, int)                            {}
func (NoopSolveHooks) OnSolveComplete(context.Context, SolveStats, time.Duration, error) {}
func (NoopSolveHooks) OnConflict(context.Context, []string, string)                      {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnActivate([]string, int)         {}
func (NoopStoreHooks) OnDeactivate([]string, int)       {}
func (NoopStoreHooks) OnVariantSelected(string, string) {}

// NoopEnvironmentHooks is a no-op implementation of EnvironmentHooks.
type NoopEnvironmentHooks struct{}

func (NoopEnvironmentHooks) OnResize(context.Context, float64, float64) {}
func (NoopEnvironmentHooks) OnKeyboard(context.Context, bool, string)   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solveHooks       SolveHooks       = NoopSolveHooks{}
	storeHooks       StoreHooks       = NoopStoreHooks{}
	environmentHooks EnvironmentHooks = NoopEnvironmentHooks{}
	hooksMu          sync.RWMutex
)

// SetSolveHooks registers custom solve hooks.
// This should be called once at application startup before any layout pass.
func SetSolveHooks(h SolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solveHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetEnvironmentHooks registers custom environment hooks.
func SetEnvironmentHooks(h EnvironmentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		environmentHooks = h
	}
}

// Solve returns the registered solve hooks.
func Solve() SolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solveHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Environment returns the registered environment hooks.
func Environment() EnvironmentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return environmentHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solveHooks = NoopSolveHooks{}
	storeHooks = NoopStoreHooks{}
	environmentHooks = NoopEnvironmentHooks{}
}

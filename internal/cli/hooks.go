package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autolayout/pkg/observability"
)

// logHooks forwards observability events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func installHooks(l *log.Logger) {
	h := &logHooks{logger: l.WithPrefix("hooks")}
	observability.SetSolveHooks(h)
	observability.SetStoreHooks(h)
	observability.SetEnvironmentHooks(h)
}

func (h *logHooks) OnSolveStart(_ context.Context, items, constraints int) {
	h.logger.Debug("solve start", "items", items, "constraints", constraints)
}

func (h *logHooks) OnSolveComplete(_ context.Context, stats observability.SolveStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("solve failed", "err", err, "elapsed", d)
		return
	}
	h.logger.Debug("solve complete",
		"variables", stats.Variables,
		"tiers", stats.Tiers,
		"pivots", stats.Pivots,
		"diagnostics", stats.Diagnostics,
		"elapsed", d.Round(time.Microsecond))
}

func (h *logHooks) OnConflict(_ context.Context, ids []string, dropped string) {
	h.logger.Debug("conflict", "constraints", ids, "dropped", dropped)
}

func (h *logHooks) OnActivate(ids []string, active int) {
	h.logger.Debug("activated", "count", len(ids), "active", active)
}

func (h *logHooks) OnDeactivate(ids []string, active int) {
	h.logger.Debug("deactivated", "count", len(ids), "active", active)
}

func (h *logHooks) OnVariantSelected(name, variant string) {
	h.logger.Debug("variant selected", "switch", name, "variant", variant)
}

func (h *logHooks) OnResize(_ context.Context, w, hgt float64) {
	h.logger.Debug("resize", "width", w, "height", hgt)
}

func (h *logHooks) OnKeyboard(_ context.Context, visible bool, edges string) {
	h.logger.Debug("keyboard", "visible", visible, "near", edges)
}

var (
	_ observability.SolveHooks       = (*logHooks)(nil)
	_ observability.StoreHooks       = (*logHooks)(nil)
	_ observability.EnvironmentHooks = (*logHooks)(nil)
)

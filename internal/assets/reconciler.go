// Package assets handles best-effort cleanup of image files that no live
// record references anymore.
package assets

import (
	"log/slog"
	"os"

	"postpilot/internal/observability"
)

// Reconciler deletes orphaned asset files. Cleanup runs strictly after the
// owning metadata mutation is durable, so a failed deletion can only leave a
// stray file behind, never an inconsistent record. Failures are therefore
// logged and swallowed, never propagated.
type Reconciler struct {
	logger *slog.Logger
}

// NewReconciler returns a Reconciler that logs failures through logger.
func NewReconciler(logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{logger: logger}
}

// Delete removes the file at path. An empty path is a no-op. A missing or
// undeletable file is logged and counted, and the caller never hears about it.
func (r *Reconciler) Delete(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		observability.AssetCleanupFailures.Inc()
		r.logger.Warn("asset cleanup failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}

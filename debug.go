package playpen

import (
	"log/slog"
	"time"
)

// globalDebug enables per-stroke and per-check diagnostics. Single-threaded
// like the rest of the package.
var globalDebug bool

// SetDebugMode enables or disables debug diagnostics. When enabled, every
// stroke validation and coverage check is logged at debug level with
// timing, through the logger set by SetLogger.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug diagnostics are enabled.
func DebugMode() bool { return globalDebug }

// debugLogCoverage logs one coverage check.
func debugLogCoverage(regionID string, cov Coverage, elapsed time.Duration) {
	if !globalDebug {
		return
	}
	Logger().Debug("playpen: coverage check",
		slog.String("region", regionID),
		slog.Float64("painted", cov.Painted),
		slog.Float64("wrong", cov.Wrong),
		slog.Int("samples", cov.Samples),
		slog.Duration("elapsed", elapsed))
}

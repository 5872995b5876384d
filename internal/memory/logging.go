package memory

import (
	"fmt"
	"log/slog"
)

// warnf logs a recoverable guest/load-time condition. Per spec.md §7, ROM
// size mismatches and unsupported mapper sub-features are warnings, not
// errors.
func warnf(format string, args ...any) {
	slog.Warn("memory", "detail", fmt.Sprintf(format, args...))
}

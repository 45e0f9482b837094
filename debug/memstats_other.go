//go:build !linux

package debug

import (
	"context"
	"log/slog"
	"time"
)

// StartMemLogger is a no-op on platforms without getrusage support here.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {}

//go:build linux

package debug

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// StartMemLogger logs peak RSS next to Go heap stats every interval until
// ctx is done, to tell frame-pool growth apart from native (Tk) growth.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			var ru unix.Rusage
			var maxRSS uint64
			if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err == nil {
				maxRSS = uint64(ru.Maxrss) * 1024 // kilobytes on linux
			} else if !rssErrLogged {
				logger.Warn("memlog: getrusage failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logger.Info("memstats",
				slog.Int("goroutines", runtime.NumGoroutine()),
				slog.String("max_rss", humanize.IBytes(maxRSS)),
				slog.String("heap_alloc", humanize.IBytes(ms.HeapAlloc)),
				slog.String("heap_sys", humanize.IBytes(ms.HeapSys)),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			)
		}
	}()
}

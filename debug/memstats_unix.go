//go:build unix

package debug

import (
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

// StartMemLogger launches a goroutine that logs memory stats every interval.
// RSS is the peak resident set reported by getrusage.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		defer recoverLog(logger, "memstats")
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for range ticker.C {
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			rss, err := maxRSS()
			if err != nil && !rssErrLogged {
				logger.Warn("memlog: getrusage failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logger.Info("memstats", memFields(&ms, rss)...)
		}
	}()
}

func maxRSS() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	rss := uint64(ru.Maxrss)
	if runtime.GOOS != "darwin" {
		rss *= 1024 // kilobytes elsewhere
	}
	return rss, nil
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package simcore

import (
	"sync"
	"time"

	timecache "github.com/agilira/go-timecache"
)

// mjdEpochOffset converts a Unix timestamp (seconds since 1970-01-01) to
// Modified Julian Date (days since 1858-11-17 00:00 UTC).
const mjdEpochOffset = 2440587.5 - 2400000.5

var (
	clockOnce  sync.Once
	clockStart = time.Now() // process-start instant, monotonic-backed
	clockCache *timecache.TimeCache
)

func initClock() {
	clockCache = timecache.NewWithResolution(time.Millisecond)
}

// NowSeconds returns monotonic elapsed seconds since this package was
// initialized: a steady, high-resolution reading with process start as
// its epoch.
func NowSeconds() float64 {
	clockOnce.Do(initClock)
	return time.Since(clockStart).Seconds()
}

// NowMJD returns the current Modified Julian Date, read from a cached
// wall-clock snapshot (github.com/agilira/go-timecache) rather than
// syscalling on every call, the same tradeoff github.com/agilira/lethe
// makes for its log-entry timestamps. The cache refreshes on a
// millisecond tick, so NowMJD can lag the true wall clock by up to that
// resolution; that lag is accepted, not compensated for.
func NowMJD() float64 {
	clockOnce.Do(initClock)
	wall := clockCache.CachedTime()
	days := float64(wall.Unix()) / 86400.0
	fraction := float64(wall.Nanosecond()) / 86400e9
	return days + fraction + mjdEpochOffset
}

// StopClock releases the cached wall-clock reader, if the clock was
// ever used. It is safe to call at most once, typically during process
// shutdown; NowSeconds/NowMJD must not be called afterward.
func StopClock() {
	if clockCache != nil {
		clockCache.Stop()
	}
}

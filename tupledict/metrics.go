package tupledict

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting dictionary lifecycle
// metrics. Lookups are never reported.
type MetricsCollector interface {
	// RecordBuild is called after each construction or duplication attempt.
	// bytes is the block size; err is nil if successful.
	RecordBuild(fields, bytes int, duration time.Duration, err error)

	// RecordRelease is called when a dictionary's last reference is dropped.
	RecordRelease(bytes int)

	// RecordSwap is called after each Swap.
	RecordSwap()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRelease(int)                          {}
func (NoopMetricsCollector) RecordSwap()                                {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// It is safe for concurrent use.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	FieldsBuilt     atomic.Int64
	BytesAllocated  atomic.Int64
	ReleaseCount    atomic.Int64
	BytesReleased   atomic.Int64
	SwapCount       atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(fields, bytes int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.FieldsBuilt.Add(int64(fields))
	b.BytesAllocated.Add(int64(bytes))
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(bytes int) {
	b.ReleaseCount.Add(1)
	b.BytesReleased.Add(int64(bytes))
}

// RecordSwap implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSwap() {
	b.SwapCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		BuildCount:     b.BuildCount.Load(),
		BuildErrors:    b.BuildErrors.Load(),
		FieldsBuilt:    b.FieldsBuilt.Load(),
		BytesAllocated: b.BytesAllocated.Load(),
		ReleaseCount:   b.ReleaseCount.Load(),
		BytesReleased:  b.BytesReleased.Load(),
		SwapCount:      b.SwapCount.Load(),
	}
	if s.BuildCount > 0 {
		s.BuildAvgNanos = b.BuildTotalNanos.Load() / s.BuildCount
	}
	return s
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount     int64
	BuildErrors    int64
	BuildAvgNanos  int64
	FieldsBuilt    int64
	BytesAllocated int64
	ReleaseCount   int64
	BytesReleased  int64
	SwapCount      int64
}

// LiveBytes returns the bytes allocated by builds and not yet released.
func (s BasicMetricsStats) LiveBytes() int64 {
	return s.BytesAllocated - s.BytesReleased
}

package tupledict

import (
	"github.com/locker/tarantool/internal/grpalloc"
	"github.com/locker/tarantool/namehash"
	"github.com/locker/tarantool/resource"
)

type options struct {
	nameHash namehash.Func
	source   grpalloc.Source
	memory   *resource.Controller
	logger   *Logger
	metrics  MetricsCollector
}

// Option configures dictionary construction.
//
// A dictionary keeps its options: Dup builds the copy with the same ones,
// and Swap moves them along with the names.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		nameHash: namehash.Default,
		source:   grpalloc.Heap,
		logger:   NoopLogger(),
		metrics:  NoopMetricsCollector{},
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithNameHash sets the function names are hashed with.
// Callers must hash lookup names with the same function.
//
// If nil is passed, namehash.Default is used.
func WithNameHash(fn namehash.Func) Option {
	return func(o *options) {
		if fn == nil {
			fn = namehash.Default
		}
		o.nameHash = fn
	}
}

// WithOffHeap places the dictionary block in an anonymous memory mapping
// outside the Go heap. The mapping is unmapped when the dictionary is
// released, so a name string retained past the last Unref faults on use.
func WithOffHeap() Option {
	return func(o *options) {
		o.source = grpalloc.OffHeap
	}
}

// WithMemoryController charges every dictionary block against c.
//
// Construction fails with resource.ErrMemoryLimitExceeded when c has a hard
// limit that the block would exceed.
func WithMemoryController(c *resource.Controller) Option {
	return func(o *options) {
		o.memory = c
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &tupledict.BasicMetricsCollector{}
//	d, _ := tupledict.New(names, tupledict.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

package slotvec

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultCompactionFloor is the minimum number of free slots inside the used
	// range before an automatic compaction is considered.
	DefaultCompactionFloor = 10

	// DefaultCompactionRatio is the fragmentation ratio that must be exceeded
	// before an automatic compaction runs.
	DefaultCompactionRatio = 0.4

	// DefaultMaxCapacity bounds growth to what a signed 32-bit slot count can address.
	DefaultMaxCapacity = math.MaxInt32

	// DefaultMetricsName is the first key segment of every emitted metric.
	DefaultMetricsName = "slotvec"
)

type options struct {
	logger          hclog.Logger
	compactionFloor int
	compactionRatio float64
	maxCapacity     int
	metricsName     string
	autoCompact     bool
}

func defaultOptions() options {
	return options{
		logger:          hclog.NewNullLogger(),
		compactionFloor: DefaultCompactionFloor,
		compactionRatio: DefaultCompactionRatio,
		maxCapacity:     DefaultMaxCapacity,
		metricsName:     DefaultMetricsName,
		autoCompact:     true,
	}
}

// Option configures a Vector.
type Option func(*options)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = hclog.NewNullLogger()
		}
		o.logger = logger
	}
}

// WithCompactionFloor sets the absolute number of free slots below which
// automatic compaction never runs.
func WithCompactionFloor(n int) Option {
	return func(o *options) {
		o.compactionFloor = n
	}
}

// WithCompactionRatio sets the fragmentation ratio (free slots in the used
// range divided by the used range) that automatic compaction must exceed.
func WithCompactionRatio(r float64) Option {
	return func(o *options) {
		o.compactionRatio = r
	}
}

// WithMaxCapacity caps the number of slots the vector may grow to.
// Growth past the cap fails with ErrAllocation.
func WithMaxCapacity(n int) Option {
	return func(o *options) {
		o.maxCapacity = n
	}
}

// WithMetricsName sets the key prefix used for go-metrics emission.
func WithMetricsName(name string) Option {
	return func(o *options) {
		o.metricsName = name
	}
}

// WithAutoCompaction toggles the non-forced compaction run after DeleteMany.
func WithAutoCompaction(enabled bool) Option {
	return func(o *options) {
		o.autoCompact = enabled
	}
}

func (o *options) validate() error {
	var result *multierror.Error

	if o.compactionFloor < 0 {
		result = multierror.Append(result, fmt.Errorf("compaction floor must be non-negative, got %d", o.compactionFloor))
	}
	if math.IsNaN(o.compactionRatio) || o.compactionRatio < 0 || o.compactionRatio >= 1 {
		result = multierror.Append(result, fmt.Errorf("compaction ratio must be in [0, 1), got %v", o.compactionRatio))
	}
	if o.maxCapacity <= 0 {
		result = multierror.Append(result, fmt.Errorf("max capacity must be positive, got %d", o.maxCapacity))
	}
	if o.metricsName == "" {
		result = multierror.Append(result, fmt.Errorf("metrics name must not be empty"))
	}

	return result.ErrorOrNil()
}

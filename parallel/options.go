package parallel

import (
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"

	"github.com/exascience/paraccum/internal"
)

// DefaultThreshold is the minimum number of elements per worker below
// which a reduction runs sequentially.
const DefaultThreshold = 4

var defaultWorkers atomic.Pointer[func() int]

// SetDefaultWorkers replaces the process-wide source for the number of
// workers used when a call does not pass the Workers option. A nil source
// restores the default, runtime.GOMAXPROCS(0). Values below 1 reported by
// the source are treated as 1.
func SetDefaultWorkers(source func() int) {
	if source == nil {
		defaultWorkers.Store(nil)
		return
	}
	defaultWorkers.Store(&source)
}

// DefaultWorkers returns the number of workers currently reported by the
// process-wide worker source.
func DefaultWorkers() int {
	if source := defaultWorkers.Load(); source != nil {
		return internal.FloorWorkers((*source)())
	}
	return internal.HostWorkers()
}

// An Option configures a single reduction.
type Option func(*config)

// Workers sets the number of workers for a reduction, including the
// calling goroutine. It must be at least 1.
func Workers(n int) Option {
	return func(c *config) {
		c.workers = n
		c.explicitWorkers = true
	}
}

// Threshold sets the minimum number of elements per worker. Ranges with
// fewer than workers*n elements are reduced sequentially. It must be at
// least 1.
func Threshold(n int) Option {
	return func(c *config) {
		c.threshold = n
	}
}

type config struct {
	workers         int
	threshold       int
	explicitWorkers bool
}

func newConfig(opts []Option) (cfg config, err error) {
	cfg.threshold = DefaultThreshold
	for _, opt := range opts {
		opt(&cfg)
	}

	var merr error
	if !cfg.explicitWorkers {
		cfg.workers = DefaultWorkers()
	} else if cfg.workers < 1 {
		merr = multierror.Append(merr, fmt.Errorf("%w: %v", ErrInvalidWorkers, cfg.workers))
	}
	if cfg.threshold < 1 {
		merr = multierror.Append(merr, fmt.Errorf("%w: %v", ErrInvalidThreshold, cfg.threshold))
	}
	return cfg, merr
}

func (cfg config) split(n int) bool {
	return internal.ShouldSplit(n, cfg.workers, cfg.threshold)
}

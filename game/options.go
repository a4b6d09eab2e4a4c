package game

import (
	"log/slog"
	"math/rand/v2"

	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/event"
	"github.com/pitfigu/GuardianSurvivor/upgrade"
)

// Option configures a Session at construction
type Option func(*options)

type options struct {
	logger  *slog.Logger
	seed    uint64
	seeded  bool
	rng     *rand.Rand
	catalog *upgrade.Catalog
	sinks   []event.Sink
	results []func(engine.Result)
}

// WithLogger routes session logs; nil keeps slog.Default
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSeed makes the run reproducible
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithRand injects the random source directly, overriding WithSeed
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithCatalog replaces the stock upgrade set
func WithCatalog(c *upgrade.Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithSink subscribes an event consumer before the first tick
func WithSink(s event.Sink) Option {
	return func(o *options) {
		if s != nil {
			o.sinks = append(o.sinks, s)
		}
	}
}

// WithResultSink receives the run result exactly once at game over
func WithResultSink(fn func(engine.Result)) Option {
	return func(o *options) {
		if fn != nil {
			o.results = append(o.results, fn)
		}
	}
}

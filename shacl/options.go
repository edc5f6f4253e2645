package shacl

import (
	"fmt"
	"log/slog"
	"strings"
)

// RootMode selects how Parse finds the shapes to start from.
type RootMode int

const (
	// RootsUnreferenced starts from every subject that is never an object.
	RootsUnreferenced RootMode = iota
	// RootsDeclared starts from subjects typed sh:NodeShape or
	// sh:PropertyShape, or carrying a target, that no other shape
	// references.
	RootsDeclared
)

func (m RootMode) String() string {
	switch m {
	case RootsUnreferenced:
		return "unreferenced"
	case RootsDeclared:
		return "declared"
	default:
		return fmt.Sprintf("RootMode(%d)", int(m))
	}
}

// ParseRootMode parses "unreferenced" or "declared".
func ParseRootMode(s string) (RootMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unreferenced":
		return RootsUnreferenced, nil
	case "declared":
		return RootsDeclared, nil
	default:
		return RootsUnreferenced, fmt.Errorf("shacl: unknown root mode %q", s)
	}
}

// Option configures Parse and NewRegistry.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	metrics       *Metrics
	concurrency   int
	strictBounds  bool
	skipMalformed bool
	roots         RootMode
}

func defaultOptions() options {
	return options{
		logger:      slog.New(slog.DiscardHandler),
		concurrency: 1,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLogger sets the logger. Parsing logs at debug level only, except
// for skipped malformed shapes which are logged as warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records parse metrics. A nil *Metrics disables them.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithConcurrency builds up to n roots in parallel. Values below 2 keep
// the single-threaded depth-first walk.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

// WithStrictBounds turns BOUND_CONFLICT into a structural error that
// aborts the build of the shape.
func WithStrictBounds() Option {
	return func(o *options) {
		o.strictBounds = true
	}
}

// SkipMalformed records roots failing with a structural error in
// Result.Failures and keeps parsing the others.
func SkipMalformed() Option {
	return func(o *options) {
		o.skipMalformed = true
	}
}

// WithRootDiscovery selects the root discovery mode.
func WithRootDiscovery(mode RootMode) Option {
	return func(o *options) {
		o.roots = mode
	}
}

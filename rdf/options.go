package rdf

const (
	// DefaultMaxTriples bounds graph size when no limit is configured.
	DefaultMaxTriples int64 = 10_000_000
	// SafeMaxTriples is the limit applied by OptSafeLimits.
	SafeMaxTriples int64 = 1_000_000
	// SafeMaxInputBytes is the input size limit applied by OptSafeLimits.
	SafeMaxInputBytes int64 = 64 << 20
)

// Option configures loading behavior.
type Option func(*Options)

// Options configures how Load builds a graph.
type Options struct {
	// Security limits for untrusted input. Negative values disable a limit.
	MaxTriples    int64
	MaxInputBytes int64

	// BaseIRI resolves relative IRIs.
	BaseIRI string

	// Source names the input in errors, typically a file path.
	Source string

	// StrictIRIValidation rejects IRIs that fail ValidateIRI.
	StrictIRIValidation bool
}

// OptMaxTriples sets the maximum number of triples to load.
func OptMaxTriples(maxTriples int64) Option {
	return func(opts *Options) {
		opts.MaxTriples = maxTriples
	}
}

// OptMaxInputBytes sets the maximum number of input bytes to read.
func OptMaxInputBytes(maxBytes int64) Option {
	return func(opts *Options) {
		opts.MaxInputBytes = maxBytes
	}
}

// OptSafeLimits applies limits suitable for untrusted input.
func OptSafeLimits() Option {
	return func(opts *Options) {
		opts.MaxTriples = SafeMaxTriples
		opts.MaxInputBytes = SafeMaxInputBytes
	}
}

// OptBaseIRI sets the base IRI used to resolve relative references.
func OptBaseIRI(base string) Option {
	return func(opts *Options) {
		opts.BaseIRI = base
	}
}

// OptSource names the input in load errors.
func OptSource(source string) Option {
	return func(opts *Options) {
		opts.Source = source
	}
}

// OptStrictIRIValidation enables RFC 3987 checks on every IRI in the input.
func OptStrictIRIValidation() Option {
	return func(opts *Options) {
		opts.StrictIRIValidation = true
	}
}

func defaultOptions() Options {
	return Options{
		MaxTriples:    DefaultMaxTriples,
		MaxInputBytes: -1,
	}
}

func buildOptions(opts []Option) Options {
	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

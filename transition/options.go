package transition

import (
	"errors"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/adpolican/dynamic-foxhole-solver/search"
)

// ErrOptionViolation indicates an invalid builder option.
var ErrOptionViolation = errors.New("transition: invalid option")

// Options configures Build.
type Options struct {
	// Rule is used when RuleSet is true; otherwise search.DefaultRule(cells).
	Rule    search.Rule
	RuleSet bool

	BinarySearch bool
	Symmetry     bool
	Workers      int
	Logger       logrus.FieldLogger
}

// Option configures Build via functional arguments.
type Option func(*Options)

// DefaultOptions returns: parity rule, binary search, symmetry shortcut,
// runtime.NumCPU() workers, and a logger that discards everything.
func DefaultOptions() Options {
	return Options{
		BinarySearch: true,
		Symmetry:     true,
		Workers:      runtime.NumCPU(),
		Logger:       discard(),
	}
}

// WithRule fixes the acceptance rule.
func WithRule(r search.Rule) Option {
	return func(o *Options) {
		o.Rule = r
		o.RuleSet = true
	}
}

// WithBinarySearch toggles bisection over check counts.
func WithBinarySearch(on bool) Option {
	return func(o *Options) { o.BinarySearch = on }
}

// WithSymmetry toggles the mirror shortcut for the Bottom→Top direction.
func WithSymmetry(on bool) Option {
	return func(o *Options) { o.Symmetry = on }
}

// WithWorkers bounds the number of concurrent searches. n must be ≥ 1.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the telemetry logger; nil restores the discarding default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l == nil {
			l = discard()
		}
		o.Logger = l
	}
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

package analyzer

import (
	"github.com/rs/zerolog"
)

// DefaultBuiltins are call names accepted without a declaration
var DefaultBuiltins = []string{"echo", "array", "isset"}

// DefaultMaxCallDepth bounds nested call inlining
const DefaultMaxCallDepth = 32

type Option func(*Builder)

// WithBuiltins extends the list of call names that need no declaration
func WithBuiltins(names ...string) Option {
	return func(b *Builder) {
		for _, name := range names {
			b.builtins[name] = true
		}
	}
}

// WithHoisting controls whether top-level function declarations are registered before the walk.
// When disabled, calling a function above its declaration is an undeclared function error.
func WithHoisting(enabled bool) Option {
	return func(b *Builder) {
		b.hoist = enabled
	}
}

// WithMaxCallDepth sets the maximum depth of nested inlined calls, non positive values keep the default
func WithMaxCallDepth(depth int) Option {
	return func(b *Builder) {
		if depth > 0 {
			b.maxCallDepth = depth
		}
	}
}

// WithLogger sets the logger used for declarations and warnings
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

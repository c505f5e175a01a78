package builder

import (
	"github.com/Vallentin/textmation/log"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build tracing.
func WithLogger(logger log.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithSearchPaths appends directories searched when resolving includes.
// Directories appended later are searched first.
func WithSearchPaths(paths ...string) Option {
	return func(b *Builder) { b.searchPaths = append(b.searchPaths, paths...) }
}

// WithBaseType sets the type a template without an explicit inherit
// expands from. The default is Drawable.
func WithBaseType(name string) Option {
	return func(b *Builder) { b.baseType = name }
}

// applyDefaults sets default option values on a Builder.
func applyDefaults(b *Builder) {
	b.logger = log.Make(nil)
	b.baseType = "Drawable"
}

// applyOptions applies functional options to a Builder.
func applyOptions(b *Builder, opts ...Option) {
	for _, opt := range opts {
		opt(b)
	}
}

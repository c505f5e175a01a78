package repl

import (
	"github.com/Vallentin/textmation/builder"
	"github.com/Vallentin/textmation/log"
)

// config collects the settings of a prompt session.
type config struct {
	builder *builder.Builder
	source  string
	file    string
	histDir string
	logger  log.Logger
}

// Option configures a prompt session.
type Option func(*config)

// WithBuilder sets the builder used to construct and evaluate scenes. The
// default builder has no include search paths.
func WithBuilder(b *builder.Builder) Option {
	return func(c *config) { c.builder = b }
}

// WithScene sets the scene source the session starts from and the file it
// was read from. The file may be empty when the source did not come from a
// file, which disables the reload command. The default is an empty scene.
func WithScene(source, file string) Option {
	return func(c *config) { c.source, c.file = source, file }
}

// WithHistoryDir sets the directory holding the prompt history file. An
// empty directory keeps history in memory only.
func WithHistoryDir(dir string) Option {
	return func(c *config) { c.histDir = dir }
}

// WithLogger sets the logger used for session tracing.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// applyDefaults sets default option values on a config.
func applyDefaults(c *config) {
	c.logger = log.Make(nil)
}

// applyOptions applies functional options to a config.
func applyOptions(c *config, opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}

	if c.builder == nil {
		c.builder = builder.New(builder.WithLogger(c.logger))
	}
}

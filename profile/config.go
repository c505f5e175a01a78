package profile

// Config supplies the profiler parameters: the mode to run, the output
// directory, and whether the profiler logs its own start and stop.
type Config func() (mode, path string, quiet bool)

// New returns a Config with opts applied over an empty configuration.
func New(opts ...func(Config) Config) Config {
	var c Config

	for _, opt := range opts {
		c = opt(c)
	}

	if c == nil {
		c = func() (string, string, bool) { return "", "", false }
	}

	return c
}

// Start launches the profiler described by the Config and returns a
// handle that stops it. With an empty mode, or in builds without the
// pprof tag, the handle does nothing. Start and Stop are always safe to
// call.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c.params()

	if mode == "" {
		return noop{}
	}

	return start(mode, path, quiet)
}

// params reads the configuration, treating nil as empty.
func (c Config) params() (mode, path string, quiet bool) {
	if c == nil {
		return "", "", false
	}

	return c()
}

// amend derives a Config from c with its parameters rewritten by f.
func amend(c Config, f func(mode, path string, quiet bool) (string, string, bool)) Config {
	return func() (string, string, bool) {
		return f(c.params())
	}
}

// WithMode returns an option selecting the profiling mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		return amend(c, func(_, path string, quiet bool) (string, string, bool) {
			return mode, path, quiet
		})
	}
}

// WithPath returns an option selecting the output directory.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		return amend(c, func(mode, _ string, quiet bool) (string, string, bool) {
			return mode, path, quiet
		})
	}
}

// WithQuiet returns an option silencing the profiler's own logging.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		return amend(c, func(mode, path string, _ bool) (string, string, bool) {
			return mode, path, quiet
		})
	}
}

// noop is the stop handle of a profiler that never ran.
type noop struct{}

func (noop) Stop() {}

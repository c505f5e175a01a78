package log

import (
	"io"
	"sync"
)

// Option returns a config modified from its argument.
type Option func(config) config

// applyOptions folds opts over cfg in order.
func applyOptions(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// set wraps a field mutation in the locking every option needs. Options
// may be applied to configs that never saw [WithDefaults], so a missing
// mutex is created on first use instead of locked.
func set(mutate func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = new(sync.RWMutex)
		} else {
			c.mutex.Lock()
			defer c.mutex.Unlock()
		}

		mutate(&c)

		return c
	}
}

// WithDefaults returns an option that resets every setting to its package
// default and directs output to w. A nil writer discards all output.
func WithDefaults(w io.Writer) Option {
	return set(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
		c.stamp = newTimeFormatter(DefaultTimeLayout)
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller
		c.pretty = DefaultPretty
	})
}

// WithOutput returns an option that directs log output to w. A nil writer
// discards all output.
func WithOutput(w io.Writer) Option {
	return set(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	})
}

// WithLevel returns an option that sets the minimum level. Records below
// it are dropped.
func WithLevel(level Level) Option {
	return set(func(c *config) { c.level = level })
}

// WithFormat returns an option that sets the record encoding.
func WithFormat(format Format) Option {
	return set(func(c *config) { c.format = format })
}

// WithTimeLayout returns an option that sets the timestamp layout. The
// layout may be a name known to the [time] package, such as "RFC3339" or
// "StampMilli", in any capitalization. Anything else is passed to
// [time.Time.Format] verbatim. A blank layout, or the name "none", omits
// timestamps from the output.
func WithTimeLayout(layout string) Option {
	stamp := newTimeFormatter(layout)

	return set(func(c *config) { c.stamp = stamp })
}

// WithCaller returns an option that controls whether records carry the
// file and line of the call site.
func WithCaller(enable bool) Option {
	return set(func(c *config) { c.caller = enable })
}

// WithPretty returns an option that controls colorized output. Pretty
// text drops the quoting around values, and pretty JSON spreads each
// record over indented lines.
func WithPretty(enable bool) Option {
	return set(func(c *config) { c.pretty = enable })
}

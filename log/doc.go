// Package log layers structured, leveled logging for the textmation
// toolchain on top of [log/slog].
//
// A [Logger] is a value. It is created by [Make] with its configuration
// fixed up front through functional options, and copies derived from it
// by [Logger.Wrap] or [Logger.With] never affect the original:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//
//	logger.Info("scene built", slog.String("file", "intro.anim"))
//
// The zero Logger is valid and drops every record, so types can embed or
// default one without wiring.
//
// # Levels
//
// Five levels are defined, ordered [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Trace sits below slog's
// range and carries the per-token and per-element output of the build
// pipeline; records below the configured level are dropped. [ParseLevel]
// maps command-line spellings onto levels.
//
// # Formats
//
// Records are encoded as JSON or as key=value text, chosen by
// [WithFormat]. With [WithPretty] enabled, the default, both encodings
// are colorized for terminals: text drops its quoting, and JSON spreads
// each record over indented lines.
//
// # Timestamps
//
// [WithTimeLayout] accepts the layout names of the [time] package in any
// capitalization, short aliases such as "ms" and "ns", or a custom layout
// passed to [time.Time.Format] verbatim. The name "none" or a blank
// layout removes timestamps entirely.
//
// # Context
//
// Every leveled method has a Context variant. The plain variants call
// them with the context from [DefaultContextProvider], which defaults to
// [context.TODO].
//
// # Package logger
//
// The package-level functions write through a shared default logger on
// standard output. [Config] reshapes it in place, which the command-line
// front end uses to apply --log-* flags before commands run, and
// [Default] hands it to components that take a [Logger] value.
package log

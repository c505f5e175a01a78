package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Vallentin/textmation/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"json"    enum:"json,text"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                       help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start finalizes the logger configuration with all parsed values,
// including TimeLayout and Caller which don't use TextUnmarshaler.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan performs an early pass over command-line arguments to apply logger
// configuration before Kong begins parsing, so the logger is configured
// regardless of flag position on the command line.
//
// While logFormat and logLevel implement encoding.TextUnmarshaler to
// configure the logger as flags are parsed, boolean flags like Pretty
// don't go through that interface, so this pre-scan is their only early
// hook.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		var negated bool

		switch {
		case strings.HasPrefix(name, "--log-"):
		case strings.HasPrefix(name, "--no-log-"):
			negated = true
		default:
			continue
		}

		switch name {
		case "--log-level", "--log-format":
			// Non-boolean flag: consume the next arg as value if not
			// assigned with '='.
			if !assigned && i+1 < len(args) && args[i+1] != "" && args[i+1][0] != '-' {
				value = args[i+1]
				i++
			}

			if name == "--log-level" {
				_ = f.Level.UnmarshalText([]byte(value))
			} else {
				_ = f.Format.UnmarshalText([]byte(value))
			}

		case "--log-pretty", "--no-log-pretty":
			f.Pretty = boolFlag(value, assigned, negated)
			log.Config(log.WithPretty(f.Pretty))

		case "--log-caller", "--no-log-caller":
			f.Caller = boolFlag(value, assigned, negated)
			log.Config(log.WithCaller(f.Caller))
		}
	}
}

// boolFlag interprets the optional "=value" of a boolean flag, inverting
// the result for the negated form.
func boolFlag(value string, assigned, negated bool) bool {
	v := true

	if assigned {
		if parsed, err := strconv.ParseBool(value); err == nil {
			v = parsed
		}
	}

	if negated {
		return !v
	}

	return v
}

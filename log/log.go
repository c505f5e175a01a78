package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Logger writes structured records through an embedded [slog.Logger] while
// keeping hold of the configuration that built it, so the logger can be
// wrapped or inspected later. The zero value drops every record silently.
type Logger struct {
	*slog.Logger
	config
}

// Make returns a [Logger] writing to w, configured with the package
// defaults and then opts in order. See [WithDefaults] for the settings a
// bare Make produces.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := newConfig(w, opts...)

	// Nothing else references cfg yet, so no locking here.
	return Logger{
		config: cfg,
		Logger: slog.New(cfg.handler()),
	}
}

// Wrap returns a copy of the logger with opts layered on top of its
// current configuration. The receiver is left untouched.
//
// The copy runs under its own mutex, and opts are applied to it before
// anything else can hold a reference. The receiver's lock therefore only
// needs to cover the snapshot of its configuration.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.mutex != nil {
		l.mutex.RLock()
		defer l.mutex.RUnlock()
	}

	cfg := l.fork(opts...)

	return Logger{
		config: cfg,
		Logger: slog.New(cfg.handler()),
	}
}

// With returns a copy of the logger that adds attrs to every record it
// writes.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	l.mutex.RLock()
	cfg := l.fork()
	l.mutex.RUnlock()

	return Logger{
		config: cfg,
		Logger: slog.New(l.Logger.Handler().WithAttrs(attrs)),
	}
}

// Level returns the minimum level of records the logger writes.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	if l.mutex == nil {
		l.mutex = new(sync.RWMutex)
	} else {
		l.mutex.RLock()
		defer l.mutex.RUnlock()
	}

	return l.level
}

// Format returns the record encoding of the logger.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	if l.mutex == nil {
		l.mutex = new(sync.RWMutex)
	} else {
		l.mutex.RLock()
		defer l.mutex.RUnlock()
	}

	return l.format
}

// Trace logs msg at [LevelTrace].
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.TraceContext(DefaultContextProvider(), msg, attrs...)
}

// Debug logs msg at [LevelDebug].
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.DebugContext(DefaultContextProvider(), msg, attrs...)
}

// Info logs msg at [LevelInfo].
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.InfoContext(DefaultContextProvider(), msg, attrs...)
}

// Warn logs msg at [LevelWarn].
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.WarnContext(DefaultContextProvider(), msg, attrs...)
}

// Error logs msg at [LevelError].
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.ErrorContext(DefaultContextProvider(), msg, attrs...)
}

// TraceContext logs msg at [LevelTrace] with ctx.
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs...)
}

// DebugContext logs msg at [LevelDebug] with ctx.
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs...)
}

// InfoContext logs msg at [LevelInfo] with ctx.
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs...)
}

// WarnContext logs msg at [LevelWarn] with ctx.
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs...)
}

// ErrorContext logs msg at [LevelError] with ctx.
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs...)
}

// log emits a single record through the handler, building it directly so
// the program counter can be pinned on the right frame.
//
// The skip of 4 counts runtime.Callers itself, log, the *Context method,
// and one wrapper: a plain leveled method or any package-level function.
// Source attribution therefore lands on the user of those entry points.
// Calling a *Context method on a Logger directly sits one frame shallower
// and attributes to its caller's caller.
func (l Logger) log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	if l.Logger == nil {
		return
	}

	if l.mutex == nil {
		l.mutex = new(sync.RWMutex)
	} else {
		l.mutex.RLock()
		defer l.mutex.RUnlock()
	}

	if !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	var pcs [1]uintptr

	runtime.Callers(4, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)

	_ = l.Handler().Handle(ctx, r)
}

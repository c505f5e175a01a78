// Package cli contains the command line interface for textmation.
//
// # Usage
//
// Running textmation with a scene file builds it and prints the evaluated
// element tree:
//
//	textmation scene.anim
//
// The scene command is the default; the other subcommands cover parsing,
// checking, and interactive work:
//
//	textmation ast scene.anim          # print the syntax tree
//	textmation ast json scene.anim     # ... as JSON
//	textmation check scenes/*.anim     # report every diagnostic
//	textmation repl scene.anim         # evaluate expressions interactively
//	textmation init                    # write the default config file
//
// Every command accepts '-' as a source to read the scene from stdin.
//
// # Configuration
//
// Flags may also be set in a YAML configuration file, generated by the
// init command and loaded from the user config directory (for example
// ~/.config/textmation/config). Grouped flags nest under their prefix:
//
//	log:
//	  level: debug
//	  format: text
//	path: [~/scenes]
//
// Command-line flags override configuration file values.
//
// # Include Path
//
// Include statements search directories in this order: --path flags left
// to right, then $TEXTMATION_PATH entries, then the scenes directory under
// the user config directory. When building from a file, the scene file's
// own directory is searched first.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o textmation .
//
// The profiling flags are:
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/textmation/pprof)
//
// # Examples
//
//	# Build a scene with debug logging
//	textmation --log-level=debug scene.anim
//
//	# Pipe a scene through the formatter
//	cat scene.anim | textmation ast
//
//	# Check a directory of scenes with an extra include directory
//	textmation check -I ./shared scenes/*.anim
package cli

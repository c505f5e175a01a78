package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/Vallentin/textmation/cli/cmd"
	"github.com/Vallentin/textmation/pkg"
)

// CLI is the top-level command-line interface for textmation.
type CLI struct {
	Log     logConfig     `embed:"" group:"log"     prefix:"log-"`
	Pprof   pprofConfig   `embed:"" group:"pprof"   prefix:"pprof-"`
	Include includeConfig `embed:"" group:"include"`

	AST     cmd.AST     `cmd:"" help:"Parse a scene and print its syntax tree" name:"ast"`
	Scene   cmd.Scene   `cmd:"" default:"withargs" help:"Build a scene and print its element tree"`
	Check   cmd.Check   `cmd:"" help:"Check scene files and report every diagnostic"`
	Repl    cmd.Repl    `cmd:"" help:"Evaluate scene expressions interactively" name:"repl"`
	Init    cmd.Init    `cmd:"" help:"Initialize configuration file"`
	Version cmd.Version `cmd:"" help:"Print version information"`
}

// Run parses args, wires the parsed configuration into ctx, and executes
// the selected subcommand. The exit function receives the exit code when
// kong terminates on its own, as it does for --help.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags act before parsing so diagnostics from parsing itself
	// honor them. logLevel and logFormat also apply themselves through
	// TextUnmarshaler, but boolean flags have no such hook.
	cli.Log.scan(args)

	parser, err := kong.New(&cli, cli.options(ctx, exit)...)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, kctx)
	ctx = cmd.WithSearchPaths(ctx, cli.Include.searchPaths())

	// Flags without a TextUnmarshaler hook, TimeLayout and Caller among
	// them, reach the logger only now that parsing is done.
	cli.Log.start(ctx)

	// Inert unless built with tag pprof and a mode was selected.
	defer cli.Pprof.start(ctx)()

	return kctx.Run(ctx, &cli)
}

// options assembles the kong parser configuration: application metadata,
// flag groups, the configuration file chain, and the context handed to
// the Run method of each subcommand.
func (cli *CLI) options(ctx context.Context, exit func(code int)) []kong.Option {
	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars()).
		CloneWith(cli.Include.vars())

	return []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{
			cli.Log.group(),
			cli.Pprof.group(),
			cli.Include.group(),
		}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath, configFilePath+".yaml"),
		vars,
	}
}

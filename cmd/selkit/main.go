package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"selkit/config"
	"selkit/geometry"
	"selkit/misc"
	"selkit/recipe"
	"selkit/serial"
	"selkit/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
		if er := env.Log.Sync(); er != nil && !isSyncOnTerminal(er) {
			err = multierr.Append(err, fmt.Errorf("unable to sync log: %w", er))
		}
	}
	// close logging
	env.RestoreStdLog()
	return
}

// isSyncOnTerminal filters out errors zap reports when syncing console
// streams which do not support it.
func isSyncOnTerminal(err error) bool {
	for _, e := range multierr.Errors(err) {
		if pe, ok := e.(*os.PathError); !ok || (pe.Path != os.Stdout.Name() && pe.Path != os.Stderr.Name()) {
			return false
		}
	}
	return true
}

// Errors from subcommands are regular errors, they are logged once here and
// reported to stderr only if log is not available.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Logger().Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "CSS selector builder and stylesheet generator",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
		},
		Commands: []*cli.Command{
			{
				Name:         "render",
				Usage:        "Renders selector recipe(s) into CSS stylesheet",
				OnUsageError: usageErrorHandler,
				Action:       recipe.Run,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "overwrite destination if it exists"},
					&cli.BoolFlag{Name: "no-header", Usage: "do not put header comment into stylesheet"},
					&cli.BoolFlag{Name: "normalize", Usage: "slugify id and class names in all recipes"},
				},
				ArgsUsage: "SOURCE [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to recipe file (YAML), to zip archive or to directory with recipe
    files, in which case all files with configured extensions are processed
    (in natural order for directories)

DESTINATION:
    stylesheet file name, if absent - STDOUT
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "explain",
				Usage:        "Prints tree of selector recipe(s) with rendered selectors and their specificity",
				OnUsageError: usageErrorHandler,
				Action:       recipe.RunExplain,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "normalize", Usage: "slugify id and class names in all recipes"},
				},
				ArgsUsage: "SOURCE...",
			},
			{
				Name:  "rect",
				Usage: "Prints rectangle with its area as JSON",
				Flags: []cli.Flag{
					&cli.FloatFlag{Name: "width", Usage: "rectangle `WIDTH`"},
					&cli.FloatFlag{Name: "height", Usage: "rectangle `HEIGHT`"},
					&cli.StringFlag{Name: "json", Usage: "take rectangle from `JSON` object instead of flags"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputRectangle,
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

type rectReport struct {
	geometry.Rectangle
	Area float64 `json:"area"`
}

func outputRectangle(ctx context.Context, cmd *cli.Command) error {
	rect := geometry.NewRectangle(cmd.Float("width"), cmd.Float("height"))
	if in := cmd.String("json"); len(in) > 0 {
		r, err := serial.FromJSON[geometry.Rectangle](in)
		if err != nil {
			return err
		}
		rect = *r
	}

	out, err := serial.ToJSON(rectReport{Rectangle: rect, Area: rect.Area()})
	if err != nil {
		return err
	}
	state.EnvFromContext(ctx).Logger().Debug("Rectangle", zap.Float64("width", rect.Width), zap.Float64("height", rect.Height))

	_, err = fmt.Fprintln(os.Stdout, out)
	return err
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Logger().Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		if env.Cfg == nil {
			// no arguments were given, Before did not load configuration
			if env.Cfg, err = config.LoadConfiguration(cmd.Root().String("config")); err != nil {
				return fmt.Errorf("unable to prepare configuration: %w", err)
			}
		}
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Logger().Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

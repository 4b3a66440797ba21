package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/autoprim/internal/config"
	"github.com/Norgate-AV/autoprim/internal/errorlevel"
	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/platform"
	"github.com/Norgate-AV/autoprim/internal/version"
)

// App holds the state one command invocation works with. It is created once
// per run and released when the command returns.
type App struct {
	log      logger.LoggerInterface
	settings *config.Settings
	platform *platform.Platform
	out      io.Writer
}

// Injectable for testing
var (
	newLogger = func(opts logger.LoggerOptions) (logger.LoggerInterface, error) {
		return logger.NewLogger(opts)
	}

	newPlatform = platform.New
)

// RootCmd is the root command for the autoprim CLI application.
var RootCmd = NewRootCmd()

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "autoprim",
		Short:         "autoprim - Windows automation primitives for scripts",
		Long:          "autoprim exposes file, mouse, process, window and shell automation as commands.\nEach command reports its status through the exit code.",
		Version:       version.GetVersion(),
		Args:          cobra.NoArgs,
		RunE:          executeRoot,
		SilenceUsage:  true, // Don't show usage on runtime errors
		SilenceErrors: true, // main reports errors so it can honor the exit code
	}

	// Set custom version template to show full version info
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.PersistentFlags().BoolP("verbose", "V", false, "enable verbose output")
	root.PersistentFlags().BoolP("logs", "l", false, "print the current log file to stdout and exit")
	root.PersistentFlags().String("config", "", "path to the config file (default: "+config.DefaultPath()+")")

	root.AddCommand(
		newExpandCmd(),
		newMouseMoveCmd(),
		newProcessCmd(),
		newFileCmd(),
		newShortcutCmd(),
		newDownloadCmd(),
		newPixelCmd(),
		newWinCmd(),
		newControlCmd(),
		newRunCmd(),
		newSysinfoCmd(),
	)

	return root
}

// executeRoot handles the bare command, which only serves --logs
func executeRoot(cmd *cobra.Command, _ []string) error {
	cfg := NewConfigFromFlags(cmd)
	if cfg.ShowLogs {
		return handleLogsFlag(cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	return cmd.Help()
}

// handleLogsFlag prints the current log file
func handleLogsFlag(out, errOut io.Writer) error {
	opts := logger.LoggerOptions{}

	if err := logger.PrintLogFile(out, opts); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(errOut, "Log file does not exist: %s\n", logger.GetLogPath(opts))
			return errorlevel.New(errorlevel.Failure, nil)
		}

		return err
	}

	return nil
}

// initializeLogger creates a logger honoring the rotation settings
func initializeLogger(cfg *Config, settings *config.Settings, console io.Writer) (logger.LoggerInterface, error) {
	log, err := newLogger(logger.LoggerOptions{
		Verbose:    cfg.Verbose,
		Console:    console,
		MaxSize:    settings.Log.MaxSize,
		MaxBackups: settings.Log.MaxBackups,
		MaxAge:     settings.Log.MaxAge,
		Compress:   settings.Log.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

// newApp loads configuration, then creates the logger and the platform
func newApp(cmd *cobra.Command, cfg *Config) (*App, error) {
	settings, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	log, err := initializeLogger(cfg, settings, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	plat, err := newPlatform(log, platform.Options{Strategy: settings.Process.Strategy})
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to initialize platform: %w", err)
	}

	return &App{
		log:      log,
		settings: settings,
		platform: plat,
		out:      cmd.OutOrStdout(),
	}, nil
}

// Close releases the logger
func (a *App) Close() {
	a.log.Close()
}

// Context returns a context cancelled when the user interrupts the run
func (a *App) Context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	return a.platform.InterruptContext(parent)
}

// Println writes one line of command output
func (a *App) Println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// Printf writes formatted command output
func (a *App) Printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

type runFunc func(app *App, cmd *cobra.Command, args []string) error

// withApp adapts fn into a cobra RunE. It builds the App, handles --logs and
// recovers from panics inside fn.
func withApp(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		cfg := NewConfigFromFlags(cmd)

		if cfg.ShowLogs {
			return handleLogsFlag(cmd.OutOrStdout(), cmd.ErrOrStderr())
		}

		app, err := newApp(cmd, cfg)
		if err != nil {
			return err
		}

		defer app.Close()

		app.log.Debug("Starting autoprim",
			slog.String("command", cmd.CommandPath()),
			slog.Any("args", args),
			slog.String("version", version.GetFullVersion()),
		)

		// Recover from panics and log them
		defer func() {
			if r := recover(); r != nil {
				app.log.Error("PANIC RECOVERED",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)

				fmt.Fprintf(cmd.ErrOrStderr(), "\n*** PANIC: %v ***\n", r)
				fmt.Fprintf(cmd.ErrOrStderr(), "Check log file for details\n")

				err = errorlevel.Newf("panic: %v", r)
			}
		}()

		err = fn(app, cmd, args)

		app.log.Debug("Command finished",
			slog.String("command", cmd.CommandPath()),
			slog.Int("errorlevel", errorlevel.ExitCode(err)),
			slog.Any("error", err),
		)

		return err
	}
}

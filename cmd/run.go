package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/autoprim/internal/errorlevel"
	"github.com/Norgate-AV/autoprim/internal/shell"
)

func newRunCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "run <target> [args...]",
		Short: "Launch a program, document or URL and print its PID",
		Long: `Launch a program, document or URL through the shell and print the PID
of the new process. The PID is 0 when the shell hands the target to an
already running process.`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(runRun),
	}

	c.Flags().String("verb", "", "shell verb such as open, edit or print (default verb when empty)")
	c.Flags().StringP("workdir", "w", "", "working directory")
	c.Flags().String("show", "normal", "window state: normal, maximized, minimized or a show command number")

	return c
}

func runRun(app *App, cmd *cobra.Command, args []string) error {
	launcher, err := app.platform.ProgramLauncher()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	verb, _ := cmd.Flags().GetString("verb")
	dir, _ := cmd.Flags().GetString("workdir")
	show, _ := cmd.Flags().GetString("show")

	state, err := shell.ParseRunState(show)
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	target := args[0]
	params := strings.Join(args[1:], " ")

	pid, err := launcher.Launch(verb, target, params, dir, shell.ShowCmdFromRunState(state))
	if err != nil {
		app.Println(0)
		return errorlevel.New(errorlevel.Failure, fmt.Errorf("failed to launch %s: %w", target, err))
	}

	app.log.Debug("Launched", slog.String("target", target), slog.Uint64("pid", uint64(pid)))

	app.Println(pid)
	return nil
}

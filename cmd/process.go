package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/autoprim/internal/errorlevel"
	"github.com/Norgate-AV/autoprim/internal/process"
	"github.com/Norgate-AV/autoprim/internal/timeouts"
)

func newProcessCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "process",
		Short: "Find, wait for and close processes by name or PID",
	}

	exist := &cobra.Command{
		Use:   "exist <name-or-pid>",
		Short: "Print the PID of a matching process, or 0",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runProcessExist),
	}

	closeCmd := &cobra.Command{
		Use:   "close <name-or-pid>",
		Short: "Terminate a matching process and print its PID, or 0",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runProcessClose),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List running processes as PID and name",
		Args:  cobra.NoArgs,
		RunE:  withApp(runProcessList),
	}

	wait := &cobra.Command{
		Use:   "wait <name-or-pid>",
		Short: "Wait for a matching process to exist and print its PID",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runProcessWait),
	}

	waitClose := &cobra.Command{
		Use:   "waitclose <name-or-pid>",
		Short: "Wait for a matching process to go away",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runProcessWaitClose),
	}

	for _, w := range []*cobra.Command{wait, waitClose} {
		w.Flags().DurationP("timeout", "t", 0, "give up after this long (0 waits forever)")
	}

	c.AddCommand(exist, closeCmd, list, wait, waitClose)
	return c
}

func (a *App) resolver() (*process.Resolver, error) {
	enum, err := a.platform.ProcessTable()
	if err != nil {
		return nil, err
	}

	return process.NewResolver(enum, a.log), nil
}

func runProcessExist(app *App, _ *cobra.Command, args []string) error {
	r, err := app.resolver()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	m, ok := r.Resolve(args[0])
	app.Println(m.PID)

	if !ok {
		return errorlevel.New(errorlevel.Failure, nil)
	}

	return nil
}

func runProcessClose(app *App, cmd *cobra.Command, args []string) error {
	r, err := app.resolver()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	ctrl, err := app.platform.ProcessControl()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	m, ok := r.Resolve(args[0])
	if !ok {
		app.Println(0)
		return errorlevel.New(errorlevel.Failure, nil)
	}

	app.log.Debug("Terminating process", slog.Uint64("pid", uint64(m.PID)), slog.String("name", m.Name))

	if err := ctrl.Terminate(m.PID); err != nil {
		app.Println(0)
		return errorlevel.New(errorlevel.Failure, fmt.Errorf("failed to terminate %s (%d): %w", m.Name, m.PID, err))
	}

	ctx, cancel := app.Context(cmd)
	defer cancel()

	ctx, cancelWait := context.WithTimeout(ctx, timeouts.ProcessExitTimeout)
	defer cancelWait()

	if _, err := waitProcess(ctx, r, fmt.Sprint(m.PID), false); err != nil {
		app.log.Warn("Process still running after terminate",
			slog.Uint64("pid", uint64(m.PID)),
			slog.Any("error", err),
		)
	}

	app.Println(m.PID)
	return nil
}

func runProcessList(app *App, _ *cobra.Command, _ []string) error {
	r, err := app.resolver()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	list, err := r.List()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, fmt.Errorf("failed to list processes: %w", err))
	}

	for _, m := range list {
		app.Printf("%d\t%s\n", m.PID, m.Name)
	}

	return nil
}

func runProcessWait(app *App, cmd *cobra.Command, args []string) error {
	r, err := app.resolver()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	ctx, cancel := waitContext(app, cmd)
	defer cancel()

	m, err := waitProcess(ctx, r, args[0], true)
	if err != nil {
		app.Println(0)
		return errorlevel.New(errorlevel.Failure, nil)
	}

	app.Println(m.PID)

	return nil
}

func runProcessWaitClose(app *App, cmd *cobra.Command, args []string) error {
	r, err := app.resolver()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	ctx, cancel := waitContext(app, cmd)
	defer cancel()

	if _, err := waitProcess(ctx, r, args[0], false); err != nil {
		return errorlevel.New(errorlevel.Failure, nil)
	}

	return nil
}

// waitContext combines the interrupt context with the --timeout flag
func waitContext(app *App, cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, cancel := app.Context(cmd)

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		return ctx, cancel
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)

	return ctx, func() {
		cancelTimeout()
		cancel()
	}
}

// waitProcess polls until token resolves (exists) or stops resolving (!exists).
// The match seen by the last successful poll is returned.
func waitProcess(ctx context.Context, r *process.Resolver, token string, exists bool) (process.Match, error) {
	ticker := time.NewTicker(timeouts.StatePollingInterval)
	defer ticker.Stop()

	for {
		if m, ok := r.Resolve(token); ok == exists {
			return m, nil
		}

		select {
		case <-ctx.Done():
			return process.Match{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

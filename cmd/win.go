package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/autoprim/internal/errorlevel"
	"github.com/Norgate-AV/autoprim/internal/interfaces"
	"github.com/Norgate-AV/autoprim/internal/timeouts"
	"github.com/Norgate-AV/autoprim/internal/window"
)

const criteriaHelp = `Criteria are a title optionally followed by ahk_class <class>,
ahk_pid <pid> and ahk_id <hwnd>, for example "Untitled - Notepad ahk_class Notepad".`

func newWinCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "win",
		Short: "Find, activate, close and wait for top-level windows",
		Long:  "Find, activate, close and wait for top-level windows.\n\n" + criteriaHelp,
	}

	c.PersistentFlags().StringP("match-mode", "m", "", "title match: 1 starts with, 2 contains, 3 exact (default from config)")

	find := &cobra.Command{
		Use:   "find <criteria>",
		Short: "Print the handle of the first matching window, or 0x0",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runWinFind),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List visible top-level windows",
		Args:  cobra.NoArgs,
		RunE:  withApp(runWinList),
	}

	activate := &cobra.Command{
		Use:   "activate <criteria>",
		Short: "Bring the first matching window to the foreground",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runWinActivate),
	}

	closeCmd := &cobra.Command{
		Use:   "close <criteria>",
		Short: "Ask the first matching window to close",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runWinClose),
	}
	closeCmd.Flags().DurationP("timeout", "t", 0, "wait this long for the window to close (0 does not wait)")

	wait := &cobra.Command{
		Use:   "wait <criteria>",
		Short: "Wait for a matching window and print its handle",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runWinWait),
	}

	waitClose := &cobra.Command{
		Use:   "waitclose <criteria>",
		Short: "Wait until no window matches",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runWinWaitClose),
	}

	for _, w := range []*cobra.Command{wait, waitClose} {
		w.Flags().DurationP("timeout", "t", 0, "give up after this long (0 waits forever)")
	}

	c.AddCommand(find, list, activate, closeCmd, wait, waitClose)
	return c
}

// parseCriteria parses window criteria honoring --match-mode over the config
func parseCriteria(app *App, cmd *cobra.Command, s string) (window.Criteria, error) {
	mode := window.MatchMode(app.settings.Window.TitleMatchMode)

	if flag := getStringFlag(cmd, "match-mode"); flag != "" {
		m, err := window.ParseMatchMode(flag)
		if err != nil {
			return window.Criteria{}, err
		}

		mode = m
	}

	return window.ParseCriteria(s, mode)
}

// findWindow returns the window manager and the first window matching s
func findWindow(app *App, cmd *cobra.Command, s string) (interfaces.WindowManager, window.Info, error) {
	wm, err := app.platform.WindowManager()
	if err != nil {
		return nil, window.Info{}, errorlevel.New(errorlevel.Failure, err)
	}

	crit, err := parseCriteria(app, cmd, s)
	if err != nil {
		return nil, window.Info{}, errorlevel.New(errorlevel.Failure, err)
	}

	w, ok := window.Find(wm.EnumerateWindows(), crit)
	if !ok {
		app.log.Debug("No window matched", slog.String("criteria", s))
		return wm, window.Info{}, errorlevel.New(errorlevel.Failure, nil)
	}

	app.log.Debug("Window matched",
		slog.String("criteria", s),
		slog.String("title", w.Title),
		slog.Uint64("hwnd", uint64(w.Hwnd)),
	)

	return wm, w, nil
}

func formatHwnd(hwnd uintptr) string {
	return fmt.Sprintf("0x%X", hwnd)
}

func runWinFind(app *App, cmd *cobra.Command, args []string) error {
	_, w, err := findWindow(app, cmd, args[0])
	app.Println(formatHwnd(w.Hwnd))

	return err
}

func runWinList(app *App, _ *cobra.Command, _ []string) error {
	wm, err := app.platform.WindowManager()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	for _, w := range wm.EnumerateWindows() {
		app.Printf("%s\t%d\t%s\t%s\n", formatHwnd(w.Hwnd), w.PID, w.Class, w.Title)
	}

	return nil
}

func runWinActivate(app *App, cmd *cobra.Command, args []string) error {
	wm, w, err := findWindow(app, cmd, args[0])
	if err != nil {
		return err
	}

	if !wm.SetForeground(w.Hwnd) {
		return errorlevel.Newf("failed to activate %q", w.Title)
	}

	return nil
}

func runWinClose(app *App, cmd *cobra.Command, args []string) error {
	wm, w, err := findWindow(app, cmd, args[0])
	if err != nil {
		return err
	}

	wm.CloseWindow(w.Hwnd, w.Title)

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		return nil
	}

	ctx, cancel := waitContext(app, cmd)
	defer cancel()

	if err := window.WaitClose(ctx, wm, window.Criteria{Hwnd: w.Hwnd}, timeouts.StatePollingInterval); err != nil {
		return errorlevel.Newf("window %q did not close", w.Title)
	}

	return nil
}

func runWinWait(app *App, cmd *cobra.Command, args []string) error {
	return waitWindow(app, cmd, args[0], true)
}

func runWinWaitClose(app *App, cmd *cobra.Command, args []string) error {
	return waitWindow(app, cmd, args[0], false)
}

func waitWindow(app *App, cmd *cobra.Command, s string, appear bool) error {
	wm, err := app.platform.WindowManager()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	crit, err := parseCriteria(app, cmd, s)
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	ctx, cancel := waitContext(app, cmd)
	defer cancel()

	if !appear {
		if err := window.WaitClose(ctx, wm, crit, timeouts.StatePollingInterval); err != nil {
			return waitError(err)
		}

		return nil
	}

	w, err := window.Wait(ctx, wm, crit, timeouts.StatePollingInterval)
	if err != nil {
		app.Println(formatHwnd(0))
		return waitError(err)
	}

	app.Println(formatHwnd(w.Hwnd))
	return nil
}

// waitError turns a timeout into a silent ErrorLevel 1 and keeps other
// reasons, such as an interrupt, visible
func waitError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errorlevel.New(errorlevel.Failure, nil)
	}

	return errorlevel.New(errorlevel.Failure, err)
}

package cmd

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/autoprim/internal/errorlevel"
	"github.com/Norgate-AV/autoprim/internal/interfaces"
	"github.com/Norgate-AV/autoprim/internal/window"
)

func newControlCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "control",
		Short: "Read and click child controls of a window",
		Long: `Read and click child controls of a window.

A control is named by its ClassNN (Button1, Edit2) or by its text.
` + criteriaHelp,
	}

	c.PersistentFlags().StringP("match-mode", "m", "", "title match: 1 starts with, 2 contains, 3 exact (default from config)")

	getText := &cobra.Command{
		Use:   "gettext <control> <criteria>",
		Short: "Print the text of a control; list boxes print one item per line",
		Args:  cobra.ExactArgs(2),
		RunE:  withApp(runControlGetText),
	}

	list := &cobra.Command{
		Use:   "list <criteria>",
		Short: "List the child controls of a window by ClassNN",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runControlList),
	}

	click := &cobra.Command{
		Use:   "click <control> <criteria>",
		Short: "Click a button control",
		Args:  cobra.ExactArgs(2),
		RunE:  withApp(runControlClick),
	}

	c.AddCommand(getText, list, click)
	return c
}

// findControl locates the window matching criteria and its control named name
func findControl(app *App, cmd *cobra.Command, name, criteria string) (interfaces.ControlReader, window.Info, window.NamedControl, error) {
	reader, err := app.platform.ControlReader()
	if err != nil {
		return nil, window.Info{}, window.NamedControl{}, errorlevel.New(errorlevel.Failure, err)
	}

	_, w, err := findWindow(app, cmd, criteria)
	if err != nil {
		return nil, window.Info{}, window.NamedControl{}, err
	}

	ctrl, ok := window.FindControl(reader.CollectControls(w.Hwnd), name)
	if !ok {
		return nil, w, window.NamedControl{}, errorlevel.Newf("control %q not found in %q", name, w.Title)
	}

	app.log.Debug("Control matched",
		slog.String("name", name),
		slog.String("classNN", ctrl.ClassNN),
		slog.Uint64("hwnd", uint64(ctrl.Hwnd)),
	)

	return reader, w, ctrl, nil
}

func runControlGetText(app *App, cmd *cobra.Command, args []string) error {
	_, _, ctrl, err := findControl(app, cmd, args[0], args[1])
	if err != nil {
		return err
	}

	app.Println(window.ControlText(ctrl.Control))
	return nil
}

func runControlList(app *App, cmd *cobra.Command, args []string) error {
	reader, err := app.platform.ControlReader()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	_, w, err := findWindow(app, cmd, args[0])
	if err != nil {
		return err
	}

	for _, c := range window.ClassNN(reader.CollectControls(w.Hwnd)) {
		text := strings.ReplaceAll(window.ControlText(c.Control), "\n", `\n`)
		app.Printf("%s\t%s\n", c.ClassNN, text)
	}

	return nil
}

func runControlClick(app *App, cmd *cobra.Command, args []string) error {
	reader, w, ctrl, err := findControl(app, cmd, args[0], args[1])
	if err != nil {
		return err
	}

	if !reader.ClickControl(w.Hwnd, ctrl.Control) {
		return errorlevel.Newf("failed to click %s", ctrl.ClassNN)
	}

	return nil
}

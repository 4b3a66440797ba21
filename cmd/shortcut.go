package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Norgate-AV/autoprim/internal/errorlevel"
	"github.com/Norgate-AV/autoprim/internal/shell"
)

// shortcutView is the printed form of a shortcut
type shortcutView struct {
	Target      string `yaml:"target"`
	WorkingDir  string `yaml:"working_dir"`
	Args        string `yaml:"args"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	IconNumber  int    `yaml:"icon_number"`
	Hotkey      string `yaml:"hotkey"`
	RunState    int    `yaml:"run_state"`
}

func newShortcutCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "shortcut",
		Short: "Read and create .lnk shortcuts",
	}

	get := &cobra.Command{
		Use:   "get <lnk-file>",
		Short: "Print the fields of a shortcut as YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runShortcutGet),
	}

	create := &cobra.Command{
		Use:   "create <target> <lnk-file>",
		Short: "Create or replace a shortcut",
		Args:  cobra.ExactArgs(2),
		RunE:  withApp(runShortcutCreate),
	}

	create.Flags().StringP("workdir", "w", "", "working directory")
	create.Flags().StringP("args", "a", "", "command-line arguments")
	create.Flags().StringP("description", "d", "", "description")
	create.Flags().String("icon", "", "icon file")
	create.Flags().Int("icon-number", 0, "1-based icon index in the icon file")
	create.Flags().String("hotkey", "", "key pressed with Ctrl+Alt to launch the shortcut")
	create.Flags().String("run-state", "normal", "normal, maximized, minimized or a show command number")

	c.AddCommand(get, create)
	return c
}

func runShortcutGet(app *App, _ *cobra.Command, args []string) error {
	sh, err := app.platform.ShellManager()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	s, err := sh.ReadShortcut(args[0])
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	data, err := yaml.Marshal(shortcutView{
		Target:      s.Target,
		WorkingDir:  s.WorkingDir,
		Args:        s.Args,
		Description: s.Description,
		Icon:        s.Icon,
		IconNumber:  s.IconNumber,
		Hotkey:      s.Hotkey,
		RunState:    int(s.RunState),
	})
	if err != nil {
		return fmt.Errorf("failed to format shortcut: %w", err)
	}

	app.Printf("%s", data)
	return nil
}

func runShortcutCreate(app *App, cmd *cobra.Command, args []string) error {
	sh, err := app.platform.ShellManager()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	flags := cmd.Flags()
	runState, _ := flags.GetString("run-state")

	state, err := shell.ParseRunState(runState)
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	s := shell.Shortcut{Target: args[0], RunState: state}
	s.WorkingDir, _ = flags.GetString("workdir")
	s.Args, _ = flags.GetString("args")
	s.Description, _ = flags.GetString("description")
	s.Icon, _ = flags.GetString("icon")
	s.IconNumber, _ = flags.GetInt("icon-number")
	s.Hotkey, _ = flags.GetString("hotkey")

	if err := sh.CreateShortcut(args[1], s); err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	return nil
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/autoprim/internal/config"
	"github.com/Norgate-AV/autoprim/internal/errorlevel"
	"github.com/Norgate-AV/autoprim/internal/mouse"
)

func newMouseMoveCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "mousemove <x> <y>",
		Short: "Move the mouse pointer, instantly or in gradual steps",
		Long: `Move the mouse pointer to x,y.

Speed 0 moves instantly. Larger values move in smaller steps, up to 100.
Coordinates are relative to the active window unless --coord-mode is screen
or --relative is given.`,
		Args: cobra.ExactArgs(2),
		RunE: withApp(runMouseMove),
	}

	c.Flags().IntP("speed", "s", mouse.DefaultSpeed, "movement speed, 0 (instant) to 100 (slowest)")
	c.Flags().BoolP("relative", "r", false, "treat x,y as an offset from the current position")
	c.Flags().String("coord-mode", config.CoordRelative, "coordinate origin: relative (active window) or screen")

	return c
}

// parseCoords parses an x,y argument pair
func parseCoords(xs, ys string) (int, int, error) {
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x coordinate %q", xs)
	}

	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y coordinate %q", ys)
	}

	return x, y, nil
}

// coordMode resolves the coordinate mode from the flag or the config value
func coordMode(cmd *cobra.Command, configured string) (mouse.CoordMode, error) {
	mode := configured

	if cmd.Flags().Changed("coord-mode") {
		mode, _ = cmd.Flags().GetString("coord-mode")
		mode = strings.ToLower(strings.TrimSpace(mode))
	}

	if err := config.ValidateCoordMode(mode); err != nil {
		return 0, err
	}

	if mode == config.CoordScreen {
		return mouse.CoordScreen, nil
	}

	return mouse.CoordWindow, nil
}

func runMouseMove(app *App, cmd *cobra.Command, args []string) error {
	x, y, err := parseCoords(args[0], args[1])
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	dev, err := app.platform.Mouse()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	speed := app.settings.Mouse.Speed
	if cmd.Flags().Changed("speed") {
		speed, _ = cmd.Flags().GetInt("speed")
	}

	mode, err := coordMode(cmd, app.settings.Mouse.CoordMode)
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	relative, _ := cmd.Flags().GetBool("relative")

	mover := mouse.NewMover(dev, app.settings.Mouse.Delay, app.log)
	mover.Move(x, y, mouse.MoveOptions{
		Speed:     speed,
		Relative:  relative,
		CoordMode: mode,
	})

	return nil
}

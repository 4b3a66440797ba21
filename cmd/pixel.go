package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/autoprim/internal/config"
	"github.com/Norgate-AV/autoprim/internal/errorlevel"
	"github.com/Norgate-AV/autoprim/internal/pixel"
)

func newPixelCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "pixel <x> <y>",
		Short: "Print the color of a screen pixel as 0xBBGGRR",
		Args:  cobra.ExactArgs(2),
		RunE:  withApp(runPixel),
	}

	c.Flags().Bool("rgb", false, "print the color as 0xRRGGBB")
	c.Flags().String("coord-mode", config.CoordRelative, "coordinate origin: relative (active window) or screen")

	return c
}

func runPixel(app *App, cmd *cobra.Command, args []string) error {
	x, y, err := parseCoords(args[0], args[1])
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	src, err := app.platform.Screen()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	mode, err := coordMode(cmd, app.settings.Pixel.CoordMode)
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	c, err := pixel.NewSampler(src, mode, app.log).At(x, y)
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	rgb, _ := cmd.Flags().GetBool("rgb")
	app.Println(pixel.Format(c, rgb))

	return nil
}

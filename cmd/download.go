package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/autoprim/internal/download"
	"github.com/Norgate-AV/autoprim/internal/errorlevel"
)

func newDownloadCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "download <url> <file>",
		Short: "Download a URL to a file",
		Args:  cobra.ExactArgs(2),
		RunE:  withApp(runDownload),
	}

	c.Flags().Duration("timeout", 0, "give up after this long (default from config)")
	c.Flags().String("user-agent", "", "User-Agent header (default from config)")

	return c
}

func runDownload(app *App, cmd *cobra.Command, args []string) error {
	opts := download.Options{
		Timeout:   app.settings.Download.Timeout,
		UserAgent: app.settings.Download.UserAgent,
	}

	if cmd.Flags().Changed("timeout") {
		opts.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}

	if cmd.Flags().Changed("user-agent") {
		opts.UserAgent, _ = cmd.Flags().GetString("user-agent")
	}

	ctx, cancel := app.Context(cmd)
	defer cancel()

	if err := download.New(app.log, opts).Download(ctx, args[0], args[1]); err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	app.log.Info("Download complete", slog.String("file", args[1]))
	return nil
}

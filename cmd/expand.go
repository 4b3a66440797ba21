package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/autoprim/internal/wildcard"
)

func newExpandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <source-name> <dest-pattern>",
		Short: "Print the name a wildcard copy would give source-name",
		Example: `  autoprim expand report.txt "*.bak"     # report.bak
  autoprim expand a.b.c "*.*.txt"        # a.b..txt`,
		Args: cobra.ExactArgs(2),
		RunE: withApp(runExpand),
	}
}

func runExpand(app *App, _ *cobra.Command, args []string) error {
	result := wildcard.Expand(args[0], args[1])

	app.log.Debug("Expanded wildcard",
		slog.String("source", args[0]),
		slog.String("pattern", args[1]),
		slog.String("result", result),
	)

	app.Println(result)
	return nil
}

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/autoprim/internal/errorlevel"
	"github.com/Norgate-AV/autoprim/internal/fileops"
)

func newFileCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "file",
		Short: "Copy, move, recycle and inspect files and directories",
	}

	copyCmd := &cobra.Command{
		Use:   "copy <source-pattern> <dest>",
		Short: "Copy files matching a wildcard pattern; the exit code is the number of failures",
		Args:  cobra.ExactArgs(2),
		RunE:  withApp(runFileTransfer(false)),
	}

	moveCmd := &cobra.Command{
		Use:   "move <source-pattern> <dest>",
		Short: "Move files matching a wildcard pattern; the exit code is the number of failures",
		Args:  cobra.ExactArgs(2),
		RunE:  withApp(runFileTransfer(true)),
	}

	copyDir := &cobra.Command{
		Use:   "copydir <source> <dest>",
		Short: "Copy a directory tree",
		Args:  cobra.ExactArgs(2),
		RunE:  withApp(runDirTransfer(false)),
	}

	moveDir := &cobra.Command{
		Use:   "movedir <source> <dest>",
		Short: "Move a directory tree",
		Args:  cobra.ExactArgs(2),
		RunE:  withApp(runDirTransfer(true)),
	}

	for _, t := range []*cobra.Command{copyCmd, moveCmd, copyDir, moveDir} {
		t.Flags().BoolP("overwrite", "o", false, "replace existing files")
	}

	removeDir := &cobra.Command{
		Use:   "removedir <path>",
		Short: "Remove a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runRemoveDir),
	}
	removeDir.Flags().BoolP("recurse", "r", false, "remove the directory contents as well")

	createDir := &cobra.Command{
		Use:   "createdir <path>",
		Short: "Create a directory and any missing parents",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runCreateDir),
	}

	exist := &cobra.Command{
		Use:   "exist <pattern>",
		Short: "Exit 0 when a file or directory matches pattern, 1 otherwise",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runFileExist),
	}

	recycle := &cobra.Command{
		Use:   "recycle <pattern>",
		Short: "Send files to the recycle bin",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runRecycle),
	}

	recycleEmpty := &cobra.Command{
		Use:   "recycle-empty [drive]",
		Short: "Empty the recycle bin of one drive, or of all drives",
		Args:  cobra.MaximumNArgs(1),
		RunE:  withApp(runRecycleEmpty),
	}

	versionCmd := &cobra.Command{
		Use:   "version <path>",
		Short: "Print the version of an executable or DLL",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runFileVersion),
	}

	c.AddCommand(copyCmd, moveCmd, copyDir, moveDir, removeDir, createDir, exist, recycle, recycleEmpty, versionCmd)
	return c
}

func runFileTransfer(move bool) runFunc {
	return func(app *App, cmd *cobra.Command, args []string) error {
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		ops := fileops.New(app.log)

		transfer := ops.CopyFiles
		if move {
			transfer = ops.MoveFiles
		}

		failures, err := transfer(args[0], args[1], overwrite)
		if err != nil {
			return errorlevel.New(errorlevel.Failure, err)
		}

		app.log.Debug("File transfer complete",
			slog.Bool("move", move),
			slog.Int("failures", failures),
		)

		return errorlevel.FromCount(failures, "file(s)")
	}
}

func runDirTransfer(move bool) runFunc {
	return func(app *App, cmd *cobra.Command, args []string) error {
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		ops := fileops.New(app.log)

		transfer := ops.CopyDir
		if move {
			transfer = ops.MoveDir
		}

		if err := transfer(args[0], args[1], overwrite); err != nil {
			return errorlevel.New(errorlevel.Failure, err)
		}

		return nil
	}
}

func runRemoveDir(app *App, cmd *cobra.Command, args []string) error {
	recurse, _ := cmd.Flags().GetBool("recurse")

	if err := fileops.New(app.log).RemoveDir(args[0], recurse); err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	return nil
}

func runCreateDir(app *App, _ *cobra.Command, args []string) error {
	if err := fileops.New(app.log).CreateDir(args[0]); err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	return nil
}

func runFileExist(_ *App, _ *cobra.Command, args []string) error {
	if !fileops.Exists(args[0]) {
		return errorlevel.New(errorlevel.Failure, nil)
	}

	return nil
}

func runRecycle(app *App, _ *cobra.Command, args []string) error {
	sh, err := app.platform.ShellManager()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	if err := sh.Recycle(args[0]); err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	return nil
}

func runRecycleEmpty(app *App, _ *cobra.Command, args []string) error {
	sh, err := app.platform.ShellManager()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	drive := ""
	if len(args) > 0 {
		drive = args[0]
	}

	if err := sh.EmptyRecycleBin(drive); err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	return nil
}

func runFileVersion(app *App, _ *cobra.Command, args []string) error {
	sh, err := app.platform.ShellManager()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	v, err := sh.FileVersion(args[0])
	if err != nil {
		app.Println("")
		return errorlevel.New(errorlevel.Failure, fmt.Errorf("failed to read version: %w", err))
	}

	app.Println(v)
	return nil
}

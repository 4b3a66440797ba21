// Package fileops implements wildcard file copy and move plus directory
// helpers.
package fileops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/wildcard"
)

var (
	// ErrNotDir is returned when a directory operation gets a non-directory source
	ErrNotDir = errors.New("not a directory")

	// ErrExists is returned when a target exists and overwriting was not requested
	ErrExists = errors.New("target already exists")

	// ErrIsDir is returned when a file would replace a directory
	ErrIsDir = errors.New("target is a directory")
)

// Ops performs file operations, logging each per-file failure.
type Ops struct {
	log logger.LoggerInterface
}

// New creates an Ops.
func New(log logger.LoggerInterface) *Ops {
	return &Ops{log: log}
}

// CopyFiles copies every file matching src to the location described by the
// dest pattern. It returns the number of files that could not be copied.
func (o *Ops) CopyFiles(src, dest string, overwrite bool) (int, error) {
	return o.transfer(src, dest, overwrite, false)
}

// MoveFiles moves every file matching src. It returns the number of files that
// could not be moved.
func (o *Ops) MoveFiles(src, dest string, overwrite bool) (int, error) {
	return o.transfer(src, dest, overwrite, true)
}

func (o *Ops) transfer(src, dest string, overwrite, move bool) (int, error) {
	srcPath, err := fullPath(src)
	if err != nil {
		return 0, err
	}

	destPath, err := fullPath(dest)
	if err != nil {
		return 0, err
	}

	if IsDir(srcPath) {
		srcPath = filepath.Join(srcPath, "*.*")
	}

	if IsDir(destPath) {
		destPath = filepath.Join(destPath, "*.*")
	}

	matches, err := filepath.Glob(globPattern(srcPath))
	if err != nil {
		return 0, fmt.Errorf("invalid source pattern %q: %w", src, err)
	}

	op := "copy"
	if move {
		op = "move"
	}

	failures := 0

	for _, from := range matches {
		info, err := os.Stat(from)
		if err != nil || info.IsDir() {
			continue
		}

		to := wildcard.Expand(filepath.Base(from), destPath)

		if move {
			err = moveFile(from, to, overwrite)
		} else {
			err = copyFile(from, to, overwrite)
		}

		if err != nil {
			failures++
			o.log.Debug("File "+op+" failed",
				slog.String("from", from),
				slog.String("to", to),
				slog.Any("error", err),
			)

			continue
		}

		o.log.Trace("File "+op+" succeeded", slog.String("from", from), slog.String("to", to))
	}

	return failures, nil
}

// copyFile copies one regular file, keeping its mode and modification time.
func copyFile(from, to string, overwrite bool) error {
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if same, _ := sameFile(from, to); same {
		if overwrite {
			return nil
		}

		return ErrExists
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	out, err := os.OpenFile(to, flags, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrExists
		}

		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(to, info.ModTime(), info.ModTime())
}

// moveFile renames one file. Moving a file onto itself succeeds. The target
// is only deleted after a first rename attempt fails, and never when it is a
// directory. When the rename cannot cross volumes the file is copied and the
// source removed.
func moveFile(from, to string, overwrite bool) error {
	if same, _ := sameFile(from, to); same {
		return os.Rename(from, to)
	}

	target, err := os.Lstat(to)
	exists := err == nil

	if exists {
		if !overwrite {
			return ErrExists
		}

		if target.IsDir() {
			return fmt.Errorf("%s: %w", to, ErrIsDir)
		}
	}

	err = os.Rename(from, to)
	if err == nil {
		return nil
	}

	if isCrossDevice(err) {
		if err := copyFile(from, to, overwrite); err != nil {
			return err
		}

		return os.Remove(from)
	}

	if !exists {
		return err
	}

	if err := os.Remove(to); err != nil {
		return err
	}

	return os.Rename(from, to)
}

// CopyDir copies the src tree into dest. An existing dest is merged into
// only when overwrite is set.
func (o *Ops) CopyDir(src, dest string, overwrite bool) error {
	srcPath, err := fullPath(src)
	if err != nil {
		return err
	}

	destPath, err := fullPath(dest)
	if err != nil {
		return err
	}

	if !IsDir(srcPath) {
		return fmt.Errorf("%s: %w", srcPath, ErrNotDir)
	}

	if IsDir(destPath) && !overwrite {
		return fmt.Errorf("%s: %w", destPath, ErrExists)
	}

	if err := o.CreateDir(destPath); err != nil {
		return err
	}

	o.log.Debug("Copying directory", slog.String("from", srcPath), slog.String("to", destPath))

	return filepath.WalkDir(srcPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcPath, path)
		if err != nil {
			return err
		}

		target := filepath.Join(destPath, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		if !d.Type().IsRegular() {
			return nil
		}

		return copyFile(path, target, true)
	})
}

// MoveDir moves the src tree to dest. If dest already exists the move fails
// unless overwrite is set, in which case the contents of src are merged into
// dest, replacing files of the same name. src is never moved inside an
// existing dest as a subdirectory; to get that layout pass dest\<name of src>.
func (o *Ops) MoveDir(src, dest string, overwrite bool) error {
	srcPath, err := fullPath(src)
	if err != nil {
		return err
	}

	destPath, err := fullPath(dest)
	if err != nil {
		return err
	}

	if !IsDir(srcPath) {
		return fmt.Errorf("%s: %w", srcPath, ErrNotDir)
	}

	if IsDir(destPath) {
		if !overwrite {
			return fmt.Errorf("%s: %w", destPath, ErrExists)
		}

		if err := o.CopyDir(srcPath, destPath, true); err != nil {
			return err
		}

		return os.RemoveAll(srcPath)
	}

	err = os.Rename(srcPath, destPath)
	if err == nil {
		return nil
	}

	o.log.Debug("Rename failed, falling back to copy", slog.Any("error", err))

	if err := o.CopyDir(srcPath, destPath, true); err != nil {
		return err
	}

	return os.RemoveAll(srcPath)
}

// RemoveDir deletes a directory. Without recurse the directory must be empty.
func (o *Ops) RemoveDir(path string, recurse bool) error {
	p, err := fullPath(path)
	if err != nil {
		return err
	}

	if !IsDir(p) {
		return fmt.Errorf("%s: %w", p, ErrNotDir)
	}

	if recurse {
		return os.RemoveAll(p)
	}

	return os.Remove(p)
}

// CreateDir creates path and any missing parents. It succeeds when the
// directory already exists and fails when a file is in the way.
func (o *Ops) CreateDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return nil
		}

		return fmt.Errorf("%s: %w", path, ErrNotDir)
	}

	return os.MkdirAll(path, 0o755)
}

// Exists reports whether a file or directory exists. Patterns containing * or
// ? are matched with globbing.
func Exists(pattern string) bool {
	if strings.ContainsAny(pattern, "*?") {
		matches, err := filepath.Glob(globPattern(pattern))
		return err == nil && len(matches) > 0
	}

	_, err := os.Stat(pattern)
	return err == nil
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// fullPath makes path absolute and strips any trailing separator.
func fullPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	return abs, nil
}

// globPattern rewrites the "*.*" name, which matches every file including
// names without a dot, into its glob equivalent.
func globPattern(pattern string) string {
	if filepath.Base(pattern) == "*.*" {
		return filepath.Join(filepath.Dir(pattern), "*")
	}

	return pattern
}

func sameFile(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}

	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}

	return os.SameFile(ai, bi), nil
}

package process

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// DefaultProcRoot is where the Linux process filesystem is mounted.
const DefaultProcRoot = "/proc"

// ProcfsEnumerator walks processes through a Linux-style /proc tree.
type ProcfsEnumerator struct {
	root string
}

// NewProcfsEnumerator creates an enumerator reading from root. An empty root
// means DefaultProcRoot.
func NewProcfsEnumerator(root string) *ProcfsEnumerator {
	if root == "" {
		root = DefaultProcRoot
	}

	return &ProcfsEnumerator{root: root}
}

// Name identifies the enumeration strategy.
func (p *ProcfsEnumerator) Name() string { return "procfs" }

// Available reports whether the /proc tree can be read.
func (p *ProcfsEnumerator) Available() bool {
	info, err := os.Stat(p.root)
	return err == nil && info.IsDir()
}

// Walk yields processes in ascending PID order. Processes that exit while the
// walk is in progress are skipped.
func (p *ProcfsEnumerator) Walk(yield func(Record) bool) error {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", p.root, err)
	}

	pids := make([]uint32, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		pid, ok := ParsePID(e.Name())
		if !ok {
			continue
		}

		pids = append(pids, pid)
	}

	slices.Sort(pids)

	for _, pid := range pids {
		path, ok := p.executable(pid)
		if !ok {
			continue
		}

		if !yield(Record{PID: pid, Path: path}) {
			return nil
		}
	}

	return nil
}

// executable prefers the exe link, which carries the full path, and falls back
// to comm for processes whose link cannot be read.
func (p *ProcfsEnumerator) executable(pid uint32) (string, bool) {
	dir := filepath.Join(p.root, strconv.FormatUint(uint64(pid), 10))

	if target, err := os.Readlink(filepath.Join(dir, "exe")); err == nil && target != "" {
		return strings.TrimSuffix(target, " (deleted)"), true
	}

	data, err := os.ReadFile(filepath.Join(dir, "comm"))
	if err != nil {
		return "", false
	}

	name := strings.TrimSpace(string(data))
	return name, name != ""
}

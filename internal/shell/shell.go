// Package shell holds the platform independent parts of the shell helpers:
// version formatting and shortcut field conversion.
package shell

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatVersion renders the fixed file info version words as "a.b.c.d".
func FormatVersion(ms, ls uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", ms>>16, ms&0xFFFF, ls>>16, ls&0xFFFF)
}

// RunState is the window state a shortcut launches its target in.
type RunState int

const (
	RunNormal    RunState = 1
	RunMaximized RunState = 3
	RunMinimized RunState = 7
)

func (r RunState) String() string {
	switch r {
	case RunNormal:
		return "normal"
	case RunMaximized:
		return "maximized"
	case RunMinimized:
		return "minimized"
	default:
		return strconv.Itoa(int(r))
	}
}

// RunStateFromShowCmd converts a stored show command. Unknown values are
// passed through since the shell may accept more than 1, 3 and 7.
func RunStateFromShowCmd(cmd int) RunState {
	if cmd == 0 {
		return RunNormal
	}

	return RunState(cmd)
}

// ShowCmdFromRunState converts a run state for storage in a shortcut.
func ShowCmdFromRunState(r RunState) int {
	if r == 0 {
		return int(RunNormal)
	}

	return int(r)
}

// ParseRunState accepts a number or one of normal, max, maximized, min and
// minimized. An empty string means normal.
func ParseRunState(s string) (RunState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return RunNormal, nil
	case "max", "maximized":
		return RunMaximized, nil
	case "min", "minimized":
		return RunMinimized, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid run state %q", s)
	}

	return RunStateFromShowCmd(n), nil
}

// Shortcut describes a .lnk file. IconNumber is 1-based; 0 means the shortcut
// has no icon.
type Shortcut struct {
	Target      string
	WorkingDir  string
	Args        string
	Description string
	Icon        string
	IconNumber  int
	Hotkey      string
	RunState    RunState
}

// ParseIconLocation splits the shell's "path,index" icon location into a path
// and a 1-based icon number. An empty path yields number 0.
func ParseIconLocation(loc string) (string, int) {
	path := loc
	index := 0

	if i := strings.LastIndexByte(loc, ','); i >= 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(loc[i+1:])); err == nil {
			path = loc[:i]
			index = n
		}
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return "", 0
	}

	return path, index + 1
}

// FormatIconLocation builds the shell's "path,index" icon location from a
// path and a 1-based icon number. Numbers below 1 select the first icon.
func FormatIconLocation(path string, number int) string {
	index := 0
	if number > 0 {
		index = number - 1
	}

	return path + "," + strconv.Itoa(index)
}

// FormatHotkey builds a Ctrl+Alt hotkey for key. Only Ctrl+Alt combinations
// are supported, so modifiers already present in key are dropped.
func FormatHotkey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}

	parts := strings.Split(key, "+")
	key = strings.TrimSpace(parts[len(parts)-1])
	if key == "" {
		return ""
	}

	return "Ctrl+Alt+" + strings.ToUpper(key)
}

// Package interfaces defines core interfaces for dependency injection and testing.
package interfaces

import (
	"github.com/Norgate-AV/autoprim/internal/mouse"
	"github.com/Norgate-AV/autoprim/internal/pixel"
	"github.com/Norgate-AV/autoprim/internal/shell"
	"github.com/Norgate-AV/autoprim/internal/window"
)

// PointerDevice reads and moves the mouse pointer
type PointerDevice interface {
	mouse.Device
}

// PixelReader reads screen colors
type PixelReader interface {
	pixel.Source
}

// ProcessController acts on running processes
type ProcessController interface {
	Terminate(pid uint32) error
}

// WindowManager handles top-level window operations
type WindowManager interface {
	EnumerateWindows() []window.Info
	SetForeground(hwnd uintptr) bool
	CloseWindow(hwnd uintptr, title string)
}

// ControlReader reads and clicks child controls
type ControlReader interface {
	CollectControls(hwnd uintptr) []window.Control
	ClickControl(parentHwnd uintptr, control window.Control) bool
}

// ShellManager wraps the shell's file services
type ShellManager interface {
	Recycle(pattern string) error
	EmptyRecycleBin(drive string) error
	FileVersion(path string) (string, error)
	ReadShortcut(path string) (shell.Shortcut, error)
	CreateShortcut(path string, s shell.Shortcut) error
}

// Launcher starts programs through the shell
type Launcher interface {
	Launch(verb, file, args, dir string, showCmd int) (uint32, error)
}

// PrivilegeChecker reports the privileges of the current process
type PrivilegeChecker interface {
	IsElevated() bool
}

//go:build windows

package windows

import (
	"sync"
	"syscall"

	"github.com/Norgate-AV/autoprim/internal/window"
)

var (
	foundWindows []window.Info
	windowsMu    sync.Mutex
)

func enumWindowsCallback(hwnd uintptr, lparam uintptr) uintptr {
	if IsWindowVisible(hwnd) {
		foundWindows = append(foundWindows, window.Info{
			Hwnd:  hwnd,
			Title: GetWindowText(hwnd),
			Class: GetClassName(hwnd),
			PID:   GetWindowPid(hwnd),
		})
	}

	return 1 // Continue enumeration
}

// enumWindowsProc is created once: NewCallback slots are never released
var enumWindowsProc = syscall.NewCallback(enumWindowsCallback)

// EnumerateWindows performs a thread-safe enumeration of visible top-level
// windows in Z order
func EnumerateWindows() []window.Info {
	windowsMu.Lock()
	defer windowsMu.Unlock()

	foundWindows = nil
	ret, _, _ := procEnumWindows.Call(enumWindowsProc, 0)
	if ret == 0 {
		return nil
	}

	// Make a copy to avoid races with subsequent enumerations
	windows := make([]window.Info, len(foundWindows))
	copy(windows, foundWindows)

	return windows
}

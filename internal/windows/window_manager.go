//go:build windows

package windows

import (
	"log/slog"
	"time"

	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/timeouts"
	"github.com/Norgate-AV/autoprim/internal/window"
)

// windowManager implements the WindowManager interface
type windowManager struct {
	log logger.LoggerInterface
}

// newWindowManager creates a new window manager
func newWindowManager(log logger.LoggerInterface) *windowManager {
	return &windowManager{log: log}
}

// CloseWindow sends a WM_CLOSE message to the specified window
func (w *windowManager) CloseWindow(hwnd uintptr, title string) {
	w.log.Debug("Closing window", slog.String("title", title))

	ret, _, err := procPostMessageW.Call(hwnd, WM_CLOSE, 0, 0)
	if ret == 0 {
		w.log.Debug("PostMessage WM_CLOSE failed",
			slog.String("title", title),
			slog.Uint64("hwnd", uint64(hwnd)),
			slog.Any("error", err))
	}

	time.Sleep(timeouts.WindowMessageDelay)
}

// SetForeground brings a window to the foreground using AttachThreadInput technique
func (w *windowManager) SetForeground(hwnd uintptr) bool {
	// Restore window if minimized
	ret, _, _ := procShowWindow.Call(hwnd, uintptr(SW_RESTORE))
	w.log.Debug("ShowWindow(SW_RESTORE)", slog.Uint64("ret", uint64(ret)))

	// Try standard SetForegroundWindow first
	ret, _, _ = procSetForegroundWindow.Call(hwnd)
	if ret != 0 {
		w.log.Debug("SetForegroundWindow succeeded (standard)")
		return w.verifyForeground(hwnd)
	}

	w.log.Debug("Standard SetForegroundWindow failed, trying AttachThreadInput technique")

	// Get current foreground window and its thread
	fgHwnd, _, _ := procGetForegroundWindow.Call()
	if fgHwnd == 0 || fgHwnd == hwnd {
		w.log.Debug("No foreground window or already focused")
		return true
	}

	fgThreadID, _, _ := procGetWindowThreadProcessId.Call(fgHwnd, 0)
	targetThreadID, _, _ := procGetWindowThreadProcessId.Call(hwnd, 0)

	if fgThreadID == 0 || targetThreadID == 0 {
		w.log.Warn("Could not get thread IDs",
			slog.Uint64("fgThreadID", uint64(fgThreadID)),
			slog.Uint64("targetThreadID", uint64(targetThreadID)))
		return false
	}

	w.log.Debug("Attaching threads",
		slog.Uint64("fgThreadID", uint64(fgThreadID)),
		slog.Uint64("targetThreadID", uint64(targetThreadID)))

	ret, _, _ = procAttachThreadInput.Call(targetThreadID, fgThreadID, 1)
	if ret == 0 {
		w.log.Warn("AttachThreadInput failed")
		return false
	}

	ret, _, _ = procSetForegroundWindow.Call(hwnd)
	success := ret != 0

	ret, _, _ = procAttachThreadInput.Call(targetThreadID, fgThreadID, 0)
	if ret == 0 {
		w.log.Warn("Failed to detach threads")
	}

	if success {
		w.log.Debug("SetForegroundWindow succeeded (with AttachThreadInput)")
		return w.verifyForeground(hwnd)
	}

	w.log.Warn("SetForegroundWindow still failed after AttachThreadInput")
	return false
}

// verifyForeground checks if the window is now in foreground
func (w *windowManager) verifyForeground(hwnd uintptr) bool {
	time.Sleep(timeouts.FocusVerificationDelay)

	fgHwnd, _, _ := procGetForegroundWindow.Call()
	if fgHwnd == hwnd {
		w.log.Debug("Window confirmed in foreground")
		return true
	}

	w.log.Warn("Different window in foreground",
		slog.Uint64("expected", uint64(hwnd)),
		slog.Uint64("got", uint64(fgHwnd)))

	return false
}

// ClickControl sends a BN_CLICKED notification for control to its parent
func (w *windowManager) ClickControl(parentHwnd uintptr, control window.Control) bool {
	if !IsWindow(control.Hwnd) {
		w.log.Debug("Control no longer exists", slog.Uint64("hwnd", uint64(control.Hwnd)))
		return false
	}

	id, _, _ := procGetDlgCtrlID.Call(control.Hwnd)

	w.log.Debug("Sending click",
		slog.String("class", control.Class),
		slog.String("text", control.Text),
		slog.Uint64("hwnd", uint64(control.Hwnd)),
		slog.Uint64("id", uint64(id)),
	)

	// WM_COMMAND: wParam = MAKEWPARAM(controlID, BN_CLICKED), lParam = hwnd
	wParam := (id & 0xFFFF) | (BN_CLICKED << 16)
	ret, _, err := procPostMessageW.Call(parentHwnd, WM_COMMAND, wParam, control.Hwnd)
	if ret == 0 {
		w.log.Debug("PostMessage BN_CLICKED failed", slog.Any("error", err))
		return false
	}

	time.Sleep(timeouts.WindowMessageDelay)
	return true
}

//go:build windows

package windows

import (
	"log/slog"
	"unsafe"

	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/mouse"
)

// pointerDevice implements mouse.Device with SendInput
type pointerDevice struct {
	log logger.LoggerInterface
}

// newPointerDevice creates a new pointer device
func newPointerDevice(log logger.LoggerInterface) *pointerDevice {
	return &pointerDevice{log: log}
}

// CursorPos returns the cursor position in screen pixels
func (p *pointerDevice) CursorPos() (int, int) {
	var pt POINT

	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		p.log.Debug("GetCursorPos failed", slog.Any("error", err))
	}

	return int(pt.X), int(pt.Y)
}

// MoveAbsolute moves the pointer to (x, y) in the 0..65535 absolute input space
func (p *pointerDevice) MoveAbsolute(x, y int) {
	var input INPUT
	input.Type = INPUT_MOUSE

	mi := (*MOUSEINPUT)(unsafe.Pointer(&input.Data[0]))
	mi.Dx = int32(x)
	mi.Dy = int32(y)
	mi.DwFlags = MOUSEEVENTF_MOVE | MOUSEEVENTF_ABSOLUTE

	ret, _, _ := procSendInput.Call(
		1,
		uintptr(unsafe.Pointer(&input)),
		uintptr(unsafe.Sizeof(INPUT{})),
	)

	if ret != 1 {
		p.log.Warn("SendInput failed", slog.Int("x", x), slog.Int("y", y))
	}
}

// DesktopRect returns the desktop window rectangle
func (p *pointerDevice) DesktopRect() mouse.Rect {
	desktop, _, _ := procGetDesktopWindow.Call()

	r, ok := GetWindowRect(desktop)
	if !ok {
		p.log.Debug("GetWindowRect(desktop) failed")
	}

	return mouse.Rect{Left: int(r.Left), Top: int(r.Top), Right: int(r.Right), Bottom: int(r.Bottom)}
}

// ForegroundOrigin returns the top-left corner of the foreground window. ok is
// false when there is no foreground window or it is minimized.
func (p *pointerDevice) ForegroundOrigin() (int, int, bool) {
	fg, _, _ := procGetForegroundWindow.Call()
	if fg == 0 || IsIconic(fg) {
		return 0, 0, false
	}

	r, ok := GetWindowRect(fg)
	if !ok {
		return 0, 0, false
	}

	return int(r.Left), int(r.Top), true
}

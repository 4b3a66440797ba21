//go:build windows

package windows

import (
	"syscall"

	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/mouse"
	"github.com/Norgate-AV/autoprim/internal/pixel"
	"github.com/Norgate-AV/autoprim/internal/shell"
	"github.com/Norgate-AV/autoprim/internal/window"
)

var (
	shell32                      = syscall.NewLazyDLL("shell32.dll")
	procShellExecuteEx           = shell32.NewProc("ShellExecuteExW")
	procSHFileOperationW         = shell32.NewProc("SHFileOperationW")
	procSHEmptyRecycleBinW       = shell32.NewProc("SHEmptyRecycleBinW")
	kernel32                     = syscall.NewLazyDLL("kernel32.dll")
	ProcCreateToolhelp32Snapshot = kernel32.NewProc("CreateToolhelp32Snapshot")
	ProcProcess32First           = kernel32.NewProc("Process32FirstW")
	ProcProcess32Next            = kernel32.NewProc("Process32NextW")
	ProcCloseHandle              = kernel32.NewProc("CloseHandle")
	procGetProcessId             = kernel32.NewProc("GetProcessId")
	procOpenProcess              = kernel32.NewProc("OpenProcess")
	procTerminateProcess         = kernel32.NewProc("TerminateProcess")
	user32                       = syscall.NewLazyDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procAttachThreadInput        = user32.NewProc("AttachThreadInput")
	procIsWindow                 = user32.NewProc("IsWindow")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procIsIconic                 = user32.NewProc("IsIconic")
	procSendMessageW             = user32.NewProc("SendMessageW")
	procPostMessageW             = user32.NewProc("PostMessageW")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procSendInput                = user32.NewProc("SendInput")
	procShowWindow               = user32.NewProc("ShowWindow")
	procEnumChildWindows         = user32.NewProc("EnumChildWindows")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetDlgCtrlID             = user32.NewProc("GetDlgCtrlID")
	procGetCursorPos             = user32.NewProc("GetCursorPos")
	procGetDesktopWindow         = user32.NewProc("GetDesktopWindow")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetDC                    = user32.NewProc("GetDC")
	procReleaseDC                = user32.NewProc("ReleaseDC")
	gdi32                        = syscall.NewLazyDLL("gdi32.dll")
	procGetPixel                 = gdi32.NewProc("GetPixel")
)

const (
	WM_GETTEXT       = 0x000D
	WM_GETTEXTLENGTH = 0x000E
	WM_CLOSE         = 0x0010
	WM_COMMAND       = 0x0111
	LB_GETCOUNT      = 0x018B
	LB_GETTEXT       = 0x0189
	LB_GETTEXTLEN    = 0x018A
	BN_CLICKED       = 0

	INPUT_MOUSE          = 0
	MOUSEEVENTF_MOVE     = 0x0001
	MOUSEEVENTF_ABSOLUTE = 0x8000

	SW_RESTORE = 9

	PROCESS_TERMINATE = 0x0001

	CLR_INVALID = 0xFFFFFFFF
)

const (
	TH32CS_SNAPPROCESS   = 0x00000002
	MAX_PATH             = 260
	INVALID_HANDLE_VALUE = ^uintptr(0)
)

// WindowsAPI is a concrete implementation of all Windows-related interfaces
// It wraps a Client to provide the required functionality
type WindowsAPI struct {
	client *Client
}

// NewWindowsAPI creates a new WindowsAPI with the provided logger
func NewWindowsAPI(log logger.LoggerInterface) *WindowsAPI {
	return &WindowsAPI{
		client: NewClient(log),
	}
}

// PointerDevice interface implementation
func (w *WindowsAPI) CursorPos() (int, int)   { return w.client.Pointer.CursorPos() }
func (w *WindowsAPI) MoveAbsolute(x, y int)   { w.client.Pointer.MoveAbsolute(x, y) }
func (w *WindowsAPI) DesktopRect() mouse.Rect { return w.client.Pointer.DesktopRect() }
func (w *WindowsAPI) ForegroundOrigin() (int, int, bool) {
	return w.client.Pointer.ForegroundOrigin()
}

// PixelReader interface implementation
func (w *WindowsAPI) PixelAt(x, y int) (pixel.Color, error) { return GetPixel(x, y) }

// WindowManager interface implementation
func (w *WindowsAPI) EnumerateWindows() []window.Info { return EnumerateWindows() }
func (w *WindowsAPI) SetForeground(hwnd uintptr) bool { return w.client.Window.SetForeground(hwnd) }
func (w *WindowsAPI) CloseWindow(hwnd uintptr, title string) {
	w.client.Window.CloseWindow(hwnd, title)
}

// ControlReader interface implementation
func (w *WindowsAPI) CollectControls(hwnd uintptr) []window.Control { return CollectControls(hwnd) }
func (w *WindowsAPI) ClickControl(parentHwnd uintptr, control window.Control) bool {
	return w.client.Window.ClickControl(parentHwnd, control)
}

// ProcessController interface implementation
func (w *WindowsAPI) Terminate(pid uint32) error { return TerminateProcess(pid) }

// Launcher interface implementation
func (w *WindowsAPI) Launch(verb, file, args, dir string, showCmd int) (uint32, error) {
	return ShellExecuteEx(0, verb, file, args, dir, showCmd, w.client.log)
}

// PrivilegeChecker interface implementation
func (w *WindowsAPI) IsElevated() bool { return IsElevated() }

// ShellManager interface implementation
func (w *WindowsAPI) Recycle(pattern string) error       { return w.client.Shell.Recycle(pattern) }
func (w *WindowsAPI) EmptyRecycleBin(drive string) error { return w.client.Shell.EmptyRecycleBin(drive) }
func (w *WindowsAPI) FileVersion(path string) (string, error) {
	return FileVersion(path)
}

func (w *WindowsAPI) ReadShortcut(path string) (shell.Shortcut, error) {
	return w.client.Shell.ReadShortcut(path)
}

func (w *WindowsAPI) CreateShortcut(path string, s shell.Shortcut) error {
	return w.client.Shell.CreateShortcut(path, s)
}

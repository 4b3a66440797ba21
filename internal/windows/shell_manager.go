//go:build windows

package windows

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	winsys "golang.org/x/sys/windows"

	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/shell"
)

const (
	FO_DELETE          = 0x0003
	FOF_SILENT         = 0x0004
	FOF_NOCONFIRMATION = 0x0010
	FOF_ALLOWUNDO      = 0x0040
	FOF_NOERRORUI      = 0x0400

	SHERB_NOCONFIRMATION = 0x0001
	SHERB_NOPROGRESSUI   = 0x0002
	SHERB_NOSOUND        = 0x0004
)

// shellManager implements the ShellManager interface
type shellManager struct {
	log logger.LoggerInterface
}

// newShellManager creates a new shell manager
func newShellManager(log logger.LoggerInterface) *shellManager {
	return &shellManager{log: log}
}

// doubleNull encodes s as a UTF-16 list terminated by two NULs
func doubleNull(s string) (*uint16, error) {
	u, err := winsys.UTF16FromString(s)
	if err != nil {
		return nil, err
	}

	u = append(u, 0)
	return &u[0], nil
}

// Recycle sends the files matching pattern to the recycle bin
func (s *shellManager) Recycle(pattern string) error {
	if pattern == "" {
		return errors.New("empty file pattern")
	}

	// The full path is required for undo to work
	full, err := filepath.Abs(pattern)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", pattern, err)
	}

	from, err := doubleNull(full)
	if err != nil {
		return err
	}

	op := SHFILEOPSTRUCT{
		WFunc:  FO_DELETE,
		PFrom:  from,
		FFlags: FOF_SILENT | FOF_ALLOWUNDO | FOF_NOCONFIRMATION | FOF_NOERRORUI,
	}

	s.log.Debug("Recycling", slog.String("pattern", full))

	ret, _, _ := procSHFileOperationW.Call(uintptr(unsafe.Pointer(&op)))
	if ret != 0 {
		return fmt.Errorf("failed to recycle %s: shell error 0x%X", full, ret)
	}

	if op.FAnyOperationsAborted != 0 {
		return fmt.Errorf("recycling %s was aborted", full)
	}

	return nil
}

// EmptyRecycleBin empties the recycle bin of one drive, or of every drive
// when drive is empty
func (s *shellManager) EmptyRecycleBin(drive string) error {
	var root *uint16

	if drive != "" {
		p, err := winsys.UTF16PtrFromString(drive)
		if err != nil {
			return err
		}

		root = p
	}

	s.log.Debug("Emptying recycle bin", slog.String("drive", drive))

	hr, _, _ := procSHEmptyRecycleBinW.Call(
		0,
		uintptr(unsafe.Pointer(root)),
		SHERB_NOCONFIRMATION|SHERB_NOPROGRESSUI|SHERB_NOSOUND,
	)
	if hr != 0 {
		return fmt.Errorf("failed to empty recycle bin: HRESULT 0x%08X", uint32(hr))
	}

	return nil
}

// FileVersion returns the fixed file version of an executable or DLL
func FileVersion(path string) (string, error) {
	size, err := winsys.GetFileVersionInfoSize(path, nil)
	if err != nil {
		return "", fmt.Errorf("no version information in %s: %w", path, err)
	}

	buf := make([]byte, size)
	if err := winsys.GetFileVersionInfo(path, 0, size, unsafe.Pointer(&buf[0])); err != nil {
		return "", fmt.Errorf("failed to read version information: %w", err)
	}

	var fixed *winsys.VS_FIXEDFILEINFO
	var length uint32
	if err := winsys.VerQueryValue(unsafe.Pointer(&buf[0]), `\`, unsafe.Pointer(&fixed), &length); err != nil {
		return "", fmt.Errorf("failed to query version information: %w", err)
	}

	if fixed == nil || length == 0 {
		return "", fmt.Errorf("no fixed version information in %s", path)
	}

	return shell.FormatVersion(fixed.FileVersionMS, fixed.FileVersionLS), nil
}

// withShell runs fn with an initialized COM apartment and a WScript.Shell dispatch
func withShell(fn func(wshell *ole.IDispatch) error) error {
	// COM is thread-bound
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); ok {
			code := oleErr.Code()
			if code != 0 && code != 1 { // S_OK=0, S_FALSE=1
				return fmt.Errorf("COM initialization failed: %s", oleErrorString(err))
			}
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return fmt.Errorf("cannot create WScript.Shell object: %s", oleErrorString(err))
	}
	defer unknown.Release()

	wshell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("cannot get shell interface: %s", oleErrorString(err))
	}
	defer wshell.Release()

	return fn(wshell)
}

// ReadShortcut loads the fields of an existing .lnk file
func (s *shellManager) ReadShortcut(path string) (shell.Shortcut, error) {
	var out shell.Shortcut

	if _, err := os.Stat(path); err != nil {
		return out, fmt.Errorf("shortcut not found: %w", err)
	}

	err := withShell(func(wshell *ole.IDispatch) error {
		v, err := oleutil.CallMethod(wshell, "CreateShortcut", path)
		if err != nil {
			return fmt.Errorf("cannot open shortcut: %s", oleErrorString(err))
		}

		lnk := v.ToIDispatch()
		defer lnk.Release()

		str := func(name string) (string, error) {
			p, err := oleutil.GetProperty(lnk, name)
			if err != nil {
				return "", fmt.Errorf("cannot read %s: %s", name, oleErrorString(err))
			}
			defer p.Clear()

			return p.ToString(), nil
		}

		if out.Target, err = str("TargetPath"); err != nil {
			return err
		}

		if out.WorkingDir, err = str("WorkingDirectory"); err != nil {
			return err
		}

		if out.Args, err = str("Arguments"); err != nil {
			return err
		}

		if out.Description, err = str("Description"); err != nil {
			return err
		}

		if out.Hotkey, err = str("Hotkey"); err != nil {
			return err
		}

		icon, err := str("IconLocation")
		if err != nil {
			return err
		}

		out.Icon, out.IconNumber = shell.ParseIconLocation(icon)

		style, err := oleutil.GetProperty(lnk, "WindowStyle")
		if err != nil {
			return fmt.Errorf("cannot read WindowStyle: %s", oleErrorString(err))
		}
		defer style.Clear()

		out.RunState = shell.RunStateFromShowCmd(int(variantInt(style)))

		return nil
	})

	return out, err
}

// CreateShortcut writes a .lnk file, replacing any existing one
func (s *shellManager) CreateShortcut(path string, sc shell.Shortcut) error {
	s.log.Debug("Creating shortcut", slog.String("path", path), slog.String("target", sc.Target))

	return withShell(func(wshell *ole.IDispatch) error {
		v, err := oleutil.CallMethod(wshell, "CreateShortcut", path)
		if err != nil {
			return fmt.Errorf("cannot create shortcut object: %s", oleErrorString(err))
		}

		lnk := v.ToIDispatch()
		defer lnk.Release()

		props := []struct {
			name  string
			value any
			set   bool
		}{
			{"TargetPath", sc.Target, true},
			{"WorkingDirectory", sc.WorkingDir, sc.WorkingDir != ""},
			{"Arguments", sc.Args, sc.Args != ""},
			{"Description", sc.Description, sc.Description != ""},
			{"IconLocation", shell.FormatIconLocation(sc.Icon, sc.IconNumber), sc.Icon != ""},
			{"Hotkey", shell.FormatHotkey(sc.Hotkey), shell.FormatHotkey(sc.Hotkey) != ""},
			{"WindowStyle", int32(shell.ShowCmdFromRunState(sc.RunState)), true},
		}

		for _, p := range props {
			if !p.set {
				continue
			}

			if _, err := oleutil.PutProperty(lnk, p.name, p.value); err != nil {
				return fmt.Errorf("cannot set %s: %s", p.name, oleErrorString(err))
			}
		}

		if _, err := oleutil.CallMethod(lnk, "Save"); err != nil {
			return fmt.Errorf("cannot save shortcut: %s", oleErrorString(err))
		}

		return nil
	})
}

// variantInt converts the integer variants WScript returns
func variantInt(v *ole.VARIANT) int64 {
	switch n := v.Value().(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int16:
		return int64(n)
	case uint32:
		return int64(n)
	case int:
		return int64(n)
	default:
		return 0
	}
}

// oleErrorString extracts a meaningful error message from OLE errors
func oleErrorString(err error) string {
	if err == nil {
		return "unknown error"
	}

	if oleErr, ok := err.(*ole.OleError); ok {
		return fmt.Sprintf("%s (HRESULT: 0x%08X)", oleErr.Error(), uint32(oleErr.Code()))
	}

	return err.Error()
}

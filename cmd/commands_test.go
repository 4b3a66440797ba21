package cmd

import (
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/autoprim/internal/errorlevel"
	"github.com/Norgate-AV/autoprim/internal/mouse"
	"github.com/Norgate-AV/autoprim/internal/pixel"
	"github.com/Norgate-AV/autoprim/internal/process"
	"github.com/Norgate-AV/autoprim/internal/shell"
	"github.com/Norgate-AV/autoprim/internal/testutil"
	"github.com/Norgate-AV/autoprim/internal/window"
)

func TestExpandCmd(t *testing.T) {
	setupTest(t)

	tests := []struct {
		source, pattern, want string
	}{
		{"report.txt", "*.bak", "report.bak"},
		{"report.txt", `C:\backup\*.*`, `C:\backup\report.txt`},
		{"a.b.c", "*.*.txt", "a.b..txt"},
		{"report.txt", "fixed.dat", "fixed.dat"},
	}

	for _, tt := range tests {
		out, _, err := execute(t, "expand", tt.source, tt.pattern)
		require.NoError(t, err)
		assert.Equal(t, tt.want+"\n", out, "expand %s %s", tt.source, tt.pattern)
	}
}

func TestMouseMoveCmd_Instant(t *testing.T) {
	mp := setupTest(t)

	_, _, err := execute(t, "mousemove", "100", "200", "--speed", "0", "--coord-mode", "screen")
	require.NoError(t, err)

	require.Len(t, mp.Pointer.Moves, 1)
	assert.Equal(t, mouse.Point{X: mouse.Normalize(100, 1920), Y: mouse.Normalize(200, 1080)}, mp.Pointer.Moves[0])
}

func TestMouseMoveCmd_WindowCoordinates(t *testing.T) {
	mp := setupTest(t)
	mp.Pointer.WithForegroundWindow(50, 60)

	_, _, err := execute(t, "mousemove", "10", "20", "--speed", "0")
	require.NoError(t, err)

	last, ok := mp.Pointer.LastMove()
	require.True(t, ok)
	assert.Equal(t, mouse.Point{X: mouse.Normalize(60, 1920), Y: mouse.Normalize(80, 1080)}, last)
}

func TestMouseMoveCmd_GradualFromConfig(t *testing.T) {
	mp := setupTest(t)
	mp.Pointer.WithCursor(0, 0)

	path := testutil.CreateTestFile(t, t.TempDir(), "config.yaml",
		"mouse:\n  speed: 5\n  delay: 0s\n  coord_mode: screen\n")

	_, _, err := execute(t, "mousemove", "300", "300", "--config", path)
	require.NoError(t, err)

	assert.Greater(t, len(mp.Pointer.Moves), 1, "Configured speed should move in steps")

	last, ok := mp.Pointer.LastMove()
	require.True(t, ok)
	assert.Equal(t, mouse.Point{X: mouse.Normalize(300, 1920), Y: mouse.Normalize(300, 1080)}, last)
}

func TestMouseMoveCmd_Relative(t *testing.T) {
	mp := setupTest(t)
	mp.Pointer.WithCursor(500, 400)

	_, _, err := execute(t, "mousemove", "--relative", "--speed", "0", "--", "-10", "5")
	require.NoError(t, err)

	last, ok := mp.Pointer.LastMove()
	require.True(t, ok)
	assert.Equal(t, mouse.Point{X: mouse.Normalize(490, 1920), Y: mouse.Normalize(405, 1080)}, last)
}

func TestMouseMoveCmd_InvalidInput(t *testing.T) {
	mp := setupTest(t)

	_, _, err := execute(t, "mousemove", "ten", "20")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid x coordinate")

	_, _, err = execute(t, "mousemove", "10", "20", "--coord-mode", "client")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown coord_mode")

	assert.Empty(t, mp.Pointer.Moves)
}

func TestProcessExistCmd(t *testing.T) {
	mp := setupTest(t)
	mp.Processes.Records = []process.Record{
		{PID: 4, Path: "System"},
		{PID: 1234, Path: `C:\Windows\notepad.exe`},
	}

	out, _, err := execute(t, "process", "exist", "NOTEPAD.EXE")
	require.NoError(t, err)
	assert.Equal(t, "1234\n", out)

	out, _, err = execute(t, "process", "exist", "4")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	out, _, err = execute(t, "process", "exist", "calc.exe")
	require.Error(t, err)
	assert.Equal(t, "0\n", out)
	assert.Equal(t, errorlevel.Failure, errorlevel.ExitCode(err))
	assert.True(t, errorlevel.Silent(err), "Not found should not print an error")
}

func TestProcessCloseCmd(t *testing.T) {
	mp := setupTest(t)
	mp.Processes.Records = []process.Record{{PID: 1234, Path: "notepad.exe"}}

	out, _, err := execute(t, "process", "close", "notepad.exe")
	require.NoError(t, err)
	assert.Equal(t, "1234\n", out)
	assert.Equal(t, []uint32{1234}, mp.Controller.Terminated)
	assert.Empty(t, mp.Processes.Records)
}

func TestProcessCloseCmd_Failures(t *testing.T) {
	mp := setupTest(t)
	mp.Processes.Records = []process.Record{{PID: 77, Path: "locked.exe"}}
	mp.Controller.WithFailure(77, errors.New("access denied"))

	out, _, err := execute(t, "process", "close", "locked.exe")
	require.Error(t, err)
	assert.Equal(t, "0\n", out)
	assert.Contains(t, err.Error(), "access denied")

	out, _, err = execute(t, "process", "close", "missing.exe")
	require.Error(t, err)
	assert.Equal(t, "0\n", out)
	assert.True(t, errorlevel.Silent(err))
}

func TestProcessListCmd(t *testing.T) {
	mp := setupTest(t)
	mp.Processes.Records = []process.Record{
		{PID: 4, Path: "System"},
		{PID: 88, Path: "/usr/bin/bash"},
	}

	out, _, err := execute(t, "process", "list")
	require.NoError(t, err)
	assert.Equal(t, "4\tSystem\n88\tbash\n", out)
}

func TestProcessListCmd_EnumerationError(t *testing.T) {
	mp := setupTest(t)
	mp.Processes.WithError(testutil.ErrEnumeration)

	_, _, err := execute(t, "process", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, testutil.ErrEnumeration)
}

func TestProcessWaitCmds(t *testing.T) {
	mp := setupTest(t)
	mp.Processes.Records = []process.Record{{PID: 9, Path: "setup.exe"}}

	out, _, err := execute(t, "process", "wait", "setup.exe", "--timeout", "1s")
	require.NoError(t, err)
	assert.Equal(t, "9\n", out)

	_, _, err = execute(t, "process", "waitclose", "setup.exe", "--timeout", "20ms")
	require.Error(t, err, "Process never exits")
	assert.Equal(t, errorlevel.Failure, errorlevel.ExitCode(err))

	_, _, err = execute(t, "process", "waitclose", "other.exe", "--timeout", "20ms")
	require.NoError(t, err)
}

func TestProcessWaitCmd_ProcessExitsRightAfterAppearing(t *testing.T) {
	mp := setupTest(t)
	mp.Processes.Records = []process.Record{{PID: 12, Path: "installer.exe"}}
	mp.Processes.VanishAfter(1)

	out, _, err := execute(t, "process", "wait", "installer.exe", "--timeout", "1s")
	require.NoError(t, err)
	assert.Equal(t, "12\n", out, "The PID seen by the wait is printed")
	assert.Equal(t, 1, mp.Processes.WalkCalls, "The table is walked once")
}

func TestFileCopyCmd_ReportsFailureCount(t *testing.T) {
	setupTest(t)

	src := testutil.CreateTempDir(t)
	dest := testutil.CreateTempDir(t)

	testutil.CreateTestFile(t, src, "a.txt", "a")
	testutil.CreateTestFile(t, src, "b.txt", "b")
	testutil.CreateTestFile(t, src, "c.log", "c")
	testutil.CreateTestFile(t, dest, "a.txt", "old")

	_, _, err := execute(t, "file", "copy", filepath.Join(src, "*.txt"), dest)
	require.Error(t, err)
	assert.Equal(t, 1, errorlevel.ExitCode(err), "Existing a.txt should fail without --overwrite")

	data, err := os.ReadFile(filepath.Join(dest, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
	assert.NoFileExists(t, filepath.Join(dest, "c.log"))

	_, _, err = execute(t, "file", "copy", filepath.Join(src, "*.txt"), dest, "--overwrite")
	require.NoError(t, err)

	data, err = os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestFileMoveCmd_WildcardRename(t *testing.T) {
	setupTest(t)

	dir := testutil.CreateTempDir(t)
	testutil.CreateTestFile(t, dir, "one.txt", "1")
	testutil.CreateTestFile(t, dir, "two.txt", "2")

	_, _, err := execute(t, "file", "move", filepath.Join(dir, "*.txt"), filepath.Join(dir, "*.bak"))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "one.bak"))
	assert.FileExists(t, filepath.Join(dir, "two.bak"))
	assert.NoFileExists(t, filepath.Join(dir, "one.txt"))
}

func TestFileDirCmds(t *testing.T) {
	setupTest(t)

	root := testutil.CreateTempDir(t)
	created := filepath.Join(root, "x", "y")

	_, _, err := execute(t, "file", "createdir", created)
	require.NoError(t, err)
	assert.DirExists(t, created)

	testutil.CreateTestFile(t, created, "f.txt", "data")

	copied := filepath.Join(root, "copy")
	_, _, err = execute(t, "file", "copydir", filepath.Join(root, "x"), copied)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(copied, "y", "f.txt"))

	moved := filepath.Join(root, "moved")
	_, _, err = execute(t, "file", "movedir", copied, moved)
	require.NoError(t, err)
	assert.NoDirExists(t, copied)
	assert.FileExists(t, filepath.Join(moved, "y", "f.txt"))

	_, _, err = execute(t, "file", "removedir", moved)
	require.Error(t, err, "Non-empty directory needs --recurse")
	assert.DirExists(t, moved)

	_, _, err = execute(t, "file", "removedir", moved, "--recurse")
	require.NoError(t, err)
	assert.NoDirExists(t, moved)
}

func TestFileExistCmd(t *testing.T) {
	setupTest(t)

	dir := testutil.CreateTempDir(t)
	testutil.CreateTestFile(t, dir, "present.ini", "")

	_, _, err := execute(t, "file", "exist", filepath.Join(dir, "*.ini"))
	require.NoError(t, err)

	_, _, err = execute(t, "file", "exist", filepath.Join(dir, "absent.ini"))
	require.Error(t, err)
	assert.True(t, errorlevel.Silent(err))
}

func TestFileShellCmds(t *testing.T) {
	mp := setupTest(t)
	mp.Shell.WithVersion(`C:\app.exe`, "1.2.3.4")

	_, _, err := execute(t, "file", "recycle", `C:\temp\*.tmp`)
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\temp\*.tmp`}, mp.Shell.Recycled)

	_, _, err = execute(t, "file", "recycle-empty")
	require.NoError(t, err)
	_, _, err = execute(t, "file", "recycle-empty", `D:\`)
	require.NoError(t, err)
	assert.Equal(t, []string{"", `D:\`}, mp.Shell.Emptied)

	out, _, err := execute(t, "file", "version", `C:\app.exe`)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4\n", out)

	out, _, err = execute(t, "file", "version", `C:\none.exe`)
	require.Error(t, err)
	assert.Equal(t, "\n", out)
}

func TestFileRecycleCmd_Error(t *testing.T) {
	mp := setupTest(t)
	mp.Shell.RecycleErr = errors.New("shell error 0x2")

	_, _, err := execute(t, "file", "recycle", "x.tmp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shell error")
}

func TestShortcutCmds(t *testing.T) {
	mp := setupTest(t)

	_, _, err := execute(t, "shortcut", "create", "notepad.exe", "note.lnk",
		"--workdir", "work",
		"--args", "readme.txt",
		"--description", "Edit notes",
		"--icon", "shell32.dll",
		"--icon-number", "2",
		"--hotkey", "N",
		"--run-state", "max",
	)
	require.NoError(t, err)

	s := mp.Shell.Shortcuts["note.lnk"]
	assert.Equal(t, shell.Shortcut{
		Target:      "notepad.exe",
		WorkingDir:  "work",
		Args:        "readme.txt",
		Description: "Edit notes",
		Icon:        "shell32.dll",
		IconNumber:  2,
		Hotkey:      "N",
		RunState:    shell.RunMaximized,
	}, s)

	out, _, err := execute(t, "shortcut", "get", "note.lnk")
	require.NoError(t, err)
	assert.Contains(t, out, "target: notepad.exe\n")
	assert.Contains(t, out, "icon_number: 2\n")
	assert.Contains(t, out, "run_state: 3\n")

	_, _, err = execute(t, "shortcut", "create", "x.exe", "x.lnk", "--run-state", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid run state")

	_, _, err = execute(t, "shortcut", "get", "missing.lnk")
	require.Error(t, err)
}

func TestDownloadCmd(t *testing.T) {
	setupTest(t)

	agents := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents <- r.UserAgent()
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "out.bin")

	_, _, err := execute(t, "download", server.URL, dest, "--user-agent", "tester/1.0")
	require.NoError(t, err)
	assert.Equal(t, "tester/1.0", <-agents)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestDownloadCmd_HTTPError(t *testing.T) {
	setupTest(t)

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "out.bin")

	_, _, err := execute(t, "download", server.URL, dest)
	require.Error(t, err)
	assert.Equal(t, errorlevel.Failure, errorlevel.ExitCode(err))
	assert.NoFileExists(t, dest)
}

func TestPixelCmd(t *testing.T) {
	mp := setupTest(t)
	mp.Screen.WithPixel(10, 20, pixel.RGB(0x11, 0x22, 0x33))
	mp.Screen.WithPixel(110, 220, pixel.RGB(0xAA, 0xBB, 0xCC))
	mp.Screen.WithForegroundWindow(100, 200)

	out, _, err := execute(t, "pixel", "10", "20", "--coord-mode", "screen")
	require.NoError(t, err)
	assert.Equal(t, "0x332211\n", out)

	out, _, err = execute(t, "pixel", "10", "20", "--coord-mode", "screen", "--rgb")
	require.NoError(t, err)
	assert.Equal(t, "0x112233\n", out)

	out, _, err = execute(t, "pixel", "10", "20")
	require.NoError(t, err)
	assert.Equal(t, "0xCCBBAA\n", out, "Default mode is relative to the active window")

	_, _, err = execute(t, "pixel", "1", "1", "--coord-mode", "screen")
	require.Error(t, err)
	assert.ErrorIs(t, err, testutil.ErrNoPixel)
}

func newWindowFixture(t *testing.T) *testutil.MockPlatform {
	mp := setupTest(t)

	mp.Windows.
		WithWindow(0x100, "Setup Wizard", "#32770", 42).
		WithWindow(0x200, "Untitled - Notepad", "Notepad", 43).
		WithControlsForHwnd(0x100,
			window.Control{Hwnd: 1, Class: "Button", Text: "&Next"},
			window.Control{Hwnd: 2, Class: "Edit", Text: "hello"},
			window.Control{Hwnd: 3, Class: "ListBox", Items: []string{"alpha", "beta"}},
			window.Control{Hwnd: 4, Class: "Button", Text: "Cancel"},
		)

	return mp
}

func TestWinFindCmd(t *testing.T) {
	newWindowFixture(t)

	out, _, err := execute(t, "win", "find", "Setup")
	require.NoError(t, err)
	assert.Equal(t, "0x100\n", out)

	out, _, err = execute(t, "win", "find", "Notepad", "--match-mode", "2")
	require.NoError(t, err)
	assert.Equal(t, "0x200\n", out)

	out, _, err = execute(t, "win", "find", "ahk_class Notepad")
	require.NoError(t, err)
	assert.Equal(t, "0x200\n", out)

	out, _, err = execute(t, "win", "find", "Notepad")
	require.Error(t, err, "Starts-with is the default match mode")
	assert.Equal(t, "0x0\n", out)
	assert.True(t, errorlevel.Silent(err))

	_, _, err = execute(t, "win", "find", "Setup", "--match-mode", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid title match mode")
}

func TestWinFindCmd_MatchModeFromConfig(t *testing.T) {
	newWindowFixture(t)

	path := testutil.CreateTestFile(t, t.TempDir(), "config.yaml", "window:\n  title_match_mode: 3\n")

	_, _, err := execute(t, "win", "find", "Setup", "--config", path)
	require.Error(t, err, "Exact mode needs the full title")

	out, _, err := execute(t, "win", "find", "Setup Wizard", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "0x100\n", out)
}

func TestWinListCmd(t *testing.T) {
	newWindowFixture(t)

	out, _, err := execute(t, "win", "list")
	require.NoError(t, err)
	assert.Equal(t, "0x100\t42\t#32770\tSetup Wizard\n0x200\t43\tNotepad\tUntitled - Notepad\n", out)
}

func TestWinActivateCmd(t *testing.T) {
	mp := newWindowFixture(t)

	_, _, err := execute(t, "win", "activate", "ahk_pid 43")
	require.NoError(t, err)
	assert.Equal(t, []uintptr{0x200}, mp.Windows.SetForegroundCalls)

	mp.Windows.WithSetForegroundResult(false)

	_, _, err = execute(t, "win", "activate", "Setup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to activate")
}

func TestWinCloseCmd(t *testing.T) {
	mp := newWindowFixture(t)

	_, _, err := execute(t, "win", "close", "ahk_id 0x100")
	require.NoError(t, err)
	require.Len(t, mp.Windows.CloseWindowCalls, 1)
	assert.Equal(t, testutil.CloseWindowCall{Hwnd: 0x100, Title: "Setup Wizard"}, mp.Windows.CloseWindowCalls[0])

	mp.Windows.DisappearAfter(mp.Windows.EnumCalls() + 1)

	_, _, err = execute(t, "win", "close", "Untitled", "--timeout", "2s")
	require.NoError(t, err)
}

func TestWinWaitCmds(t *testing.T) {
	mp := newWindowFixture(t)

	out, _, err := execute(t, "win", "wait", "Setup", "--timeout", "1s")
	require.NoError(t, err)
	assert.Equal(t, "0x100\n", out)

	out, _, err = execute(t, "win", "wait", "Installer", "--timeout", "20ms")
	require.Error(t, err)
	assert.Equal(t, "0x0\n", out)
	assert.True(t, errorlevel.Silent(err), "A timeout is a plain ErrorLevel 1")

	_, _, err = execute(t, "win", "waitclose", "Setup", "--timeout", "20ms")
	require.Error(t, err)

	mp.Windows.DisappearAfter(0)

	_, _, err = execute(t, "win", "waitclose", "Setup", "--timeout", "1s")
	require.NoError(t, err)
}

func TestControlGetTextCmd(t *testing.T) {
	newWindowFixture(t)

	out, _, err := execute(t, "control", "gettext", "Edit1", "Setup")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	out, _, err = execute(t, "control", "gettext", "next", "Setup")
	require.NoError(t, err)
	assert.Equal(t, "&Next\n", out)

	out, _, err = execute(t, "control", "gettext", "ListBox1", "Setup")
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\n", out)

	_, _, err = execute(t, "control", "gettext", "Edit9", "Setup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `control "Edit9" not found`)
}

func TestControlListCmd(t *testing.T) {
	newWindowFixture(t)

	out, _, err := execute(t, "control", "list", "Setup")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"Button1\t&Next",
		"Edit1\thello",
		"ListBox1\talpha\\nbeta",
		"Button2\tCancel",
	}, lines)
}

func TestControlClickCmd(t *testing.T) {
	mp := newWindowFixture(t)

	_, _, err := execute(t, "control", "click", "Button2", "Setup")
	require.NoError(t, err)

	require.Len(t, mp.Windows.ClickCalls, 1)
	assert.Equal(t, uintptr(0x100), mp.Windows.ClickCalls[0].Parent)
	assert.Equal(t, uintptr(4), mp.Windows.ClickCalls[0].Control.Hwnd)

	mp.Windows.WithClickResult(false)

	_, _, err = execute(t, "control", "click", "Next", "Setup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to click Button1")

	_, _, err = execute(t, "control", "click", "Next", "Missing Window")
	require.Error(t, err)
	assert.True(t, errorlevel.Silent(err))
}

func TestRunCmd(t *testing.T) {
	mp := setupTest(t)
	mp.Launcher.WithPID(4321)

	out, _, err := execute(t, "run", "notepad.exe", "a.txt", "b.txt", "--workdir", `C:\work`, "--show", "min", "--verb", "edit")
	require.NoError(t, err)
	assert.Equal(t, "4321\n", out)

	require.Len(t, mp.Launcher.Calls, 1)
	assert.Equal(t, testutil.LaunchCall{
		Verb:    "edit",
		File:    "notepad.exe",
		Args:    "a.txt b.txt",
		Dir:     `C:\work`,
		ShowCmd: 7,
	}, mp.Launcher.Calls[0])

	mp.Launcher.WithError(errors.New("file not found"))

	out, _, err = execute(t, "run", "missing.exe")
	require.Error(t, err)
	assert.Equal(t, "0\n", out)
	assert.Contains(t, err.Error(), "file not found")
}

func TestSysinfoIPCmd(t *testing.T) {
	setupTest(t)

	old := addrSource
	addrSource = func() ([]net.Addr, error) {
		return []net.Addr{
			&net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)},
			&net.IPNet{IP: net.ParseIP("192.168.1.10"), Mask: net.CIDRMask(24, 32)},
			&net.IPNet{IP: net.ParseIP("10.0.0.5"), Mask: net.CIDRMask(8, 32)},
		}, nil
	}
	t.Cleanup(func() { addrSource = old })

	out, _, err := execute(t, "sysinfo", "ip")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.10\n", out)

	out, _, err = execute(t, "sysinfo", "ip", "2")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5\n", out)

	out, _, err = execute(t, "sysinfo", "ip", "3")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0\n", out)

	_, _, err = execute(t, "sysinfo", "ip", "zero")
	require.Error(t, err)
}

func TestSysinfoAdminCmd(t *testing.T) {
	mp := setupTest(t)

	out, _, err := execute(t, "sysinfo", "admin")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	mp.Privileges.Elevated = true

	out, _, err = execute(t, "sysinfo", "admin")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

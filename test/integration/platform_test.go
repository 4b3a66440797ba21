//go:build integration
// +build integration

package integration

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/autoprim/internal/config"
	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/mouse"
	"github.com/Norgate-AV/autoprim/internal/platform"
	"github.com/Norgate-AV/autoprim/internal/process"
	"github.com/Norgate-AV/autoprim/internal/shell"
)

// strategies returns the enumerators this OS should offer
func strategies() []string {
	if runtime.GOOS == "windows" {
		return []string{config.StrategyToolhelp, config.StrategyPSAPI}
	}

	return []string{config.StrategyProcfs}
}

// newPlatform creates the real platform or skips the test
func newPlatform(t *testing.T, strategy string) *platform.Platform {
	t.Helper()

	p, err := platform.New(logger.NewNoOpLogger(), platform.Options{Strategy: strategy})
	if errors.Is(err, platform.ErrUnsupported) {
		t.Skipf("Strategy %s not available: %v", strategy, err)
	}

	require.NoError(t, err, "Should create platform")
	return p
}

// TestIntegration_ResolveSelf finds the test binary by PID and by name with every enumerator
func TestIntegration_ResolveSelf(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	self := filepath.Base(exe)
	pid := strconv.Itoa(os.Getpid())

	for _, strategy := range strategies() {
		t.Run(strategy, func(t *testing.T) {
			p := newPlatform(t, strategy)

			enum, err := p.ProcessTable()
			require.NoError(t, err)
			assert.Equal(t, strategy, enum.Name())

			r := process.NewResolver(enum, logger.NewNoOpLogger())

			byPID, ok := r.Resolve(pid)
			require.True(t, ok, "Should find own PID %s", pid)
			assert.True(t, strings.EqualFold(self, byPID.Name), "Expected %s, got %s", self, byPID.Name)

			byName, ok := r.Resolve(strings.ToUpper(self))
			require.True(t, ok, "Should find own executable name %s", self)
			assert.NotZero(t, byName.PID)

			_, ok = r.Resolve("no-such-process-" + pid + ".exe")
			assert.False(t, ok)
		})
	}
}

// TestIntegration_MouseRoundTrip moves the pointer and reads it back
func TestIntegration_MouseRoundTrip(t *testing.T) {
	p := newPlatform(t, config.StrategyAuto)

	dev, err := p.Mouse()
	if errors.Is(err, platform.ErrUnsupported) {
		t.Skip("No mouse on this platform")
	}
	require.NoError(t, err)

	ox, oy := dev.CursorPos()
	defer mouse.NewMover(dev, 0, logger.NewNoOpLogger()).Move(ox, oy, mouse.MoveOptions{CoordMode: mouse.CoordScreen})

	mover := mouse.NewMover(dev, 0, logger.NewNoOpLogger())

	mover.Move(40, 50, mouse.MoveOptions{Speed: 0, CoordMode: mouse.CoordScreen})
	x, y := dev.CursorPos()
	assert.InDelta(t, 40, x, 1)
	assert.InDelta(t, 50, y, 1)

	mover.Move(120, 90, mouse.MoveOptions{Speed: 10, CoordMode: mouse.CoordScreen})
	x, y = dev.CursorPos()
	assert.InDelta(t, 120, x, 1)
	assert.InDelta(t, 90, y, 1)
}

// TestIntegration_ShortcutRoundTrip writes a .lnk file and reads it back
func TestIntegration_ShortcutRoundTrip(t *testing.T) {
	p := newPlatform(t, config.StrategyAuto)

	sh, err := p.ShellManager()
	if errors.Is(err, platform.ErrUnsupported) {
		t.Skip("No shell services on this platform")
	}
	require.NoError(t, err)

	target := filepath.Join(os.Getenv("SystemRoot"), "notepad.exe")
	lnk := filepath.Join(t.TempDir(), "notepad.lnk")

	want := shell.Shortcut{
		Target:      target,
		WorkingDir:  t.TempDir(),
		Args:        "readme.txt",
		Description: "autoprim test shortcut",
		Icon:        target,
		IconNumber:  1,
		RunState:    shell.RunMinimized,
	}

	require.NoError(t, sh.CreateShortcut(lnk, want))
	require.FileExists(t, lnk)

	got, err := sh.ReadShortcut(lnk)
	require.NoError(t, err)

	assert.True(t, strings.EqualFold(want.Target, got.Target))
	assert.Equal(t, want.Args, got.Args)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.IconNumber, got.IconNumber)
	assert.Equal(t, want.RunState, got.RunState)
}

// TestIntegration_FileVersion reads the version of a system DLL
func TestIntegration_FileVersion(t *testing.T) {
	p := newPlatform(t, config.StrategyAuto)

	sh, err := p.ShellManager()
	if errors.Is(err, platform.ErrUnsupported) {
		t.Skip("No shell services on this platform")
	}
	require.NoError(t, err)

	v, err := sh.FileVersion(filepath.Join(os.Getenv("SystemRoot"), "System32", "kernel32.dll"))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`), v)
}

// TestIntegration_WindowsEnumerate lists visible top-level windows
func TestIntegration_WindowsEnumerate(t *testing.T) {
	p := newPlatform(t, config.StrategyAuto)

	wm, err := p.WindowManager()
	if errors.Is(err, platform.ErrUnsupported) {
		t.Skip("No window manager on this platform")
	}
	require.NoError(t, err)

	for _, w := range wm.EnumerateWindows() {
		assert.NotZero(t, w.Hwnd)
		assert.NotEmpty(t, w.Class, "Every window has a class")
	}
}

package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/autoprim/internal/shell"
)

func TestFormatVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.2.3.4", shell.FormatVersion(0x00010002, 0x00030004))
	assert.Equal(t, "10.0.19041.3636", shell.FormatVersion(10<<16, 19041<<16|3636))
	assert.Equal(t, "0.0.0.0", shell.FormatVersion(0, 0))
	assert.Equal(t, "65535.65535.65535.65535", shell.FormatVersion(0xFFFFFFFF, 0xFFFFFFFF))
}

func TestParseIconLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		loc      string
		wantPath string
		wantNum  int
	}{
		{`C:\Windows\notepad.exe,0`, `C:\Windows\notepad.exe`, 1},
		{`C:\Windows\shell32.dll,3`, `C:\Windows\shell32.dll`, 4},
		{`C:\icons\app.ico`, `C:\icons\app.ico`, 1},
		{`,0`, "", 0},
		{"", "", 0},
		{`C:\a,b\file.ico`, `C:\a,b\file.ico`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.loc, func(t *testing.T) {
			t.Parallel()

			path, num := shell.ParseIconLocation(tt.loc)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantNum, num)
		})
	}
}

func TestFormatIconLocation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `C:\x.dll,2`, shell.FormatIconLocation(`C:\x.dll`, 3))
	assert.Equal(t, `C:\x.dll,0`, shell.FormatIconLocation(`C:\x.dll`, 0))

	path, num := shell.ParseIconLocation(shell.FormatIconLocation(`C:\x.dll`, 5))
	assert.Equal(t, `C:\x.dll`, path)
	assert.Equal(t, 5, num)
}

func TestRunState(t *testing.T) {
	t.Parallel()

	assert.Equal(t, shell.RunNormal, shell.RunStateFromShowCmd(1))
	assert.Equal(t, shell.RunMaximized, shell.RunStateFromShowCmd(3))
	assert.Equal(t, shell.RunMinimized, shell.RunStateFromShowCmd(7))
	assert.Equal(t, shell.RunNormal, shell.RunStateFromShowCmd(0))
	assert.Equal(t, shell.RunState(4), shell.RunStateFromShowCmd(4), "unknown values pass through")

	assert.Equal(t, 7, shell.ShowCmdFromRunState(shell.RunMinimized))
	assert.Equal(t, 1, shell.ShowCmdFromRunState(0))

	assert.Equal(t, "maximized", shell.RunMaximized.String())
	assert.Equal(t, "4", shell.RunState(4).String())
}

func TestParseRunState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want shell.RunState
	}{
		{"", shell.RunNormal},
		{"normal", shell.RunNormal},
		{"Max", shell.RunMaximized},
		{"minimized", shell.RunMinimized},
		{"3", shell.RunMaximized},
		{" 7 ", shell.RunMinimized},
	}

	for _, tt := range tests {
		got, err := shell.ParseRunState(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := shell.ParseRunState("sideways")
	assert.Error(t, err)

	_, err = shell.ParseRunState("-1")
	assert.Error(t, err)
}

func TestFormatHotkey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ctrl+Alt+K", shell.FormatHotkey("k"))
	assert.Equal(t, "Ctrl+Alt+F5", shell.FormatHotkey("Shift+F5"))
	assert.Empty(t, shell.FormatHotkey(""))
	assert.Empty(t, shell.FormatHotkey("Ctrl+"))
}

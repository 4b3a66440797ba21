package testutil

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Norgate-AV/autoprim/internal/pixel"
	"github.com/Norgate-AV/autoprim/internal/platform"
	"github.com/Norgate-AV/autoprim/internal/shell"
)

// ErrNoPixel is returned by MockScreen for coordinates it was not given
var ErrNoPixel = errors.New("no pixel configured")

// MockScreen implements pixel.Source over a sparse map of colors
type MockScreen struct {
	Pixels    map[[2]int]pixel.Color
	WindowX   int
	WindowY   int
	HasWindow bool
}

func NewMockScreen() *MockScreen {
	return &MockScreen{Pixels: make(map[[2]int]pixel.Color)}
}

func (m *MockScreen) PixelAt(x, y int) (pixel.Color, error) {
	c, ok := m.Pixels[[2]int{x, y}]
	if !ok {
		return 0, ErrNoPixel
	}

	return c, nil
}

func (m *MockScreen) ForegroundOrigin() (int, int, bool) {
	return m.WindowX, m.WindowY, m.HasWindow
}

func (m *MockScreen) WithPixel(x, y int, c pixel.Color) *MockScreen {
	m.Pixels[[2]int{x, y}] = c
	return m
}

func (m *MockScreen) WithForegroundWindow(x, y int) *MockScreen {
	m.WindowX, m.WindowY, m.HasWindow = x, y, true
	return m
}

// MockController implements interfaces.ProcessController. When Table is
// set, terminated processes are removed from it.
type MockController struct {
	mu sync.Mutex

	Terminated []uint32
	Failing    map[uint32]error
	Table      *MockEnumerator
}

func NewMockController() *MockController {
	return &MockController{Failing: make(map[uint32]error)}
}

func (m *MockController) Terminate(pid uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.Failing[pid]; ok {
		return err
	}

	m.Terminated = append(m.Terminated, pid)

	if m.Table != nil {
		kept := m.Table.Records[:0]
		for _, r := range m.Table.Records {
			if r.PID != pid {
				kept = append(kept, r)
			}
		}

		m.Table.Records = kept
	}

	return nil
}

func (m *MockController) WithFailure(pid uint32, err error) *MockController {
	m.Failing[pid] = err
	return m
}

// MockShell implements interfaces.ShellManager backed by in-memory state
type MockShell struct {
	Recycled   []string
	Emptied    []string
	Versions   map[string]string
	Shortcuts  map[string]shell.Shortcut
	RecycleErr error
}

func NewMockShell() *MockShell {
	return &MockShell{
		Recycled:  []string{},
		Emptied:   []string{},
		Versions:  make(map[string]string),
		Shortcuts: make(map[string]shell.Shortcut),
	}
}

func (m *MockShell) Recycle(pattern string) error {
	if m.RecycleErr != nil {
		return m.RecycleErr
	}

	m.Recycled = append(m.Recycled, pattern)
	return nil
}

func (m *MockShell) EmptyRecycleBin(drive string) error {
	m.Emptied = append(m.Emptied, drive)
	return nil
}

func (m *MockShell) FileVersion(path string) (string, error) {
	v, ok := m.Versions[path]
	if !ok {
		return "", fmt.Errorf("no version information in %s", path)
	}

	return v, nil
}

func (m *MockShell) ReadShortcut(path string) (shell.Shortcut, error) {
	s, ok := m.Shortcuts[path]
	if !ok {
		return shell.Shortcut{}, fmt.Errorf("shortcut not found: %s", path)
	}

	return s, nil
}

func (m *MockShell) CreateShortcut(path string, s shell.Shortcut) error {
	m.Shortcuts[path] = s
	return nil
}

func (m *MockShell) WithVersion(path, version string) *MockShell {
	m.Versions[path] = version
	return m
}

func (m *MockShell) WithShortcut(path string, s shell.Shortcut) *MockShell {
	m.Shortcuts[path] = s
	return m
}

// MockLauncher implements interfaces.Launcher
type MockLauncher struct {
	Calls []LaunchCall
	PID   uint32
	Err   error
}

type LaunchCall struct {
	Verb    string
	File    string
	Args    string
	Dir     string
	ShowCmd int
}

func NewMockLauncher() *MockLauncher {
	return &MockLauncher{Calls: []LaunchCall{}}
}

func (m *MockLauncher) Launch(verb, file, args, dir string, showCmd int) (uint32, error) {
	m.Calls = append(m.Calls, LaunchCall{verb, file, args, dir, showCmd})
	if m.Err != nil {
		return 0, m.Err
	}

	return m.PID, nil
}

func (m *MockLauncher) WithPID(pid uint32) *MockLauncher {
	m.PID = pid
	return m
}

func (m *MockLauncher) WithError(err error) *MockLauncher {
	m.Err = err
	return m
}

// MockPrivileges implements interfaces.PrivilegeChecker
type MockPrivileges struct {
	Elevated bool
}

func (m *MockPrivileges) IsElevated() bool { return m.Elevated }

// MockPlatform bundles one mock per service so tests can configure them
// and then hand Platform() to the code under test
type MockPlatform struct {
	Pointer    *MockPointer
	Screen     *MockScreen
	Processes  *MockEnumerator
	Controller *MockController
	Windows    *MockWindowManager
	Shell      *MockShell
	Launcher   *MockLauncher
	Privileges *MockPrivileges
}

func NewMockPlatform() *MockPlatform {
	table := NewMockEnumerator()
	ctrl := NewMockController()
	ctrl.Table = table

	return &MockPlatform{
		Pointer:    NewMockPointer(),
		Screen:     NewMockScreen(),
		Processes:  table,
		Controller: ctrl,
		Windows:    NewMockWindowManager(),
		Shell:      NewMockShell(),
		Launcher:   NewMockLauncher(),
		Privileges: &MockPrivileges{},
	}
}

// Platform returns a platform.Platform whose services are the mocks
func (m *MockPlatform) Platform() *platform.Platform {
	return &platform.Platform{
		Pointer:    m.Pointer,
		Pixels:     m.Screen,
		Processes:  m.Processes,
		Controller: m.Controller,
		Windows:    m.Windows,
		Controls:   m.Windows,
		Shell:      m.Shell,
		Launcher:   m.Launcher,
		Privileges: m.Privileges,
	}
}

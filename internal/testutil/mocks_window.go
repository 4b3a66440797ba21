package testutil

import (
	"sync"

	"github.com/Norgate-AV/autoprim/internal/window"
)

// MockWindowManager implements interfaces.WindowManager and
// interfaces.ControlReader and records all calls for verification
type MockWindowManager struct {
	mu sync.Mutex

	Windows             []window.Info
	CloseWindowCalls    []CloseWindowCall
	SetForegroundCalls  []uintptr
	SetForegroundResult bool
	Controls            []window.Control
	ControlsMap         map[uintptr][]window.Control
	ClickCalls          []ClickCall
	ClickResult         bool

	enumCalls      int
	appearAfter    int
	appearing      []window.Info
	disappearAfter int
}

type CloseWindowCall struct {
	Hwnd  uintptr
	Title string
}

type ClickCall struct {
	Parent  uintptr
	Control window.Control
}

func NewMockWindowManager() *MockWindowManager {
	return &MockWindowManager{
		Windows:             []window.Info{},
		CloseWindowCalls:    []CloseWindowCall{},
		SetForegroundCalls:  []uintptr{},
		SetForegroundResult: true,
		Controls:            []window.Control{},
		ControlsMap:         make(map[uintptr][]window.Control),
		ClickResult:         true,
		disappearAfter:      -1,
	}
}

func (m *MockWindowManager) EnumerateWindows() []window.Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enumCalls++

	if len(m.appearing) > 0 && m.enumCalls > m.appearAfter {
		m.Windows = append(m.Windows, m.appearing...)
		m.appearing = nil
	}

	if m.disappearAfter >= 0 && m.enumCalls > m.disappearAfter {
		m.Windows = nil
	}

	out := make([]window.Info, len(m.Windows))
	copy(out, m.Windows)

	return out
}

func (m *MockWindowManager) SetForeground(hwnd uintptr) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetForegroundCalls = append(m.SetForegroundCalls, hwnd)
	return m.SetForegroundResult
}

func (m *MockWindowManager) CloseWindow(hwnd uintptr, title string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CloseWindowCalls = append(m.CloseWindowCalls, CloseWindowCall{hwnd, title})
}

func (m *MockWindowManager) CollectControls(hwnd uintptr) []window.Control {
	// Check if we have hwnd-specific controls
	if controls, ok := m.ControlsMap[hwnd]; ok {
		return controls
	}

	// Fall back to default Controls
	return m.Controls
}

func (m *MockWindowManager) ClickControl(parentHwnd uintptr, control window.Control) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ClickCalls = append(m.ClickCalls, ClickCall{parentHwnd, control})
	return m.ClickResult
}

// EnumCalls returns how many times the window list was read
func (m *MockWindowManager) EnumCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.enumCalls
}

// Helper methods for fluent configuration
func (m *MockWindowManager) WithWindows(windows ...window.Info) *MockWindowManager {
	m.Windows = windows
	return m
}

func (m *MockWindowManager) WithWindow(hwnd uintptr, title, class string, pid uint32) *MockWindowManager {
	m.Windows = append(m.Windows, window.Info{Hwnd: hwnd, Title: title, Class: class, PID: pid})
	return m
}

func (m *MockWindowManager) WithControl(class, text string) *MockWindowManager {
	m.Controls = append(m.Controls, window.Control{
		Hwnd:  uintptr(1000 + len(m.Controls)),
		Class: class,
		Text:  text,
	})

	return m
}

func (m *MockWindowManager) WithControlItems(class string, items []string) *MockWindowManager {
	m.Controls = append(m.Controls, window.Control{
		Hwnd:  uintptr(1000 + len(m.Controls)),
		Class: class,
		Items: items,
	})

	return m
}

func (m *MockWindowManager) WithControlsForHwnd(hwnd uintptr, controls ...window.Control) *MockWindowManager {
	m.ControlsMap[hwnd] = controls
	return m
}

func (m *MockWindowManager) WithSetForegroundResult(result bool) *MockWindowManager {
	m.SetForegroundResult = result
	return m
}

func (m *MockWindowManager) WithClickResult(result bool) *MockWindowManager {
	m.ClickResult = result
	return m
}

// AppearAfter adds windows to the list once it has been read n times
func (m *MockWindowManager) AppearAfter(n int, windows ...window.Info) *MockWindowManager {
	m.appearAfter = n
	m.appearing = windows
	return m
}

// DisappearAfter empties the list once it has been read n times
func (m *MockWindowManager) DisappearAfter(n int) *MockWindowManager {
	m.disappearAfter = n
	return m
}

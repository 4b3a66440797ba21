package testutil

import (
	"errors"

	"github.com/Norgate-AV/autoprim/internal/mouse"
	"github.com/Norgate-AV/autoprim/internal/process"
)

// MockPointer implements mouse.Device and records every emitted move
type MockPointer struct {
	X, Y       int
	Desktop    mouse.Rect
	WindowX    int
	WindowY    int
	HasWindow  bool
	Moves      []mouse.Point
	CursorCall int
}

func NewMockPointer() *MockPointer {
	return &MockPointer{
		Desktop: mouse.Rect{Right: 1920, Bottom: 1080},
		Moves:   []mouse.Point{},
	}
}

func (m *MockPointer) CursorPos() (int, int) {
	m.CursorCall++
	return m.X, m.Y
}

func (m *MockPointer) MoveAbsolute(x, y int) {
	m.Moves = append(m.Moves, mouse.Point{X: x, Y: y})
}

func (m *MockPointer) DesktopRect() mouse.Rect {
	return m.Desktop
}

func (m *MockPointer) ForegroundOrigin() (int, int, bool) {
	return m.WindowX, m.WindowY, m.HasWindow
}

// Helper methods for fluent configuration
func (m *MockPointer) WithCursor(x, y int) *MockPointer {
	m.X, m.Y = x, y
	return m
}

func (m *MockPointer) WithDesktop(width, height int) *MockPointer {
	m.Desktop = mouse.Rect{Right: width, Bottom: height}
	return m
}

func (m *MockPointer) WithForegroundWindow(x, y int) *MockPointer {
	m.WindowX, m.WindowY, m.HasWindow = x, y, true
	return m
}

// LastMove returns the final emitted position
func (m *MockPointer) LastMove() (mouse.Point, bool) {
	if len(m.Moves) == 0 {
		return mouse.Point{}, false
	}

	return m.Moves[len(m.Moves)-1], true
}

// MockEnumerator implements process.Enumerator over a fixed process table
type MockEnumerator struct {
	Records   []process.Record
	Err       error
	WalkCalls int
	Visited   int

	vanishAfter int
}

// ErrEnumeration is returned by MockEnumerator when configured to fail
var ErrEnumeration = errors.New("process enumeration unavailable")

func NewMockEnumerator(records ...process.Record) *MockEnumerator {
	return &MockEnumerator{Records: records}
}

func (m *MockEnumerator) Name() string { return "mock" }

func (m *MockEnumerator) Walk(yield func(process.Record) bool) error {
	m.WalkCalls++

	if m.Err != nil {
		return m.Err
	}

	if m.vanishAfter > 0 && m.WalkCalls > m.vanishAfter {
		m.Records = nil
	}

	for _, r := range m.Records {
		m.Visited++
		if !yield(r) {
			return nil
		}
	}

	return nil
}

func (m *MockEnumerator) WithError(err error) *MockEnumerator {
	m.Err = err
	return m
}

// VanishAfter empties the table once n walks have seen it
func (m *MockEnumerator) VanishAfter(n int) *MockEnumerator {
	m.vanishAfter = n
	return m
}

// Package mouse moves the pointer either instantly or in gradual steps that
// approximate a human drag.
package mouse

import (
	"log/slog"
	"time"

	"github.com/Norgate-AV/autoprim/internal/logger"
)

const (
	// MaxSpeed is the slowest accepted speed. Larger values are clamped.
	MaxSpeed = 100

	// DefaultSpeed is used when no speed is configured.
	DefaultSpeed = 2

	// MinSpeed is the smallest per-axis step in absolute units. It keeps slow
	// moves progressing once the remaining distance is short.
	MinSpeed = 32

	// AbsoluteRange is the upper bound of the absolute input coordinate space.
	AbsoluteRange = 65535
)

// Point is a position in absolute input coordinates.
type Point struct {
	X int
	Y int
}

// Rect is a screen rectangle in pixels.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Device is the pointer hardware the mover drives.
type Device interface {
	// CursorPos returns the current pointer position in screen pixels.
	CursorPos() (x, y int)
	// MoveAbsolute emits a move to (x, y) in absolute input coordinates.
	MoveAbsolute(x, y int)
	// DesktopRect returns the bounds of the primary desktop.
	DesktopRect() Rect
	// ForegroundOrigin returns the top-left corner of the active window.
	// ok is false when there is no usable foreground window.
	ForegroundOrigin() (x, y int, ok bool)
}

// CoordMode selects what non-relative coordinates are measured from.
type CoordMode int

const (
	// CoordWindow measures from the active window's top-left corner.
	CoordWindow CoordMode = iota
	// CoordScreen measures from the screen's top-left corner.
	CoordScreen
)

// MoveOptions controls a single move.
type MoveOptions struct {
	Speed     int
	Relative  bool // offset from the current pointer position
	CoordMode CoordMode
}

// Mover performs pointer moves against a Device.
type Mover struct {
	dev   Device
	log   logger.LoggerInterface
	delay time.Duration
	sleep func(time.Duration)
}

// NewMover creates a Mover that waits delay after every emitted move.
func NewMover(dev Device, delay time.Duration, log logger.LoggerInterface) *Mover {
	return &Mover{
		dev:   dev,
		log:   log,
		delay: delay,
		sleep: time.Sleep,
	}
}

// SetSleep replaces the delay function. Tests use it to avoid real sleeps.
func (m *Mover) SetSleep(fn func(time.Duration)) {
	m.sleep = fn
}

// Move moves the pointer to (x, y), given in screen pixels. It returns the
// number of move events emitted.
func (m *Mover) Move(x, y int, opts MoveOptions) int {
	speed := ClampSpeed(opts.Speed)

	switch {
	case opts.Relative:
		cx, cy := m.dev.CursorPos()
		x += cx
		y += cy
	case opts.CoordMode == CoordWindow:
		// A minimized or missing foreground window falls back to screen coordinates.
		if wx, wy, ok := m.dev.ForegroundOrigin(); ok {
			x += wx
			y += wy
		}
	}

	rect := m.dev.DesktopRect()
	target := Point{X: Normalize(x, rect.Right), Y: Normalize(y, rect.Bottom)}

	m.log.Debug("Moving mouse",
		slog.Int("x", x),
		slog.Int("y", y),
		slog.Int("speed", speed),
	)

	if speed == 0 {
		m.emit(target)
		return 1
	}

	cx, cy := m.dev.CursorPos()
	path := Path(Normalize(cx, rect.Right), Normalize(cy, rect.Bottom), target.X, target.Y, speed)

	for _, p := range path {
		m.emit(p)
	}

	m.log.Trace("Mouse move complete", slog.Int("steps", len(path)))
	return len(path)
}

func (m *Mover) emit(p Point) {
	m.dev.MoveAbsolute(p.X, p.Y)

	if m.delay > 0 {
		m.sleep(m.delay)
	}
}

// ClampSpeed bounds speed to [0, MaxSpeed].
func ClampSpeed(speed int) int {
	if speed < 0 {
		return 0
	}

	if speed > MaxSpeed {
		return MaxSpeed
	}

	return speed
}

// Normalize converts a pixel coordinate into the absolute input space for a
// desktop that is extent pixels wide (or tall). A degenerate extent leaves the
// value unchanged.
func Normalize(v, extent int) int {
	if extent <= 1 {
		return v
	}

	return (AbsoluteRange*v)/(extent-1) + 1
}

// Step advances cur toward target by one increment for the given speed. The
// increment is the remaining distance divided by speed, but never less than
// MinSpeed, and the result never overshoots target.
func Step(cur, target, speed int) int {
	if cur == target {
		return cur
	}

	if speed < 1 {
		return target
	}

	dist := target - cur
	if dist < 0 {
		dist = -dist
	}

	delta := max(dist/speed, MinSpeed)
	if delta >= dist {
		return target
	}

	if cur < target {
		return cur + delta
	}

	return cur - delta
}

// Path returns the positions a stepped move emits when travelling from
// (curX, curY) to (targetX, targetY). Both axes advance independently; the
// last point is always the target. An empty path means nothing moves.
func Path(curX, curY, targetX, targetY, speed int) []Point {
	var points []Point

	for curX != targetX || curY != targetY {
		curX = Step(curX, targetX, speed)
		curY = Step(curY, targetY, speed)
		points = append(points, Point{X: curX, Y: curY})
	}

	return points
}

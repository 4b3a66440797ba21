// Package window matches top-level windows and their child controls against
// script-style criteria such as "Untitled - Notepad ahk_class Notepad".
package window

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Info describes a top-level window.
type Info struct {
	Hwnd  uintptr
	Title string
	Class string
	PID   uint32
}

// MatchMode selects how a title is compared.
type MatchMode int

const (
	MatchStartsWith MatchMode = 1
	MatchContains   MatchMode = 2
	MatchExact      MatchMode = 3
)

// ParseMatchMode accepts 1, 2, 3 or the names "start", "contains", "exact".
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "start", "startswith":
		return MatchStartsWith, nil
	case "2", "contains":
		return MatchContains, nil
	case "3", "exact":
		return MatchExact, nil
	default:
		return 0, fmt.Errorf("invalid title match mode %q", s)
	}
}

// Criteria selects a window. Zero fields are not checked.
type Criteria struct {
	Title string
	Class string
	PID   uint32
	Hwnd  uintptr
	Mode  MatchMode
}

// ErrEmptyCriteria is returned when nothing would narrow the search.
var ErrEmptyCriteria = errors.New("window criteria are empty")

const (
	keyClass = "ahk_class"
	keyPID   = "ahk_pid"
	keyID    = "ahk_id"
)

// ParseCriteria splits "Title ahk_class X ahk_pid N ahk_id 0xH" into its
// parts. Text before the first keyword is the title. Keyword values end at the
// next space.
func ParseCriteria(s string, mode MatchMode) (Criteria, error) {
	c := Criteria{Mode: mode}
	if c.Mode == 0 {
		c.Mode = MatchStartsWith
	}

	fields := strings.Fields(s)
	var title []string

	for i := 0; i < len(fields); i++ {
		key := strings.ToLower(fields[i])

		switch key {
		case keyClass, keyPID, keyID:
		default:
			if len(title) == i {
				title = append(title, fields[i])
				continue
			}

			return Criteria{}, fmt.Errorf("unexpected %q in window criteria", fields[i])
		}

		if i+1 >= len(fields) {
			return Criteria{}, fmt.Errorf("%s needs a value", key)
		}

		i++
		value := fields[i]

		switch key {
		case keyClass:
			c.Class = value
		case keyPID:
			pid, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return Criteria{}, fmt.Errorf("invalid %s %q", keyPID, value)
			}

			c.PID = uint32(pid)
		case keyID:
			id, err := strconv.ParseUint(value, 0, 64)
			if err != nil {
				return Criteria{}, fmt.Errorf("invalid %s %q", keyID, value)
			}

			c.Hwnd = uintptr(id)
		}
	}

	if len(title) > 0 {
		c.Title = titleOf(s, title)
	}

	if c.Title == "" && c.Class == "" && c.PID == 0 && c.Hwnd == 0 {
		return Criteria{}, ErrEmptyCriteria
	}

	return c, nil
}

// titleOf recovers the original spacing of the title words from s.
func titleOf(s string, words []string) string {
	s = strings.TrimLeft(s, " \t")

	end := 0
	for _, w := range words {
		i := strings.Index(s[end:], w)
		if i < 0 {
			return strings.Join(words, " ")
		}

		end += i + len(w)
	}

	return s[:end]
}

// Matches reports whether w satisfies every set field of c.
func (c Criteria) Matches(w Info) bool {
	if c.Hwnd != 0 && w.Hwnd != c.Hwnd {
		return false
	}

	if c.Class != "" && w.Class != c.Class {
		return false
	}

	if c.PID != 0 && w.PID != c.PID {
		return false
	}

	if c.Title == "" {
		return true
	}

	switch c.Mode {
	case MatchContains:
		return strings.Contains(w.Title, c.Title)
	case MatchExact:
		return w.Title == c.Title
	default:
		return strings.HasPrefix(w.Title, c.Title)
	}
}

// Find returns the first window in list matching c.
func Find(list []Info, c Criteria) (Info, bool) {
	for _, w := range list {
		if c.Matches(w) {
			return w, true
		}
	}

	return Info{}, false
}

// Lister enumerates top-level windows.
type Lister interface {
	EnumerateWindows() []Info
}

// Wait polls until a window matching c appears, or until ctx ends.
func Wait(ctx context.Context, l Lister, c Criteria, interval time.Duration) (Info, error) {
	return poll(ctx, interval, func() (Info, bool) {
		return Find(l.EnumerateWindows(), c)
	})
}

// WaitClose polls until no window matches c, or until ctx ends.
func WaitClose(ctx context.Context, l Lister, c Criteria, interval time.Duration) error {
	_, err := poll(ctx, interval, func() (Info, bool) {
		_, found := Find(l.EnumerateWindows(), c)
		return Info{}, !found
	})

	return err
}

func poll(ctx context.Context, interval time.Duration, check func() (Info, bool)) (Info, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if w, ok := check(); ok {
			return w, nil
		}

		select {
		case <-ctx.Done():
			return Info{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Control describes a child control of a window.
type Control struct {
	Hwnd  uintptr
	Class string
	Text  string
	Items []string
}

// NamedControl pairs a control with its ClassNN name.
type NamedControl struct {
	Control
	ClassNN string
}

// ClassNN numbers controls per class in enumeration order: Button1,
// Button2, Edit1 and so on.
func ClassNN(children []Control) []NamedControl {
	counts := make(map[string]int)
	out := make([]NamedControl, 0, len(children))

	for _, c := range children {
		counts[c.Class]++
		out = append(out, NamedControl{Control: c, ClassNN: c.Class + strconv.Itoa(counts[c.Class])})
	}

	return out
}

// FindControl finds a control by ClassNN, then by its text either as written
// or with mnemonic ampersands removed. Both comparisons ignore case.
func FindControl(children []Control, name string) (NamedControl, bool) {
	named := ClassNN(children)

	for _, c := range named {
		if strings.EqualFold(c.ClassNN, name) {
			return c, true
		}
	}

	for _, c := range named {
		if strings.EqualFold(c.Text, name) || strings.EqualFold(stripMnemonic(c.Text), name) {
			return c, true
		}
	}

	return NamedControl{}, false
}

// stripMnemonic removes single ampersands and collapses "&&" to "&".
func stripMnemonic(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '&' {
			if i+1 < len(s) && s[i+1] == '&' {
				b.WriteByte('&')
				i++
			}

			continue
		}

		b.WriteByte(s[i])
	}

	return b.String()
}

// ControlText returns the text a script would read from c: ListBox items
// joined by newlines, or the control text.
func ControlText(c Control) string {
	if len(c.Items) > 0 {
		return strings.Join(c.Items, "\n")
	}

	return c.Text
}

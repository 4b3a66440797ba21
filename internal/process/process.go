// Package process finds running processes by PID or executable name.
package process

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/wildcard"
)

// Record is one entry of the OS process table.
type Record struct {
	PID  uint32
	Path string // executable name or full module path, as reported by the OS
}

// Name returns the executable base name of the record.
func (r Record) Name() string {
	return BaseName(r.Path)
}

// Enumerator walks the running processes. Walk calls yield once per process
// in OS order and stops early when yield returns false. A walk cannot be
// resumed once stopped.
type Enumerator interface {
	Name() string
	Walk(yield func(Record) bool) error
}

// Match is the outcome of a successful lookup.
type Match struct {
	PID  uint32
	Name string
}

// Resolver looks processes up by PID or name.
type Resolver struct {
	enum Enumerator
	log  logger.LoggerInterface
}

// NewResolver creates a Resolver over enum.
func NewResolver(enum Enumerator, log logger.LoggerInterface) *Resolver {
	return &Resolver{enum: enum, log: log}
}

// Resolve finds the process identified by token.
//
// A token made only of decimal digits is first treated as a PID. A PID match
// wins over any name match, wherever it appears in the table. Otherwise the
// first process whose base executable name equals token, ignoring case, is
// returned. ok is false when nothing matches or the table cannot be read.
func (r *Resolver) Resolve(token string) (Match, bool) {
	pid, isPID := ParsePID(token)

	var byName Match
	var nameFound bool
	var byPID Match
	var pidFound bool

	err := r.enum.Walk(func(rec Record) bool {
		if isPID && rec.PID == pid {
			byPID = Match{PID: rec.PID, Name: rec.Name()}
			pidFound = true
			return false
		}

		if !nameFound && strings.EqualFold(rec.Name(), token) {
			byName = Match{PID: rec.PID, Name: rec.Name()}
			nameFound = true

			// Keep scanning only if a PID match could still take precedence
			return isPID
		}

		return true
	})
	if err != nil {
		r.log.Debug("Process enumeration failed",
			slog.String("enumerator", r.enum.Name()),
			slog.Any("error", err),
		)

		return Match{}, false
	}

	switch {
	case pidFound:
		return byPID, true
	case nameFound:
		return byName, true
	default:
		return Match{}, false
	}
}

// List returns every process the enumerator reports.
func (r *Resolver) List() ([]Match, error) {
	var out []Match

	err := r.enum.Walk(func(rec Record) bool {
		out = append(out, Match{PID: rec.PID, Name: rec.Name()})
		return true
	})

	return out, err
}

// ParsePID reports whether token is a pure non-negative decimal number and, if
// so, its value. Zero is never a valid PID query, and a leading sign makes the
// token a name.
func ParsePID(token string) (uint32, bool) {
	if token == "" {
		return 0, false
	}

	for _, c := range token {
		if c < '0' || c > '9' {
			return 0, false
		}
	}

	v, err := strconv.ParseUint(token, 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}

	return uint32(v), true
}

// BaseName strips drive and directory components from an executable path.
func BaseName(path string) string {
	p := wildcard.SplitPath(path)
	return p.Base + p.Ext
}

//go:build !windows

package fileops

import (
	"errors"
	"syscall"
)

// errCrossDevice is what rename(2) reports for a rename across file systems
var errCrossDevice error = syscall.EXDEV

func isCrossDevice(err error) bool {
	return errors.Is(err, errCrossDevice)
}

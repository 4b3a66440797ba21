//go:build windows

package fileops

import (
	"errors"

	"golang.org/x/sys/windows"
)

// errCrossDevice is what MoveFileEx reports for a rename across volumes
var errCrossDevice error = windows.ERROR_NOT_SAME_DEVICE

func isCrossDevice(err error) bool {
	return errors.Is(err, errCrossDevice)
}

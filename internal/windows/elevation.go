//go:build windows

package windows

import (
	"unsafe"

	winsys "golang.org/x/sys/windows"
)

// IsElevated returns whether the current process is running with administrator privileges
func IsElevated() bool {
	elevated, err := isElevated()
	if err != nil {
		return false
	}

	return elevated
}

func isElevated() (bool, error) {
	token := winsys.Token(0)
	if err := winsys.OpenProcessToken(winsys.CurrentProcess(), winsys.TOKEN_QUERY, &token); err != nil {
		return false, err
	}
	defer token.Close()

	type tokenElevation struct {
		TokenIsElevated uint32
	}

	var elevation tokenElevation
	var outLen uint32
	if err := winsys.GetTokenInformation(
		token,
		winsys.TokenElevation,
		(*byte)(unsafe.Pointer(&elevation)),
		uint32(unsafe.Sizeof(elevation)),
		&outLen,
	); err != nil {
		return false, err
	}

	return elevation.TokenIsElevated != 0, nil
}

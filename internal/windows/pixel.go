//go:build windows

package windows

import (
	"fmt"

	"github.com/Norgate-AV/autoprim/internal/pixel"
)

// GetPixel reads the screen color at (x, y)
func GetPixel(x, y int) (pixel.Color, error) {
	hdc, _, err := procGetDC.Call(0)
	if hdc == 0 {
		return 0, fmt.Errorf("failed to get screen DC: %w", err)
	}

	defer func() {
		_, _, _ = procReleaseDC.Call(0, hdc)
	}()

	ret, _, _ := procGetPixel.Call(hdc, uintptr(x), uintptr(y))
	if uint32(ret) == CLR_INVALID {
		return 0, fmt.Errorf("pixel %d,%d is outside the screen", x, y)
	}

	return pixel.Color(ret), nil
}

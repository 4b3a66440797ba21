//go:build windows

package windows

import (
	"syscall"
	"unsafe"

	"github.com/Norgate-AV/autoprim/internal/window"
)

// ControlExtractor is a function that extracts text and items from a specific control type
type ControlExtractor func(hwnd uintptr) (text string, items []string)

// controlExtractors is a table-driven map of control-specific extraction logic
var controlExtractors = map[string]ControlExtractor{
	"Edit": func(hwnd uintptr) (string, []string) {
		return GetEditText(hwnd), nil
	},
	"ListBox": func(hwnd uintptr) (string, []string) {
		return GetWindowText(hwnd), GetListBoxItems(hwnd)
	},
}

// extractControlInfo extracts information from a control using the appropriate extractor
func extractControlInfo(hwnd uintptr, className string) window.Control {
	extractor, exists := controlExtractors[className]
	if !exists {
		return window.Control{
			Hwnd:  hwnd,
			Class: className,
			Text:  GetWindowText(hwnd),
		}
	}

	text, items := extractor(hwnd)
	return window.Control{
		Hwnd:  hwnd,
		Class: className,
		Text:  text,
		Items: items,
	}
}

// CollectControls returns every descendant control of hwnd in enumeration order
func CollectControls(hwnd uintptr) []window.Control {
	controls := []window.Control{}

	cb := func(chWnd uintptr, lparam uintptr) uintptr {
		controls = append(controls, extractControlInfo(chWnd, GetClassName(chWnd)))
		return 1
	}

	// EnumChildWindows: return value indicates success but errors aren't meaningful here
	_, _, _ = procEnumChildWindows.Call(hwnd, syscall.NewCallback(cb), 0)
	return controls
}

// GetListBoxItems retrieves all items from a ListBox control
func GetListBoxItems(hwnd uintptr) []string {
	countResult, _, _ := procSendMessageW.Call(hwnd, LB_GETCOUNT, 0, 0)
	count := int(int32(countResult))

	if count <= 0 {
		return nil
	}

	items := make([]string, 0, count)
	for i := range count {
		lenResult, _, _ := procSendMessageW.Call(hwnd, LB_GETTEXTLEN, uintptr(i), 0)
		itemLen := int(int32(lenResult))

		if itemLen < 0 {
			continue
		}

		buf := make([]uint16, itemLen+1)
		_, _, _ = procSendMessageW.Call(hwnd, LB_GETTEXT, uintptr(i), uintptr(unsafe.Pointer(&buf[0])))
		items = append(items, syscall.UTF16ToString(buf))
	}

	return items
}

// GetEditText retrieves the text from an Edit control
func GetEditText(hwnd uintptr) string {
	lengthResult, _, _ := procSendMessageW.Call(hwnd, WM_GETTEXTLENGTH, 0, 0)
	length := int(lengthResult)

	if length == 0 {
		return ""
	}

	buf := make([]uint16, length+1)
	_, _, _ = procSendMessageW.Call(hwnd, WM_GETTEXT, uintptr(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	return syscall.UTF16ToString(buf)
}

//go:build windows

package windows

import (
	"sync"
	"syscall"
)

var setConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")

// ConsoleCtrlHandler is a callback function for console control events
type ConsoleCtrlHandler func(ctrlType uint32) uintptr

var (
	handlerMu     sync.Mutex
	globalHandler ConsoleCtrlHandler
)

// consoleCallback is created once so the same pointer can be removed again
var consoleCallback = syscall.NewCallback(consoleCtrlHandlerCallback)

// SetConsoleCtrlHandler sets up a Windows console control handler
// This catches Ctrl+C, window close, logoff, and shutdown events.
// The returned func removes the handler and restores default handling.
func SetConsoleCtrlHandler(handler ConsoleCtrlHandler) (func(), error) {
	handlerMu.Lock()
	globalHandler = handler
	handlerMu.Unlock()

	ret, _, err := setConsoleCtrlHandler.Call(consoleCallback, 1) // TRUE - add handler
	if ret == 0 {
		handlerMu.Lock()
		globalHandler = nil
		handlerMu.Unlock()

		return func() {}, err
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			handlerMu.Lock()
			globalHandler = nil
			handlerMu.Unlock()

			_, _, _ = setConsoleCtrlHandler.Call(consoleCallback, 0) // FALSE - remove handler
		})
	}, nil
}

// consoleCtrlHandlerCallback is the actual callback that Windows calls
func consoleCtrlHandlerCallback(ctrlType uint32) uintptr {
	handlerMu.Lock()
	h := globalHandler
	handlerMu.Unlock()

	if h != nil {
		return h(ctrlType)
	}

	return 0 // FALSE - let default handler process it
}

// Console control event types
const (
	CTRL_C_EVENT        = 0
	CTRL_BREAK_EVENT    = 1
	CTRL_CLOSE_EVENT    = 2
	CTRL_LOGOFF_EVENT   = 5
	CTRL_SHUTDOWN_EVENT = 6
)

// GetCtrlTypeName returns a human-readable name for a control event type
func GetCtrlTypeName(ctrlType uint32) string {
	switch ctrlType {
	case CTRL_C_EVENT:
		return "CTRL_C"
	case CTRL_BREAK_EVENT:
		return "CTRL_BREAK"
	case CTRL_CLOSE_EVENT:
		return "CTRL_CLOSE"
	case CTRL_LOGOFF_EVENT:
		return "CTRL_LOGOFF"
	case CTRL_SHUTDOWN_EVENT:
		return "CTRL_SHUTDOWN"
	default:
		return "UNKNOWN"
	}
}

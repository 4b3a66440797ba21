// Package timeouts defines timeout and delay constants for automation commands.
package timeouts

import "time"

const (
	// Input Delays

	// MouseDelay is the default pause after every emitted mouse move. Target
	// applications that poll the cursor need a moment to observe each step.
	MouseDelay = 10 * time.Millisecond

	// Windows API Interaction Delays

	// WindowMessageDelay is the delay after sending window messages (WM_CLOSE,
	// BN_CLICKED, etc.) to allow the target application to process the message.
	WindowMessageDelay = 500 * time.Millisecond

	// FocusVerificationDelay allows time to verify that window focus has
	// successfully changed after an activate operation.
	FocusVerificationDelay = 250 * time.Millisecond

	// Process Timeouts

	// ProcessExitTimeout is the maximum time to wait for a process to go away
	// after it has been told to terminate.
	ProcessExitTimeout = 5 * time.Second

	// StatePollingInterval is the delay between checks in tight polling loops
	// when waiting for state changes.
	StatePollingInterval = 100 * time.Millisecond

	// Network Timeouts

	// DownloadTimeout bounds a whole download, from connect to the last byte.
	DownloadTimeout = 10 * time.Minute
)

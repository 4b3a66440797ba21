// Package platform selects the OS implementation of every automation service
// once per invocation.
package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Norgate-AV/autoprim/internal/config"
	"github.com/Norgate-AV/autoprim/internal/interfaces"
	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/process"
)

// ErrUnsupported is returned for services the current OS does not provide.
var ErrUnsupported = errors.New("not supported on this platform")

// Options configures New.
type Options struct {
	// Strategy forces a process enumerator: auto, toolhelp, psapi or procfs
	Strategy string
}

// Platform holds the services available on this OS. A nil field means the
// service is unsupported; use the accessor methods to get a descriptive error.
type Platform struct {
	Pointer    interfaces.PointerDevice
	Pixels     interfaces.PixelReader
	Processes  process.Enumerator
	Controller interfaces.ProcessController
	Windows    interfaces.WindowManager
	Controls   interfaces.ControlReader
	Shell      interfaces.ShellManager
	Launcher   interfaces.Launcher
	Privileges interfaces.PrivilegeChecker

	log logger.LoggerInterface
}

func unsupported(what string) error {
	return fmt.Errorf("%s: %w", what, ErrUnsupported)
}

func (p *Platform) Mouse() (interfaces.PointerDevice, error) {
	if p.Pointer == nil {
		return nil, unsupported("mouse input")
	}

	return p.Pointer, nil
}

func (p *Platform) Screen() (interfaces.PixelReader, error) {
	if p.Pixels == nil {
		return nil, unsupported("screen pixels")
	}

	return p.Pixels, nil
}

func (p *Platform) ProcessTable() (process.Enumerator, error) {
	if p.Processes == nil {
		return nil, unsupported("process enumeration")
	}

	return p.Processes, nil
}

func (p *Platform) ProcessControl() (interfaces.ProcessController, error) {
	if p.Controller == nil {
		return nil, unsupported("process control")
	}

	return p.Controller, nil
}

func (p *Platform) WindowManager() (interfaces.WindowManager, error) {
	if p.Windows == nil {
		return nil, unsupported("window management")
	}

	return p.Windows, nil
}

func (p *Platform) ControlReader() (interfaces.ControlReader, error) {
	if p.Controls == nil {
		return nil, unsupported("control access")
	}

	return p.Controls, nil
}

func (p *Platform) ShellManager() (interfaces.ShellManager, error) {
	if p.Shell == nil {
		return nil, unsupported("shell services")
	}

	return p.Shell, nil
}

func (p *Platform) ProgramLauncher() (interfaces.Launcher, error) {
	if p.Launcher == nil {
		return nil, unsupported("program launch")
	}

	return p.Launcher, nil
}

func (p *Platform) PrivilegeChecker() (interfaces.PrivilegeChecker, error) {
	if p.Privileges == nil {
		return nil, unsupported("privilege check")
	}

	return p.Privileges, nil
}

// New detects the OS services and picks the process enumerator.
func New(log logger.LoggerInterface, opts Options) (*Platform, error) {
	p := &Platform{log: log}

	if err := p.populate(opts); err != nil {
		return nil, err
	}

	if p.Processes != nil {
		log.Debug("Process enumerator selected", slog.String("enumerator", p.Processes.Name()))
	}

	return p, nil
}

// chooseStrategy resolves "auto" against what the OS offers. native lists
// the strategies available here, best first.
func chooseStrategy(requested string, native []string) (string, error) {
	if requested == "" || requested == config.StrategyAuto {
		if len(native) == 0 {
			return "", unsupported("process enumeration")
		}

		return native[0], nil
	}

	for _, s := range native {
		if s == requested {
			return s, nil
		}
	}

	return "", fmt.Errorf("process strategy %q: %w", requested, ErrUnsupported)
}

// InterruptContext returns a context cancelled on Ctrl+C, SIGTERM and, on
// Windows, console close, logoff and shutdown events.
func (p *Platform) InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	sigCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(sigCtx)

	log := p.log
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	release, err := registerConsoleHandler(ctx, cancel, log)
	if err != nil {
		log.Debug("Console control handler not installed", slog.Any("error", err))
	}

	return ctx, func() {
		release()
		cancel()
		stop()
	}
}

//go:build windows

package platform

import (
	"context"
	"log/slog"

	"github.com/Norgate-AV/autoprim/internal/config"
	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/windows"
)

func (p *Platform) populate(opts Options) error {
	api := windows.NewWindowsAPI(p.log)

	p.Pointer = api
	p.Pixels = api
	p.Controller = api
	p.Windows = api
	p.Controls = api
	p.Shell = api
	p.Launcher = api
	p.Privileges = api

	native := []string{config.StrategyPSAPI}
	if windows.ToolhelpAvailable() {
		native = []string{config.StrategyToolhelp, config.StrategyPSAPI}
	}

	strategy, err := chooseStrategy(opts.Strategy, native)
	if err != nil {
		return err
	}

	switch strategy {
	case config.StrategyToolhelp:
		p.Processes = windows.ToolhelpEnumerator{}
	default:
		p.Processes = windows.PSAPIEnumerator{}
	}

	return nil
}

func registerConsoleHandler(ctx context.Context, cancel context.CancelFunc, log logger.LoggerInterface) (func(), error) {
	return windows.SetConsoleCtrlHandler(consoleHandler(ctx, cancel, log))
}

// consoleHandler cancels ctx on console control events. Once ctx is done
// events fall through to the next handler.
func consoleHandler(ctx context.Context, cancel context.CancelFunc, log logger.LoggerInterface) windows.ConsoleCtrlHandler {
	return func(ctrlType uint32) uintptr {
		if ctx.Err() != nil {
			return 0
		}

		switch ctrlType {
		case windows.CTRL_C_EVENT, windows.CTRL_BREAK_EVENT, windows.CTRL_CLOSE_EVENT,
			windows.CTRL_LOGOFF_EVENT, windows.CTRL_SHUTDOWN_EVENT:
			log.Debug("Console control event", slog.String("event", windows.GetCtrlTypeName(ctrlType)))
			cancel()

			return 1 // TRUE - handled
		}

		return 0
	}
}

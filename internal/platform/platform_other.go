//go:build !windows

package platform

import (
	"context"

	"github.com/Norgate-AV/autoprim/internal/config"
	"github.com/Norgate-AV/autoprim/internal/logger"
	"github.com/Norgate-AV/autoprim/internal/process"
)

// populate wires the services available outside Windows: the process table
// is read from procfs when mounted, everything else is unsupported.
func (p *Platform) populate(opts Options) error {
	procfs := process.NewProcfsEnumerator("")

	var native []string
	if procfs.Available() {
		native = append(native, config.StrategyProcfs)
	}

	strategy, err := chooseStrategy(opts.Strategy, native)
	if err != nil {
		// No process table is not fatal; commands needing one report it
		if opts.Strategy == "" || opts.Strategy == config.StrategyAuto {
			return nil
		}

		return err
	}

	if strategy == config.StrategyProcfs {
		p.Processes = procfs
	}

	return nil
}

func registerConsoleHandler(context.Context, context.CancelFunc, logger.LoggerInterface) (func(), error) {
	return func() {}, nil
}

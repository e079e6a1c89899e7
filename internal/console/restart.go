package console

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bitsybox/internal/phase"
)

// Factory builds a console on a freshly reset device.
type Factory func() *Console

// RunWithRestarts runs consoles built by build until one ends without a
// fatal error. A fatal error power-cycles the console: the next attempt
// gets a new device and starts from the boot menu. At most restarts
// power-cycles happen; after that the fatal error is returned.
func RunWithRestarts(ctx context.Context, build Factory, restarts int, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	for attempt := 0; ; attempt++ {
		err := build().Run(ctx)
		switch {
		case err == nil:
			return nil
		case ctx.Err() != nil:
			logger.Debug("console stopped while failing", "err", err)
			return nil
		case !phase.IsFatal(err) || attempt >= restarts:
			return err
		}
		logger.Error("console crashed, restarting", "err", err, "restart", attempt+1, "of", restarts)
	}
}

package threading

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

type Logger interface {
	Warnf(format string, args ...any)
}

// WithSignal returns a context cancelled on SIGINT or SIGTERM. The run
// stops at the next batch boundary; committed batches and their
// checkpoints stay valid.
func WithSignal(parent context.Context, logger Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-signalChan:
			logger.Warnf("received %s, stopping after the current batch", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(signalChan)
		cancel()
	}
}

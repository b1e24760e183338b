package mapper

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// interruptible cancels ctx on Ctrl+C or a termination signal, so the running
// scan stops and the session returns to its menu.
func interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
}

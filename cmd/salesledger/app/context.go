package app

import (
	"context"
	"os/signal"
	"syscall"
)

// ContextWithSignals creates a context that is cancelled when the
// process receives an interrupt or termination signal.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Context is ContextWithSignals over context.Background().
func Context() (context.Context, context.CancelFunc) {
	return ContextWithSignals(context.Background())
}

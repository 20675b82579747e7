//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyContext cancels a running stage on Ctrl-C, SIGTERM, or when the
// controlling terminal goes away. A canceled render kills pandoc and a
// canceled upload stops between retries.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
}

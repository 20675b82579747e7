//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext cancels a running stage on Ctrl-C. Windows only delivers
// os.Interrupt through os/signal.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/lifecycle"
)

func main() {
	ctx := newSignalContext()

	// Receiving SIGPIPE turns a write to a closed stdout into EPIPE instead of killing the process.
	signal.Notify(make(chan os.Signal, 1), syscall.SIGPIPE)

	code := Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	ctx.Stop()
	os.Exit(code)
}

// newSignalContext cancels on the first SIGINT or SIGTERM; a second one exits at once.
func newSignalContext() *lifecycle.SignalContext {
	return lifecycle.NewSignalContext(context.Background(), lifecycle.WithForceExit(2))
}

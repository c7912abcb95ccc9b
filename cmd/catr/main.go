// File: cmd/catr/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"go.uber.org/zap"

	"github.com/xkilldash9x/catr/cmd"
	"github.com/xkilldash9x/catr/internal/observability"
)

// Function variables for mocking in tests.
var (
	osExit  = os.Exit
	execute = cmd.Execute
)

// main is the entry point of the application.
func main() {
	defer handlePanic()

	// Set up a context that listens for interrupt signals (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	code := exitCode(execute(ctx))
	stop()

	observability.Sync()
	osExit(code)
}

// exitCode maps the command result to the process exit status. Per-file
// failures never reach here as errors, so only configuration and output
// failures exit non-zero.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		// Graceful shutdown on Ctrl+C.
		return 0
	default:
		return 1
	}
}

// handlePanic logs an unexpected panic with its stack and exits with status 1.
func handlePanic() {
	if r := recover(); r != nil {
		observability.GetLogger().Error("catr panicked",
			zap.Any("panic", r),
			zap.ByteString("stack", debug.Stack()),
		)
		observability.Sync()
		fmt.Fprintf(os.Stderr, "catr: internal error: %v\n", r)
		osExit(1)
	}
}

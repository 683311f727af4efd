// File: cmd/env-sync/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"go.uber.org/zap"

	"github.com/xkilldash9x/env-sync/cmd"
	"github.com/xkilldash9x/env-sync/internal/observability"
)

const panicLogFile = "env-sync-panic.log"

// Function variables so tests can stub process-level side effects.
var (
	osWriteFile = os.WriteFile
	osExit      = os.Exit
	execute     = cmd.Execute
)

func main() {
	defer handlePanic()
	osExit(run())
}

// run executes the CLI under a context that is cancelled on SIGINT/SIGTERM
// and returns the process exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := execute(ctx)
	observability.Sync()
	return cmd.ExitCode(err)
}

// handlePanic turns an unrecovered panic into a logged failure and exit code 1.
func handlePanic() {
	r := recover()
	if r == nil {
		return
	}

	stackTrace := debug.Stack()
	panicMessage := fmt.Sprintf("panic: %v\n\n%s", r, stackTrace)

	if observability.Initialized() {
		observability.GetLogger().Error("Unexpected error",
			zap.String("panic", fmt.Sprint(r)),
			zap.ByteString("stack", stackTrace),
		)
		observability.Sync()
	}

	if err := osWriteFile(panicLogFile, []byte(panicMessage), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to write panic log: %v\n", err)
		fmt.Fprintf(os.Stderr, "Panic details:\n%s\n", panicMessage)
		osExit(1)
		return
	}

	fmt.Fprintf(os.Stderr, "Unexpected error: %v (details logged to %s)\n", r, panicLogFile)
	osExit(1)
}

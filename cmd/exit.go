package cmd

import (
	"context"
	"errors"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/env-sync/internal/config"
	"github.com/xkilldash9x/env-sync/internal/observability"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// ExitCode maps an error returned by Execute to a process exit code.
// An interrupted run exits cleanly.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return ExitOK
	}
	return ExitFailure
}

// isKnownError reports whether err is an expected failure that only needs a short message.
func isKnownError(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, config.ErrInvalidValue)
}

// reportError logs err at the detail its kind deserves. Before the logger
// exists (flag parsing errors) it falls back to the command's stderr.
func reportError(root *cobra.Command, err error) {
	if !observability.Initialized() {
		root.PrintErrln("Error:", err.Error())
		return
	}

	logger := observability.GetLogger()
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Interrupted by user.")
	case isKnownError(err):
		logger.WithOptions(zap.AddStacktrace(zap.FatalLevel)).Error(err.Error())
	default:
		logger.Error("Unexpected error", zap.Error(err))
	}
}

// File: cmd/helpers_test.go
package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/env-sync/internal/automation"
	"github.com/xkilldash9x/env-sync/internal/config"
	"github.com/xkilldash9x/env-sync/internal/observability"
)

// resetForTest isolates the global logger and the runner factory.
func resetForTest(t *testing.T) {
	t.Helper()
	observability.ResetForTest()
	original := runnerFactory
	t.Cleanup(func() {
		runnerFactory = original
		observability.ResetForTest()
	})
}

// initTestLogger points the global logger at a buffer using JSON output.
func initTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	observability.Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "test"}, zapcore.AddSync(&buf))
	return &buf
}

// executeCommand runs a fresh root command and returns everything it printed.
func executeCommand(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	err := ExecuteArgs(ctx, root, args)
	return out.String(), err
}

// logEntries decodes the JSON log lines written to buf.
func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), "log line: %s", scanner.Text())
		entries = append(entries, entry)
	}
	return entries
}

// findEntry returns the first log entry with the given message.
func findEntry(t *testing.T, entries []map[string]interface{}, msg string) map[string]interface{} {
	t.Helper()
	for _, e := range entries {
		if e["msg"] == msg {
			return e
		}
	}
	require.Failf(t, "log entry not found", "no entry with msg %q", msg)
	return nil
}

// stubSteps makes the root command run steps instead of the built-in sequence.
func stubSteps(steps ...automation.Step) {
	runnerFactory = func(logger *zap.Logger) *automation.Runner {
		return automation.New(automation.WithLogger(logger), automation.WithSteps(steps...))
	}
}

// createTempConfig writes content to a YAML file in a per-test directory.
func createTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "env-sync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// File: cmd/version.go
package cmd

// AppName is the human-readable name used in log banners.
const AppName = "Env Sync Tool"

// Version is the application version.
// This value is intended to be set at build time using ldflags.
// Example: go build -ldflags "-X github.com/xkilldash9x/env-sync/cmd.Version=1.0.1"
var Version = "1.0.0"

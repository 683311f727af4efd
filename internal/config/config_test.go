// File: internal/config/config_test.go
package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "medium", cfg.Difficulty)
	assert.Equal(t, 3, cfg.Rounds)
	assert.NotNil(t, cfg.Extra)
	assert.Empty(t, cfg.Extra)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "env-sync", cfg.Logger.ServiceName)
	assert.NoError(t, cfg.Validate())
}

func TestApplyFlags(t *testing.T) {
	base := NewDefaultConfig()
	base.Extra["seed"] = 7

	cfg := base.ApplyFlags(Flags{Verbose: true, DryRun: true})

	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.DryRun)
	assert.False(t, cfg.Debug)
	assert.True(t, cfg.DebugLogging())
	// Non-flag fields keep their defaults.
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, 3, cfg.Rounds)

	// The source config is left untouched, including its extra map.
	assert.False(t, base.Verbose)
	cfg.Extra["seed"] = 8
	assert.Equal(t, 7, base.Extra["seed"])
}

func TestDebugLogging(t *testing.T) {
	assert.False(t, Config{}.DebugLogging())
	assert.True(t, Config{Debug: true}.DebugLogging())
	assert.True(t, Config{Verbose: true}.DebugLogging())
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	t.Run("Core Validation", func(t *testing.T) {
		cfg := NewDefaultConfig()
		require.NoError(t, cfg.Validate())

		noRounds := *cfg
		noRounds.Rounds = 0
		err := noRounds.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "rounds must be a positive integer")

		noOutput := *cfg
		noOutput.OutputDir = ""
		err = noOutput.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "output_dir must not be empty")
	})

	t.Run("Logger Validation", func(t *testing.T) {
		valid := LoggerConfig{Level: "debug", Format: "json"}
		assert.NoError(t, valid.Validate())

		badFormat := valid
		badFormat.Format = "xml"
		err := badFormat.Validate()
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "logger.format must be 'console' or 'json'")

		badLevel := valid
		badLevel.Level = "loud"
		err = badLevel.Validate()
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "logger.level")

		badRotation := valid
		badRotation.LogFile = "env-sync.log"
		badRotation.MaxSize = 0
		err = badRotation.Validate()
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "logger.max_size")
	})
}

// -- Factory Function Tests --

func TestNewConfigFromViper(t *testing.T) {
	t.Run("Successful Load from YAML", func(t *testing.T) {
		yamlBytes := []byte(`
output_dir: /tmp/env-sync
difficulty: hard
rounds: 5
extra:
  region: eu-west-1
logger:
  level: debug
  format: json
`)
		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(bytes.NewBuffer(yamlBytes)))

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)

		assert.Equal(t, "/tmp/env-sync", cfg.OutputDir)
		assert.Equal(t, "hard", cfg.Difficulty)
		assert.Equal(t, 5, cfg.Rounds)
		assert.Equal(t, "eu-west-1", cfg.Extra["region"])
		assert.Equal(t, "debug", cfg.Logger.Level)
		assert.Equal(t, "json", cfg.Logger.Format)
		// Defaults survive for keys the file does not set.
		assert.Equal(t, "env-sync", cfg.Logger.ServiceName)
	})

	t.Run("Flag-only fields are not read from the file", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(bytes.NewBufferString("dryrun: true\nverbose: true\n")))

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)
		assert.False(t, cfg.DryRun)
		assert.False(t, cfg.Verbose)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("rounds", -1)

		cfg, err := NewConfigFromViper(v)
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("Environment Variable Override", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.SetEnvPrefix("ENVSYNC")
		v.AutomaticEnv()

		t.Setenv("ENVSYNC_ROUNDS", "9")

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)
		assert.Equal(t, 9, cfg.Rounds)
	})
}

// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/env-sync/internal/automation"
	"github.com/xkilldash9x/env-sync/internal/config"
	"github.com/xkilldash9x/env-sync/internal/observability"
)

type contextKey string

const configKey contextKey = "config"

// runnerFactory builds the automation runner; tests swap it to inject steps.
var runnerFactory = func(logger *zap.Logger) *automation.Runner {
	return automation.New(automation.WithLogger(logger))
}

// NewRootCommand builds a fresh root command. Flags are bound to variables
// local to the command so repeated executions in one process do not leak state.
func NewRootCommand() *cobra.Command {
	var (
		cfgFile string
		flags   config.Flags
	)

	cmd := &cobra.Command{
		Use:   "env-sync",
		Short: "Scheduled automation tool to sync project artifacts without manual intervention.",
		Long: `env-sync runs a fixed sequence of automation steps (validate_environment,
collect_inputs, process_items, generate_report) and logs a summary report.
Use --dry-run to log the sequence without executing any step.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Past flag parsing, errors are runtime failures and don't need the usage text.
			cmd.SilenceUsage = true

			v := viper.New()
			config.SetDefaults(v)

			if err := initializeConfig(v, cfgFile); err != nil {
				observability.InitializeLogger(config.NewDefaultConfig().Logger)
				return err
			}

			loaded, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.NewDefaultConfig().Logger)
				return fmt.Errorf("failed to load or validate config: %w", err)
			}
			cfg := loaded.ApplyFlags(flags)

			observability.InitializeLogger(cfg.Logger)
			if cfg.DebugLogging() {
				observability.SetLevel(zapcore.DebugLevel)
			}

			logger := observability.GetLogger()
			logger.Info(fmt.Sprintf("Starting %s v%s", AppName, Version), zap.String("version", Version))
			logger.Debug("Configuration loaded",
				zap.Bool("verbose", cfg.Verbose),
				zap.Bool("dry_run", cfg.DryRun),
				zap.Bool("debug", cfg.Debug),
				zap.String("output_dir", cfg.OutputDir),
				zap.String("difficulty", cfg.Difficulty),
				zap.Int("rounds", cfg.Rounds),
				zap.Any("extra", cfg.Extra),
			)

			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()
			return runAutomation(ctx, logger, cfg, runnerFactory(logger))
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./env-sync.yaml)")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose (debug-level) logging")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Log the steps without executing them")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "Enable debug-level logging")
	cmd.SetVersionTemplate(`{{printf "%s %s\n" .Name .Version}}`)

	return cmd
}

// runAutomation runs the step sequence and logs the resulting report.
func runAutomation(ctx context.Context, logger *zap.Logger, cfg config.Config, runner *automation.Runner) error {
	report, err := runner.Run(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("Result", zap.Object("report", report))
	logger.Info(AppName + " completed successfully.")
	return nil
}

// getConfigFromContext returns the config stored by the root command's pre-run hook.
func getConfigFromContext(ctx context.Context) (config.Config, error) {
	cfg, ok := ctx.Value(configKey).(config.Config)
	if !ok {
		return config.Config{}, errors.New("configuration not found in command context")
	}
	return cfg, nil
}

// initializeConfig reads in the config file and ENV variables if set.
// A missing default config file is fine; a missing explicit one is not.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("env-sync")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ENVSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Execute runs the root command against the process arguments.
func Execute(ctx context.Context) error {
	return ExecuteArgs(ctx, NewRootCommand(), os.Args[1:])
}

// ExecuteArgs runs root with args and reports any failure. The caller maps
// the returned error to a process exit code with ExitCode.
func ExecuteArgs(ctx context.Context, root *cobra.Command, args []string) error {
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		reportError(root, err)
	}
	return err
}

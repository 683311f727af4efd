// File: internal/automation/runner.go
// Description: Runs the automation sequence step by step. A failing step is
// recorded in the report and the run moves on to the next one.

package automation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/env-sync/internal/config"
	"github.com/xkilldash9x/env-sync/internal/observability"
)

// Runner executes an ordered list of steps against a fresh Report.
type Runner struct {
	logger *zap.Logger
	steps  []Step
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger the runner reports progress to.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSteps replaces the built-in step sequence.
func WithSteps(steps ...Step) Option {
	return func(r *Runner) {
		r.steps = steps
	}
}

// New creates a Runner for the built-in steps, logging through the global logger.
func New(opts ...Option) *Runner {
	r := &Runner{steps: DefaultSteps()}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = observability.GetLogger()
	}
	r.logger = r.logger.Named("runner")
	return r
}

// Steps returns the names of the configured steps in execution order.
func (r *Runner) Steps() []string {
	names := make([]string, 0, len(r.steps))
	for _, s := range r.steps {
		names = append(names, s.Name())
	}
	return names
}

// Run executes every step in order. With cfg.DryRun set each step is logged
// and skipped. Step failures land in the report; the returned error is only
// non-nil when ctx is cancelled, in which case the partial report is returned
// alongside it.
func (r *Runner) Run(ctx context.Context, cfg config.Config) (*Report, error) {
	logger := r.logger.With(zap.String("run_id", uuid.NewString()))
	logger.Info("Starting automation workflow...", zap.Bool("dry_run", cfg.DryRun))

	report := NewReport()
	for _, step := range r.steps {
		name := step.Name()
		if err := ctx.Err(); err != nil {
			report.finalize()
			return report, fmt.Errorf("automation interrupted before %s: %w", name, err)
		}

		if cfg.DryRun {
			logger.Info("[DRY-RUN] Skipping: "+name, zap.String("step", name))
			continue
		}

		logger.Debug("Executing step", zap.String("step", name))
		if err := execute(ctx, step, cfg, report); err != nil {
			report.AddError(name, err)
			logger.Error("✗ "+name, zap.String("step", name), zap.Error(err))
			continue
		}
		report.Processed++
		logger.Info("✓ "+name, zap.String("step", name))
	}

	report.finalize()
	return report, nil
}

// execute runs a single step, turning a panic into an error.
func execute(ctx context.Context, step Step, cfg config.Config, report *Report) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return step.Execute(ctx, cfg, report)
}
